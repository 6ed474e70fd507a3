package repository

import (
	"context"
	"strings"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	SessionID *uuid.UUID
	MentorID  *uuid.UUID
	Category  string
	Search    string
	// ViewerID also reveals private documents of mentors the viewer owns.
	ViewerID   *uuid.UUID
	AllVisible bool
	Limit      int
	Offset     int
}

type DocumentRepository interface {
	// Create inserts the document and its tags and flags the owning session
	// as having documents, all in one transaction.
	Create(ctx context.Context, doc *entity.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	FindAll(ctx context.Context, filter Filter) ([]*entity.Document, int64, error)
	Update(ctx context.Context, doc *entity.Document, replaceTags bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func withTags(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Mentor").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(doc).Error; err != nil {
			return err
		}
		if err := createTags(tx, doc); err != nil {
			return err
		}
		return tx.Model(&entity.Session{}).
			Where("id = ?", doc.SessionID).
			UpdateColumn("has_documents", true).Error
	})
}

func createTags(tx *gorm.DB, doc *entity.Document) error {
	if len(doc.Tags) == 0 {
		return nil
	}
	for i := range doc.Tags {
		doc.Tags[i].ID = 0
		doc.Tags[i].DocumentID = doc.ID
	}
	return tx.Create(&doc.Tags).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	if err := r.db.WithContext(ctx).Scopes(withTags).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindAll(ctx context.Context, filter Filter) ([]*entity.Document, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.SessionID != nil {
			db = db.Where("documents.session_id = ?", *filter.SessionID)
		}
		if filter.MentorID != nil {
			db = db.Where("documents.mentor_id = ?", *filter.MentorID)
		}
		if filter.Category != "" {
			db = db.Where("documents.category = ?", filter.Category)
		}
		if filter.Search != "" {
			like := "%" + strings.ToLower(filter.Search) + "%"
			db = db.Where("LOWER(documents.title) LIKE ? OR LOWER(documents.description) LIKE ?", like, like)
		}
		if !filter.AllVisible {
			if filter.ViewerID != nil {
				db = db.Where("documents.is_public = ? OR documents.mentor_id IN (SELECT id FROM mentors WHERE user_id = ?)",
					true, *filter.ViewerID)
			} else {
				db = db.Where("documents.is_public = ?", true)
			}
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Document{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []*entity.Document
	err := r.db.WithContext(ctx).
		Scopes(scope, withTags).
		Order("documents.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *entity.Document, replaceTags bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(doc).
			Omit(clause.Associations).
			Select("Title", "Description", "Category", "IsPublic", "UpdatedAt").
			Updates(doc).Error
		if err != nil {
			return err
		}
		if !replaceTags {
			return nil
		}
		if err := tx.Where("document_id = ?", doc.ID).Delete(&entity.DocumentTag{}).Error; err != nil {
			return err
		}
		return createTags(tx, doc)
	})
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Document{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
