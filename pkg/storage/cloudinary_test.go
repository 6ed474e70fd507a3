package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePublicID(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantID       string
		wantResource string
	}{
		{
			name:         "raw file keeps extension",
			url:          "https://res.cloudinary.com/demo/raw/upload/v1712345678/documents/1700-slides.pdf",
			wantID:       "documents/1700-slides.pdf",
			wantResource: "raw",
		},
		{
			name:         "image drops extension",
			url:          "https://res.cloudinary.com/demo/image/upload/v1/documents/diagram.png",
			wantID:       "documents/diagram",
			wantResource: "image",
		},
		{
			name:         "no version segment",
			url:          "https://res.cloudinary.com/demo/image/upload/documents/photo.jpg",
			wantID:       "documents/photo",
			wantResource: "image",
		},
		{
			name:         "folder starting with v is not a version",
			url:          "https://res.cloudinary.com/demo/raw/upload/videos/intro.txt",
			wantID:       "videos/intro.txt",
			wantResource: "raw",
		},
		{
			name: "not a cloudinary url",
			url:  "https://example.com/files/a.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, resource := ParsePublicID(tt.url)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantResource, resource)
		})
	}
}

func TestResourceType(t *testing.T) {
	assert.Equal(t, "image", resourceType(".png"))
	assert.Equal(t, "video", resourceType(".mp4"))
	assert.Equal(t, "raw", resourceType(".pdf"))
	assert.Equal(t, "raw", resourceType(""))
}
