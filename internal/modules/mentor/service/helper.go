package service

import "anoa.com/mentoria/internal/entity"

func toSpecialties(names []string) []entity.MentorSpecialty {
	out := make([]entity.MentorSpecialty, 0, len(names))
	for _, n := range names {
		out = append(out, entity.MentorSpecialty{Name: n})
	}
	return out
}

func toLanguages(names []string) []entity.MentorLanguage {
	out := make([]entity.MentorLanguage, 0, len(names))
	for _, n := range names {
		out = append(out, entity.MentorLanguage{Name: n})
	}
	return out
}

func toCertifications(names []string) []entity.MentorCertification {
	out := make([]entity.MentorCertification, 0, len(names))
	for _, n := range names {
		out = append(out, entity.MentorCertification{Name: n})
	}
	return out
}
