package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "email":
		return fmt.Sprintf("%s deve ser um email válido", field)
	case "oneof":
		return fmt.Sprintf("%s deve ser um dos valores: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		switch fe.Kind().String() {
		case "string":
			return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, fe.Param())
		case "slice":
			return fmt.Sprintf("%s deve ter no mínimo %s itens", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no mínimo %s", field, fe.Param())
	case "max", "lte":
		switch fe.Kind().String() {
		case "string":
			return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
		case "slice":
			return fmt.Sprintf("%s deve ter no máximo %s itens", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no máximo %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s deve ser um ID válido", field)
	default:
		return fmt.Sprintf("%s inválido", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":            "Nome",
		"Email":           "Email",
		"Password":        "Senha",
		"UserType":        "Tipo de usuário",
		"Title":           "Título",
		"Description":     "Descrição",
		"Experience":      "Experiência",
		"HourlyRate":      "Valor por hora",
		"Specialties":     "Especialidades",
		"Languages":       "Idiomas",
		"Certifications":  "Certificações",
		"MentorID":        "Mentor",
		"SessionID":       "Sessão",
		"ScheduledAt":     "Data agendada",
		"Duration":        "Duração",
		"MaxParticipants": "Máximo de participantes",
		"Status":          "Status",
		"FileURL":         "URL do arquivo",
		"FileName":        "Nome do arquivo",
		"FileType":        "Tipo do arquivo",
		"Category":        "Categoria",
		"Priority":        "Prioridade",
		"Progress":        "Progresso",
		"Rating":          "Avaliação",
		"DayOfWeek":       "Dia da semana",
		"StartTime":       "Horário de início",
		"EndTime":         "Horário de término",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
