package forms

import (
	"strings"

	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// GenericFormID identifies the generic profile form.
const GenericFormID = "generic"

// MaxImageBytes is the largest accepted image upload (5 MiB).
const MaxImageBytes int64 = 5 * 1024 * 1024

// DefaultTechnologies is the reference option list for the technologies
// checkbox group. Callers usually supply their own from configuration.
var DefaultTechnologies = []string{"HTML", "Css", "Js", "Python"}

// Genders lists the accepted gender values.
var Genders = []string{"male", "female", "other"}

// GenericSchema returns the validation schema of the generic form with the
// supplied technology options.
func GenericSchema(technologies []string) (*validation.Schema, error) {
	return validation.NewSchema(
		validation.FieldSchema{
			Name: "name",
			Type: validation.FieldTypeText,
			Rules: []validation.Rule{
				validation.Required{Message: "Name is required"},
			},
		},
		validation.FieldSchema{
			Name: "email",
			Type: validation.FieldTypeEmail,
			Rules: []validation.Rule{
				validation.Required{Message: "Email is required"},
				validation.Email{Message: "Invalid email address"},
			},
		},
		validation.FieldSchema{
			Name:     "image",
			Type:     validation.FieldTypeFile,
			Optional: true,
			Rules: []validation.Rule{
				validation.FileConstraint{
					MIMEPrefix:  "image/",
					MaxBytes:    MaxImageBytes,
					TypeMessage: "File must be an image",
					SizeMessage: "Image must be less than 5MB",
				},
			},
		},
		validation.FieldSchema{
			Name: "gender",
			Type: validation.FieldTypeEnum,
			Rules: []validation.Rule{
				validation.Required{Message: "Gender is required"},
				validation.OneOf{Values: Genders, Message: "Gender is required"},
			},
		},
		validation.FieldSchema{
			Name: "technologies",
			Type: validation.FieldTypeArray,
			Rules: []validation.Rule{
				validation.MinItems{Min: 1, Message: "At least one technology must be selected"},
				validation.Subset{Options: technologies, Message: "Unknown technology selected"},
			},
		},
	)
}

// GenericModel returns the presentational model of the generic form.
func GenericModel(technologies []string) model.FormModel {
	genders := make([]model.Option, 0, len(Genders))
	for _, gender := range Genders {
		genders = append(genders, model.Option{Value: gender, Label: model.Label(gender)})
	}
	techs := make([]model.Option, 0, len(technologies))
	for _, tech := range technologies {
		techs = append(techs, model.Option{Value: tech, Label: tech})
	}

	return model.FormModel{
		ID:          GenericFormID,
		Endpoint:    "/form",
		Method:      "POST",
		Title:       "Form 1: Basic Input",
		SubmitLabel: "Submit",
		Fields: []model.Field{
			{Name: "name", Input: model.InputText, Label: "Name", Required: true},
			{Name: "email", Input: model.InputEmail, Label: "Email", Required: true},
			{Name: "image", Input: model.InputFile, Label: "Image", Accept: "image/*"},
			{Name: "gender", Input: model.InputRadio, Label: "Gender", Required: true, Options: genders},
			{Name: "technologies", Input: model.InputCheckbox, Label: "Technologies Known", Required: true, Options: techs},
		},
	}
}

// NewGeneric builds the generic form. An empty technologies list falls back
// to DefaultTechnologies.
func NewGeneric(technologies []string, options ...Option) (*Form, error) {
	techs := cleanOptions(technologies)
	if len(techs) == 0 {
		techs = append([]string(nil), DefaultTechnologies...)
	}
	schema, err := GenericSchema(techs)
	if err != nil {
		return nil, err
	}
	return New(GenericModel(techs), schema, options...)
}

// GenericData is the typed shape of a valid generic form submission.
type GenericData struct {
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Image        *validation.File `json:"image,omitempty"`
	Gender       string           `json:"gender"`
	Technologies []string         `json:"technologies"`
}

// DecodeGeneric maps submitted values onto GenericData.
func DecodeGeneric(values validation.Values) GenericData {
	return GenericData{
		Name:         values["name"].Text(),
		Email:        values["email"].Text(),
		Image:        values["image"].File(),
		Gender:       values["gender"].Text(),
		Technologies: values["technologies"].List(),
	}
}

func cleanOptions(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, value := range in {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
