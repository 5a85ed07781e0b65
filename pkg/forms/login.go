package forms

import (
	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// LoginFormID identifies the login form.
const LoginFormID = "login"

var loginSchema = validation.MustSchema(
	validation.FieldSchema{
		Name: "mobile",
		Type: validation.FieldTypeText,
		Rules: []validation.Rule{
			validation.Length{
				Min:        10,
				Max:        15,
				MinMessage: "Mobile number must be at least 10 digits",
				MaxMessage: "Mobile number can be at most 15 digits",
			},
			validation.MustPattern(`^\d+$`, "Mobile number must only contain digits"),
		},
	},
	validation.FieldSchema{
		Name: "passcode",
		Type: validation.FieldTypePassword,
		Rules: []validation.Rule{
			validation.Length{
				Min:        6,
				Max:        12,
				MinMessage: "Passcode must be at least 6 characters",
				MaxMessage: "Passcode can be at most 12 characters",
			},
		},
	},
)

// LoginSchema returns the login validation schema.
func LoginSchema() *validation.Schema {
	return loginSchema
}

// LoginModel returns the presentational model of the login page form.
func LoginModel() model.FormModel {
	return model.FormModel{
		ID:          LoginFormID,
		Endpoint:    "/login",
		Method:      "POST",
		Title:       "Welcome!",
		Subtitle:    "Please Sign in to access the Admin Panel.",
		SubmitLabel: "Continue",
		Fields: []model.Field{
			{Name: "mobile", Input: model.InputText, Label: "Mobile Number", Required: true},
			{Name: "passcode", Input: model.InputPassword, Label: "Passcode", Required: true},
		},
	}
}

// NewLogin builds the login form.
func NewLogin(options ...Option) (*Form, error) {
	return New(LoginModel(), LoginSchema(), options...)
}

// LoginData is the typed shape of a valid login submission.
type LoginData struct {
	Mobile   string `json:"mobile"`
	Passcode string `json:"passcode"`
}

// DecodeLogin maps submitted values onto LoginData.
func DecodeLogin(values validation.Values) LoginData {
	return LoginData{
		Mobile:   values["mobile"].Text(),
		Passcode: values["passcode"].Text(),
	}
}
