package boterror

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type draft struct {
	Title   string `validate:"required"`
	Subject string `validate:"required,oneof=A B"`
}

func TestFromValidationError(t *testing.T) {
	validate := validator.New()
	_ = validate.RegisterValidation("subject", func(fl validator.FieldLevel) bool { return false })

	err := validate.Struct(&draft{Subject: "A"})
	if got := FromValidationError(err); got != ExpectedTitleError {
		t.Errorf("expected title error, got %v", got)
	}

	err = validate.Struct(&draft{Title: "x", Subject: "C"})
	got := FromValidationError(err)
	if got == nil || got.Reply() != "Invalid value provided for Subject." {
		t.Errorf("unexpected error for oneof: %v", got)
	}

	err = validate.Var("BIOLOGY", "subject")
	if got := FromValidationError(err); got != InvalidSubjectError {
		t.Errorf("expected subject error, got %v", got)
	}
}

func TestFromValidationErrorIgnoresOtherErrors(t *testing.T) {
	if got := FromValidationError(errors.New("boom")); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestNewHTML(t *testing.T) {
	e := NewHTML("<b>%d</b>", 3)
	if !e.IsHTML() || e.Reply() != "<b>3</b>" {
		t.Errorf("unexpected error: %+v", e)
	}
}
