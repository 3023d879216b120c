package core

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/lexweb/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type collectionInput struct {
	Owner string `validate:"required"`
	Name  string `validate:"required,max=80"`
}

type lexemeInput struct {
	Text string `validate:"required"`
}

// validateCollection checks owner and name before they reach storage.
// name must already be in stored form (model.NormalizeName); its length is
// counted in runes, matching model.MaxNameLength.
func validateCollection(kind model.Kind, owner model.Owner, name string) error {
	in := collectionInput{Owner: string(owner), Name: name}
	if err := validate.Struct(in); err != nil {
		return model.NewInvalidArgumentError(kind, describe(err), err)
	}
	return nil
}

func validateText(text string) error {
	if err := validate.Struct(lexemeInput{Text: text}); err != nil {
		return model.NewInvalidArgumentError(model.KindLexeme, describe(err), err)
	}
	return nil
}

// describe turns validator field errors into a short message.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " failed " + fe.Tag() + " validation"
	}
}
