package grocery

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/superlista/internal/model"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the catalog tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterValidation("grocery_unit", func(fl validator.FieldLevel) bool {
			return IsUnit(fl.Field().String())
		})
		v.RegisterValidation("grocery_place", func(fl validator.FieldLevel) bool {
			return IsPlace(fl.Field().String())
		})
		v.RegisterValidation("grocery_status", func(fl validator.FieldLevel) bool {
			return IsStatus(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// NormalizeForm trims the name and validates the form. The returned form is what
// should be written to the store.
func NormalizeForm(form model.ItemForm) (model.ItemForm, error) {
	form.Name = strings.TrimSpace(form.Name)
	if form.Name == "" {
		return form, &model.ValidationError{Field: "name", Message: "el nombre es obligatorio"}
	}
	if form.Quantity < 1 {
		return form, &model.ValidationError{Field: "qty", Message: "la cantidad debe ser al menos 1"}
	}

	if err := Validator().Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return form, &model.ValidationError{
				Field:   jsonField(fe.Field()),
				Message: fmt.Sprintf("valor inválido %q", fmt.Sprint(fe.Value())),
			}
		}
		return form, &model.ValidationError{Message: err.Error()}
	}
	return form, nil
}

func jsonField(structField string) string {
	switch structField {
	case "Quantity":
		return "qty"
	default:
		return strings.ToLower(structField)
	}
}
