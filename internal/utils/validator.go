package utils

import (
	"github.com/go-playground/validator/v10"
	"log"
	"strings"
)

var Validate *validator.Validate

func InitValidator() {
	v := validator.New()
	if err := registerValidations(v); err != nil {
		log.Fatalf("error registering validations: %v", err)
	}
	Validate = v
}

func registerValidations(v *validator.Validate) error {
	// "notblank" rejects strings that are empty after trimming, used for
	// ingredient names that are normalized before storage.
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
