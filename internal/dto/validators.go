package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pennywiseapp/penny_wise_app/internal/core/domain"
)

// RegisterCustomValidators installs binding validators used by the DTOs on
// gin's validator engine. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("frequency", validFrequency)
}

// validFrequency accepts the recognised Frequency values on string-kinded
// fields.
func validFrequency(fl validator.FieldLevel) bool {
	return domain.Frequency(fl.Field().String()).IsValid()
}
