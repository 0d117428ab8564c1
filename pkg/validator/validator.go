package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the signature band rules
// registered as pitch_band and pace_band
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("pitch_band", func(fl validator.FieldLevel) bool {
		return entities.PitchBand(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("pace_band", func(fl validator.FieldLevel) bool {
		return entities.PaceBand(fl.Field().String()).IsValid()
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
