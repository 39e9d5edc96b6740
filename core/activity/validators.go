package activity

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Alexseyf/elo-api/core"
)

var (
	campoExpTag  = "campoexp"
	campoExpText = "campo de experiência inválido"
)

// InitValidators registers the activity package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(campoExpTag, campoExpValidation)
	core.RegisterCustomTranslation(validate, translator, campoExpTag, campoExpText)
}

func campoExpValidation(fl validator.FieldLevel) bool {
	return IsValidCampoExperiencia(fl.Field().String())
}
