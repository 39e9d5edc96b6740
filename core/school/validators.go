package school

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Alexseyf/elo-api/core"
)

var (
	turmaNomeTag  = "turmanome"
	turmaNomeText = "turma inválida"
)

// InitValidators registers the school package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(turmaNomeTag, turmaNomeValidation)
	core.RegisterCustomTranslation(validate, translator, turmaNomeTag, turmaNomeText)
}

func turmaNomeValidation(fl validator.FieldLevel) bool {
	return IsValidTurmaNome(fl.Field().String())
}
