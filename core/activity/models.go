package activity

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

// Campos de experiência da BNCC (CAMPO_EXPERIENCIA)
const (
	CampoEuOutroNos    = "O_EU_O_OUTRO_E_O_NOS"
	CampoCorpoGestos   = "CORPO_GESTOS_E_MOVIMENTOS"
	CampoTracosSons    = "TRACOS_SONS_CORES_E_FORMAS"
	CampoEscutaFala    = "ESCUTA_FALA_PENSAMENTO_E_IMAGINACAO"
	CampoEspacosTempos = "ESPACOS_TEMPOS_QUANTIDADES_RELACOES_E_TRANSFORMACOES"
)

var AllCamposExperiencia = []string{
	CampoEuOutroNos,
	CampoCorpoGestos,
	CampoTracosSons,
	CampoEscutaFala,
	CampoEspacosTempos,
}

func IsValidCampoExperiencia(campo string) bool {
	for _, c := range AllCamposExperiencia {
		if c == campo {
			return true
		}
	}
	return false
}

// Semestres letivos (SEMESTRE)
const (
	SemestrePrimeiro = "PRIMEIRO"
	SemestreSegundo  = "SEGUNDO"
)

// Objetivo is a BNCC learning objective, identified by a unique code
// such as "EI02EO01".
type Objetivo struct {
	ID               int    `json:"id"`
	Codigo           string `json:"codigo"`
	Descricao        string `json:"descricao"`
	Grupo            string `json:"grupo"`
	CampoExperiencia string `json:"campoExperiencia"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// Atividade is a planned classroom activity tied to a learning objective.
type Atividade struct {
	ID               int       `json:"id"`
	Ano              int       `json:"ano"`
	Periodo          string    `json:"periodo"` // SEMESTRE
	QuantHora        int       `json:"quantHora"`
	Descricao        string    `json:"descricao"`
	Data             time.Time `json:"data"` // day bucket, midnight UTC
	TurmaID          int       `json:"turmaId"`
	CampoExperiencia string    `json:"campoExperiencia"`
	ObjetivoID       int       `json:"objetivoId"`
	ProfessorID      int       `json:"professorId"`
	IsAtivo          bool      `json:"isAtivo"`

	Objetivo  *Objetivo     `json:"objetivo,omitempty"`
	Turma     *school.Turma `json:"turma,omitempty"`
	Professor *user.User    `json:"professor,omitempty"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

type NewObjetivo struct {
	Codigo           string `json:"codigo" validate:"required,min=3,max=20"`
	Descricao        string `json:"descricao" validate:"required,min=3,max=500"`
	Grupo            string `json:"grupo" validate:"required,min=3,max=100"`
	CampoExperiencia string `json:"campoExperiencia" validate:"required,campoexp"`
}

func (no *NewObjetivo) Validate(validate *validator.Validate) error {
	no.Codigo = strings.ToUpper(core.CleanString(no.Codigo))
	no.Descricao = core.CleanString(no.Descricao)
	no.Grupo = core.CleanString(no.Grupo)
	return validate.Struct(no)
}

type NewAtividade struct {
	Ano              int    `json:"ano" validate:"required,gte=2020,lte=2100"`
	Periodo          string `json:"periodo" validate:"required,oneof=PRIMEIRO SEGUNDO"`
	QuantHora        int    `json:"quantHora" validate:"required,gt=0,lte=12"`
	Descricao        string `json:"descricao" validate:"required,min=3,max=500"`
	Data             string `json:"data" validate:"required"`
	TurmaID          int    `json:"turmaId" validate:"required,gt=0"`
	CampoExperiencia string `json:"campoExperiencia" validate:"required,campoexp"`
	ObjetivoID       int    `json:"objetivoId" validate:"required,gt=0"`
}

func (na *NewAtividade) Validate(validate *validator.Validate) (time.Time, error) {
	na.Descricao = core.CleanString(na.Descricao)
	if err := validate.Struct(na); err != nil {
		return time.Time{}, err
	}
	data, err := core.ParseDate(na.Data)
	if err != nil {
		return time.Time{}, core.NewValidationError(errors.New("data inválida"), core.FieldError{Field: "data", Error: "data inválida"})
	}
	return data, nil
}
