package school

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/user"
)

// Fixed set of infant-school class names.
const (
	TurmaBercario1 = "BERCARIO1"
	TurmaBercario2 = "BERCARIO2"
	TurmaMaternal1 = "MATERNAL1"
	TurmaMaternal2 = "MATERNAL2"
	TurmaPre1      = "PRE1"
	TurmaPre2      = "PRE2"
)

var AllTurmaNomes = []string{
	TurmaBercario1,
	TurmaBercario2,
	TurmaMaternal1,
	TurmaMaternal2,
	TurmaPre1,
	TurmaPre2,
}

func IsValidTurmaNome(nome string) bool {
	for _, n := range AllTurmaNomes {
		if n == nome {
			return true
		}
	}
	return false
}

type Turma struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`

	Professores []user.User `json:"professores,omitempty"`
	Alunos      []Aluno     `json:"alunos,omitempty"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

type Aluno struct {
	ID       int       `json:"id"`
	Nome     string    `json:"nome"`
	DataNasc time.Time `json:"dataNasc"`
	TurmaID  int       `json:"turmaId"`
	IsAtivo  bool      `json:"isAtivo"`

	Turma        *Turma      `json:"turma,omitempty"`
	Responsaveis []user.User `json:"responsaveis,omitempty"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// ProfessorTurmas pairs a teacher with the classes they are assigned to.
type ProfessorTurmas struct {
	Usuario user.User `json:"usuario"`
	Turmas  []Turma   `json:"turmas"`
}

type NewTurma struct {
	Nome string `json:"nome" validate:"required,turmanome"`
}

func (nt *NewTurma) Validate(validate *validator.Validate) error {
	nt.Nome = strings.ToUpper(core.CleanString(nt.Nome))
	return validate.Struct(nt)
}

type NewAluno struct {
	Nome     string `json:"nome" validate:"required,min=3,max=60"`
	DataNasc string `json:"dataNasc" validate:"required"`
	TurmaID  int    `json:"turmaId" validate:"required,gt=0"`
	IsAtivo  *bool  `json:"isAtivo"`
}

func (na *NewAluno) Validate(validate *validator.Validate) (time.Time, error) {
	na.Nome = core.CleanString(na.Nome)
	if err := validate.Struct(na); err != nil {
		return time.Time{}, err
	}
	dataNasc, err := core.ParseDate(na.DataNasc)
	if err != nil {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: "dataNasc", Error: "data inválida"})
	}
	return dataNasc, nil
}
