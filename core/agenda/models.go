package agenda

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/school"
)

// Tipos de evento (TIPO_EVENTO)
const (
	TipoReuniao       = "REUNIAO"
	TipoPasseio       = "PASSEIO"
	TipoFeriado       = "FERIADO"
	TipoEventoEscolar = "EVENTO_ESCOLAR"
	TipoOutro         = "OUTRO"
)

// Evento is a class-bound calendar entry.
type Evento struct {
	ID         int       `json:"id"`
	Titulo     string    `json:"titulo"`
	Descricao  string    `json:"descricao"`
	Data       time.Time `json:"data"` // day bucket, midnight UTC
	Hora       string    `json:"hora"` // HH:MM
	Local      string    `json:"local"`
	TipoEvento string    `json:"tipoEvento"`
	TurmaID    int       `json:"turmaId"`
	IsAtivo    bool      `json:"isAtivo"`

	Turma *school.Turma `json:"turma,omitempty"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

// Cronograma is a school-wide schedule entry, not bound to any class.
type Cronograma struct {
	ID         int       `json:"id"`
	Titulo     string    `json:"titulo"`
	Descricao  string    `json:"descricao"`
	Data       time.Time `json:"data"`       // day bucket, midnight UTC
	HoraInicio string    `json:"horaInicio"` // HH:MM
	HoraFim    string    `json:"horaFim"`    // HH:MM
	IsAtivo    bool      `json:"isAtivo"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

type NewEvento struct {
	Titulo     string `json:"titulo" validate:"required,min=3,max=100"`
	Descricao  string `json:"descricao" validate:"max=500"`
	Data       string `json:"data" validate:"required"`
	Hora       string `json:"hora" validate:"required,hhmm"`
	Local      string `json:"local" validate:"max=100"`
	TipoEvento string `json:"tipoEvento" validate:"required,oneof=REUNIAO PASSEIO FERIADO EVENTO_ESCOLAR OUTRO"`
	TurmaID    int    `json:"turmaId" validate:"required,gt=0"`
}

func (ne *NewEvento) Validate(validate *validator.Validate) (time.Time, error) {
	ne.Titulo = core.CleanString(ne.Titulo)
	ne.Descricao = core.CleanString(ne.Descricao)
	ne.Local = core.CleanString(ne.Local)
	if err := validate.Struct(ne); err != nil {
		return time.Time{}, err
	}
	return parseData(ne.Data)
}

// UpdateEvento carries a partial update; nil fields are left untouched.
type UpdateEvento struct {
	Titulo     *string `json:"titulo" validate:"omitempty,min=3,max=100"`
	Descricao  *string `json:"descricao" validate:"omitempty,max=500"`
	Data       *string `json:"data"`
	Hora       *string `json:"hora" validate:"omitempty,hhmm"`
	Local      *string `json:"local" validate:"omitempty,max=100"`
	TipoEvento *string `json:"tipoEvento" validate:"omitempty,oneof=REUNIAO PASSEIO FERIADO EVENTO_ESCOLAR OUTRO"`
	IsAtivo    *bool   `json:"isAtivo"`
}

func (ue *UpdateEvento) Validate(validate *validator.Validate) (*time.Time, error) {
	if ue.Titulo != nil {
		*ue.Titulo = core.CleanString(*ue.Titulo)
	}
	if ue.Descricao != nil {
		*ue.Descricao = core.CleanString(*ue.Descricao)
	}
	if ue.Local != nil {
		*ue.Local = core.CleanString(*ue.Local)
	}
	if err := validate.Struct(ue); err != nil {
		return nil, err
	}
	if ue.Data == nil {
		return nil, nil
	}
	data, err := parseData(*ue.Data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

type NewCronograma struct {
	Titulo     string `json:"titulo" validate:"required,min=3,max=100"`
	Descricao  string `json:"descricao" validate:"max=500"`
	Data       string `json:"data" validate:"required"`
	HoraInicio string `json:"horaInicio" validate:"required,hhmm"`
	HoraFim    string `json:"horaFim" validate:"required,hhmm"`
}

func (nc *NewCronograma) Validate(validate *validator.Validate) (time.Time, error) {
	nc.Titulo = core.CleanString(nc.Titulo)
	nc.Descricao = core.CleanString(nc.Descricao)
	if err := validate.Struct(nc); err != nil {
		return time.Time{}, err
	}
	return parseData(nc.Data)
}

// UpdateCronograma carries a partial update; nil fields are left untouched.
type UpdateCronograma struct {
	Titulo     *string `json:"titulo" validate:"omitempty,min=3,max=100"`
	Descricao  *string `json:"descricao" validate:"omitempty,max=500"`
	Data       *string `json:"data"`
	HoraInicio *string `json:"horaInicio" validate:"omitempty,hhmm"`
	HoraFim    *string `json:"horaFim" validate:"omitempty,hhmm"`
	IsAtivo    *bool   `json:"isAtivo"`
}

func (uc *UpdateCronograma) Validate(validate *validator.Validate) (*time.Time, error) {
	if uc.Titulo != nil {
		*uc.Titulo = core.CleanString(*uc.Titulo)
	}
	if uc.Descricao != nil {
		*uc.Descricao = core.CleanString(*uc.Descricao)
	}
	if err := validate.Struct(uc); err != nil {
		return nil, err
	}
	if uc.Data == nil {
		return nil, nil
	}
	data, err := parseData(*uc.Data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func parseData(s string) (time.Time, error) {
	data, err := core.ParseDate(s)
	if err != nil {
		return time.Time{}, core.NewValidationError(errors.New("data inválida"), core.FieldError{Field: "data", Error: "data inválida"})
	}
	return data, nil
}
