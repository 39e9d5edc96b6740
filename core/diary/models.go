package diary

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/school"
)

// Disposição do aluno (DISPOSICAO)
const (
	DisposicaoAgitado   = "AGITADO"
	DisposicaoNormal    = "NORMAL"
	DisposicaoSonolento = "SONOLENTO"
	DisposicaoCansado   = "CANSADO"
)

// Aceitação das refeições (REFEICAO)
const (
	RefeicaoOtimo      = "OTIMO"
	RefeicaoBom        = "BOM"
	RefeicaoRegular    = "REGULAR"
	RefeicaoNaoAceitou = "NAO_ACEITOU"
)

// Evacuação (EVACUACAO)
const (
	EvacuacaoNormal     = "NORMAL"
	EvacuacaoLiquida    = "LIQUIDA"
	EvacuacaoDura       = "DURA"
	EvacuacaoNaoEvacuou = "NAO_EVACUOU"
)

// Itens de providência (ITEM_PROVIDENCIA)
const (
	ItemFralda         = "FRALDA"
	ItemLencoUmedecido = "LENCO_UMEDECIDO"
	ItemLeite          = "LEITE"
	ItemPomada         = "POMADA"
)

var AllItensProvidencia = []string{ItemFralda, ItemLencoUmedecido, ItemLeite, ItemPomada}

type PeriodoSono struct {
	ID          int    `json:"id"`
	HoraDormiu  string `json:"horaDormiu"`  // HH:MM
	HoraAcordou string `json:"horaAcordou"` // HH:MM
	TempoTotal  string `json:"tempoTotal"`  // HH:MM
	DiarioID    int    `json:"diarioId"`
}

// Diario is a student's daily log; at most one per student per calendar day.
type Diario struct {
	ID          int       `json:"id"`
	Data        time.Time `json:"data"` // day bucket, midnight UTC
	Observacoes string    `json:"observacoes"`
	AlunoID     int       `json:"alunoId"`

	Disposicao  string `json:"disposicao,omitempty"`
	LancheManha string `json:"lancheManha,omitempty"`
	Almoco      string `json:"almoco,omitempty"`
	LancheTarde string `json:"lancheTarde,omitempty"`
	Leite       string `json:"leite,omitempty"`
	Evacuacao   string `json:"evacuacao,omitempty"`

	PeriodosSono     []PeriodoSono `json:"periodosSono,omitempty"`
	ItensProvidencia []string      `json:"itensProvidencia,omitempty"`

	Aluno *school.Aluno `json:"aluno,omitempty"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

type NewPeriodoSono struct {
	HoraDormiu  string `json:"horaDormiu" validate:"required,hhmm"`
	HoraAcordou string `json:"horaAcordou" validate:"required,hhmm"`
	TempoTotal  string `json:"tempoTotal" validate:"required,hhmm"`
}

type NewDiario struct {
	Data        string `json:"data" validate:"required"`
	Observacoes string `json:"observacoes" validate:"max=500"`
	AlunoID     int    `json:"alunoId" validate:"required,gt=0"`

	Disposicao  string `json:"disposicao" validate:"omitempty,oneof=AGITADO NORMAL SONOLENTO CANSADO"`
	LancheManha string `json:"lancheManha" validate:"omitempty,oneof=OTIMO BOM REGULAR NAO_ACEITOU"`
	Almoco      string `json:"almoco" validate:"omitempty,oneof=OTIMO BOM REGULAR NAO_ACEITOU"`
	LancheTarde string `json:"lancheTarde" validate:"omitempty,oneof=OTIMO BOM REGULAR NAO_ACEITOU"`
	Leite       string `json:"leite" validate:"omitempty,oneof=OTIMO BOM REGULAR NAO_ACEITOU"`
	Evacuacao   string `json:"evacuacao" validate:"omitempty,oneof=NORMAL LIQUIDA DURA NAO_EVACUOU"`

	PeriodosSono     []NewPeriodoSono `json:"periodosSono" validate:"omitempty,dive"`
	ItensProvidencia []string         `json:"itensProvidencia" validate:"omitempty,dive,oneof=FRALDA LENCO_UMEDECIDO LEITE POMADA"`
}

func (nd *NewDiario) Validate(validate *validator.Validate) (time.Time, error) {
	nd.Observacoes = core.CleanString(nd.Observacoes)
	if err := validate.Struct(nd); err != nil {
		return time.Time{}, err
	}
	data, err := core.ParseDate(nd.Data)
	if err != nil {
		return time.Time{}, core.NewValidationError(errors.New("data inválida"), core.FieldError{Field: "data", Error: "data inválida"})
	}
	return data, nil
}
