package diary

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/school"
)

var (
	// errors
	ErrDiarioExiste        = errors.New("Já existe um diário para este aluno nesta data")
	ErrDiarioNaoEncontrado = errors.New("Diário não encontrado")
)

type (
	Repository interface {
		CreateDiario(ctx context.Context, d Diario) (Diario, error)
		GetDiarioByID(ctx context.Context, id int) (Diario, error)
		// QueryAllDiarios returns all diaries with students and sleep periods preloaded.
		QueryAllDiarios(ctx context.Context) ([]Diario, error)
		QueryDiariosByAluno(ctx context.Context, alunoID int) ([]Diario, error)
		QueryDiariosByData(ctx context.Context, data time.Time) ([]Diario, error)
		// DiarioExists reports whether a diary already exists for the student on the given day.
		DiarioExists(ctx context.Context, alunoID int, data time.Time) (bool, error)
	}

	Service struct {
		repo   Repository
		schSvc *school.Service
	}
)

func NewService(repo Repository, schSvc *school.Service) *Service {
	return &Service{repo: repo, schSvc: schSvc}
}

// Create registers the student's daily log. At most one diary may exist per
// student per calendar day; the day is bucketed at midnight UTC.
func (svc *Service) Create(ctx context.Context, nd NewDiario, data time.Time) (Diario, error) {
	if _, err := svc.schSvc.GetAlunoByID(ctx, nd.AlunoID); err != nil {
		return Diario{}, err
	}

	exists, err := svc.repo.DiarioExists(ctx, nd.AlunoID, data)
	if err != nil {
		return Diario{}, errors.Wrap(err, "checking diary uniqueness")
	}
	if exists {
		return Diario{}, ErrDiarioExiste
	}

	periodos := make([]PeriodoSono, len(nd.PeriodosSono))
	for i, ps := range nd.PeriodosSono {
		periodos[i] = PeriodoSono{
			HoraDormiu:  ps.HoraDormiu,
			HoraAcordou: ps.HoraAcordou,
			TempoTotal:  ps.TempoTotal,
		}
	}

	now := time.Now().UTC()
	return svc.repo.CreateDiario(ctx, Diario{
		Data:             data,
		Observacoes:      nd.Observacoes,
		AlunoID:          nd.AlunoID,
		Disposicao:       nd.Disposicao,
		LancheManha:      nd.LancheManha,
		Almoco:           nd.Almoco,
		LancheTarde:      nd.LancheTarde,
		Leite:            nd.Leite,
		Evacuacao:        nd.Evacuacao,
		PeriodosSono:     periodos,
		ItensProvidencia: nd.ItensProvidencia,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Diario, error) {
	return svc.repo.QueryAllDiarios(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Diario, error) {
	return svc.repo.GetDiarioByID(ctx, id)
}

// DiariosDoAluno lists a student's diaries, newest first.
func (svc *Service) DiariosDoAluno(ctx context.Context, alunoID int) ([]Diario, error) {
	if _, err := svc.schSvc.GetAlunoByID(ctx, alunoID); err != nil {
		return nil, err
	}
	return svc.repo.QueryDiariosByAluno(ctx, alunoID)
}

// DiariosDaData lists every student's diary for a given day.
func (svc *Service) DiariosDaData(ctx context.Context, data time.Time) ([]Diario, error) {
	return svc.repo.QueryDiariosByData(ctx, data)
}
