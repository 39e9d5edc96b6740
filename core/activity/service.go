package activity

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

var (
	// errors
	ErrObjetivoExiste         = errors.New("Já existe um objetivo com este código")
	ErrObjetivoNaoEncontrado  = errors.New("Objetivo não encontrado")
	ErrAtividadeNaoEncontrada = errors.New("Atividade não encontrada")
)

type (
	Repository interface {
		CreateObjetivo(ctx context.Context, o Objetivo) (Objetivo, error)
		QueryAllObjetivos(ctx context.Context) ([]Objetivo, error)
		GetObjetivoByID(ctx context.Context, id int) (Objetivo, error)
		// GetObjetivoByCodigo looks an objective up by its unique code.
		GetObjetivoByCodigo(ctx context.Context, codigo string) (Objetivo, error)

		CreateAtividade(ctx context.Context, a Atividade) (Atividade, error)
		// QueryAllAtividades returns active activities with objective, class and teacher preloaded.
		QueryAllAtividades(ctx context.Context) ([]Atividade, error)
		GetAtividadeByID(ctx context.Context, id int) (Atividade, error)
		QueryAtividadesByProfessor(ctx context.Context, professorID int) ([]Atividade, error)
		QueryAtividadesByTurma(ctx context.Context, turmaID int) ([]Atividade, error)
	}

	Service struct {
		repo   Repository
		schSvc *school.Service
	}
)

func NewService(repo Repository, schSvc *school.Service) *Service {
	return &Service{repo: repo, schSvc: schSvc}
}

// CreateObjetivo registers a learning objective; codes are unique.
func (svc *Service) CreateObjetivo(ctx context.Context, no NewObjetivo) (Objetivo, error) {
	if _, err := svc.repo.GetObjetivoByCodigo(ctx, no.Codigo); err == nil {
		return Objetivo{}, ErrObjetivoExiste
	} else if errors.Cause(err) != ErrObjetivoNaoEncontrado {
		return Objetivo{}, errors.Wrap(err, "checking objective code uniqueness")
	}

	now := time.Now().UTC()
	return svc.repo.CreateObjetivo(ctx, Objetivo{
		Codigo:           no.Codigo,
		Descricao:        no.Descricao,
		Grupo:            no.Grupo,
		CampoExperiencia: no.CampoExperiencia,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
}

func (svc *Service) QueryAllObjetivos(ctx context.Context) ([]Objetivo, error) {
	return svc.repo.QueryAllObjetivos(ctx)
}

func (svc *Service) GetObjetivoByID(ctx context.Context, id int) (Objetivo, error) {
	return svc.repo.GetObjetivoByID(ctx, id)
}

// CreateAtividade registers a planned activity for the authenticated teacher.
func (svc *Service) CreateAtividade(ctx context.Context, na NewAtividade, data time.Time, professor user.User) (Atividade, error) {
	if !professor.IsProfessor() {
		return Atividade{}, school.ErrRoleProfessor
	}
	if _, err := svc.schSvc.GetTurmaByID(ctx, na.TurmaID); err != nil {
		return Atividade{}, err
	}
	if _, err := svc.repo.GetObjetivoByID(ctx, na.ObjetivoID); err != nil {
		return Atividade{}, err
	}

	now := time.Now().UTC()
	return svc.repo.CreateAtividade(ctx, Atividade{
		Ano:              na.Ano,
		Periodo:          na.Periodo,
		QuantHora:        na.QuantHora,
		Descricao:        na.Descricao,
		Data:             data,
		TurmaID:          na.TurmaID,
		CampoExperiencia: na.CampoExperiencia,
		ObjetivoID:       na.ObjetivoID,
		ProfessorID:      professor.ID,
		IsAtivo:          true,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
}

func (svc *Service) QueryAllAtividades(ctx context.Context) ([]Atividade, error) {
	return svc.repo.QueryAllAtividades(ctx)
}

func (svc *Service) GetAtividadeByID(ctx context.Context, id int) (Atividade, error) {
	return svc.repo.GetAtividadeByID(ctx, id)
}

// AtividadesDoProfessor lists the activities planned by a teacher.
func (svc *Service) AtividadesDoProfessor(ctx context.Context, professorID int) ([]Atividade, error) {
	return svc.repo.QueryAtividadesByProfessor(ctx, professorID)
}

// AtividadesDaTurma lists a class's activities.
func (svc *Service) AtividadesDaTurma(ctx context.Context, turmaID int) ([]Atividade, error) {
	if _, err := svc.schSvc.GetTurmaByID(ctx, turmaID); err != nil {
		return nil, err
	}
	return svc.repo.QueryAtividadesByTurma(ctx, turmaID)
}
