package agenda

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/school"
)

var (
	// errors
	ErrEventoNaoEncontrado     = errors.New("Evento não encontrado")
	ErrCronogramaNaoEncontrado = errors.New("Cronograma não encontrado")
)

type (
	Repository interface {
		CreateEvento(ctx context.Context, e Evento) (Evento, error)
		// QueryAllEventos returns active events with their class preloaded.
		QueryAllEventos(ctx context.Context) ([]Evento, error)
		GetEventoByID(ctx context.Context, id int) (Evento, error)
		QueryEventosByTurma(ctx context.Context, turmaID int) ([]Evento, error)
		UpdateEvento(ctx context.Context, e Evento) error

		CreateCronograma(ctx context.Context, c Cronograma) (Cronograma, error)
		QueryAllCronogramas(ctx context.Context) ([]Cronograma, error)
		GetCronogramaByID(ctx context.Context, id int) (Cronograma, error)
		QueryCronogramasByData(ctx context.Context, data time.Time) ([]Cronograma, error)
		UpdateCronograma(ctx context.Context, c Cronograma) error
	}

	Service struct {
		repo   Repository
		schSvc *school.Service
	}
)

func NewService(repo Repository, schSvc *school.Service) *Service {
	return &Service{repo: repo, schSvc: schSvc}
}

func (svc *Service) CreateEvento(ctx context.Context, ne NewEvento, data time.Time) (Evento, error) {
	if _, err := svc.schSvc.GetTurmaByID(ctx, ne.TurmaID); err != nil {
		return Evento{}, err
	}

	now := time.Now().UTC()
	return svc.repo.CreateEvento(ctx, Evento{
		Titulo:     ne.Titulo,
		Descricao:  ne.Descricao,
		Data:       data,
		Hora:       ne.Hora,
		Local:      ne.Local,
		TipoEvento: ne.TipoEvento,
		TurmaID:    ne.TurmaID,
		IsAtivo:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (svc *Service) QueryAllEventos(ctx context.Context) ([]Evento, error) {
	return svc.repo.QueryAllEventos(ctx)
}

func (svc *Service) GetEventoByID(ctx context.Context, id int) (Evento, error) {
	return svc.repo.GetEventoByID(ctx, id)
}

// EventosDaTurma lists a class's active events.
func (svc *Service) EventosDaTurma(ctx context.Context, turmaID int) ([]Evento, error) {
	if _, err := svc.schSvc.GetTurmaByID(ctx, turmaID); err != nil {
		return nil, err
	}
	return svc.repo.QueryEventosByTurma(ctx, turmaID)
}

// UpdateEvento applies a partial update; nil fields keep their current value.
func (svc *Service) UpdateEvento(ctx context.Context, id int, ue UpdateEvento, data *time.Time) (Evento, error) {
	evt, err := svc.repo.GetEventoByID(ctx, id)
	if err != nil {
		return Evento{}, err
	}

	if ue.Titulo != nil {
		evt.Titulo = *ue.Titulo
	}
	if ue.Descricao != nil {
		evt.Descricao = *ue.Descricao
	}
	if data != nil {
		evt.Data = *data
	}
	if ue.Hora != nil {
		evt.Hora = *ue.Hora
	}
	if ue.Local != nil {
		evt.Local = *ue.Local
	}
	if ue.TipoEvento != nil {
		evt.TipoEvento = *ue.TipoEvento
	}
	if ue.IsAtivo != nil {
		evt.IsAtivo = *ue.IsAtivo
	}
	evt.UpdatedAt = time.Now().UTC()
	if err = svc.repo.UpdateEvento(ctx, evt); err != nil {
		return Evento{}, err
	}
	return evt, nil
}

// DeleteEvento soft-deletes an event by flagging it inactive.
func (svc *Service) DeleteEvento(ctx context.Context, id int) error {
	evt, err := svc.repo.GetEventoByID(ctx, id)
	if err != nil {
		return err
	}
	evt.IsAtivo = false
	evt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEvento(ctx, evt)
}

func (svc *Service) CreateCronograma(ctx context.Context, nc NewCronograma, data time.Time) (Cronograma, error) {
	now := time.Now().UTC()
	return svc.repo.CreateCronograma(ctx, Cronograma{
		Titulo:     nc.Titulo,
		Descricao:  nc.Descricao,
		Data:       data,
		HoraInicio: nc.HoraInicio,
		HoraFim:    nc.HoraFim,
		IsAtivo:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (svc *Service) QueryAllCronogramas(ctx context.Context) ([]Cronograma, error) {
	return svc.repo.QueryAllCronogramas(ctx)
}

func (svc *Service) GetCronogramaByID(ctx context.Context, id int) (Cronograma, error) {
	return svc.repo.GetCronogramaByID(ctx, id)
}

// CronogramasDaData lists the active schedule entries for a given day.
func (svc *Service) CronogramasDaData(ctx context.Context, data time.Time) ([]Cronograma, error) {
	return svc.repo.QueryCronogramasByData(ctx, data)
}

// UpdateCronograma applies a partial update; nil fields keep their current value.
func (svc *Service) UpdateCronograma(ctx context.Context, id int, uc UpdateCronograma, data *time.Time) (Cronograma, error) {
	cro, err := svc.repo.GetCronogramaByID(ctx, id)
	if err != nil {
		return Cronograma{}, err
	}

	if uc.Titulo != nil {
		cro.Titulo = *uc.Titulo
	}
	if uc.Descricao != nil {
		cro.Descricao = *uc.Descricao
	}
	if data != nil {
		cro.Data = *data
	}
	if uc.HoraInicio != nil {
		cro.HoraInicio = *uc.HoraInicio
	}
	if uc.HoraFim != nil {
		cro.HoraFim = *uc.HoraFim
	}
	if uc.IsAtivo != nil {
		cro.IsAtivo = *uc.IsAtivo
	}
	cro.UpdatedAt = time.Now().UTC()
	if err = svc.repo.UpdateCronograma(ctx, cro); err != nil {
		return Cronograma{}, err
	}
	return cro, nil
}

// DeleteCronograma soft-deletes a schedule entry by flagging it inactive.
func (svc *Service) DeleteCronograma(ctx context.Context, id int) error {
	cro, err := svc.repo.GetCronogramaByID(ctx, id)
	if err != nil {
		return err
	}
	cro.IsAtivo = false
	cro.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCronograma(ctx, cro)
}
