package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/Alexseyf/elo-api/core/agenda"
)

var (
	eventoPKCount     int
	cronogramaPKCount int
)

type agendaRepository struct {
	db *DB
}

var _ agenda.Repository = (*agendaRepository)(nil) // interface compliance check

func NewAgendaRepository(db *DB) agenda.Repository {
	return &agendaRepository{db: db}
}

func (repo *agendaRepository) CreateEvento(ctx context.Context, e agenda.Evento) (agenda.Evento, error) {
	repo.db.evento.Lock()
	defer repo.db.evento.Unlock()

	eventoPKCount++
	e.ID = eventoPKCount
	repo.db.evento.table[e.ID] = &e
	return e, nil
}

func (repo *agendaRepository) QueryAllEventos(ctx context.Context) ([]agenda.Evento, error) {
	repo.db.evento.RLock()
	defer repo.db.evento.RUnlock()

	eventos := make([]agenda.Evento, 0, len(repo.db.evento.table))
	for _, e := range repo.db.evento.table {
		if e.IsAtivo {
			eventos = append(eventos, *e)
		}
	}
	sort.Slice(eventos, func(i, j int) bool {
		if !eventos[i].Data.Equal(eventos[j].Data) {
			return eventos[i].Data.Before(eventos[j].Data)
		}
		return eventos[i].Hora < eventos[j].Hora
	})
	return eventos, nil
}

func (repo *agendaRepository) GetEventoByID(ctx context.Context, id int) (agenda.Evento, error) {
	repo.db.evento.RLock()
	defer repo.db.evento.RUnlock()

	if e, ok := repo.db.evento.table[id]; ok {
		return *e, nil
	}
	return agenda.Evento{}, agenda.ErrEventoNaoEncontrado
}

func (repo *agendaRepository) QueryEventosByTurma(ctx context.Context, turmaID int) ([]agenda.Evento, error) {
	all, err := repo.QueryAllEventos(ctx)
	if err != nil {
		return nil, err
	}

	eventos := make([]agenda.Evento, 0)
	for _, e := range all {
		if e.TurmaID == turmaID {
			eventos = append(eventos, e)
		}
	}
	return eventos, nil
}

func (repo *agendaRepository) UpdateEvento(ctx context.Context, e agenda.Evento) error {
	repo.db.evento.Lock()
	defer repo.db.evento.Unlock()

	if _, ok := repo.db.evento.table[e.ID]; !ok {
		return agenda.ErrEventoNaoEncontrado
	}
	repo.db.evento.table[e.ID] = &e
	return nil
}

func (repo *agendaRepository) CreateCronograma(ctx context.Context, c agenda.Cronograma) (agenda.Cronograma, error) {
	repo.db.cronograma.Lock()
	defer repo.db.cronograma.Unlock()

	cronogramaPKCount++
	c.ID = cronogramaPKCount
	repo.db.cronograma.table[c.ID] = &c
	return c, nil
}

func (repo *agendaRepository) QueryAllCronogramas(ctx context.Context) ([]agenda.Cronograma, error) {
	repo.db.cronograma.RLock()
	defer repo.db.cronograma.RUnlock()

	cronogramas := make([]agenda.Cronograma, 0, len(repo.db.cronograma.table))
	for _, c := range repo.db.cronograma.table {
		if c.IsAtivo {
			cronogramas = append(cronogramas, *c)
		}
	}
	sort.Slice(cronogramas, func(i, j int) bool {
		if !cronogramas[i].Data.Equal(cronogramas[j].Data) {
			return cronogramas[i].Data.Before(cronogramas[j].Data)
		}
		return cronogramas[i].HoraInicio < cronogramas[j].HoraInicio
	})
	return cronogramas, nil
}

func (repo *agendaRepository) GetCronogramaByID(ctx context.Context, id int) (agenda.Cronograma, error) {
	repo.db.cronograma.RLock()
	defer repo.db.cronograma.RUnlock()

	if c, ok := repo.db.cronograma.table[id]; ok {
		return *c, nil
	}
	return agenda.Cronograma{}, agenda.ErrCronogramaNaoEncontrado
}

func (repo *agendaRepository) QueryCronogramasByData(ctx context.Context, data time.Time) ([]agenda.Cronograma, error) {
	all, err := repo.QueryAllCronogramas(ctx)
	if err != nil {
		return nil, err
	}

	cronogramas := make([]agenda.Cronograma, 0)
	for _, c := range all {
		if c.Data.Equal(data) {
			cronogramas = append(cronogramas, c)
		}
	}
	return cronogramas, nil
}

func (repo *agendaRepository) UpdateCronograma(ctx context.Context, c agenda.Cronograma) error {
	repo.db.cronograma.Lock()
	defer repo.db.cronograma.Unlock()

	if _, ok := repo.db.cronograma.table[c.ID]; !ok {
		return agenda.ErrCronogramaNaoEncontrado
	}
	repo.db.cronograma.table[c.ID] = &c
	return nil
}
