package dummydb

import (
	"context"
	"sort"

	"github.com/Alexseyf/elo-api/core/activity"
)

var (
	objetivoPKCount  int
	atividadePKCount int
)

type activityRepository struct {
	db *DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) activity.Repository {
	return &activityRepository{db: db}
}

func (repo *activityRepository) CreateObjetivo(ctx context.Context, o activity.Objetivo) (activity.Objetivo, error) {
	repo.db.objetivo.Lock()
	defer repo.db.objetivo.Unlock()

	objetivoPKCount++
	o.ID = objetivoPKCount
	repo.db.objetivo.table[o.ID] = &o
	return o, nil
}

func (repo *activityRepository) QueryAllObjetivos(ctx context.Context) ([]activity.Objetivo, error) {
	repo.db.objetivo.RLock()
	defer repo.db.objetivo.RUnlock()

	objetivos := make([]activity.Objetivo, 0, len(repo.db.objetivo.table))
	for _, o := range repo.db.objetivo.table {
		objetivos = append(objetivos, *o)
	}
	sort.Slice(objetivos, func(i, j int) bool { return objetivos[i].Codigo < objetivos[j].Codigo })
	return objetivos, nil
}

func (repo *activityRepository) GetObjetivoByID(ctx context.Context, id int) (activity.Objetivo, error) {
	repo.db.objetivo.RLock()
	defer repo.db.objetivo.RUnlock()

	if o, ok := repo.db.objetivo.table[id]; ok {
		return *o, nil
	}
	return activity.Objetivo{}, activity.ErrObjetivoNaoEncontrado
}

func (repo *activityRepository) GetObjetivoByCodigo(ctx context.Context, codigo string) (activity.Objetivo, error) {
	repo.db.objetivo.RLock()
	defer repo.db.objetivo.RUnlock()

	for _, o := range repo.db.objetivo.table {
		if o.Codigo == codigo {
			return *o, nil
		}
	}
	return activity.Objetivo{}, activity.ErrObjetivoNaoEncontrado
}

func (repo *activityRepository) CreateAtividade(ctx context.Context, a activity.Atividade) (activity.Atividade, error) {
	repo.db.atividade.Lock()
	defer repo.db.atividade.Unlock()

	atividadePKCount++
	a.ID = atividadePKCount
	repo.db.atividade.table[a.ID] = &a
	return a, nil
}

func (repo *activityRepository) QueryAllAtividades(ctx context.Context) ([]activity.Atividade, error) {
	repo.db.atividade.RLock()
	atividades := make([]activity.Atividade, 0, len(repo.db.atividade.table))
	for _, a := range repo.db.atividade.table {
		if a.IsAtivo {
			atividades = append(atividades, *a)
		}
	}
	repo.db.atividade.RUnlock()

	sort.Slice(atividades, func(i, j int) bool { return atividades[i].Data.After(atividades[j].Data) })
	for i := range atividades {
		repo.loadAtividadeRelations(&atividades[i])
	}
	return atividades, nil
}

func (repo *activityRepository) GetAtividadeByID(ctx context.Context, id int) (activity.Atividade, error) {
	repo.db.atividade.RLock()
	a, ok := repo.db.atividade.table[id]
	repo.db.atividade.RUnlock()

	if !ok {
		return activity.Atividade{}, activity.ErrAtividadeNaoEncontrada
	}
	atividade := *a
	repo.loadAtividadeRelations(&atividade)
	return atividade, nil
}

func (repo *activityRepository) QueryAtividadesByProfessor(ctx context.Context, professorID int) ([]activity.Atividade, error) {
	all, err := repo.QueryAllAtividades(ctx)
	if err != nil {
		return nil, err
	}

	atividades := make([]activity.Atividade, 0)
	for _, a := range all {
		if a.ProfessorID == professorID {
			atividades = append(atividades, a)
		}
	}
	return atividades, nil
}

func (repo *activityRepository) QueryAtividadesByTurma(ctx context.Context, turmaID int) ([]activity.Atividade, error) {
	all, err := repo.QueryAllAtividades(ctx)
	if err != nil {
		return nil, err
	}

	atividades := make([]activity.Atividade, 0)
	for _, a := range all {
		if a.TurmaID == turmaID {
			atividades = append(atividades, a)
		}
	}
	return atividades, nil
}

func (repo *activityRepository) loadAtividadeRelations(a *activity.Atividade) {
	repo.db.objetivo.RLock()
	if o, ok := repo.db.objetivo.table[a.ObjetivoID]; ok {
		objetivo := *o
		a.Objetivo = &objetivo
	}
	repo.db.objetivo.RUnlock()
}
