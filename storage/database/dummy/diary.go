package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/Alexseyf/elo-api/core/diary"
)

var diarioPKCount int

type diaryRepository struct {
	db *DB
}

var _ diary.Repository = (*diaryRepository)(nil) // interface compliance check

func NewDiaryRepository(db *DB) diary.Repository {
	return &diaryRepository{db: db}
}

func (repo *diaryRepository) CreateDiario(ctx context.Context, d diary.Diario) (diary.Diario, error) {
	repo.db.diario.Lock()
	defer repo.db.diario.Unlock()

	diarioPKCount++
	d.ID = diarioPKCount
	for i := range d.PeriodosSono {
		d.PeriodosSono[i].ID = i + 1
		d.PeriodosSono[i].DiarioID = d.ID
	}
	repo.db.diario.table[d.ID] = &d
	return d, nil
}

func (repo *diaryRepository) GetDiarioByID(ctx context.Context, id int) (diary.Diario, error) {
	repo.db.diario.RLock()
	d, ok := repo.db.diario.table[id]
	repo.db.diario.RUnlock()

	if !ok {
		return diary.Diario{}, diary.ErrDiarioNaoEncontrado
	}
	diario := *d
	repo.loadDiarioRelations(&diario)
	return diario, nil
}

func (repo *diaryRepository) QueryAllDiarios(ctx context.Context) ([]diary.Diario, error) {
	repo.db.diario.RLock()
	diarios := make([]diary.Diario, 0, len(repo.db.diario.table))
	for _, d := range repo.db.diario.table {
		diarios = append(diarios, *d)
	}
	repo.db.diario.RUnlock()

	sort.Slice(diarios, func(i, j int) bool { return diarios[i].Data.After(diarios[j].Data) })
	for i := range diarios {
		repo.loadDiarioRelations(&diarios[i])
	}
	return diarios, nil
}

func (repo *diaryRepository) QueryDiariosByAluno(ctx context.Context, alunoID int) ([]diary.Diario, error) {
	all, err := repo.QueryAllDiarios(ctx)
	if err != nil {
		return nil, err
	}

	diarios := make([]diary.Diario, 0)
	for _, d := range all {
		if d.AlunoID == alunoID {
			diarios = append(diarios, d)
		}
	}
	return diarios, nil
}

func (repo *diaryRepository) QueryDiariosByData(ctx context.Context, data time.Time) ([]diary.Diario, error) {
	all, err := repo.QueryAllDiarios(ctx)
	if err != nil {
		return nil, err
	}

	diarios := make([]diary.Diario, 0)
	for _, d := range all {
		if d.Data.Equal(data) {
			diarios = append(diarios, d)
		}
	}
	sort.Slice(diarios, func(i, j int) bool { return diarios[i].AlunoID < diarios[j].AlunoID })
	return diarios, nil
}

func (repo *diaryRepository) DiarioExists(ctx context.Context, alunoID int, data time.Time) (bool, error) {
	repo.db.diario.RLock()
	defer repo.db.diario.RUnlock()

	for _, d := range repo.db.diario.table {
		if d.AlunoID == alunoID && d.Data.Equal(data) {
			return true, nil
		}
	}
	return false, nil
}

func (repo *diaryRepository) loadDiarioRelations(d *diary.Diario) {
	repo.db.aluno.RLock()
	if a, ok := repo.db.aluno.table[d.AlunoID]; ok {
		aluno := *a
		d.Aluno = &aluno
	}
	repo.db.aluno.RUnlock()
}
