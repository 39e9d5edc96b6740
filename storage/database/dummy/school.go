package dummydb

import (
	"context"
	"sort"

	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

var (
	turmaPKCount int
	alunoPKCount int
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CreateTurma(ctx context.Context, t school.Turma) (school.Turma, error) {
	repo.db.turma.Lock()
	defer repo.db.turma.Unlock()

	turmaPKCount++
	t.ID = turmaPKCount
	repo.db.turma.table[t.ID] = &t
	return t, nil
}

func (repo *schoolRepository) QueryAllTurmas(ctx context.Context) ([]school.Turma, error) {
	repo.db.turma.RLock()
	turmas := make([]school.Turma, 0, len(repo.db.turma.table))
	for _, t := range repo.db.turma.table {
		turmas = append(turmas, *t)
	}
	repo.db.turma.RUnlock()

	sort.Slice(turmas, func(i, j int) bool { return turmas[i].ID < turmas[j].ID })
	for i := range turmas {
		repo.loadTurmaRelations(&turmas[i])
	}
	return turmas, nil
}

func (repo *schoolRepository) GetTurmaByID(ctx context.Context, id int) (school.Turma, error) {
	repo.db.turma.RLock()
	t, ok := repo.db.turma.table[id]
	repo.db.turma.RUnlock()

	if !ok {
		return school.Turma{}, school.ErrTurmaNaoEncontrada
	}
	turma := *t
	repo.loadTurmaRelations(&turma)
	return turma, nil
}

func (repo *schoolRepository) AssignProfessor(ctx context.Context, usuarioID, turmaID int) error {
	repo.db.professorTurma.add(usuarioID, turmaID)
	return nil
}

func (repo *schoolRepository) QueryTurmasByProfessor(ctx context.Context, usuarioID int) ([]school.Turma, error) {
	turmas := make([]school.Turma, 0)
	for _, turmaID := range repo.db.professorTurma.rightsOf(usuarioID) {
		t, err := repo.GetTurmaByID(ctx, turmaID)
		if err != nil {
			return nil, err
		}
		turmas = append(turmas, t)
	}
	return turmas, nil
}

func (repo *schoolRepository) CreateAluno(ctx context.Context, a school.Aluno) (school.Aluno, error) {
	repo.db.aluno.Lock()
	defer repo.db.aluno.Unlock()

	alunoPKCount++
	a.ID = alunoPKCount
	repo.db.aluno.table[a.ID] = &a
	return a, nil
}

func (repo *schoolRepository) QueryAllAlunos(ctx context.Context) ([]school.Aluno, error) {
	repo.db.aluno.RLock()
	alunos := make([]school.Aluno, 0, len(repo.db.aluno.table))
	for _, a := range repo.db.aluno.table {
		alunos = append(alunos, *a)
	}
	repo.db.aluno.RUnlock()

	sort.Slice(alunos, func(i, j int) bool { return alunos[i].ID < alunos[j].ID })
	for i := range alunos {
		repo.loadAlunoRelations(&alunos[i])
	}
	return alunos, nil
}

func (repo *schoolRepository) GetAlunoByID(ctx context.Context, id int) (school.Aluno, error) {
	repo.db.aluno.RLock()
	a, ok := repo.db.aluno.table[id]
	repo.db.aluno.RUnlock()

	if !ok {
		return school.Aluno{}, school.ErrAlunoNaoEncontrado
	}
	aluno := *a
	repo.loadAlunoRelations(&aluno)
	return aluno, nil
}

func (repo *schoolRepository) AssignResponsavel(ctx context.Context, usuarioID, alunoID int) error {
	repo.db.responsavelAluno.add(usuarioID, alunoID)
	return nil
}

func (repo *schoolRepository) QueryAlunosByResponsavel(ctx context.Context, usuarioID int) ([]school.Aluno, error) {
	alunos := make([]school.Aluno, 0)
	for _, alunoID := range repo.db.responsavelAluno.rightsOf(usuarioID) {
		a, err := repo.GetAlunoByID(ctx, alunoID)
		if err != nil {
			return nil, err
		}
		alunos = append(alunos, a)
	}
	return alunos, nil
}

func (repo *schoolRepository) loadTurmaRelations(t *school.Turma) {
	repo.db.user.RLock()
	t.Professores = make([]user.User, 0)
	for _, usuarioID := range repo.db.professorTurma.leftsOf(t.ID) {
		if usr, ok := repo.db.user.table[usuarioID]; ok {
			t.Professores = append(t.Professores, *usr)
		}
	}
	repo.db.user.RUnlock()

	repo.db.aluno.RLock()
	t.Alunos = make([]school.Aluno, 0)
	for _, a := range repo.db.aluno.table {
		if a.TurmaID == t.ID {
			t.Alunos = append(t.Alunos, *a)
		}
	}
	repo.db.aluno.RUnlock()
	sort.Slice(t.Alunos, func(i, j int) bool { return t.Alunos[i].ID < t.Alunos[j].ID })
}

func (repo *schoolRepository) loadAlunoRelations(a *school.Aluno) {
	repo.db.turma.RLock()
	if t, ok := repo.db.turma.table[a.TurmaID]; ok {
		turma := *t
		a.Turma = &turma
	}
	repo.db.turma.RUnlock()

	repo.db.user.RLock()
	a.Responsaveis = make([]user.User, 0)
	for _, usuarioID := range repo.db.responsavelAluno.leftsOf(a.ID) {
		if usr, ok := repo.db.user.table[usuarioID]; ok {
			a.Responsaveis = append(a.Responsaveis, *usr)
		}
	}
	repo.db.user.RUnlock()
}
