package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

type turmaRow struct {
	ID        int       `db:"id"`
	Nome      string    `db:"nome"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r turmaRow) toDomain() school.Turma {
	return school.Turma{
		ID:        r.ID,
		Nome:      r.Nome,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type alunoRow struct {
	ID        int       `db:"id"`
	Nome      string    `db:"nome"`
	DataNasc  time.Time `db:"data_nasc"`
	TurmaID   int       `db:"turma_id"`
	IsAtivo   bool      `db:"is_ativo"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r alunoRow) toDomain() school.Aluno {
	return school.Aluno{
		ID:        r.ID,
		Nome:      r.Nome,
		DataNasc:  r.DataNasc,
		TurmaID:   r.TurmaID,
		IsAtivo:   r.IsAtivo,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type schoolRepository struct {
	db *sqlx.DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *sqlx.DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CreateTurma(ctx context.Context, t school.Turma) (school.Turma, error) {
	query := `
		INSERT INTO turma (nome, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := repo.db.QueryRowxContext(ctx, query, t.Nome, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	if err != nil {
		return school.Turma{}, errors.Wrap(err, "inserting class")
	}
	return t, nil
}

func (repo *schoolRepository) QueryAllTurmas(ctx context.Context) ([]school.Turma, error) {
	var rows []turmaRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM turma ORDER BY nome`); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}

	turmas := make([]school.Turma, len(rows))
	for i, r := range rows {
		t := r.toDomain()
		if err := repo.loadTurmaRelations(ctx, &t); err != nil {
			return nil, err
		}
		turmas[i] = t
	}
	return turmas, nil
}

func (repo *schoolRepository) GetTurmaByID(ctx context.Context, id int) (school.Turma, error) {
	var row turmaRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM turma WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.Turma{}, school.ErrTurmaNaoEncontrada
		}
		return school.Turma{}, errors.Wrap(err, "getting class by ID")
	}

	t := row.toDomain()
	if err = repo.loadTurmaRelations(ctx, &t); err != nil {
		return school.Turma{}, err
	}
	return t, nil
}

func (repo *schoolRepository) AssignProfessor(ctx context.Context, usuarioID, turmaID int) error {
	query := `
		INSERT INTO professor_turma (usuario_id, turma_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, usuarioID, turmaID); err != nil {
		return errors.Wrap(err, "assigning teacher to class")
	}
	return nil
}

func (repo *schoolRepository) QueryTurmasByProfessor(ctx context.Context, usuarioID int) ([]school.Turma, error) {
	query := `
		SELECT t.* FROM turma t
		JOIN professor_turma pt ON pt.turma_id = t.id
		WHERE pt.usuario_id = $1
		ORDER BY t.nome`
	var rows []turmaRow
	if err := repo.db.SelectContext(ctx, &rows, query, usuarioID); err != nil {
		return nil, errors.Wrap(err, "querying teacher classes")
	}

	turmas := make([]school.Turma, len(rows))
	for i, r := range rows {
		t := r.toDomain()
		if err := repo.loadTurmaRelations(ctx, &t); err != nil {
			return nil, err
		}
		turmas[i] = t
	}
	return turmas, nil
}

func (repo *schoolRepository) CreateAluno(ctx context.Context, a school.Aluno) (school.Aluno, error) {
	query := `
		INSERT INTO aluno (nome, data_nasc, turma_id, is_ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := repo.db.QueryRowxContext(ctx, query, a.Nome, a.DataNasc, a.TurmaID, a.IsAtivo, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if err != nil {
		return school.Aluno{}, errors.Wrap(err, "inserting student")
	}
	return a, nil
}

func (repo *schoolRepository) QueryAllAlunos(ctx context.Context) ([]school.Aluno, error) {
	var rows []alunoRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM aluno ORDER BY nome`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	alunos := make([]school.Aluno, len(rows))
	for i, r := range rows {
		a := r.toDomain()
		if err := repo.loadAlunoRelations(ctx, &a); err != nil {
			return nil, err
		}
		alunos[i] = a
	}
	return alunos, nil
}

func (repo *schoolRepository) GetAlunoByID(ctx context.Context, id int) (school.Aluno, error) {
	var row alunoRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM aluno WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return school.Aluno{}, school.ErrAlunoNaoEncontrado
		}
		return school.Aluno{}, errors.Wrap(err, "getting student by ID")
	}

	a := row.toDomain()
	if err = repo.loadAlunoRelations(ctx, &a); err != nil {
		return school.Aluno{}, err
	}
	return a, nil
}

func (repo *schoolRepository) AssignResponsavel(ctx context.Context, usuarioID, alunoID int) error {
	query := `
		INSERT INTO responsavel_aluno (usuario_id, aluno_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, usuarioID, alunoID); err != nil {
		return errors.Wrap(err, "assigning guardian to student")
	}
	return nil
}

func (repo *schoolRepository) QueryAlunosByResponsavel(ctx context.Context, usuarioID int) ([]school.Aluno, error) {
	query := `
		SELECT a.* FROM aluno a
		JOIN responsavel_aluno ra ON ra.aluno_id = a.id
		WHERE ra.usuario_id = $1
		ORDER BY a.nome`
	var rows []alunoRow
	if err := repo.db.SelectContext(ctx, &rows, query, usuarioID); err != nil {
		return nil, errors.Wrap(err, "querying guardian students")
	}

	alunos := make([]school.Aluno, len(rows))
	for i, r := range rows {
		a := r.toDomain()
		if err := repo.loadAlunoRelations(ctx, &a); err != nil {
			return nil, err
		}
		alunos[i] = a
	}
	return alunos, nil
}

func (repo *schoolRepository) loadTurmaRelations(ctx context.Context, t *school.Turma) error {
	profQuery := `
		SELECT u.* FROM usuario u
		JOIN professor_turma pt ON pt.usuario_id = u.id
		WHERE pt.turma_id = $1
		ORDER BY u.nome`
	var profRows []userRow
	if err := repo.db.SelectContext(ctx, &profRows, profQuery, t.ID); err != nil {
		return errors.Wrap(err, "querying class teachers")
	}
	t.Professores = make([]user.User, len(profRows))
	for i, r := range profRows {
		t.Professores[i] = r.toDomain()
	}

	var alunoRows []alunoRow
	if err := repo.db.SelectContext(ctx, &alunoRows, `SELECT * FROM aluno WHERE turma_id = $1 ORDER BY nome`, t.ID); err != nil {
		return errors.Wrap(err, "querying class students")
	}
	t.Alunos = make([]school.Aluno, len(alunoRows))
	for i, r := range alunoRows {
		t.Alunos[i] = r.toDomain()
	}
	return nil
}

func (repo *schoolRepository) loadAlunoRelations(ctx context.Context, a *school.Aluno) error {
	var tRow turmaRow
	if err := repo.db.GetContext(ctx, &tRow, `SELECT * FROM turma WHERE id = $1`, a.TurmaID); err != nil {
		return errors.Wrap(err, "querying student class")
	}
	turma := tRow.toDomain()
	a.Turma = &turma

	respQuery := `
		SELECT u.* FROM usuario u
		JOIN responsavel_aluno ra ON ra.usuario_id = u.id
		WHERE ra.aluno_id = $1
		ORDER BY u.nome`
	var respRows []userRow
	if err := repo.db.SelectContext(ctx, &respRows, respQuery, a.ID); err != nil {
		return errors.Wrap(err, "querying student guardians")
	}
	a.Responsaveis = make([]user.User, len(respRows))
	for i, r := range respRows {
		a.Responsaveis[i] = r.toDomain()
	}
	return nil
}
