package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/activity"
)

type objetivoRow struct {
	ID               int       `db:"id"`
	Codigo           string    `db:"codigo"`
	Descricao        string    `db:"descricao"`
	Grupo            string    `db:"grupo"`
	CampoExperiencia string    `db:"campo_experiencia"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r objetivoRow) toDomain() activity.Objetivo {
	return activity.Objetivo{
		ID:               r.ID,
		Codigo:           r.Codigo,
		Descricao:        r.Descricao,
		Grupo:            r.Grupo,
		CampoExperiencia: r.CampoExperiencia,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type atividadeRow struct {
	ID               int       `db:"id"`
	Ano              int       `db:"ano"`
	Periodo          string    `db:"periodo"`
	QuantHora        int       `db:"quant_hora"`
	Descricao        string    `db:"descricao"`
	Data             time.Time `db:"data"`
	TurmaID          int       `db:"turma_id"`
	CampoExperiencia string    `db:"campo_experiencia"`
	ObjetivoID       int       `db:"objetivo_id"`
	ProfessorID      int       `db:"professor_id"`
	IsAtivo          bool      `db:"is_ativo"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r atividadeRow) toDomain() activity.Atividade {
	return activity.Atividade{
		ID:               r.ID,
		Ano:              r.Ano,
		Periodo:          r.Periodo,
		QuantHora:        r.QuantHora,
		Descricao:        r.Descricao,
		Data:             r.Data,
		TurmaID:          r.TurmaID,
		CampoExperiencia: r.CampoExperiencia,
		ObjetivoID:       r.ObjetivoID,
		ProfessorID:      r.ProfessorID,
		IsAtivo:          r.IsAtivo,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type activityRepository struct {
	db *sqlx.DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *sqlx.DB) activity.Repository {
	return &activityRepository{db: db}
}

func (repo *activityRepository) CreateObjetivo(ctx context.Context, o activity.Objetivo) (activity.Objetivo, error) {
	query := `
		INSERT INTO objetivo (codigo, descricao, grupo, campo_experiencia, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := repo.db.QueryRowxContext(ctx, query, o.Codigo, o.Descricao, o.Grupo, o.CampoExperiencia, o.CreatedAt, o.UpdatedAt).Scan(&o.ID)
	if err != nil {
		return activity.Objetivo{}, errors.Wrap(err, "inserting objective")
	}
	return o, nil
}

func (repo *activityRepository) QueryAllObjetivos(ctx context.Context) ([]activity.Objetivo, error) {
	var rows []objetivoRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM objetivo ORDER BY codigo`); err != nil {
		return nil, errors.Wrap(err, "querying objectives")
	}

	objetivos := make([]activity.Objetivo, len(rows))
	for i, r := range rows {
		objetivos[i] = r.toDomain()
	}
	return objetivos, nil
}

func (repo *activityRepository) GetObjetivoByID(ctx context.Context, id int) (activity.Objetivo, error) {
	var row objetivoRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM objetivo WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return activity.Objetivo{}, activity.ErrObjetivoNaoEncontrado
		}
		return activity.Objetivo{}, errors.Wrap(err, "getting objective by ID")
	}
	return row.toDomain(), nil
}

func (repo *activityRepository) GetObjetivoByCodigo(ctx context.Context, codigo string) (activity.Objetivo, error) {
	var row objetivoRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM objetivo WHERE codigo = $1`, codigo)
	if err != nil {
		if err == sql.ErrNoRows {
			return activity.Objetivo{}, activity.ErrObjetivoNaoEncontrado
		}
		return activity.Objetivo{}, errors.Wrap(err, "getting objective by code")
	}
	return row.toDomain(), nil
}

func (repo *activityRepository) CreateAtividade(ctx context.Context, a activity.Atividade) (activity.Atividade, error) {
	query := `
		INSERT INTO atividade (ano, periodo, quant_hora, descricao, data, turma_id, campo_experiencia, objetivo_id, professor_id, is_ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := repo.db.QueryRowxContext(
		ctx, query,
		a.Ano, a.Periodo, a.QuantHora, a.Descricao, a.Data, a.TurmaID,
		a.CampoExperiencia, a.ObjetivoID, a.ProfessorID, a.IsAtivo, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return activity.Atividade{}, errors.Wrap(err, "inserting activity")
	}
	return a, nil
}

func (repo *activityRepository) QueryAllAtividades(ctx context.Context) ([]activity.Atividade, error) {
	var rows []atividadeRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM atividade WHERE is_ativo ORDER BY data DESC`); err != nil {
		return nil, errors.Wrap(err, "querying activities")
	}
	return repo.toDomainAll(ctx, rows)
}

func (repo *activityRepository) GetAtividadeByID(ctx context.Context, id int) (activity.Atividade, error) {
	var row atividadeRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM atividade WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return activity.Atividade{}, activity.ErrAtividadeNaoEncontrada
		}
		return activity.Atividade{}, errors.Wrap(err, "getting activity by ID")
	}

	a := row.toDomain()
	if err = repo.loadAtividadeRelations(ctx, &a); err != nil {
		return activity.Atividade{}, err
	}
	return a, nil
}

func (repo *activityRepository) QueryAtividadesByProfessor(ctx context.Context, professorID int) ([]activity.Atividade, error) {
	var rows []atividadeRow
	query := `SELECT * FROM atividade WHERE professor_id = $1 AND is_ativo ORDER BY data DESC`
	if err := repo.db.SelectContext(ctx, &rows, query, professorID); err != nil {
		return nil, errors.Wrap(err, "querying teacher activities")
	}
	return repo.toDomainAll(ctx, rows)
}

func (repo *activityRepository) QueryAtividadesByTurma(ctx context.Context, turmaID int) ([]activity.Atividade, error) {
	var rows []atividadeRow
	query := `SELECT * FROM atividade WHERE turma_id = $1 AND is_ativo ORDER BY data DESC`
	if err := repo.db.SelectContext(ctx, &rows, query, turmaID); err != nil {
		return nil, errors.Wrap(err, "querying class activities")
	}
	return repo.toDomainAll(ctx, rows)
}

func (repo *activityRepository) toDomainAll(ctx context.Context, rows []atividadeRow) ([]activity.Atividade, error) {
	atividades := make([]activity.Atividade, len(rows))
	for i, r := range rows {
		a := r.toDomain()
		if err := repo.loadAtividadeRelations(ctx, &a); err != nil {
			return nil, err
		}
		atividades[i] = a
	}
	return atividades, nil
}

func (repo *activityRepository) loadAtividadeRelations(ctx context.Context, a *activity.Atividade) error {
	var oRow objetivoRow
	if err := repo.db.GetContext(ctx, &oRow, `SELECT * FROM objetivo WHERE id = $1`, a.ObjetivoID); err != nil {
		return errors.Wrap(err, "querying activity objective")
	}
	objetivo := oRow.toDomain()
	a.Objetivo = &objetivo
	return nil
}
