package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/diary"
)

type diarioRow struct {
	ID          int            `db:"id"`
	Data        time.Time      `db:"data"`
	Observacoes string         `db:"observacoes"`
	AlunoID     int            `db:"aluno_id"`
	Disposicao  sql.NullString `db:"disposicao"`
	LancheManha sql.NullString `db:"lanche_manha"`
	Almoco      sql.NullString `db:"almoco"`
	LancheTarde sql.NullString `db:"lanche_tarde"`
	Leite       sql.NullString `db:"leite"`
	Evacuacao   sql.NullString `db:"evacuacao"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r diarioRow) toDomain() diary.Diario {
	return diary.Diario{
		ID:          r.ID,
		Data:        r.Data,
		Observacoes: r.Observacoes,
		AlunoID:     r.AlunoID,
		Disposicao:  r.Disposicao.String,
		LancheManha: r.LancheManha.String,
		Almoco:      r.Almoco.String,
		LancheTarde: r.LancheTarde.String,
		Leite:       r.Leite.String,
		Evacuacao:   r.Evacuacao.String,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type periodoSonoRow struct {
	ID          int    `db:"id"`
	HoraDormiu  string `db:"hora_dormiu"`
	HoraAcordou string `db:"hora_acordou"`
	TempoTotal  string `db:"tempo_total"`
	DiarioID    int    `db:"diario_id"`
}

type diaryRepository struct {
	db *sqlx.DB
}

var _ diary.Repository = (*diaryRepository)(nil) // interface compliance check

func NewDiaryRepository(db *sqlx.DB) diary.Repository {
	return &diaryRepository{db: db}
}

func (repo *diaryRepository) CreateDiario(ctx context.Context, d diary.Diario) (diary.Diario, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return diary.Diario{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO diario (data, observacoes, aluno_id, disposicao, lanche_manha, almoco, lanche_tarde, leite, evacuacao, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11)
		RETURNING id`
	err = tx.QueryRowxContext(
		ctx, query,
		d.Data, d.Observacoes, d.AlunoID, d.Disposicao, d.LancheManha, d.Almoco,
		d.LancheTarde, d.Leite, d.Evacuacao, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		return diary.Diario{}, errors.Wrap(err, "inserting diary")
	}

	for i, ps := range d.PeriodosSono {
		err = tx.QueryRowxContext(
			ctx,
			`INSERT INTO periodo_sono (hora_dormiu, hora_acordou, tempo_total, diario_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			ps.HoraDormiu, ps.HoraAcordou, ps.TempoTotal, d.ID,
		).Scan(&d.PeriodosSono[i].ID)
		if err != nil {
			return diary.Diario{}, errors.Wrap(err, "inserting sleep period")
		}
		d.PeriodosSono[i].DiarioID = d.ID
	}
	for _, item := range d.ItensProvidencia {
		if _, err = tx.ExecContext(ctx, `INSERT INTO item_providencia (diario_id, item) VALUES ($1, $2)`, d.ID, item); err != nil {
			return diary.Diario{}, errors.Wrap(err, "inserting supply item")
		}
	}

	if err = tx.Commit(); err != nil {
		return diary.Diario{}, errors.Wrap(err, "committing transaction")
	}
	return d, nil
}

func (repo *diaryRepository) GetDiarioByID(ctx context.Context, id int) (diary.Diario, error) {
	var row diarioRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM diario WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return diary.Diario{}, diary.ErrDiarioNaoEncontrado
		}
		return diary.Diario{}, errors.Wrap(err, "getting diary by ID")
	}

	d := row.toDomain()
	if err = repo.loadDiarioRelations(ctx, &d); err != nil {
		return diary.Diario{}, err
	}
	return d, nil
}

func (repo *diaryRepository) QueryAllDiarios(ctx context.Context) ([]diary.Diario, error) {
	var rows []diarioRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM diario ORDER BY data DESC`); err != nil {
		return nil, errors.Wrap(err, "querying diaries")
	}
	return repo.toDomainAll(ctx, rows)
}

func (repo *diaryRepository) QueryDiariosByAluno(ctx context.Context, alunoID int) ([]diary.Diario, error) {
	var rows []diarioRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM diario WHERE aluno_id = $1 ORDER BY data DESC`, alunoID); err != nil {
		return nil, errors.Wrap(err, "querying student diaries")
	}
	return repo.toDomainAll(ctx, rows)
}

func (repo *diaryRepository) QueryDiariosByData(ctx context.Context, data time.Time) ([]diary.Diario, error) {
	var rows []diarioRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM diario WHERE data = $1 ORDER BY aluno_id`, data); err != nil {
		return nil, errors.Wrap(err, "querying diaries by date")
	}
	return repo.toDomainAll(ctx, rows)
}

func (repo *diaryRepository) DiarioExists(ctx context.Context, alunoID int, data time.Time) (bool, error) {
	var count int
	err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM diario WHERE aluno_id = $1 AND data = $2`, alunoID, data)
	if err != nil {
		return false, errors.Wrap(err, "checking diary existence")
	}
	return count > 0, nil
}

func (repo *diaryRepository) toDomainAll(ctx context.Context, rows []diarioRow) ([]diary.Diario, error) {
	diarios := make([]diary.Diario, len(rows))
	for i, r := range rows {
		d := r.toDomain()
		if err := repo.loadDiarioRelations(ctx, &d); err != nil {
			return nil, err
		}
		diarios[i] = d
	}
	return diarios, nil
}

func (repo *diaryRepository) loadDiarioRelations(ctx context.Context, d *diary.Diario) error {
	var psRows []periodoSonoRow
	if err := repo.db.SelectContext(ctx, &psRows, `SELECT * FROM periodo_sono WHERE diario_id = $1 ORDER BY id`, d.ID); err != nil {
		return errors.Wrap(err, "querying sleep periods")
	}
	d.PeriodosSono = make([]diary.PeriodoSono, len(psRows))
	for i, r := range psRows {
		d.PeriodosSono[i] = diary.PeriodoSono{
			ID:          r.ID,
			HoraDormiu:  r.HoraDormiu,
			HoraAcordou: r.HoraAcordou,
			TempoTotal:  r.TempoTotal,
			DiarioID:    r.DiarioID,
		}
	}

	if err := repo.db.SelectContext(ctx, &d.ItensProvidencia, `SELECT item FROM item_providencia WHERE diario_id = $1 ORDER BY item`, d.ID); err != nil {
		return errors.Wrap(err, "querying supply items")
	}

	var aRow alunoRow
	if err := repo.db.GetContext(ctx, &aRow, `SELECT * FROM aluno WHERE id = $1`, d.AlunoID); err != nil {
		return errors.Wrap(err, "querying diary student")
	}
	aluno := aRow.toDomain()
	d.Aluno = &aluno
	return nil
}
