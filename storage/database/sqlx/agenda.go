package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/agenda"
)

type eventoRow struct {
	ID         int       `db:"id"`
	Titulo     string    `db:"titulo"`
	Descricao  string    `db:"descricao"`
	Data       time.Time `db:"data"`
	Hora       string    `db:"hora"`
	Local      string    `db:"local"`
	TipoEvento string    `db:"tipo_evento"`
	TurmaID    int       `db:"turma_id"`
	IsAtivo    bool      `db:"is_ativo"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r eventoRow) toDomain() agenda.Evento {
	return agenda.Evento{
		ID:         r.ID,
		Titulo:     r.Titulo,
		Descricao:  r.Descricao,
		Data:       r.Data,
		Hora:       r.Hora,
		Local:      r.Local,
		TipoEvento: r.TipoEvento,
		TurmaID:    r.TurmaID,
		IsAtivo:    r.IsAtivo,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type cronogramaRow struct {
	ID         int       `db:"id"`
	Titulo     string    `db:"titulo"`
	Descricao  string    `db:"descricao"`
	Data       time.Time `db:"data"`
	HoraInicio string    `db:"hora_inicio"`
	HoraFim    string    `db:"hora_fim"`
	IsAtivo    bool      `db:"is_ativo"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r cronogramaRow) toDomain() agenda.Cronograma {
	return agenda.Cronograma{
		ID:         r.ID,
		Titulo:     r.Titulo,
		Descricao:  r.Descricao,
		Data:       r.Data,
		HoraInicio: r.HoraInicio,
		HoraFim:    r.HoraFim,
		IsAtivo:    r.IsAtivo,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type agendaRepository struct {
	db *sqlx.DB
}

var _ agenda.Repository = (*agendaRepository)(nil) // interface compliance check

func NewAgendaRepository(db *sqlx.DB) agenda.Repository {
	return &agendaRepository{db: db}
}

func (repo *agendaRepository) CreateEvento(ctx context.Context, e agenda.Evento) (agenda.Evento, error) {
	query := `
		INSERT INTO evento (titulo, descricao, data, hora, local, tipo_evento, turma_id, is_ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := repo.db.QueryRowxContext(
		ctx, query,
		e.Titulo, e.Descricao, e.Data, e.Hora, e.Local, e.TipoEvento, e.TurmaID,
		e.IsAtivo, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return agenda.Evento{}, errors.Wrap(err, "inserting event")
	}
	return e, nil
}

func (repo *agendaRepository) QueryAllEventos(ctx context.Context) ([]agenda.Evento, error) {
	var rows []eventoRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM evento WHERE is_ativo ORDER BY data, hora`); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}

	eventos := make([]agenda.Evento, len(rows))
	for i, r := range rows {
		eventos[i] = r.toDomain()
	}
	return eventos, nil
}

func (repo *agendaRepository) GetEventoByID(ctx context.Context, id int) (agenda.Evento, error) {
	var row eventoRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM evento WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return agenda.Evento{}, agenda.ErrEventoNaoEncontrado
		}
		return agenda.Evento{}, errors.Wrap(err, "getting event by ID")
	}
	return row.toDomain(), nil
}

func (repo *agendaRepository) QueryEventosByTurma(ctx context.Context, turmaID int) ([]agenda.Evento, error) {
	var rows []eventoRow
	query := `SELECT * FROM evento WHERE turma_id = $1 AND is_ativo ORDER BY data, hora`
	if err := repo.db.SelectContext(ctx, &rows, query, turmaID); err != nil {
		return nil, errors.Wrap(err, "querying class events")
	}

	eventos := make([]agenda.Evento, len(rows))
	for i, r := range rows {
		eventos[i] = r.toDomain()
	}
	return eventos, nil
}

func (repo *agendaRepository) UpdateEvento(ctx context.Context, e agenda.Evento) error {
	query := `
		UPDATE evento
		SET titulo = $1, descricao = $2, data = $3, hora = $4, local = $5,
			tipo_evento = $6, is_ativo = $7, updated_at = $8
		WHERE id = $9`
	res, err := repo.db.ExecContext(ctx, query, e.Titulo, e.Descricao, e.Data, e.Hora, e.Local, e.TipoEvento, e.IsAtivo, e.UpdatedAt, e.ID)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return agenda.ErrEventoNaoEncontrado
	}
	return nil
}

func (repo *agendaRepository) CreateCronograma(ctx context.Context, c agenda.Cronograma) (agenda.Cronograma, error) {
	query := `
		INSERT INTO cronograma (titulo, descricao, data, hora_inicio, hora_fim, is_ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := repo.db.QueryRowxContext(
		ctx, query,
		c.Titulo, c.Descricao, c.Data, c.HoraInicio, c.HoraFim, c.IsAtivo, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return agenda.Cronograma{}, errors.Wrap(err, "inserting schedule entry")
	}
	return c, nil
}

func (repo *agendaRepository) QueryAllCronogramas(ctx context.Context) ([]agenda.Cronograma, error) {
	var rows []cronogramaRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM cronograma WHERE is_ativo ORDER BY data, hora_inicio`); err != nil {
		return nil, errors.Wrap(err, "querying schedule entries")
	}

	cronogramas := make([]agenda.Cronograma, len(rows))
	for i, r := range rows {
		cronogramas[i] = r.toDomain()
	}
	return cronogramas, nil
}

func (repo *agendaRepository) GetCronogramaByID(ctx context.Context, id int) (agenda.Cronograma, error) {
	var row cronogramaRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM cronograma WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return agenda.Cronograma{}, agenda.ErrCronogramaNaoEncontrado
		}
		return agenda.Cronograma{}, errors.Wrap(err, "getting schedule entry by ID")
	}
	return row.toDomain(), nil
}

func (repo *agendaRepository) QueryCronogramasByData(ctx context.Context, data time.Time) ([]agenda.Cronograma, error) {
	var rows []cronogramaRow
	query := `SELECT * FROM cronograma WHERE data = $1 AND is_ativo ORDER BY hora_inicio`
	if err := repo.db.SelectContext(ctx, &rows, query, data); err != nil {
		return nil, errors.Wrap(err, "querying schedule entries by date")
	}

	cronogramas := make([]agenda.Cronograma, len(rows))
	for i, r := range rows {
		cronogramas[i] = r.toDomain()
	}
	return cronogramas, nil
}

func (repo *agendaRepository) UpdateCronograma(ctx context.Context, c agenda.Cronograma) error {
	query := `
		UPDATE cronograma
		SET titulo = $1, descricao = $2, data = $3, hora_inicio = $4, hora_fim = $5,
			is_ativo = $6, updated_at = $7
		WHERE id = $8`
	res, err := repo.db.ExecContext(ctx, query, c.Titulo, c.Descricao, c.Data, c.HoraInicio, c.HoraFim, c.IsAtivo, c.UpdatedAt, c.ID)
	if err != nil {
		return errors.Wrap(err, "updating schedule entry")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return agenda.ErrCronogramaNaoEncontrado
	}
	return nil
}
