package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/user"
)

type userRow struct {
	ID               int            `db:"id"`
	Nome             string         `db:"nome"`
	Email            string         `db:"email"`
	Telefone         string         `db:"telefone"`
	IsAtivo          bool           `db:"is_ativo"`
	SenhaAlterada    bool           `db:"senha_alterada"`
	Roles            pq.StringArray `db:"roles"`
	SenhaHash        []byte         `db:"senha_hash"`
	ResetToken       []byte         `db:"reset_token"`
	ResetTokenExpira *time.Time     `db:"reset_token_expira"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r userRow) toDomain() user.User {
	return user.User{
		ID:               r.ID,
		Nome:             r.Nome,
		Email:            r.Email,
		Telefone:         r.Telefone,
		IsAtivo:          r.IsAtivo,
		SenhaAlterada:    r.SenhaAlterada,
		Roles:            r.Roles,
		SenhaHash:        r.SenhaHash,
		ResetToken:       r.ResetToken,
		ResetTokenExpira: r.ResetTokenExpira,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	query := `SELECT COUNT(*) FROM usuario WHERE email = $1`
	args := []interface{}{email}
	if len(excludedUsers) > 0 {
		ids := make([]int64, len(excludedUsers))
		for i, usr := range excludedUsers {
			ids[i] = int64(usr.ID)
		}
		query += ` AND NOT (id = ANY($2))`
		args = append(args, pq.Array(ids))
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
		INSERT INTO usuario (nome, email, telefone, is_ativo, senha_alterada, roles, senha_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := repo.db.QueryRowxContext(
		ctx, query,
		usr.Nome, usr.Email, usr.Telefone, usr.IsAtivo, usr.SenhaAlterada,
		pq.StringArray(usr.Roles), usr.SenhaHash, usr.CreatedAt, usr.UpdatedAt,
	).Scan(&usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM usuario ORDER BY nome`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	users := make([]user.User, len(rows))
	for i, r := range rows {
		users[i] = r.toDomain()
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM usuario WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by ID")
	}
	return row.toDomain(), nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM usuario WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by email")
	}
	return row.toDomain(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
		UPDATE usuario
		SET nome = $1, email = $2, telefone = $3, is_ativo = $4, senha_alterada = $5,
			roles = $6, senha_hash = $7, reset_token = $8, reset_token_expira = $9, updated_at = $10
		WHERE id = $11`
	res, err := repo.db.ExecContext(
		ctx, query,
		usr.Nome, usr.Email, usr.Telefone, usr.IsAtivo, usr.SenhaAlterada,
		pq.StringArray(usr.Roles), usr.SenhaHash, usr.ResetToken, usr.ResetTokenExpira,
		usr.UpdatedAt, usr.ID,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) CreateAuditLog(ctx context.Context, entry user.AuditLog) (user.AuditLog, error) {
	query := `
		INSERT INTO log_sistema (descricao, complemento, usuario_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := repo.db.QueryRowxContext(ctx, query, entry.Descricao, entry.Complemento, entry.UsuarioID, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		return user.AuditLog{}, errors.Wrap(err, "inserting audit log")
	}
	return entry, nil
}
