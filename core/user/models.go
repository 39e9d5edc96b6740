package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alexseyf/elo-api/core"
)

// Roles (TIPO_USUARIO)
const (
	RoleAdmin       = "ADMIN"
	RoleProfessor   = "PROFESSOR"
	RoleResponsavel = "RESPONSAVEL"
)

var AllRoles = []string{RoleAdmin, RoleProfessor, RoleResponsavel}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID            int      `json:"id"`
	Nome          string   `json:"nome"`
	Email         string   `json:"email"`
	Telefone      string   `json:"telefone"`
	IsAtivo       bool     `json:"isAtivo"`
	SenhaAlterada bool     `json:"senhaAlterada"`
	Roles         []string `json:"roles"`
	SenhaHash     []byte   `json:"-"`

	// password recovery; both nil unless a reset was requested
	ResetToken       []byte     `json:"-"`
	ResetTokenExpira *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"` // UTC
	UpdatedAt time.Time `json:"updatedAt"` // UTC
}

func (u *User) SetSenha(senha string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.SenhaHash = hash
	return nil
}

func (u *User) CheckSenha(senha string) error {
	return bcrypt.CompareHashAndPassword(u.SenhaHash, []byte(senha))
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool       { return u.HasRole(RoleAdmin) }
func (u *User) IsProfessor() bool   { return u.HasRole(RoleProfessor) }
func (u *User) IsResponsavel() bool { return u.HasRole(RoleResponsavel) }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Nome     string   `json:"nome" validate:"required,min=3,max=60"`
	Email    string   `json:"email" validate:"required,email,max=40"`
	Senha    string   `json:"senha" validate:"required,min=6,max=60"`
	Telefone string   `json:"telefone" validate:"required,min=10,max=20"`
	Roles    []string `json:"roles" validate:"required,min=1,allroles"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Nome = core.CleanString(nu.Nome)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	if erros := CheckPassword(nu.Senha); len(erros) > 0 {
		return core.NewValidationError(errors.New(strings.Join(erros, "; ")))
	}
	return svc.CheckEmailUniqueness(nu.Email)
}

// ResetSenha carries a password-recovery confirmation.
type ResetSenha struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	NovaSenha string `json:"novaSenha"`
}

// AlteraSenha carries a first-access (or routine) password change.
type AlteraSenha struct {
	UserID     int    `json:"userId"`
	SenhaAtual string `json:"senhaAtual"`
	NovaSenha  string `json:"novaSenha"`
}

// AuditLog is a best-effort activity record; writes never block a response.
type AuditLog struct {
	ID          int       `json:"id"`
	Descricao   string    `json:"descricao"`
	Complemento string    `json:"complemento"`
	UsuarioID   int       `json:"usuarioId"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}
