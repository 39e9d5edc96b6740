package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alexseyf/elo-api/core"
)

var (
	// errors
	ErrNotFound    = errors.New("usuário não encontrado")
	ErrEmailExists = errors.New("já existe um usuário com este email")

	// ErrAuthenticationFailed deliberately covers unknown email AND wrong
	// password: callers must not be able to tell which check failed.
	ErrAuthenticationFailed = errors.New("Login ou senha incorretos")

	randCodeFunc = randCode // mockable
)

// RecoveryError is a password-recovery failure exposed with a machine-readable
// discriminator alongside the human message.
type RecoveryError struct {
	Codigo  string
	Message string
}

func (e *RecoveryError) Error() string { return e.Message }

var (
	ErrCamposObrigatorios   = &RecoveryError{"CAMPOS_OBRIGATORIOS", "Todos os campos devem ser informados"}
	ErrCodigoInvalido       = &RecoveryError{"CODIGO_INVALIDO", "Código inválido ou expirado"}
	ErrSenhaIgual           = &RecoveryError{"SENHA_IGUAL", "A nova senha deve ser diferente da senha atual"}
	ErrSenhaIncorreta       = &RecoveryError{"SENHA_INCORRETA", "Senha atual incorreta"}
	ErrEmailNaoEncontrado   = &RecoveryError{"EMAIL_NAO_ENCONTRADO", "Email não encontrado"}
	ErrUsuarioNaoEncontrado = &RecoveryError{"USUARIO_NAO_ENCONTRADO", "Usuário não encontrado"}
)

// NewSenhaInvalidaError wraps password-policy violations in the recovery flow.
func NewSenhaInvalidaError(erros []string) *RecoveryError {
	return &RecoveryError{"VALIDACAO_SENHA", strings.Join(erros, "; ")}
}

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		CreateAuditLog(ctx context.Context, entry AuditLog) (AuditLog, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
		logger  core.Logger
	}
)

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
		logger:  logger,
	}
}

func (svc *Service) CheckEmailUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(context.Background(), email, exclUsers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Nome:      nu.Nome,
		Email:     nu.Email,
		Telefone:  nu.Telefone,
		IsAtivo:   true,
		Roles:     nu.Roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetSenha(nu.Senha); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Authenticate resolves the login credentials to a User.
// Unknown email and wrong password are indistinguishable to the caller.
func (svc *Service) Authenticate(ctx context.Context, email, senha string) (User, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrAuthenticationFailed
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckSenha(senha); err != nil {
		return User{}, ErrAuthenticationFailed
	}
	return usr, nil
}

// LogAction records an audit entry on a separate goroutine.
// The caller's response never waits on it and a failed write is only logged.
func (svc *Service) LogAction(usuarioID int, descricao, complemento string) {
	go func() {
		entry := AuditLog{
			Descricao:   descricao,
			Complemento: complemento,
			UsuarioID:   usuarioID,
			CreatedAt:   time.Now().UTC(),
		}
		if _, err := svc.repo.CreateAuditLog(context.Background(), entry); err != nil {
			svc.logger.Error("creating audit log", errors.Wrap(err, descricao))
		}
	}()
}

// RequestPasswordReset issues a short-lived 4-digit recovery code, stores its
// hash on the account and emails the code to the user.
func (svc *Service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}

	code, err := randCodeFunc()
	if err != nil {
		return errors.Wrap(err, "generating recovery code")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing recovery code")
	}

	expira := time.Now().UTC().Add(svc.conf.ResetCodeTimeoutDelta)
	usr.ResetToken = hash
	usr.ResetTokenExpira = &expira
	usr.UpdatedAt = time.Now().UTC()
	if _, err = svc.repo.UpdateUser(ctx, usr); err != nil {
		return errors.Wrap(err, "storing recovery code")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Nome, Address: usr.Email}},
		Subject: "Recuperação de senha",
		Body:    fmt.Sprintf("%s, seu código de verificação é: %s", usr.Nome, code),
	})
	return nil
}

// ConfirmPasswordReset checks the recovery code and swaps in the new password.
func (svc *Service) ConfirmPasswordReset(ctx context.Context, rs ResetSenha) error {
	if rs.Email == "" || rs.Code == "" || rs.NovaSenha == "" {
		return ErrCamposObrigatorios
	}
	if erros := CheckPassword(rs.NovaSenha); len(erros) > 0 {
		return NewSenhaInvalidaError(erros)
	}

	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(rs.Email, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return ErrEmailNaoEncontrado
		}
		return errors.Wrap(err, "finding user by email")
	}

	if usr.ResetToken == nil {
		return ErrCodigoInvalido
	}
	if usr.CheckSenha(rs.NovaSenha) == nil {
		return ErrSenhaIgual
	}

	expired := usr.ResetTokenExpira == nil || time.Now().UTC().After(*usr.ResetTokenExpira)
	if bcrypt.CompareHashAndPassword(usr.ResetToken, []byte(rs.Code)) != nil || expired {
		return ErrCodigoInvalido
	}

	if err = usr.SetSenha(rs.NovaSenha); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	usr.ResetToken = nil
	usr.ResetTokenExpira = nil
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(ctx, usr)
	return errors.Wrap(err, "resetting password")
}

// ChangePassword performs the first-access password change: the caller proves
// knowledge of the current password and the account is marked as altered.
func (svc *Service) ChangePassword(ctx context.Context, as AlteraSenha) error {
	if as.UserID == 0 || as.SenhaAtual == "" || as.NovaSenha == "" {
		return ErrCamposObrigatorios
	}
	if erros := CheckPassword(as.NovaSenha); len(erros) > 0 {
		return NewSenhaInvalidaError(erros)
	}

	usr, err := svc.repo.GetUserByID(ctx, as.UserID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return ErrUsuarioNaoEncontrado
		}
		return errors.Wrap(err, "finding user by ID")
	}

	if usr.CheckSenha(as.SenhaAtual) != nil {
		return ErrSenhaIncorreta
	}
	if as.SenhaAtual == as.NovaSenha {
		return ErrSenhaIgual
	}

	if err = usr.SetSenha(as.NovaSenha); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	usr.SenhaAlterada = true
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(ctx, usr)
	return errors.Wrap(err, "changing password")
}

// randCode returns a 4-digit recovery code in [1000, 9999].
func randCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
