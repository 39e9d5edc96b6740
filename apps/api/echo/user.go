package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/user"
)

type userApi struct {
	svc      *user.Service
	auth     *jwtAuth
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *jwtAuth, svc *user.Service, validate *validator.Validate) {
	api := userApi{
		svc:      svc,
		auth:     auth,
		validate: validate,
	}

	// un-authed endpoints
	g.POST("/login", api.login)
	g.POST("/recupera-senha", api.recuperaSenha)
	g.POST("/valida-senha", api.validaSenha)

	ug := g.Group("/usuarios")

	// authed endpoints
	ug.POST("", api.create, jwt, roleMiddleware(user.RoleAdmin))
	ug.GET("", api.query, jwt, roleMiddleware(user.RoleAdmin))
	ug.PATCH("/alterar-senha", api.alterarSenha, jwt)
}

// Handlers

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}

	// a missing field fails exactly like bad credentials
	if data.Email == "" || data.Senha == "" {
		return user.ErrAuthenticationFailed
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Senha)
	if err != nil {
		return err
	}

	token, err := api.auth.generateToken(api.auth.getUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	api.svc.LogAction(usr.ID, "Login Realizado", usr.Email)

	return ctx.JSON(http.StatusOK, LoginResponse{
		ID:             usr.ID,
		Nome:           usr.Nome,
		Email:          usr.Email,
		Roles:          usr.Roles,
		Token:          token,
		PrimeiroAcesso: !usr.SenhaAlterada,
	})
}

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) recuperaSenha(ctx echo.Context) error {
	var data PasswordResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PasswordResetRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.RequestPasswordReset(ctx.Request().Context(), data.Email); !(err == nil || errors.Cause(err) == user.ErrNotFound) {
		// do not return errors to attackers
		ctx.Logger().Errorf("%+v", errors.Wrap(err, "requesting password reset"))
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{
		Message: "Código de recuperação enviado para o email",
	})
}

func (api *userApi) validaSenha(ctx echo.Context) error {
	var data user.ResetSenha
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetSenha")
	}

	if err := api.svc.ConfirmPasswordReset(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Message: "Senha alterada com sucesso"})
}

func (api *userApi) alterarSenha(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data user.AlteraSenha
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AlteraSenha")
	}
	data.UserID = claims.UserID

	if err := api.svc.ChangePassword(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Message: "Senha alterada com sucesso"})
}

type (
	LoginRequest struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
	}

	LoginResponse struct {
		ID             int      `json:"id"`
		Nome           string   `json:"nome"`
		Email          string   `json:"email"`
		Roles          []string `json:"roles"`
		Token          string   `json:"token"`
		PrimeiroAcesso bool     `json:"primeiroAcesso"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Message string `json:"mensagem"`
	}
)

func (pr *PasswordResetRequest) Validate(validate *validator.Validate) error {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
	return validate.Struct(pr)
}
