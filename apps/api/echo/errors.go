package echoapi

import (
	"net/http"

	"github.com/dgrijalva/jwt-go"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/activity"
	"github.com/Alexseyf/elo-api/core/agenda"
	"github.com/Alexseyf/elo-api/core/diary"
	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

var (
	errTokenNaoInformado = echo.NewHTTPError(http.StatusUnauthorized, "Token não informado")
	errTokenInvalido     = echo.NewHTTPError(http.StatusUnauthorized, "Token inválido")
	errTokenNaoFornecido = echo.NewHTTPError(http.StatusUnauthorized, "Token não fornecido")
	errAcessoNegado      = echo.NewHTTPError(http.StatusForbidden, "Acesso negado. Você não tem permissão para acessar este recurso.")
)

// errorStatus maps well-known domain errors to their HTTP status.
var errorStatus = map[error]int{
	user.ErrAuthenticationFailed:       http.StatusBadRequest,
	user.ErrNotFound:                   http.StatusNotFound,
	school.ErrTurmaNaoEncontrada:       http.StatusNotFound,
	school.ErrAlunoNaoEncontrado:       http.StatusNotFound,
	school.ErrUsuarioNaoEncontrado:     http.StatusNotFound,
	school.ErrProfessorNaoEncontrado:   http.StatusNotFound,
	school.ErrResponsavelNaoEncontrado: http.StatusNotFound,
	school.ErrRoleProfessor:            http.StatusBadRequest,
	school.ErrRoleResponsavel:          http.StatusBadRequest,
	diary.ErrDiarioExiste:              http.StatusBadRequest,
	diary.ErrDiarioNaoEncontrado:       http.StatusNotFound,
	agenda.ErrEventoNaoEncontrado:      http.StatusNotFound,
	agenda.ErrCronogramaNaoEncontrado:  http.StatusNotFound,
	activity.ErrObjetivoExiste:         http.StatusBadRequest,
	activity.ErrObjetivoNaoEncontrado:  http.StatusNotFound,
	activity.ErrAtividadeNaoEncontrada: http.StatusNotFound,
}

// recoveryErrorStatus maps password-recovery discriminators to their HTTP status.
var recoveryErrorStatus = map[string]int{
	"CAMPOS_OBRIGATORIOS":    http.StatusBadRequest,
	"VALIDACAO_SENHA":        http.StatusBadRequest,
	"CODIGO_INVALIDO":        http.StatusBadRequest,
	"SENHA_IGUAL":            http.StatusBadRequest,
	"SENHA_INCORRETA":        http.StatusBadRequest,
	"EMAIL_NAO_ENCONTRADO":   http.StatusNotFound,
	"USUARIO_NAO_ENCONTRADO": http.StatusNotFound,
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = errTokenNaoInformado.Code
				message = errTokenNaoInformado.Message
				break
			}
			if origErr.Internal != nil {
				// token failed signature, expiry or parse checks
				if _, ok := origErr.Internal.(*jwt.ValidationError); ok {
					code = errTokenInvalido.Code
					message = errTokenInvalido.Message
					break
				}
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *user.RecoveryError:
			code = http.StatusBadRequest
			if c, ok := recoveryErrorStatus[origErr.Codigo]; ok {
				code = c
			}
			message = echo.Map{"erro": origErr.Message, "codigo": origErr.Codigo}
		default:
			if c, ok := errorStatus[origErr]; ok {
				code = c
				message = origErr.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.UserID
				usr.Nome = claims.UserNome
			}
			logger.Error(msg, errors.Wrap(err, msg), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		switch m := message.(type) {
		case string:
			message = echo.Map{"erro": m}
		case map[string]string:
			message = echo.Map{"erro": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
