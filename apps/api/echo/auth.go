package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/user"
)

var contextTokenKey = "usuarioToken"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserID   int      `json:"userLogadoId"`
	UserNome string   `json:"userLogadoNome"`
	Roles    []string `json:"roles"`
}

func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// jwtAuth issues and verifies the tokens accepted by the API.
type jwtAuth struct {
	conf   *core.Config
	mwConf middleware.JWTConfig
}

func newJWTAuth(conf *core.Config) *jwtAuth {
	return &jwtAuth{
		conf: conf,
		mwConf: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

// middleware returns the token verification middleware (guard A).
// Requests without a valid signed unexpired token never reach the handler.
func (a *jwtAuth) middleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(a.mwConf)
}

func (a *jwtAuth) getUserClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.conf.AppName,
			ExpiresAt: now.Add(a.conf.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		UserID:   usr.ID,
		UserNome: usr.Nome,
		Roles:    usr.Roles,
	}
}

// generateToken generates a signed JWT token string representing the user Claims.
func (a *jwtAuth) generateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.mwConf.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.mwConf.SigningKey.([]byte))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

// getContextClaims returns the claims the verification middleware stored on
// the request context. It only succeeds after the JWT middleware ran.
func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errTokenNaoFornecido
}
