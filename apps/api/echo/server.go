package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/activity"
	"github.com/Alexseyf/elo-api/core/agenda"
	"github.com/Alexseyf/elo-api/core/diary"
	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc     *user.Service
		SchoolSvc   *school.Service
		DiarySvc    *diary.Service
		AgendaSvc   *agenda.Service
		ActivitySvc *activity.Service

		// ShutdownFunc triggers a graceful server shutdown on unrecoverable errors.
		ShutdownFunc func()
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.opts.ShutdownFunc)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	auth := newJWTAuth(conf)
	jwt := auth.middleware()
	g := s.app.Group("")

	registerUserAPI(g, jwt, auth, s.opts.UserSvc, s.opts.Validate)
	registerSchoolAPI(g, jwt, s.opts.SchoolSvc, s.opts.Validate)
	registerDiaryAPI(g, jwt, s.opts.DiarySvc, s.opts.Validate)
	registerAgendaAPI(g, jwt, s.opts.AgendaSvc, s.opts.Validate)
	registerActivityAPI(g, jwt, s.opts.ActivitySvc, s.opts.UserSvc, s.opts.Validate)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "API Escola Infantil")
}
