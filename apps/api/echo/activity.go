package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/activity"
	"github.com/Alexseyf/elo-api/core/user"
)

type activityApi struct {
	svc      *activity.Service
	usrSvc   *user.Service
	validate *validator.Validate
}

func registerActivityAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *activity.Service, usrSvc *user.Service, validate *validator.Validate) {
	api := activityApi{
		svc:      svc,
		usrSvc:   usrSvc,
		validate: validate,
	}

	og := g.Group("/objetivos", jwt)
	og.POST("", api.createObjetivo, roleMiddleware(user.RoleAdmin))
	og.GET("", api.queryObjetivos)
	og.GET("/:id", api.retrieveObjetivo)

	ag := g.Group("/atividades", jwt)
	ag.POST("", api.createAtividade, roleMiddleware(user.RoleProfessor))
	ag.GET("", api.queryAtividades)
	ag.GET("/:id", api.retrieveAtividade)
	ag.GET("/professor/:id", api.queryAtividadesByProfessor)
	ag.GET("/turma/:turmaId", api.queryAtividadesByTurma)
}

// Handlers

func (api *activityApi) createObjetivo(ctx echo.Context) error {
	var data activity.NewObjetivo
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewObjetivo")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	objetivo, err := api.svc.CreateObjetivo(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, objetivo)
}

func (api *activityApi) queryObjetivos(ctx echo.Context) error {
	objetivos, err := api.svc.QueryAllObjetivos(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying objectives")
	}
	if objetivos == nil {
		objetivos = []activity.Objetivo{}
	}
	return ctx.JSON(http.StatusOK, objetivos)
}

func (api *activityApi) retrieveObjetivo(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	objetivo, err := api.svc.GetObjetivoByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, objetivo)
}

// createAtividade always links the activity to the authenticated teacher.
func (api *activityApi) createAtividade(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	professor, err := api.usrSvc.GetByID(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}

	var data activity.NewAtividade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAtividade")
	}
	dia, err := data.Validate(api.validate)
	if err != nil {
		return err
	}

	atividade, err := api.svc.CreateAtividade(ctx.Request().Context(), data, dia, professor)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, atividade)
}

func (api *activityApi) queryAtividades(ctx echo.Context) error {
	atividades, err := api.svc.QueryAllAtividades(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying activities")
	}
	if atividades == nil {
		atividades = []activity.Atividade{}
	}
	return ctx.JSON(http.StatusOK, atividades)
}

func (api *activityApi) retrieveAtividade(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	atividade, err := api.svc.GetAtividadeByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, atividade)
}

func (api *activityApi) queryAtividadesByProfessor(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	atividades, err := api.svc.AtividadesDoProfessor(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if atividades == nil {
		atividades = []activity.Atividade{}
	}
	return ctx.JSON(http.StatusOK, atividades)
}

func (api *activityApi) queryAtividadesByTurma(ctx echo.Context) error {
	turmaID, err := pathID(ctx, "turmaId")
	if err != nil {
		return err
	}

	atividades, err := api.svc.AtividadesDaTurma(ctx.Request().Context(), turmaID)
	if err != nil {
		return err
	}
	if atividades == nil {
		atividades = []activity.Atividade{}
	}
	return ctx.JSON(http.StatusOK, atividades)
}
