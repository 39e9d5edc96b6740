package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/agenda"
	"github.com/Alexseyf/elo-api/core/user"
)

type agendaApi struct {
	svc      *agenda.Service
	validate *validator.Validate
}

func registerAgendaAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *agenda.Service, validate *validator.Validate) {
	api := agendaApi{
		svc:      svc,
		validate: validate,
	}

	eg := g.Group("/eventos", jwt)
	eg.POST("", api.createEvento, roleMiddleware(user.RoleAdmin, user.RoleProfessor))
	eg.GET("", api.queryEventos)
	eg.GET("/:id", api.retrieveEvento)
	eg.GET("/turma/:turmaId", api.queryEventosByTurma)
	eg.PATCH("/:id", api.updateEvento, roleMiddleware(user.RoleAdmin, user.RoleProfessor))
	eg.DELETE("/:id", api.deleteEvento, roleMiddleware(user.RoleAdmin))

	cg := g.Group("/cronogramas", jwt)
	cg.POST("", api.createCronograma, roleMiddleware(user.RoleAdmin, user.RoleProfessor))
	cg.GET("", api.queryCronogramas)
	cg.GET("/:id", api.retrieveCronograma)
	cg.GET("/data/:data", api.queryCronogramasByData)
	cg.PATCH("/:id", api.updateCronograma, roleMiddleware(user.RoleAdmin, user.RoleProfessor))
	cg.DELETE("/:id", api.deleteCronograma, roleMiddleware(user.RoleAdmin))
}

// Handlers

func (api *agendaApi) createEvento(ctx echo.Context) error {
	var data agenda.NewEvento
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvento")
	}
	dia, err := data.Validate(api.validate)
	if err != nil {
		return err
	}

	evento, err := api.svc.CreateEvento(ctx.Request().Context(), data, dia)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, evento)
}

func (api *agendaApi) queryEventos(ctx echo.Context) error {
	eventos, err := api.svc.QueryAllEventos(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if eventos == nil {
		eventos = []agenda.Evento{}
	}
	return ctx.JSON(http.StatusOK, eventos)
}

func (api *agendaApi) retrieveEvento(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	evento, err := api.svc.GetEventoByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, evento)
}

func (api *agendaApi) queryEventosByTurma(ctx echo.Context) error {
	turmaID, err := pathID(ctx, "turmaId")
	if err != nil {
		return err
	}

	eventos, err := api.svc.EventosDaTurma(ctx.Request().Context(), turmaID)
	if err != nil {
		return err
	}
	if eventos == nil {
		eventos = []agenda.Evento{}
	}
	return ctx.JSON(http.StatusOK, eventos)
}

func (api *agendaApi) updateEvento(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data agenda.UpdateEvento
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvento")
	}
	dia, err := data.Validate(api.validate)
	if err != nil {
		return err
	}

	evento, err := api.svc.UpdateEvento(ctx.Request().Context(), id, data, dia)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, evento)
}

func (api *agendaApi) deleteEvento(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.svc.DeleteEvento(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Message: "Evento removido com sucesso"})
}

func (api *agendaApi) createCronograma(ctx echo.Context) error {
	var data agenda.NewCronograma
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCronograma")
	}
	dia, err := data.Validate(api.validate)
	if err != nil {
		return err
	}

	cronograma, err := api.svc.CreateCronograma(ctx.Request().Context(), data, dia)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cronograma)
}

func (api *agendaApi) queryCronogramas(ctx echo.Context) error {
	cronogramas, err := api.svc.QueryAllCronogramas(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying schedule entries")
	}
	if cronogramas == nil {
		cronogramas = []agenda.Cronograma{}
	}
	return ctx.JSON(http.StatusOK, cronogramas)
}

func (api *agendaApi) retrieveCronograma(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	cronograma, err := api.svc.GetCronogramaByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cronograma)
}

func (api *agendaApi) queryCronogramasByData(ctx echo.Context) error {
	dia, err := core.ParseDate(ctx.Param("data"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "data inválida")
	}

	cronogramas, err := api.svc.CronogramasDaData(ctx.Request().Context(), dia)
	if err != nil {
		return err
	}
	if cronogramas == nil {
		cronogramas = []agenda.Cronograma{}
	}
	return ctx.JSON(http.StatusOK, cronogramas)
}

func (api *agendaApi) updateCronograma(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data agenda.UpdateCronograma
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCronograma")
	}
	dia, err := data.Validate(api.validate)
	if err != nil {
		return err
	}

	cronograma, err := api.svc.UpdateCronograma(ctx.Request().Context(), id, data, dia)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cronograma)
}

func (api *agendaApi) deleteCronograma(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.svc.DeleteCronograma(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Message: "Cronograma removido com sucesso"})
}
