package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/diary"
	"github.com/Alexseyf/elo-api/core/user"
)

type diaryApi struct {
	svc      *diary.Service
	validate *validator.Validate
}

func registerDiaryAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *diary.Service, validate *validator.Validate) {
	api := diaryApi{
		svc:      svc,
		validate: validate,
	}

	dg := g.Group("/diarios", jwt)
	dg.POST("", api.create, roleMiddleware(user.RoleAdmin, user.RoleProfessor))
	dg.GET("", api.query)
	dg.GET("/:id", api.retrieve)
	dg.GET("/aluno/:alunoId", api.queryByAluno)
	dg.GET("/data/:data", api.queryByData)
}

// Handlers

func (api *diaryApi) create(ctx echo.Context) error {
	var data diary.NewDiario
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDiario")
	}
	dia, err := data.Validate(api.validate)
	if err != nil {
		return err
	}

	diario, err := api.svc.Create(ctx.Request().Context(), data, dia)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, diario)
}

func (api *diaryApi) query(ctx echo.Context) error {
	diarios, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying diaries")
	}
	if diarios == nil {
		diarios = []diary.Diario{}
	}
	return ctx.JSON(http.StatusOK, diarios)
}

func (api *diaryApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	diario, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, diario)
}

func (api *diaryApi) queryByAluno(ctx echo.Context) error {
	alunoID, err := pathID(ctx, "alunoId")
	if err != nil {
		return err
	}

	diarios, err := api.svc.DiariosDoAluno(ctx.Request().Context(), alunoID)
	if err != nil {
		return err
	}
	if diarios == nil {
		diarios = []diary.Diario{}
	}
	return ctx.JSON(http.StatusOK, diarios)
}

func (api *diaryApi) queryByData(ctx echo.Context) error {
	dia, err := core.ParseDate(ctx.Param("data"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "data inválida")
	}

	diarios, err := api.svc.DiariosDaData(ctx.Request().Context(), dia)
	if err != nil {
		return err
	}
	if diarios == nil {
		diarios = []diary.Diario{}
	}
	return ctx.JSON(http.StatusOK, diarios)
}
