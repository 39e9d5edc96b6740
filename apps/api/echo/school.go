package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

type schoolApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service, validate *validator.Validate) {
	api := schoolApi{
		svc:      svc,
		validate: validate,
	}

	tg := g.Group("/turmas", jwt)
	tg.POST("", api.createTurma, roleMiddleware(user.RoleAdmin))
	tg.GET("", api.queryTurmas)
	tg.POST("/:usuarioId/professor", api.assignProfessor, roleMiddleware(user.RoleAdmin))

	ag := g.Group("/alunos", jwt)
	ag.POST("", api.createAluno, roleMiddleware(user.RoleAdmin))
	ag.GET("", api.queryAlunos)
	ag.GET("/:id", api.retrieveAluno)
	ag.POST("/:usuarioId/responsavel", api.assignResponsavel, roleMiddleware(user.RoleAdmin))

	pg := g.Group("/professores", jwt)
	pg.GET("", api.queryProfessores)
	pg.GET("/:id/turmas", api.turmasDoProfessor)

	rg := g.Group("/responsaveis", jwt)
	rg.GET("/meus-alunos", api.meusAlunos, roleMiddleware(user.RoleResponsavel))
	rg.GET("/:id/alunos", api.alunosDoResponsavel)
}

// Handlers

func (api *schoolApi) createTurma(ctx echo.Context) error {
	var data school.NewTurma
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTurma")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	turma, err := api.svc.CreateTurma(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, turma)
}

func (api *schoolApi) queryTurmas(ctx echo.Context) error {
	turmas, err := api.svc.QueryAllTurmas(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if turmas == nil {
		turmas = []school.Turma{}
	}
	return ctx.JSON(http.StatusOK, turmas)
}

func (api *schoolApi) assignProfessor(ctx echo.Context) error {
	usuarioID, err := pathID(ctx, "usuarioId")
	if err != nil {
		return err
	}

	var data AssignTurmaRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignTurmaRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	if err := api.svc.AssignProfessor(ctx.Request().Context(), usuarioID, data.TurmaID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Message: "Professor vinculado à turma com sucesso"})
}

func (api *schoolApi) createAluno(ctx echo.Context) error {
	var data school.NewAluno
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAluno")
	}
	dataNasc, err := data.Validate(api.validate)
	if err != nil {
		return err
	}

	aluno, err := api.svc.CreateAluno(ctx.Request().Context(), data, dataNasc)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, aluno)
}

func (api *schoolApi) queryAlunos(ctx echo.Context) error {
	alunos, err := api.svc.QueryAllAlunos(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if alunos == nil {
		alunos = []school.Aluno{}
	}
	return ctx.JSON(http.StatusOK, alunos)
}

func (api *schoolApi) retrieveAluno(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	aluno, err := api.svc.GetAlunoByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, aluno)
}

func (api *schoolApi) assignResponsavel(ctx echo.Context) error {
	usuarioID, err := pathID(ctx, "usuarioId")
	if err != nil {
		return err
	}

	var data AssignAlunoRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignAlunoRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	if err := api.svc.AssignResponsavel(ctx.Request().Context(), usuarioID, data.AlunoID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Message: "Responsável vinculado ao aluno com sucesso"})
}

func (api *schoolApi) queryProfessores(ctx echo.Context) error {
	professores, err := api.svc.ProfessoresComTurmas(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, professores)
}

func (api *schoolApi) turmasDoProfessor(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	turmas, err := api.svc.TurmasDoProfessor(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if turmas == nil {
		turmas = []school.Turma{}
	}
	return ctx.JSON(http.StatusOK, turmas)
}

func (api *schoolApi) alunosDoResponsavel(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	return api.respondAlunosDoResponsavel(ctx, id)
}

// meusAlunos resolves the guardian from the token instead of the path.
func (api *schoolApi) meusAlunos(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return api.respondAlunosDoResponsavel(ctx, claims.UserID)
}

func (api *schoolApi) respondAlunosDoResponsavel(ctx echo.Context, responsavelID int) error {
	alunos, err := api.svc.AlunosDoResponsavel(ctx.Request().Context(), responsavelID)
	if err != nil {
		return err
	}
	if alunos == nil {
		alunos = []school.Aluno{}
	}
	return ctx.JSON(http.StatusOK, alunos)
}

type (
	AssignTurmaRequest struct {
		TurmaID int `json:"turmaId" validate:"required,gt=0"`
	}

	AssignAlunoRequest struct {
		AlunoID int `json:"alunoId" validate:"required,gt=0"`
	}
)

// pathID parses a numeric path parameter.
func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "ID inválido")
	}
	return id, nil
}
