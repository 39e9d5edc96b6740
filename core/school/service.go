package school

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Alexseyf/elo-api/core/user"
)

var (
	// errors
	ErrTurmaNaoEncontrada       = errors.New("Turma não encontrada")
	ErrAlunoNaoEncontrado       = errors.New("Aluno não encontrado")
	ErrUsuarioNaoEncontrado     = errors.New("Usuário não encontrado")
	ErrProfessorNaoEncontrado   = errors.New("Professor não encontrado")
	ErrResponsavelNaoEncontrado = errors.New("Responsável não encontrado")
	ErrRoleProfessor            = errors.New("O usuário deve ter a role PROFESSOR")
	ErrRoleResponsavel          = errors.New("O usuário deve ter a role RESPONSAVEL")
)

type (
	Repository interface {
		CreateTurma(ctx context.Context, t Turma) (Turma, error)
		// QueryAllTurmas returns all classes with their teachers and students preloaded.
		QueryAllTurmas(ctx context.Context) ([]Turma, error)
		GetTurmaByID(ctx context.Context, id int) (Turma, error)
		AssignProfessor(ctx context.Context, usuarioID, turmaID int) error
		QueryTurmasByProfessor(ctx context.Context, usuarioID int) ([]Turma, error)

		CreateAluno(ctx context.Context, a Aluno) (Aluno, error)
		// QueryAllAlunos returns all students with their class and guardians preloaded.
		QueryAllAlunos(ctx context.Context) ([]Aluno, error)
		GetAlunoByID(ctx context.Context, id int) (Aluno, error)
		AssignResponsavel(ctx context.Context, usuarioID, alunoID int) error
		QueryAlunosByResponsavel(ctx context.Context, usuarioID int) ([]Aluno, error)
	}

	Service struct {
		repo   Repository
		usrSvc *user.Service
	}
)

func NewService(repo Repository, usrSvc *user.Service) *Service {
	return &Service{repo: repo, usrSvc: usrSvc}
}

func (svc *Service) CreateTurma(ctx context.Context, nt NewTurma) (Turma, error) {
	now := time.Now().UTC()
	return svc.repo.CreateTurma(ctx, Turma{
		Nome:      nt.Nome,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) QueryAllTurmas(ctx context.Context) ([]Turma, error) {
	return svc.repo.QueryAllTurmas(ctx)
}

func (svc *Service) GetTurmaByID(ctx context.Context, id int) (Turma, error) {
	return svc.repo.GetTurmaByID(ctx, id)
}

// AssignProfessor links a PROFESSOR user to a class.
func (svc *Service) AssignProfessor(ctx context.Context, usuarioID, turmaID int) error {
	usr, err := svc.usrSvc.GetByID(ctx, usuarioID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return ErrUsuarioNaoEncontrado
		}
		return errors.Wrap(err, "finding user by ID")
	}
	if !usr.IsProfessor() {
		return ErrRoleProfessor
	}
	if _, err = svc.repo.GetTurmaByID(ctx, turmaID); err != nil {
		return err
	}
	return svc.repo.AssignProfessor(ctx, usuarioID, turmaID)
}

// TurmasDoProfessor lists the classes (with students) assigned to a teacher.
func (svc *Service) TurmasDoProfessor(ctx context.Context, professorID int) ([]Turma, error) {
	usr, err := svc.usrSvc.GetByID(ctx, professorID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return nil, ErrProfessorNaoEncontrado
		}
		return nil, errors.Wrap(err, "finding user by ID")
	}
	if !usr.IsProfessor() {
		return nil, ErrRoleProfessor
	}
	return svc.repo.QueryTurmasByProfessor(ctx, professorID)
}

// ProfessoresComTurmas lists every PROFESSOR user with their class assignments.
func (svc *Service) ProfessoresComTurmas(ctx context.Context) ([]ProfessorTurmas, error) {
	users, err := svc.usrSvc.QueryAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	result := make([]ProfessorTurmas, 0)
	for _, usr := range users {
		if !usr.IsProfessor() {
			continue
		}
		turmas, err := svc.repo.QueryTurmasByProfessor(ctx, usr.ID)
		if err != nil {
			return nil, errors.Wrap(err, "querying teacher classes")
		}
		result = append(result, ProfessorTurmas{Usuario: usr, Turmas: turmas})
	}
	return result, nil
}

func (svc *Service) CreateAluno(ctx context.Context, na NewAluno, dataNasc time.Time) (Aluno, error) {
	if _, err := svc.repo.GetTurmaByID(ctx, na.TurmaID); err != nil {
		return Aluno{}, err
	}

	isAtivo := true
	if na.IsAtivo != nil {
		isAtivo = *na.IsAtivo
	}
	now := time.Now().UTC()
	return svc.repo.CreateAluno(ctx, Aluno{
		Nome:      na.Nome,
		DataNasc:  dataNasc,
		TurmaID:   na.TurmaID,
		IsAtivo:   isAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) QueryAllAlunos(ctx context.Context) ([]Aluno, error) {
	return svc.repo.QueryAllAlunos(ctx)
}

func (svc *Service) GetAlunoByID(ctx context.Context, id int) (Aluno, error) {
	return svc.repo.GetAlunoByID(ctx, id)
}

// AssignResponsavel links a RESPONSAVEL user to a student as their guardian.
func (svc *Service) AssignResponsavel(ctx context.Context, usuarioID, alunoID int) error {
	usr, err := svc.usrSvc.GetByID(ctx, usuarioID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return ErrUsuarioNaoEncontrado
		}
		return errors.Wrap(err, "finding user by ID")
	}
	if !usr.IsResponsavel() {
		return ErrRoleResponsavel
	}
	if _, err = svc.repo.GetAlunoByID(ctx, alunoID); err != nil {
		return err
	}
	return svc.repo.AssignResponsavel(ctx, usuarioID, alunoID)
}

// AlunosDoResponsavel lists the students (with their class) under a guardian.
func (svc *Service) AlunosDoResponsavel(ctx context.Context, responsavelID int) ([]Aluno, error) {
	usr, err := svc.usrSvc.GetByID(ctx, responsavelID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return nil, ErrResponsavelNaoEncontrado
		}
		return nil, errors.Wrap(err, "finding user by ID")
	}
	if !usr.IsResponsavel() {
		return nil, ErrRoleResponsavel
	}
	return svc.repo.QueryAlunosByResponsavel(ctx, responsavelID)
}
