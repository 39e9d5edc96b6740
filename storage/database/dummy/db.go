package dummydb

import (
	"sync"

	"github.com/Alexseyf/elo-api/core/activity"
	"github.com/Alexseyf/elo-api/core/agenda"
	"github.com/Alexseyf/elo-api/core/diary"
	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

type (
	DB struct {
		user       *userTable
		auditLog   *auditLogTable
		turma      *turmaTable
		aluno      *alunoTable
		diario     *diarioTable
		evento     *eventoTable
		cronograma *cronogramaTable
		objetivo   *objetivoTable
		atividade  *atividadeTable

		// join tables
		professorTurma   *joinTable
		responsavelAluno *joinTable
	}

	userTable struct {
		sync.RWMutex
		table map[int]*user.User
	}

	auditLogTable struct {
		sync.RWMutex
		table map[int]*user.AuditLog
	}

	turmaTable struct {
		sync.RWMutex
		table map[int]*school.Turma
	}

	alunoTable struct {
		sync.RWMutex
		table map[int]*school.Aluno
	}

	diarioTable struct {
		sync.RWMutex
		table map[int]*diary.Diario
	}

	eventoTable struct {
		sync.RWMutex
		table map[int]*agenda.Evento
	}

	cronogramaTable struct {
		sync.RWMutex
		table map[int]*agenda.Cronograma
	}

	objetivoTable struct {
		sync.RWMutex
		table map[int]*activity.Objetivo
	}

	atividadeTable struct {
		sync.RWMutex
		table map[int]*activity.Atividade
	}

	joinPair struct {
		left, right int
	}

	joinTable struct {
		sync.RWMutex
		pairs []joinPair
	}
)

func (jt *joinTable) add(left, right int) {
	jt.Lock()
	defer jt.Unlock()
	for _, p := range jt.pairs {
		if p.left == left && p.right == right {
			return
		}
	}
	jt.pairs = append(jt.pairs, joinPair{left, right})
}

func (jt *joinTable) rightsOf(left int) []int {
	jt.RLock()
	defer jt.RUnlock()
	var rights []int
	for _, p := range jt.pairs {
		if p.left == left {
			rights = append(rights, p.right)
		}
	}
	return rights
}

func (jt *joinTable) leftsOf(right int) []int {
	jt.RLock()
	defer jt.RUnlock()
	var lefts []int
	for _, p := range jt.pairs {
		if p.right == right {
			lefts = append(lefts, p.left)
		}
	}
	return lefts
}

func Open() (*DB, error) {
	db := &DB{
		user:             &userTable{table: make(map[int]*user.User)},
		auditLog:         &auditLogTable{table: make(map[int]*user.AuditLog)},
		turma:            &turmaTable{table: make(map[int]*school.Turma)},
		aluno:            &alunoTable{table: make(map[int]*school.Aluno)},
		diario:           &diarioTable{table: make(map[int]*diary.Diario)},
		evento:           &eventoTable{table: make(map[int]*agenda.Evento)},
		cronograma:       &cronogramaTable{table: make(map[int]*agenda.Cronograma)},
		objetivo:         &objetivoTable{table: make(map[int]*activity.Objetivo)},
		atividade:        &atividadeTable{table: make(map[int]*activity.Atividade)},
		professorTurma:   &joinTable{},
		responsavelAluno: &joinTable{},
	}
	return db, nil
}
