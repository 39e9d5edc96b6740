package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Alexseyf/elo-api/core/agenda"
	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
)

func Test_agendaApi_eventos(t *testing.T) {
	app := setup(t)

	admin := createUser(t, "Admin", "admin@escola.test", "Senha@123", []string{user.RoleAdmin}, true)
	professor := createUser(t, "Professor", "prof@escola.test", "Senha@123", []string{user.RoleProfessor}, true)
	responsavel := createUser(t, "Responsável", "resp@escola.test", "Senha@123", []string{user.RoleResponsavel}, true)
	adminToken := getToken(t, admin)
	profToken := getToken(t, professor)

	turma := createTurma(t, school.TurmaPre1)

	eventoBody := func(titulo, data string, turmaID int) []byte {
		return marchallObj(t, echo.Map{
			"titulo":     titulo,
			"descricao":  "Levar lanche",
			"data":       data,
			"hora":       "09:00",
			"local":      "Parque da cidade",
			"tipoEvento": agenda.TipoPasseio,
			"turmaId":    turmaID,
		})
	}

	tests := []httpTest{
		{
			name: "guardian cannot create", method: http.MethodPost, path: "/eventos", token: getToken(t, responsavel),
			body:     eventoBody("Passeio no parque", "2026-09-10", turma.ID),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errNegado),
		},
		{
			name: "turma not found", method: http.MethodPost, path: "/eventos", token: profToken,
			body:     eventoBody("Passeio no parque", "2026-09-10", 999),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Erro: "Turma não encontrada"}),
		},
		{
			name: "invalid hora", method: http.MethodPost, path: "/eventos", token: profToken,
			body: marchallObj(t, echo.Map{
				"titulo": "Passeio no parque", "data": "2026-09-10", "hora": "9h",
				"tipoEvento": agenda.TipoPasseio, "turmaId": turma.ID,
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"erro": echo.Map{"hora": "formato deve ser HH:MM"}}),
		},
		{
			name: "invalid data", method: http.MethodPost, path: "/eventos", token: profToken,
			body:     eventoBody("Passeio no parque", "10/09/2026", turma.ID),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"erro": echo.Map{"data": "data inválida"}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	var evento agenda.Evento

	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/eventos", profToken, eventoBody("Passeio no parque", "2026-09-10", turma.ID))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &evento); err != nil {
			t.Fatalf("unmarshalling Evento: %v", err)
		}
		if !evento.IsAtivo {
			t.Error("a new event must start active")
		}
	})

	t.Run("partial update", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPatch, "/eventos/"+pathStr(evento.ID), profToken,
			marchallObj(t, echo.Map{"local": "Zoológico"}))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var updated agenda.Evento
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("unmarshalling Evento: %v", err)
		}
		if updated.Local != "Zoológico" {
			t.Errorf("Local = %s; want Zoológico", updated.Local)
		}
		// untouched fields keep their value
		if updated.Titulo != evento.Titulo || updated.Hora != evento.Hora {
			t.Errorf("unexpected update: %+v", updated)
		}
	})

	t.Run("update not found", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPatch, "/eventos/999", profToken, marchallObj(t, echo.Map{"local": "Zoológico"}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Erro: "Evento não encontrado"}),
		}, rec)
	})

	t.Run("eventos da turma", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/eventos/turma/"+pathStr(turma.ID), getToken(t, responsavel))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var eventos []agenda.Evento
		if err := json.Unmarshal(rec.Body.Bytes(), &eventos); err != nil {
			t.Fatalf("unmarshalling []Evento: %v", err)
		}
		if len(eventos) != 1 || eventos[0].ID != evento.ID {
			t.Errorf("eventos = %+v; want [%v]", eventos, evento.ID)
		}
	})

	t.Run("delete requires ADMIN", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/eventos/"+pathStr(evento.ID), profToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errNegado)}, rec)
	})

	t.Run("delete is a soft delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/eventos/"+pathStr(evento.ID), adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Message: "Evento removido com sucesso"}),
		}, rec)

		// gone from listings
		req, rec = newAuthRequest(http.MethodGet, "/eventos", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`[]`)}, rec)

		// still retrievable by ID, flagged inactive
		req, rec = newAuthRequest(http.MethodGet, "/eventos/"+pathStr(evento.ID), adminToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var deleted agenda.Evento
		if err := json.Unmarshal(rec.Body.Bytes(), &deleted); err != nil {
			t.Fatalf("unmarshalling Evento: %v", err)
		}
		if deleted.IsAtivo {
			t.Error("expected the event to be flagged inactive")
		}
	})
}

func Test_agendaApi_cronogramas(t *testing.T) {
	app := setup(t)

	admin := createUser(t, "Admin", "admin@escola.test", "Senha@123", []string{user.RoleAdmin}, true)
	responsavel := createUser(t, "Responsável", "resp@escola.test", "Senha@123", []string{user.RoleResponsavel}, true)
	adminToken := getToken(t, admin)

	cronogramaBody := func(titulo, data string) []byte {
		return marchallObj(t, echo.Map{
			"titulo":     titulo,
			"descricao":  "Rotina da manhã",
			"data":       data,
			"horaInicio": "08:00",
			"horaFim":    "11:30",
		})
	}

	tests := []httpTest{
		{
			name: "guardian cannot create", method: http.MethodPost, path: "/cronogramas", token: getToken(t, responsavel),
			body:     cronogramaBody("Acolhida", "2026-09-10"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errNegado),
		},
		{
			name: "horaFim required", method: http.MethodPost, path: "/cronogramas", token: adminToken,
			body: marchallObj(t, echo.Map{
				"titulo": "Acolhida", "data": "2026-09-10", "horaInicio": "08:00",
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"erro": echo.Map{"horaFim": "este campo é obrigatório"}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	var cronograma agenda.Cronograma

	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/cronogramas", adminToken, cronogramaBody("Acolhida", "2026-09-10"))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &cronograma); err != nil {
			t.Fatalf("unmarshalling Cronograma: %v", err)
		}
	})

	t.Run("cronogramas da data", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/cronogramas/data/2026-09-10", getToken(t, responsavel))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, cronograma)}, rec)

		req, rec = newAuthRequest(http.MethodGet, "/cronogramas/data/2026-09-11", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`[]`)}, rec)
	})

	t.Run("update and delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPatch, "/cronogramas/"+pathStr(cronograma.ID), adminToken,
			marchallObj(t, echo.Map{"horaFim": "12:00"}))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodDelete, "/cronogramas/"+pathStr(cronograma.ID), adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Message: "Cronograma removido com sucesso"}),
		}, rec)

		req, rec = newAuthRequest(http.MethodGet, "/cronogramas", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`[]`)}, rec)
	})
}
