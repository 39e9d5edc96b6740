package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Alexseyf/elo-api/core/user"
	emailsvc "github.com/Alexseyf/elo-api/services/email"
)

func Test_userApi_login(t *testing.T) {
	app := setup(t)

	usr := createUser(t, "Usuária", "awe@escola.test", "Senha@123", []string{user.RoleProfessor}, true)
	novata := createUser(t, "Novata", "nova@escola.test", "Senha@123", []string{user.RoleResponsavel}, false)

	tests := []httpTest{
		{
			name: "empty body", method: http.MethodPost, path: "/login",
			body:     marchallObj(t, echo.Map{}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, errLoginInvalid),
		},
		{
			name: "missing password", method: http.MethodPost, path: "/login",
			body:     marchallObj(t, echo.Map{"email": usr.Email}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, errLoginInvalid),
		},
		{
			name: "unknown email", method: http.MethodPost, path: "/login",
			body:     marchallObj(t, echo.Map{"email": "lol@escola.test", "senha": "Senha@123"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, errLoginInvalid),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/login",
			body:     marchallObj(t, echo.Map{"email": usr.Email, "senha": "Errada@123"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, errLoginInvalid),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// missing fields, unknown email and wrong password must be indistinguishable
	t.Run("failures are indistinguishable", func(t *testing.T) {
		bodies := [][]byte{
			marchallObj(t, echo.Map{}),
			marchallObj(t, echo.Map{"email": "lol@escola.test", "senha": "Senha@123"}),
			marchallObj(t, echo.Map{"email": usr.Email, "senha": "Errada@123"}),
		}
		var code int
		var resp string
		for i, body := range bodies {
			req, rec := newRequest(http.MethodPost, "/login", body)
			app.ServeHTTP(rec, req)
			if i == 0 {
				code, resp = rec.Code, rec.Body.String()
				continue
			}
			if rec.Code != code || rec.Body.String() != resp {
				t.Errorf("responses differ: %s vs %s", resp, rec.Body.String())
			}
		}
	})

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/login", marchallObj(t, echo.Map{"email": usr.Email, "senha": "Senha@123"}))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling LoginResponse: %v", err)
		}
		if resp.ID != usr.ID || resp.Nome != usr.Nome || resp.Email != usr.Email {
			t.Errorf("unexpected user data: %+v", resp)
		}
		if resp.Token == "" {
			t.Error("expected a token")
		}
		if resp.PrimeiroAcesso {
			t.Error("expected primeiroAcesso to be false")
		}
	})

	t.Run("success on first access", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/login", marchallObj(t, echo.Map{"email": novata.Email, "senha": "Senha@123"}))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var resp LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling LoginResponse: %v", err)
		}
		if !resp.PrimeiroAcesso {
			t.Error("expected primeiroAcesso to be true")
		}
	})
}

func Test_userApi_create(t *testing.T) {
	app := setup(t)

	admin := createUser(t, "Admin", "admin@escola.test", "Senha@123", []string{user.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	newUserBody := func(nome, email, senha string, roles ...string) []byte {
		return marchallObj(t, echo.Map{
			"nome": nome, "email": email, "senha": senha,
			"telefone": "11999990000", "roles": roles,
		})
	}

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodPost, path: "/usuarios",
			body:     newUserBody("Fulano", "fulano@escola.test", "Senha@123", user.RoleProfessor),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNoToken),
		},
		{
			name: "invalid role", method: http.MethodPost, path: "/usuarios", token: adminToken,
			body:     newUserBody("Fulano", "fulano@escola.test", "Senha@123", "SUPERUSER"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"erro": echo.Map{"roles": "role(s) inválida(s)"}}),
		},
		{
			name: "weak password", method: http.MethodPost, path: "/usuarios", token: adminToken,
			body:     newUserBody("Fulano", "fulano@escola.test", "senhafraca", user.RoleProfessor),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"erro": strings.Join([]string{
				"Erro! senha deve possuir letra(s) maiúscula(s)",
				"Erro! senha deve possuir número(s)",
				"Erro! senha deve possuir símbolo(s)",
			}, "; ")}),
		},
		{
			name: "email exists", method: http.MethodPost, path: "/usuarios", token: adminToken,
			body:     newUserBody("Fulano", admin.Email, "Senha@123", user.RoleProfessor),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"erro": echo.Map{"email": "já existe um usuário com este email"}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/usuarios", adminToken,
			newUserBody("Fulano de Tal", "fulano@escola.test", "Senha@123", user.RoleProfessor))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var usr user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("unmarshalling User: %v", err)
		}
		if usr.ID == 0 || usr.Nome != "Fulano de Tal" || !usr.IsAtivo {
			t.Errorf("unexpected user: %+v", usr)
		}
		if usr.SenhaAlterada {
			t.Error("a provisioned account must start with senhaAlterada unset")
		}
	})
}

func Test_userApi_recuperaSenha(t *testing.T) {
	app := setup(t)

	usr := createUser(t, "Usuária", "awe@escola.test", "Senha@123", []string{user.RoleResponsavel}, true)

	genericMsg := marchallObj(t, SuccessResponse{Message: "Código de recuperação enviado para o email"})

	tests := []httpTest{
		{
			name: "known email", method: http.MethodPost, path: "/recupera-senha",
			body:     marchallObj(t, echo.Map{"email": usr.Email}),
			wantCode: http.StatusOK, wantData: genericMsg,
			extra: 1, // emails sent
		},
		{
			name: "unknown email", method: http.MethodPost, path: "/recupera-senha",
			body:     marchallObj(t, echo.Map{"email": "lol@escola.test"}),
			wantCode: http.StatusOK, wantData: genericMsg,
			extra: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emailsvc.ClearSentMessages()

			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if want := tt.extra.(int); len(emailsvc.SentMessages) != want {
				t.Errorf("emails sent = %v; want %v", len(emailsvc.SentMessages), want)
			}
		})
	}
}

var codeRegex = regexp.MustCompile(`\d{4}`)

// requestResetCode triggers a password recovery and fishes the code
// out of the captured email.
func requestResetCode(t *testing.T, app Server, email string) string {
	t.Helper()

	emailsvc.ClearSentMessages()
	req, rec := newRequest(http.MethodPost, "/recupera-senha", marchallObj(t, echo.Map{"email": email}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("recupera-senha failed: %s", rec.Body.String())
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("expected 1 email, got %v", len(emailsvc.SentMessages))
	}
	code := codeRegex.FindString(emailsvc.SentMessages[0].Body)
	if code == "" {
		t.Fatal("no recovery code in email body")
	}
	return code
}

func Test_userApi_validaSenha(t *testing.T) {
	app := setup(t)

	usr := createUser(t, "Usuária", "awe@escola.test", "Senha@123", []string{user.RoleResponsavel}, true)
	semReset := createUser(t, "Sem Reset", "sem@escola.test", "Senha@123", []string{user.RoleResponsavel}, true)

	code := requestResetCode(t, app, usr.Email)

	body := func(email, code, novaSenha string) []byte {
		return marchallObj(t, echo.Map{"email": email, "code": code, "novaSenha": novaSenha})
	}
	recoveryErr := func(msg, codigo string) []byte {
		return marchallObj(t, echo.Map{"erro": msg, "codigo": codigo})
	}

	tests := []httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/valida-senha",
			body:     body(usr.Email, "", ""),
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr("Todos os campos devem ser informados", "CAMPOS_OBRIGATORIOS"),
		},
		{
			name: "weak password", method: http.MethodPost, path: "/valida-senha",
			body:     body(usr.Email, code, "fraca"),
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr(strings.Join([]string{
				"Erro! senha deve possuir, no mínimo, 8 caracteres",
				"Erro! senha deve possuir letra(s) maiúscula(s)",
				"Erro! senha deve possuir número(s)",
				"Erro! senha deve possuir símbolo(s)",
			}, "; "), "VALIDACAO_SENHA"),
		},
		{
			name: "unknown email", method: http.MethodPost, path: "/valida-senha",
			body:     body("lol@escola.test", code, "Nova@1234"),
			wantCode: http.StatusNotFound,
			wantData: recoveryErr("Email não encontrado", "EMAIL_NAO_ENCONTRADO"),
		},
		{
			name: "no reset requested", method: http.MethodPost, path: "/valida-senha",
			body:     body(semReset.Email, code, "Nova@1234"),
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr("Código inválido ou expirado", "CODIGO_INVALIDO"),
		},
		{
			name: "same password", method: http.MethodPost, path: "/valida-senha",
			body:     body(usr.Email, code, "Senha@123"),
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr("A nova senha deve ser diferente da senha atual", "SENHA_IGUAL"),
		},
		{
			name: "wrong code", method: http.MethodPost, path: "/valida-senha",
			body:     body(usr.Email, "0000", "Nova@1234"),
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr("Código inválido ou expirado", "CODIGO_INVALIDO"),
		},
		{
			name: "success", method: http.MethodPost, path: "/valida-senha",
			body:     body(usr.Email, code, "Nova@1234"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Message: "Senha alterada com sucesso"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("code is single-use", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/valida-senha", body(usr.Email, code, "Outra@1234"))
		app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr("Código inválido ou expirado", "CODIGO_INVALIDO"),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("new password works", func(t *testing.T) {
		refreshed, err := usrRepo.GetUserByID(context.Background(), usr.ID)
		if err != nil {
			t.Fatalf("GetUserByID() failed: %v", err)
		}
		if refreshed.CheckSenha("Nova@1234") != nil {
			t.Error("new password was not stored")
		}
	})
}

func Test_userApi_alterarSenha(t *testing.T) {
	app := setup(t)

	usr := createUser(t, "Novata", "nova@escola.test", "Senha@123", []string{user.RoleProfessor}, false)
	token := getToken(t, usr)

	body := func(senhaAtual, novaSenha string) []byte {
		return marchallObj(t, echo.Map{"senhaAtual": senhaAtual, "novaSenha": novaSenha})
	}
	recoveryErr := func(msg, codigo string) []byte {
		return marchallObj(t, echo.Map{"erro": msg, "codigo": codigo})
	}

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodPatch, path: "/usuarios/alterar-senha",
			body:     body("Senha@123", "Nova@1234"),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNoToken),
		},
		{
			name: "missing fields", method: http.MethodPatch, path: "/usuarios/alterar-senha", token: token,
			body:     body("", ""),
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr("Todos os campos devem ser informados", "CAMPOS_OBRIGATORIOS"),
		},
		{
			name: "wrong current password", method: http.MethodPatch, path: "/usuarios/alterar-senha", token: token,
			body:     body("Errada@123", "Nova@1234"),
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr("Senha atual incorreta", "SENHA_INCORRETA"),
		},
		{
			name: "same password", method: http.MethodPatch, path: "/usuarios/alterar-senha", token: token,
			body:     body("Senha@123", "Senha@123"),
			wantCode: http.StatusBadRequest,
			wantData: recoveryErr("A nova senha deve ser diferente da senha atual", "SENHA_IGUAL"),
		},
		{
			name: "success", method: http.MethodPatch, path: "/usuarios/alterar-senha", token: token,
			body:     body("Senha@123", "Nova@1234"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Message: "Senha alterada com sucesso"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("first access completed", func(t *testing.T) {
		refreshed, err := usrRepo.GetUserByID(context.Background(), usr.ID)
		if err != nil {
			t.Fatalf("GetUserByID() failed: %v", err)
		}
		if !refreshed.SenhaAlterada {
			t.Error("expected SenhaAlterada to be set")
		}
		if refreshed.CheckSenha("Nova@1234") != nil {
			t.Error("new password was not stored")
		}
	})
}
