package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/Alexseyf/elo-api/core"
	"github.com/Alexseyf/elo-api/core/activity"
	"github.com/Alexseyf/elo-api/core/agenda"
	"github.com/Alexseyf/elo-api/core/diary"
	"github.com/Alexseyf/elo-api/core/school"
	"github.com/Alexseyf/elo-api/core/user"
	emailsvc "github.com/Alexseyf/elo-api/services/email"
	logsvc "github.com/Alexseyf/elo-api/services/logger"
	dummydb "github.com/Alexseyf/elo-api/storage/database/dummy"
)

var (
	conf       *core.Config
	auth       *jwtAuth
	validate   *validator.Validate
	translator ut.Translator

	usrRepo user.Repository
	schRepo school.Repository

	usrSvc *user.Service
	schSvc *school.Service

	errNoToken      = httpErr{Erro: "Token não informado"}
	errBadToken     = httpErr{Erro: "Token inválido"}
	errNegado       = httpErr{Erro: "Acesso negado. Você não tem permissão para acessar este recurso."}
	errLoginInvalid = httpErr{Erro: "Login ou senha incorretos"}
)

type httpErr struct {
	Erro string `json:"erro"`
}

func setup(t *testing.T) Server {
	t.Helper()

	conf = &core.Config{
		TestMode:              true,
		Env:                   "TEST",
		AppName:               "Elo",
		SecretKey:             "secret",
		DefaultFromEmail:      mail.Address{Name: "Elo", Address: "noreply@localhost"},
		JWTExpirationDelta:    10 * time.Minute,
		ResetCodeTimeoutDelta: 5 * time.Minute,
	}
	auth = newJWTAuth(conf)

	pt := pt_BR.New()
	uni := ut.New(pt, pt)
	translator, _ = uni.GetTranslator("pt_BR")
	validate = validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	school.InitValidators(validate, translator)
	activity.InitValidators(validate, translator)

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "TEST : ", log.LstdFlags), conf)
	logger.Enable(false)

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)
	schRepo = dummydb.NewSchoolRepository(db)

	// set up services
	emailsvc.ClearSentMessages()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc = user.NewService(usrRepo, mailSvc, logger, conf)
	schSvc = school.NewService(schRepo, usrSvc)
	diarySvc := diary.NewService(dummydb.NewDiaryRepository(db), schSvc)
	agendaSvc := agenda.NewService(dummydb.NewAgendaRepository(db), schSvc)
	activitySvc := activity.NewService(dummydb.NewActivityRepository(db), schSvc)

	// set up server
	return NewServer(
		&Options{
			DisableReqLogs: true,
			Conf:           conf,
			Logger:         logger,
			Validate:       validate,
			Translator:     translator,
			UserSvc:        usrSvc,
			SchoolSvc:      schSvc,
			DiarySvc:       diarySvc,
			AgendaSvc:      agendaSvc,
			ActivitySvc:    activitySvc,
			ShutdownFunc:   func() {},
		},
	)
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	token, err := auth.generateToken(auth.getUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func getExpiredToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := auth.getUserClaims(usr)
	claims.IssuedAt = time.Now().Add(-2 * time.Hour).Unix()
	claims.ExpiresAt = time.Now().Add(-1 * time.Hour).Unix()
	token, err := auth.generateToken(claims)
	if err != nil {
		t.Fatalf("getExpiredToken() failed: %v", err)
	}
	return token
}

func pathStr(v interface{}) string {
	return fmt.Sprint(v)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// fixtures

func createUser(t *testing.T, nome, email, senha string, roles []string, senhaAlterada bool) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Nome:          nome,
		Email:         email,
		IsAtivo:       true,
		SenhaAlterada: senhaAlterada,
		Roles:         roles,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := usr.SetSenha(senha); err != nil {
		t.Fatalf("SetSenha() failed: %v", err)
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func createTurma(t *testing.T, nome string) school.Turma {
	t.Helper()

	turma, err := schSvc.CreateTurma(context.Background(), school.NewTurma{Nome: nome})
	if err != nil {
		t.Fatalf("CreateTurma() failed: %v", err)
	}
	return turma
}

func createAluno(t *testing.T, nome string, turmaID int) school.Aluno {
	t.Helper()

	dataNasc, err := core.ParseDate("2022-03-15")
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}
	aluno, err := schSvc.CreateAluno(
		context.Background(),
		school.NewAluno{Nome: nome, DataNasc: "2022-03-15", TurmaID: turmaID},
		dataNasc,
	)
	if err != nil {
		t.Fatalf("CreateAluno() failed: %v", err)
	}
	return aluno
}
