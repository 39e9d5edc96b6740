package echoapi

import (
	"net/http"
	"testing"

	"github.com/Alexseyf/elo-api/core/user"
)

func Test_jwtAuth_guards(t *testing.T) {
	app := setup(t)

	admin := createUser(t, "Admin", "admin@escola.test", "Senha@123", []string{user.RoleAdmin}, true)
	responsavel := createUser(t, "Responsável", "resp@escola.test", "Senha@123", []string{user.RoleResponsavel}, true)
	professor := createUser(t, "Professor", "prof@escola.test", "Senha@123", []string{user.RoleProfessor}, true)

	adminToken := getToken(t, admin)

	// a token with a corrupted signature
	tampered := adminToken[:len(adminToken)-2] + "xx"

	tests := []httpTest{
		{
			name: "missing token", method: http.MethodGet, path: "/usuarios",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNoToken),
		},
		{
			name: "tampered token", method: http.MethodGet, path: "/usuarios", token: tampered,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errBadToken),
		},
		{
			name: "expired token", method: http.MethodGet, path: "/usuarios", token: getExpiredToken(t, admin),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errBadToken),
		},
		{
			name: "role denied", method: http.MethodGet, path: "/usuarios", token: getToken(t, responsavel),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errNegado),
		},
		{
			name: "role denied for teacher", method: http.MethodGet, path: "/usuarios", token: getToken(t, professor),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errNegado),
		},
		{
			name: "role allowed", method: http.MethodGet, path: "/usuarios", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, admin, responsavel, professor),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_roleMiddleware_emptyAllowList(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected roleMiddleware() to panic on an empty allow-list")
		}
	}()
	roleMiddleware()
}
