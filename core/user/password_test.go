package user

import (
	"strings"
	"testing"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name      string
		senha     string
		wantErros []string
	}{
		{name: "valid", senha: "Abcdef1!", wantErros: nil},
		{name: "valid long", senha: "Minha#Senha123", wantErros: nil},
		{
			name:  "all lowercase",
			senha: "abcdefgh",
			wantErros: []string{
				msgSenhaMaiuscula,
				msgSenhaNumero,
				msgSenhaSimbolo,
			},
		},
		{
			name:  "too short keeps other checks",
			senha: "Ab1!",
			wantErros: []string{
				msgSenhaCurta,
			},
		},
		{
			name:  "empty reports everything",
			senha: "",
			wantErros: []string{
				msgSenhaCurta,
				msgSenhaMinuscula,
				msgSenhaMaiuscula,
				msgSenhaNumero,
				msgSenhaSimbolo,
			},
		},
		{
			name:  "no digit",
			senha: "Abcdefg!",
			wantErros: []string{
				msgSenhaNumero,
			},
		},
		{
			name:  "all digits",
			senha: "12345678",
			wantErros: []string{
				msgSenhaMinuscula,
				msgSenhaMaiuscula,
				msgSenhaSimbolo,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			erros := CheckPassword(tt.senha)
			if len(erros) != len(tt.wantErros) {
				t.Fatalf("CheckPassword() = %v; want %v", erros, tt.wantErros)
			}
			for i, want := range tt.wantErros {
				if erros[i] != want {
					t.Errorf("CheckPassword()[%d] = %q; want %q", i, erros[i], want)
				}
			}
		})
	}
}

func TestCheckPassword_shortPasswordsAlwaysFlagged(t *testing.T) {
	for _, senha := range []string{"", "a", "Ab1!", "Abcdef1"} {
		erros := CheckPassword(senha)
		var found bool
		for _, e := range erros {
			if e == msgSenhaCurta {
				found = true
			}
		}
		if !found {
			t.Errorf("CheckPassword(%q) missing length violation: %v", senha, erros)
		}
	}
}

func TestDefaultPassword(t *testing.T) {
	pwd := DefaultPassword("ana.souza@escola.com")

	if !strings.HasPrefix(pwd, "ana.souza_") {
		t.Errorf("DefaultPassword() = %q; want local-part prefix", pwd)
	}
	if !strings.HasSuffix(pwd, "!Esc") {
		t.Errorf("DefaultPassword() = %q; want %q suffix", pwd, "!Esc")
	}
	if erros := CheckPassword(pwd); len(erros) != 0 {
		t.Errorf("DefaultPassword() = %q does not satisfy the policy: %v", pwd, erros)
	}
}
