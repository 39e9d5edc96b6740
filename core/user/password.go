package user

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// policy violation messages, surfaced verbatim to clients
const (
	msgSenhaCurta     = "Erro! senha deve possuir, no mínimo, 8 caracteres"
	msgSenhaMinuscula = "Erro! senha deve possuir letra(s) minúscula(s)"
	msgSenhaMaiuscula = "Erro! senha deve possuir letra(s) maiúscula(s)"
	msgSenhaNumero    = "Erro! senha deve possuir número(s)"
	msgSenhaSimbolo   = "Erro! senha deve possuir símbolo(s)"
)

var nowFunc = time.Now // mockable

// CheckPassword applies the password policy and returns every violation
// (an empty slice means the password is acceptable):
// - minLen: 8
// - at least 1 lowercase letter
// - at least 1 uppercase letter
// - at least 1 digit
// - at least 1 symbol (anything else)
// Each rune lands in exactly one bucket, first match wins
// (lower > upper > digit > symbol); intentional, do not "fix".
func CheckPassword(senha string) []string {
	var erros []string
	if len(senha) < 8 {
		erros = append(erros, msgSenhaCurta)
	}

	var lower, upper, numbers, symbols bool
	for _, char := range senha {
		switch {
		case unicode.IsLower(char):
			lower = true
		case unicode.IsUpper(char):
			upper = true
		case unicode.IsDigit(char):
			numbers = true
		default:
			symbols = true
		}
	}

	if !lower {
		erros = append(erros, msgSenhaMinuscula)
	}
	if !upper {
		erros = append(erros, msgSenhaMaiuscula)
	}
	if !numbers {
		erros = append(erros, msgSenhaNumero)
	}
	if !symbols {
		erros = append(erros, msgSenhaSimbolo)
	}
	return erros
}

// DefaultPassword generates the first-access password for provisioned accounts:
// the email local part, a timestamp suffix for uniqueness and the fixed
// "!Esc" tail so the result satisfies the policy.
func DefaultPassword(email string) string {
	userPart := strings.SplitN(email, "@", 2)[0]

	ms := strconv.FormatInt(nowFunc().UnixNano()/int64(time.Millisecond), 10)
	suffix := ms
	if len(ms) >= 10 {
		suffix = ms[6:10]
	}

	return userPart + "_" + suffix + "!Esc"
}
