// file: internals/features/accounts/service/cpf.go
package service

import (
	"errors"
	"strings"
)

var ErrInvalidCPF = errors.New("CPF inválido")

// NormalizeCPF remove tudo que não é dígito.
func NormalizeCPF(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCPF aplica a validação estrita (11 dígitos + dígitos verificadores).
func ValidateCPF(raw string) error {
	digits := NormalizeCPF(raw)
	if len(digits) != 11 {
		return ErrInvalidCPF
	}
	// rejeita sequências repetidas (000..., 111..., etc)
	allSame := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return ErrInvalidCPF
	}

	s := 0
	for i := 0; i < 9; i++ {
		s += int(digits[i]-'0') * (10 - i)
	}
	d1 := (s * 10) % 11
	if d1 == 10 {
		d1 = 0
	}
	if d1 != int(digits[9]-'0') {
		return ErrInvalidCPF
	}

	s = 0
	for i := 0; i < 10; i++ {
		s += int(digits[i]-'0') * (11 - i)
	}
	d2 := (s * 10) % 11
	if d2 == 10 {
		d2 = 0
	}
	if d2 != int(digits[10]-'0') {
		return ErrInvalidCPF
	}
	return nil
}
