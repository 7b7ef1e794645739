package service

import (
	"strings"
	"testing"
)

func TestEAN13CheckDigit(t *testing.T) {
	// códigos EAN-13 reais: dígito verificador conhecido
	cases := []struct {
		body string
		want int
	}{
		{"400638133393", 1}, // 4006381333931
		{"978030640615", 7}, // 9780306406157
		{"000000000000", 0},
		{"111111111111", 6},
	}
	for _, c := range cases {
		if got := ean13CheckDigit(c.body); got != c.want {
			t.Errorf("ean13CheckDigit(%s) = %d, quer %d", c.body, got, c.want)
		}
	}
}

func TestValidateToken(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"4006381333931", true},
		{"9780306406157", true},
		{"4006381333930", false}, // verificador errado
		{"400638133393", false},  // 12 dígitos
		{"40063813339312", false},
		{"400638133393a", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidateToken(c.code); got != c.want {
			t.Errorf("ValidateToken(%q) = %v, quer %v", c.code, got, c.want)
		}
	}
}

func TestValidateTokenCatchesSingleDigitMutation(t *testing.T) {
	token := "9780306406157"
	caught := 0
	total := 0
	for pos := 0; pos < len(token); pos++ {
		for d := byte('0'); d <= '9'; d++ {
			if token[pos] == d {
				continue
			}
			mutated := token[:pos] + string(d) + token[pos+1:]
			total++
			if !ValidateToken(mutated) {
				caught++
			}
		}
	}
	// propriedade do EAN-13: toda mutação de um único dígito é detectada
	if caught != total {
		t.Fatalf("mutações detectadas: %d de %d", caught, total)
	}
}

func TestRandomTokenShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		token, err := randomToken()
		if err != nil {
			t.Fatal(err)
		}
		if len(token) != 13 {
			t.Fatalf("token %q tem %d dígitos", token, len(token))
		}
		if !ValidateToken(token) {
			t.Fatalf("token gerado não valida: %q", token)
		}
		seen[token] = true
	}
	if len(seen) < 190 {
		t.Fatalf("colisões demais em 200 sorteios: %d únicos", len(seen))
	}
}

func TestNormalizeScan(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"9780306406157", "9780306406157"},
		{" 9780306406157\n", "9780306406157"},
		{"978-0306-406157", "9780306406157"},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := NormalizeScan(c.in); got != c.want {
			t.Errorf("NormalizeScan(%q) = %q, quer %q", c.in, got, c.want)
		}
	}
	if NormalizeScan(strings.Repeat("x", 50)) != "" {
		t.Error("entrada sem dígitos deveria virar vazio")
	}
}
