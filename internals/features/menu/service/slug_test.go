package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Prato Principal", "prato-principal"},
		{"Suco de Laranja", "suco-de-laranja"},
		{"Feijão & Arroz", "feijao-arroz"},
		{"  Sobremesa  ", "sobremesa"},
		{"Açaí", "acai"},
		{"123 Combo!", "123-combo"},
		{"", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := Slugify(c.in); got != c.want {
				t.Fatalf("Slugify(%q) = %q, quer %q", c.in, got, c.want)
			}
		})
	}
}
