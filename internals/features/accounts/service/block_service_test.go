package service

import "testing"

func TestAutoBlockReason(t *testing.T) {
	tests := []struct {
		threshold int
		want      string
	}{
		{3, "3 faltas consecutivas"},
		{5, "5 faltas consecutivas"},
	}
	for _, tt := range tests {
		if got := AutoBlockReason(tt.threshold); got != tt.want {
			t.Errorf("AutoBlockReason(%d) = %q, want %q", tt.threshold, got, tt.want)
		}
	}
}

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name    string
		cpf     string
		wantErr bool
	}{
		{"valid", "52998224725", false},
		{"valid with punctuation", "529.982.247-25", false},
		{"too short", "1234567890", true},
		{"all same digits", "11111111111", true},
		{"bad first check digit", "52998224735", true},
		{"bad second check digit", "52998224724", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCPF(tt.cpf)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCPF(%q) error = %v, wantErr %v", tt.cpf, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeCPF(t *testing.T) {
	if got := NormalizeCPF("529.982.247-25"); got != "52998224725" {
		t.Errorf("NormalizeCPF = %q", got)
	}
}
