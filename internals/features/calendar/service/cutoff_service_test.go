package service

import (
	"context"
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"15:00", ClockTime{15, 0}, false},
		{"09:30", ClockTime{9, 30}, false},
		{"00:00", ClockTime{0, 0}, false},
		{"23:59", ClockTime{23, 59}, false},
		{" 15:00 ", ClockTime{15, 0}, false},
		{"24:00", ClockTime{}, true},
		{"12:60", ClockTime{}, true},
		{"1200", ClockTime{}, true},
		{"ab:cd", ClockTime{}, true},
		{"", ClockTime{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseClockTime(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("ParseClockTime(%q): esperava erro, veio %v", c.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClockTime(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("ParseClockTime(%q) = %v, quer %v", c.in, got, c.want)
			}
		})
	}
}

func TestClockTimeReached(t *testing.T) {
	cutoff := ClockTime{Hour: 15, Minute: 0}
	day := func(h, m int) time.Time {
		return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
	}
	if cutoff.Reached(day(14, 59)) {
		t.Fatal("14:59 não deveria ter alcançado o limite 15:00")
	}
	if !cutoff.Reached(day(15, 0)) {
		t.Fatal("15:00 em ponto já conta como limite alcançado")
	}
	if !cutoff.Reached(day(18, 30)) {
		t.Fatal("18:30 deveria ter alcançado o limite 15:00")
	}
}

func TestCutoffServiceCacheTTL(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	loads := 0
	value := ClockTime{Hour: 15, Minute: 0}

	s := &CutoffService{TTL: 5 * time.Minute}
	s.Now = func() time.Time { return now }
	s.load = func(ctx context.Context) (ClockTime, error) {
		loads++
		return value, nil
	}

	ctx := context.Background()

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != value || loads != 1 {
		t.Fatalf("primeira leitura: got=%v loads=%d", got, loads)
	}

	// dentro do TTL: sem nova consulta
	now = now.Add(2 * time.Minute)
	value = ClockTime{Hour: 16, Minute: 0}
	got, _ = s.Get(ctx)
	if got != (ClockTime{15, 0}) || loads != 1 {
		t.Fatalf("leitura cacheada: got=%v loads=%d", got, loads)
	}

	// TTL vencido: recarrega
	now = now.Add(4 * time.Minute)
	got, _ = s.Get(ctx)
	if got != (ClockTime{16, 0}) || loads != 2 {
		t.Fatalf("leitura pós-TTL: got=%v loads=%d", got, loads)
	}
}

func TestCutoffServiceInvalidate(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	loads := 0
	value := ClockTime{Hour: 15, Minute: 0}

	s := &CutoffService{TTL: 5 * time.Minute}
	s.Now = func() time.Time { return now }
	s.load = func(ctx context.Context) (ClockTime, error) {
		loads++
		return value, nil
	}

	ctx := context.Background()
	if _, err := s.Get(ctx); err != nil {
		t.Fatal(err)
	}

	value = ClockTime{Hour: 14, Minute: 30}
	s.Invalidate()

	got, _ := s.Get(ctx)
	if got != (ClockTime{14, 30}) || loads != 2 {
		t.Fatalf("pós-invalidação: got=%v loads=%d", got, loads)
	}
}
