package service

import (
	"testing"
	"time"

	accountsModel "hango_backend/internals/features/accounts/model"
	calSvc "hango_backend/internals/features/calendar/service"
	"hango_backend/internals/helpers/weekday"
)

var never = func(time.Time) bool { return false }

func onDates(dates ...string) func(time.Time) bool {
	set := map[string]bool{}
	for _, d := range dates {
		set[d] = true
	}
	return func(t time.Time) bool { return set[t.Format("2006-01-02")] }
}

// 2026-03-10 é uma terça-feira.
func tuesday(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestResolveMaskPriority(t *testing.T) {
	student := &accountsModel.UserModel{}

	// padrão global quando não há turma nem sobrescrita
	if got := resolveMask(student, nil, weekday.MonFriMask); got != weekday.MonFriMask {
		t.Fatalf("sem turma: mask=%d", got)
	}

	// OR das turmas
	if got := resolveMask(student, []int{0b00001, 0b00110}, weekday.MonFriMask); got != 0b00111 {
		t.Fatalf("turmas: mask=%b", got)
	}

	// sobrescrita desligada não vale
	student.UserLunchDaysOverrideMask = 0b1000000
	if got := resolveMask(student, []int{0b00001}, weekday.MonFriMask); got != 0b00001 {
		t.Fatalf("sobrescrita desligada: mask=%b", got)
	}

	// sobrescrita ligada vence tudo
	student.UserLunchDaysOverrideEnabled = true
	if got := resolveMask(student, []int{0b00001}, weekday.MonFriMask); got != 0b1000000 {
		t.Fatalf("sobrescrita ligada: mask=%b", got)
	}
}

func TestBaseDayCutoff(t *testing.T) {
	cutoff := calSvc.ClockTime{Hour: 15, Minute: 0}

	// antes do limite: amanhã
	if got := baseDay(tuesday(14, 0), cutoff); got.Day() != 11 {
		t.Fatalf("14:00: base=%v", got)
	}
	// 15:00 em ponto já conta como depois
	if got := baseDay(tuesday(15, 0), cutoff); got.Day() != 12 {
		t.Fatalf("15:00: base=%v", got)
	}
	if got := baseDay(tuesday(16, 0), cutoff); got.Day() != 12 {
		t.Fatalf("16:00: base=%v", got)
	}
}

func TestScanServiceDay(t *testing.T) {
	cutoff := calSvc.ClockTime{Hour: 15, Minute: 0}
	mask := weekday.MonFriMask

	t.Run("terça 14h vira quarta", func(t *testing.T) {
		day, exhausted := scanServiceDay(tuesday(14, 0), cutoff, mask, never, never)
		if exhausted || day.Format("2006-01-02") != "2026-03-11" {
			t.Fatalf("day=%v exhausted=%v", day, exhausted)
		}
	})

	t.Run("terça 16h vira quinta", func(t *testing.T) {
		day, exhausted := scanServiceDay(tuesday(16, 0), cutoff, mask, never, never)
		if exhausted || day.Format("2006-01-02") != "2026-03-12" {
			t.Fatalf("day=%v exhausted=%v", day, exhausted)
		}
	})

	t.Run("base cai no fim de semana e pula pra segunda", func(t *testing.T) {
		// quinta 16h: base = sábado 14/03, fora da máscara seg-sex
		thursday := time.Date(2026, 3, 12, 16, 0, 0, 0, time.UTC)
		day, exhausted := scanServiceDay(thursday, cutoff, mask, never, never)
		if exhausted || day.Format("2006-01-02") != "2026-03-16" {
			t.Fatalf("day=%v exhausted=%v", day, exhausted)
		}
	})

	t.Run("fechamento na sexta empurra pra segunda", func(t *testing.T) {
		// quarta 16h: base = sexta 13/03; sexta fechada, sáb/dom fora da máscara
		wednesday := time.Date(2026, 3, 11, 16, 0, 0, 0, time.UTC)
		closed := onDates("2026-03-13")
		day, exhausted := scanServiceDay(wednesday, cutoff, mask, closed, never)
		if exhausted || day.Format("2006-01-02") != "2026-03-16" {
			t.Fatalf("day=%v exhausted=%v", day, exhausted)
		}
	})

	t.Run("dia extra vale mesmo fora da máscara", func(t *testing.T) {
		// quinta 16h: base = sábado 14/03, concedido como dia extra
		thursday := time.Date(2026, 3, 12, 16, 0, 0, 0, time.UTC)
		extra := onDates("2026-03-14")
		day, exhausted := scanServiceDay(thursday, cutoff, mask, never, extra)
		if exhausted || day.Format("2006-01-02") != "2026-03-14" {
			t.Fatalf("day=%v exhausted=%v", day, exhausted)
		}
	})

	t.Run("fechamento veta até dia extra", func(t *testing.T) {
		thursday := time.Date(2026, 3, 12, 16, 0, 0, 0, time.UTC)
		extra := onDates("2026-03-14")
		closed := onDates("2026-03-14")
		day, _ := scanServiceDay(thursday, cutoff, mask, closed, extra)
		if day.Format("2006-01-02") == "2026-03-14" {
			t.Fatalf("dia fechado não pode ser escolhido: %v", day)
		}
	})

	t.Run("máscara vazia esgota e devolve o dia base", func(t *testing.T) {
		day, exhausted := scanServiceDay(tuesday(14, 0), cutoff, 0, never, never)
		if !exhausted {
			t.Fatal("esperava varredura esgotada")
		}
		if day.Format("2006-01-02") != "2026-03-11" {
			t.Fatalf("fallback deveria ser o dia base, veio %v", day)
		}
	})
}
