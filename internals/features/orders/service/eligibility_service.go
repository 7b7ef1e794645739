// file: internals/features/orders/service/eligibility_service.go
package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	accountsModel "hango_backend/internals/features/accounts/model"
	calSvc "hango_backend/internals/features/calendar/service"
	"hango_backend/internals/helpers/weekday"
)

// Limite da varredura: válvula de segurança contra máscara/fechamentos
// degenerados, não um parâmetro de negócio.
const eligibilityScanDays = 31

// ServiceDay é o resultado da resolução de elegibilidade.
// Exhausted=true sinaliza a varredura esgotada: o dia devolvido é o dia
// base, possivelmente inválido — o chamador decide se aceita ou alerta.
type ServiceDay struct {
	Day       time.Time
	Mask      int
	Exhausted bool
}

/* =========================
   Núcleo puro
   ========================= */

// resolveMask: cadeia explícita de estratégias, primeira que casar vence.
//  1. sobrescrita individual, só com o flag ligado
//  2. OR das máscaras das turmas do aluno
//  3. máscara padrão global
func resolveMask(student *accountsModel.UserModel, classMasks []int, defaultMask int) int {
	if student.UserLunchDaysOverrideEnabled {
		return student.UserLunchDaysOverrideMask
	}
	if len(classMasks) > 0 {
		mask := 0
		for _, m := range classMasks {
			mask |= m
		}
		return mask
	}
	return defaultMask
}

// baseDay: antes do horário limite, amanhã; depois, depois de amanhã.
// O dia extra dá à cozinha um dia inteiro de antecedência.
func baseDay(now time.Time, cutoff calSvc.ClockTime) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if cutoff.Reached(now) {
		return today.AddDate(0, 0, 2)
	}
	return today.AddDate(0, 0, 1)
}

// scanServiceDay varre a partir do dia base até achar um dia que sirva:
// dia extra concedido vale independente da máscara; fora isso, o bit do
// dia da semana precisa estar ligado. Fechamento de calendário veta
// sempre, inclusive dias extras.
func scanServiceDay(now time.Time, cutoff calSvc.ClockTime, mask int, isClosure, isExtraDay func(time.Time) bool) (time.Time, bool) {
	day := baseDay(now, cutoff)
	for i := 0; i < eligibilityScanDays; i++ {
		candidate := day.AddDate(0, 0, i)
		if isClosure(candidate) {
			continue
		}
		if isExtraDay(candidate) || mask&weekday.BitFor(candidate) != 0 {
			return candidate, false
		}
	}
	// configuração degenerada: devolve o dia base e sinaliza
	return day, true
}

/* =========================
   Serviço (camada de dados)
   ========================= */

type EligibilityService struct {
	DB          *gorm.DB
	Cutoff      *calSvc.CutoffService
	Loc         *time.Location
	DefaultMask int

	Now func() time.Time // injetável p/ teste
}

func NewEligibilityService(db *gorm.DB, cutoff *calSvc.CutoffService, loc *time.Location) *EligibilityService {
	return &EligibilityService{
		DB:          db,
		Cutoff:      cutoff,
		Loc:         loc,
		DefaultMask: weekday.MonFriMask,
		Now:         time.Now,
	}
}

func (s *EligibilityService) classMasks(ctx context.Context, student *accountsModel.UserModel) ([]int, error) {
	var masks []int
	err := s.DB.WithContext(ctx).
		Table("student_classes").
		Joins("JOIN student_class_members scm ON scm.student_class_id = student_classes.student_class_id").
		Where("scm.user_id = ? AND student_classes.student_class_is_active", student.UserID).
		Pluck("student_classes.student_class_days_mask", &masks).Error
	return masks, err
}

// closureSet carrega os fechamentos da janela de varredura de uma vez.
// Repetições anuais entram pela chave mês/dia.
func (s *EligibilityService) closureSet(ctx context.Context, from, to time.Time) (func(time.Time) bool, error) {
	type row struct {
		ClosureDate         time.Time
		ClosureAnnualRepeat bool
	}
	var rows []row
	err := s.DB.WithContext(ctx).
		Table("closures").
		Where("(closure_date BETWEEN ? AND ?) OR closure_annual_repeat", from, to).
		Select("closure_date", "closure_annual_repeat").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	exact := make(map[string]bool, len(rows))
	annual := make(map[string]bool)
	for _, r := range rows {
		exact[r.ClosureDate.Format("2006-01-02")] = true
		if r.ClosureAnnualRepeat {
			annual[r.ClosureDate.Format("01-02")] = true
		}
	}
	return func(d time.Time) bool {
		return exact[d.Format("2006-01-02")] || annual[d.Format("01-02")]
	}, nil
}

func (s *EligibilityService) extraDaySet(ctx context.Context, student *accountsModel.UserModel, from, to time.Time) (func(time.Time) bool, error) {
	var dates []time.Time
	err := s.DB.WithContext(ctx).
		Table("extra_lunch_days").
		Joins("JOIN student_class_members scm ON scm.student_class_id = extra_lunch_days.extra_lunch_day_class_id").
		Where("scm.user_id = ? AND extra_lunch_days.extra_lunch_day_date BETWEEN ? AND ?", student.UserID, from, to).
		Pluck("extra_lunch_days.extra_lunch_day_date", &dates).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d.Format("2006-01-02")] = true
	}
	return func(d time.Time) bool { return set[d.Format("2006-01-02")] }, nil
}

// Resolve calcula o próximo dia de serviço válido para o aluno agora.
func (s *EligibilityService) Resolve(ctx context.Context, student *accountsModel.UserModel) (ServiceDay, error) {
	now := s.Now().In(s.Loc)

	cutoff, err := s.Cutoff.Get(ctx)
	if err != nil {
		return ServiceDay{}, err
	}

	masks, err := s.classMasks(ctx, student)
	if err != nil {
		return ServiceDay{}, err
	}
	mask := resolveMask(student, masks, s.DefaultMask)

	from := baseDay(now, cutoff)
	to := from.AddDate(0, 0, eligibilityScanDays)

	isClosure, err := s.closureSet(ctx, from, to)
	if err != nil {
		return ServiceDay{}, err
	}
	isExtra, err := s.extraDaySet(ctx, student, from, to)
	if err != nil {
		return ServiceDay{}, err
	}

	day, exhausted := scanServiceDay(now, cutoff, mask, isClosure, isExtra)
	return ServiceDay{Day: day, Mask: mask, Exhausted: exhausted}, nil
}
