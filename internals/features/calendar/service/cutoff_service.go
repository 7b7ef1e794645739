// file: internals/features/calendar/service/cutoff_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"hango_backend/internals/features/calendar/model"
)

// Horário limite padrão: 15:00 local.
const (
	DefaultCutoffHour   = 15
	DefaultCutoffMinute = 0

	// TTL curto: a leitura roda em todo checkout, a troca do valor é rara.
	defaultCacheTTL = 5 * time.Minute
)

// ClockTime é um horário do dia (sem data).
type ClockTime struct {
	Hour   int
	Minute int
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Reached: true se hh:mm do instante já alcançou o limite.
func (t ClockTime) Reached(now time.Time) bool {
	return now.Hour() > t.Hour || (now.Hour() == t.Hour && now.Minute() >= t.Minute)
}

// ParseClockTime valida "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("horário inválido: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return ClockTime{}, fmt.Errorf("hora inválida: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("minuto inválido: %q", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// loaderFunc busca o valor persistido; separado para teste.
type loaderFunc func(ctx context.Context) (ClockTime, error)

// CutoffService: leitura cacheada (TTL) do horário limite, com invalidação
// explícita na escrita. Dependência injetada, não cache global ad-hoc.
type CutoffService struct {
	DB  *gorm.DB
	TTL time.Duration

	Now  func() time.Time // injetável p/ teste
	load loaderFunc

	mu        sync.Mutex
	cached    ClockTime
	expiresAt time.Time
}

func NewCutoffService(db *gorm.DB) *CutoffService {
	s := &CutoffService{
		DB:  db,
		TTL: defaultCacheTTL,
		Now: time.Now,
	}
	s.load = s.loadFromDB
	return s
}

func (s *CutoffService) loadFromDB(ctx context.Context) (ClockTime, error) {
	var setting model.CutoffSettingModel
	err := s.DB.WithContext(ctx).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ClockTime{Hour: DefaultCutoffHour, Minute: DefaultCutoffMinute}, nil
		}
		return ClockTime{}, err
	}
	t, perr := ParseClockTime(setting.CutoffSettingTime)
	if perr != nil {
		// valor corrompido no banco não pode travar o checkout
		return ClockTime{Hour: DefaultCutoffHour, Minute: DefaultCutoffMinute}, nil
	}
	return t, nil
}

// Get devolve o horário limite vigente (cache TTL).
func (s *CutoffService) Get(ctx context.Context) (ClockTime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	if now.Before(s.expiresAt) {
		return s.cached, nil
	}

	t, err := s.load(ctx)
	if err != nil {
		return ClockTime{}, err
	}
	s.cached = t
	s.expiresAt = now.Add(s.TTL)
	return t, nil
}

// Invalidate derruba o cache; chamado na escrita da configuração.
func (s *CutoffService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Time{}
}

// Set persiste o novo horário (upsert do singleton) e invalida o cache.
func (s *CutoffService) Set(ctx context.Context, t ClockTime) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var setting model.CutoffSettingModel
		er := tx.First(&setting).Error
		switch {
		case er == gorm.ErrRecordNotFound:
			setting = model.CutoffSettingModel{CutoffSettingTime: t.String()}
			return tx.Create(&setting).Error
		case er != nil:
			return er
		default:
			return tx.Model(&setting).Update("cutoff_setting_time", t.String()).Error
		}
	})
	if err != nil {
		return err
	}
	s.Invalidate()
	return nil
}
