// file: internals/features/accounts/service/block_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hango_backend/internals/features/accounts/model"
)

var (
	// ErrPermission: desbloqueio é operação privilegiada, sem caminho automático.
	ErrPermission     = errors.New("apenas equipe pode executar esta ação")
	ErrAlreadyBlocked = errors.New("aluno já está bloqueado")
	ErrNotBlocked     = errors.New("aluno não está bloqueado")
)

// BlockService concentra o ÚNICO caminho que pode ligar/desligar o flag de
// bloqueio; nenhum outro código escreve user_is_blocked diretamente.
type BlockService struct{}

// AutoBlockReason formata o motivo padrão do bloqueio automático.
func AutoBlockReason(threshold int) string {
	return fmt.Sprintf("%d faltas consecutivas", threshold)
}

// Block marca o aluno como bloqueado e registra o BlockEvent na mesma
// transação. actor pode ser nil (bloqueio automático). Idempotência: bloquear
// quem já está bloqueado devolve ErrAlreadyBlocked sem gravar novo evento.
func (s *BlockService) Block(tx *gorm.DB, user *model.UserModel, source model.BlockSource, actor *model.UserModel, reason string) error {
	if user.UserIsBlocked {
		return ErrAlreadyBlocked
	}

	now := time.Now()
	var actorID *uuid.UUID
	// actor só é retido se tiver capacidade de equipe; automáticos ficam nulos
	if actor != nil && actor.IsStaffRole() {
		id := actor.UserID
		actorID = &id
	}

	user.UserIsBlocked = true
	user.UserBlockSource = &source
	user.UserBlockedReason = &reason
	user.UserBlockedAt = &now
	user.UserBlockedByID = actorID

	if err := tx.Model(user).
		Select("user_is_blocked", "user_block_source", "user_blocked_reason", "user_blocked_at", "user_blocked_by_id").
		Updates(user).Error; err != nil {
		return err
	}

	event := model.BlockEventModel{
		BlockEventUserID:  user.UserID,
		BlockEventAction:  model.BlockEventActionBlock,
		BlockEventSource:  source,
		BlockEventActorID: actorID,
		BlockEventReason:  reason,
		BlockEventMeta: datatypes.JSONMap{
			"no_show_streak": user.UserNoShowStreak,
		},
	}
	return tx.Create(&event).Error
}

// Unblock zera o bloqueio E a sequência de faltas (recomeço limpo, não só o
// flag). Exige ator com capacidade de equipe.
func (s *BlockService) Unblock(tx *gorm.DB, user *model.UserModel, actor *model.UserModel, reason string) error {
	if actor == nil || !actor.IsStaffRole() {
		return ErrPermission
	}
	if !user.UserIsBlocked {
		return ErrNotBlocked
	}

	prevStreak := user.UserNoShowStreak

	user.UserIsBlocked = false
	user.UserBlockSource = nil
	user.UserBlockedReason = nil
	user.UserBlockedAt = nil
	user.UserBlockedByID = nil
	user.UserNoShowStreak = 0

	if err := tx.Model(user).
		Select("user_is_blocked", "user_block_source", "user_blocked_reason", "user_blocked_at", "user_blocked_by_id", "user_no_show_streak").
		Updates(map[string]any{
			"user_is_blocked":     false,
			"user_block_source":   nil,
			"user_blocked_reason": nil,
			"user_blocked_at":     nil,
			"user_blocked_by_id":  nil,
			"user_no_show_streak": 0,
		}).Error; err != nil {
		return err
	}

	actorID := actor.UserID
	event := model.BlockEventModel{
		BlockEventUserID:  user.UserID,
		BlockEventAction:  model.BlockEventActionUnblock,
		BlockEventSource:  model.BlockSourceManual,
		BlockEventActorID: &actorID,
		BlockEventReason:  reason,
		BlockEventMeta: datatypes.JSONMap{
			"previous_streak": prevStreak,
		},
	}
	return tx.Create(&event).Error
}
