// file: internals/features/accounts/model/block_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlockEventModel é trilha de auditoria append-only: nunca é alterada nem
// apagada depois de criada.
type BlockEventModel struct {
	BlockEventID        uuid.UUID         `gorm:"column:block_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"block_event_id"`
	BlockEventUserID    uuid.UUID         `gorm:"column:block_event_user_id;type:uuid;not null;index" json:"block_event_user_id"`
	BlockEventAction    string            `gorm:"column:block_event_action;type:varchar(10);not null" json:"block_event_action"` // block|unblock
	BlockEventSource    BlockSource       `gorm:"column:block_event_source;type:varchar(10);not null" json:"block_event_source"` // manual|auto
	BlockEventActorID   *uuid.UUID        `gorm:"column:block_event_actor_id;type:uuid" json:"block_event_actor_id,omitempty"`   // nulo em ações automáticas
	BlockEventReason    string            `gorm:"column:block_event_reason;type:varchar(255)" json:"block_event_reason"`
	BlockEventMeta      datatypes.JSONMap `gorm:"column:block_event_meta;type:jsonb" json:"block_event_meta,omitempty"`
	BlockEventCreatedAt time.Time         `gorm:"column:block_event_created_at;type:timestamptz;not null;autoCreateTime" json:"block_event_created_at"`
}

func (BlockEventModel) TableName() string { return "block_events" }

const (
	BlockEventActionBlock   = "block"
	BlockEventActionUnblock = "unblock"
)
