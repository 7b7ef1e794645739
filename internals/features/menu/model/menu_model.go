// file: internals/features/menu/model/menu_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryModel: agrupamento exclusivo — um pedido leva no máximo
// um item de cada categoria.
type CategoryModel struct {
	CategoryID   uuid.UUID `gorm:"column:category_id;type:uuid;default:gen_random_uuid();primaryKey" json:"category_id"`
	CategoryName string    `gorm:"column:category_name;type:varchar(80);not null" json:"category_name"`
	CategorySlug string    `gorm:"column:category_slug;type:varchar(80);not null;uniqueIndex" json:"category_slug"`

	// cota diária de produção informada à cozinha; nulo = sem limite
	CategoryDailyQuota *int `gorm:"column:category_daily_quota" json:"category_daily_quota,omitempty"`

	CategoryCreatedAt time.Time `gorm:"column:category_created_at;type:timestamptz;not null;autoCreateTime" json:"category_created_at"`
}

func (CategoryModel) TableName() string { return "menu_categories" }

type ItemModel struct {
	ItemID          uuid.UUID  `gorm:"column:item_id;type:uuid;default:gen_random_uuid();primaryKey" json:"item_id"`
	ItemName        string     `gorm:"column:item_name;type:varchar(120);not null" json:"item_name"`
	ItemDescription string     `gorm:"column:item_description;type:varchar(255)" json:"item_description,omitempty"`
	ItemCategoryID  *uuid.UUID `gorm:"column:item_category_id;type:uuid;index" json:"item_category_id,omitempty"`
	ItemIsActive    bool       `gorm:"column:item_is_active;not null;default:true" json:"item_is_active"`

	Category *CategoryModel `gorm:"foreignKey:ItemCategoryID;references:CategoryID" json:"category,omitempty"`

	ItemCreatedAt time.Time      `gorm:"column:item_created_at;type:timestamptz;not null;autoCreateTime" json:"item_created_at"`
	ItemUpdatedAt time.Time      `gorm:"column:item_updated_at;type:timestamptz;not null;autoUpdateTime" json:"item_updated_at"`
	ItemDeletedAt gorm.DeletedAt `gorm:"column:item_deleted_at;index" json:"-"`
}

func (ItemModel) TableName() string { return "menu_items" }
