// file: internals/features/orders/model/order_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	accountsModel "hango_backend/internals/features/accounts/model"
	menuModel "hango_backend/internals/features/menu/model"
)

/* =========================
   Status
   ========================= */

const (
	OrderStatusPending  = "pending"
	OrderStatusPickedUp = "picked_up"
	OrderStatusNoShow   = "no_show"
	OrderStatusCanceled = "canceled"

	DeliveryStatusPending     = "pending"
	DeliveryStatusDelivered   = "delivered"
	DeliveryStatusUndelivered = "undelivered"
)

/* =========================
   Model
   ========================= */

// OrderModel: um pedido por aluno por dia de serviço.
// A unicidade (order_user_id, order_service_day) com filtro
// order_status <> 'canceled' é criada em migrate.go — é a constraint,
// não o código, que decide empates de checkout concorrente.
type OrderModel struct {
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;default:gen_random_uuid();primaryKey" json:"order_id"`
	OrderUserID uuid.UUID `gorm:"column:order_user_id;type:uuid;not null;index" json:"order_user_id"`

	OrderServiceDay     time.Time `gorm:"column:order_service_day;type:date;not null;index" json:"order_service_day"`
	OrderStatus         string    `gorm:"column:order_status;type:varchar(10);not null;default:'pending';index" json:"order_status"`
	OrderDeliveryStatus string    `gorm:"column:order_delivery_status;type:varchar(12);not null;default:'pending'" json:"order_delivery_status"`

	// token EAN-13, atribuído uma vez na criação, imutável depois
	OrderPickupToken string `gorm:"column:order_pickup_token;type:varchar(13);not null" json:"order_pickup_token"`

	OrderDeliveredAt   *time.Time `gorm:"column:order_delivered_at;type:timestamptz" json:"order_delivered_at,omitempty"`
	OrderDeliveredByID *uuid.UUID `gorm:"column:order_delivered_by_id;type:uuid" json:"order_delivered_by_id,omitempty"`

	User  *accountsModel.UserModel `gorm:"foreignKey:OrderUserID;references:UserID" json:"user,omitempty"`
	Items []OrderItemModel         `gorm:"foreignKey:OrderItemOrderID;references:OrderID" json:"items,omitempty"`

	OrderCreatedAt time.Time `gorm:"column:order_created_at;type:timestamptz;not null;autoCreateTime" json:"order_created_at"`
	OrderUpdatedAt time.Time `gorm:"column:order_updated_at;type:timestamptz;not null;autoUpdateTime" json:"order_updated_at"`
}

func (OrderModel) TableName() string { return "orders" }

// IsTerminal: picked_up e no_show encerram o processamento automático.
func (o *OrderModel) IsTerminal() bool {
	return o.OrderStatus == OrderStatusPickedUp || o.OrderStatus == OrderStatusNoShow
}

type OrderItemModel struct {
	OrderItemID       uuid.UUID `gorm:"column:order_item_id;type:uuid;default:gen_random_uuid();primaryKey" json:"order_item_id"`
	OrderItemOrderID  uuid.UUID `gorm:"column:order_item_order_id;type:uuid;not null;uniqueIndex:uq_order_item_per_order,priority:1" json:"order_item_order_id"`
	OrderItemItemID   uuid.UUID `gorm:"column:order_item_item_id;type:uuid;not null;uniqueIndex:uq_order_item_per_order,priority:2" json:"order_item_item_id"`
	OrderItemQuantity int       `gorm:"column:order_item_quantity;not null;default:1" json:"order_item_quantity"`

	Item *menuModel.ItemModel `gorm:"foreignKey:OrderItemItemID;references:ItemID" json:"item,omitempty"`
}

func (OrderItemModel) TableName() string { return "order_items" }
