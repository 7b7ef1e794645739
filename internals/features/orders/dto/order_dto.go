// file: internals/features/orders/dto/order_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"hango_backend/internals/features/orders/model"
)

/* =========================
   Requests
   ========================= */

type CheckoutLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"omitempty,min=1"`
}

type CheckoutRequest struct {
	Lines []CheckoutLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type ScanRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

type DeliveryToggleRequest struct {
	DeliveryStatus string `json:"delivery_status" validate:"required,oneof=delivered undelivered"`
}

type SweepRequest struct {
	DryRun bool `json:"dry_run"`
	Force  bool `json:"force"`
}

/* =========================
   Responses
   ========================= */

type OrderLineResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Quantity int       `json:"quantity"`
}

type OrderResponse struct {
	OrderID        uuid.UUID           `json:"order_id"`
	ServiceDay     string              `json:"service_day"`
	Status         string              `json:"status"`
	DeliveryStatus string              `json:"delivery_status"`
	PickupToken    string              `json:"pickup_token"`
	Lines          []OrderLineResponse `json:"lines,omitempty"`
	StudentName    string              `json:"student_name,omitempty"`
	StudentCPF     string              `json:"student_cpf,omitempty"`
	DeliveredAt    *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

func FromOrderModel(m *model.OrderModel) OrderResponse {
	resp := OrderResponse{
		OrderID:        m.OrderID,
		ServiceDay:     m.OrderServiceDay.Format("2006-01-02"),
		Status:         m.OrderStatus,
		DeliveryStatus: m.OrderDeliveryStatus,
		PickupToken:    m.OrderPickupToken,
		DeliveredAt:    m.OrderDeliveredAt,
		CreatedAt:      m.OrderCreatedAt,
	}
	for i := range m.Items {
		line := OrderLineResponse{
			ItemID:   m.Items[i].OrderItemItemID,
			Quantity: m.Items[i].OrderItemQuantity,
		}
		if it := m.Items[i].Item; it != nil {
			line.Name = it.ItemName
			if it.Category != nil {
				line.Category = it.Category.CategoryName
			}
		}
		resp.Lines = append(resp.Lines, line)
	}
	if m.User != nil {
		resp.StudentName = m.User.FullName()
		resp.StudentCPF = m.User.UserCPF
	}
	return resp
}

/* =========================
   Scan lane
   ========================= */

const (
	ScanOutcomeOK            = "ok"
	ScanOutcomeAlready       = "already"
	ScanOutcomeWrongDay      = "wrongday"
	ScanOutcomeNotFound      = "notfound"
	ScanOutcomeInvalidFormat = "invalid"
)

type ScanResponse struct {
	Outcome     string         `json:"outcome"`
	Order       *OrderResponse `json:"order,omitempty"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	ActualDay   string         `json:"actual_day,omitempty"`
	Message     string         `json:"message"`
}
