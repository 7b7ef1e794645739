// file: internals/features/menu/dto/menu_dto.go
package dto

import (
	"github.com/google/uuid"

	"hango_backend/internals/features/menu/model"
)

/* =========================
   Requests
   ========================= */

type CreateCategoryRequest struct {
	Name       string `json:"name" validate:"required,max=80"`
	DailyQuota *int   `json:"daily_quota" validate:"omitempty,min=1"`
}

type CreateItemRequest struct {
	Name        string     `json:"name" validate:"required,max=120"`
	Description string     `json:"description" validate:"max=255"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

type UpdateItemRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=120"`
	Description *string    `json:"description" validate:"omitempty,max=255"`
	CategoryID  *uuid.UUID `json:"category_id"`
	IsActive    *bool      `json:"is_active"`
}

func (r *UpdateItemRequest) Apply(m *model.ItemModel) {
	if r.Name != nil {
		m.ItemName = *r.Name
	}
	if r.Description != nil {
		m.ItemDescription = *r.Description
	}
	if r.CategoryID != nil {
		m.ItemCategoryID = r.CategoryID
	}
	if r.IsActive != nil {
		m.ItemIsActive = *r.IsActive
	}
}

/* =========================
   Responses
   ========================= */

type CategoryResponse struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	DailyQuota *int      `json:"daily_quota,omitempty"`
}

func FromCategoryModel(m *model.CategoryModel) CategoryResponse {
	return CategoryResponse{
		CategoryID: m.CategoryID,
		Name:       m.CategoryName,
		Slug:       m.CategorySlug,
		DailyQuota: m.CategoryDailyQuota,
	}
}

type ItemResponse struct {
	ItemID      uuid.UUID         `json:"item_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	IsActive    bool              `json:"is_active"`
}

func FromItemModel(m *model.ItemModel) ItemResponse {
	resp := ItemResponse{
		ItemID:      m.ItemID,
		Name:        m.ItemName,
		Description: m.ItemDescription,
		IsActive:    m.ItemIsActive,
	}
	if m.Category != nil {
		cat := FromCategoryModel(m.Category)
		resp.Category = &cat
	}
	return resp
}
