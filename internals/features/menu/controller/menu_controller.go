// file: internals/features/menu/controller/menu_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hango_backend/internals/constants"
	d "hango_backend/internals/features/menu/dto"
	m "hango_backend/internals/features/menu/model"
	"hango_backend/internals/features/menu/service"
	helper "hango_backend/internals/helpers"
	helperAuth "hango_backend/internals/helpers/auth"
)

type MenuController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *MenuController {
	return &MenuController{DB: db, Validate: v}
}

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func writePGError(c *fiber.Ctx, err error) error {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23503":
			return helper.JsonError(c, http.StatusBadRequest, "Categoria não encontrada.")
		case "23505":
			return helper.JsonError(c, http.StatusConflict, "Registro duplicado.")
		}
	}
	return helper.JsonError(c, http.StatusInternalServerError, err.Error())
}

/* =========================
   Categories
   ========================= */

// GET /api/u/menu/categories
func (ctl *MenuController) ListCategories(c *fiber.Ctx) error {
	var cats []m.CategoryModel
	if err := ctl.DB.WithContext(c.Context()).
		Order("category_name").Find(&cats).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	out := make([]d.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, d.FromCategoryModel(&cats[i]))
	}
	return helper.JsonOK(c, "", out)
}

// POST /api/a/menu/categories
func (ctl *MenuController) CreateCategory(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("cardápio"))
	}

	var req d.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	cat := m.CategoryModel{
		CategoryName:       req.Name,
		CategorySlug:       service.Slugify(req.Name),
		CategoryDailyQuota: req.DailyQuota,
	}
	if cat.CategorySlug == "" {
		return helper.JsonError(c, http.StatusBadRequest, "nome não gera slug válido")
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&cat).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonCreated(c, "Categoria criada", d.FromCategoryModel(&cat))
}

/* =========================
   Items
   ========================= */

// GET /api/u/menu/items — alunos enxergam só os ativos
func (ctl *MenuController) ListItems(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.Context()).
		Model(&m.ItemModel{}).Preload("Category")

	if helperAuth.IsStaff(c) {
		if strings.TrimSpace(c.Query("active")) != "" {
			q = q.Where("item_is_active = ?", c.QueryBool("active"))
		}
	} else {
		q = q.Where("item_is_active = true")
	}

	var items []m.ItemModel
	if err := q.Order("item_name").Find(&items).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	out := make([]d.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, d.FromItemModel(&items[i]))
	}
	return helper.JsonOK(c, "", out)
}

// POST /api/a/menu/items
func (ctl *MenuController) CreateItem(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("cardápio"))
	}

	var req d.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	item := m.ItemModel{
		ItemName:        req.Name,
		ItemDescription: req.Description,
		ItemCategoryID:  req.CategoryID,
		ItemIsActive:    true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&item).Error; err != nil {
		return writePGError(c, err)
	}
	ctl.DB.WithContext(c.Context()).Preload("Category").
		First(&item, "item_id = ?", item.ItemID)
	return helper.JsonCreated(c, "Item criado", d.FromItemModel(&item))
}

// PATCH /api/a/menu/items/:id
func (ctl *MenuController) PatchItem(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("cardápio"))
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id inválido")
	}

	var item m.ItemModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&item, "item_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "item não encontrado")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var req d.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Apply(&item)

	if err := ctl.DB.WithContext(c.Context()).Save(&item).Error; err != nil {
		return writePGError(c, err)
	}
	ctl.DB.WithContext(c.Context()).Preload("Category").
		First(&item, "item_id = ?", item.ItemID)
	return helper.JsonUpdated(c, "Item atualizado", d.FromItemModel(&item))
}

// DELETE /api/a/menu/items/:id — soft delete
func (ctl *MenuController) DeleteItem(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("cardápio"))
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id inválido")
	}
	res := ctl.DB.WithContext(c.Context()).Delete(&m.ItemModel{}, "item_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "item não encontrado")
	}
	return helper.JsonDeleted(c, "Item removido", nil)
}
