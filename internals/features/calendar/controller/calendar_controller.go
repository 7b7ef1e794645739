// file: internals/features/calendar/controller/calendar_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hango_backend/internals/constants"
	d "hango_backend/internals/features/calendar/dto"
	m "hango_backend/internals/features/calendar/model"
	"hango_backend/internals/features/calendar/service"
	helper "hango_backend/internals/helpers"
	helperAuth "hango_backend/internals/helpers/auth"
)

type CalendarController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Cutoff   *service.CutoffService
}

func New(db *gorm.DB, v *validator.Validate, cutoff *service.CutoffService) *CalendarController {
	return &CalendarController{DB: db, Validate: v, Cutoff: cutoff}
}

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func writePGError(c *fiber.Ctx, err error) error {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return helper.JsonError(c, http.StatusConflict, "Já existe fechamento nessa data.")
	}
	return helper.JsonError(c, http.StatusInternalServerError, err.Error())
}

/* =========================
   Closures
   ========================= */

// GET /api/s/closures
func (ctl *CalendarController) ListClosures(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("calendário"))
	}

	paging := helper.ResolvePaging(c, 50, 200)
	q := ctl.DB.WithContext(c.Context()).Model(&m.ClosureModel{})

	if from := strings.TrimSpace(c.Query("from")); from != "" {
		day, err := time.Parse("2006-01-02", from)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "from inválido (use YYYY-MM-DD)")
		}
		q = q.Where("closure_date >= ? OR closure_annual_repeat", day)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var closures []m.ClosureModel
	if err := q.Order("closure_date").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&closures).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]d.ClosureResponse, 0, len(closures))
	for i := range closures {
		out = append(out, d.FromClosureModel(&closures[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/a/closures
func (ctl *CalendarController) CreateClosure(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("calendário"))
	}

	var req d.CreateClosureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "data inválida (use YYYY-MM-DD)")
	}

	closure := m.ClosureModel{
		ClosureDate:         day,
		ClosureLabel:        req.Label,
		ClosureAnnualRepeat: req.AnnualRepeat,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&closure).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonCreated(c, "Fechamento registrado", d.FromClosureModel(&closure))
}

// DELETE /api/a/closures/:id
func (ctl *CalendarController) DeleteClosure(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("calendário"))
	}

	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, fmt.Sprintf("id inválido: %s", idStr))
	}

	res := ctl.DB.WithContext(c.Context()).Delete(&m.ClosureModel{}, "closure_id = ?", id)
	if res.Error != nil {
		return writePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "fechamento não encontrado")
	}
	return helper.JsonDeleted(c, "Fechamento removido", nil)
}

/* =========================
   Cutoff setting
   ========================= */

// GET /api/s/cutoff
func (ctl *CalendarController) GetCutoff(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("horário limite"))
	}

	t, err := ctl.Cutoff.Get(c.Context())
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", d.CutoffResponse{Time: t.String()})
}

// PUT /api/a/cutoff
func (ctl *CalendarController) SetCutoff(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("horário limite"))
	}

	var req d.UpdateCutoffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	t, err := service.ParseClockTime(req.Time)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Cutoff.Set(c.Context(), t); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Horário limite atualizado", d.CutoffResponse{Time: t.String()})
}
