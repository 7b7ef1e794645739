// file: internals/features/accounts/controller/user_block_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hango_backend/internals/constants"
	"hango_backend/internals/features/accounts/dto"
	"hango_backend/internals/features/accounts/model"
	"hango_backend/internals/features/accounts/service"
	helper "hango_backend/internals/helpers"
	helperAuth "hango_backend/internals/helpers/auth"
)

/* =========================
   Controller & Constructor
   ========================= */

type UserBlockController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Blocks   *service.BlockService
}

func NewUserBlockController(db *gorm.DB, v *validator.Validate) *UserBlockController {
	return &UserBlockController{DB: db, Validate: v, Blocks: &service.BlockService{}}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

func (ctl *UserBlockController) loadActor(c *fiber.Ctx) (*model.UserModel, error) {
	actorID, err := helperAuth.GetUserID(c)
	if err != nil {
		return nil, err
	}
	var actor model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&actor, "user_id = ?", actorID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "ator não encontrado")
	}
	return &actor, nil
}

func (ctl *UserBlockController) loadStudent(c *fiber.Ctx) (*model.UserModel, error) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var student model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&student, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "aluno não encontrado")
		}
		return nil, err
	}
	return &student, nil
}

/* =========================
   Block / Unblock
   ========================= */

// POST /api/s/students/:id/block
func (ctl *UserBlockController) Block(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("bloqueio de alunos"))
	}

	var req dto.BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	actor, err := ctl.loadActor(c)
	if err != nil {
		return err
	}
	student, err := ctl.loadStudent(c)
	if err != nil {
		return err
	}

	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		return ctl.Blocks.Block(tx, student, model.BlockSourceManual, actor, req.Reason)
	}); err != nil {
		if errors.Is(err, service.ErrAlreadyBlocked) {
			return helper.JsonError(c, http.StatusConflict, err.Error())
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Aluno bloqueado", dto.FromUserModel(student))
}

// POST /api/s/students/:id/unblock
func (ctl *UserBlockController) Unblock(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("desbloqueio de alunos"))
	}

	var req dto.UnblockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	actor, err := ctl.loadActor(c)
	if err != nil {
		return err
	}
	student, err := ctl.loadStudent(c)
	if err != nil {
		return err
	}

	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		return ctl.Blocks.Unblock(tx, student, actor, req.Reason)
	}); err != nil {
		switch {
		case errors.Is(err, service.ErrPermission):
			return helper.JsonError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrNotBlocked):
			return helper.JsonError(c, http.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}

	// recarrega para refletir streak zerada
	fresh, err := ctl.loadStudent(c)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Aluno desbloqueado", dto.FromUserModel(fresh))
}

// GET /api/s/students/:id/block-events
func (ctl *UserBlockController) BlockEvents(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("eventos de bloqueio"))
	}

	student, err := ctl.loadStudent(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	q := ctl.DB.WithContext(c.Context()).Model(&model.BlockEventModel{}).
		Where("block_event_user_id = ?", student.UserID)
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var events []model.BlockEventModel
	if err := q.Order("block_event_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&events).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]dto.BlockEventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.FromBlockEventModel(&events[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   Lunch override
   ========================= */

// PATCH /api/s/students/:id/lunch-override
func (ctl *UserBlockController) SetLunchOverride(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("sobrescrita de dias de almoço"))
	}

	var req dto.LunchOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	// com sobrescrita ligada, exige ao menos um dia marcado
	if req.Enabled && req.Mask == 0 {
		return helper.JsonError(c, http.StatusBadRequest, "Selecione ao menos um dia da semana.")
	}

	student, err := ctl.loadStudent(c)
	if err != nil {
		return err
	}
	if student.IsStaffRole() {
		return helper.JsonError(c, http.StatusBadRequest, "sobrescrita só se aplica a alunos")
	}

	if err := ctl.DB.WithContext(c.Context()).Model(student).
		Updates(map[string]any{
			"user_lunch_days_override_enabled": req.Enabled,
			"user_lunch_days_override_mask":    req.Mask,
		}).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	student.UserLunchDaysOverrideEnabled = req.Enabled
	student.UserLunchDaysOverrideMask = req.Mask
	return helper.JsonUpdated(c, "Dias individuais atualizados", dto.FromUserModel(student))
}
