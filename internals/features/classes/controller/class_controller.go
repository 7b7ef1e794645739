// file: internals/features/classes/controller/class_controller.go
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
	d "hango_backend/internals/features/classes/dto"
	m "hango_backend/internals/features/classes/model"
	helper "hango_backend/internals/helpers"
	helperAuth "hango_backend/internals/helpers/auth"
	"hango_backend/internals/helpers/weekday"
)

/* =========================
   Controller & Constructor
   ========================= */

type ClassController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *ClassController {
	return &ClassController{DB: db, Validate: v}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// --- PG error mapping ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func writePGError(c *fiber.Ctx, err error) error {
	// 23503 = foreign_key_violation, 23505 = unique_violation
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23503":
			return helper.JsonError(c, http.StatusBadRequest, "Referência não encontrada (FK violation).")
		case "23505":
			return helper.JsonError(c, http.StatusConflict, "Registro duplicado (unique violation).")
		}
	}
	return helper.JsonError(c, http.StatusInternalServerError, err.Error())
}

func (ctl *ClassController) load(c *fiber.Ctx) (*m.StudentClassModel, error) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var class m.StudentClassModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&class, "student_class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "turma não encontrada")
		}
		return nil, err
	}
	return &class, nil
}

/* =========================
   CRUD
   ========================= */

// POST /api/a/classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("turmas"))
	}

	var req d.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	class := req.ToModel(weekday.MonFriMask)
	if err := ctl.DB.WithContext(c.Context()).Create(&class).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonCreated(c, "Turma criada", d.FromClassModel(&class))
}

// GET /api/s/classes
func (ctl *ClassController) List(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("turmas"))
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.WithContext(c.Context()).Model(&m.StudentClassModel{})
	if c.Query("active", "") != "" {
		q = q.Where("student_class_is_active = ?", c.QueryBool("active"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var classes []m.StudentClassModel
	if err := q.Order("student_class_name").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]d.ClassResponse, 0, len(classes))
	for i := range classes {
		out = append(out, d.FromClassModel(&classes[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /api/a/classes/:id
func (ctl *ClassController) Patch(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("turmas"))
	}

	class, err := ctl.load(c)
	if err != nil {
		return err
	}

	var req d.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Apply(class)

	if err := ctl.DB.WithContext(c.Context()).Save(class).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonUpdated(c, "Turma atualizada", d.FromClassModel(class))
}

/* =========================
   Members
   ========================= */

// POST /api/a/classes/:id/members
func (ctl *ClassController) AddMembers(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("turmas"))
	}

	class, err := ctl.load(c)
	if err != nil {
		return err
	}

	var req d.MembersRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	// só alunos entram como membros (regra herdada do cadastro original)
	added := 0
	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		for _, sid := range req.StudentIDs {
			res := tx.Exec(
				`INSERT INTO student_class_members (student_class_id, user_id)
				 SELECT ?, user_id FROM users
				 WHERE user_id = ? AND user_role = 'student' AND user_deleted_at IS NULL
				 ON CONFLICT DO NOTHING`,
				class.StudentClassID, sid,
			)
			if res.Error != nil {
				return res.Error
			}
			added += int(res.RowsAffected)
		}
		return nil
	}); err != nil {
		return writePGError(c, err)
	}

	return helper.JsonUpdated(c, "Membros atualizados", fiber.Map{
		"class": d.FromClassModel(class),
		"added": added,
	})
}

// DELETE /api/a/classes/:id/members/:studentId
func (ctl *ClassController) RemoveMember(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("turmas"))
	}

	class, err := ctl.load(c)
	if err != nil {
		return err
	}
	sid, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.WithContext(c.Context()).Exec(
		`DELETE FROM student_class_members WHERE student_class_id = ? AND user_id = ?`,
		class.StudentClassID, sid,
	).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonDeleted(c, "Membro removido", nil)
}

/* =========================
   Extra lunch days
   ========================= */

// POST /api/a/classes/:id/extra-days
func (ctl *ClassController) GrantExtraDay(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("dias extras"))
	}

	class, err := ctl.load(c)
	if err != nil {
		return err
	}

	var req d.ExtraLunchDayRequest
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

	extra := m.ExtraLunchDayModel{
		ExtraLunchDayClassID: class.StudentClassID,
		ExtraLunchDayDate:    day,
		ExtraLunchDayLabel:   req.Label,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&extra).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonCreated(c, "Dia extra concedido", d.FromExtraLunchDayModel(&extra))
}

// DELETE /api/a/extra-days/:id
func (ctl *ClassController) RevokeExtraDay(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("dias extras"))
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	res := ctl.DB.WithContext(c.Context()).
		Delete(&m.ExtraLunchDayModel{}, "extra_lunch_day_id = ?", id)
	if res.Error != nil {
		return writePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "dia extra não encontrado")
	}
	return helper.JsonDeleted(c, "Dia extra removido", nil)
}

/* =========================
   Spawn successor
   ========================= */

// POST /api/a/classes/:id/spawn-successor
// Cria a turma do próximo ano copiando a máscara (e opcionalmente os membros)
// e grava o elo 1:1. Turma que já tem sucessora não pode gerar outra.
func (ctl *ClassController) SpawnSuccessor(c *fiber.Ctx) error {
	if !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorAdmin("turmas"))
	}

	class, err := ctl.load(c)
	if err != nil {
		return err
	}
	if class.StudentClassNextYearID != nil {
		return helper.JsonError(c, http.StatusConflict, "A turma já está vinculada a uma sucessora.")
	}

	var req d.SpawnSuccessorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	name := req.Name
	if name == "" {
		name = class.StudentClassName + " — próximo"
	}
	year := req.Year
	if year == nil && class.StudentClassYear != nil {
		y := *class.StudentClassYear + 1
		year = &y
	}

	next := m.StudentClassModel{
		StudentClassName:     name,
		StudentClassYear:     year,
		StudentClassDaysMask: class.StudentClassDaysMask,
		StudentClassIsActive: true,
	}

	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if er := tx.Create(&next).Error; er != nil {
			return er
		}
		if req.CarryMembers {
			if er := tx.Exec(
				`INSERT INTO student_class_members (student_class_id, user_id)
				 SELECT ?, user_id FROM student_class_members WHERE student_class_id = ?`,
				next.StudentClassID, class.StudentClassID,
			).Error; er != nil {
				return er
			}
		}
		return tx.Model(class).
			Update("student_class_next_year_id", next.StudentClassID).Error
	}); err != nil {
		return writePGError(c, err)
	}

	return helper.JsonCreated(c, "Turma sucessora criada", fiber.Map{
		"class":     d.FromClassModel(class),
		"successor": d.FromClassModel(&next),
	})
}
