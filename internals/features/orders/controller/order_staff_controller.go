// file: internals/features/orders/controller/order_staff_controller.go
package controller

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hango_backend/internals/constants"
	accountsModel "hango_backend/internals/features/accounts/model"
	accountsSvc "hango_backend/internals/features/accounts/service"
	d "hango_backend/internals/features/orders/dto"
	m "hango_backend/internals/features/orders/model"
	svc "hango_backend/internals/features/orders/service"
	helper "hango_backend/internals/helpers"
	helperAuth "hango_backend/internals/helpers/auth"
)

// queryDay lê ?date=YYYY-MM-DD, com hoje como padrão.
func (ctl *OrderController) queryDay(c *fiber.Ctx) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		now := ctl.NoShow.Now().In(ctl.NoShow.Loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, ctl.NoShow.Loc), nil
	}
	return time.Parse("2006-01-02", raw)
}

func (ctl *OrderController) ordersOfDay(c *fiber.Ctx, day time.Time) ([]m.OrderModel, error) {
	var orders []m.OrderModel
	err := ctl.DB.WithContext(c.Context()).
		Preload("User").
		Preload("Items.Item.Category").
		Where("order_service_day = ? AND order_status <> ?", day, m.OrderStatusCanceled).
		Order("order_created_at").
		Find(&orders).Error
	return orders, err
}

// classNameByStudent resolve a turma de cada aluno dos pedidos (primeira
// turma ativa, ordem alfabética, para aluno em mais de uma).
func (ctl *OrderController) classNameByStudent(c *fiber.Ctx, orders []m.OrderModel) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].OrderUserID)
	}
	out := map[uuid.UUID]string{}
	if len(ids) == 0 {
		return out, nil
	}

	type row struct {
		UserID           uuid.UUID
		StudentClassName string
	}
	var rows []row
	err := ctl.DB.WithContext(c.Context()).
		Table("student_class_members scm").
		Joins("JOIN student_classes sc ON sc.student_class_id = scm.student_class_id").
		Where("scm.user_id IN ? AND sc.student_class_is_active", ids).
		Order("sc.student_class_name").
		Select("scm.user_id", "sc.student_class_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if _, ok := out[r.UserID]; !ok {
			out[r.UserID] = r.StudentClassName
		}
	}
	return out, nil
}

/* =========================
   Pista de scan
   ========================= */

// POST /api/s/scan
// Entrada crua do leitor: normaliza, valida o checksum e tenta entregar.
// Os desfechos são dados, não erros HTTP — a pista de scan precisa de
// resposta 200 com o veredito para não travar a fila.
func (ctl *OrderController) Scan(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("scan"))
	}

	var req d.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	code := svc.NormalizeScan(req.Code)
	if !svc.ValidateToken(code) {
		return helper.JsonOK(c, "", d.ScanResponse{
			Outcome: d.ScanOutcomeInvalidFormat,
			Message: "código inválido",
		})
	}

	var order m.OrderModel
	err := ctl.DB.WithContext(c.Context()).
		Preload("User").
		Preload("Items.Item.Category").
		Where("order_pickup_token = ? AND order_status <> ?", code, m.OrderStatusCanceled).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonOK(c, "", d.ScanResponse{
				Outcome: d.ScanOutcomeNotFound,
				Message: "pedido não encontrado",
			})
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	resp := d.FromOrderModel(&order)

	if order.OrderStatus == m.OrderStatusPickedUp {
		return helper.JsonOK(c, "", d.ScanResponse{
			Outcome:     d.ScanOutcomeAlready,
			Order:       &resp,
			DeliveredAt: order.OrderDeliveredAt,
			Message:     "pedido já retirado",
		})
	}

	// comparação por data formatada: a coluna date volta sem fuso
	today := ctl.NoShow.Now().In(ctl.NoShow.Loc).Format("2006-01-02")
	if order.OrderServiceDay.Format("2006-01-02") != today {
		return helper.JsonOK(c, "", d.ScanResponse{
			Outcome:   d.ScanOutcomeWrongDay,
			Order:     &resp,
			ActualDay: order.OrderServiceDay.Format("2006-01-02"),
			Message:   fmt.Sprintf("pedido é para %s", order.OrderServiceDay.Format("02/01/2006")),
		})
	}

	actor, err := ctl.currentUser(c)
	if err != nil {
		return err
	}
	updated, already, err := ctl.NoShow.MarkPickedUp(c.Context(), &order, actor)
	if err != nil {
		if errors.Is(err, accountsSvc.ErrPermission) {
			return helper.JsonError(c, http.StatusForbidden, err.Error())
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	resp = d.FromOrderModel(updated)
	if already {
		// outro scan chegou primeiro entre a consulta e a releitura travada
		return helper.JsonOK(c, "", d.ScanResponse{
			Outcome:     d.ScanOutcomeAlready,
			Order:       &resp,
			DeliveredAt: updated.OrderDeliveredAt,
			Message:     "pedido já retirado",
		})
	}
	return helper.JsonOK(c, "Pedido entregue", d.ScanResponse{
		Outcome:     d.ScanOutcomeOK,
		Order:       &resp,
		DeliveredAt: updated.OrderDeliveredAt,
		Message:     "entrega registrada",
	})
}

/* =========================
   Painel da cozinha
   ========================= */

// GET /api/s/orders?date=YYYY-MM-DD
func (ctl *OrderController) DayOrders(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("pedidos"))
	}

	day, err := ctl.queryDay(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "date inválido (use YYYY-MM-DD)")
	}
	orders, err := ctl.ordersOfDay(c, day)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]d.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, d.FromOrderModel(&orders[i]))
	}
	return helper.JsonOK(c, "", fiber.Map{
		"date":   day.Format("2006-01-02"),
		"orders": out,
	})
}

// PATCH /api/s/orders/:id/delivery
// delivered marca retirada; undelivered marca falta. Ambos idempotentes.
func (ctl *OrderController) ToggleDelivery(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("pedidos"))
	}

	orderID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id inválido")
	}

	var req d.DeliveryToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var order m.OrderModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("order_id = ? AND order_status <> ?", orderID, m.OrderStatusCanceled).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "pedido não encontrado")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	switch req.DeliveryStatus {
	case m.DeliveryStatusDelivered:
		actor, err := ctl.currentUser(c)
		if err != nil {
			return err
		}
		updated, _, err := ctl.NoShow.MarkPickedUp(c.Context(), &order, actor)
		if err != nil {
			if errors.Is(err, accountsSvc.ErrPermission) {
				return helper.JsonError(c, http.StatusForbidden, err.Error())
			}
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		return helper.JsonUpdated(c, "Entrega registrada", d.FromOrderModel(updated))

	case m.DeliveryStatusUndelivered:
		blocked, err := ctl.NoShow.MarkNoShow(c.Context(), &order)
		if err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
		return helper.JsonUpdated(c, "Falta registrada", fiber.Map{
			"order":        d.FromOrderModel(&order),
			"auto_blocked": blocked,
		})
	}
	return helper.JsonError(c, http.StatusBadRequest, "delivery_status inválido")
}

/* =========================
   Exportações
   ========================= */

// GET /api/s/orders/export?date=YYYY-MM-DD — CSV do dia para a cozinha
func (ctl *OrderController) ExportDayCSV(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("pedidos"))
	}

	day, err := ctl.queryDay(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "date inválido (use YYYY-MM-DD)")
	}
	orders, err := ctl.ordersOfDay(c, day)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	classes, err := ctl.classNameByStudent(c, orders)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	// totais por item primeiro, depois uma linha por pedido,
	// em ordem turma → aluno (layout herdado da planilha da cozinha)
	totals := map[string]int{}
	for i := range orders {
		for j := range orders[i].Items {
			if it := orders[i].Items[j].Item; it != nil {
				totals[it.ItemName] += orders[i].Items[j].OrderItemQuantity
			}
		}
	}
	itemNames := make([]string, 0, len(totals))
	for name := range totals {
		itemNames = append(itemNames, name)
	}
	sort.Strings(itemNames)

	sort.SliceStable(orders, func(a, b int) bool {
		ca, cb := classes[orders[a].OrderUserID], classes[orders[b].OrderUserID]
		if ca != cb {
			return ca < cb
		}
		na, nb := "", ""
		if orders[a].User != nil {
			na = orders[a].User.FullName()
		}
		if orders[b].User != nil {
			nb = orders[b].User.FullName()
		}
		return na < nb
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"item", "total"})
	for _, name := range itemNames {
		_ = w.Write([]string{name, fmt.Sprintf("%d", totals[name])})
	}
	_ = w.Write([]string{})
	_ = w.Write([]string{"turma", "cpf", "aluno", "dia", "status", "entrega", "token", "itens"})
	for i := range orders {
		o := &orders[i]
		names := make([]string, 0, len(o.Items))
		for j := range o.Items {
			if it := o.Items[j].Item; it != nil {
				names = append(names, it.ItemName)
			}
		}
		sort.Strings(names)
		cpf, name := "", ""
		if o.User != nil {
			cpf, name = o.User.UserCPF, o.User.FullName()
		}
		_ = w.Write([]string{
			classes[o.OrderUserID],
			cpf,
			name,
			o.OrderServiceDay.Format("2006-01-02"),
			o.OrderStatus,
			o.OrderDeliveryStatus,
			o.OrderPickupToken,
			strings.Join(names, "; "),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="pedidos-%s.csv"`, day.Format("2006-01-02")))
	return c.Send(buf.Bytes())
}

// GET /api/s/orders/barcodes?date=YYYY-MM-DD
// Dados para a folha de códigos de barras (o front renderiza o EAN-13).
func (ctl *OrderController) BarcodeSheet(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("pedidos"))
	}

	day, err := ctl.queryDay(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "date inválido (use YYYY-MM-DD)")
	}
	orders, err := ctl.ordersOfDay(c, day)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	classes, err := ctl.classNameByStudent(c, orders)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	type sheetRow struct {
		Student string `json:"student"`
		Class   string `json:"class,omitempty"`
		Token   string `json:"token"`
	}
	rows := make([]sheetRow, 0, len(orders))
	for i := range orders {
		name := ""
		if orders[i].User != nil {
			name = orders[i].User.FullName()
		}
		rows = append(rows, sheetRow{
			Student: name,
			Class:   classes[orders[i].OrderUserID],
			Token:   orders[i].OrderPickupToken,
		})
	}
	return helper.JsonOK(c, "", fiber.Map{
		"date":     day.Format("2006-01-02"),
		"barcodes": rows,
	})
}

/* =========================
   Varredura e reparo
   ========================= */

// POST /api/s/sweep
func (ctl *OrderController) Sweep(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("varredura"))
	}

	var req d.SweepRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
	}

	report, err := ctl.NoShow.Sweep(c.Context(), req.DryRun, req.Force)
	if err != nil {
		if errors.Is(err, svc.ErrSweepBeforeCutoff) {
			return helper.JsonError(c, http.StatusConflict, err.Error())
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Varredura concluída", report)
}

// POST /api/s/students/:id/recompute-streak — operação de reparo
func (ctl *OrderController) RecomputeStreak(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, constants.RoleErrorStaff("faltas"))
	}

	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id inválido")
	}

	var student accountsModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&student, "user_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "aluno não encontrado")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	streak, err := ctl.NoShow.RecomputeStreak(c.Context(), studentID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Sequência recomputada", fiber.Map{
		"user_id":        studentID,
		"no_show_streak": streak,
	})
}
