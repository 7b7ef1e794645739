// file: internals/features/orders/controller/order_user_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accountsModel "hango_backend/internals/features/accounts/model"
	d "hango_backend/internals/features/orders/dto"
	m "hango_backend/internals/features/orders/model"
	svc "hango_backend/internals/features/orders/service"
	helper "hango_backend/internals/helpers"
	helperAuth "hango_backend/internals/helpers/auth"
)

type OrderController struct {
	DB       *gorm.DB
	Validate *validator.Validate

	Checkout    *svc.CheckoutService
	NoShow      *svc.NoShowService
	Eligibility *svc.EligibilityService
}

func New(db *gorm.DB, v *validator.Validate, checkout *svc.CheckoutService, noShow *svc.NoShowService, eligibility *svc.EligibilityService) *OrderController {
	return &OrderController{
		DB:          db,
		Validate:    v,
		Checkout:    checkout,
		NoShow:      noShow,
		Eligibility: eligibility,
	}
}

func (ctl *OrderController) currentUser(c *fiber.Ctx) (*accountsModel.UserModel, error) {
	id, err := helperAuth.GetUserID(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	var user accountsModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "usuário não encontrado")
		}
		return nil, err
	}
	return &user, nil
}

// writeCheckoutError traduz os erros de domínio do checkout:
// problema de entrada = 400, regra de negócio = 403/409.
func writeCheckoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svc.ErrEmptyCart),
		errors.Is(err, svc.ErrQuantityExceedsOne),
		errors.Is(err, svc.ErrItemNotFound),
		errors.Is(err, svc.ErrUncategorizedItem),
		errors.Is(err, svc.ErrCategoryConflict):
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, svc.ErrStudentBlocked),
		errors.Is(err, svc.ErrOperatorCannotOrder),
		errors.Is(err, svc.ErrWeekendCheckout):
		return helper.JsonError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, svc.ErrAlreadyOrdered):
		return helper.JsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrTokenExhausted):
		// exaustão de keyspace é falha de sistema, não mensagem de usuário
		return helper.JsonError(c, http.StatusInternalServerError, "falha ao alocar token de retirada")
	default:
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
}

/* =========================
   Checkout
   ========================= */

// POST /api/u/orders
func (ctl *OrderController) PlaceOrder(c *fiber.Ctx) error {
	student, err := ctl.currentUser(c)
	if err != nil {
		return err
	}

	var req d.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	lines := make([]svc.CheckoutLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		qty := l.Quantity
		if qty == 0 {
			qty = 1
		}
		lines = append(lines, svc.CheckoutLine{ItemID: l.ItemID, Quantity: qty})
	}

	order, day, err := ctl.Checkout.PlaceOrder(c.Context(), student, lines)
	if err != nil {
		return writeCheckoutError(c, err)
	}

	resp := d.FromOrderModel(order)
	body := fiber.Map{"order": resp}
	if day.Exhausted {
		// varredura de elegibilidade esgotada: dia devolvido é o fallback
		body["warning"] = "nenhum dia elegível encontrado na janela; usando o dia base"
	}
	return helper.JsonCreated(c, "Pedido criado", body)
}

// GET /api/u/orders/next-day — prévia do dia de serviço antes do checkout
func (ctl *OrderController) NextServiceDay(c *fiber.Ctx) error {
	student, err := ctl.currentUser(c)
	if err != nil {
		return err
	}
	day, err := ctl.Eligibility.Resolve(c.Context(), student)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", fiber.Map{
		"service_day": day.Day.Format("2006-01-02"),
		"exhausted":   day.Exhausted,
	})
}

// POST /api/u/orders/:id/cancel
func (ctl *OrderController) CancelOrder(c *fiber.Ctx) error {
	student, err := ctl.currentUser(c)
	if err != nil {
		return err
	}
	orderID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id inválido")
	}

	order, err := ctl.Checkout.Cancel(c.Context(), student.UserID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrOrderNotFound):
			return helper.JsonError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, svc.ErrNotCancelable):
			return helper.JsonError(c, http.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonUpdated(c, "Pedido cancelado", d.FromOrderModel(order))
}

// GET /api/u/orders — histórico do próprio aluno
func (ctl *OrderController) MyOrders(c *fiber.Ctx) error {
	student, err := ctl.currentUser(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.WithContext(c.Context()).Model(&m.OrderModel{}).
		Where("order_user_id = ?", student.UserID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("order_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var orders []m.OrderModel
	if err := q.Preload("Items.Item.Category").
		Order("order_service_day DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&orders).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]d.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, d.FromOrderModel(&orders[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
