// file: internals/features/orders/service/checkout_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accountsModel "hango_backend/internals/features/accounts/model"
	menuModel "hango_backend/internals/features/menu/model"
	"hango_backend/internals/features/orders/model"
)

/* =========================
   Erros de domínio
   ========================= */

var (
	// validação (rejeitados antes de tocar o banco)
	ErrEmptyCart          = errors.New("o pedido precisa de ao menos um item")
	ErrQuantityExceedsOne = errors.New("quantidade máxima por item é 1")
	ErrItemNotFound       = errors.New("item do cardápio não encontrado ou inativo")
	ErrUncategorizedItem  = errors.New("item sem categoria não pode ser pedido")
	ErrCategoryConflict   = errors.New("no máximo um item por categoria")

	// política (regra de negócio legítima, não bug)
	ErrStudentBlocked      = errors.New("aluno bloqueado não pode fazer pedido")
	ErrOperatorCannotOrder = errors.New("operadores não fazem pedido")
	ErrWeekendCheckout     = errors.New("pedidos só podem ser feitos em dias úteis")
	ErrAlreadyOrdered      = errors.New("já existe pedido para esse dia")

	ErrOrderNotFound = errors.New("pedido não encontrado")
	ErrNotCancelable = errors.New("só pedidos pendentes podem ser cancelados")
)

type CheckoutLine struct {
	ItemID   uuid.UUID
	Quantity int
}

// índice único do token de retirada; um 23505 vindo dele é colisão de
// sorteio, não pedido duplicado do aluno
const pickupTokenConstraint = "uq_orders_pickup_token"

// novas tentativas de criação quando o token colide na janela entre a
// pré-checagem do alocador e o commit
const tokenCollisionRetries = 2

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func isUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}

// uniqueViolationOn aponta a constraint violada pelo nome embutido na
// mensagem do driver ("duplicate key value violates unique constraint ...");
// o nome não vem como campo no contrato mínimo de pgSQLErr.
func uniqueViolationOn(err error, constraint string) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505" &&
		strings.Contains(pgErr.Error(), constraint)
}

/* =========================
   Serviço
   ========================= */

type CheckoutService struct {
	DB          *gorm.DB
	Eligibility *EligibilityService
	Tokens      *TokenAllocator
}

func NewCheckoutService(db *gorm.DB, eligibility *EligibilityService) *CheckoutService {
	return &CheckoutService{
		DB:          db,
		Eligibility: eligibility,
		Tokens:      &TokenAllocator{DB: db},
	}
}

// validateLines aplica as regras de carrinho sem tocar o ledger:
// carrinho não vazio, quantidade 1, item ativo e categorizado,
// no máximo um item por categoria.
func (s *CheckoutService) validateLines(ctx context.Context, lines []CheckoutLine) ([]menuModel.ItemModel, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]menuModel.ItemModel, 0, len(lines))
	seenCategories := map[uuid.UUID]bool{}
	for _, line := range lines {
		if line.Quantity > 1 {
			return nil, ErrQuantityExceedsOne
		}

		var item menuModel.ItemModel
		err := s.DB.WithContext(ctx).
			Where("item_id = ? AND item_is_active", line.ItemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrItemNotFound
			}
			return nil, err
		}

		// item sem categoria burlaria o limite por categoria
		if item.ItemCategoryID == nil {
			return nil, ErrUncategorizedItem
		}
		if seenCategories[*item.ItemCategoryID] {
			return nil, ErrCategoryConflict
		}
		seenCategories[*item.ItemCategoryID] = true
		items = append(items, item)
	}
	return items, nil
}

// PlaceOrder cria o pedido do dia para o aluno. A constraint parcial
// (order_user_id, order_service_day) decide empates de submissão dupla;
// a consulta prévia é só saída antecipada.
func (s *CheckoutService) PlaceOrder(ctx context.Context, student *accountsModel.UserModel, lines []CheckoutLine) (*model.OrderModel, ServiceDay, error) {
	if student.UserIsBlocked {
		return nil, ServiceDay{}, ErrStudentBlocked
	}
	if student.IsStaffRole() {
		return nil, ServiceDay{}, ErrOperatorCannotOrder
	}
	// balcão fecha no fim de semana: pedido só em dia útil
	switch s.Eligibility.Now().In(s.Eligibility.Loc).Weekday() {
	case time.Saturday, time.Sunday:
		return nil, ServiceDay{}, ErrWeekendCheckout
	}

	items, err := s.validateLines(ctx, lines)
	if err != nil {
		return nil, ServiceDay{}, err
	}

	day, err := s.Eligibility.Resolve(ctx, student)
	if err != nil {
		return nil, ServiceDay{}, err
	}

	// saída antecipada (otimização); a constraint é o árbitro real
	var existing int64
	if err := s.DB.WithContext(ctx).Model(&model.OrderModel{}).
		Where("order_user_id = ? AND order_service_day = ? AND order_status <> ?",
			student.UserID, day.Day, model.OrderStatusCanceled).
		Count(&existing).Error; err != nil {
		return nil, ServiceDay{}, err
	}
	if existing > 0 {
		return nil, day, ErrAlreadyOrdered
	}

	var order model.OrderModel
	for attempt := 0; ; attempt++ {
		token, err := s.Tokens.Allocate(ctx)
		if err != nil {
			return nil, day, err
		}

		order = model.OrderModel{
			OrderUserID:         student.UserID,
			OrderServiceDay:     day.Day,
			OrderStatus:         model.OrderStatusPending,
			OrderDeliveryStatus: model.DeliveryStatusPending,
			OrderPickupToken:    token,
		}

		err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if er := tx.Create(&order).Error; er != nil {
				return er
			}
			for _, item := range items {
				line := model.OrderItemModel{
					OrderItemOrderID:  order.OrderID,
					OrderItemItemID:   item.ItemID,
					OrderItemQuantity: 1,
				}
				if er := tx.Create(&line).Error; er != nil {
					return er
				}
			}
			return nil
		})
		if err == nil {
			break
		}
		// colisão de token na janela entre a pré-checagem do alocador e o
		// commit: sorteia outro token em vez de acusar pedido duplicado
		if uniqueViolationOn(err, pickupTokenConstraint) && attempt < tokenCollisionRetries {
			continue
		}
		if isUniqueViolation(err) {
			return nil, day, ErrAlreadyOrdered
		}
		return nil, day, err
	}

	if err := s.DB.WithContext(ctx).
		Preload("Items.Item.Category").
		First(&order, "order_id = ?", order.OrderID).Error; err != nil {
		return nil, day, err
	}
	return &order, day, nil
}

// Cancel libera a vaga do dia: pedidos cancelados ficam de fora da
// constraint de unicidade e das telas de atendimento.
func (s *CheckoutService) Cancel(ctx context.Context, studentID, orderID uuid.UUID) (*model.OrderModel, error) {
	var order model.OrderModel
	err := s.DB.WithContext(ctx).
		Where("order_id = ? AND order_user_id = ?", orderID, studentID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.OrderStatus != model.OrderStatusPending {
		return nil, ErrNotCancelable
	}

	if err := s.DB.WithContext(ctx).Model(&order).
		Update("order_status", model.OrderStatusCanceled).Error; err != nil {
		return nil, err
	}
	order.OrderStatus = model.OrderStatusCanceled
	return &order, nil
}
