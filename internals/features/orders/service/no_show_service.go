// file: internals/features/orders/service/no_show_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountsModel "hango_backend/internals/features/accounts/model"
	accountsSvc "hango_backend/internals/features/accounts/service"
	calSvc "hango_backend/internals/features/calendar/service"
	"hango_backend/internals/features/orders/model"
)

// ErrSweepBeforeCutoff: a varredura diária só roda depois do horário
// limite; force=true pula a trava (invocação manual ou de teste).
var ErrSweepBeforeCutoff = errors.New("varredura antes do horário limite; use force para ignorar")

type SweepReport struct {
	DryRun  bool        `json:"dry_run"`
	Scanned int         `json:"scanned"`
	Marked  int         `json:"marked"`
	Blocked int         `json:"blocked"`
	Skipped int         `json:"skipped"`
	Orders  []uuid.UUID `json:"orders,omitempty"`
}

// NoShowService governa as transições terminais do pedido e a política
// de bloqueio por faltas consecutivas.
type NoShowService struct {
	DB        *gorm.DB
	Blocks    *accountsSvc.BlockService
	Cutoff    *calSvc.CutoffService
	Loc       *time.Location
	Threshold int

	Now func() time.Time
}

func NewNoShowService(db *gorm.DB, cutoff *calSvc.CutoffService, loc *time.Location, threshold int) *NoShowService {
	return &NoShowService{
		DB:        db,
		Blocks:    &accountsSvc.BlockService{},
		Cutoff:    cutoff,
		Loc:       loc,
		Threshold: threshold,
		Now:       time.Now,
	}
}

func (s *NoShowService) today() time.Time {
	now := s.Now().In(s.Loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Loc)
}

/* =========================
   MarkPickedUp
   ========================= */

// MarkPickedUp registra a retirada. A releitura sob FOR UPDATE decide:
// duas pistas de scan concorrentes não registram a mesma retirada duas
// vezes; a segunda volta already=true com o pedido inalterado, sem mexer
// na sequência de faltas. Exige operador com capacidade de equipe.
func (s *NoShowService) MarkPickedUp(ctx context.Context, order *model.OrderModel, actor *accountsModel.UserModel) (updated *model.OrderModel, already bool, err error) {
	if actor == nil || !actor.IsStaffRole() {
		return nil, false, accountsSvc.ErrPermission
	}

	now := s.Now().In(s.Loc)
	today := s.today()
	actorID := actor.UserID

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked model.OrderModel
		if er := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, "order_id = ?", order.OrderID).Error; er != nil {
			return er
		}
		if locked.OrderStatus == model.OrderStatusPickedUp {
			order.OrderStatus = locked.OrderStatus
			order.OrderDeliveryStatus = locked.OrderDeliveryStatus
			order.OrderDeliveredAt = locked.OrderDeliveredAt
			order.OrderDeliveredByID = locked.OrderDeliveredByID
			already = true
			return nil
		}

		if er := tx.Model(&locked).Updates(map[string]any{
			"order_status":          model.OrderStatusPickedUp,
			"order_delivery_status": model.DeliveryStatusDelivered,
			"order_delivered_at":    now,
			"order_delivered_by_id": actorID,
		}).Error; er != nil {
			return er
		}

		var student accountsModel.UserModel
		if er := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&student, "user_id = ?", locked.OrderUserID).Error; er != nil {
			return er
		}
		// escrita só quando há o que zerar (ou nenhuma retirada registrada)
		if student.UserNoShowStreak != 0 || student.UserLastPickupAt == nil {
			if er := tx.Model(&student).Updates(map[string]any{
				"user_no_show_streak": 0,
				"user_last_pickup_at": today,
			}).Error; er != nil {
				return er
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if already {
		return order, true, nil
	}

	order.OrderStatus = model.OrderStatusPickedUp
	order.OrderDeliveryStatus = model.DeliveryStatusDelivered
	order.OrderDeliveredAt = &now
	order.OrderDeliveredByID = &actorID
	return order, false, nil
}

/* =========================
   MarkNoShow
   ========================= */

// noShowEffect é o efeito calculado de marcar uma falta: se a transição
// se aplica, a nova sequência e se o limiar dispara o bloqueio.
type noShowEffect struct {
	Apply  bool
	Streak int
	Block  bool
}

// evalNoShow decide o efeito da falta a partir do estado persistido.
// Pedido já em falta é no-op (transição idempotente); aluno já bloqueado
// não recebe um segundo evento de bloqueio.
func evalNoShow(orderStatus string, streak, threshold int, alreadyBlocked bool) noShowEffect {
	if orderStatus == model.OrderStatusNoShow {
		return noShowEffect{Streak: streak}
	}
	next := streak + 1
	return noShowEffect{
		Apply:  true,
		Streak: next,
		Block:  next >= threshold && !alreadyBlocked,
	}
}

// markNoShowTx aplica a transição dentro de uma transação já aberta.
// Pedido e aluno são relidos sob FOR UPDATE: o estado que decide é o da
// linha travada, não o da cópia carregada fora da transação. A sequência
// incrementada é persistida ANTES do bloqueio: se o bloqueio falhar no
// meio, o incremento não se perde e a recomputação repara o resto.
func (s *NoShowService) markNoShowTx(tx *gorm.DB, order *model.OrderModel) (blocked bool, err error) {
	var locked model.OrderModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&locked, "order_id = ?", order.OrderID).Error; err != nil {
		return false, err
	}

	var student accountsModel.UserModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&student, "user_id = ?", locked.OrderUserID).Error; err != nil {
		return false, err
	}

	eff := evalNoShow(locked.OrderStatus, student.UserNoShowStreak, s.Threshold, student.UserIsBlocked)
	if !eff.Apply {
		*order = locked
		return false, nil
	}

	if err := tx.Model(&locked).Updates(map[string]any{
		"order_status":          model.OrderStatusNoShow,
		"order_delivery_status": model.DeliveryStatusUndelivered,
	}).Error; err != nil {
		return false, err
	}
	locked.OrderStatus = model.OrderStatusNoShow
	locked.OrderDeliveryStatus = model.DeliveryStatusUndelivered
	*order = locked

	if err := tx.Model(&student).Updates(map[string]any{
		"user_no_show_streak": eff.Streak,
		"user_last_no_show_at": time.Date(
			locked.OrderServiceDay.Year(), locked.OrderServiceDay.Month(), locked.OrderServiceDay.Day(),
			0, 0, 0, 0, s.Loc),
	}).Error; err != nil {
		return false, err
	}
	student.UserNoShowStreak = eff.Streak

	if eff.Block {
		reason := accountsSvc.AutoBlockReason(s.Threshold)
		if err := s.Blocks.Block(tx, &student, accountsModel.BlockSourceAuto, nil, reason); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// MarkNoShow marca a falta de um pedido isolado. Idempotente.
func (s *NoShowService) MarkNoShow(ctx context.Context, order *model.OrderModel) (blocked bool, err error) {
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var er error
		blocked, er = s.markNoShowTx(tx, order)
		return er
	})
	return blocked, err
}

/* =========================
   Varredura diária
   ========================= */

// Sweep marca como falta todo pedido pendente com dia de serviço já
// vencido. Cada pedido roda na própria transação com FOR UPDATE SKIP
// LOCKED: varreduras concorrentes pulam linhas já reivindicadas em vez
// de disputar. Reexecução é segura (transição idempotente).
func (s *NoShowService) Sweep(ctx context.Context, dryRun, force bool) (SweepReport, error) {
	report := SweepReport{DryRun: dryRun}

	if !force {
		cutoff, err := s.Cutoff.Get(ctx)
		if err != nil {
			return report, err
		}
		if !cutoff.Reached(s.Now().In(s.Loc)) {
			return report, ErrSweepBeforeCutoff
		}
	}

	today := s.today()

	var candidates []uuid.UUID
	if err := s.DB.WithContext(ctx).Model(&model.OrderModel{}).
		Where("order_service_day <= ? AND order_status = ?", today, model.OrderStatusPending).
		Order("order_service_day").
		Pluck("order_id", &candidates).Error; err != nil {
		return report, err
	}
	report.Scanned = len(candidates)

	if dryRun {
		report.Orders = candidates
		return report, nil
	}

	for _, id := range candidates {
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var order model.OrderModel
			er := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
				Where("order_id = ? AND order_status = ?", id, model.OrderStatusPending).
				First(&order).Error
			if er != nil {
				// linha reivindicada por outra varredura (ou já processada)
				if errors.Is(er, gorm.ErrRecordNotFound) {
					report.Skipped++
					return nil
				}
				return er
			}

			blocked, er := s.markNoShowTx(tx, &order)
			if er != nil {
				return er
			}
			report.Marked++
			if blocked {
				report.Blocked++
			}
			report.Orders = append(report.Orders, order.OrderID)
			return nil
		})
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

/* =========================
   Recomputação de sequência
   ========================= */

// recomputeStreakFromOrders: varre os pedidos do mais recente para o
// mais antigo contando faltas até bater numa retirada. Cancelados não
// entram na lista; pendentes (ainda não varridos) não contam nem param.
func recomputeStreakFromOrders(orders []model.OrderModel) int {
	streak := 0
	for i := range orders {
		switch orders[i].OrderStatus {
		case model.OrderStatusNoShow:
			streak++
		case model.OrderStatusPickedUp:
			return streak
		}
	}
	return streak
}

// RecomputeStreak reconta a sequência real a partir do histórico e
// persiste. Operação de reparo idempotente, não o caminho principal.
func (s *NoShowService) RecomputeStreak(ctx context.Context, studentID uuid.UUID) (int, error) {
	var orders []model.OrderModel
	if err := s.DB.WithContext(ctx).
		Where("order_user_id = ? AND order_status <> ? AND order_service_day <= ?",
			studentID, model.OrderStatusCanceled, s.today()).
		Order("order_service_day DESC").
		Find(&orders).Error; err != nil {
		return 0, err
	}

	streak := recomputeStreakFromOrders(orders)
	if err := s.DB.WithContext(ctx).Model(&accountsModel.UserModel{}).
		Where("user_id = ?", studentID).
		Update("user_no_show_streak", streak).Error; err != nil {
		return 0, err
	}
	return streak, nil
}
