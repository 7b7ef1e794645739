package service

import (
	"testing"
	"time"

	"hango_backend/internals/features/orders/model"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestRecomputeStreakFromOrders(t *testing.T) {
	// lista já vem do mais recente para o mais antigo
	cases := []struct {
		name   string
		orders []model.OrderModel
		want   int
	}{
		{
			name:   "sem histórico",
			orders: nil,
			want:   0,
		},
		{
			name: "três faltas seguidas",
			orders: []model.OrderModel{
				{OrderServiceDay: day(12), OrderStatus: model.OrderStatusNoShow},
				{OrderServiceDay: day(11), OrderStatus: model.OrderStatusNoShow},
				{OrderServiceDay: day(10), OrderStatus: model.OrderStatusNoShow},
			},
			want: 3,
		},
		{
			name: "retirada zera a contagem",
			orders: []model.OrderModel{
				{OrderServiceDay: day(12), OrderStatus: model.OrderStatusNoShow},
				{OrderServiceDay: day(11), OrderStatus: model.OrderStatusPickedUp},
				{OrderServiceDay: day(10), OrderStatus: model.OrderStatusNoShow},
			},
			want: 1,
		},
		{
			name: "retirada mais recente que as faltas",
			orders: []model.OrderModel{
				{OrderServiceDay: day(12), OrderStatus: model.OrderStatusPickedUp},
				{OrderServiceDay: day(11), OrderStatus: model.OrderStatusNoShow},
			},
			want: 0,
		},
		{
			name: "pendente não conta nem interrompe",
			orders: []model.OrderModel{
				{OrderServiceDay: day(12), OrderStatus: model.OrderStatusPending},
				{OrderServiceDay: day(11), OrderStatus: model.OrderStatusNoShow},
				{OrderServiceDay: day(10), OrderStatus: model.OrderStatusNoShow},
			},
			want: 2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := recomputeStreakFromOrders(c.orders); got != c.want {
				t.Fatalf("streak = %d, quer %d", got, c.want)
			}
		})
	}
}

func TestEvalNoShow(t *testing.T) {
	const threshold = 3

	cases := []struct {
		name    string
		status  string
		streak  int
		blocked bool
		want    noShowEffect
	}{
		{
			name:   "primeira falta não bloqueia",
			status: model.OrderStatusPending,
			streak: 0,
			want:   noShowEffect{Apply: true, Streak: 1},
		},
		{
			name:   "segunda falta ainda abaixo do limiar",
			status: model.OrderStatusPending,
			streak: 1,
			want:   noShowEffect{Apply: true, Streak: 2},
		},
		{
			name:   "terceira falta consecutiva dispara o bloqueio",
			status: model.OrderStatusPending,
			streak: 2,
			want:   noShowEffect{Apply: true, Streak: 3, Block: true},
		},
		{
			name:    "quarta falta com aluno já bloqueado não gera novo evento",
			status:  model.OrderStatusPending,
			streak:  3,
			blocked: true,
			want:    noShowEffect{Apply: true, Streak: 4},
		},
		{
			name:   "acima do limiar após desbloqueio manual bloqueia de novo",
			status: model.OrderStatusPending,
			streak: 4,
			want:   noShowEffect{Apply: true, Streak: 5, Block: true},
		},
		{
			name:   "pedido já em falta é no-op",
			status: model.OrderStatusNoShow,
			streak: 3,
			want:   noShowEffect{Streak: 3},
		},
		{
			name:    "no-op também quando bloqueado",
			status:  model.OrderStatusNoShow,
			streak:  5,
			blocked: true,
			want:    noShowEffect{Streak: 5},
		},
		{
			name:   "entrega desfeita volta a contar",
			status: model.OrderStatusPickedUp,
			streak: 0,
			want:   noShowEffect{Apply: true, Streak: 1},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := evalNoShow(c.status, c.streak, threshold, c.blocked)
			if got != c.want {
				t.Fatalf("evalNoShow(%s, %d, %d, %v) = %+v, quer %+v",
					c.status, c.streak, threshold, c.blocked, got, c.want)
			}
		})
	}
}

// marcar a mesma falta duas vezes não pode inflar a sequência nem
// disparar um segundo bloqueio; a segunda avaliação vê o estado já
// persistido pela primeira
func TestEvalNoShowIdempotente(t *testing.T) {
	const threshold = 3

	first := evalNoShow(model.OrderStatusPending, 2, threshold, false)
	if !first.Apply || first.Streak != 3 || !first.Block {
		t.Fatalf("primeira marcação = %+v, esperava aplicar com bloqueio", first)
	}

	second := evalNoShow(model.OrderStatusNoShow, first.Streak, threshold, true)
	if second.Apply || second.Block || second.Streak != 3 {
		t.Fatalf("segunda marcação = %+v, esperava no-op", second)
	}
}
