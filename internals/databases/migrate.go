package database

import (
	"log"

	accountsModel "hango_backend/internals/features/accounts/model"
	calendarModel "hango_backend/internals/features/calendar/model"
	classesModel "hango_backend/internals/features/classes/model"
	menuModel "hango_backend/internals/features/menu/model"
	ordersModel "hango_backend/internals/features/orders/model"
)

// Migrate cria/atualiza o schema. As duas regras que o AutoMigrate não
// expressa ficam em SQL puro:
//   - índice único parcial (user, service_day) ignorando pedidos cancelados —
//     é ELE que garante "1 pedido por dia" sob concorrência;
//   - índice único do pickup_token.
func Migrate() {
	if err := DB.AutoMigrate(
		&accountsModel.UserModel{},
		&accountsModel.BlockEventModel{},
		&classesModel.StudentClassModel{},
		&classesModel.ExtraLunchDayModel{},
		&calendarModel.ClosureModel{},
		&calendarModel.CutoffSettingModel{},
		&menuModel.CategoryModel{},
		&menuModel.ItemModel{},
		&ordersModel.OrderModel{},
		&ordersModel.OrderItemModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate falhou: %v", err)
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS one_order_per_student_per_service_day
			ON orders (order_user_id, order_service_day)
			WHERE order_status <> 'canceled'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_pickup_token
			ON orders (order_pickup_token)`,
	}
	for _, s := range stmts {
		if err := DB.Exec(s).Error; err != nil {
			log.Fatalf("❌ Migração de índice falhou: %v", err)
		}
	}

	log.Println("✅ Migrações aplicadas.")
}
