// file: internals/features/orders/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	orderCtl "hango_backend/internals/features/orders/controller"
)

func OrderUserRoutes(private fiber.Router, ctl *orderCtl.OrderController) {
	private.Post("/orders", ctl.PlaceOrder)
	private.Get("/orders", ctl.MyOrders)
	private.Get("/orders/next-day", ctl.NextServiceDay)
	private.Post("/orders/:id/cancel", ctl.CancelOrder)
}
