// file: internals/features/orders/route/staff_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	orderCtl "hango_backend/internals/features/orders/controller"
	"hango_backend/internals/middlewares"
)

func OrderStaffRoutes(staff fiber.Router, ctl *orderCtl.OrderController) {
	// a pista de scan tem limite próprio, mais folgado que o global
	staff.Post("/scan", middlewares.ScanRateLimiter(), ctl.Scan)

	staff.Get("/orders", ctl.DayOrders)
	staff.Get("/orders/export", ctl.ExportDayCSV)
	staff.Get("/orders/barcodes", ctl.BarcodeSheet)
	staff.Patch("/orders/:id/delivery", ctl.ToggleDelivery)

	staff.Post("/sweep", ctl.Sweep)
	staff.Post("/students/:id/recompute-streak", ctl.RecomputeStreak)
}
