// file: internals/features/calendar/route/calendar_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	calCtl "hango_backend/internals/features/calendar/controller"
	calSvc "hango_backend/internals/features/calendar/service"
)

func CalendarRoutes(staff fiber.Router, admin fiber.Router, db *gorm.DB, v *validator.Validate, cutoff *calSvc.CutoffService) {
	ctl := calCtl.New(db, v, cutoff)

	staff.Get("/closures", ctl.ListClosures)
	staff.Get("/cutoff", ctl.GetCutoff)

	admin.Post("/closures", ctl.CreateClosure)
	admin.Delete("/closures/:id", ctl.DeleteClosure)
	admin.Put("/cutoff", ctl.SetCutoff)
}
