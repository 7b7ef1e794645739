// file: internals/features/classes/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtl "hango_backend/internals/features/classes/controller"
)

func ClassRoutes(staff fiber.Router, admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := classCtl.New(db, v)

	staff.Get("/classes", ctl.List)

	admin.Post("/classes", ctl.Create)
	admin.Patch("/classes/:id", ctl.Patch)
	admin.Post("/classes/:id/members", ctl.AddMembers)
	admin.Delete("/classes/:id/members/:studentId", ctl.RemoveMember)
	admin.Post("/classes/:id/extra-days", ctl.GrantExtraDay)
	admin.Delete("/extra-days/:id", ctl.RevokeExtraDay)
	admin.Post("/classes/:id/spawn-successor", ctl.SpawnSuccessor)
}
