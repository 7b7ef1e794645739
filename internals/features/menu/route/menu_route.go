// file: internals/features/menu/route/menu_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	menuCtl "hango_backend/internals/features/menu/controller"
)

func MenuRoutes(private fiber.Router, admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := menuCtl.New(db, v)

	private.Get("/menu/categories", ctl.ListCategories)
	private.Get("/menu/items", ctl.ListItems)

	admin.Post("/menu/categories", ctl.CreateCategory)
	admin.Post("/menu/items", ctl.CreateItem)
	admin.Patch("/menu/items/:id", ctl.PatchItem)
	admin.Delete("/menu/items/:id", ctl.DeleteItem)
}
