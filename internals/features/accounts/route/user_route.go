// file: internals/features/accounts/route/user_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hango_backend/internals/configs"
	accountsCtl "hango_backend/internals/features/accounts/controller"
	"hango_backend/internals/features/accounts/service"
	"hango_backend/internals/middlewares"
)

// AuthRoutes: login público (rate limitado) + perfil autenticado.
func AuthRoutes(public fiber.Router, private fiber.Router, db *gorm.DB, v *validator.Validate) {
	auth := service.NewAuthService(db, configs.JWTSecret)
	ctl := accountsCtl.NewAuthController(db, v, auth)

	public.Post("/auth/login", middlewares.LoginRateLimiter(), ctl.Login)
	private.Get("/me", ctl.Me)
}

// StaffUserRoutes: bloqueio/desbloqueio, auditoria e sobrescrita de dias.
func StaffUserRoutes(staff fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := accountsCtl.NewUserBlockController(db, v)

	staff.Post("/students/:id/block", ctl.Block)
	staff.Post("/students/:id/unblock", ctl.Unblock)
	staff.Get("/students/:id/block-events", ctl.BlockEvents)
	staff.Patch("/students/:id/lunch-override", ctl.SetLunchOverride)
}
