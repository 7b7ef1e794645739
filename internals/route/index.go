// file: internals/route/index.go
package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hango_backend/internals/configs"
	accountsRoute "hango_backend/internals/features/accounts/route"
	calendarRoute "hango_backend/internals/features/calendar/route"
	calSvc "hango_backend/internals/features/calendar/service"
	classesRoute "hango_backend/internals/features/classes/route"
	menuRoute "hango_backend/internals/features/menu/route"
	orderCtl "hango_backend/internals/features/orders/controller"
	orderRoute "hango_backend/internals/features/orders/route"
	orderScheduler "hango_backend/internals/features/orders/scheduler"
	orderSvc "hango_backend/internals/features/orders/service"
	helper "hango_backend/internals/helpers"
	helperAuth "hango_backend/internals/helpers/auth"
	middleware "hango_backend/internals/middlewares/auth"
)

var startTime time.Time

func requireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helperAuth.IsStaff(c) {
			return helper.JsonError(c, http.StatusForbidden, "Acesso restrito à equipe.")
		}
		return c.Next()
	}
}

func requireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helperAuth.IsAdmin(c) {
			return helper.JsonError(c, http.StatusForbidden, "Acesso restrito a administradores.")
		}
		return c.Next()
	}
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	v := validator.New()

	// serviços compartilhados entre grupos
	loc := configs.Location()
	cutoff := calSvc.NewCutoffService(db)
	eligibility := orderSvc.NewEligibilityService(db, cutoff, loc)
	checkout := orderSvc.NewCheckoutService(db, eligibility)
	noShow := orderSvc.NewNoShowService(db, cutoff, loc, configs.AutoBlockThreshold)
	orders := orderCtl.New(db, v, checkout, noShow, eligibility)

	// ===================== GROUPS =====================

	authOpts := middleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}

	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")

	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", middleware.AuthJWT(authOpts))

	log.Println("[INFO] Setting up STAFF group...")
	staff := app.Group("/api/s", middleware.AuthJWT(authOpts), requireStaff())

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", middleware.AuthJWT(authOpts), requireAdmin())

	// ===================== FEATURES =====================

	accountsRoute.AuthRoutes(public, private, db, v)
	accountsRoute.StaffUserRoutes(staff, db, v)

	classesRoute.ClassRoutes(staff, admin, db, v)
	calendarRoute.CalendarRoutes(staff, admin, db, v, cutoff)
	menuRoute.MenuRoutes(private, admin, db, v)

	orderRoute.OrderUserRoutes(private, orders)
	orderRoute.OrderStaffRoutes(staff, orders)

	// ===================== SCHEDULER =====================

	orderScheduler.StartNoShowSweepScheduler(noShow)
}
