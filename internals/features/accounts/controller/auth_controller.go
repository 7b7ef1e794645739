// file: internals/features/accounts/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hango_backend/internals/features/accounts/dto"
	"hango_backend/internals/features/accounts/model"
	"hango_backend/internals/features/accounts/service"
	helper "hango_backend/internals/helpers"
	helperAuth "hango_backend/internals/helpers/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Auth     *service.AuthService
}

func NewAuthController(db *gorm.DB, v *validator.Validate, auth *service.AuthService) *AuthController {
	return &AuthController{DB: db, Validate: v, Auth: auth}
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	token, user, err := ctl.Auth.Login(req.CPF, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helper.JsonError(c, http.StatusUnauthorized, err.Error())
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Login efetuado", fiber.Map{
		"access_token": token,
		"user":         dto.FromUserModel(user),
	})
}

// GET /api/u/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "usuário não encontrado")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.FromUserModel(&user))
}
