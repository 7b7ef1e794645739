// file: internals/features/accounts/service/auth_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hango_backend/internals/features/accounts/model"
)

var ErrInvalidCredentials = errors.New("CPF ou senha inválidos")

type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{DB: db, JWTSecret: secret, TokenTTL: 12 * time.Hour}
}

// Login autentica por CPF + senha e emite o token HMAC com o papel embutido.
func (s *AuthService) Login(cpf, password string) (string, *model.UserModel, error) {
	cpf = NormalizeCPF(cpf)
	if cpf == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	var user model.UserModel
	if err := s.DB.Where("user_cpf = ? AND user_is_active = TRUE", cpf).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.UserID.String(),
		"role": user.UserRole,
		"cpf":  user.UserCPF,
		"iat":  now.Unix(),
		"exp":  now.Add(s.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.JWTSecret))
	if err != nil {
		return "", nil, err
	}
	return signed, &user, nil
}

// HashPassword é usado pelo seeder e pela criação de usuários.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
