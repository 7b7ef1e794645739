// file: internals/features/orders/service/token_service.go
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"gorm.io/gorm"

	"hango_backend/internals/features/orders/model"
)

const (
	tokenLength = 13

	// 10^12 códigos possíveis; 8 tentativas só esgotam com keyspace
	// praticamente cheio ou dado corrompido.
	tokenMaxAttempts = 8
)

// ErrTokenExhausted: falha de sistema, nunca mensagem de usuário.
var ErrTokenExhausted = errors.New("esgotadas as tentativas de gerar token de retirada")

// ean13CheckDigit calcula o dígito verificador dos 12 primeiros dígitos.
// Pesos alternados 1/3 (posição ímpar da esquerda = 1, par = 3).
func ean13CheckDigit(digits string) int {
	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10
}

// ValidateToken: exatamente 13 dígitos, último igual ao verificador.
func ValidateToken(code string) bool {
	if len(code) != tokenLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return int(code[12]-'0') == ean13CheckDigit(code[:12])
}

// NormalizeScan remove tudo que não for dígito da leitura crua do scanner.
func NormalizeScan(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			out = append(out, raw[i])
		}
	}
	return string(out)
}

// randomToken sorteia 12 dígitos criptográficos e anexa o verificador.
func randomToken() (string, error) {
	buf := make([]byte, 0, tokenLength)
	for i := 0; i < tokenLength-1; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf = append(buf, byte('0'+n.Int64()))
	}
	body := string(buf)
	return body + string(byte('0'+ean13CheckDigit(body))), nil
}

// TokenAllocator gera tokens únicos contra a tabela de pedidos.
type TokenAllocator struct {
	DB *gorm.DB
}

// Allocate devolve um token inédito. A checagem de existência é só
// otimização; o índice único uq_orders_pickup_token é a rede de segurança
// real contra corrida alocação-vs-alocação.
func (a *TokenAllocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < tokenMaxAttempts; attempt++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		var count int64
		if err := a.DB.WithContext(ctx).Model(&model.OrderModel{}).
			Where("order_pickup_token = ?", token).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return token, nil
		}
	}
	return "", ErrTokenExhausted
}
