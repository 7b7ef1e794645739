package service

import (
	"errors"
	"fmt"
	"testing"
)

// stub no formato do driver: SQLState + mensagem com o nome da constraint
type fakePGError struct {
	state   string
	message string
}

func (e *fakePGError) SQLState() string { return e.state }
func (e *fakePGError) Error() string    { return e.message }

func duplicateKeyOn(constraint string) error {
	return &fakePGError{
		state:   "23505",
		message: fmt.Sprintf(`ERROR: duplicate key value violates unique constraint %q (SQLSTATE 23505)`, constraint),
	}
}

func TestUniqueViolationOn(t *testing.T) {
	tokenErr := duplicateKeyOn(pickupTokenConstraint)
	dayErr := duplicateKeyOn("one_order_per_student_per_service_day")

	if !uniqueViolationOn(tokenErr, pickupTokenConstraint) {
		t.Fatal("colisão de token deveria ser reconhecida pela constraint")
	}
	// colisão de token não pode virar "pedido duplicado" para o aluno
	if uniqueViolationOn(dayErr, pickupTokenConstraint) {
		t.Fatal("violação de unicidade por dia não é colisão de token")
	}
	if !isUniqueViolation(dayErr) {
		t.Fatal("23505 por dia deveria ser violação de unicidade")
	}

	fk := &fakePGError{state: "23503", message: "violates foreign key constraint"}
	if isUniqueViolation(fk) || uniqueViolationOn(fk, pickupTokenConstraint) {
		t.Fatal("23503 não é violação de unicidade")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Fatal("erro comum não deveria casar com o contrato do driver")
	}
}

func TestUniqueViolationOnWrapped(t *testing.T) {
	wrapped := fmt.Errorf("criando pedido: %w", duplicateKeyOn(pickupTokenConstraint))
	if !uniqueViolationOn(wrapped, pickupTokenConstraint) {
		t.Fatal("erro embrulhado deveria ser desenrolado por errors.As")
	}
}
