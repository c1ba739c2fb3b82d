package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType tipo de movimiento del extracto.
type OperationType string

// Tipos de operación.
const (
	OperationCredit OperationType = "credit" // depósito
	OperationDebit  OperationType = "debit"  // retiro
)

// Operation es una entrada del extracto. Description solo se informa en créditos.
type Operation struct {
	ID          string
	Type        OperationType
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}
