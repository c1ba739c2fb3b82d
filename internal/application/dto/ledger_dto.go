package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// DepositRequest body para POST /api/deposit.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// WithdrawRequest body para POST /api/withdraw. Los retiros no llevan descripción.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// OperationResponse operación del extracto.
type OperationResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BalanceResponse saldo calculado.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// NewOperationResponse mapea la entidad a la respuesta.
func NewOperationResponse(op entity.Operation) *OperationResponse {
	return &OperationResponse{
		ID:          op.ID,
		Type:        string(op.Type),
		Amount:      op.Amount,
		Description: op.Description,
		CreatedAt:   op.CreatedAt,
	}
}

// NewStatementResponse mapea el extracto completo; nunca devuelve nil.
func NewStatementResponse(ops []entity.Operation) []*OperationResponse {
	out := make([]*OperationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, NewOperationResponse(op))
	}
	return out
}
