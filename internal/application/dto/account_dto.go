package dto

import (
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// CreateAccountRequest body para POST /api/account.
type CreateAccountRequest struct {
	TaxID string `json:"tax_id"`
	Name  string `json:"name"`
}

// UpdateAccountRequest body para PUT /api/account (solo el nombre es mutable).
type UpdateAccountRequest struct {
	Name string `json:"name"`
}

// AccountResponse cliente en respuestas.
type AccountResponse struct {
	ID        string    `json:"id"`
	TaxID     string    `json:"tax_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccountResponse mapea la entidad a la respuesta.
func NewAccountResponse(c *entity.Customer) *AccountResponse {
	return &AccountResponse{
		ID:        c.ID,
		TaxID:     c.TaxID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewAccountListResponse mapea una lista de clientes.
func NewAccountListResponse(list []*entity.Customer) []*AccountResponse {
	out := make([]*AccountResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewAccountResponse(c))
	}
	return out
}
