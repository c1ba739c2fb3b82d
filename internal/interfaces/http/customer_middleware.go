package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// HeaderTaxID cabecera con el documento del cliente que opera.
const HeaderTaxID = "X-Tax-ID"

// Locals keys para el cliente resuelto en Fiber.
const (
	LocalTaxID    = "tax_id"
	LocalCustomer = "customer"
)

// customerResolver es el contrato mínimo que necesita el middleware.
// Lo implementa *account.UseCase.
type customerResolver interface {
	Resolve(taxID string) (*entity.Customer, error)
}

// RequireCustomer resuelve el cliente a partir de X-Tax-ID y lo deja en c.Locals.
// Sin cabecera responde 400 MISSING_TAX_ID; cliente desconocido, 404 CUSTOMER_NOT_FOUND.
func RequireCustomer(resolver customerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		taxID := strings.TrimSpace(c.Get(HeaderTaxID))
		if taxID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TAX_ID", Message: "cabecera " + HeaderTaxID + " requerida"})
		}
		customer, err := resolver.Resolve(taxID)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalTaxID, customer.TaxID)
		c.Locals(LocalCustomer, customer)
		return c.Next()
	}
}

// GetTaxID devuelve el documento del cliente resuelto (después de RequireCustomer).
func GetTaxID(c *fiber.Ctx) string {
	v := c.Locals(LocalTaxID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCustomer devuelve la copia del cliente resuelta por RequireCustomer.
func GetCustomer(c *fiber.Ctx) *entity.Customer {
	v, _ := c.Locals(LocalCustomer).(*entity.Customer)
	return v
}
