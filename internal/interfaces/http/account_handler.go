package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/account"
	"github.com/jhoicas/ledger-api/internal/application/dto"
)

// AccountHandler maneja las peticiones HTTP de cuentas (alta, consulta, cambio de nombre y baja).
type AccountHandler struct {
	uc *account.UseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *account.UseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cliente
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateAccountRequest  true  "tax_id y name"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/account [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Register(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAccountResponse(customer))
}

// Get godoc
// @Summary      Consultar cliente
// @Tags         account
// @Produce      json
// @Param        X-Tax-ID  header    string  true  "Documento del cliente"
// @Success      200       {object}  dto.AccountResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/account [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.NewAccountResponse(GetCustomer(c)))
}

// Update godoc
// @Summary      Cambiar el nombre del cliente
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        X-Tax-ID  header    string                    true  "Documento del cliente"
// @Param        body      body      dto.UpdateAccountRequest  true  "name"
// @Success      200       {object}  dto.AccountResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/account [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Rename(GetTaxID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewAccountResponse(customer))
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Elimina el cliente de la cabecera y devuelve los clientes restantes.
// @Tags         account
// @Produce      json
// @Param        X-Tax-ID  header    string  true  "Documento del cliente"
// @Success      200       {array}   dto.AccountResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/account [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	remaining, err := h.uc.Delete(GetTaxID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewAccountListResponse(remaining))
}
