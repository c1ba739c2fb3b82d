package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
)

const dateLayout = "2006-01-02"

// LedgerHandler maneja depósitos, retiros, saldo y extracto del cliente resuelto.
type LedgerHandler struct {
	uc  *ledger.UseCase
	loc *time.Location
}

// NewLedgerHandler construye el handler. loc es la zona en la que se interpreta ?date=.
func NewLedgerHandler(uc *ledger.UseCase, loc *time.Location) *LedgerHandler {
	if loc == nil {
		loc = time.Local
	}
	return &LedgerHandler{uc: uc, loc: loc}
}

// Deposit godoc
// @Summary      Depositar
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-Tax-ID  header    string              true  "Documento del cliente"
// @Param        body      body      dto.DepositRequest  true  "amount (> 0) y description"
// @Success      201       {object}  dto.OperationResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/deposit [post]
func (h *LedgerHandler) Deposit(c *fiber.Ctx) error {
	var in dto.DepositRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	op, err := h.uc.Deposit(c.UserContext(), GetTaxID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOperationResponse(op))
}

// Withdraw godoc
// @Summary      Retirar
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-Tax-ID  header    string               true  "Documento del cliente"
// @Param        body      body      dto.WithdrawRequest  true  "amount (> 0)"
// @Success      201       {object}  dto.OperationResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      409       {object}  dto.ErrorResponse
// @Router       /api/withdraw [post]
func (h *LedgerHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	op, err := h.uc.Withdraw(c.UserContext(), GetTaxID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOperationResponse(op))
}

// Balance godoc
// @Summary      Saldo actual
// @Tags         ledger
// @Produce      json
// @Param        X-Tax-ID  header    string  true  "Documento del cliente"
// @Success      200       {object}  dto.BalanceResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/balance [get]
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	balance, err := h.uc.Balance(GetTaxID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BalanceResponse{Balance: balance})
}

// Statement godoc
// @Summary      Extracto completo
// @Tags         ledger
// @Produce      json
// @Param        X-Tax-ID  header    string  true  "Documento del cliente"
// @Success      200       {array}   dto.OperationResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/statement [get]
func (h *LedgerHandler) Statement(c *fiber.Ctx) error {
	ops, err := h.uc.Statement(GetTaxID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewStatementResponse(ops))
}

// StatementByDate godoc
// @Summary      Extracto de un día
// @Description  Operaciones creadas en el día calendario indicado (la hora se ignora).
// @Tags         ledger
// @Produce      json
// @Param        X-Tax-ID  header    string  true  "Documento del cliente"
// @Param        date      query     string  true  "Fecha YYYY-MM-DD"
// @Success      200       {array}   dto.OperationResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/statement/date [get]
func (h *LedgerHandler) StatementByDate(c *fiber.Ctx) error {
	date, err := h.parseDate(c.Query("date"))
	if err != nil || date == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "date requerido con formato YYYY-MM-DD"})
	}
	ops, err := h.uc.StatementOn(GetTaxID(c), *date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewStatementResponse(ops))
}

// Export godoc
// @Summary      Exportar extracto
// @Tags         ledger
// @Produce      application/pdf
// @Produce      application/xml
// @Param        X-Tax-ID  header  string  true   "Documento del cliente"
// @Param        format    query   string  false  "pdf (defecto) o xml"
// @Param        date      query   string  false  "Fecha YYYY-MM-DD; vacío = extracto completo"
// @Success      200       {file}  file
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/statement/export [get]
func (h *LedgerHandler) Export(c *fiber.Ctx) error {
	date, err := h.parseDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "date con formato YYYY-MM-DD"})
	}
	out, err := h.uc.Export(c.UserContext(), GetTaxID(c), c.Query("format", ledger.FormatPDF), date)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.FileName))
	return c.Send(out.Body)
}

// parseDate interpreta YYYY-MM-DD en la zona del handler. Vacío devuelve nil sin error.
func (h *LedgerHandler) parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, h.loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
