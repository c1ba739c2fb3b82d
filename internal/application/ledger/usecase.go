package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	"github.com/jhoicas/ledger-api/internal/domain/statement"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

// Deps dependencias del caso de uso. Solo Registry es obligatorio.
type Deps struct {
	Registry repository.CustomerRegistry
	Journal  repository.OperationJournal
	Metrics  Metrics
	PDF      StatementPDFGenerator
	XML      StatementXMLBuilder
	Log      *logger.Logger
	Clock    func() time.Time
	NewID    func() string // IDs de operación; nil = uuid v4
}

// UseCase operaciones sobre el extracto: depósitos, retiros, saldo, consultas y exportación.
type UseCase struct {
	registry repository.CustomerRegistry
	journal  repository.OperationJournal
	metrics  Metrics
	pdf      StatementPDFGenerator
	xml      StatementXMLBuilder
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		registry: d.Registry,
		journal:  d.Journal,
		metrics:  d.Metrics,
		pdf:      d.PDF,
		xml:      d.XML,
		log:      d.Log,
		now:      d.Clock,
		newID:    d.NewID,
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	return uc
}

// Deposit registra un crédito en el extracto del cliente.
func (uc *UseCase) Deposit(ctx context.Context, taxID string, in dto.DepositRequest) (entity.Operation, error) {
	if !in.Amount.IsPositive() {
		return entity.Operation{}, domain.ErrInvalidAmount
	}
	var op entity.Operation
	var owner *entity.Customer
	err := uc.registry.Update(taxID, func(c *entity.Customer) error {
		op = statement.Deposit(c, uc.newID(), in.Amount, strings.TrimSpace(in.Description), uc.now())
		owner = header(c)
		return nil
	})
	if err != nil {
		return entity.Operation{}, err
	}
	uc.accepted(ctx, owner, op)
	return op, nil
}

// Withdraw registra un débito si el saldo alcanza; si no, domain.ErrInsufficientFunds
// y el extracto queda intacto.
func (uc *UseCase) Withdraw(ctx context.Context, taxID string, in dto.WithdrawRequest) (entity.Operation, error) {
	if !in.Amount.IsPositive() {
		return entity.Operation{}, domain.ErrInvalidAmount
	}
	var op entity.Operation
	var owner *entity.Customer
	err := uc.registry.Update(taxID, func(c *entity.Customer) error {
		var err error
		op, err = statement.Withdraw(c, uc.newID(), in.Amount, uc.now())
		if err != nil {
			return err
		}
		owner = header(c)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) && uc.metrics != nil {
			uc.metrics.IncRejectedWithdrawal()
		}
		return entity.Operation{}, err
	}
	uc.accepted(ctx, owner, op)
	return op, nil
}

// Balance calcula el saldo actual.
func (uc *UseCase) Balance(taxID string) (decimal.Decimal, error) {
	c, ok := uc.registry.FindByTaxID(taxID)
	if !ok {
		return decimal.Zero, domain.ErrCustomerNotFound
	}
	return statement.Balance(c.Statement), nil
}

// Statement devuelve el extracto completo en orden cronológico.
func (uc *UseCase) Statement(taxID string) ([]entity.Operation, error) {
	c, ok := uc.registry.FindByTaxID(taxID)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c.Statement, nil
}

// StatementOn devuelve las operaciones del día calendario de date.
func (uc *UseCase) StatementOn(taxID string, date time.Time) ([]entity.Operation, error) {
	c, ok := uc.registry.FindByTaxID(taxID)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return statement.On(c.Statement, date), nil
}

// accepted notifica métricas y diario después de soltar el lock del registro.
// Un fallo del diario no deshace la operación: se registra en el log.
func (uc *UseCase) accepted(ctx context.Context, owner *entity.Customer, op entity.Operation) {
	if uc.metrics != nil {
		uc.metrics.ObserveOperation(op.Type, op.Amount)
	}
	if uc.journal == nil {
		return
	}
	if err := uc.journal.Record(ctx, owner, op); err != nil {
		uc.log.Warn().Err(err).
			Str("tax_id", owner.TaxID).
			Str("operation_id", op.ID).
			Msg("no se pudo replicar la operación en el diario")
	}
}

// header copia los datos de identificación del cliente, sin el extracto.
func header(c *entity.Customer) *entity.Customer {
	return &entity.Customer{
		ID:        c.ID,
		TaxID:     c.TaxID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
