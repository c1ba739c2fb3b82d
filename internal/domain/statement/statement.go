// Package statement implementa las reglas del extracto (servicio de dominio):
// cálculo del saldo, depósitos, retiros con control de fondos y filtro por día.
//
// Las funciones no sincronizan; quien las invoque debe serializar el acceso
// al cliente (ver repository.CustomerRegistry.Update).
package statement

import (
	"time"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Balance recorre el extracto en orden de inserción partiendo de cero:
// los créditos suman y los débitos restan.
func Balance(ops []entity.Operation) decimal.Decimal {
	total := decimal.Zero
	for _, op := range ops {
		switch op.Type {
		case entity.OperationCredit:
			total = total.Add(op.Amount)
		case entity.OperationDebit:
			total = total.Sub(op.Amount)
		}
	}
	return total
}

// Deposit agrega un crédito con el id dado al extracto del cliente y lo devuelve.
func Deposit(c *entity.Customer, id string, amount decimal.Decimal, description string, at time.Time) entity.Operation {
	op := entity.Operation{
		ID:          id,
		Type:        entity.OperationCredit,
		Amount:      amount,
		Description: description,
		CreatedAt:   at,
	}
	c.Statement = append(c.Statement, op)
	return op
}

// Withdraw agrega un débito si el saldo alcanza. Con saldo menor al monto
// devuelve domain.ErrInsufficientFunds y no toca el extracto.
// Retirar exactamente el saldo está permitido.
func Withdraw(c *entity.Customer, id string, amount decimal.Decimal, at time.Time) (entity.Operation, error) {
	if Balance(c.Statement).LessThan(amount) {
		return entity.Operation{}, domain.ErrInsufficientFunds
	}
	op := entity.Operation{
		ID:        id,
		Type:      entity.OperationDebit,
		Amount:    amount,
		CreatedAt: at,
	}
	c.Statement = append(c.Statement, op)
	return op, nil
}

// On devuelve las operaciones creadas el mismo día calendario que date.
// La hora se ignora; CreatedAt se lleva a la zona horaria de date antes de comparar.
// Nunca devuelve nil.
func On(ops []entity.Operation, date time.Time) []entity.Operation {
	out := make([]entity.Operation, 0)
	for _, op := range ops {
		if SameDay(op.CreatedAt.In(date.Location()), date) {
			out = append(out, op)
		}
	}
	return out
}

// SameDay indica si a y b caen en el mismo año, mes y día (cada uno en su zona).
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
