package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.OperationJournal = (*OperationJournal)(nil)

var journalSchema = []string{customerMirrorSchema, `
CREATE TABLE IF NOT EXISTS ledger_operations (
	id           TEXT PRIMARY KEY,
	customer_id  TEXT NOT NULL,
	tax_id       TEXT NOT NULL,
	type         TEXT NOT NULL CHECK (type IN ('credit', 'debit')),
	amount       NUMERIC(20, 4) NOT NULL,
	description  TEXT,
	created_at   TIMESTAMPTZ NOT NULL,
	recorded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_operations_tax_id ON ledger_operations (tax_id, created_at)`,
}

// OperationJournal réplica de solo escritura de las operaciones aceptadas.
// No se relee al arrancar: el extracto vive en memoria.
type OperationJournal struct {
	tx      *TxRunner
	timeout time.Duration
}

// NewOperationJournal construye el adaptador sobre el pool.
func NewOperationJournal(db TxBeginner) *OperationJournal {
	return &OperationJournal{tx: NewTxRunner(db), timeout: 3 * time.Second}
}

// EnsureSchema crea las tablas si no existen.
func (j *OperationJournal) EnsureSchema(ctx context.Context) error {
	return j.tx.Run(ctx, func(q Querier) error {
		for _, stmt := range journalSchema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("crear esquema del diario: %w", err)
			}
		}
		return nil
	})
}

// Record actualiza el titular e inserta la operación en una sola tx.
// Reintentos del mismo ID se ignoran.
func (j *OperationJournal) Record(ctx context.Context, customer *entity.Customer, op entity.Operation) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	var description *string
	if op.Description != "" {
		description = &op.Description
	}
	err := j.tx.Run(ctx, func(q Querier) error {
		if err := upsertCustomer(ctx, q, customer, op.CreatedAt); err != nil {
			return err
		}
		query := `
			INSERT INTO ledger_operations (id, customer_id, tax_id, type, amount, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := q.Exec(ctx, query,
			op.ID, customer.ID, customer.TaxID, string(op.Type), op.Amount, description, op.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert ledger operation: %w", err)
		}
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}
