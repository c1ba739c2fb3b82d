package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

const customerMirrorSchema = `
CREATE TABLE IF NOT EXISTS ledger_customers (
	tax_id       TEXT PRIMARY KEY,
	customer_id  TEXT NOT NULL,
	name         TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	seen_at      TIMESTAMPTZ NOT NULL
)`

// upsertCustomer deja en ledger_customers la última versión conocida del titular.
// Se llama dentro de la misma tx que inserta la operación.
func upsertCustomer(ctx context.Context, q Querier, c *entity.Customer, seenAt time.Time) error {
	query := `
		INSERT INTO ledger_customers (tax_id, customer_id, name, created_at, seen_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tax_id) DO UPDATE
		SET customer_id = EXCLUDED.customer_id, name = EXCLUDED.name, seen_at = EXCLUDED.seen_at`
	_, err := q.Exec(ctx, query, c.TaxID, c.ID, c.Name, c.CreatedAt, seenAt)
	if err != nil {
		return fmt.Errorf("upsert ledger customer: %w", err)
	}
	return nil
}
