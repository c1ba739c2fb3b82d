package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// OperationJournal recibe una copia de cada operación aceptada (auditoría externa).
// Solo escritura: el registro en memoria sigue siendo la fuente de verdad.
type OperationJournal interface {
	Record(ctx context.Context, customer *entity.Customer, op entity.Operation) error
}
