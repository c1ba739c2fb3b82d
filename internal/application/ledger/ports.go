package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// Metrics puerto de métricas del extracto.
type Metrics interface {
	ObserveOperation(opType entity.OperationType, amount decimal.Decimal)
	IncRejectedWithdrawal()
}

// StatementDocument datos que necesitan los generadores de documentos.
// Date es nil cuando se exporta el extracto completo.
type StatementDocument struct {
	Customer    *entity.Customer
	Operations  []entity.Operation
	Balance     decimal.Decimal
	Date        *time.Time
	GeneratedAt time.Time
}

// StatementPDFGenerator genera el extracto en PDF.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, doc StatementDocument) ([]byte, error)
}

// StatementXMLBuilder genera el extracto en XML.
type StatementXMLBuilder interface {
	BuildStatementXML(doc StatementDocument) ([]byte, error)
}
