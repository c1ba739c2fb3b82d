package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/infrastructure/postgres"
)

// fakeTx registra las sentencias en lugar de hablar con PostgreSQL.
// Los métodos de pgx.Tx que no se sobrescriben no se usan.
type fakeTx struct {
	pgx.Tx
	sqls       []string
	args       [][]any
	failOn     string
	err        error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	if f.err != nil && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, f.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func newFakeDB() *fakeDB { return &fakeDB{tx: &fakeTx{}} }

var (
	customer = &entity.Customer{ID: "c-1", TaxID: "111", Name: "Ana"}
	at       = time.Date(2024, time.September, 9, 9, 0, 0, 0, time.UTC)
)

func TestRecord_CreditoConDescripcion(t *testing.T) {
	db := newFakeDB()
	j := postgres.NewOperationJournal(db)
	op := entity.Operation{ID: "o-1", Type: entity.OperationCredit, Amount: decimal.NewFromInt(100), Description: "salary", CreatedAt: at}

	require.NoError(t, j.Record(context.Background(), customer, op))
	require.Len(t, db.tx.sqls, 2)
	assert.Contains(t, db.tx.sqls[0], "INSERT INTO ledger_customers")
	assert.Equal(t, []any{"111", "c-1", "Ana", time.Time{}, at}, db.tx.args[0])
	assert.Contains(t, db.tx.sqls[1], "INSERT INTO ledger_operations")
	assert.True(t, db.tx.committed)

	args := db.tx.args[1]
	require.Len(t, args, 7)
	assert.Equal(t, "o-1", args[0])
	assert.Equal(t, "c-1", args[1])
	assert.Equal(t, "111", args[2])
	assert.Equal(t, "credit", args[3])
	assert.True(t, decimal.NewFromInt(100).Equal(args[4].(decimal.Decimal)))
	require.NotNil(t, args[5])
	assert.Equal(t, "salary", *args[5].(*string))
	assert.Equal(t, at, args[6])
}

func TestRecord_DebitoSinDescripcionVaNull(t *testing.T) {
	db := newFakeDB()
	j := postgres.NewOperationJournal(db)
	op := entity.Operation{ID: "o-2", Type: entity.OperationDebit, Amount: decimal.NewFromInt(5), CreatedAt: at}

	require.NoError(t, j.Record(context.Background(), customer, op))
	assert.Nil(t, db.tx.args[1][5].(*string))
}

func TestRecord_DuplicadoSeIgnora(t *testing.T) {
	db := newFakeDB()
	db.tx.failOn, db.tx.err = "ledger_operations", &pgconn.PgError{Code: "23505"}
	j := postgres.NewOperationJournal(db)

	err := j.Record(context.Background(), customer, entity.Operation{ID: "o-1", Type: entity.OperationCredit, CreatedAt: at})
	assert.NoError(t, err)
	assert.True(t, db.tx.rolledBack)
}

func TestRecord_ErrorSeEnvuelveYHaceRollback(t *testing.T) {
	db := newFakeDB()
	db.tx.failOn, db.tx.err = "ledger_operations", errors.New("conexión rechazada")
	j := postgres.NewOperationJournal(db)

	err := j.Record(context.Background(), customer, entity.Operation{ID: "o-1", Type: entity.OperationCredit, CreatedAt: at})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert ledger operation")
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestRecord_FalloDelTitularNoInsertaOperacion(t *testing.T) {
	db := newFakeDB()
	db.tx.failOn, db.tx.err = "ledger_customers", errors.New("timeout")
	j := postgres.NewOperationJournal(db)

	err := j.Record(context.Background(), customer, entity.Operation{ID: "o-1", Type: entity.OperationCredit, CreatedAt: at})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert ledger customer")
	assert.Len(t, db.tx.sqls, 1)
}

func TestRecord_BeginFalla(t *testing.T) {
	db := &fakeDB{beginErr: errors.New("pool cerrado")}
	err := postgres.NewOperationJournal(db).Record(context.Background(), customer, entity.Operation{ID: "o-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
}

func TestEnsureSchema(t *testing.T) {
	db := newFakeDB()
	require.NoError(t, postgres.NewOperationJournal(db).EnsureSchema(context.Background()))
	require.Len(t, db.tx.sqls, 3)
	assert.Contains(t, db.tx.sqls[0], "CREATE TABLE IF NOT EXISTS ledger_customers")
	assert.Contains(t, db.tx.sqls[1], "CREATE TABLE IF NOT EXISTS ledger_operations")
	assert.Contains(t, db.tx.sqls[2], "CREATE INDEX IF NOT EXISTS")
	assert.True(t, db.tx.committed)
}
