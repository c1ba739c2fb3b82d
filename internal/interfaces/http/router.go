package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/account"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AccountUC *account.UseCase
	LedgerUC  *ledger.UseCase
	Location  *time.Location // zona de ?date=
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	withCustomer := RequireCustomer(deps.AccountUC)

	// Cuentas: el alta es pública, el resto exige X-Tax-ID
	accountHandler := NewAccountHandler(deps.AccountUC)
	api.Post("/account", accountHandler.Create)
	api.Get("/account", withCustomer, accountHandler.Get)
	api.Put("/account", withCustomer, accountHandler.Update)
	api.Delete("/account", withCustomer, accountHandler.Delete)

	// Extracto y movimientos
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.Location)
	api.Get("/statement", withCustomer, ledgerHandler.Statement)
	api.Get("/statement/date", withCustomer, ledgerHandler.StatementByDate)
	api.Get("/statement/export", withCustomer, ledgerHandler.Export)
	api.Post("/deposit", withCustomer, ledgerHandler.Deposit)
	api.Post("/withdraw", withCustomer, ledgerHandler.Withdraw)
	api.Get("/balance", withCustomer, ledgerHandler.Balance)
}
