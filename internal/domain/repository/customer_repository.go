package repository

import "github.com/jhoicas/ledger-api/internal/domain/entity"

// CustomerRegistry define el puerto del registro de clientes, indexado por documento (tax ID).
// Las lecturas devuelven copias; las mutaciones del extracto pasan por Update.
type CustomerRegistry interface {
	FindByTaxID(taxID string) (*entity.Customer, bool)
	Exists(taxID string) bool
	Create(taxID, name string) (*entity.Customer, error)
	Rename(taxID, newName string) (*entity.Customer, error)
	Remove(taxID string) ([]*entity.Customer, error)
	List() []*entity.Customer
	// Update ejecuta fn sobre el cliente vivo con acceso exclusivo.
	// Si no existe devuelve domain.ErrCustomerNotFound; los errores de fn se propagan tal cual.
	Update(taxID string, fn func(c *entity.Customer) error) error
}
