package account

import (
	"strings"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// CustomerGauge recibe el total de clientes tras cada alta o baja.
type CustomerGauge interface {
	SetCustomers(n int)
}

// UseCase casos de uso de cuentas: resolver, registrar, renombrar y eliminar clientes.
type UseCase struct {
	registry repository.CustomerRegistry
	gauge    CustomerGauge
}

// NewUseCase construye el caso de uso. gauge puede ser nil.
func NewUseCase(registry repository.CustomerRegistry, gauge CustomerGauge) *UseCase {
	return &UseCase{registry: registry, gauge: gauge}
}

// Resolve busca el cliente por documento.
func (uc *UseCase) Resolve(taxID string) (*entity.Customer, error) {
	c, ok := uc.registry.FindByTaxID(taxID)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

// Register da de alta un cliente nuevo. Documento y nombre son obligatorios.
func (uc *UseCase) Register(in dto.CreateAccountRequest) (*entity.Customer, error) {
	taxID := strings.TrimSpace(in.TaxID)
	name := strings.TrimSpace(in.Name)
	if taxID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.registry.Create(taxID, name)
	if err != nil {
		return nil, err
	}
	uc.observeSize()
	return c, nil
}

// Rename cambia el nombre del cliente.
func (uc *UseCase) Rename(taxID string, in dto.UpdateAccountRequest) (*entity.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.registry.Rename(taxID, name)
}

// Delete elimina el cliente y devuelve los restantes.
func (uc *UseCase) Delete(taxID string) ([]*entity.Customer, error) {
	remaining, err := uc.registry.Remove(taxID)
	if err != nil {
		return nil, err
	}
	uc.observeSize()
	return remaining, nil
}

// List devuelve todos los clientes en orden de alta.
func (uc *UseCase) List() []*entity.Customer {
	return uc.registry.List()
}

func (uc *UseCase) observeSize() {
	if uc.gauge != nil {
		uc.gauge.SetCustomers(len(uc.registry.List()))
	}
}
