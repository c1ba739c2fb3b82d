package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.CustomerRegistry = (*CustomerRegistry)(nil)

// CustomerRegistry registro de clientes en memoria.
// Un único RWMutex protege el índice y todos los extractos.
type CustomerRegistry struct {
	mu    sync.RWMutex
	byTax map[string]*entity.Customer
	order []string // tax IDs en orden de alta
	newID func() string
	now   func() time.Time
}

// NewCustomerRegistry construye un registro vacío. newID genera los IDs de cliente
// (nil = uuid v4).
func NewCustomerRegistry(newID func() string) *CustomerRegistry {
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	return &CustomerRegistry{
		byTax: make(map[string]*entity.Customer),
		newID: newID,
		now:   time.Now,
	}
}

// FindByTaxID devuelve una copia del cliente o false si no está registrado.
func (r *CustomerRegistry) FindByTaxID(taxID string) (*entity.Customer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byTax[normalize(taxID)]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Exists indica si hay un cliente con ese documento.
func (r *CustomerRegistry) Exists(taxID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byTax[normalize(taxID)]
	return ok
}

// Create da de alta un cliente con extracto vacío.
func (r *CustomerRegistry) Create(taxID, name string) (*entity.Customer, error) {
	taxID = normalize(taxID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTax[taxID]; ok {
		return nil, domain.ErrDuplicateCustomer
	}
	now := r.now()
	c := &entity.Customer{
		ID:        r.newID(),
		TaxID:     taxID,
		Name:      name,
		Statement: []entity.Operation{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.byTax[taxID] = c
	r.order = append(r.order, taxID)
	return c.Clone(), nil
}

// Rename cambia solo el nombre; el documento nunca se reasigna.
func (r *CustomerRegistry) Rename(taxID, newName string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byTax[normalize(taxID)]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	c.Name = newName
	c.UpdatedAt = r.now()
	return c.Clone(), nil
}

// Remove elimina exactamente el cliente con ese documento y devuelve los restantes.
func (r *CustomerRegistry) Remove(taxID string) ([]*entity.Customer, error) {
	taxID = normalize(taxID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byTax[taxID]; !ok {
		return nil, domain.ErrCustomerNotFound
	}
	delete(r.byTax, taxID)
	for i, t := range r.order {
		if t == taxID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return r.listLocked(), nil
}

// List devuelve copias de todos los clientes en orden de alta.
func (r *CustomerRegistry) List() []*entity.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

// Update ejecuta fn con el lock de escritura tomado.
func (r *CustomerRegistry) Update(taxID string, fn func(c *entity.Customer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byTax[normalize(taxID)]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	return fn(c)
}

func (r *CustomerRegistry) listLocked() []*entity.Customer {
	out := make([]*entity.Customer, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.byTax[t].Clone())
	}
	return out
}

func normalize(taxID string) string {
	return strings.TrimSpace(taxID)
}
