package entity

import "time"

// Customer representa un titular de cuenta, identificado por su documento (CPF).
// Statement es el extracto: solo se agregan operaciones, nunca se reordenan.
type Customer struct {
	ID        string
	TaxID     string
	Name      string
	Statement []Operation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone devuelve una copia con su propio slice de operaciones.
// Las operaciones son valores inmutables, basta con copiar el slice.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	out := *c
	out.Statement = make([]Operation, len(c.Statement))
	copy(out.Statement, c.Statement)
	return &out
}
