package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrCustomerNotFound  = errors.New("cliente no encontrado")
	ErrDuplicateCustomer = errors.New("ya existe un cliente con ese documento")
	ErrInsufficientFunds = errors.New("saldo insuficiente")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidAmount     = errors.New("el monto debe ser mayor que cero")
)
