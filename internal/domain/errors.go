// internal/domain/errors.go
package domain

import "errors"

// ErrInvalidMovementType triggered when a movement carries an unknown type.
var ErrInvalidMovementType = errors.New("inventory: invalid movement type")

// ErrNegativeQuantity triggered when a movement quantity is negative.
var ErrNegativeQuantity = errors.New("inventory: movement quantity must not be negative")

// ErrMissingUnitCost triggered when an IN movement has no positive unit cost.
var ErrMissingUnitCost = errors.New("inventory: IN movement requires a positive unit cost")

// ErrZeroPortfolioValue triggered when ABC classification is asked to rank a
// product set whose total annual value is zero.
var ErrZeroPortfolioValue = errors.New("inventory: total portfolio value is zero, classification undefined")

// ErrUnknownProduct triggered when a statistics lookup references a product
// the provider has no history for.
var ErrUnknownProduct = errors.New("inventory: unknown product")
