// internal/domain/status.go
package domain

// MovementType enumerates supported stock movement directions.
type MovementType string

const (
	// MovementIn represents a receipt into stock.
	MovementIn MovementType = "IN"
	// MovementOut represents an issue out of stock.
	MovementOut MovementType = "OUT"
)

// IsValid reports whether the movement type is one of the supported values.
func (t MovementType) IsValid() bool {
	return t == MovementIn || t == MovementOut
}

// String returns the string representation of the movement type.
func (t MovementType) String() string {
	return string(t)
}

// ABCClass is a value-contribution tier assigned by the classification engine.
type ABCClass string

const (
	ClassA ABCClass = "A"
	ClassB ABCClass = "B"
	ClassC ABCClass = "C"
)

// ExpiryStatus describes where a lot stands relative to its expiry date.
type ExpiryStatus string

const (
	// ExpiryStatusExpired means the expiry date has passed (or is today).
	ExpiryStatusExpired ExpiryStatus = "EXPIRED"
	// ExpiryStatusNearExpiry means the lot expires within the alert horizon.
	ExpiryStatusNearExpiry ExpiryStatus = "NEAR_EXPIRY"
	// ExpiryStatusOK means the lot is outside the alert horizon.
	ExpiryStatusOK ExpiryStatus = "OK"
)
