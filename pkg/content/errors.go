package content

import (
	"errors"

	"gorm.io/gorm"
)

// Error taxonomy shared by every collection operation. The HTTP layer maps
// these to status codes; anything that does not match is an infrastructure
// failure and surfaces as a 500.
var (
	// ErrNotFound: the id, slug or natural key does not exist for this
	// resource type.
	ErrNotFound = errors.New("record not found")
	// ErrConflict: a uniqueness constraint (slug, natural key) was violated.
	ErrConflict = errors.New("unique constraint violated")
	// ErrInvalid: malformed input, rejected before any persistence call.
	ErrInvalid = errors.New("invalid input")
)

// Translate maps storage-layer errors onto the taxonomy. Errors already in
// the taxonomy pass through unchanged so wrapped context is preserved.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict), errors.Is(err, ErrInvalid):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
