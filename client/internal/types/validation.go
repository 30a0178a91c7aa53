package types

import (
	"fmt"

	clienterrors "github.com/carrental/carrental/client/internal/errors"
)

// Payload validation is left to the service. The one local check guards
// path identifiers: an empty id would turn /cars/{id} into /cars/.

// ValidateIDPresent ensures that a non-empty id is supplied.
func ValidateIDPresent(id, field string) error {
	if id == "" {
		return fmt.Errorf("%s: %w", field, clienterrors.ErrMissingID)
	}
	return nil
}
