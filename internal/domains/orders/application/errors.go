package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the request violated an order or return invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, validation.ErrInvalid) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
