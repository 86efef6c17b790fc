package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the request violated a discount invariant.
	ErrInvalidInput = errors.New("invalid discount input")
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
