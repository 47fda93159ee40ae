package portfolio

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of all input-rejection errors produced by this
// package. Use errors.Is(err, ErrValidation) to distinguish a bad request
// from an internal failure.
var ErrValidation = errors.New("validation failed")

var (
	ErrUnknownSide          = fmt.Errorf("%w: unknown transaction side", ErrValidation)
	ErrUnknownCondition     = fmt.Errorf("%w: unknown alert condition", ErrValidation)
	ErrInsufficientQuantity = fmt.Errorf("%w: sell exceeds held quantity", ErrValidation)
)
