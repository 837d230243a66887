package horizon

import (
	"errors"
	"fmt"
)

// ErrEssentialSetMissing is matched by every error signalling that a
// configuration item required to build a model is absent.
var ErrEssentialSetMissing = errors.New("essential configuration set is missing")

// EssentialSetMissingError reports the missing period.
type EssentialSetMissingError struct {
	Period Period
}

func (e *EssentialSetMissingError) Error() string {
	return fmt.Sprintf("A model cannot be created without a %s.", e.Period)
}

// Is makes errors.Is(err, ErrEssentialSetMissing) succeed.
func (e *EssentialSetMissingError) Is(target error) bool {
	return target == ErrEssentialSetMissing
}
