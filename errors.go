package tilego

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tilego/model"
)

var (
	// ErrNotUpdateable is returned when a diff is applied to source data
	// whose features do not all carry distinct, valid identifiers.
	ErrNotUpdateable = errors.New("source data is not updateable")

	// ErrNoPendingDiff is returned when Commit is called with nothing to
	// apply.
	ErrNoPendingDiff = errors.New("no pending diff")
)

// ErrMissingFeatureID indicates a feature that does not resolve to a valid
// identifier under the configured promote-id.
type ErrMissingFeatureID struct {
	PromoteID string
}

func (e *ErrMissingFeatureID) Error() string {
	if e.PromoteID != "" {
		return fmt.Sprintf("feature does not resolve to an id via property %q", e.PromoteID)
	}
	return "feature has no id"
}

// ErrDuplicateFeatureID indicates two features resolving to the same
// identifier.
type ErrDuplicateFeatureID struct {
	ID model.FeatureID
}

func (e *ErrDuplicateFeatureID) Error() string {
	return fmt.Sprintf("duplicate feature id: %s", e.ID)
}
