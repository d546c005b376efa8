package validation

import (
	"fmt"
	"strings"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// ValidateCopyConfig validates a copy-trading configuration before it
// reaches the store.
//
// Required fields:
//   - traderId: Must be present
//   - allocation: Must be present; fixed amounts must be positive,
//     percentages must be in (0, 100]
//
// Optional fields (validated if provided):
//   - maxDrawdown: Must be between 0 and 100
//
// Returns a validation Error with field-specific error messages if
// validation fails.
func ValidateCopyConfig(cfg model.CopyConfig) error {
	errors := make(map[string]string)

	if strings.TrimSpace(cfg.TraderID) == "" {
		errors["traderId"] = "trader ID is required"
	}

	switch alloc := cfg.Allocation.(type) {
	case nil:
		errors["allocation"] = "allocation is required"
	case model.FixedAllocation:
		if alloc.Amount <= 0 {
			errors["amount"] = "fixed allocation amount must be positive"
		}
	case model.PercentAllocation:
		if alloc.Percent <= 0 || alloc.Percent > 100 {
			errors["percentage"] = "allocation percentage must be between 0 and 100"
		}
	default:
		errors["allocation"] = fmt.Sprintf("unsupported allocation type %T", alloc)
	}

	if cfg.MaxDrawdown < 0 || cfg.MaxDrawdown > 100 {
		errors["maxDrawdown"] = "max drawdown must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
