package model

import (
	"encoding/json"
	"fmt"
)

// Allocation describes how much capital a copy action commits. Exactly one
// variant is present; the wire format's allocationType/amount/percentage
// triplet is converted to a variant on decode so the "exactly one is defined"
// invariant is structurally enforced.
type Allocation interface {
	isAllocation()
}

// FixedAllocation commits a fixed currency amount.
type FixedAllocation struct {
	Amount float64
}

func (FixedAllocation) isAllocation() {}

// PercentAllocation commits a percentage (0-100) of the current portfolio value.
type PercentAllocation struct {
	Percent float64
}

func (PercentAllocation) isAllocation() {}

// CopyConfig is the command object describing a new copy action. It is
// consumed once to construct a CopiedTrader and then discarded.
type CopyConfig struct {
	TraderID    string
	Allocation  Allocation
	MaxDrawdown float64 // 0-100; 0 disables the stop-copy rule
	StopCopying bool
}

// copyConfigWire is the JSON shape accepted from clients.
type copyConfigWire struct {
	TraderID       string   `json:"traderId"`
	AllocationType string   `json:"allocationType"`
	Amount         *float64 `json:"amount,omitempty"`
	Percentage     *float64 `json:"percentage,omitempty"`
	MaxDrawdown    float64  `json:"maxDrawdown,omitempty"`
	StopCopying    bool     `json:"stopCopying"`
}

// UnmarshalJSON decodes the wire triplet into a tagged Allocation variant.
// The field matching the declared allocationType must be present.
func (c *CopyConfig) UnmarshalJSON(data []byte) error {
	var wire copyConfigWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var alloc Allocation
	switch wire.AllocationType {
	case "fixed":
		if wire.Amount == nil {
			return fmt.Errorf("allocationType %q requires amount", wire.AllocationType)
		}
		alloc = FixedAllocation{Amount: *wire.Amount}
	case "percentage":
		if wire.Percentage == nil {
			return fmt.Errorf("allocationType %q requires percentage", wire.AllocationType)
		}
		alloc = PercentAllocation{Percent: *wire.Percentage}
	default:
		return fmt.Errorf("unknown allocationType %q", wire.AllocationType)
	}

	c.TraderID = wire.TraderID
	c.Allocation = alloc
	c.MaxDrawdown = wire.MaxDrawdown
	c.StopCopying = wire.StopCopying
	return nil
}

// MarshalJSON emits the wire triplet for the active variant.
func (c CopyConfig) MarshalJSON() ([]byte, error) {
	wire := copyConfigWire{
		TraderID:    c.TraderID,
		MaxDrawdown: c.MaxDrawdown,
		StopCopying: c.StopCopying,
	}
	switch a := c.Allocation.(type) {
	case FixedAllocation:
		wire.AllocationType = "fixed"
		wire.Amount = &a.Amount
	case PercentAllocation:
		wire.AllocationType = "percentage"
		wire.Percentage = &a.Percent
	default:
		return nil, fmt.Errorf("copy config has no allocation")
	}
	return json.Marshal(wire)
}
