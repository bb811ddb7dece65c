package request

// AdjustBalanceRequest accepts either a signed delta or an absolute
// target balance. Exactly one of the two must be present.
type AdjustBalanceRequest struct {
	Delta       *int64 `json:"delta,omitempty"`
	Absolute    *int64 `json:"absolute,omitempty"`
	Description string `json:"description" binding:"required"`
}

func (r AdjustBalanceRequest) Valid() bool {
	return (r.Delta != nil) != (r.Absolute != nil)
}
