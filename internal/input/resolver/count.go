package resolver

import "math"

// CountState tracks count prefix accumulation.
type CountState struct {
	// Value is the accumulated count value.
	Value int

	// Active indicates if a count is being accumulated.
	Active bool
}

// Reset clears the count state.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds a digit to the count.
// Returns true if the digit was accepted.
func (c *CountState) AccumulateDigit(digit int) bool {
	if digit < 0 || digit > 9 {
		return false
	}

	// '0' at the start is not a count
	if !c.Active && digit == 0 {
		return false
	}

	c.Active = true

	// Guard against integer overflow
	if c.Value > (math.MaxInt-digit)/10 {
		c.Value = math.MaxInt / 10
		return true
	}

	c.Value = c.Value*10 + digit
	return true
}

// Get returns the effective count (1 if no count was specified).
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}
