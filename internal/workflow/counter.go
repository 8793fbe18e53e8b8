package workflow

// ReturnCounter is the number of containers collected back, kept within [0, Max].
type ReturnCounter struct {
	Quantity int
	Max      int
}

// Increment is a no-op at Max.
func (c *ReturnCounter) Increment() {
	if c.Quantity < c.Max {
		c.Quantity++
	}
}

// Decrement is a no-op at zero.
func (c *ReturnCounter) Decrement() {
	if c.Quantity > 0 {
		c.Quantity--
	}
}

// Set clamps n into range.
func (c *ReturnCounter) Set(n int) {
	switch {
	case n < 0:
		c.Quantity = 0
	case n > c.Max:
		c.Quantity = c.Max
	default:
		c.Quantity = n
	}
}
