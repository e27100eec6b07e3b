package domain

import "github.com/shopspring/decimal"

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price x quantity for the line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered list of lines with at most one line per product id.
// Every transition returns a new Cart and leaves the receiver untouched.
type Cart struct {
	Lines []CartLine
}

func NewCart(lines []CartLine) Cart {
	c := Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 || l.Product.ID == "" {
			continue
		}
		if i := c.indexOf(l.Product.ID); i >= 0 {
			c.Lines[i].Quantity += l.Quantity
			continue
		}
		c.Lines = append(c.Lines, CartLine{Product: l.Product.Clone(), Quantity: l.Quantity})
	}
	return c
}

func (c Cart) AddItem(p Product) Cart {
	next := c.copyLines()
	if i := next.indexOf(p.ID); i >= 0 {
		next.Lines[i].Quantity++
		return next
	}
	next.Lines = append(next.Lines, CartLine{Product: p.Clone(), Quantity: 1})
	return next
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. Unknown ids leave the cart unchanged.
func (c Cart) UpdateQuantity(productID string, quantity int) Cart {
	i := c.indexOf(productID)
	if i < 0 {
		return c
	}
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	next := c.copyLines()
	next.Lines[i].Quantity = quantity
	return next
}

func (c Cart) RemoveItem(productID string) Cart {
	i := c.indexOf(productID)
	if i < 0 {
		return c
	}
	next := Cart{Lines: make([]CartLine, 0, len(c.Lines)-1)}
	next.Lines = append(next.Lines, c.Lines[:i]...)
	next.Lines = append(next.Lines, c.Lines[i+1:]...)
	return next
}

func (c Cart) Clear() Cart {
	if c.IsEmpty() {
		return c
	}
	return Cart{}
}

// Subtract takes the given quantities out of the cart and drops lines that
// reach zero. Lines added after the given snapshot are kept.
func (c Cart) Subtract(lines []CartLine) Cart {
	next := c.copyLines()
	changed := false
	for _, l := range lines {
		i := next.indexOf(l.Product.ID)
		if i < 0 || l.Quantity <= 0 {
			continue
		}
		changed = true
		next.Lines[i].Quantity -= l.Quantity
		if next.Lines[i].Quantity <= 0 {
			next = next.RemoveItem(l.Product.ID)
		}
	}
	if !changed {
		return c
	}
	return next
}

func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Quantity returns the quantity held for productID, 0 when absent.
func (c Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Snapshot deep-copies the lines so later cart changes cannot reach them.
func (c Cart) Snapshot() []CartLine {
	out := make([]CartLine, len(c.Lines))
	for i, l := range c.Lines {
		out[i] = CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return out
}

func (c Cart) copyLines() Cart {
	return Cart{Lines: append([]CartLine(nil), c.Lines...)}
}

func (c Cart) indexOf(productID string) int {
	for i, l := range c.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}
