package domain

// Wishlist is an insertion-ordered set of products keyed by id.
type Wishlist struct {
	Items []Product
}

func NewWishlist(items []Product) Wishlist {
	w := Wishlist{}
	for _, p := range items {
		if p.ID == "" {
			continue
		}
		w = w.Add(p)
	}
	return w
}

// Add is a no-op when the product is already present.
func (w Wishlist) Add(p Product) Wishlist {
	if w.Contains(p.ID) {
		return w
	}
	items := make([]Product, 0, len(w.Items)+1)
	items = append(items, w.Items...)
	items = append(items, p.Clone())
	return Wishlist{Items: items}
}

func (w Wishlist) Remove(productID string) Wishlist {
	i := w.indexOf(productID)
	if i < 0 {
		return w
	}
	items := make([]Product, 0, len(w.Items)-1)
	items = append(items, w.Items[:i]...)
	items = append(items, w.Items[i+1:]...)
	return Wishlist{Items: items}
}

// Toggle removes the product when present and adds it otherwise.
func (w Wishlist) Toggle(p Product) Wishlist {
	if w.Contains(p.ID) {
		return w.Remove(p.ID)
	}
	return w.Add(p)
}

func (w Wishlist) Clear() Wishlist {
	if len(w.Items) == 0 {
		return w
	}
	return Wishlist{}
}

func (w Wishlist) Contains(productID string) bool {
	return w.indexOf(productID) >= 0
}

func (w Wishlist) Count() int {
	return len(w.Items)
}

func (w Wishlist) indexOf(productID string) int {
	for i, p := range w.Items {
		if p.ID == productID {
			return i
		}
	}
	return -1
}
