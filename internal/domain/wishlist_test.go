package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_AddIsIdempotent(t *testing.T) {
	p := product("x", "5")
	w := Wishlist{}.Add(p)
	w = w.Add(p)
	assert.Equal(t, 1, w.Count())
}

func TestWishlist_RemoveThenContains(t *testing.T) {
	w := Wishlist{}.Add(product("X", "5"))
	require.True(t, w.Contains("X"))

	w = w.Remove("X")
	assert.False(t, w.Contains("X"))
	assert.Equal(t, 0, w.Count())
}

func TestWishlist_RemoveMissingIsNoop(t *testing.T) {
	w := Wishlist{}.Add(product("a", "5"))
	assert.Equal(t, w, w.Remove("missing"))
}

func TestWishlist_PreservesInsertionOrder(t *testing.T) {
	w := Wishlist{}.Add(product("c", "1")).Add(product("a", "1")).Add(product("b", "1"))
	ids := []string{}
	for _, p := range w.Items {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestWishlist_Toggle(t *testing.T) {
	p := product("a", "1")
	w := Wishlist{}.Toggle(p)
	assert.True(t, w.Contains("a"))
	w = w.Toggle(p)
	assert.False(t, w.Contains("a"))
}

func TestWishlist_Clear(t *testing.T) {
	w := Wishlist{}.Add(product("a", "1")).Add(product("b", "1")).Clear()
	assert.Equal(t, 0, w.Count())
}

func TestNewWishlist_Dedups(t *testing.T) {
	w := NewWishlist([]Product{product("a", "1"), product("a", "1"), {}, product("b", "1")})
	assert.Equal(t, 2, w.Count())
}
