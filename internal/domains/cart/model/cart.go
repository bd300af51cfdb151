package model

import (
	"github.com/google/uuid"
)

// CartLine is one selection inside a cart. The identity key is the
// tuple (slug, variantID-or-absent, sizeID-or-absent, color-or-absent,
// size-name-or-absent); absence matters, so an unscoped line for a slug
// is a different line from any variant-scoped one.
type CartLine struct {
	Slug      string     `json:"slug"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Color     string     `json:"color,omitempty"`
	Size      string     `json:"size,omitempty"`
	Quantity  int        `json:"quantity"`
}

// LineKey is the comparable identity of a cart line. Nil uuid means
// the field is absent.
type LineKey struct {
	Slug      string
	VariantID uuid.UUID
	SizeID    uuid.UUID
	Color     string
	Size      string
}

// Key returns the line's identity key.
func (l CartLine) Key() LineKey {
	k := LineKey{Slug: l.Slug, Color: l.Color, Size: l.Size}
	if l.VariantID != nil {
		k.VariantID = *l.VariantID
	}
	if l.SizeID != nil {
		k.SizeID = *l.SizeID
	}
	return k
}

// Lines is the ordered collection of a cart owner's lines. Order is
// insertion order and is preserved through every operation.
type Lines []CartLine

// Find returns the index of the line with the given key, or -1.
func (ls Lines) Find(key LineKey) int {
	for i := range ls {
		if ls[i].Key() == key {
			return i
		}
	}
	return -1
}

// Upsert replaces the quantity of the line matching the key, or appends
// the line when no match exists. A quantity <= 0 removes the line
// instead. The identity-key uniqueness invariant is preserved: at most
// one line per key.
func (ls *Lines) Upsert(line CartLine) {
	key := line.Key()
	idx := ls.Find(key)

	if line.Quantity <= 0 {
		if idx >= 0 {
			ls.removeAt(idx)
		}
		return
	}

	if idx >= 0 {
		(*ls)[idx].Quantity = line.Quantity
		return
	}
	*ls = append(*ls, line)
}

// Remove deletes the line with the given key. Returns false when no
// such line exists.
func (ls *Lines) Remove(key LineKey) bool {
	idx := ls.Find(key)
	if idx < 0 {
		return false
	}
	ls.removeAt(idx)
	return true
}

func (ls *Lines) removeAt(idx int) {
	*ls = append((*ls)[:idx], (*ls)[idx+1:]...)
}
