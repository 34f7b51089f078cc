package category

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================
// VARIANT
// ============================================================
// Categories come in three independent kinds. Each kind lives in its own
// table and is referenced by its own entity table.
type Variant string

const (
	VariantPhoto       Variant = "photo"
	VariantPublication Variant = "publication"
	VariantVideo       Variant = "video"
)

// Variants lists every known variant in display order.
var Variants = []Variant{VariantPhoto, VariantPublication, VariantVideo}

// ParseVariant returns ErrUnknownVariant for anything outside Variants.
func ParseVariant(raw string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == raw {
			return v, nil
		}
	}
	return "", ErrUnknownVariant
}

// Table is the category table of the variant.
func (v Variant) Table() string {
	return string(v) + "_categories"
}

// ReferencingTable is the entity table whose category_id points at the
// variant's categories.
func (v Variant) ReferencingTable() string {
	return string(v) + "s"
}

// EntityName is the audit entity name for mutations of this variant.
func (v Variant) EntityName() string {
	return v.Table()
}

// ============================================================
// ENTITY: Category
// ============================================================
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Input is a validated create payload.
type Input struct {
	Name string
	Slug string
}

// Patch is a validated update payload. Nil fields are left untouched.
type Patch struct {
	Name *string
	Slug *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil
}
