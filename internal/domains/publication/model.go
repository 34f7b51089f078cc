package publication

import (
	"time"

	"github.com/google/uuid"
)

type Publication struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	CoverPath     *string   `json:"cover_path,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CategoryID    uuid.UUID `json:"category_id"`
	TotalPages    *int      `json:"total_pages,omitempty"`
	Publisher     *string   `json:"publisher,omitempty"`
	Tags          []string  `json:"tags"`
	PublishedYear *int      `json:"published_year,omitempty"`
	BuyURL        *string   `json:"buy_url,omitempty"`
	Published     bool      `json:"published"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"created_at"`
}

type Input struct {
	Name          string
	CoverPath     *string
	Description   *string
	CategoryID    uuid.UUID
	TotalPages    *int
	Publisher     *string
	Tags          []string
	PublishedYear *int
	BuyURL        *string
	Published     bool
	Featured      bool
}

// Patch is a validated update payload. Nil fields are left untouched.
type Patch struct {
	Name          *string
	CoverPath     *string
	Description   *string
	CategoryID    *uuid.UUID
	TotalPages    *int
	Publisher     *string
	Tags          []string
	PublishedYear *int
	BuyURL        *string
	Published     *bool
	Featured      *bool
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.CoverPath == nil && p.Description == nil && p.CategoryID == nil &&
		p.TotalPages == nil && p.Publisher == nil && p.Tags == nil && p.PublishedYear == nil &&
		p.BuyURL == nil && p.Published == nil && p.Featured == nil
}

type ListFilter struct {
	CategoryID *uuid.UUID
	Featured   *bool
}
