package news

import (
	"encoding/json"
	"time"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Article is a news document from the content service. Body holds
// portable-text blocks and is passed through untouched.
type Article struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Excerpt     *string         `json:"excerpt,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	PublishedAt *time.Time      `json:"published_at"`
	Body        json.RawMessage `json:"body,omitempty"`
}

const projection = `{
  "id": _id,
  title,
  "slug": slug.current,
  excerpt,
  "image_url": mainImage.asset->url,
  "published_at": publishedAt,
  body
}`

const listQuery = `*[_type == "article" && defined(slug.current)] | order(publishedAt desc)[0...$limit]` + projection

const slugQuery = `*[_type == "article" && slug.current == $slug][0]` + projection
