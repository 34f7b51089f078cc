package video

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"media-admin-backend/internal/shared/utils"
)

// UncategorizedLabel is shown for videos without a category.
const UncategorizedLabel = "Uncategorized"

// Row is a videos row joined with its category, as read from the store.
type Row struct {
	ID              uuid.UUID
	Title           string
	Description     *string
	ExternalVideoID string
	Thumbnail       *string
	CategoryName    *string
	Date            time.Time
	Venue           *string
	Duration        *string // NUMERIC as text
	Tags            []string
	Featured        *bool
}

// Video is the mapped value served to clients.
type Video struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ExternalVideoID string    `json:"external_video_id"`
	Thumbnail       *string   `json:"thumbnail,omitempty"`
	Category        string    `json:"category"`
	Date            time.Time `json:"date"`
	Venue           *string   `json:"venue,omitempty"`
	Duration        float64   `json:"duration"`
	Tags            []string  `json:"tags"`
	Featured        *bool     `json:"featured,omitempty"`
}

// Mapper turns raw rows into Videos.
type Mapper struct {
	images utils.HostAllowList
}

func NewMapper(images utils.HostAllowList) Mapper {
	return Mapper{images: images}
}

// Map fills defaults: missing category becomes UncategorizedLabel, missing
// or malformed duration becomes 0, thumbnails on untrusted hosts are dropped.
func (m Mapper) Map(row Row) Video {
	v := Video{
		ID:              row.ID,
		Title:           row.Title,
		ExternalVideoID: row.ExternalVideoID,
		Category:        UncategorizedLabel,
		Date:            row.Date,
		Venue:           row.Venue,
		Duration:        utils.ParseNumeric(row.Duration),
		Tags:            row.Tags,
		Featured:        row.Featured,
	}
	if row.Description != nil {
		v.Description = *row.Description
	}
	if row.CategoryName != nil && strings.TrimSpace(*row.CategoryName) != "" {
		v.Category = *row.CategoryName
	}
	if row.Thumbnail != nil && m.images.Permits(*row.Thumbnail) {
		thumb := *row.Thumbnail
		v.Thumbnail = &thumb
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return v
}

func (m Mapper) MapAll(rows []Row) []Video {
	videos := make([]Video, 0, len(rows))
	for _, row := range rows {
		videos = append(videos, m.Map(row))
	}
	return videos
}

// ListFilter narrows List by category slug.
type ListFilter struct {
	Category string
}
