package photo

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Photo is one row of the photos table.
type Photo struct {
	ID          uuid.UUID              `json:"id"`
	FilePath    string                 `json:"file_path"`
	Title       string                 `json:"title"`
	Location    *string                `json:"location,omitempty"`
	CategoryID  uuid.UUID              `json:"category_id"`
	Tags        []string               `json:"tags"`
	Description *string                `json:"description,omitempty"`
	Exif        map[string]interface{} `json:"exif,omitempty"`
	Published   bool                   `json:"published"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Input is a validated create payload. FilePath is empty until the upload
// step assigns it.
type Input struct {
	FilePath    string
	Title       string
	Location    *string
	CategoryID  uuid.UUID
	Tags        []string
	Description *string
	Exif        map[string]interface{}
	Published   bool
}

// Patch is a validated update payload. Nil fields are left untouched.
type Patch struct {
	FilePath    *string
	Title       *string
	Location    *string
	CategoryID  *uuid.UUID
	Tags        []string
	Description *string
	Exif        map[string]interface{}
	Published   *bool
}

func (p Patch) IsEmpty() bool {
	return p.FilePath == nil && p.Title == nil && p.Location == nil && p.CategoryID == nil &&
		p.Tags == nil && p.Description == nil && p.Exif == nil && p.Published == nil
}

// ListFilter narrows List. Nil fields match everything.
type ListFilter struct {
	CategoryID *uuid.UUID
	Published  *bool
}

// ObjectPrefix is where the binaries of one uploaded photo live.
const ObjectPrefix = "photos/"

// StoragePrefix returns the object folder of filePath when the file was
// stored by the upload endpoint. Paths pointing elsewhere are not ours to remove.
func StoragePrefix(filePath string) (string, bool) {
	rest, ok := strings.CutPrefix(filePath, ObjectPrefix)
	if !ok {
		return "", false
	}
	folder, _, ok := strings.Cut(rest, "/")
	if !ok || folder == "" {
		return "", false
	}
	return ObjectPrefix + folder + "/", true
}
