package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Block types accepted in a submission body.
const (
	BlockParagraph = "paragraph"
	BlockHeading   = "heading"
	BlockList      = "list"
	BlockImage     = "image"
	BlockVideo     = "video"
)

// ContentBlock is one typed unit of the submission body.
type ContentBlock struct {
	Type  string   `json:"type"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
	URL   string   `json:"url,omitempty"`
}

// MediaInput accepts the three payload shapes callers send for media:
// a single URL string, a bare list of URLs, or an object with separate
// image and video lists. UnmarshalJSON folds all of them into one shape
// so nothing downstream sees an untyped blob.
type MediaInput struct {
	Images []string `json:"images,omitempty"`
	Videos []string `json:"videos,omitempty"`
}

func (m *MediaInput) UnmarshalJSON(data []byte) error {
	// Shape 1: single URL string
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			m.Images = []string{single}
		}
		return nil
	}

	// Shape 2: bare list of URLs
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		m.Images = list
		return nil
	}

	// Shape 3: object with image/video lists
	type mediaObject MediaInput
	var obj mediaObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*m = MediaInput(obj)
	return nil
}

// Submission is the raw per-request payload. It is never persisted
// verbatim; only its normalized derivatives are.
type Submission struct {
	Title        string         `json:"title"`
	Subtitle     string         `json:"subtitle,omitempty"`
	Heading      string         `json:"heading,omitempty"`
	Content      string         `json:"content,omitempty"`
	Blocks       []ContentBlock `json:"blocks,omitempty"`
	Points       []string       `json:"points,omitempty"`
	Location     LocationInput  `json:"location,omitempty"`
	LanguageCode string         `json:"language_code,omitempty"`
	DomainID     *uuid.UUID     `json:"domain_id,omitempty"`
	DomainName   string         `json:"domain_name,omitempty"`
	CategoryID   *uuid.UUID     `json:"category_id,omitempty"`
	CategoryName string         `json:"category_name,omitempty"`
	Media        MediaInput     `json:"media,omitempty"`
	Images       []string       `json:"images,omitempty"`
	VideoURL     string         `json:"video_url,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Publish      bool           `json:"publish,omitempty"`
	CallbackURL  string         `json:"callback_url,omitempty"`
}
