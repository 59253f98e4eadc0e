package models

import "time"

// VimeoThumbnails stores the thumbnail URLs of one Vimeo video. Vimeo does not
// derive thumbnails from the id, so these are supplied out of band.
type VimeoThumbnails struct {
	VideoID   string
	Small     string
	Medium    string
	Large     string
	UpdatedAt time.Time
}

// PublishedEmbed records an embed fragment rendered for a video and uploaded
// to object storage.
type PublishedEmbed struct {
	ID          string
	Provider    string
	VideoID     string
	SourceURL   string
	Options     map[string]string
	Fingerprint string
	HTML        string
	Location    string
	Status      string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

const (
	PublishStatusPending   = "pending"
	PublishStatusPublished = "published"
	PublishStatusFailed    = "failed"
)
