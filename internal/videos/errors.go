package videos

import "errors"

var (
	// ErrSourceUnavailable indicates no thumbnail source is configured.
	ErrSourceUnavailable = errors.New("thumbnail source unavailable")
	// ErrThumbnailNotFound indicates the source has no thumbnails for a video.
	ErrThumbnailNotFound = errors.New("thumbnail not found")
	// ErrStorageUnavailable indicates no fragment storage is configured.
	ErrStorageUnavailable = errors.New("fragment storage unavailable")
)
