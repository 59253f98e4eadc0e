package embed

import "errors"

var (
	// ErrUnrecognizedProvider indicates the URL host matches no known provider.
	ErrUnrecognizedProvider = errors.New("unrecognized video provider")
	// ErrIDExtractionFailed indicates the provider matched but the URL carries no video id.
	ErrIDExtractionFailed = errors.New("video id extraction failed")
	// ErrUnsupportedThumbnailSize indicates the size key is not in the provider's size table.
	ErrUnsupportedThumbnailSize = errors.New("unsupported thumbnail size")
	// ErrMissingRequiredOption indicates a caller configuration defect, such as the
	// YouTube JS API being enabled without an iframe id.
	ErrMissingRequiredOption = errors.New("missing required option")
	// ErrInvalidOption indicates an option name or value that cannot be parsed.
	ErrInvalidOption = errors.New("invalid option")
	// ErrThumbnailSourceUnavailable indicates no thumbnail source is configured for
	// providers whose thumbnails are supplied out-of-band.
	ErrThumbnailSourceUnavailable = errors.New("thumbnail source unavailable")
)
