package media

import (
	"context"
	"strings"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
)

// Category is the delegate-side resource class of an asset
type Category string

const (
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
)

// CategoryForMIME picks the resource category by MIME prefix: anything
// that is not an image is treated as video, matching the upload folders.
func CategoryForMIME(mimeType string) Category {
	if strings.HasPrefix(mimeType, "image") {
		return CategoryImage
	}
	return CategoryVideo
}

// Folder returns the delegate folder assets of this category live in
func (c Category) Folder() string {
	if c == CategoryImage {
		return "SpeakWave_Post_Images"
	}
	return "SpeakWave_Posts_Videos"
}

// Storage is the media delegate: the external store that owns binary
// content. The application persists only the returned reference pair.
type Storage interface {
	Upload(ctx context.Context, localPath string, category Category) (*models.MediaRef, error)
	Delete(ctx context.Context, publicID string) error
}
