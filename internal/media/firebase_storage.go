package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
)

// FirebaseStorage implements Storage on a Firebase Cloud Storage bucket
type FirebaseStorage struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewFirebaseStorage creates a FirebaseStorage backed by the given bucket
func NewFirebaseStorage(bucket *storage.BucketHandle, bucketName string) *FirebaseStorage {
	return &FirebaseStorage{bucket: bucket, bucketName: bucketName}
}

// Upload stores the local file under the category folder with a generated
// object name and returns the persisted reference pair.
func (s *FirebaseStorage) Upload(ctx context.Context, localPath string, category Category) (*models.MediaRef, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload file: %w", err)
	}
	defer f.Close()

	ext := filepath.Ext(localPath)
	objectName := fmt.Sprintf("%s/%s%s", category.Folder(), uuid.NewString(), ext)

	obj := s.bucket.Object(objectName)
	w := obj.NewWriter(ctx)
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	// Readable without a signed URL; the reference is served to clients as-is
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return nil, fmt.Errorf("failed to set object ACL: %w", err)
	}

	return &models.MediaRef{
		PublicID:  objectName,
		SecureURL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectName),
	}, nil
}

// Delete removes the object identified by its public ID from the bucket
func (s *FirebaseStorage) Delete(ctx context.Context, publicID string) error {
	if err := s.bucket.Object(publicID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", publicID, err)
	}
	return nil
}
