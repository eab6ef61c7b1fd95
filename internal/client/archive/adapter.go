package archiveclient

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// Adapter archives capture photos to a bucket. Uploads are fire-and-forget
// from the caller's perspective; a failed archive never blocks the OCR flow.
type Adapter struct {
	client *storage.Client
	bucket string
}

func NewAdapter(client *storage.Client, bucket string) *Adapter {
	return &Adapter{client: client, bucket: bucket}
}

func (a *Adapter) Upload(ctx context.Context, fileName string, jpeg []byte) error {
	if a.bucket == "" {
		return fmt.Errorf("capture bucket is not configured")
	}

	w := a.client.Bucket(a.bucket).Object(fileName).NewWriter(ctx)
	w.ContentType = "image/jpeg"
	if _, err := w.Write(jpeg); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
