package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// ErrUndecodable means the source bytes are not a decodable image. The access
// gate maps it to the media-error taxonomy.
var ErrUndecodable = errors.New("source bytes are not a decodable image")

// BlobStore is the put-side of the blob storage the pipeline writes to;
// satisfied by infra.MinioClient.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Derived is one stored variant.
type Derived struct {
	Height   int
	Location string
	BlobKey  string
}

// Deriver produces tier-configured thumbnail variants from an uploaded
// original. One decode, one resize+encode+put per configured size.
type Deriver struct {
	blobs BlobStore
}

func NewDeriver(blobs BlobStore) *Deriver {
	return &Deriver{blobs: blobs}
}

// Derive resizes the source to fit within an s x s bounding box for each
// size, preserving aspect ratio, and stores each variant as PNG. Sizes are
// processed in the given order; duplicates produce duplicate variants.
// Variant keys live under the given scope so same-named uploads never share
// a blob.
//
// On error the returned slice still holds the variants already written, so
// the caller can hand their keys to blob cleanup: a partial batch must never
// survive as a successful upload.
func (d *Deriver) Derive(ctx context.Context, src []byte, scope, baseName string, sizes []int) ([]Derived, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, ErrUndecodable
	}

	derived := make([]Derived, 0, len(sizes))
	for _, size := range sizes {
		fitted := imaging.Fit(img, size, size, imaging.Lanczos)

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
			return derived, fmt.Errorf("failed to encode %dpx thumbnail: %w", size, err)
		}

		key := fmt.Sprintf("user_images/thumbnails/%s/%dpx%s", scope, size, baseName)
		location, err := d.blobs.Put(ctx, key, &buf, int64(buf.Len()), "image/png")
		if err != nil {
			return derived, fmt.Errorf("failed to store %dpx thumbnail: %w", size, err)
		}

		derived = append(derived, Derived{
			Height:   size,
			Location: location,
			BlobKey:  key,
		})
	}
	return derived, nil
}
