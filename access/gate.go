package access

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/KacperKuznik/image-hosting-api/entity"
	"github.com/KacperKuznik/image-hosting-api/errs"
	"github.com/KacperKuznik/image-hosting-api/infra/produce"
	"github.com/KacperKuznik/image-hosting-api/thumbnail"
	"github.com/google/uuid"
)

// Expiring-link duration bounds, in seconds. Both ends inclusive.
const (
	MinLinkDuration = 300
	MaxLinkDuration = 30000
)

// Store is the durable record store the gate operates on; satisfied by
// repository.Store.
type Store interface {
	Images() ImageStore
	Thumbnails() ThumbnailStore
	// Transaction runs fn against a transaction-scoped Store; returning an
	// error rolls every record change back.
	Transaction(fn func(tx Store) error) error
}

type ImageStore interface {
	Create(image *entity.Image) error
	FindByID(id uint64) (*entity.Image, error)
	FindByIDAndOwner(id uint64, userID uint) (*entity.Image, error)
	FindByOwner(userID uint) ([]entity.Image, error)
	UpdateExpiration(id uint64, expiresAt int64) error
	Delete(id uint64) error
}

type ThumbnailStore interface {
	Create(thumbnail *entity.Thumbnail) error
	FindByImageID(imageID uint64) ([]entity.Thumbnail, error)
}

// BlobStore is the put-side of blob storage; satisfied by infra.MinioClient.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Deriver is the thumbnail pipeline; satisfied by thumbnail.Deriver.
type Deriver interface {
	Derive(ctx context.Context, src []byte, scope, baseName string, sizes []int) ([]thumbnail.Derived, error)
}

// Codec mints and verifies expiring tokens; satisfied by token.Codec.
type Codec interface {
	Encode(imageID uint64, expiresAt int64) string
	Decode(tok string) (imageID uint64, expiresAt int64, err error)
}

// PolicyResolver maps a principal to an effective tier; satisfied by
// policy.Resolver.
type PolicyResolver interface {
	Resolve(ctx context.Context, user *entity.User) entity.UserTier
}

// CleanupPublisher hands orphaned blob keys to the async cleanup worker;
// satisfied by produce.CleanupService.
type CleanupPublisher interface {
	PublishCleanup(ctx context.Context, msg produce.CleanupMessage) error
}

// Gate is the decision layer: each operation independently checks the
// principal's policy and the resource, and either performs the operation or
// returns an *errs.Err from the request taxonomy. The gate holds no state
// between calls.
type Gate struct {
	store    Store
	blobs    BlobStore
	deriver  Deriver
	codec    Codec
	policies PolicyResolver
	cleanup  CleanupPublisher
	baseURL  string
	now      func() time.Time
}

func NewGate(store Store, blobs BlobStore, deriver Deriver, codec Codec, policies PolicyResolver, cleanup CleanupPublisher, linkBaseURL string) *Gate {
	return &Gate{
		store:    store,
		blobs:    blobs,
		deriver:  deriver,
		codec:    codec,
		policies: policies,
		cleanup:  cleanup,
		baseURL:  linkBaseURL,
		now:      time.Now,
	}
}

// ThumbnailView is one derived variant in list output.
type ThumbnailView struct {
	Location string `json:"location"`
	Height   int    `json:"height"`
}

// ImageView is one image in list output. OriginalImage is null unless the
// caller's tier exposes originals; omission is a visibility toggle, never an
// error.
type ImageView struct {
	Thumbnails    []ThumbnailView `json:"thumbnails"`
	OriginalImage *string         `json:"original_image"`
}

// ListImages returns the caller's own images, never another user's.
func (g *Gate) ListImages(ctx context.Context, principal *entity.User) ([]ImageView, error) {
	if principal == nil {
		return nil, errs.Unauthenticated("authentication required")
	}

	tier := g.policies.Resolve(ctx, principal)
	images, err := g.store.Images().FindByOwner(principal.ID)
	if err != nil {
		return nil, errs.Internal("failed to list images").WithCause(err)
	}

	views := make([]ImageView, 0, len(images))
	for _, img := range images {
		view := ImageView{Thumbnails: make([]ThumbnailView, 0, len(img.Thumbnails))}
		for _, t := range img.Thumbnails {
			view.Thumbnails = append(view.Thumbnails, ThumbnailView{Location: t.Location, Height: t.Height})
		}
		if tier.CanViewOriginal {
			location := img.Location
			view.OriginalImage = &location
		}
		views = append(views, view)
	}
	return views, nil
}

// UploadPayload is the extracted multipart image field. A nil payload means
// the field was absent entirely.
type UploadPayload struct {
	FileName string
	Data     []byte
}

// Upload persists the original and derives one thumbnail per tier-configured
// size. All-or-nothing: on any failure no record survives and every blob
// already written is handed to cleanup.
func (g *Gate) Upload(ctx context.Context, principal *entity.User, payload *UploadPayload) (*entity.Image, error) {
	if principal == nil {
		return nil, errs.Unauthenticated("authentication required")
	}
	if payload == nil {
		return nil, errs.UnprocessableMedia("no image attached")
	}
	if payload.FileName == "" || len(payload.Data) == 0 {
		return nil, errs.BadRequest("invalid image payload")
	}

	tier := g.policies.Resolve(ctx, principal)
	baseName := filepath.Base(payload.FileName)
	blobKey := fmt.Sprintf("user_images/original/%s%s", uuid.New().String(), filepath.Ext(baseName))
	contentType := http.DetectContentType(payload.Data)

	var written []string
	var result *entity.Image
	err := g.store.Transaction(func(tx Store) error {
		location, err := g.blobs.Put(ctx, blobKey, bytes.NewReader(payload.Data), int64(len(payload.Data)), contentType)
		if err != nil {
			return errs.Internal("failed to store image").WithCause(err)
		}
		written = append(written, blobKey)

		img := &entity.Image{
			UserID:   principal.ID,
			Location: location,
			FileName: baseName,
			BlobKey:  blobKey,
		}
		if err := tx.Images().Create(img); err != nil {
			return errs.Internal("failed to create image record").WithCause(err)
		}

		// Scoped by the fresh image id so same-named uploads never collide
		// on thumbnail keys.
		derived, derr := g.deriver.Derive(ctx, payload.Data, strconv.FormatUint(img.ID, 10), baseName, tier.ThumbnailSizes)
		for _, v := range derived {
			written = append(written, v.BlobKey)
		}
		if derr != nil {
			if errors.Is(derr, thumbnail.ErrUndecodable) {
				return errs.UnprocessableMedia("attached file is not a valid image")
			}
			return errs.Internal("failed to derive thumbnails").WithCause(derr)
		}

		for _, v := range derived {
			t := &entity.Thumbnail{
				ImageID:  img.ID,
				Height:   v.Height,
				Location: v.Location,
				BlobKey:  v.BlobKey,
			}
			if err := tx.Thumbnails().Create(t); err != nil {
				return errs.Internal("failed to create thumbnail record").WithCause(err)
			}
			img.Thumbnails = append(img.Thumbnails, *t)
		}

		result = img
		return nil
	})
	if err != nil {
		g.publishCleanup(ctx, written, "upload rolled back")
		return nil, errs.From(err)
	}
	return result, nil
}

// GenerateLink mints a signed expiring link for an image the caller owns.
// Capability is checked before ownership; a foreign image id is
// indistinguishable from a missing one.
func (g *Gate) GenerateLink(ctx context.Context, principal *entity.User, imageID uint64, durationSeconds int64) (string, error) {
	if principal == nil {
		return "", errs.Unauthenticated("authentication required")
	}

	tier := g.policies.Resolve(ctx, principal)
	if !tier.CanMintExpiringLink {
		return "", errs.Forbidden("this user cannot create expiring links")
	}
	if durationSeconds < MinLinkDuration || durationSeconds > MaxLinkDuration {
		return "", errs.BadRequest(fmt.Sprintf("expiration time should be between %d and %d seconds", MinLinkDuration, MaxLinkDuration))
	}

	img, err := g.store.Images().FindByIDAndOwner(imageID, principal.ID)
	if err != nil {
		return "", errs.BadRequest("this image does not exist or was not created by this user")
	}

	expiresAt := g.now().Unix() + durationSeconds
	tok := g.codec.Encode(img.ID, expiresAt)

	// Advisory only; each minted token carries its own authoritative expiry.
	if err := g.store.Images().UpdateExpiration(img.ID, expiresAt); err != nil {
		return "", errs.Internal("failed to record link expiration").WithCause(err)
	}

	return g.baseURL + "/" + tok, nil
}

// ResolveLink verifies a token and returns the original's location for
// redirect. Forged, malformed and unknown-image tokens are all NotFound so
// nothing about resource existence leaks; only an authentic token past its
// window is Gone.
func (g *Gate) ResolveLink(ctx context.Context, tok string) (string, error) {
	imageID, expiresAt, err := g.codec.Decode(tok)
	if err != nil {
		return "", errs.NotFound("invalid link")
	}

	img, err := g.store.Images().FindByID(imageID)
	if err != nil {
		return "", errs.NotFound("invalid link")
	}

	if expiresAt <= g.now().Unix() {
		return "", errs.Gone("the link has expired")
	}
	return img.Location, nil
}

// DeleteImage removes an owned image with its thumbnails; blob removal is
// handed to the async cleanup worker after the records are gone.
func (g *Gate) DeleteImage(ctx context.Context, principal *entity.User, imageID uint64) error {
	if principal == nil {
		return errs.Unauthenticated("authentication required")
	}

	img, err := g.store.Images().FindByIDAndOwner(imageID, principal.ID)
	if err != nil {
		return errs.BadRequest("this image does not exist or was not created by this user")
	}

	blobKeys := []string{img.BlobKey}
	err = g.store.Transaction(func(tx Store) error {
		thumbs, err := tx.Thumbnails().FindByImageID(img.ID)
		if err != nil {
			return errs.Internal("failed to load thumbnails").WithCause(err)
		}
		for _, t := range thumbs {
			blobKeys = append(blobKeys, t.BlobKey)
		}
		if err := tx.Images().Delete(img.ID); err != nil {
			return errs.Internal("failed to delete image").WithCause(err)
		}
		return nil
	})
	if err != nil {
		return errs.From(err)
	}

	g.publishCleanup(ctx, blobKeys, "image deleted")
	return nil
}

func (g *Gate) publishCleanup(ctx context.Context, blobKeys []string, reason string) {
	if g.cleanup == nil || len(blobKeys) == 0 {
		return
	}
	// Best effort: a lost message leaks a blob, never corrupts records.
	_ = g.cleanup.PublishCleanup(ctx, produce.CleanupMessage{
		BlobKeys: blobKeys,
		Reason:   reason,
	})
}
