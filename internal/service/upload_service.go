package service

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"

	"examforge/internal/cache"
	"examforge/internal/model"
)

// UploadService is the gateway in front of the media host. Wrong-type
// and too-large payloads are rejected locally before any network call;
// a failed upload never overwrites a previously attached asset.
type UploadService struct {
	media    *MediaClient
	drafts   cache.DraftCache
	notifier Broadcaster

	// attachMu serializes the load-attach-store step after an upload
	// completes. The network phase runs unlocked, so primary and
	// thumbnail uploads stay concurrently in flight; only the attach is
	// exclusive, and it re-reads the draft so the other slot's write
	// (or a parent-field edit made mid-upload) is never overwritten.
	attachMu sync.Mutex
}

// NewUploadService creates a new upload service
func NewUploadService(media *MediaClient, drafts cache.DraftCache, notifier Broadcaster) *UploadService {
	return &UploadService{
		media:    media,
		drafts:   drafts,
		notifier: notifier,
	}
}

// Upload validates, uploads and attaches one asset to the given slot.
// Slots are independent; a thumbnail upload never gates the primary.
func (s *UploadService) Upload(ctx context.Context, draftID string, slot model.AssetSlot, filename, contentType string, size int64, file io.Reader) (*model.UploadedAsset, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}

	kind, ok := expectedAssetKind(draft.Kind, slot)
	if !ok {
		s.reject(draftID, RejectWrongType)
		return nil, &UploadRejectedError{Reason: RejectWrongType}
	}
	if !strings.HasPrefix(contentType, string(kind)+"/") {
		s.reject(draftID, RejectWrongType)
		return nil, &UploadRejectedError{Reason: RejectWrongType}
	}
	if size > model.MaxUploadBytes[kind] {
		s.reject(draftID, RejectTooLarge)
		return nil, &UploadRejectedError{Reason: RejectTooLarge}
	}

	asset, err := s.media.Upload(ctx, kind, filename, contentType, file)
	if err != nil {
		// prior successful upload, if any, stays attached
		log.Printf("[Upload] draft=%s slot=%s failed: %v", draftID, slot, err)
		s.notifier.NotifyDraft(draftID, model.Notification{
			Level:   model.LevelError,
			Code:    model.NoteUploadFailed,
			Message: err.Error(),
		})
		return nil, err
	}

	s.attachMu.Lock()
	defer s.attachMu.Unlock()

	// the draft loaded before the upload is stale by now; re-read it so
	// edits and other-slot uploads that landed meanwhile survive
	fresh, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, ErrDraftNotFound
	}
	updated, err := AttachAsset(*fresh, slot, *asset)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Set(ctx, &updated); err != nil {
		return nil, err
	}

	s.notifier.NotifyDraft(draftID, model.Notification{
		Level:   model.LevelInfo,
		Code:    model.NoteUploadComplete,
		Message: asset.URL,
	})
	return asset, nil
}

func (s *UploadService) reject(draftID, reason string) {
	s.notifier.NotifyDraft(draftID, model.Notification{
		Level:   model.LevelWarning,
		Code:    model.NoteUploadRejected,
		Message: "upload rejected: " + reason,
	})
}

// expectedAssetKind maps a draft kind and slot to the content-type
// family it accepts. Kinds whose parent is plain text take no uploads.
func expectedAssetKind(kind model.ContentKind, slot model.AssetSlot) (model.AssetKind, bool) {
	switch slot {
	case model.SlotThumbnail:
		if kind == model.KindSpeaking {
			return model.AssetImage, true
		}
		return "", false
	case model.SlotPrimary:
		if k := kind.PrimaryAssetKind(); k != "" {
			return k, true
		}
		return "", false
	}
	return "", false
}
