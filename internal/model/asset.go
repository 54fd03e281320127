package model

// AssetKind is the content-type family of an uploaded binary
type AssetKind string

const (
	AssetAudio AssetKind = "audio"
	AssetVideo AssetKind = "video"
	AssetImage AssetKind = "image"
)

// AssetSlot names the draft field an upload is attached to. Slots are
// independent; an in-flight thumbnail upload never blocks the primary.
type AssetSlot string

const (
	SlotPrimary   AssetSlot = "primary"
	SlotThumbnail AssetSlot = "thumbnail"
)

// UploadedAsset is the canonical result returned by the media host.
// Immutable once attached to a draft except by a successful re-upload.
type UploadedAsset struct {
	URL             string    `json:"url" bson:"url"`
	Kind            AssetKind `json:"kind" bson:"kind"`
	DurationSeconds float64   `json:"durationSeconds,omitempty" bson:"durationSeconds,omitempty"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
}

// MaxUploadBytes is the per-family size ceiling enforced locally,
// before any network call.
var MaxUploadBytes = map[AssetKind]int64{
	AssetAudio: 50 << 20,
	AssetVideo: 100 << 20,
	AssetImage: 5 << 20,
}
