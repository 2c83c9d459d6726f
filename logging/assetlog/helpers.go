package assetlog

import (
	"context"

	"voidwake/mobs/logging"
)

const (
	// EventLoadStarted is emitted when a registry load begins.
	EventLoadStarted logging.EventType = "assets.load_started"
	// EventEntitySkipped is emitted when one entity fails and is dropped.
	EventEntitySkipped logging.EventType = "assets.entity_skipped"
	// EventPatchOrphaned is emitted when a patch targets an unknown entity.
	EventPatchOrphaned logging.EventType = "assets.patch_orphaned"
	// EventLayerFailed is emitted when an optional layer cannot be read
	// and the load continues without it.
	EventLayerFailed logging.EventType = "assets.layer_failed"
	// EventLoadCompleted is emitted when a registry load finishes.
	EventLoadCompleted logging.EventType = "assets.load_completed"
)

// LoadStartedPayload describes the source layers of a load.
type LoadStartedPayload struct {
	ExtendedDir string `json:"extendedDir,omitempty"`
}

// EntitySkippedPayload carries the per-entity failure reason.
type EntitySkippedPayload struct {
	Reason string `json:"reason"`
}

// PatchOrphanedPayload names the patch file without a base entity.
type PatchOrphanedPayload struct {
	Path string `json:"path"`
}

// LayerFailedPayload carries the failure reason for a dropped layer.
type LayerFailedPayload struct {
	Layer  string `json:"layer"`
	Reason string `json:"reason"`
}

// LoadCompletedPayload summarizes a finished load.
type LoadCompletedPayload struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// LoadStarted publishes a load-start event.
func LoadStarted(ctx context.Context, pub logging.Publisher, payload LoadStartedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLoadStarted,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryAssets,
		Payload:  payload,
	})
}

// EntitySkipped publishes a skip event for one failed entity.
func EntitySkipped(ctx context.Context, pub logging.Publisher, entity string, payload EntitySkippedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEntitySkipped,
		Entity:   entity,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryAssets,
		Payload:  payload,
	})
}

// PatchOrphaned publishes a warning for a patch with no base entity.
func PatchOrphaned(ctx context.Context, pub logging.Publisher, entity string, payload PatchOrphanedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPatchOrphaned,
		Entity:   entity,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryAssets,
		Payload:  payload,
	})
}

// LayerFailed publishes a warning for a layer dropped from the load.
func LayerFailed(ctx context.Context, pub logging.Publisher, payload LayerFailedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLayerFailed,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryAssets,
		Payload:  payload,
	})
}

// LoadCompleted publishes a load-completion event.
func LoadCompleted(ctx context.Context, pub logging.Publisher, payload LoadCompletedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLoadCompleted,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryAssets,
		Payload:  payload,
	})
}
