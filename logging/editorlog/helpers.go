package editorlog

import (
	"context"

	"voidwake/mobs/logging"
)

const (
	// EventSessionOpened is emitted when an editor session starts.
	EventSessionOpened logging.EventType = "editor.session_opened"
	// EventEditApplied is emitted after a successful mutation.
	EventEditApplied logging.EventType = "editor.edit_applied"
	// EventEditRejected is emitted when a mutation cannot be applied.
	EventEditRejected logging.EventType = "editor.edit_rejected"
	// EventDocumentSaved is emitted when a document is written back.
	EventDocumentSaved logging.EventType = "editor.document_saved"
	// EventHistoryMoved is emitted on undo and redo.
	EventHistoryMoved logging.EventType = "editor.history_moved"
	// EventValidationFailed is emitted when a validation pass finds errors.
	EventValidationFailed logging.EventType = "editor.validation_failed"
)

// EditPayload identifies the operation and target path of an edit.
type EditPayload struct {
	Op   string `json:"op"`
	Path []int  `json:"path,omitempty"`
}

// RejectPayload carries the rejection reason alongside the edit.
type RejectPayload struct {
	Op     string `json:"op"`
	Reason string `json:"reason"`
}

// HistoryPayload names the direction of a history move.
type HistoryPayload struct {
	Direction string `json:"direction"`
}

// ValidationPayload counts the findings of a failed validation pass.
type ValidationPayload struct {
	Errors int `json:"errors"`
}

// SessionOpened publishes a session-open event.
func SessionOpened(ctx context.Context, pub logging.Publisher, entity string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSessionOpened,
		Entity:   entity,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEditor,
	})
}

// EditApplied publishes a successful edit.
func EditApplied(ctx context.Context, pub logging.Publisher, entity string, payload EditPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEditApplied,
		Entity:   entity,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEditor,
		Payload:  payload,
	})
}

// EditRejected publishes a rejected edit.
func EditRejected(ctx context.Context, pub logging.Publisher, entity string, payload RejectPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEditRejected,
		Entity:   entity,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryEditor,
		Payload:  payload,
	})
}

// HistoryMoved publishes an undo or redo event.
func HistoryMoved(ctx context.Context, pub logging.Publisher, entity string, payload HistoryPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventHistoryMoved,
		Entity:   entity,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEditor,
		Payload:  payload,
	})
}

// ValidationFailed publishes a failed validation pass.
func ValidationFailed(ctx context.Context, pub logging.Publisher, entity string, payload ValidationPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventValidationFailed,
		Entity:   entity,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryEditor,
		Payload:  payload,
	})
}

// DocumentSaved publishes a save event.
func DocumentSaved(ctx context.Context, pub logging.Publisher, entity string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDocumentSaved,
		Entity:   entity,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEditor,
	})
}
