package proto

import (
	"encoding/json"
	"fmt"

	"voidwake/mobs/behavior"
	"voidwake/mobs/editor"
	"voidwake/mobs/mobdef"
	"voidwake/mobs/tomlval"
)

const (
	// Version tracks the wire-protocol revision expected by clients.
	Version = 1

	// Type identifiers for outbound websocket payloads.
	typeAck        = "ack"
	typeReject     = "reject"
	typeDocument   = "document"
	typeValidation = "validation"
)

// Client message type identifiers.
const (
	TypeEdit     = "edit"
	TypeUndo     = "undo"
	TypeRedo     = "redo"
	TypeSave     = "save"
	TypeValidate = "validate"
	TypeDocument = "document"
)

// Exported aliases for outbound message type identifiers.
const (
	TypeAck        = typeAck
	TypeReject     = typeReject
	TypeValidation = typeValidation
)

// ClientMessage captures an inbound websocket message from the editor
// client. Seq is echoed back on the matching ack or reject.
type ClientMessage struct {
	Ver       int             `json:"ver,omitempty"`
	Type      string          `json:"type"`
	Seq       uint64          `json:"seq,omitempty"`
	Op        string          `json:"op,omitempty"`
	Path      []int           `json:"path,omitempty"`
	Index     int             `json:"index,omitempty"`
	SubIndex  int             `json:"subIndex,omitempty"`
	Direction int             `json:"direction,omitempty"`
	Kind      string          `json:"kind,omitempty"`
	Field     string          `json:"field,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
}

// DecodeClientMessage converts raw websocket payloads into a structured message.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, err
	}
	if msg.Ver == 0 {
		msg.Ver = Version
	}
	if msg.Ver != Version {
		return msg, fmt.Errorf("unsupported client protocol version %d", msg.Ver)
	}
	return msg, nil
}

// ClientEdit converts an edit message into the structured editor
// operation. JSON numbers arrive as floats; document comparison
// coerces numeric kinds so that is lossless in practice.
func ClientEdit(msg ClientMessage) (editor.Edit, error) {
	edit := editor.Edit{
		Op:        msg.Op,
		Path:      msg.Path,
		Index:     msg.Index,
		SubIndex:  msg.SubIndex,
		Direction: msg.Direction,
		Kind:      msg.Kind,
		Field:     msg.Field,
	}
	if len(msg.Value) > 0 {
		var raw any
		if err := json.Unmarshal(msg.Value, &raw); err != nil {
			return edit, fmt.Errorf("invalid value payload: %w", err)
		}
		value, err := tomlval.FromInterface(raw)
		if err != nil {
			return edit, err
		}
		edit.Value = &value
	}
	return edit, nil
}

// Ack acknowledges a processed client message.
type Ack struct {
	Seq uint64
}

// EncodeAck renders an acknowledgement response.
func EncodeAck(msg Ack) ([]byte, error) {
	frame := struct {
		Ver  int    `json:"ver"`
		Type string `json:"type"`
		Seq  uint64 `json:"seq"`
	}{
		Ver:  Version,
		Type: typeAck,
		Seq:  msg.Seq,
	}
	return json.Marshal(frame)
}

// Reject notifies the client that a message was refused.
type Reject struct {
	Seq    uint64
	Reason string
}

// EncodeReject renders a rejection response.
func EncodeReject(msg Reject) ([]byte, error) {
	frame := struct {
		Ver    int    `json:"ver"`
		Type   string `json:"type"`
		Seq    uint64 `json:"seq"`
		Reason string `json:"reason"`
	}{
		Ver:    Version,
		Type:   typeReject,
		Seq:    msg.Seq,
		Reason: msg.Reason,
	}
	return json.Marshal(frame)
}

// Document carries a full snapshot of the open document.
type Document struct {
	Seq     uint64
	Ref     string
	Dirty   bool
	CanUndo bool
	CanRedo bool
	Value   tomlval.Value
}

// EncodeDocument renders a document snapshot payload.
func EncodeDocument(msg Document) ([]byte, error) {
	value, err := tomlval.ToInterface(msg.Value)
	if err != nil {
		return nil, err
	}
	frame := struct {
		Ver     int    `json:"ver"`
		Type    string `json:"type"`
		Seq     uint64 `json:"seq,omitempty"`
		Ref     string `json:"ref"`
		Dirty   bool   `json:"dirty"`
		CanUndo bool   `json:"canUndo"`
		CanRedo bool   `json:"canRedo"`
		Value   any    `json:"value"`
	}{
		Ver:     Version,
		Type:    typeDocument,
		Seq:     msg.Seq,
		Ref:     msg.Ref,
		Dirty:   msg.Dirty,
		CanUndo: msg.CanUndo,
		CanRedo: msg.CanRedo,
		Value:   value,
	}
	return json.Marshal(frame)
}

// Validation carries definition issues and behavior diagnostics.
type Validation struct {
	Seq         uint64
	Ref         string
	Issues      []mobdef.Issue
	Diagnostics []behavior.Diagnostic
}

// EncodeValidation renders a validation report payload.
func EncodeValidation(msg Validation) ([]byte, error) {
	issues := msg.Issues
	if issues == nil {
		issues = []mobdef.Issue{}
	}
	diagnostics := msg.Diagnostics
	if diagnostics == nil {
		diagnostics = []behavior.Diagnostic{}
	}
	frame := struct {
		Ver         int                   `json:"ver"`
		Type        string                `json:"type"`
		Seq         uint64                `json:"seq,omitempty"`
		Ref         string                `json:"ref"`
		Issues      []mobdef.Issue        `json:"issues"`
		Diagnostics []behavior.Diagnostic `json:"diagnostics"`
	}{
		Ver:         Version,
		Type:        typeValidation,
		Seq:         msg.Seq,
		Ref:         msg.Ref,
		Issues:      issues,
		Diagnostics: diagnostics,
	}
	return json.Marshal(frame)
}
