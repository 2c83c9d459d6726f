package ws

import (
	"log"
	nethttp "net/http"

	"github.com/gorilla/websocket"

	"voidwake/mobs/behavior"
	"voidwake/mobs/editor"
	"voidwake/mobs/internal/net/proto"
	"voidwake/mobs/logging"
	"voidwake/mobs/logging/editorlog"
	"voidwake/mobs/logging/netlog"
	"voidwake/mobs/mobdef"
)

type HandlerConfig struct {
	Logger    *log.Logger
	Publisher logging.Publisher
}

// Handler upgrades editor clients and runs one session per connection.
// Edits stay local to the session until the client sends save.
type Handler struct {
	registry *mobdef.Registry
	logger   *log.Logger
	pub      logging.Publisher
	upgrader websocket.Upgrader
}

func NewHandler(registry *mobdef.Registry, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	return &Handler{
		registry: registry,
		logger:   logger,
		pub:      cfg.Publisher,
		upgrader: upgrader,
	}
}

func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	ref := r.URL.Query().Get("doc")
	if ref == "" {
		nethttp.Error(w, "missing doc", nethttp.StatusBadRequest)
		return
	}

	doc, known := h.registry.Document(ref)
	if !known {
		if r.URL.Query().Get("create") != "1" {
			nethttp.Error(w, "unknown document", nethttp.StatusNotFound)
			return
		}
		doc = editor.NewMobDocument(ref)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", ref, err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	session := editor.NewSession(ref, doc, h.pub)
	netlog.ClientConnected(ctx, h.pub, ref)

	writeFrame := func(data []byte) bool {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			netlog.ClientDisconnected(ctx, h.pub, ref, netlog.DisconnectPayload{Reason: err.Error()})
			return false
		}
		return true
	}

	sendDocument := func(seq uint64) bool {
		data, err := proto.EncodeDocument(proto.Document{
			Seq:     seq,
			Ref:     ref,
			Dirty:   session.Dirty(),
			CanUndo: session.CanUndo(),
			CanRedo: session.CanRedo(),
			Value:   session.Document(),
		})
		if err != nil {
			h.logger.Printf("failed to encode document for %s: %v", ref, err)
			return true
		}
		return writeFrame(data)
	}

	sendAck := func(seq uint64) bool {
		data, err := proto.EncodeAck(proto.Ack{Seq: seq})
		if err != nil {
			h.logger.Printf("failed to encode ack for %s: %v", ref, err)
			return true
		}
		return writeFrame(data)
	}

	sendReject := func(seq uint64, reason string) bool {
		data, err := proto.EncodeReject(proto.Reject{Seq: seq, Reason: reason})
		if err != nil {
			h.logger.Printf("failed to encode reject for %s: %v", ref, err)
			return true
		}
		return writeFrame(data)
	}

	if !sendDocument(0) {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			netlog.ClientDisconnected(ctx, h.pub, ref, netlog.DisconnectPayload{Reason: err.Error()})
			return
		}

		msg, err := proto.DecodeClientMessage(payload)
		if err != nil {
			h.logger.Printf("discarding malformed message for %s: %v", ref, err)
			netlog.MessageDiscarded(ctx, h.pub, ref, netlog.DiscardPayload{Reason: err.Error()})
			continue
		}

		switch msg.Type {
		case proto.TypeEdit:
			edit, err := proto.ClientEdit(msg)
			if err != nil {
				if !sendReject(msg.Seq, err.Error()) {
					return
				}
				continue
			}
			if err := session.Apply(ctx, edit); err != nil {
				if !sendReject(msg.Seq, err.Error()) {
					return
				}
				continue
			}
			if !sendAck(msg.Seq) {
				return
			}
			if !sendDocument(msg.Seq) {
				return
			}
		case proto.TypeUndo:
			if !session.Undo() {
				if !sendReject(msg.Seq, "nothing to undo") {
					return
				}
				continue
			}
			if !sendAck(msg.Seq) {
				return
			}
			if !sendDocument(msg.Seq) {
				return
			}
		case proto.TypeRedo:
			if !session.Redo() {
				if !sendReject(msg.Seq, "nothing to redo") {
					return
				}
				continue
			}
			if !sendAck(msg.Seq) {
				return
			}
			if !sendDocument(msg.Seq) {
				return
			}
		case proto.TypeSave:
			if err := h.registry.SaveDocument(ref, session.Document()); err != nil {
				if !sendReject(msg.Seq, err.Error()) {
					return
				}
				continue
			}
			session.MarkSaved()
			if !sendAck(msg.Seq) {
				return
			}
		case proto.TypeValidate:
			report := proto.Validation{Seq: msg.Seq, Ref: ref}
			result := mobdef.Validate(session.Document())
			report.Issues = result.Issues
			if result.HasErrors() {
				errors := 0
				for _, issue := range result.Issues {
					if issue.Severity == mobdef.IssueError {
						errors++
					}
				}
				editorlog.ValidationFailed(ctx, h.pub, ref, editorlog.ValidationPayload{Errors: errors})
			}
			if root, ok := session.BehaviorValue(); ok {
				_, diagnostics, err := behavior.Compile(root)
				if err != nil {
					report.Diagnostics = append(report.Diagnostics, behavior.Diagnostic{
						Path:    "behavior",
						Message: err.Error(),
					})
				} else {
					report.Diagnostics = diagnostics
				}
			}
			data, err := proto.EncodeValidation(report)
			if err != nil {
				h.logger.Printf("failed to encode validation for %s: %v", ref, err)
				continue
			}
			if !writeFrame(data) {
				return
			}
		case proto.TypeDocument:
			if !sendDocument(msg.Seq) {
				return
			}
		default:
			h.logger.Printf("unknown message type %q for %s", msg.Type, ref)
			netlog.MessageDiscarded(ctx, h.pub, ref, netlog.DiscardPayload{Type: msg.Type, Reason: "unknown message type"})
		}
	}
}
