package proto

import (
	"encoding/json"
	"testing"

	"voidwake/mobs/tomlval"
)

func TestDecodeClientMessageDefaultsVersion(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"undo","seq":3}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if msg.Ver != Version {
		t.Fatalf("expected version %d, got %d", Version, msg.Ver)
	}
	if msg.Type != TypeUndo || msg.Seq != 3 {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestDecodeClientMessageRejectsUnknownVersion(t *testing.T) {
	if _, err := DecodeClientMessage([]byte(`{"ver":99,"type":"undo"}`)); err == nil {
		t.Fatalf("expected version error")
	}
}

func TestClientEditConvertsValue(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"edit","op":"setField","path":[0],"field":"seconds","value":2.5}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	edit, err := ClientEdit(msg)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if edit.Op != "setField" || edit.Field != "seconds" {
		t.Fatalf("unexpected edit: %+v", edit)
	}
	if edit.Value == nil {
		t.Fatalf("expected converted value")
	}
	if n, ok := edit.Value.AsNumber(); !ok || n != 2.5 {
		t.Fatalf("expected value 2.5, got %v", edit.Value)
	}
}

func TestClientEditCarriesNestedIndex(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"edit","op":"moveNested","path":[1,1],"index":2,"subIndex":1,"direction":-1}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	edit, err := ClientEdit(msg)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if edit.Index != 2 || edit.SubIndex != 1 || edit.Direction != -1 {
		t.Fatalf("unexpected edit: %+v", edit)
	}
}

func TestClientEditRejectsMalformedValue(t *testing.T) {
	msg := ClientMessage{Type: TypeEdit, Op: "setField", Value: json.RawMessage(`{`)}
	if _, err := ClientEdit(msg); err == nil {
		t.Fatalf("expected value error")
	}
}

func TestEncodeDocumentRoundTrip(t *testing.T) {
	tab := tomlval.NewTable()
	tab.Set("name", tomlval.StringValue("test/alpha"))
	tab.Set("health", tomlval.IntegerValue(60))

	data, err := EncodeDocument(Document{
		Seq:   4,
		Ref:   "test/alpha",
		Dirty: true,
		Value: tomlval.TableValue(tab),
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var frame map[string]any
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if frame["type"] != "document" || frame["ref"] != "test/alpha" {
		t.Fatalf("unexpected frame: %v", frame)
	}
	value, ok := frame["value"].(map[string]any)
	if !ok {
		t.Fatalf("expected value object, got %T", frame["value"])
	}
	if health, ok := value["health"].(float64); !ok || int(health) != 60 {
		t.Fatalf("expected health 60, got %v", value["health"])
	}
}
