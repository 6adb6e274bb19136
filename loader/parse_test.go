package loader

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseLine_FullRecord(t *testing.T) {
	line := "2024-01-01T00:00:00|TCP|host1|IN|||sess1|||val1||dec1|msg1|dev1"
	key, doc, err := ParseLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if key != "2024-01-01T00:00:00" {
		t.Fatalf("unexpected key: %q", key)
	}

	want := Document{
		"timestamp":       "2024-01-01T00:00:00",
		"protocol":        "TCP",
		"host":            "host1",
		"direction":       "IN",
		"session_id":      "sess1",
		"value1":          "val1",
		"decryption_info": "dec1",
		"message":         "msg1",
		"device_id":       "dev1",
	}
	if !reflect.DeepEqual(doc, want) {
		t.Fatalf("unexpected document:\n got %v\nwant %v", doc, want)
	}
	// Empty-valued named fields must be absent, not empty strings.
	for _, name := range []string{"flag1", "flag2", "auth_type", "device_type", "reference_id"} {
		if _, ok := doc[name]; ok {
			t.Fatalf("expected %s absent from document", name)
		}
	}
}

func TestParseLine_AllFieldsPresent(t *testing.T) {
	line := "ts|p|h|d|f1|f2|s|a|dt|v|r|di|m|dev"
	_, doc, err := ParseLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc) != len(fieldNames) {
		t.Fatalf("expected %d fields, got %d: %v", len(fieldNames), len(doc), doc)
	}
	for k := range doc {
		if len(k) > 5 && k[:6] == "field_" {
			t.Fatalf("unexpected overflow key %q for a 14-token line", k)
		}
	}
}

func TestParseLine_OverflowKeyedByPosition(t *testing.T) {
	// 16 tokens: overflow "extra1" then an empty token.
	line := "ts|p|h|d|f1|f2|s|a|dt|v|r|di|m|dev|extra1|"
	_, doc, err := ParseLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if doc["field_1"] != "extra1" {
		t.Fatalf("expected field_1=extra1, got %q", doc["field_1"])
	}
	if _, ok := doc["field_2"]; ok {
		t.Fatalf("expected empty overflow token omitted, got field_2=%q", doc["field_2"])
	}

	// Numbering follows position, never compacts over empty tokens.
	line = "ts|p|h|d|f1|f2|s|a|dt|v|r|di|m|dev||extra2"
	_, doc, err = ParseLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["field_1"]; ok {
		t.Fatalf("expected field_1 absent, got %q", doc["field_1"])
	}
	if doc["field_2"] != "extra2" {
		t.Fatalf("expected field_2=extra2, got %q", doc["field_2"])
	}
}

func TestParseLine_ShortLine(t *testing.T) {
	key, doc, err := ParseLine("2024-02-02T10:00:00|UDP")
	if err != nil {
		t.Fatal(err)
	}
	if key != "2024-02-02T10:00:00" {
		t.Fatalf("unexpected key: %q", key)
	}
	want := Document{"timestamp": "2024-02-02T10:00:00", "protocol": "UDP"}
	if !reflect.DeepEqual(doc, want) {
		t.Fatalf("unexpected document: %v", doc)
	}

	// A single-token line still yields a keyed document.
	key, doc, err = ParseLine("2024-03-03T00:00:00")
	if err != nil {
		t.Fatal(err)
	}
	if key != "2024-03-03T00:00:00" || len(doc) != 1 {
		t.Fatalf("unexpected result: key=%q doc=%v", key, doc)
	}
}

func TestParseLine_TrimsTokens(t *testing.T) {
	key, doc, err := ParseLine("  2024-01-01T00:00:00 | TCP |  host1  ")
	if err != nil {
		t.Fatal(err)
	}
	if key != "2024-01-01T00:00:00" {
		t.Fatalf("expected trimmed key, got %q", key)
	}
	if doc["protocol"] != "TCP" || doc["host"] != "host1" {
		t.Fatalf("expected trimmed values, got %v", doc)
	}
}

func TestParseLine_Invalid(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", "|a|b", " |x"} {
		_, _, err := ParseLine(line)
		if err == nil {
			t.Fatalf("expected error for %q", line)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ParseError for %q, got %T", line, err)
		}
		if perr.Msg != "Empty or invalid line" {
			t.Fatalf("unexpected message: %q", perr.Msg)
		}
	}
}
