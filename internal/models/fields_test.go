package models_test

import (
	"testing"

	"github.com/rynvlabs/cms/internal/models"
)

func TestStringListNilStoresEmptyArray(t *testing.T) {
	var list models.StringList
	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "[]" {
		t.Fatalf("expected empty array literal, got %v", v)
	}
}

func TestStringListRoundTrip(t *testing.T) {
	list := models.StringList{"Go", "React"}
	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out models.StringList
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 2 || out[0] != "Go" || out[1] != "React" {
		t.Fatalf("unexpected round trip: %v", out)
	}
}

func TestJSONValueScanNil(t *testing.T) {
	var v models.JSONValue
	if err := v.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	b, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("expected null for empty value, got %s", b)
	}
}

func TestJSONMapScanBytes(t *testing.T) {
	var m models.JSONMap
	if err := m.Scan([]byte(`{"cta":"Go"}`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if m["cta"] != "Go" {
		t.Fatalf("unexpected map: %v", m)
	}
}
