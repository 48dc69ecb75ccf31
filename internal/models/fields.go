package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON-encoded TEXT columns. SQLite has no array or document type, so the
// structured payload fields are stored as serialized JSON on the content row.

// Stat is a label/value pair rendered on project and product detail pages.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Feature is one product feature card.
type Feature struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsonValue(l)
}

func (l *StringList) Scan(src any) error { return jsonScan(l, src) }

type StatList []Stat

func (l StatList) Value() (driver.Value, error) {
	if l == nil {
		l = StatList{}
	}
	return jsonValue(l)
}

func (l *StatList) Scan(src any) error { return jsonScan(l, src) }

type FeatureList []Feature

func (l FeatureList) Value() (driver.Value, error) {
	if l == nil {
		l = FeatureList{}
	}
	return jsonValue(l)
}

func (l *FeatureList) Scan(src any) error { return jsonScan(l, src) }

// JSONMap holds a free-form JSON object, such as a landing section's content
// block. The ordering core treats it as opaque.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	return jsonValue(m)
}

func (m *JSONMap) Scan(src any) error { return jsonScan(m, src) }

// JSONValue holds any JSON value (object, array, string, number) verbatim.
// Used for site settings whose shape is decided by the admin UI.
type JSONValue json.RawMessage

func (v JSONValue) Value() (driver.Value, error) {
	if len(v) == 0 {
		return "null", nil
	}
	return string(v), nil
}

func (v *JSONValue) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		*v = append((*v)[:0], s...)
		return nil
	case string:
		*v = JSONValue(s)
		return nil
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

func (v JSONValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

func (v *JSONValue) UnmarshalJSON(data []byte) error {
	*v = append((*v)[:0], data...)
	return nil
}

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dst any, src any) error {
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(s) == 0 {
			return nil
		}
		return json.Unmarshal(s, dst)
	case string:
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
