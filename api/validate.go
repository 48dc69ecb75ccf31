package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/qri-io/jsonschema"
	"github.com/rynvlabs/cms/pkg/content"
)

// Reorder payloads are validated against a JSON schema before decoding, so a
// malformed permutation never reaches the store.
var reorderSchema = mustSchema(`{
	"type": "object",
	"required": ["items"],
	"properties": {
		"items": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "sortOrder"],
				"properties": {
					"id": {"type": "integer", "minimum": 1},
					"sortOrder": {"type": "integer"}
				}
			}
		}
	}
}`)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(err)
	}
	return rs
}

func decodeReorder(r *http.Request) ([]content.Placement, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", content.ErrInvalid, err)
	}

	keyErrs, err := reorderSchema.ValidateBytes(r.Context(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", content.ErrInvalid, err)
	}
	if len(keyErrs) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", content.ErrInvalid, keyErrs[0].PropertyPath, keyErrs[0].Message)
	}

	var req struct {
		Items []content.Placement `json:"items"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", content.ErrInvalid, err)
	}

	return req.Items, nil
}
