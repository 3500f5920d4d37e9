package media

import (
	"encoding/json"
	"strings"

	"evdealer/internal/domain/entities"
)

// BlobKind tags the shape a raw media field turned out to have.
type BlobKind int

const (
	BlobAbsent BlobKind = iota
	BlobObject
	BlobArray
	BlobString
)

func (k BlobKind) String() string {
	switch k {
	case BlobObject:
		return "object"
	case BlobArray:
		return "array"
	case BlobString:
		return "string"
	default:
		return "absent"
	}
}

// Blob is a parsed media field. Entries are the raw (not yet normalized)
// values in encounter order; entries that are not usable strings are dropped.
type Blob struct {
	Kind    BlobKind
	Entries []string
}

// ParseBlob classifies a raw media field once. It never fails: content that
// looks like JSON but does not parse is reported as absent.
//
// Accepted shapes:
//   - {"urls": [...]} where items are strings or {"url": "..."}
//   - [...] with the same item shapes
//   - a JSON-encoded string, or a bare path/URL
func ParseBlob(raw entities.RawMedia) Blob {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return Blob{Kind: BlobAbsent}
	}

	switch s[0] {
	case '{':
		var obj struct {
			URLs []json.RawMessage `json:"urls"`
		}
		if err := json.Unmarshal([]byte(s), &obj); err != nil {
			return Blob{Kind: BlobAbsent}
		}
		return Blob{Kind: BlobObject, Entries: entriesOf(obj.URLs)}
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return Blob{Kind: BlobAbsent}
		}
		return Blob{Kind: BlobArray, Entries: entriesOf(arr)}
	case '"':
		var inner string
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			return Blob{Kind: BlobAbsent}
		}
		// a string that itself holds an encoded document
		return ParseBlob(entities.RawMedia(inner))
	default:
		return Blob{Kind: BlobString, Entries: []string{s}}
	}
}

func entriesOf(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v, ok := entryOf(item); ok {
			out = append(out, v)
		}
	}
	return out
}

func entryOf(item json.RawMessage) (string, bool) {
	var v any
	if err := json.Unmarshal(item, &v); err != nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, strings.TrimSpace(t) != ""
	case map[string]any:
		if u, ok := t["url"].(string); ok && strings.TrimSpace(u) != "" {
			return u, true
		}
	}
	return "", false
}
