package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Format selects which serialization a manifest document is decoded as.
// The manifest file is JSON or TOML, chosen by the caller rather than
// sniffed.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
)

// Parse decodes a single manifest document in the given format. It does
// not validate — call Validate separately, keeping decode and validate as
// two distinct passes.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding JSON manifest: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding TOML manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown manifest format")
	}
	return &m, nil
}

// ParseDocuments decodes a manifest file that may hold either a single
// document or a JSON array of documents — see SelectCompatible for how one
// is picked. TOML has no top-level array syntax, so the array form is
// recognized only for FormatJSON; a TOML document is always a single
// manifest.
func ParseDocuments(data []byte, format Format) ([]*Manifest, error) {
	if format == FormatJSON {
		var arr []json.RawMessage
		if err := json.Unmarshal(data, &arr); err == nil {
			docs := make([]*Manifest, 0, len(arr))
			for i, raw := range arr {
				m, err := Parse(raw, FormatJSON)
				if err != nil {
					return nil, fmt.Errorf("document %d: %w", i, err)
				}
				docs = append(docs, m)
			}
			return docs, nil
		}
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	return []*Manifest{m}, nil
}
