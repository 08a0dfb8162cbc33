package manifest

import "strings"

// EditKind distinguishes the three ways a list-valued override field can be
// patched: appending an item, removing an item, or wholesale replacement
// (only ever produced for the "clear the field" case).
type EditKind int

const (
	EditAppend EditKind = iota
	EditRemove
	EditReplace
)

// ListEdit is one edit produced by expanding a manifest list field's
// modifier syntax: "+x", "-x", bare "x", or the empty list.
type ListEdit struct {
	Kind  EditKind
	Value string
}

// ExpandList turns a raw override list into edits, per the list-patch
// syntax:
//   - nil (absent field): no edits at all.
//   - non-nil, empty (the JSON/TOML `[]`): a single Replace("") clearing the field.
//   - otherwise: one edit per non-empty item, in manifest order — "+x" appends,
//     "-x" removes, and a bare "x" appends, same as "+x".
//
// An empty string item is skipped entirely.
func ExpandList(raw []string) []ListEdit {
	if raw == nil {
		return nil
	}
	if len(raw) == 0 {
		return []ListEdit{{Kind: EditReplace, Value: ""}}
	}
	edits := make([]ListEdit, 0, len(raw))
	for _, item := range raw {
		if item == "" {
			continue
		}
		switch {
		case strings.HasPrefix(item, "+"):
			edits = append(edits, ListEdit{Kind: EditAppend, Value: item[1:]})
		case strings.HasPrefix(item, "-"):
			edits = append(edits, ListEdit{Kind: EditRemove, Value: item[1:]})
		default:
			edits = append(edits, ListEdit{Kind: EditAppend, Value: item})
		}
	}
	return edits
}
