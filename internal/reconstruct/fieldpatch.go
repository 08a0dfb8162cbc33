package reconstruct

import (
	"strings"

	"github.com/aosc-dev/april-go/internal/control"
	"github.com/aosc-dev/april-go/internal/planner"
)

// ApplyFieldPatch applies one PatchField action's edit to a single control
// paragraph:
//   - Remove splits the current value on ',', trims whitespace, and drops
//     any element equal to value or starting with "value (".
//   - Append joins with ", " (or sets outright when the field was empty).
//   - Replace with an empty value removes the field; otherwise it's set
//     outright.
func ApplyFieldPatch(para *control.Paragraph, field string, kind planner.PatchKind, value string) {
	current, _ := para.Get(field)
	switch kind {
	case planner.Remove:
		para.Set(field, removeItemFromList(current, value))
	case planner.Append:
		if current == "" {
			para.Set(field, value)
		} else {
			para.Set(field, current+", "+value)
		}
	case planner.Replace:
		if value == "" {
			para.Delete(field)
		} else {
			para.Set(field, value)
		}
	}
}

// removeItemFromList removes item from a comma-separated relation list,
// matching either the bare name or a "<item> ("-prefixed version-constrained
// entry (e.g. "bar (>= 1.2.0)").
func removeItemFromList(list, item string) string {
	if list == "" {
		return ""
	}
	parts := strings.Split(list, ",")
	kept := make([]string, 0, len(parts))
	prefix := item + " ("
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == item || strings.HasPrefix(p, prefix) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ", ")
}
