package manifest

import (
	"fmt"

	"github.com/aosc-dev/april-go/internal/errs"
)

// Validate checks the manifest's structural invariants. A manifest that
// fails validation is never handed to the planner.
func Validate(m *Manifest) error {
	var c errs.Collector

	if m.Schema != "0" {
		c.Addf("schema: must equal \"0\", got %q", m.Schema)
	}

	if m.TotalConversion {
		requireNonNilString(&c, "name", m.Overrides.Name)
		requireNonNilString(&c, "version", m.Overrides.Version)
		requireNonNilString(&c, "arch", m.Overrides.Arch)
		if m.Overrides.InstalledSize == nil {
			c.Addf("installed_size: required when total_conversion is true")
		}
		requireNonNilString(&c, "section", m.Overrides.Section)
		requireNonNilString(&c, "description", m.Overrides.Description)
		if m.Overrides.Depends == nil {
			c.Addf("depends: required when total_conversion is true")
		}
	}

	for path, op := range m.Files {
		if err := validateFileOperation(path, op); err != nil {
			c.Add(err)
		}
	}

	return c.Join()
}

func requireNonNilString(c *errs.Collector, field string, v *string) {
	if v == nil {
		c.Addf("%s: required when total_conversion is true", field)
	}
}

func validateFileOperation(path string, op FileOperation) error {
	switch op.Action {
	case ActionRemove, ActionMove, ActionCopy, ActionLink, ActionPatch,
		ActionBinaryPatch, ActionDivert, ActionTrack, ActionOverwrite,
		ActionAdd, ActionChmod, ActionMkdir:
	default:
		return fmt.Errorf("files[%q]: unknown action %q", path, op.Action)
	}
	switch op.Phase {
	case "", PhaseUnpack, PhasePostinst:
	default:
		return fmt.Errorf("files[%q]: unknown phase %q", path, op.Phase)
	}
	return nil
}
