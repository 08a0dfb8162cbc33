package planner

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aosc-dev/april-go/internal/manifest"
)

// Plan lowers a validated manifest into the fixed, install-lifecycle-ordered
// action sequence. It is a pure function: the same manifest always
// produces the same plan, and nothing here touches the filesystem.
func Plan(m *manifest.Manifest) []Action {
	var actions []Action
	o := m.Overrides

	if m.TotalConversion {
		actions = append(actions, dropControlData())
	}

	// 2. pre-unpack script patches
	actions = append(actions, scriptPatches(o.Scripts.Preinst, ScriptPreinst)...)
	actions = append(actions, scriptPatches(o.Scripts.Prerm, ScriptPrerm)...)
	actions = append(actions, scriptPatches(o.Scripts.Triggers, ScriptTriggers)...)

	// 3. field patches needed before pre-configuration
	actions = append(actions, listFieldPatches("Pre-Depends", o.PreDepends)...)
	actions = append(actions, scalarFieldPatches("Architecture", o.Arch)...)
	actions = append(actions, scalarFieldPatches("Package", o.Name)...)
	actions = append(actions, installedSizePatch(o.InstalledSize)...)

	// 4.
	actions = append(actions, preconfigPackage())

	// 5. conffiles
	actions = append(actions, conffilesPatch(o.Conffiles)...)

	// 6.
	actions = append(actions, extractPackage())

	// 7. remaining list-valued field patches
	actions = append(actions, listFieldPatches("Depends", o.Depends)...)
	actions = append(actions, listFieldPatches("Recommends", o.Recommends)...)
	actions = append(actions, listFieldPatches("Conflicts", o.Conflicts)...)
	actions = append(actions, listFieldPatches("Suggests", o.Suggests)...)
	actions = append(actions, listFieldPatches("Breaks", o.Breaks)...)
	actions = append(actions, listFieldPatches("Replaces", o.Replaces)...)
	actions = append(actions, listFieldPatches("Provides", o.Provides)...)

	// 8. scalar field patches
	actions = append(actions, scalarFieldPatches("Version", o.Version)...)
	actions = append(actions, scalarFieldPatches("Description", o.Description)...)
	actions = append(actions, scalarFieldPatches("Section", o.Section)...)
	actions = append(actions, essentialPatch(o.Essential)...)

	// 9. unpack-phase file operations
	actions = append(actions, fileOperations(m.Files, manifest.PhaseUnpack)...)

	// 10. post-install script patches
	actions = append(actions, scriptPatches(o.Scripts.Postinst, ScriptPostinst)...)
	actions = append(actions, scriptPatches(o.Scripts.Postrm, ScriptPostrm)...)

	// 11.
	actions = append(actions, configurePackage())

	// 12. postinst-phase file operations
	actions = append(actions, fileOperations(m.Files, manifest.PhasePostinst)...)

	return actions
}

// scriptPatches expands one optional script override: a nil pointer yields
// no action; an empty body yields Remove; a non-empty body yields Replace.
func scriptPatches(body *string, script Script) []Action {
	if body == nil {
		return nil
	}
	if *body == "" {
		return []Action{patchScript(script, Remove, "")}
	}
	return []Action{patchScript(script, Replace, *body)}
}

// conffilesPatch treats the conffiles list the same way the planner treats
// a script body: join with "\n", empty ⇒ Remove, non-empty ⇒ Replace. An
// absent (nil) list produces no action at all — distinct from a present but
// empty list, matching the absent-vs-empty rule list fields follow.
func conffilesPatch(conffiles []string) []Action {
	if conffiles == nil {
		return nil
	}
	if len(conffiles) == 0 {
		return []Action{patchScript(ScriptConffiles, Remove, "")}
	}
	return []Action{patchScript(ScriptConffiles, Replace, strings.Join(conffiles, "\n"))}
}

// listFieldPatches expands one list-valued override field's modifier
// syntax into PatchField actions, in manifest order.
func listFieldPatches(field string, raw []string) []Action {
	edits := manifest.ExpandList(raw)
	actions := make([]Action, 0, len(edits))
	for _, e := range edits {
		actions = append(actions, patchField(field, e.Kind, e.Value))
	}
	return actions
}

// scalarFieldPatches expands one optional scalar string override: nil means
// no action, empty string means Remove, anything else means Replace.
func scalarFieldPatches(field string, v *string) []Action {
	if v == nil {
		return nil
	}
	if *v == "" {
		return []Action{patchField(field, Remove, "")}
	}
	return []Action{patchField(field, Replace, *v)}
}

func installedSizePatch(v *uint64) []Action {
	if v == nil {
		return nil
	}
	return []Action{patchField("Installed-Size", Replace, strconv.FormatUint(*v, 10))}
}

func essentialPatch(v *bool) []Action {
	if v == nil {
		return nil
	}
	rendered := "no"
	if *v {
		rendered = "yes"
	}
	return []Action{patchField("Essential", Replace, rendered)}
}

// fileOperations returns PatchFile actions for every manifest.Files entry
// whose effective phase matches, ordered by path for reproducibility (the
// executor must accept any order within a phase, but a stable order makes
// plans deterministic and easy to assert against).
func fileOperations(files map[string]manifest.FileOperation, phase string) []Action {
	paths := make([]string, 0, len(files))
	for path, op := range files {
		if op.EffectivePhase() == phase {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	actions := make([]Action, 0, len(paths))
	for _, path := range paths {
		actions = append(actions, patchFile(path, files[path]))
	}
	return actions
}
