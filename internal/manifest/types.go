// Package manifest defines the typed APRIL document — the declarative
// patch description a package variant carries — together with its parsing,
// validation, list-patch modifier expansion, and multi-document selection.
package manifest

// Manifest describes patches for one package variant.
type Manifest struct {
	Schema             string    `json:"schema" toml:"schema"`
	Name               string    `json:"name" toml:"name"`
	CompatibleVersions string    `json:"compatible_versions" toml:"compatible_versions"`
	TotalConversion    bool      `json:"total_conversion" toml:"total_conversion"`
	Overrides          Overrides `json:"overrides" toml:"overrides"`
	Files              map[string]FileOperation `json:"files,omitempty" toml:"files,omitempty"`
}

// Overrides mirrors the Debian control schema's optional patchable surface.
//
// Scalar string/bool/uint fields use pointers so that "absent" (nil) and
// "present but empty" are distinguishable, matching the list-valued fields'
// own absent-vs-empty distinction.
type Overrides struct {
	Name          *string `json:"name,omitempty" toml:"name,omitempty"`
	Version       *string `json:"version,omitempty" toml:"version,omitempty"`
	Arch          *string `json:"arch,omitempty" toml:"arch,omitempty"`
	Essential     *bool   `json:"essential,omitempty" toml:"essential,omitempty"`
	InstalledSize *uint64 `json:"installed_size,omitempty" toml:"installed_size,omitempty"`
	Section       *string `json:"section,omitempty" toml:"section,omitempty"`
	Description   *string `json:"description,omitempty" toml:"description,omitempty"`

	Depends     []string `json:"depends,omitempty" toml:"depends,omitempty"`
	Recommends  []string `json:"recommends,omitempty" toml:"recommends,omitempty"`
	Suggests    []string `json:"suggests,omitempty" toml:"suggests,omitempty"`
	Enhances    []string `json:"enhances,omitempty" toml:"enhances,omitempty"`
	PreDepends  []string `json:"pre_depends,omitempty" toml:"pre_depends,omitempty"`
	Breaks      []string `json:"breaks,omitempty" toml:"breaks,omitempty"`
	Conflicts   []string `json:"conflicts,omitempty" toml:"conflicts,omitempty"`
	Replaces    []string `json:"replaces,omitempty" toml:"replaces,omitempty"`
	Provides    []string `json:"provides,omitempty" toml:"provides,omitempty"`
	Conffiles   []string `json:"conffiles,omitempty" toml:"conffiles,omitempty"`

	Scripts ScriptOverrides `json:"scripts" toml:"scripts"`
}

// ScriptOverrides carries optional replacement bodies for each maintainer
// script. A nil pointer means "no change"; a pointer to an empty string
// means "remove this script".
type ScriptOverrides struct {
	Preinst  *string `json:"preinst,omitempty" toml:"preinst,omitempty"`
	Postinst *string `json:"postinst,omitempty" toml:"postinst,omitempty"`
	Prerm    *string `json:"prerm,omitempty" toml:"prerm,omitempty"`
	Postrm   *string `json:"postrm,omitempty" toml:"postrm,omitempty"`
	Triggers *string `json:"triggers,omitempty" toml:"triggers,omitempty"`
}

// FileOperation is the tagged-variant record for one installed-path patch.
// Arg's interpretation depends on Action: a path for move/copy/link/divert,
// a resource URI for patch/binary-patch/overwrite/add, a textual mode
// (e.g. "0644") for chmod, and unused for remove/track/mkdir.
type FileOperation struct {
	Action string `json:"action" toml:"action"`
	Arg    string `json:"arg,omitempty" toml:"arg,omitempty"`
	Phase  string `json:"phase,omitempty" toml:"phase,omitempty"`
}

const (
	PhaseUnpack   = "unpack"
	PhasePostinst = "postinst"
)

// EffectivePhase returns the operation's phase, defaulting to "unpack"
// when Phase is unset.
func (f FileOperation) EffectivePhase() string {
	if f.Phase == "" {
		return PhaseUnpack
	}
	return f.Phase
}

const (
	ActionRemove      = "remove"
	ActionMove        = "move"
	ActionCopy        = "copy"
	ActionLink        = "link"
	ActionPatch       = "patch"
	ActionBinaryPatch = "binary-patch"
	ActionDivert      = "divert"
	ActionTrack       = "track"
	ActionOverwrite   = "overwrite"
	ActionAdd         = "add"
	ActionChmod       = "chmod"
	ActionMkdir       = "mkdir"
)
