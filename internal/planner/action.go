// Package planner lowers a validated manifest into the fixed, ordered
// sequence of low-level actions the executor replays against one .deb.
package planner

import "github.com/aosc-dev/april-go/internal/manifest"

// Kind distinguishes the members of the Action closed sum type.
type Kind int

const (
	KindPreconfigPackage Kind = iota
	KindUnpackPackage
	KindExtractPackage
	KindConfigurePackage
	KindInstallPackage
	KindDropControlData
	KindPutControlChunk
	KindPatchField
	KindPatchScript
	KindPatchFile
)

// PatchKind is shared between PatchField and PatchScript actions; it reuses
// manifest.EditKind's Append/Remove/Replace vocabulary rather than a second,
// parallel enum, since both are literally the same three-way choice.
type PatchKind = manifest.EditKind

const (
	Append  = manifest.EditAppend
	Remove  = manifest.EditRemove
	Replace = manifest.EditReplace
)

// Script names the five maintainer-script slots plus the conffiles list,
// which the executor patches the same way it patches a script body.
type Script string

const (
	ScriptPreinst   Script = "preinst"
	ScriptPostinst  Script = "postinst"
	ScriptPrerm     Script = "prerm"
	ScriptPostrm    Script = "postrm"
	ScriptConffiles Script = "conffiles"
	ScriptTriggers  Script = "triggers"
)

// Action is one step of a plan. Only the fields relevant to Kind are set;
// see the Kind-specific constructors below.
type Action struct {
	Kind Kind

	ControlChunk string // PutControlChunk

	Field     string    // PatchField
	FieldKind PatchKind // PatchField

	Script     Script    // PatchScript
	ScriptKind PatchKind // PatchScript

	Value string // PatchField / PatchScript content; for a PatchField Remove, the item to drop (ignored for a PatchScript Remove)

	Path   string                  // PatchFile
	FileOp manifest.FileOperation  // PatchFile
}

func preconfigPackage() Action   { return Action{Kind: KindPreconfigPackage} }
func extractPackage() Action     { return Action{Kind: KindExtractPackage} }
func configurePackage() Action   { return Action{Kind: KindConfigurePackage} }
func dropControlData() Action    { return Action{Kind: KindDropControlData} }

func patchField(field string, kind PatchKind, value string) Action {
	return Action{Kind: KindPatchField, Field: field, FieldKind: kind, Value: value}
}

func patchScript(script Script, kind PatchKind, value string) Action {
	return Action{Kind: KindPatchScript, Script: script, ScriptKind: kind, Value: value}
}

func patchFile(path string, op manifest.FileOperation) Action {
	return Action{Kind: KindPatchFile, Path: path, FileOp: op}
}
