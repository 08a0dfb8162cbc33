package planner

import (
	"testing"

	"github.com/aosc-dev/april-go/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func kindsOf(actions []Action) []Kind {
	kinds := make([]Kind, len(actions))
	for i, a := range actions {
		kinds[i] = a.Kind
	}
	return kinds
}

func indexOfKind(actions []Action, k Kind) int {
	for i, a := range actions {
		if a.Kind == k {
			return i
		}
	}
	return -1
}

func TestLifecycleMarkerOrder(t *testing.T) {
	m := &manifest.Manifest{Schema: "0"}
	actions := Plan(m)

	pre := indexOfKind(actions, KindPreconfigPackage)
	ext := indexOfKind(actions, KindExtractPackage)
	cfg := indexOfKind(actions, KindConfigurePackage)
	require.True(t, pre >= 0 && ext >= 0 && cfg >= 0)
	assert.Less(t, pre, ext)
	assert.Less(t, ext, cfg)
}

func TestTotalConversionEmitsDropControlDataFirst(t *testing.T) {
	m := &manifest.Manifest{Schema: "0", TotalConversion: true}
	actions := Plan(m)
	require.NotEmpty(t, actions)
	assert.Equal(t, KindDropControlData, actions[0].Kind)
}

func TestPreUnpackScriptsPrecedePreconfig(t *testing.T) {
	m := &manifest.Manifest{
		Schema: "0",
		Overrides: manifest.Overrides{
			Scripts: manifest.ScriptOverrides{
				Preinst:  strp("echo hi"),
				Prerm:    strp("echo bye"),
				Triggers: strp("interest trigger"),
			},
		},
	}
	actions := Plan(m)
	pre := indexOfKind(actions, KindPreconfigPackage)
	for _, a := range actions {
		if a.Kind == KindPatchScript && (a.Script == ScriptPreinst || a.Script == ScriptPrerm || a.Script == ScriptTriggers) {
			assert.Less(t, indexOfKindAction(actions, a), pre)
		}
	}
}

func indexOfKindAction(actions []Action, target Action) int {
	for i, a := range actions {
		if a == target {
			return i
		}
	}
	return -1
}

func TestPostScriptsBetweenExtractAndConfigure(t *testing.T) {
	m := &manifest.Manifest{
		Schema: "0",
		Overrides: manifest.Overrides{
			Scripts: manifest.ScriptOverrides{
				Postinst: strp("echo post"),
				Postrm:   strp(""),
			},
		},
	}
	actions := Plan(m)
	ext := indexOfKind(actions, KindExtractPackage)
	cfg := indexOfKind(actions, KindConfigurePackage)

	foundPostinst, foundPostrm := false, false
	for i, a := range actions {
		if a.Kind == KindPatchScript && a.Script == ScriptPostinst {
			assert.Greater(t, i, ext)
			assert.Less(t, i, cfg)
			assert.Equal(t, Replace, a.ScriptKind)
			foundPostinst = true
		}
		if a.Kind == KindPatchScript && a.Script == ScriptPostrm {
			assert.Greater(t, i, ext)
			assert.Less(t, i, cfg)
			assert.Equal(t, Remove, a.ScriptKind)
			foundPostrm = true
		}
	}
	assert.True(t, foundPostinst)
	assert.True(t, foundPostrm)
}

func TestListPatchModifiers(t *testing.T) {
	m := &manifest.Manifest{
		Schema: "0",
		Overrides: manifest.Overrides{
			Depends: []string{"+c", "-a", "bare"},
		},
	}
	actions := Plan(m)
	var fieldActions []Action
	for _, a := range actions {
		if a.Kind == KindPatchField && a.Field == "Depends" {
			fieldActions = append(fieldActions, a)
		}
	}
	require.Len(t, fieldActions, 3)
	assert.Equal(t, Append, fieldActions[0].FieldKind)
	assert.Equal(t, "c", fieldActions[0].Value)
	assert.Equal(t, Remove, fieldActions[1].FieldKind)
	assert.Equal(t, "a", fieldActions[1].Value)
	assert.Equal(t, Append, fieldActions[2].FieldKind)
	assert.Equal(t, "bare", fieldActions[2].Value)
}

func TestEmptyListClearsField(t *testing.T) {
	m := &manifest.Manifest{
		Schema: "0",
		Overrides: manifest.Overrides{
			Provides: []string{},
		},
	}
	actions := Plan(m)
	var found *Action
	for i := range actions {
		if actions[i].Kind == KindPatchField && actions[i].Field == "Provides" {
			found = &actions[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, Replace, found.FieldKind)
	assert.Equal(t, "", found.Value)
}

func TestFileOperationPhases(t *testing.T) {
	m := &manifest.Manifest{
		Schema: "0",
		Files: map[string]manifest.FileOperation{
			"/etc/foo.conf": {Action: manifest.ActionOverwrite, Arg: "file::sha256=abc::https://example.com/foo.conf"},
			"/usr/bin/foo":  {Action: manifest.ActionChmod, Arg: "0755", Phase: manifest.PhasePostinst},
		},
	}
	actions := Plan(m)
	ext := indexOfKind(actions, KindExtractPackage)
	cfg := indexOfKind(actions, KindConfigurePackage)

	foundUnpack, foundPostinst := false, false
	for i, a := range actions {
		if a.Kind == KindPatchFile && a.Path == "/etc/foo.conf" {
			assert.Greater(t, i, ext)
			assert.Less(t, i, cfg)
			foundUnpack = true
		}
		if a.Kind == KindPatchFile && a.Path == "/usr/bin/foo" {
			assert.Greater(t, i, cfg)
			foundPostinst = true
		}
	}
	assert.True(t, foundUnpack)
	assert.True(t, foundPostinst)
}

func TestConffilesPatch(t *testing.T) {
	m := &manifest.Manifest{
		Schema:    "0",
		Overrides: manifest.Overrides{Conffiles: []string{"/etc/a.conf", "/etc/b.conf"}},
	}
	actions := Plan(m)
	var found *Action
	for i := range actions {
		if actions[i].Kind == KindPatchScript && actions[i].Script == ScriptConffiles {
			found = &actions[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, Replace, found.ScriptKind)
	assert.Equal(t, "/etc/a.conf\n/etc/b.conf", found.Value)
}
