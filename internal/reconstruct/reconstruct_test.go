package reconstruct

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aosc-dev/april-go/internal/archive"
	"github.com/aosc-dev/april-go/internal/control"
	"github.com/aosc-dev/april-go/internal/manifest"
	"github.com/aosc-dev/april-go/internal/planner"
)

func buildMinimalDeb(t *testing.T, controlBody string) string {
	t.Helper()
	pkg := &archive.Package{
		DebianBinary: "2.0\n",
		ControlFiles: map[string][]byte{"./control": []byte(controlBody)},
		ControlOrder: []string{"./control"},
		DataFiles:    map[string][]byte{"./usr/bin/foo": []byte("binary")},
		DataOrder:    []string{"./usr/bin/foo"},
	}
	data, err := archive.Pack(pkg)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "foo_1.0-1.deb")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// End-to-end reconstruction scenario, per the worked example: a version
// bump plus a Depends list edit produces the expected field values in the
// repacked control file.
func TestReconstructEndToEnd(t *testing.T) {
	debPath := buildMinimalDeb(t, "Package: foo\nVersion: 1.0-1\nDepends: a, b\n")

	m := &manifest.Manifest{
		Schema: "0",
		Overrides: manifest.Overrides{
			Version: strPtr("1.0-2"),
			Depends: []string{"+c", "-a"},
		},
	}
	plan := planner.Plan(m)

	exec := NewExecutor()
	outPath, err := exec.Reconstruct(context.Background(), debPath, plan)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(debPath), "foo_1.0-1.repacked.deb"), outPath)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	pkg, err := archive.Unpack(out)
	require.NoError(t, err)

	record, err := control.ParseString(string(pkg.ControlFiles["./control"]))
	require.NoError(t, err)
	main := record.Main()

	pkgName, _ := main.Get("Package")
	version, _ := main.Get("Version")
	depends, _ := main.Get("Depends")
	assert.Equal(t, "foo", pkgName)
	assert.Equal(t, "1.0-2", version)
	assert.Equal(t, "b, c", depends)
}

// A PatchFile action whose path traverses outside the scratch root must
// fail with a path-safety error and must not touch the real filesystem
// outside the temp directory.
func TestReconstructRejectsPathTraversal(t *testing.T) {
	debPath := buildMinimalDeb(t, "Package: foo\nVersion: 1.0-1\n")

	plan := []planner.Action{
		{Kind: planner.KindPatchFile, Path: "../../etc/passwd", FileOp: manifest.FileOperation{Action: manifest.ActionRemove}},
	}

	exec := NewExecutor()
	_, err := exec.Reconstruct(context.Background(), debPath, plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes scratch root")
}

func TestReconstructMkdirAndAdd(t *testing.T) {
	debPath := buildMinimalDeb(t, "Package: foo\nVersion: 1.0-1\n")

	plan := []planner.Action{
		{Kind: planner.KindPatchFile, Path: "etc/foo", FileOp: manifest.FileOperation{Action: manifest.ActionMkdir}},
		{Kind: planner.KindPatchFile, Path: "etc/foo/bar.conf", FileOp: manifest.FileOperation{Action: manifest.ActionAdd, Arg: "file::data:,hello"}},
	}

	exec := NewExecutor()
	outPath, err := exec.Reconstruct(context.Background(), debPath, plan)
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	pkg, err := archive.Unpack(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), pkg.DataFiles["./etc/foo/bar.conf"])
}

func strPtr(s string) *string { return &s }
