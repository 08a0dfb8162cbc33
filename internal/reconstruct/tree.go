package reconstruct

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aosc-dev/april-go/internal/archive"
)

// materializeTree writes an unpacked tar member map onto the real
// filesystem under scratchDir/subdir, since file operations (move, copy,
// patch, ...) act on real files rather than in-memory byte maps.
func materializeTree(scratchDir, subdir string, files map[string][]byte) error {
	for name, content := range files {
		rel := strings.TrimPrefix(filepath.FromSlash(name), "./")
		if rel == "" || rel == "." {
			continue
		}
		dest := filepath.Join(scratchDir, subdir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		mode := os.FileMode(0644)
		if subdir == "DEBIAN" && isMaintainerScript(rel) {
			mode = 0755
		}
		if err := os.WriteFile(dest, content, mode); err != nil {
			return err
		}
	}
	return nil
}

func isMaintainerScript(name string) bool {
	switch name {
	case "preinst", "postinst", "prerm", "postrm":
		return true
	}
	return false
}

// collectTree walks scratchDir back into an archive.Package, splitting the
// DEBIAN/ subtree into ControlFiles and everything else into DataFiles.
func collectTree(scratchDir string) (*archive.Package, error) {
	pkg := &archive.Package{
		ControlFiles: make(map[string][]byte),
		DataFiles:    make(map[string][]byte),
	}

	err := filepath.Walk(scratchDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(scratchDir, path)
		if err != nil {
			return err
		}
		relSlash := filepath.ToSlash(rel)
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if relSlash == "DEBIAN" || strings.HasPrefix(relSlash, "DEBIAN/") {
			name := "./" + strings.TrimPrefix(relSlash, "DEBIAN/")
			pkg.ControlFiles[name] = data
			pkg.ControlOrder = append(pkg.ControlOrder, name)
		} else {
			name := "./" + relSlash
			pkg.DataFiles[name] = data
			pkg.DataOrder = append(pkg.DataOrder, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(pkg.ControlOrder)
	sort.Strings(pkg.DataOrder)
	return pkg, nil
}
