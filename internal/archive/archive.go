// Package archive round-trips the ar+tar container a .deb file is: a flat
// ar archive of "debian-binary", "control.tar(.gz)" and "data.tar(.gz)".
// It deliberately covers only that subset — just enough to handle Debian
// packages — not a general-purpose ar/tar library. Members compressed any
// other way (e.g. xz) are not supported: Unpack rejects them.
package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/blakesmith/ar"
)

// Package is an unpacked .deb's three ar members, decompressed.
type Package struct {
	DebianBinary string // usually "2.0\n"
	ControlFiles map[string][]byte // path (relative to DEBIAN/) -> content
	DataFiles    map[string][]byte // path (relative to /) -> content
	DataOrder    []string
	ControlOrder []string
}

// Unpack reads a .deb's ar container (via blakesmith/ar.NewReader) and
// decompresses its two tar members into in-memory file maps, keyed by the
// path each tar entry names.
func Unpack(data []byte) (*Package, error) {
	r := ar.NewReader(bytes.NewReader(data))
	pkg := &Package{
		ControlFiles: make(map[string][]byte),
		DataFiles:    make(map[string][]byte),
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ar member: %w", err)
		}

		body := make([]byte, header.Size)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("reading ar member %q: %w", header.Name, err)
		}

		switch {
		case header.Name == "debian-binary":
			pkg.DebianBinary = string(body)
		case isMember(header.Name, "control.tar"):
			files, order, err := untar(body, header.Name)
			if err != nil {
				return nil, fmt.Errorf("unpacking %s: %w", header.Name, err)
			}
			pkg.ControlFiles = files
			pkg.ControlOrder = order
		case isMember(header.Name, "data.tar"):
			files, order, err := untar(body, header.Name)
			if err != nil {
				return nil, fmt.Errorf("unpacking %s: %w", header.Name, err)
			}
			pkg.DataFiles = files
			pkg.DataOrder = order
		default:
			return nil, fmt.Errorf("unrecognized ar member %q in .deb", header.Name)
		}
	}

	return pkg, nil
}

func isMember(name, prefix string) bool {
	return name == prefix || name == prefix+".gz"
}

func untar(data []byte, memberName string) (map[string][]byte, []string, error) {
	var tr *tar.Reader
	if len(memberName) > 3 && memberName[len(memberName)-3:] == ".gz" {
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		defer gzr.Close()
		tr = tar.NewReader(gzr)
	} else {
		tr = tar.NewReader(bytes.NewReader(data))
	}

	files := make(map[string][]byte)
	var order []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		buf := make([]byte, hdr.Size)
		if _, err := io.ReadFull(tr, buf); err != nil {
			return nil, nil, err
		}
		files[hdr.Name] = buf
		order = append(order, hdr.Name)
	}
	return files, order, nil
}

// Pack rebuilds a .deb's ar container from a Package's current state,
// always emitting gzip-compressed control.tar.gz and data.tar.gz members —
// dpkg-deb accepts either compressed or uncompressed members, and gzip is
// what dpkg-deb itself has defaulted to for years.
func Pack(pkg *Package) ([]byte, error) {
	var buf bytes.Buffer
	w := ar.NewWriter(&buf)
	if err := w.WriteGlobalHeader(); err != nil {
		return nil, fmt.Errorf("writing ar global header: %w", err)
	}

	debianBinary := pkg.DebianBinary
	if debianBinary == "" {
		debianBinary = "2.0\n"
	}
	if err := addMember(w, "debian-binary", []byte(debianBinary)); err != nil {
		return nil, err
	}

	controlTar, err := tarGzip(pkg.ControlFiles, pkg.ControlOrder)
	if err != nil {
		return nil, fmt.Errorf("building control.tar.gz: %w", err)
	}
	if err := addMember(w, "control.tar.gz", controlTar); err != nil {
		return nil, err
	}

	dataTar, err := tarGzip(pkg.DataFiles, pkg.DataOrder)
	if err != nil {
		return nil, fmt.Errorf("building data.tar.gz: %w", err)
	}
	if err := addMember(w, "data.tar.gz", dataTar); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func addMember(w *ar.Writer, name string, body []byte) error {
	header := &ar.Header{
		Name:    name,
		Size:    int64(len(body)),
		Mode:    0644,
		ModTime: time.Now(),
	}
	if err := w.WriteHeader(header); err != nil {
		return fmt.Errorf("writing ar header for %q: %w", name, err)
	}
	_, err := w.Write(body)
	if err != nil {
		return fmt.Errorf("writing ar body for %q: %w", name, err)
	}
	return nil
}

// tarGzip builds a gzip-compressed tar archive from a file map, writing
// entries in order (falling back to sorted keys for any path missing from
// order, e.g. one added after Unpack) so output is reproducible.
func tarGzip(files map[string][]byte, order []string) ([]byte, error) {
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)

	seen := make(map[string]bool, len(order))
	names := make([]string, 0, len(files))
	for _, name := range order {
		if _, ok := files[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range files {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	for _, name := range names {
		body := files[name]
		hdr := &tar.Header{
			Name:     name,
			Size:     int64(len(body)),
			Mode:     0644,
			Typeflag: tar.TypeReg,
			ModTime:  time.Now(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if _, err := tw.Write(body); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gzw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
