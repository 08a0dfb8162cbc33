// Package reconstruct is the executor: it unpacks one .deb into a scratch
// directory, replays a planner.Action sequence against the control record
// and payload tree, and repacks the result.
package reconstruct

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aosc-dev/april-go/internal/archive"
	"github.com/aosc-dev/april-go/internal/control"
	"github.com/aosc-dev/april-go/internal/planner"
	"github.com/aosc-dev/april-go/internal/resource"
)

// Mode selects whether lifecycle markers are inert (reconstruction) or
// drive an Installer (installation).
type Mode int

const (
	ModeReconstruct Mode = iota
	ModeInstall
)

// Executor runs a plan against one .deb.
type Executor struct {
	Mode      Mode
	Installer Installer // required when Mode == ModeInstall
	Fetcher   resource.Fetcher

	// Keyring is the armored OpenPGP public keyring trusted for resource
	// URIs carrying a "pgpsig=" option. Left nil, resources with no
	// signature still fetch fine; one that does carry a signature fails
	// closed with no keyring configured.
	Keyring []byte
}

// NewExecutor returns an Executor configured for reconstruction mode with
// the default HTTP client as its resource fetcher.
func NewExecutor() *Executor {
	return &Executor{Mode: ModeReconstruct, Fetcher: http.DefaultClient}
}

// Reconstruct unpacks debPath, applies plan, and writes a repacked .deb
// alongside it with a ".repacked.deb" extension, returning that path.
func (e *Executor) Reconstruct(ctx context.Context, debPath string, plan []planner.Action) (string, error) {
	data, err := os.ReadFile(debPath)
	if err != nil {
		return "", fmt.Errorf("reading package %s: %w", debPath, err)
	}
	pkg, err := archive.Unpack(data)
	if err != nil {
		return "", fmt.Errorf("unpacking package %s: %w", debPath, err)
	}

	scratchDir, err := os.MkdirTemp(filepath.Dir(debPath), "aprilgo-*")
	if err != nil {
		return "", fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	if err := materializeTree(scratchDir, "DEBIAN", pkg.ControlFiles); err != nil {
		return "", fmt.Errorf("materializing control tree: %w", err)
	}
	if err := materializeTree(scratchDir, "", pkg.DataFiles); err != nil {
		return "", fmt.Errorf("materializing payload tree: %w", err)
	}

	controlPath := filepath.Join(scratchDir, "DEBIAN", "control")
	controlData, err := os.ReadFile(controlPath)
	if err != nil {
		return "", fmt.Errorf("reading control file: %w", err)
	}
	record, err := control.ParseString(string(controlData))
	if err != nil {
		return "", fmt.Errorf("parsing control file: %w", err)
	}

	for _, action := range plan {
		if err := e.apply(ctx, scratchDir, record, action); err != nil {
			return "", fmt.Errorf("applying action %v: %w", action.Kind, err)
		}
	}

	var buf strings.Builder
	if _, err := record.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("serializing control file: %w", err)
	}
	if err := os.WriteFile(controlPath, []byte(buf.String()), 0644); err != nil {
		return "", fmt.Errorf("writing control file: %w", err)
	}

	newPkg, err := collectTree(scratchDir)
	if err != nil {
		return "", fmt.Errorf("collecting scratch tree: %w", err)
	}
	newPkg.DebianBinary = pkg.DebianBinary
	out, err := archive.Pack(newPkg)
	if err != nil {
		return "", fmt.Errorf("repacking package: %w", err)
	}

	outputPath := strings.TrimSuffix(debPath, filepath.Ext(debPath)) + ".repacked.deb"
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return "", fmt.Errorf("writing repacked package: %w", err)
	}
	return outputPath, nil
}

// apply dispatches one action. Lifecycle markers are no-ops in
// reconstruction mode and Installer calls in installation mode; everything
// else mutates the in-flight control record or scratch filesystem
// directly.
func (e *Executor) apply(ctx context.Context, root string, record *control.Record, action planner.Action) error {
	switch action.Kind {
	case planner.KindPreconfigPackage:
		return e.drive(ctx, func(i Installer) error { return i.Preconfig(ctx) })
	case planner.KindUnpackPackage:
		return e.drive(ctx, func(i Installer) error { return i.Unpack(ctx) })
	case planner.KindExtractPackage:
		return e.drive(ctx, func(i Installer) error { return i.Extract(ctx) })
	case planner.KindConfigurePackage:
		return e.drive(ctx, func(i Installer) error { return i.Configure(ctx) })
	case planner.KindInstallPackage:
		return e.drive(ctx, func(i Installer) error { return i.Install(ctx) })

	case planner.KindDropControlData:
		*record = *control.Empty()
		return nil

	case planner.KindPutControlChunk:
		chunk, err := control.ParseString(action.ControlChunk)
		if err != nil {
			return fmt.Errorf("parsing control chunk: %w", err)
		}
		*record = *chunk
		return nil

	case planner.KindPatchField:
		for _, para := range record.Paragraphs {
			ApplyFieldPatch(para, action.Field, action.FieldKind, action.Value)
		}
		return nil

	case planner.KindPatchScript:
		return applyScriptPatch(root, action)

	case planner.KindPatchFile:
		return e.applyFileOp(ctx, root, action.Path, action.FileOp)

	default:
		return fmt.Errorf("unrecognized action kind %v", action.Kind)
	}
}

// drive invokes fn against the configured Installer in installation mode;
// in reconstruction mode lifecycle markers carry no executable behavior.
func (e *Executor) drive(ctx context.Context, fn func(Installer) error) error {
	if e.Mode != ModeInstall {
		return nil
	}
	if e.Installer == nil {
		return fmt.Errorf("installation mode requires an Installer")
	}
	return fn(e.Installer)
}

// applyScriptPatch resolves <scratch>/DEBIAN/<name> and applies Replace
// (write), Append (create-or-append), or Remove (unlink), matching how
// PatchField treats Append/Replace/Remove for ordinary fields.
func applyScriptPatch(root string, action planner.Action) error {
	target, err := resolvePath(root, filepath.Join("DEBIAN", string(action.Script)))
	if err != nil {
		return err
	}

	switch action.ScriptKind {
	case planner.Remove:
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil

	case planner.Append:
		f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0755)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = f.WriteString(action.Value)
		return err

	case planner.Replace:
		if action.Value == "" {
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		}
		return os.WriteFile(target, []byte(action.Value), 0755)

	default:
		return fmt.Errorf("unrecognized patch-script kind %v", action.ScriptKind)
	}
}
