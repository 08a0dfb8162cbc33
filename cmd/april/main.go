// Command april reconstructs a Debian .deb against an APRIL manifest.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aosc-dev/april-go/internal/archive"
	"github.com/aosc-dev/april-go/internal/control"
	"github.com/aosc-dev/april-go/internal/manifest"
	"github.com/aosc-dev/april-go/internal/planner"
	"github.com/aosc-dev/april-go/internal/reconstruct"
)

type options struct {
	debPath     string
	manifest    string
	format      manifest.Format
	reconstruct bool
	keyringPath string
}

func main() {
	opts, exit := parseArgs()
	if exit {
		return
	}

	if err := run(opts); err != nil {
		showError(err)
		os.Exit(1)
	}
}

func run(opts options) error {
	manifestData, err := os.ReadFile(opts.manifest)
	if err != nil {
		return fmt.Errorf("reading manifest %s: %w", opts.manifest, err)
	}

	docs, err := manifest.ParseDocuments(manifestData, opts.format)
	if err != nil {
		return fmt.Errorf("parsing manifest %s: %w", opts.manifest, err)
	}

	debData, err := os.ReadFile(opts.debPath)
	if err != nil {
		return fmt.Errorf("reading package %s: %w", opts.debPath, err)
	}
	digest := sha256.Sum256(debData)

	targetVersion, err := controlVersion(debData)
	if err != nil {
		showWarning(fmt.Sprintf("could not determine installed version of %s: %s", opts.debPath, err.Error()))
	}

	doc, err := manifest.SelectCompatible(docs, targetVersion, digest[:])
	if err != nil {
		return fmt.Errorf("selecting manifest document: %w", err)
	}
	if err := manifest.Validate(doc); err != nil {
		return fmt.Errorf("invalid manifest %s: %w", opts.manifest, err)
	}

	plan := planner.Plan(doc)

	if !opts.reconstruct {
		b, _ := json.MarshalIndent(plan, "", "  ")
		fmt.Println(string(b))
		return nil
	}

	exec := reconstruct.NewExecutor()
	if opts.keyringPath != "" {
		keyring, err := os.ReadFile(opts.keyringPath)
		if err != nil {
			return fmt.Errorf("reading keyring %s: %w", opts.keyringPath, err)
		}
		exec.Keyring = keyring
	}
	outPath, err := exec.Reconstruct(context.Background(), opts.debPath, plan)
	if err != nil {
		return fmt.Errorf("reconstructing %s: %w", opts.debPath, err)
	}
	fmt.Println(outPath)
	return nil
}

// controlVersion unpacks data far enough to read the installed package's
// Version field, used to select among multiple compatible_versions
// manifest documents. Best-effort: a failure here is a warning, not a
// fatal error, since a manifest with no compatible_versions constraint
// never needs it.
func controlVersion(data []byte) (string, error) {
	pkg, err := archive.Unpack(data)
	if err != nil {
		return "", err
	}
	controlData, ok := pkg.ControlFiles["./control"]
	if !ok {
		controlData, ok = pkg.ControlFiles["control"]
	}
	if !ok {
		return "", fmt.Errorf("package has no control file")
	}
	record, err := control.ParseString(string(controlData))
	if err != nil {
		return "", err
	}
	version, _ := record.Main().Get("Version")
	return version, nil
}

func parseArgs() (options, bool) {
	var opts options
	opts.format = manifest.FormatJSON

	args := os.Args[1:]
	hasError := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help":
			printHelp()
			return opts, true
		case arg == "-r" || arg == "--reconstruct":
			opts.reconstruct = true
		case arg == "--keyring":
			i++
			if i >= len(args) {
				showError(fmt.Errorf("%s requires an argument", arg))
				hasError = true
				continue
			}
			opts.keyringPath = args[i]
		case arg == "-c" || arg == "--config":
			i++
			if i >= len(args) {
				showError(fmt.Errorf("%s requires an argument", arg))
				hasError = true
				continue
			}
			opts.manifest = args[i]
			if strings.HasSuffix(opts.manifest, ".toml") {
				opts.format = manifest.FormatTOML
			}
		case strings.HasPrefix(arg, "-"):
			showError(fmt.Errorf("unrecognized argument: %q", arg))
			hasError = true
		default:
			if opts.debPath == "" {
				opts.debPath = arg
			} else {
				showError(fmt.Errorf("unrecognized argument: %q", arg))
				hasError = true
			}
		}
	}

	if hasError {
		printHelp()
		os.Exit(1)
	}
	if opts.debPath == "" {
		showError(fmt.Errorf("no input .deb given"))
		os.Exit(1)
	}
	if opts.manifest == "" {
		showError(fmt.Errorf("no manifest given (use -c/--config)"))
		os.Exit(1)
	}
	return opts, false
}

func printHelp() {
	program := filepath.Base(os.Args[0])
	fmt.Printf("Usage: %s <options> <package.deb>\n\nOptions:\n", program)
	fmt.Println("  -c, --config <file>\tAPRIL manifest to apply (JSON or .toml)")
	fmt.Println("  -r, --reconstruct\tWrite a repacked package instead of only printing its plan")
	fmt.Println("  --keyring <file>\tArmored OpenPGP public keyring trusted for resource pgpsig= options")
}

func showError(err error) {
	fmt.Fprintf(os.Stderr, "\x1b[31m\x1b[1m!!\x1b[0m %s\n", err.Error())
}

func showWarning(msg string) {
	fmt.Fprintf(os.Stderr, "\x1b[33m\x1b[1m>>\x1b[0m %s\n", msg)
}
