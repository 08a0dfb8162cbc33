// Package tool wraps the external patch and binary-delta collaborators
// named here: the unified-diff "patch" utility and the "xdelta3"
// binary-delta utility, both invoked synchronously with the delta piped to
// their standard input.
package tool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// ApplyUnifiedPatch pipes diff into "patch -Nt -r-" against target:
// no-backup, reject file discarded to /dev/null via "-r-".
func ApplyUnifiedPatch(ctx context.Context, target string, diff []byte) error {
	cmd := exec.CommandContext(ctx, "patch", "-Nt", "-r-", target)
	return runWithStdin(cmd, diff, "apply patch")
}

// ApplyBinaryDelta pipes delta into "xdelta3 -d -f -s <target> /dev/stdin
// <target>", decoding a binary delta against target and overwriting it in
// place.
func ApplyBinaryDelta(ctx context.Context, target string, delta []byte) error {
	cmd := exec.CommandContext(ctx, "xdelta3", "-d", "-f", "-s", target, "/dev/stdin", target)
	return runWithStdin(cmd, delta, "apply binary patch")
}

func runWithStdin(cmd *exec.Cmd, input []byte, verb string) error {
	cmd.Stdin = bytes.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to %s: %w (%s)", verb, err, stderr.String())
	}
	return nil
}
