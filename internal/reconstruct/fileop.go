package reconstruct

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aosc-dev/april-go/internal/manifest"
	"github.com/aosc-dev/april-go/internal/resource"
	"github.com/aosc-dev/april-go/internal/tool"
)

// applyFileOp dispatches one PatchFile action's File Operation against the
// scratch tree rooted at root, per the filesystem-primitive mapping:
// remove unlinks, move renames, copy duplicates, link symlinks, overwrite
// and add replace/create from a fetched resource, chmod sets mode bits,
// mkdir creates a directory tree, patch and binary-patch pipe a fetched
// resource through the external patch/delta tools, and divert/track are
// recognized but not implemented.
func (e *Executor) applyFileOp(ctx context.Context, root, path string, op manifest.FileOperation) error {
	target, err := resolvePath(root, path)
	if err != nil {
		return err
	}

	switch op.Action {
	case manifest.ActionRemove:
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil

	case manifest.ActionMove:
		dest, err := resolvePath(root, op.Arg)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return os.Rename(target, dest)

	case manifest.ActionCopy:
		dest, err := resolvePath(root, op.Arg)
		if err != nil {
			return err
		}
		return copyFile(target, dest)

	case manifest.ActionLink:
		dest, err := resolvePath(root, op.Arg)
		if err != nil {
			return err
		}
		_ = os.Remove(target)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.Symlink(dest, target)

	case manifest.ActionPatch:
		diff, err := e.fetchResourceArg(ctx, op.Arg)
		if err != nil {
			return err
		}
		return tool.ApplyUnifiedPatch(ctx, target, diff)

	case manifest.ActionBinaryPatch:
		delta, err := e.fetchResourceArg(ctx, op.Arg)
		if err != nil {
			return err
		}
		return tool.ApplyBinaryDelta(ctx, target, delta)

	case manifest.ActionOverwrite:
		content, err := e.fetchResourceArg(ctx, op.Arg)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.WriteFile(target, content, 0644)

	case manifest.ActionAdd:
		if _, err := os.Lstat(target); err == nil {
			return fmt.Errorf("add: %s already exists", path)
		}
		content, err := e.fetchResourceArg(ctx, op.Arg)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.WriteFile(target, content, 0644)

	case manifest.ActionChmod:
		mode, err := strconv.ParseUint(op.Arg, 8, 32)
		if err != nil {
			return fmt.Errorf("chmod: invalid mode %q: %w", op.Arg, err)
		}
		return os.Chmod(target, os.FileMode(mode))

	case manifest.ActionMkdir:
		return os.MkdirAll(target, 0755)

	case manifest.ActionDivert:
		return fmt.Errorf("divert file operation not implemented")

	case manifest.ActionTrack:
		return fmt.Errorf("track file operation not implemented")

	default:
		return fmt.Errorf("unrecognized file operation %q", op.Action)
	}
}

func (e *Executor) fetchResourceArg(ctx context.Context, uri string) ([]byte, error) {
	r, err := resource.Resolve(uri)
	if err != nil {
		return nil, err
	}
	return resource.FetchVerified(ctx, e.Fetcher, r, e.Keyring)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode())
}
