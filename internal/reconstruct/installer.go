package reconstruct

import "context"

// Installer translates the five lifecycle markers into package-manager
// invocations for installation mode, a documented extension point rather
// than an implemented one: no production implementation ships here, since
// the package manager itself is an external collaborator. FakeInstaller
// lets tests assert call ordering against it.
type Installer interface {
	Preconfig(ctx context.Context) error
	Unpack(ctx context.Context) error
	Extract(ctx context.Context) error
	Configure(ctx context.Context) error
	Install(ctx context.Context) error
}

// FakeInstaller records which methods were called, in order, without
// driving any real package manager.
type FakeInstaller struct {
	Calls []string
}

func (f *FakeInstaller) Preconfig(context.Context) error { f.Calls = append(f.Calls, "preconfig"); return nil }
func (f *FakeInstaller) Unpack(context.Context) error    { f.Calls = append(f.Calls, "unpack"); return nil }
func (f *FakeInstaller) Extract(context.Context) error   { f.Calls = append(f.Calls, "extract"); return nil }
func (f *FakeInstaller) Configure(context.Context) error { f.Calls = append(f.Calls, "configure"); return nil }
func (f *FakeInstaller) Install(context.Context) error   { f.Calls = append(f.Calls, "install"); return nil }
