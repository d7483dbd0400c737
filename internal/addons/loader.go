// SPDX-License-Identifier: MPL-2.0

package addons

import (
	"fmt"
	"path/filepath"
	"time"

	"faros-cli/internal/pkggraph"
)

const (
	// KindDirectExecutable marks a loaded module that is itself an addon
	// factory; it is used as-is.
	KindDirectExecutable ModuleKind = iota
	// KindOptionsRecord marks a loaded module that is a plain options
	// record to be merged into the base addon.
	KindOptionsRecord
)

type (
	// ModuleKind is the closed variant tag of a LoadedModule. The shape
	// decision is made once, at load time, by the module loader.
	ModuleKind int

	// Options is the plain key/value record an options-shaped addon module
	// exports.
	Options map[string]any

	// Addon is an instantiated addon. The concrete behavior lives with the
	// host framework; this package only routes construction.
	Addon interface {
		Name() string
	}

	// AddonFactory instantiates an addon for a parent (the project or the
	// addon that discovered it).
	AddonFactory func(parent any) (Addon, error)

	// LoadedModule is the result of dynamically loading an addon entry
	// file. Exactly one of the variant payloads is meaningful, selected by
	// Kind: Factory for KindDirectExecutable, Options for
	// KindOptionsRecord. Root and Pkg are optional presets carried by a
	// direct-executable module; empty values are defaulted by the
	// constructor loader and preset values are never overwritten.
	LoadedModule struct {
		Kind    ModuleKind
		Factory AddonFactory
		Options Options
		Root    string
		Pkg     *pkggraph.Manifest
	}

	// ModuleLoader resolves an addon entry file path to its executable
	// module. The dynamic-load mechanism is the host runtime's concern;
	// load failures propagate to the caller unchanged.
	ModuleLoader interface {
		Load(mainPath string) (*LoadedModule, error)
	}

	// BaseAddon turns an options record into an addon factory. Provided by
	// the host framework's base addon abstraction.
	BaseAddon interface {
		Extend(opts Options) AddonFactory
	}

	// Constructor is the loadable handle for one addon: its factory, the
	// resolved entry file, and the root/pkg the factory will see. The
	// timing fields are populated by the caller, not computed here.
	Constructor struct {
		Factory  AddonFactory
		MainPath string
		Root     string
		Pkg      *pkggraph.Manifest

		LookupDuration time.Duration
		InitDuration   time.Duration
	}

	// ConstructorLoader lazily loads addon constructors, memoizing one per
	// node via the node's memo slot.
	ConstructorLoader struct {
		Loader ModuleLoader
		Base   BaseAddon
	}
)

// Constructor returns the addon constructor for p, loading and memoizing
// it on first use. Callers must only pass nodes known to be addons; no
// check is performed here. Loader failures are returned as-is and are not
// memoized, so a later call retries the load.
func (l *ConstructorLoader) Constructor(p *pkggraph.Package) (*Constructor, error) {
	if v, ok := p.ConstructorMemo().Get(); ok {
		return v.(*Constructor), nil
	}

	mod, err := l.Loader.Load(p.AddonMainPath)
	if err != nil {
		return nil, err
	}

	ctor := &Constructor{
		MainPath: p.AddonMainPath,
		Root:     filepath.Dir(p.AddonMainPath),
		Pkg:      p.Manifest,
	}

	switch mod.Kind {
	case KindDirectExecutable:
		ctor.Factory = mod.Factory
		if mod.Root != "" {
			ctor.Root = mod.Root
		}
		if mod.Pkg != nil {
			ctor.Pkg = mod.Pkg
		}
	case KindOptionsRecord:
		opts := make(Options, len(mod.Options)+2)
		for k, v := range mod.Options {
			opts[k] = v
		}
		if _, ok := opts["root"]; !ok {
			opts["root"] = ctor.Root
		}
		if _, ok := opts["pkg"]; !ok {
			opts["pkg"] = ctor.Pkg
		}
		ctor.Factory = l.Base.Extend(opts)
	default:
		return nil, fmt.Errorf("module %s has unknown kind %d", p.AddonMainPath, mod.Kind)
	}

	p.ConstructorMemo().Fill(ctor)
	return ctor, nil
}
