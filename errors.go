package assetcache

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the backing source has no bytes for the requested ID.
	ErrNotFound = errors.New("assetcache: asset not found")

	// ErrCyclicDependency means a load re-entered a Key that is already being
	// loaded on the same call chain. The load fails instead of blocking.
	ErrCyclicDependency = errors.New("assetcache: cyclic dependency")

	// ErrNoDefinition means no asset definition is registered for the Go type
	// or type tag used in a load.
	ErrNoDefinition = errors.New("assetcache: no asset definition registered")
)

// Stage names the phase of a load that produced an error.
type Stage string

const (
	StageRead   Stage = "read"
	StageDecode Stage = "decode"
	StageBuild  Stage = "build"
)

// LoadError wraps a failure in one phase of loading a single Key.
type LoadError struct {
	Key   Key
	Stage Stage
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Key, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// CycleError carries the resolve chain that closed on itself.
type CycleError struct {
	Path []Key
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCyclicDependency.Error()
	}
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = k.String()
	}
	return fmt.Sprintf("%v: %s", ErrCyclicDependency, strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicDependency }
