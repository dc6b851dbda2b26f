package gcloudcmd

import "fmt"

// =============================================================================
// Component Selection
// =============================================================================

// Component selects the gcloud release track the app commands run under.
type Component string

const (
	// ComponentGA is the default, generally-available command surface.
	ComponentGA Component = ""
	// ComponentAlpha routes commands through "gcloud alpha".
	ComponentAlpha Component = "alpha"
	// ComponentBeta routes commands through "gcloud beta".
	ComponentBeta Component = "beta"
)

// ParseComponent validates a raw component input against the closed
// enumeration. Unrecognized values fail with ErrUnknownComponent naming the
// offending value; validation happens before any command is built.
func ParseComponent(raw string) (Component, error) {
	switch Component(raw) {
	case ComponentGA, ComponentAlpha, ComponentBeta:
		return Component(raw), nil
	}
	return ComponentGA, fmt.Errorf("%w: %q (expected \"alpha\", \"beta\", or empty)", ErrUnknownComponent, raw)
}

// prefix returns the leading args contributed by the component, if any.
func (c Component) prefix() []string {
	if c == ComponentGA {
		return nil
	}
	return []string{string(c)}
}
