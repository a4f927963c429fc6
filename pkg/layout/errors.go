package layout

import (
	"fmt"
)

// ContractViolation is the panic value raised when the layout code finds
// the box tree or its own state in a shape it cannot continue from. It is
// a programming error and is never recovered by the engine.
type ContractViolation struct {
	Message string
}

func (c ContractViolation) Error() string {
	return "layout contract violation: " + c.Message
}

// verify panics with a ContractViolation when cond is false.
func verify(cond bool, format string, args ...any) {
	if !cond {
		panic(ContractViolation{Message: fmt.Sprintf(format, args...)})
	}
}

// Feature names a part of the flex algorithm that is stubbed out.
type Feature string

const (
	FeatureOrthogonalFlow     Feature = "orthogonal-flow"
	FeatureBaselineAlignment  Feature = "baseline-alignment"
	FeatureVisibilityCollapse Feature = "visibility-collapse"
	FeatureWrapReverse        Feature = "wrap-reverse"
)

// NotImplementedError is raised (as a panic) by stubs that have no
// reasonable fallback. The engine turns it into the error returned from
// Layout, so callers can tell an unsupported input from a wrong result.
type NotImplementedError struct {
	Feature Feature
	Box     string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not yet implemented: %s (%s)", e.Feature, e.Box)
}

func notImplemented(feature Feature, box *Box) {
	panic(&NotImplementedError{Feature: feature, Box: box.DebugDescription()})
}

// UnsupportedFeature records a stub that was hit but had a fallback,
// e.g. baseline alignment laid out as flex-start.
type UnsupportedFeature struct {
	Feature Feature
	Box     *Box
}

func (u UnsupportedFeature) String() string {
	return fmt.Sprintf("%s on %s", u.Feature, u.Box.DebugDescription())
}
