package layout

import (
	"go.uber.org/zap"

	"flexlayout/pkg/text"
)

// LayoutEngine lays out box trees into a viewport.
type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	logger   *zap.Logger
	measurer text.Measurer
}

// Option configures a LayoutEngine.
type Option func(*LayoutEngine)

// WithLogger sets the logger the engine and its formatting contexts log to.
func WithLogger(logger *zap.Logger) Option {
	return func(le *LayoutEngine) { le.logger = logger }
}

// WithTextMeasurer sets how text runs are measured.
func WithTextMeasurer(m text.Measurer) Option {
	return func(le *LayoutEngine) { le.measurer = m }
}

func NewLayoutEngine(viewportWidth, viewportHeight float64, opts ...Option) *LayoutEngine {
	le := &LayoutEngine{
		logger:   zap.NewNop(),
		measurer: text.EstimateMeasurer{},
	}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	for _, opt := range opts {
		opt(le)
	}
	return le
}

// Result is the outcome of a layout run.
type Result struct {
	State *LayoutState

	// Unsupported lists the stubbed features the run fell back on.
	Unsupported []UnsupportedFeature
}

// Layout lays out the tree rooted at root and commits the used geometry
// into the boxes. A stub without a fallback makes Layout return a
// *NotImplementedError; the boxes are left untouched in that case.
func (le *LayoutEngine) Layout(root *Box) (result *Result, err error) {
	defer recoverNotImplemented(&err)

	state := NewLayoutState(le.viewport.width, le.viewport.height, le.logger, le.measurer)
	ctx := le.layoutRoot(state, root)
	ctx.ParentContextDidDimensionChildRootBox()
	state.Commit()

	u := state.Get(root)
	le.logger.Debug("layout done",
		zap.String("root", root.DebugDescription()),
		zap.Float64("width", u.ContentWidth()),
		zap.Float64("height", u.ContentHeight()),
		zap.Int("unsupported", len(state.Unsupported())))
	return &Result{State: state, Unsupported: state.Unsupported()}, nil
}

// layoutRoot sizes root as a block-level box of the initial containing
// block and runs its formatting context.
func (le *LayoutEngine) layoutRoot(state *LayoutState, root *Box) FormattingContext {
	verify(root.Parent == nil, "layout root %s has a parent", root.DebugDescription())
	space := AvailableSpace{Width: Definite(le.viewport.width), Height: Definite(le.viewport.height)}

	u := state.GetMutable(root)
	switch {
	case root.IsReplaced() && shouldTreatWidthAsAuto(state, root, space):
		w, _ := replacedContentSize(state, root)
		u.SetContentWidth(w)
	case shouldTreatWidthAsAuto(state, root, space):
		u.SetContentWidth(calculateStretchFitWidth(state, root, space.Width))
	}
	u.SetContentWidth(clampToMinMaxWidth(state, root, u.ContentWidth()))
	u.Offset = Position{X: u.BorderBoxLeft(), Y: u.BorderBoxTop()}

	ctx := layoutInside(state, root, nil, LayoutNormal, u.AvailableInnerSpaceOrConstraintsFrom(space))

	u = state.GetMutable(root)
	if !u.HasDefiniteHeight() {
		height := ctx.AutomaticContentHeight()
		if root.IsReplaced() {
			_, height = replacedContentSize(state, root)
		}
		u.SetContentHeight(clampToMinMaxHeight(state, root, height))
	}
	return ctx
}

// Measurement holds the intrinsic sizes of a box.
type Measurement struct {
	MinContentWidth  float64
	MaxContentWidth  float64
	MinContentHeight float64
	MaxContentHeight float64
}

// Measure computes the intrinsic sizes of the tree rooted at root without
// committing anything. Heights are measured at availableWidth.
func (le *LayoutEngine) Measure(root *Box, availableWidth AvailableSize) (m *Measurement, err error) {
	defer recoverNotImplemented(&err)

	state := NewLayoutState(le.viewport.width, le.viewport.height, le.logger, le.measurer)
	return &Measurement{
		MinContentWidth:  calculateMinContentWidth(state, root),
		MaxContentWidth:  calculateMaxContentWidth(state, root),
		MinContentHeight: calculateMinContentHeight(state, root, availableWidth),
		MaxContentHeight: calculateMaxContentHeight(state, root, availableWidth),
	}, nil
}

// recoverNotImplemented turns a *NotImplementedError panic into err.
// Anything else, contract violations included, keeps panicking.
func recoverNotImplemented(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ni, ok := r.(*NotImplementedError); ok {
		*err = ni
		return
	}
	panic(r)
}
