package controller

import (
	"github.com/google/uuid"

	"github.com/dshills/viewcore/internal/command"
	"github.com/dshills/viewcore/internal/cursor"
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/event"
	"github.com/dshills/viewcore/internal/logging"
	"github.com/dshills/viewcore/internal/viewmodel"
)

// Controller owns the cursors of one editor and routes every edit through
// the command executor.
type Controller struct {
	id        string
	model     *textmodel.Model
	vm        *viewmodel.ViewModel
	ctx       *cursor.Context
	cursors   *cursor.Collection
	exec      *command.Executor
	log       logging.Logger
	sink      *logging.ErrorSink
	clipboard *ClipboardMetadataStore
	events    *event.Emitter[CursorStateChangedEvent]

	state       CompositionState
	composition *compositionContext

	// isHandling is set while the controller itself edits the model, so
	// the resulting content change does not reset the cursors.
	isHandling            bool
	knownModelVersionID   int
	prevEditOperationType EditOperationType
	autoClosedActions     []*autoClosedAction
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfiguration sets the cursor configuration.
func WithConfiguration(cfg cursor.Configuration) Option {
	return func(c *Controller) {
		c.ctx = cursor.NewContext(c.vm, &cfg)
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithErrorSink sets where command failures are reported.
func WithErrorSink(s *logging.ErrorSink) Option {
	return func(c *Controller) {
		c.sink = s
	}
}

// WithClipboard shares a clipboard metadata store between controllers.
func WithClipboard(s *ClipboardMetadataStore) Option {
	return func(c *Controller) {
		c.clipboard = s
	}
}

// New creates a controller with a single cursor at (1,1) and attaches it
// to the view model.
func New(vm *viewmodel.ViewModel, opts ...Option) *Controller {
	c := &Controller{
		id:     uuid.NewString(),
		model:  vm.Model(),
		vm:     vm,
		events: event.NewEmitter[CursorStateChangedEvent]("controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ctx == nil {
		c.ctx = cursor.NewContext(vm, nil)
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	if c.sink == nil {
		c.sink = logging.NewErrorSink(c.log)
	}
	if c.clipboard == nil {
		c.clipboard = NewClipboardMetadataStore()
	}
	c.exec = command.NewExecutor(c.log, c.sink)
	c.cursors = cursor.NewCollection(c.ctx)
	c.knownModelVersionID = c.model.VersionID()
	vm.SetCursorObserver(c)
	return c
}

// Dispose releases the cursors and detaches from the view model.
func (c *Controller) Dispose() {
	c.vm.SetCursorObserver(nil)
	c.disposeAutoClosedActions()
	c.cursors.Dispose()
}

// SessionID identifies this controller in logs and clipboard metadata.
func (c *Controller) SessionID() string {
	return c.id
}

// Context returns the cursor context.
func (c *Controller) Context() *cursor.Context {
	return c.ctx
}

// Configuration returns the cursor configuration in use.
func (c *Controller) Configuration() *cursor.Configuration {
	return c.ctx.Config
}

// OnDidChangeCursorState subscribes to model-level cursor changes.
func (c *Controller) OnDidChangeCursorState(h event.Handler[CursorStateChangedEvent], opts ...event.SubscriptionOption) event.Subscription {
	return c.events.Subscribe(h, opts...)
}

// Count returns the number of cursors.
func (c *Controller) Count() int {
	return c.cursors.Count()
}

// Selection returns the primary selection.
func (c *Controller) Selection() textpos.Selection {
	return c.cursors.Primary().ModelState.Selection
}

// Selections returns all model selections, primary first.
func (c *Controller) Selections() []textpos.Selection {
	return c.cursors.Selections()
}

// ViewSelections returns all view selections, primary first.
func (c *Controller) ViewSelections() []textpos.Selection {
	return c.cursors.ViewSelections()
}

// PrimaryCursorState returns the state of the primary cursor.
func (c *Controller) PrimaryCursorState() cursor.State {
	return c.cursors.Primary()
}

// CursorStates returns the states of every cursor.
func (c *Controller) CursorStates() []cursor.State {
	return c.cursors.All()
}

// SetStates installs new cursor states. States beyond the configured
// limit are dropped; it reports whether the cursors changed.
func (c *Controller) SetStates(source string, reason viewmodel.CursorChangeReason, states []cursor.State) bool {
	reachedMax := false
	if limit := c.ctx.Config.MultiCursorLimit; limit > 0 && len(states) > limit {
		states = states[:limit]
		reachedMax = true
	}
	old := c.snapshot()
	c.cursors.SetStates(states)
	c.cursors.Normalize()
	c.validateAutoClosedActions()
	return c.emitStateChangedIfNecessary(source, reason, old, reachedMax)
}

// SetSelections installs model selections.
func (c *Controller) SetSelections(source string, sels []textpos.Selection, reason viewmodel.CursorChangeReason) {
	c.SetStates(source, reason, cursor.FromModelSelections(sels))
}

// stateSnapshot is what an emitted change is compared against.
type stateSnapshot struct {
	versionID  int
	states     []cursor.State
	selections []textpos.Selection
}

func (c *Controller) snapshot() *stateSnapshot {
	return &stateSnapshot{
		versionID:  c.model.VersionID(),
		states:     c.cursors.All(),
		selections: c.cursors.Selections(),
	}
}

func (s *stateSnapshot) equals(o *stateSnapshot) bool {
	return s != nil && o != nil && s.versionID == o.versionID && cursor.StatesEqual(s.states, o.states)
}

// emitStateChangedIfNecessary publishes the view event, the reveal request
// and then the model-level event. Nothing is emitted when neither the
// model version nor any cursor changed.
func (c *Controller) emitStateChangedIfNecessary(source string, reason viewmodel.CursorChangeReason, old *stateSnapshot, reachedMax bool) bool {
	cur := c.snapshot()
	if cur.equals(old) {
		return false
	}

	viewSels := c.cursors.ViewSelections()
	c.vm.EmitViewEvent(viewmodel.ViewCursorStateChangedEvent{
		Selections:      viewSels,
		ModelSelections: cur.selections,
		Reason:          reason,
	})
	c.revealPrimary(source, viewSels)

	if old == nil || !modelStatesEqual(old.states, cur.states) {
		e := CursorStateChangedEvent{
			NewSelections:         cur.selections,
			NewModelVersionID:     cur.versionID,
			Source:                source,
			Reason:                reason,
			ReachedMaxCursorCount: reachedMax,
		}
		if old != nil {
			e.OldSelections = old.selections
			e.OldModelVersionID = old.versionID
		}
		c.events.Emit(e)
	}
	return true
}

func modelStatesEqual(a, b []cursor.State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].ModelState.Equals(*b[i].ModelState) {
			return false
		}
	}
	return true
}

func (c *Controller) revealPrimary(source string, viewSels []textpos.Selection) {
	if len(viewSels) == 0 {
		return
	}
	p := viewSels[0].Position()
	c.vm.EmitViewEvent(viewmodel.ViewRevealRangeRequestEvent{
		Source:       source,
		Range:        textpos.NewRange(p.LineNumber, p.Column, p.LineNumber, p.Column),
		Selections:   viewSels,
		VerticalType: viewmodel.RevealSimple,
	})
}

// OnModelContentChanged is called by the view model after it applied a
// model change. Edits made by the controller itself are ignored.
func (c *Controller) OnModelContentChanged(e textmodel.ContentChangedEvent) {
	c.knownModelVersionID = e.VersionID
	if c.isHandling {
		return
	}

	// An edit from outside breaks the current typing group.
	c.prevEditOperationType = OpOther

	if e.ContainsFlush() {
		c.disposeAutoClosedActions()
		c.cursors.Dispose()
		c.cursors = cursor.NewCollection(c.ctx)
		c.cursors.EnsureValidState()
		c.log.Debug("cursors reset after flush", "version", e.VersionID)
		c.emitStateChangedIfNecessary(SourceModel, viewmodel.ReasonContentFlush, nil, false)
		return
	}

	if len(e.ResultingSelections) > 0 {
		source, reason := SourceUndo, viewmodel.ReasonUndo
		if e.IsRedo {
			source, reason = SourceRedo, viewmodel.ReasonRedo
		}
		c.SetSelections(source, e.ResultingSelections, reason)
		return
	}
	sels := c.cursors.ReadSelectionFromMarkers()
	c.SetStates(SourceModelChange, viewmodel.ReasonRecoverFromMarkers, cursor.FromModelSelections(sels))
}

// OnLineMappingChanged is called when wrapping or hidden areas changed.
// Model positions are kept and view positions recomputed.
func (c *Controller) OnLineMappingChanged() {
	if c.knownModelVersionID != c.model.VersionID() {
		// A content change is pending; it will recompute everything.
		return
	}
	all := c.cursors.All()
	states := make([]cursor.State, len(all))
	for i, s := range all {
		states[i] = cursor.FromModelState(*s.ModelState)
	}
	c.SetStates(SourceViewModel, viewmodel.ReasonNotSet, states)
}
