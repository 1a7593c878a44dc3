package viewmodel

import (
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/event"
	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
	"github.com/dshills/viewcore/internal/viewmodel/projection"
)

// CursorObserver is notified after the view model has processed a model
// change, so cursors can be recomputed against up-to-date view lines.
type CursorObserver interface {
	OnModelContentChanged(e textmodel.ContentChangedEvent)
	OnLineMappingChanged()
}

// ViewModel keeps the view lines of a text model in sync with it and
// publishes view events.
type ViewModel struct {
	model     *textmodel.Model
	lines     *Lines
	converter CoordinatesConverter
	events    *event.Emitter[ViewEvent]
	cursor    CursorObserver
	subs      []event.Subscription
}

// New creates a view model for model. It subscribes to the model at
// critical priority so view coordinates are current before any other
// listener runs.
func New(model *textmodel.Model, opts linebreaks.Options) *ViewModel {
	vm := &ViewModel{
		model:  model,
		events: event.NewEmitter[ViewEvent]("viewmodel"),
	}
	vm.lines = NewLines(model, opts)
	vm.converter = NewCoordinatesConverter(vm.lines)

	critical := event.WithPriority(event.PriorityCritical)
	vm.subs = append(vm.subs,
		model.OnDidChangeContent(func(e event.Event[textmodel.ContentChangedEvent]) {
			vm.onModelContentChanged(e.Payload)
		}, critical),
		model.OnDidChangeDecorations(func(event.Event[textmodel.DecorationsChangedEvent]) {
			vm.events.Emit(ViewDecorationsChangedEvent{})
		}, critical),
		model.OnDidChangeBlockType(func(e event.Event[textmodel.BlockTypeChangedEvent]) {
			vm.onBlockTypeChanged(e.Payload)
		}, critical),
	)
	return vm
}

// Dispose detaches the view model from its model.
func (vm *ViewModel) Dispose() {
	for _, s := range vm.subs {
		s.Cancel()
	}
	vm.subs = nil
	vm.cursor = nil
}

// Model returns the underlying text model.
func (vm *ViewModel) Model() *textmodel.Model {
	return vm.model
}

// Lines returns the view lines.
func (vm *ViewModel) Lines() *Lines {
	return vm.lines
}

// Converter returns the coordinates converter.
func (vm *ViewModel) Converter() CoordinatesConverter {
	return vm.converter
}

// SetCursorObserver installs the observer called after model changes.
func (vm *ViewModel) SetCursorObserver(o CursorObserver) {
	vm.cursor = o
}

// OnDidChangeView subscribes to view events.
func (vm *ViewModel) OnDidChangeView(h event.Handler[ViewEvent], opts ...event.SubscriptionOption) event.Subscription {
	return vm.events.Subscribe(h, opts...)
}

// EmitViewEvent publishes an event produced outside the view model, such
// as a cursor state change.
func (vm *ViewModel) EmitViewEvent(e ViewEvent) {
	vm.events.Emit(e)
}

func (vm *ViewModel) onModelContentChanged(e textmodel.ContentChangedEvent) {
	mappingChanged := false
	computer := linebreaks.NewComputer(vm.lines.Options())

	for _, change := range e.Changes {
		switch c := change.(type) {
		case textmodel.FlushChange:
			vm.lines.OnModelFlushed()
			vm.events.Emit(ViewFlushedEvent{})
			mappingChanged = true

		case textmodel.LinesDeletedChange:
			if ev := vm.lines.OnModelLinesDeleted(e.VersionID, c.FromLineNumber, c.ToLineNumber); ev != nil {
				vm.events.Emit(*ev)
				mappingChanged = true
			}

		case textmodel.LinesInsertedChange:
			for _, text := range c.Detail {
				computer.AddRequest(text)
			}
			breaks := computer.Finalize()
			if ev := vm.lines.OnModelLinesInserted(e.VersionID, c.FromLineNumber, c.ToLineNumber, breaks); ev != nil {
				vm.events.Emit(*ev)
				mappingChanged = true
			}

		case textmodel.LineChange:
			data := computer.Compute(c.Detail)
			changed, ch, ins, del := vm.lines.OnModelLineChanged(e.VersionID, c.LineNumber, data)
			if ch != nil {
				vm.events.Emit(*ch)
			}
			if ins != nil {
				vm.events.Emit(*ins)
			}
			if del != nil {
				vm.events.Emit(*del)
			}
			mappingChanged = mappingChanged || changed
		}
	}
	vm.lines.AcceptVersionID(e.VersionID)

	if mappingChanged {
		vm.events.Emit(ViewLineMappingChangedEvent{})
	}
	if vm.cursor != nil {
		vm.cursor.OnModelContentChanged(e)
	}
}

func (vm *ViewModel) onBlockTypeChanged(e textmodel.BlockTypeChangedEvent) {
	if e.LineNumber < 1 || e.LineNumber > vm.model.LineCount() {
		return
	}
	count := vm.lines.ModelLineViewLineCount(e.LineNumber)
	if count == 0 {
		return
	}
	first := vm.converter.ConvertModelPositionToViewPosition(textpos.NewPosition(e.LineNumber, 1), projection.AffinityNone)
	vm.events.Emit(ViewDecorationsChangedEvent{
		FromLineNumber: first.LineNumber,
		ToLineNumber:   first.LineNumber + count - 1,
	})
}

func (vm *ViewModel) onMappingChanged() {
	vm.events.Emit(ViewFlushedEvent{})
	vm.events.Emit(ViewLineMappingChangedEvent{})
	if vm.cursor != nil {
		vm.cursor.OnLineMappingChanged()
	}
}

// SetWrappingOptions changes how lines wrap. It returns true if the view
// line mapping changed.
func (vm *ViewModel) SetWrappingOptions(opts linebreaks.Options) bool {
	if !vm.lines.SetWrappingOptions(opts) {
		return false
	}
	vm.onMappingChanged()
	return true
}

// SetHiddenAreas hides whole model lines. It returns true if the view line
// mapping changed.
func (vm *ViewModel) SetHiddenAreas(ranges []textpos.Range) bool {
	if !vm.lines.SetHiddenAreas(ranges) {
		return false
	}
	vm.onMappingChanged()
	return true
}

// ViewLineCount returns the number of view lines.
func (vm *ViewModel) ViewLineCount() int {
	return vm.lines.ViewLineCount()
}

// ViewLineContent returns the text of a view line.
func (vm *ViewModel) ViewLineContent(viewLineNumber int) string {
	return vm.lines.ViewLineContent(viewLineNumber)
}

// ViewLineLength returns the length of a view line.
func (vm *ViewModel) ViewLineLength(viewLineNumber int) int {
	return vm.lines.ViewLineLength(viewLineNumber)
}

// ViewLineMinColumn returns the first valid column of a view line.
func (vm *ViewModel) ViewLineMinColumn(viewLineNumber int) int {
	return vm.lines.ViewLineMinColumn(viewLineNumber)
}

// ViewLineMaxColumn returns the after-last column of a view line.
func (vm *ViewModel) ViewLineMaxColumn(viewLineNumber int) int {
	return vm.lines.ViewLineMaxColumn(viewLineNumber)
}

// NormalizePosition moves a view position on a wrap boundary to the side
// requested by affinity.
func (vm *ViewModel) NormalizePosition(pos textpos.Position, affinity projection.Affinity) textpos.Position {
	return vm.lines.NormalizePosition(pos, affinity)
}

// ViewLineData returns the layout of a view line with its block type and
// the marks that intersect it.
func (vm *ViewModel) ViewLineData(viewLineNumber int) ViewLineData {
	data := vm.lines.ViewLineData(viewLineNumber)
	vm.decorate(&data)
	return data
}

// ViewLinesData returns ViewLineData for view lines [start, end].
func (vm *ViewModel) ViewLinesData(startLineNumber, endLineNumber int) []ViewLineData {
	out := vm.lines.ViewLinesData(startLineNumber, endLineNumber)
	for i := range out {
		vm.decorate(&out[i])
	}
	return out
}

func (vm *ViewModel) decorate(data *ViewLineData) {
	line := data.ModelLineNumber
	if line < 1 || line > vm.model.LineCount() {
		return
	}
	data.BlockType = vm.model.BlockType(line)

	segStart := data.ModelStartColumn
	segEnd := segStart + (data.MaxColumn - data.MinColumn)
	lineMax := vm.model.LineMaxColumn(line)
	for _, m := range vm.model.MarksInLine(line) {
		start, end := 1, lineMax
		if m.Range.StartLineNumber == line {
			start = m.Range.StartColumn
		}
		if m.Range.EndLineNumber == line {
			end = m.Range.EndColumn
		}
		start = max(start, segStart)
		end = min(end, segEnd)
		if start >= end {
			continue
		}
		data.Marks = append(data.Marks, ViewMark{
			Type:        m.Type,
			StartColumn: start - segStart + data.MinColumn,
			EndColumn:   end - segStart + data.MinColumn,
		})
	}
}
