package viewmodel

import (
	"sort"

	"github.com/dshills/viewcore/internal/engine/prefixsum"
	"github.com/dshills/viewcore/internal/engine/textmodel"
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel/linebreaks"
	"github.com/dshills/viewcore/internal/viewmodel/projection"
)

// Model is the part of the text model the view lines read from.
type Model interface {
	LineCount() int
	LineContent(lineNumber int) string
	LineMaxColumn(lineNumber int) int
	VersionID() int
	ValidatePosition(pos textpos.Position) textpos.Position
	AddTrackedRange(r textpos.Range, stickiness textmodel.Stickiness) string
	TrackedRange(id string) (textpos.Range, bool)
	RemoveTrackedRange(id string)
}

// ViewLineData describes one view line.
type ViewLineData struct {
	Content                  string
	MinColumn                int
	MaxColumn                int
	ModelLineNumber          int
	ModelStartColumn         int
	StartVisibleColumn       int
	ContinuesWithWrappedLine bool
	BlockType                textmodel.BlockType
	Marks                    []ViewMark
}

// ViewMark is an inline mark clipped to one view line.
type ViewMark struct {
	Type        textmodel.MarkType
	StartColumn int
	EndColumn   int
}

// Lines maps model lines to view lines. It keeps one projection per model
// line and a prefix-sum index of their view line counts.
//
// Change notifications carry the model version they describe. A
// notification whose version is not newer than the last accepted one is
// ignored; AcceptVersionID must be called once a batch has been processed.
type Lines struct {
	model       Model
	opts        linebreaks.Options
	projections []*projection.Projection
	counts      *prefixsum.Index

	hiddenAreaIDs  []string
	validVersionID int
}

// NewLines creates the view lines for model and projects every line.
func NewLines(model Model, opts linebreaks.Options) *Lines {
	l := &Lines{model: model, opts: opts}
	l.OnModelFlushed()
	return l
}

// Options returns the wrapping options in use.
func (l *Lines) Options() linebreaks.Options {
	return l.opts
}

// OnModelFlushed rebuilds every projection and drops hidden areas.
func (l *Lines) OnModelFlushed() {
	l.removeHiddenAreas()
	l.construct(nil)
	l.validVersionID = l.model.VersionID()
}

func (l *Lines) construct(visible func(lineNumber int) bool) {
	c := linebreaks.NewComputer(l.opts)
	n := l.model.LineCount()
	for line := 1; line <= n; line++ {
		c.AddRequest(l.model.LineContent(line))
	}
	data := c.Finalize()

	l.projections = make([]*projection.Projection, n)
	counts := make([]int, n)
	for i := range data {
		v := visible == nil || visible(i+1)
		l.projections[i] = projection.New(data[i], v)
		counts[i] = l.projections[i].ViewLineCount()
	}
	l.counts = prefixsum.New(counts)
}

// AcceptVersionID records that all changes up to versionID were applied.
func (l *Lines) AcceptVersionID(versionID int) {
	l.validVersionID = versionID
}

// ValidVersionID returns the last accepted model version.
func (l *Lines) ValidVersionID() int {
	return l.validVersionID
}

func (l *Lines) stale(versionID int) bool {
	return versionID <= l.validVersionID
}

// firstViewLineOf returns the view line number where a model line starts.
func (l *Lines) firstViewLineOf(modelLineNumber int) int {
	return l.counts.PrefixSum(modelLineNumber-1) + 1
}

// OnModelLinesDeleted removes the projections of model lines [from, to].
// It returns nil when the change is stale or removed no view line.
func (l *Lines) OnModelLinesDeleted(versionID, fromLineNumber, toLineNumber int) *ViewLinesDeletedEvent {
	if l.stale(versionID) {
		return nil
	}
	outputFrom := l.firstViewLineOf(fromLineNumber)
	outputTo := l.counts.PrefixSum(toLineNumber)

	l.projections = append(l.projections[:fromLineNumber-1], l.projections[toLineNumber:]...)
	l.counts.RemoveValues(fromLineNumber-1, toLineNumber-fromLineNumber+1)

	if outputTo < outputFrom {
		return nil
	}
	return &ViewLinesDeletedEvent{FromLineNumber: outputFrom, ToLineNumber: outputTo}
}

// OnModelLinesInserted adds projections for model lines [from, to] using
// the given break data. It returns nil when the change is stale or the new
// lines are hidden.
func (l *Lines) OnModelLinesInserted(versionID, fromLineNumber, toLineNumber int, breaks []*linebreaks.BreakData) *ViewLinesInsertedEvent {
	if l.stale(versionID) {
		return nil
	}
	hidden := l.inHiddenArea(fromLineNumber)
	outputFrom := l.firstViewLineOf(fromLineNumber)

	n := toLineNumber - fromLineNumber + 1
	added := make([]*projection.Projection, n)
	counts := make([]int, n)
	total := 0
	for i := 0; i < n; i++ {
		var data *linebreaks.BreakData
		if i < len(breaks) {
			data = breaks[i]
		}
		added[i] = projection.New(data, !hidden)
		counts[i] = added[i].ViewLineCount()
		total += counts[i]
	}

	next := make([]*projection.Projection, 0, len(l.projections)+n)
	next = append(next, l.projections[:fromLineNumber-1]...)
	next = append(next, added...)
	next = append(next, l.projections[fromLineNumber-1:]...)
	l.projections = next
	l.counts.InsertValues(fromLineNumber-1, counts)

	if total == 0 {
		return nil
	}
	return &ViewLinesInsertedEvent{FromLineNumber: outputFrom, ToLineNumber: outputFrom + total - 1}
}

// OnModelLineChanged replaces the projection of one model line. The view
// lines both projections have in common are reported as changed, the
// surplus as inserted or deleted. mappingChanged is true when the view
// line count of the model line changed.
func (l *Lines) OnModelLineChanged(versionID, lineNumber int, data *linebreaks.BreakData) (mappingChanged bool, changed *ViewLinesChangedEvent, inserted *ViewLinesInsertedEvent, deleted *ViewLinesDeletedEvent) {
	if l.stale(versionID) {
		return false, nil, nil, nil
	}
	idx := lineNumber - 1
	old := l.projections[idx]
	oldCount := old.ViewLineCount()
	next := projection.New(data, old.IsVisible())
	newCount := next.ViewLineCount()
	outputLine := l.firstViewLineOf(lineNumber)

	l.projections[idx] = next
	l.counts.SetValue(idx, newCount)

	common := min(oldCount, newCount)
	if common > 0 {
		changed = &ViewLinesChangedEvent{FromLineNumber: outputLine, Count: common}
	}
	switch {
	case oldCount > newCount:
		deleted = &ViewLinesDeletedEvent{
			FromLineNumber: outputLine + newCount,
			ToLineNumber:   outputLine + oldCount - 1,
		}
		mappingChanged = true
	case oldCount < newCount:
		inserted = &ViewLinesInsertedEvent{
			FromLineNumber: outputLine + oldCount,
			ToLineNumber:   outputLine + newCount - 1,
		}
		mappingChanged = true
	}
	return mappingChanged, changed, inserted, deleted
}

// SetWrappingOptions re-projects every line with new options. It returns
// false when the options are unchanged.
func (l *Lines) SetWrappingOptions(opts linebreaks.Options) bool {
	if l.opts.Equals(opts) {
		return false
	}
	l.opts = opts
	visible := l.visibilitySnapshot()
	l.construct(func(line int) bool { return visible[line-1] })
	return true
}

// SetTabSize changes only the tab size. It returns false when unchanged.
func (l *Lines) SetTabSize(tabSize int) bool {
	opts := l.opts
	opts.TabSize = tabSize
	return l.SetWrappingOptions(opts)
}

func (l *Lines) visibilitySnapshot() []bool {
	out := make([]bool, len(l.projections))
	for i, p := range l.projections {
		out[i] = p.IsVisible()
	}
	return out
}

// SetHiddenAreas hides the model lines covered by ranges. Ranges are
// normalized to whole lines and merged. It returns true when the view line
// mapping changed.
func (l *Lines) SetHiddenAreas(ranges []textpos.Range) bool {
	normalized := normalizeHiddenAreas(ranges, l.model.LineCount())
	if rangesEqual(normalized, l.HiddenAreas()) {
		return false
	}

	l.removeHiddenAreas()
	for _, r := range normalized {
		l.hiddenAreaIDs = append(l.hiddenAreaIDs, l.model.AddTrackedRange(r, textmodel.AlwaysGrowsWhenTypingAtEdges))
	}

	hidden := make([]bool, len(l.projections))
	for _, r := range normalized {
		for line := r.StartLineNumber; line <= r.EndLineNumber; line++ {
			hidden[line-1] = true
		}
	}

	changed := false
	for i, p := range l.projections {
		if p.IsVisible() == !hidden[i] {
			continue
		}
		changed = true
		l.projections[i] = p.SetVisible(!hidden[i])
		l.counts.SetValue(i, l.projections[i].ViewLineCount())
	}
	return changed
}

// HiddenAreas returns the current hidden areas as whole-line ranges.
func (l *Lines) HiddenAreas() []textpos.Range {
	var out []textpos.Range
	for _, id := range l.hiddenAreaIDs {
		if r, ok := l.model.TrackedRange(id); ok {
			out = append(out, r)
		}
	}
	return out
}

func (l *Lines) removeHiddenAreas() {
	for _, id := range l.hiddenAreaIDs {
		l.model.RemoveTrackedRange(id)
	}
	l.hiddenAreaIDs = nil
}

func (l *Lines) inHiddenArea(lineNumber int) bool {
	pos := textpos.NewPosition(lineNumber, 1)
	for _, r := range l.HiddenAreas() {
		if r.ContainsPosition(pos) {
			return true
		}
	}
	return false
}

func normalizeHiddenAreas(ranges []textpos.Range, lineCount int) []textpos.Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]textpos.Range, 0, len(ranges))
	for _, r := range ranges {
		start := max(1, r.StartLineNumber)
		end := min(lineCount, r.EndLineNumber)
		if start > end {
			continue
		}
		sorted = append(sorted, textpos.NewRange(start, 1, end, 1))
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartLineNumber < sorted[j].StartLineNumber
	})

	var out []textpos.Range
	for _, r := range sorted {
		if n := len(out); n > 0 && r.StartLineNumber <= out[n-1].EndLineNumber+1 {
			if r.EndLineNumber > out[n-1].EndLineNumber {
				out[n-1] = textpos.NewRange(out[n-1].StartLineNumber, 1, r.EndLineNumber, 1)
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func rangesEqual(a, b []textpos.Range) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].StartLineNumber != b[i].StartLineNumber || a[i].EndLineNumber != b[i].EndLineNumber {
			return false
		}
	}
	return true
}

// ModelLineViewLineCount returns how many view lines a model line produces.
func (l *Lines) ModelLineViewLineCount(modelLineNumber int) int {
	if modelLineNumber < 1 || modelLineNumber > len(l.projections) {
		return 0
	}
	return l.projections[modelLineNumber-1].ViewLineCount()
}

// ModelPositionIsVisible reports whether the model line is not hidden.
func (l *Lines) ModelPositionIsVisible(modelLineNumber, modelColumn int) bool {
	if modelLineNumber < 1 || modelLineNumber > len(l.projections) {
		return false
	}
	return l.projections[modelLineNumber-1].IsVisible()
}

// ViewLineCount returns the number of view lines.
func (l *Lines) ViewLineCount() int {
	return l.counts.Total()
}

func (l *Lines) toValidViewLineNumber(viewLineNumber int) int {
	return max(1, min(viewLineNumber, l.ViewLineCount()))
}

// viewLineInfo locates a view line: its model line and the index of the
// view line among that model line's view lines.
type viewLineInfo struct {
	modelLineNumber int
	outputIndex     int
}

func (l *Lines) lineInfo(viewLineNumber int) viewLineInfo {
	viewLineNumber = l.toValidViewLineNumber(viewLineNumber)
	r := l.counts.IndexOf(viewLineNumber - 1)
	return viewLineInfo{modelLineNumber: r.Index + 1, outputIndex: r.Remainder}
}

func (l *Lines) projectionOf(info viewLineInfo) *projection.Projection {
	return l.projections[info.modelLineNumber-1]
}

// ViewLineContent returns the text of a view line.
func (l *Lines) ViewLineContent(viewLineNumber int) string {
	if l.ViewLineCount() == 0 {
		return ""
	}
	info := l.lineInfo(viewLineNumber)
	return l.projectionOf(info).ViewLineContent(l.model, info.modelLineNumber, info.outputIndex)
}

// ViewLineLength returns the length of a view line.
func (l *Lines) ViewLineLength(viewLineNumber int) int {
	if l.ViewLineCount() == 0 {
		return 0
	}
	info := l.lineInfo(viewLineNumber)
	return l.projectionOf(info).ViewLineLength(l.model, info.modelLineNumber, info.outputIndex)
}

// ViewLineMinColumn returns the first valid column of a view line.
func (l *Lines) ViewLineMinColumn(viewLineNumber int) int {
	if l.ViewLineCount() == 0 {
		return 1
	}
	info := l.lineInfo(viewLineNumber)
	return l.projectionOf(info).ViewLineMinColumn(info.outputIndex)
}

// ViewLineMaxColumn returns the column after the last character of a view
// line.
func (l *Lines) ViewLineMaxColumn(viewLineNumber int) int {
	if l.ViewLineCount() == 0 {
		return 1
	}
	info := l.lineInfo(viewLineNumber)
	return l.projectionOf(info).ViewLineMaxColumn(l.model, info.modelLineNumber, info.outputIndex)
}

// ViewLineData returns the layout of one view line.
func (l *Lines) ViewLineData(viewLineNumber int) ViewLineData {
	if l.ViewLineCount() == 0 {
		return ViewLineData{MinColumn: 1, MaxColumn: 1, ModelLineNumber: 1, ModelStartColumn: 1}
	}
	info := l.lineInfo(viewLineNumber)
	p := l.projectionOf(info)
	content := p.ViewLineContent(l.model, info.modelLineNumber, info.outputIndex)
	startVisible := 0
	if info.outputIndex > 0 {
		startVisible = p.BreakData().BreakOffsetsVisibleColumn[info.outputIndex-1]
	}
	return ViewLineData{
		Content:                  content,
		MinColumn:                p.ViewLineMinColumn(info.outputIndex),
		MaxColumn:                len([]rune(content)) + 1,
		ModelLineNumber:          info.modelLineNumber,
		ModelStartColumn:         p.SegmentStartColumn(info.outputIndex),
		StartVisibleColumn:       startVisible,
		ContinuesWithWrappedLine: p.ContinuesWithWrappedLine(info.outputIndex),
	}
}

// ViewLinesData returns the data of view lines [start, end], clamped.
func (l *Lines) ViewLinesData(startLineNumber, endLineNumber int) []ViewLineData {
	start := l.toValidViewLineNumber(startLineNumber)
	end := l.toValidViewLineNumber(endLineNumber)
	if end < start || l.ViewLineCount() == 0 {
		return nil
	}
	out := make([]ViewLineData, 0, end-start+1)
	for line := start; line <= end; line++ {
		out = append(out, l.ViewLineData(line))
	}
	return out
}

// ConvertViewPositionToModelPosition maps a view position to the model.
// Out-of-range input is clamped.
func (l *Lines) ConvertViewPositionToModelPosition(viewLineNumber, viewColumn int) textpos.Position {
	if l.ViewLineCount() == 0 {
		return textpos.NewPosition(1, 1)
	}
	info := l.lineInfo(viewLineNumber)
	col := l.projectionOf(info).ModelColumnOfViewPosition(info.outputIndex, viewColumn)
	return l.model.ValidatePosition(textpos.NewPosition(info.modelLineNumber, col))
}

// ConvertModelPositionToViewPosition maps a model position to the view.
// Positions on hidden lines map to the end of the nearest visible line
// above them.
func (l *Lines) ConvertModelPositionToViewPosition(modelLineNumber, modelColumn int, affinity projection.Affinity) textpos.Position {
	valid := l.model.ValidatePosition(textpos.NewPosition(modelLineNumber, modelColumn))
	inputLine, inputColumn := valid.LineNumber, valid.Column

	lineIndex := inputLine - 1
	lineIndexChanged := false
	for lineIndex > 0 && !l.projections[lineIndex].IsVisible() {
		lineIndex--
		lineIndexChanged = true
	}
	if lineIndex == 0 && !l.projections[0].IsVisible() {
		// Nothing visible above the position.
		return textpos.NewPosition(1, 1)
	}

	deltaLine := 1 + l.counts.PrefixSum(lineIndex)
	p := l.projections[lineIndex]
	if lineIndexChanged {
		return p.ViewPositionOfModelPosition(deltaLine, l.model.LineMaxColumn(lineIndex+1), affinity)
	}
	return p.ViewPositionOfModelPosition(deltaLine, inputColumn, affinity)
}

// ConvertModelRangeToViewRange maps a model range to the view. Non-empty
// ranges bias their start right and their end left so they do not grow
// across wrap boundaries.
func (l *Lines) ConvertModelRangeToViewRange(r textpos.Range, affinity projection.Affinity) textpos.Range {
	if r.IsEmpty() {
		start := l.ConvertModelPositionToViewPosition(r.StartLineNumber, r.StartColumn, affinity)
		return textpos.EmptyRange(start)
	}
	start := l.ConvertModelPositionToViewPosition(r.StartLineNumber, r.StartColumn, projection.AffinityRight)
	end := l.ConvertModelPositionToViewPosition(r.EndLineNumber, r.EndColumn, projection.AffinityLeft)
	return textpos.RangeFromPositions(start, end)
}

// ValidateViewPosition clamps a view position and checks that it still
// maps to expected. If it does not, the position is re-derived from
// expected.
func (l *Lines) ValidateViewPosition(viewLineNumber, viewColumn int, expected textpos.Position) textpos.Position {
	if l.ViewLineCount() == 0 {
		return textpos.NewPosition(1, 1)
	}
	line := l.toValidViewLineNumber(viewLineNumber)
	col := max(l.ViewLineMinColumn(line), min(viewColumn, l.ViewLineMaxColumn(line)))

	info := l.lineInfo(line)
	modelCol := l.projectionOf(info).ModelColumnOfViewPosition(info.outputIndex, col)
	computed := l.model.ValidatePosition(textpos.NewPosition(info.modelLineNumber, modelCol))
	if computed == expected {
		return textpos.NewPosition(line, col)
	}
	return l.ConvertModelPositionToViewPosition(expected.LineNumber, expected.Column, projection.AffinityNone)
}

// NormalizePosition moves a view position on a wrap boundary to the side
// requested by affinity.
func (l *Lines) NormalizePosition(pos textpos.Position, affinity projection.Affinity) textpos.Position {
	if l.ViewLineCount() == 0 {
		return pos
	}
	info := l.lineInfo(pos.LineNumber)
	return l.projectionOf(info).NormalizePosition(info.outputIndex, pos, affinity)
}
