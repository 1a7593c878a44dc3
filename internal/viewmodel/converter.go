package viewmodel

import (
	"github.com/dshills/viewcore/internal/engine/textpos"
	"github.com/dshills/viewcore/internal/viewmodel/projection"
)

// CoordinatesConverter converts positions and ranges between model and view
// coordinates. It holds no state of its own.
type CoordinatesConverter struct {
	lines *Lines
}

// NewCoordinatesConverter returns a converter reading from lines.
func NewCoordinatesConverter(lines *Lines) CoordinatesConverter {
	return CoordinatesConverter{lines: lines}
}

// ConvertViewPositionToModelPosition maps a view position to the model.
func (c CoordinatesConverter) ConvertViewPositionToModelPosition(viewPos textpos.Position) textpos.Position {
	return c.lines.ConvertViewPositionToModelPosition(viewPos.LineNumber, viewPos.Column)
}

// ConvertViewRangeToModelRange maps a view range to the model.
func (c CoordinatesConverter) ConvertViewRangeToModelRange(viewRange textpos.Range) textpos.Range {
	start := c.lines.ConvertViewPositionToModelPosition(viewRange.StartLineNumber, viewRange.StartColumn)
	end := c.lines.ConvertViewPositionToModelPosition(viewRange.EndLineNumber, viewRange.EndColumn)
	return textpos.RangeFromPositions(start, end)
}

// ValidateViewPosition returns viewPos if it is a valid view position that
// maps to expected, otherwise the view image of expected.
func (c CoordinatesConverter) ValidateViewPosition(viewPos, expected textpos.Position) textpos.Position {
	return c.lines.ValidateViewPosition(viewPos.LineNumber, viewPos.Column, expected)
}

// ValidateViewRange validates both ends of viewRange against expected.
func (c CoordinatesConverter) ValidateViewRange(viewRange, expected textpos.Range) textpos.Range {
	start := c.lines.ValidateViewPosition(viewRange.StartLineNumber, viewRange.StartColumn, expected.Start())
	end := c.lines.ValidateViewPosition(viewRange.EndLineNumber, viewRange.EndColumn, expected.End())
	return textpos.RangeFromPositions(start, end)
}

// ConvertModelPositionToViewPosition maps a model position to the view.
func (c CoordinatesConverter) ConvertModelPositionToViewPosition(modelPos textpos.Position, affinity projection.Affinity) textpos.Position {
	return c.lines.ConvertModelPositionToViewPosition(modelPos.LineNumber, modelPos.Column, affinity)
}

// ConvertModelRangeToViewRange maps a model range to the view.
func (c CoordinatesConverter) ConvertModelRangeToViewRange(modelRange textpos.Range, affinity projection.Affinity) textpos.Range {
	return c.lines.ConvertModelRangeToViewRange(modelRange, affinity)
}

// ModelPositionIsVisible reports whether the model position is on a
// visible line.
func (c CoordinatesConverter) ModelPositionIsVisible(modelPos textpos.Position) bool {
	return c.lines.ModelPositionIsVisible(modelPos.LineNumber, modelPos.Column)
}
