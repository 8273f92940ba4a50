package viewport

// Geometry describes the scroll region a window is computed for. Heights
// and offsets are in pixels; rows are fixed-height.
type Geometry struct {
	RowHeight       int `json:"row_height"`
	Overscan        int `json:"overscan"`
	ScrollOffset    int `json:"scroll_offset"`
	ContainerHeight int `json:"container_height"`
}

// Window is the materialization plan for a scroll position: only rows in
// [StartIndex, EndIndex] are rendered, and the pads reserve layout space for
// the unmaterialized rows so scrollbar geometry stays correct. Render cost
// is therefore independent of total row count.
type Window struct {
	StartIndex  int `json:"start_index"`
	EndIndex    int `json:"end_index"`
	LeadingPad  int `json:"leading_pad"`
	TrailingPad int `json:"trailing_pad"`
}

// Compute derives the window over totalRows rows. An empty row set yields
// the empty window (EndIndex < StartIndex).
func Compute(totalRows int, g Geometry) Window {
	if totalRows <= 0 || g.RowHeight <= 0 {
		return Window{StartIndex: 0, EndIndex: -1}
	}

	start := g.ScrollOffset/g.RowHeight - g.Overscan
	if start < 0 {
		start = 0
	}

	visible := (g.ContainerHeight + g.RowHeight - 1) / g.RowHeight
	end := start + visible + 2*g.Overscan
	if end > totalRows-1 {
		end = totalRows - 1
	}

	trailing := (totalRows - 1 - end) * g.RowHeight
	if trailing < 0 {
		trailing = 0
	}

	return Window{
		StartIndex:  start,
		EndIndex:    end,
		LeadingPad:  start * g.RowHeight,
		TrailingPad: trailing,
	}
}

// Count returns the number of materialized rows
func (w Window) Count() int {
	if w.EndIndex < w.StartIndex {
		return 0
	}
	return w.EndIndex - w.StartIndex + 1
}
