package query

import (
	"sort"
	"strings"

	"sheetdesk/domain/table"
)

// Filters maps a column header to its raw filter string. A filter string may
// contain multiple `;`-separated terms.
type Filters map[string]string

// SortDirection is the order of a single-column sort
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SortState holds the single active sort column and direction
type SortState struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// Toggle returns the sort state after the user selects a column: selecting
// the active key flips direction, selecting a new key resets to ascending.
func (s *SortState) Toggle(key string) SortState {
	if s != nil && s.Key == key {
		dir := SortAscending
		if s.Direction == SortAscending {
			dir = SortDescending
		}
		return SortState{Key: key, Direction: dir}
	}
	return SortState{Key: key, Direction: SortAscending}
}

// Apply runs the full pipeline: multi-column textual filters, then an
// optional single-column typed sort. The pipeline is pure: the input row
// slice is never modified and the same inputs always yield the same output
// sequence.
func Apply(rows []table.Row, filters Filters, sortState *SortState) []table.Row {
	out := filterRows(rows, filters)
	if sortState != nil && sortState.Key != "" {
		sortRows(out, *sortState)
	}
	return out
}

// columnTerms splits a raw filter string on `;`, trimming and lowercasing
// each term and discarding empties
func columnTerms(raw string) []string {
	var terms []string
	for _, part := range strings.Split(raw, ";") {
		term := strings.ToLower(strings.TrimSpace(part))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// filterRows keeps rows matching every filtered column (AND across columns),
// where a column matches if the cell contains at least one of its terms (OR
// within a column). A null cell never passes a filtered column.
func filterRows(rows []table.Row, filters Filters) []table.Row {
	active := make(map[string][]string)
	for col, raw := range filters {
		if terms := columnTerms(raw); len(terms) > 0 {
			active[col] = terms
		}
	}

	if len(active) == 0 {
		return append([]table.Row(nil), rows...)
	}

	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if rowPasses(row, active) {
			out = append(out, row)
		}
	}
	return out
}

func rowPasses(row table.Row, active map[string][]string) bool {
	for col, terms := range active {
		cell, ok := row[col]
		if !ok || cell.IsNull() {
			return false
		}
		value := strings.ToLower(cell.String())
		matched := false
		for _, term := range terms {
			if strings.Contains(value, term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// sortRows sorts rows in place on the sort key. Null-valued rows sort after
// any non-null row regardless of direction; numeric pairs compare by value;
// everything else compares by case-insensitive string.
func sortRows(rows []table.Row, state SortState) {
	descending := state.Direction == SortDescending
	sort.SliceStable(rows, func(i, j int) bool {
		return compareCells(rows[i][state.Key], rows[j][state.Key], descending) < 0
	})
}

func compareCells(a, b table.Scalar, descending bool) int {
	aNull, bNull := a.IsNull(), b.IsNull()
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1 // null always sorts last, direction does not apply
	case bNull:
		return -1
	}

	var cmp int
	if an, aok := a.Number(); aok {
		if bn, bok := b.Number(); bok {
			switch {
			case an < bn:
				cmp = -1
			case an > bn:
				cmp = 1
			}
			if descending {
				cmp = -cmp
			}
			return cmp
		}
	}

	cmp = strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
	if descending {
		cmp = -cmp
	}
	return cmp
}
