package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

var (
	ErrNoSheets        = errors.New("no sheets to lay out")
	ErrDegenerateSheet = errors.New("sheet height must be positive")
)

// AttachTitles gives each title to the first sheet containing its insertion
// point. Titles that land on no sheet, or on a sheet that already has one,
// are returned.
func AttachTitles(sheets []*Sheet, titles []Placement) []Placement {
	var dropped []Placement
	for _, t := range titles {
		sheet := Locate(sheets, t.InsertionPoint())
		if sheet == nil || sheet.AttachTitle(t) != nil {
			dropped = append(dropped, t)
		}
	}
	return dropped
}

// Locate returns the first sheet containing p, or nil.
func Locate(sheets []*Sheet, p Point) *Sheet {
	for _, s := range sheets {
		if s.Contains(p) {
			return s
		}
	}
	return nil
}

// SortSheets orders sheets top row first and left to right within a row,
// and sets each sheet's Row. Rows are found by quantising the insertion y
// by the smallest sheet height.
func SortSheets(sheets []*Sheet) ([]*Sheet, error) {
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	minHeight := sheets[0].Height
	for _, s := range sheets[1:] {
		minHeight = min(minHeight, s.Height)
	}
	if minHeight <= 0 {
		return nil, fmt.Errorf("%w: min height %d", ErrDegenerateSheet, minHeight)
	}

	rows := make(map[int][]*Sheet)
	for _, s := range sheets {
		key := rowKey(s.Position.Y, minHeight)
		rows[key] = append(rows[key], s)
	}

	keys := make([]int, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	slices.Reverse(keys)

	ordered := make([]*Sheet, 0, len(sheets))
	for i, k := range keys {
		row := rows[k]
		sort.SliceStable(row, func(a, b int) bool {
			return row[a].Position.X < row[b].Position.X
		})
		for _, s := range row {
			s.Row = i + 1
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

func rowKey(y float64, minHeight int) int {
	return int(math.RoundToEven(y / float64(minHeight)))
}

// NumberSheets assigns unit/sequence numbers to titled sheets in layout
// order. The unit advances and the sequence restarts on every row change.
// Untitled sheets keep an empty Number.
func NumberSheets(sheets []*Sheet, startUnit, startSeq int) {
	unit := startUnit - 1
	seq := startSeq
	prevRow, first := 0, true
	for _, s := range sheets {
		if !s.HasTitle() {
			continue
		}
		if first || s.Row != prevRow {
			unit++
			seq = startSeq
			prevRow, first = s.Row, false
		} else {
			seq++
		}
		s.Number = FormatSheetNumber(unit, seq)
	}
}

// FormatSheetNumber renders a unit/sequence pair as four digits.
func FormatSheetNumber(unit, seq int) string {
	return fmt.Sprintf("%02d%02d", unit, seq)
}
