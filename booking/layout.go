package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/TIrth999999/Cinemas/model"
)

// SeatID identifies one seat within a show: a row letter and a 1-based
// column, serialized as "A7".
type SeatID struct {
	Row    string
	Column int
}

func (s SeatID) String() string {
	return fmt.Sprintf("%s%d", s.Row, s.Column)
}

// ParseSeatID parses the "A7" form.
func ParseSeatID(raw string) (SeatID, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return SeatID{}, fmt.Errorf("invalid seat %q", raw)
	}
	column, err := strconv.Atoi(raw[1:])
	if err != nil || column < 1 {
		return SeatID{}, fmt.Errorf("invalid seat %q", raw)
	}
	return SeatID{Row: raw[:1], Column: column}, nil
}

// Section is one priced block of the seat grid: a category label, the rows
// belonging to it and the inclusive column range.
type Section struct {
	Type    string
	Rows    []string
	Columns [2]int
}

// ColumnCount returns how many columns a section row spans.
func (s Section) ColumnCount() int {
	return s.Columns[1]
}

type sectionJSON struct {
	Type   string `json:"type"`
	Layout struct {
		Rows    []string `json:"rows"`
		Columns [2]int   `json:"columns"`
	} `json:"layout"`
}

// ParseLayout decodes a screen layout. The server sometimes sends the layout
// pre-serialized as a JSON string, so one level of string indirection is
// tolerated.
func ParseLayout(raw json.RawMessage) ([]Section, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty screen layout")
	}

	data := []byte(raw)
	var nested string
	if err := json.Unmarshal(data, &nested); err == nil {
		data = []byte(nested)
	}

	var blocks []sectionJSON
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("parse screen layout: %w", err)
	}
	if len(blocks) == 0 {
		return nil, errors.New("screen layout has no sections")
	}

	sections := make([]Section, 0, len(blocks))
	for _, block := range blocks {
		if len(block.Layout.Rows) == 0 || block.Layout.Columns[1] < 1 {
			return nil, fmt.Errorf("section %q has no seats", block.Type)
		}
		sections = append(sections, Section{
			Type:    block.Type,
			Rows:    block.Layout.Rows,
			Columns: block.Layout.Columns,
		})
	}
	return sections, nil
}

// Layout is the static seat grid for one show: its sections, the price
// table, and the seats already taken by other orders. The booked snapshot is
// fixed at load time; a clash with a concurrent booking is only caught by
// the server at order creation.
type Layout struct {
	Sections []Section
	Prices   []model.PriceEntry
	booked   map[SeatID]bool
}

// NewLayout builds the layout from a show detail response, flattening every
// seat across every attached order into the booked set.
func NewLayout(show model.ShowDetail) (*Layout, error) {
	sections, err := ParseLayout(show.Screen.Layout)
	if err != nil {
		return nil, err
	}

	booked := make(map[SeatID]bool)
	for _, order := range show.Orders {
		for _, seat := range order.SeatData.Seats {
			booked[SeatID{Row: seat.Row, Column: seat.Column}] = true
		}
	}

	return &Layout{
		Sections: sections,
		Prices:   show.Price,
		booked:   booked,
	}, nil
}

// IsBooked reports whether another order already holds this seat.
func (l *Layout) IsBooked(seat SeatID) bool {
	return l.booked[seat]
}

// BookedCount returns how many seats are taken.
func (l *Layout) BookedCount() int {
	return len(l.booked)
}

// SectionFor finds the section owning a seat's row.
func (l *Layout) SectionFor(seat SeatID) (Section, bool) {
	for _, section := range l.Sections {
		for _, row := range section.Rows {
			if row == seat.Row {
				return section, true
			}
		}
	}
	return Section{}, false
}

// CategoryFor resolves the price category recorded for a seat. An exact
// price-table match wins; a section with no matching price entry falls back
// to the first entry so downstream price math keeps working on a schema
// mismatch. Only a seat outside every section is unresolvable.
func (l *Layout) CategoryFor(seat SeatID) (string, bool) {
	section, ok := l.SectionFor(seat)
	if !ok {
		return "", false
	}
	for _, entry := range l.Prices {
		if entry.LayoutType == section.Type {
			return entry.LayoutType, true
		}
	}
	if len(l.Prices) > 0 {
		return l.Prices[0].LayoutType, true
	}
	return section.Type, true
}

// PriceFor returns the unit price for a category, falling back to the first
// price entry when the category is unknown.
func (l *Layout) PriceFor(category string) float64 {
	for _, entry := range l.Prices {
		if entry.LayoutType == category {
			return entry.Price
		}
	}
	if len(l.Prices) > 0 {
		return l.Prices[0].Price
	}
	return 0
}
