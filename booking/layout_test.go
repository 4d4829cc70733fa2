package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TIrth999999/Cinemas/model"
)

const sampleLayout = `[
	{"type":"premium","layout":{"rows":["A","B"],"columns":[1,10]}},
	{"type":"standard","layout":{"rows":["C","D","E"],"columns":[1,12]}}
]`

func sampleShow() model.ShowDetail {
	return model.ShowDetail{
		Id: "show-1",
		Price: []model.PriceEntry{
			{LayoutType: "premium", Price: 400},
			{LayoutType: "standard", Price: 200},
		},
		Screen: model.ShowScreen{
			Id:     "screen-1",
			Layout: json.RawMessage(sampleLayout),
		},
		Orders: []model.Order{
			{
				Status: model.OrderStatusCompleted,
				SeatData: model.OrderSeats{Seats: []model.SeatData{
					{Row: "A", Column: 3, LayoutType: "premium"},
					{Row: "C", Column: 7, LayoutType: "standard"},
				}},
			},
		},
	}
}

func TestParseSeatID(t *testing.T) {
	seat, err := ParseSeatID("A7")
	require.NoError(t, err)
	assert.Equal(t, SeatID{Row: "A", Column: 7}, seat)
	assert.Equal(t, "A7", seat.String())

	_, err = ParseSeatID("A")
	assert.Error(t, err)
	_, err = ParseSeatID("A0")
	assert.Error(t, err)
	_, err = ParseSeatID("7A")
	assert.Error(t, err)
}

func TestParseLayout(t *testing.T) {
	sections, err := ParseLayout(json.RawMessage(sampleLayout))
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "premium", sections[0].Type)
	assert.Equal(t, []string{"A", "B"}, sections[0].Rows)
	assert.Equal(t, 10, sections[0].ColumnCount())
	assert.Equal(t, 12, sections[1].ColumnCount())
}

func TestParseLayoutStringIndirection(t *testing.T) {
	// The server sometimes double-encodes the layout as a JSON string.
	wrapped, err := json.Marshal(sampleLayout)
	require.NoError(t, err)

	sections, err := ParseLayout(wrapped)
	require.NoError(t, err)
	assert.Len(t, sections, 2)
}

func TestParseLayoutRejectsBadInput(t *testing.T) {
	_, err := ParseLayout(nil)
	assert.Error(t, err)

	_, err = ParseLayout(json.RawMessage(`[]`))
	assert.Error(t, err)

	_, err = ParseLayout(json.RawMessage(`[{"type":"x","layout":{"rows":[],"columns":[1,5]}}]`))
	assert.Error(t, err)

	_, err = ParseLayout(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestNewLayoutBookedSeats(t *testing.T) {
	layout, err := NewLayout(sampleShow())
	require.NoError(t, err)

	assert.True(t, layout.IsBooked(SeatID{Row: "A", Column: 3}))
	assert.True(t, layout.IsBooked(SeatID{Row: "C", Column: 7}))
	assert.False(t, layout.IsBooked(SeatID{Row: "A", Column: 4}))
	assert.Equal(t, 2, layout.BookedCount())
}

func TestSectionFor(t *testing.T) {
	layout, err := NewLayout(sampleShow())
	require.NoError(t, err)

	section, ok := layout.SectionFor(SeatID{Row: "B", Column: 1})
	require.True(t, ok)
	assert.Equal(t, "premium", section.Type)

	_, ok = layout.SectionFor(SeatID{Row: "Z", Column: 1})
	assert.False(t, ok)
}

func TestCategoryFor(t *testing.T) {
	layout, err := NewLayout(sampleShow())
	require.NoError(t, err)

	category, ok := layout.CategoryFor(SeatID{Row: "D", Column: 2})
	require.True(t, ok)
	assert.Equal(t, "standard", category)

	_, ok = layout.CategoryFor(SeatID{Row: "Z", Column: 2})
	assert.False(t, ok)
}

func TestCategoryForFallsBackToFirstPriceEntry(t *testing.T) {
	show := sampleShow()
	// Price table that knows nothing about the section types.
	show.Price = []model.PriceEntry{{LayoutType: "vip", Price: 999}}

	layout, err := NewLayout(show)
	require.NoError(t, err)

	category, ok := layout.CategoryFor(SeatID{Row: "A", Column: 1})
	require.True(t, ok)
	assert.Equal(t, "vip", category)
	assert.Equal(t, 999.0, layout.PriceFor(category))
}

func TestPriceFor(t *testing.T) {
	layout, err := NewLayout(sampleShow())
	require.NoError(t, err)

	assert.Equal(t, 400.0, layout.PriceFor("premium"))
	assert.Equal(t, 200.0, layout.PriceFor("standard"))
	// Unknown categories fall back to the first entry.
	assert.Equal(t, 400.0, layout.PriceFor("balcony"))
}
