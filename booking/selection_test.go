package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(t *testing.T, partySize int) (*Layout, *Selection) {
	t.Helper()
	layout, err := NewLayout(sampleShow())
	require.NoError(t, err)
	return layout, NewSelection(layout, partySize)
}

func TestToggleSelectsAndDeselects(t *testing.T) {
	_, sel := testLayout(t, 4)
	seat := SeatID{Row: "A", Column: 1}

	sel.Toggle(seat)
	assert.True(t, sel.Has(seat))
	assert.Equal(t, 1, sel.Count())

	sel.Toggle(seat)
	assert.False(t, sel.Has(seat))
	assert.Equal(t, 0, sel.Count())
}

func TestBookedSeatNeverSelects(t *testing.T) {
	_, sel := testLayout(t, 4)
	booked := SeatID{Row: "A", Column: 3}

	sel.Toggle(booked)
	assert.False(t, sel.Has(booked))

	sel.Apply(booked, ModeSelect)
	assert.False(t, sel.Has(booked))
}

func TestSelectionLimitCaps(t *testing.T) {
	_, sel := testLayout(t, 2)

	sel.Toggle(SeatID{Row: "A", Column: 1})
	sel.Toggle(SeatID{Row: "A", Column: 2})
	sel.Toggle(SeatID{Row: "A", Column: 4})

	assert.Equal(t, 2, sel.Count())
	assert.True(t, sel.Full())
	assert.Equal(t, 0, sel.SeatsLeft())
	assert.False(t, sel.Has(SeatID{Row: "A", Column: 4}))

	// Deselecting frees a slot for a new pick.
	sel.Toggle(SeatID{Row: "A", Column: 1})
	sel.Toggle(SeatID{Row: "A", Column: 4})
	assert.True(t, sel.Has(SeatID{Row: "A", Column: 4}))
}

func TestSeatOutsideSectionsIgnored(t *testing.T) {
	_, sel := testLayout(t, 4)

	sel.Toggle(SeatID{Row: "Z", Column: 1})
	assert.Equal(t, 0, sel.Count())
}

func TestApplyIsIdempotentPerMode(t *testing.T) {
	_, sel := testLayout(t, 4)
	seat := SeatID{Row: "B", Column: 5}

	sel.Apply(seat, ModeSelect)
	sel.Apply(seat, ModeSelect)
	assert.Equal(t, 1, sel.Count())

	sel.Apply(seat, ModeDeselect)
	sel.Apply(seat, ModeDeselect)
	assert.Equal(t, 0, sel.Count())
}

func TestTotalPriceAndPartySizeClamp(t *testing.T) {
	_, sel := testLayout(t, 3)

	sel.Toggle(SeatID{Row: "A", Column: 1}) // premium 400
	sel.Toggle(SeatID{Row: "C", Column: 1}) // standard 200
	assert.Equal(t, 600.0, sel.TotalPrice())

	clamped := NewSelection(sel.layout, 0)
	assert.Equal(t, 1, clamped.Limit())
}

func TestOrderSeatsPayload(t *testing.T) {
	_, sel := testLayout(t, 2)
	sel.Toggle(SeatID{Row: "A", Column: 1})
	sel.Toggle(SeatID{Row: "C", Column: 2})

	payload := sel.OrderSeats()
	require.Len(t, payload.Seats, 2)
	assert.Equal(t, "A", payload.Seats[0].Row)
	assert.Equal(t, 1, payload.Seats[0].Column)
	assert.Equal(t, "premium", payload.Seats[0].LayoutType)
	assert.Equal(t, "standard", payload.Seats[1].LayoutType)
}

func TestPainterSelectDrag(t *testing.T) {
	_, sel := testLayout(t, 10)
	p := NewPainter(sel)

	p.Press(SeatID{Row: "A", Column: 1})
	assert.True(t, p.Painting())
	p.Enter(SeatID{Row: "A", Column: 2})
	p.Enter(SeatID{Row: "A", Column: 4})
	p.Release()
	assert.False(t, p.Painting())

	assert.Equal(t, 3, sel.Count())
}

// A drag that starts on a selected seat deselects everything it crosses,
// including seats it re-enters, so sweeping back over a fresh selection
// empties it.
func TestPainterDeselectDragClearsRun(t *testing.T) {
	_, sel := testLayout(t, 10)
	p := NewPainter(sel)

	for col := 1; col <= 2; col++ {
		sel.Toggle(SeatID{Row: "A", Column: col})
	}
	assert.Equal(t, 800.0, sel.TotalPrice())

	p.Press(SeatID{Row: "A", Column: 1})
	p.Enter(SeatID{Row: "A", Column: 2})
	p.Release()

	assert.Equal(t, 0, sel.Count())
	assert.Equal(t, 0.0, sel.TotalPrice())
}

// A select-mode drag crossing an already-selected seat leaves it selected
// rather than flipping it off.
func TestPainterSelectDragLeavesSelectedSeatsAlone(t *testing.T) {
	_, sel := testLayout(t, 10)
	p := NewPainter(sel)

	sel.Toggle(SeatID{Row: "A", Column: 2})

	p.Press(SeatID{Row: "A", Column: 1})
	p.Enter(SeatID{Row: "A", Column: 2})
	p.Enter(SeatID{Row: "A", Column: 4})
	p.Release()

	assert.Equal(t, 3, sel.Count())
}

func TestPainterPressOnBookedStartsNothing(t *testing.T) {
	_, sel := testLayout(t, 10)
	p := NewPainter(sel)

	p.Press(SeatID{Row: "A", Column: 3})
	assert.False(t, p.Painting())

	// Motion without a gesture is a no-op.
	p.Enter(SeatID{Row: "A", Column: 4})
	assert.Equal(t, 0, sel.Count())
}

func TestPainterDragSkipsBookedSeats(t *testing.T) {
	_, sel := testLayout(t, 10)
	p := NewPainter(sel)

	p.Press(SeatID{Row: "A", Column: 2})
	p.Enter(SeatID{Row: "A", Column: 3}) // booked
	p.Enter(SeatID{Row: "A", Column: 4})
	p.Release()

	assert.Equal(t, 2, sel.Count())
	assert.False(t, sel.Has(SeatID{Row: "A", Column: 3}))
}
