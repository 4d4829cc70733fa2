package booking

import "github.com/TIrth999999/Cinemas/model"

// Mode is the direction of a toggle or drag gesture.
type Mode int

const (
	modeFlip Mode = iota // no explicit mode: flip current state
	ModeSelect
	ModeDeselect
)

// Selected is one chosen seat with its resolved price category.
type Selected struct {
	Seat     SeatID
	Category string
}

// Selection is the mutable set of chosen seats, bounded by the party size
// fixed when the flow was entered. Booked seats never enter the set.
type Selection struct {
	layout *Layout
	limit  int
	picks  []Selected
}

// NewSelection creates an empty selection with the given party-size limit.
func NewSelection(layout *Layout, partySize int) *Selection {
	if partySize < 1 {
		partySize = 1
	}
	return &Selection{layout: layout, limit: partySize}
}

// Toggle flips a seat's state: select if unselected, deselect otherwise.
func (s *Selection) Toggle(seat SeatID) {
	s.apply(seat, modeFlip)
}

// Apply forces a seat to the given mode, as drag gestures do.
func (s *Selection) Apply(seat SeatID, mode Mode) {
	s.apply(seat, mode)
}

// apply implements the single-seat state machine. Every rejection is a
// silent no-op: booked seat, at-limit select, seat outside every section.
func (s *Selection) apply(seat SeatID, mode Mode) {
	if s.layout.IsBooked(seat) {
		return
	}

	at := s.indexOf(seat)
	shouldSelect := mode == ModeSelect || (mode == modeFlip && at < 0)

	if shouldSelect {
		if at >= 0 {
			return
		}
		if len(s.picks) >= s.limit {
			return
		}
		category, ok := s.layout.CategoryFor(seat)
		if !ok {
			return
		}
		s.picks = append(s.picks, Selected{Seat: seat, Category: category})
		return
	}

	if at < 0 {
		return
	}
	s.picks = append(s.picks[:at], s.picks[at+1:]...)
}

func (s *Selection) indexOf(seat SeatID) int {
	for i, pick := range s.picks {
		if pick.Seat == seat {
			return i
		}
	}
	return -1
}

// Has reports whether a seat is currently selected.
func (s *Selection) Has(seat SeatID) bool {
	return s.indexOf(seat) >= 0
}

// Seats returns the picks in selection order.
func (s *Selection) Seats() []Selected {
	out := make([]Selected, len(s.picks))
	copy(out, s.picks)
	return out
}

// Count returns how many seats are selected.
func (s *Selection) Count() int {
	return len(s.picks)
}

// Limit returns the party size the selection was created with.
func (s *Selection) Limit() int {
	return s.limit
}

// SeatsLeft returns how many more seats must be picked before paying.
func (s *Selection) SeatsLeft() int {
	return s.limit - len(s.picks)
}

// Full reports whether the selection has reached the party size.
func (s *Selection) Full() bool {
	return len(s.picks) >= s.limit
}

// TotalPrice sums each selected seat's resolved unit price.
func (s *Selection) TotalPrice() float64 {
	var total float64
	for _, pick := range s.picks {
		total += s.layout.PriceFor(pick.Category)
	}
	return total
}

// OrderSeats converts the selection into the order-creation payload.
func (s *Selection) OrderSeats() model.OrderSeats {
	seats := make([]model.SeatData, 0, len(s.picks))
	for _, pick := range s.picks {
		seats = append(seats, model.SeatData{
			Row:        pick.Seat.Row,
			Column:     pick.Seat.Column,
			LayoutType: pick.Category,
		})
	}
	return model.OrderSeats{Seats: seats}
}

// Painter is the drag gesture as an explicit state machine: Idle until a
// press, then Painting in one direction until released. A single gesture can
// select a run of seats or deselect one, never both.
type Painter struct {
	sel  *Selection
	mode Mode
}

func NewPainter(sel *Selection) *Painter {
	return &Painter{sel: sel}
}

// Press starts a gesture on a seat: the mode comes from the pressed seat's
// state and the toggle is applied immediately. Pressing a booked seat does
// nothing and starts nothing.
func (p *Painter) Press(seat SeatID) {
	if p.sel.layout.IsBooked(seat) {
		return
	}
	if p.sel.Has(seat) {
		p.mode = ModeDeselect
	} else {
		p.mode = ModeSelect
	}
	p.sel.Apply(seat, p.mode)
}

// Enter re-applies the gesture's mode to a newly entered seat. Outside a
// gesture it does nothing.
func (p *Painter) Enter(seat SeatID) {
	if p.mode == modeFlip {
		return
	}
	p.sel.Apply(seat, p.mode)
}

// Release ends the gesture wherever the pointer is.
func (p *Painter) Release() {
	p.mode = modeFlip
}

// Painting reports whether a gesture is in progress.
func (p *Painter) Painting() bool {
	return p.mode != modeFlip
}
