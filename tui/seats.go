package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TIrth999999/Cinemas/booking"
)

// seatRow is one renderable row of the grid, tied back to its section.
type seatRow struct {
	section int
	label   string
	cols    int
}

type seatCursor struct {
	row int
	col int // 1-based
}

func buildSeatRows(layout *booking.Layout) []seatRow {
	var rows []seatRow
	for i, section := range layout.Sections {
		for _, label := range section.Rows {
			rows = append(rows, seatRow{section: i, label: label, cols: section.ColumnCount()})
		}
	}
	return rows
}

func firstCursor(rows []seatRow) seatCursor {
	if len(rows) == 0 {
		return seatCursor{}
	}
	return seatCursor{row: 0, col: 1}
}

func (m appModel) cursorSeat() booking.SeatID {
	if m.cursor.row < 0 || m.cursor.row >= len(m.seatRows) {
		return booking.SeatID{}
	}
	return booking.SeatID{Row: m.seatRows[m.cursor.row].label, Column: m.cursor.col}
}

func (m appModel) findSeatRow(label string) int {
	for i, row := range m.seatRows {
		if row.label == label {
			return i
		}
	}
	return -1
}

// Fixed cell geometry keeps the renderer and the mouse hit test in lockstep.
// Widths are display cells, not bytes, so multibyte row labels line up.
func (m appModel) rowLabelWidth() int {
	w := 2
	for _, row := range m.seatRows {
		if lw := lipgloss.Width(row.label); lw > w {
			w = lw
		}
	}
	return w
}

func (m appModel) seatCellWidth() int {
	if !m.showSeatNumbers {
		return 2
	}
	w := 2
	for _, row := range m.seatRows {
		if lw := lipgloss.Width(fmt.Sprintf("%s%d", row.label, row.cols)); lw > w {
			w = lw
		}
	}
	return w
}

// bodyLine describes one line of the seat view body; rowIdx is -1 for
// decoration lines.
type bodyLine struct {
	rowIdx int
}

func (m appModel) seatBodyLines() []bodyLine {
	// Screen bar, blank, then per section: header plus its rows plus a
	// trailing blank. Legend lines follow but are not interactive.
	lines := []bodyLine{{rowIdx: -1}, {rowIdx: -1}}
	lastSection := -1
	for i, row := range m.seatRows {
		if row.section != lastSection {
			if lastSection != -1 {
				lines = append(lines, bodyLine{rowIdx: -1})
			}
			lines = append(lines, bodyLine{rowIdx: -1})
			lastSection = row.section
		}
		lines = append(lines, bodyLine{rowIdx: i})
	}
	return lines
}

// seatAt maps a terminal coordinate to a seat. The y axis is offset by the
// header block and the blank line View inserts after it.
func (m appModel) seatAt(x, y int) (booking.SeatID, bool) {
	if m.layout == nil || len(m.seatRows) == 0 {
		return booking.SeatID{}, false
	}
	headerLines := lipgloss.Height(m.headerView())
	idx := y - headerLines - 1
	lines := m.seatBodyLines()
	if idx < 0 || idx >= len(lines) || lines[idx].rowIdx < 0 {
		return booking.SeatID{}, false
	}
	row := m.seatRows[lines[idx].rowIdx]

	prefix := m.rowLabelWidth() + 1
	cellWidth := m.seatCellWidth()
	if x < prefix {
		return booking.SeatID{}, false
	}
	offset := x - prefix
	col := offset/(cellWidth+1) + 1
	if offset%(cellWidth+1) >= cellWidth {
		return booking.SeatID{}, false // gap between cells
	}
	if col < 1 || col > row.cols {
		return booking.SeatID{}, false
	}
	return booking.SeatID{Row: row.label, Column: col}, true
}

func (m appModel) handleSeatMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		seat, ok := m.seatAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.moveCursorTo(seat)
		m.keyPaint = false
		m.painter.Press(seat)
		return m, nil
	case tea.MouseActionMotion:
		if !m.painter.Painting() || m.keyPaint {
			return m, nil
		}
		seat, ok := m.seatAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.moveCursorTo(seat)
		m.painter.Enter(seat)
		return m, nil
	case tea.MouseActionRelease:
		if !m.keyPaint {
			m.painter.Release()
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) moveCursorTo(seat booking.SeatID) {
	if idx := m.findSeatRow(seat.Row); idx >= 0 {
		m.cursor = seatCursor{row: idx, col: seat.Column}
	}
}

func (m appModel) handleSeatKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if m.layout == nil || len(m.seatRows) == 0 {
		return m, nil, false
	}
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1, 0)
		return m, nil, true
	case "down", "j":
		m.moveCursor(1, 0)
		return m, nil, true
	case "left", "h":
		m.moveCursor(0, -1)
		return m, nil, true
	case "right", "l":
		m.moveCursor(0, 1)
		return m, nil, true
	case " ":
		seat := m.cursorSeat()
		m.painter.Press(seat)
		m.painter.Release()
		return m, nil, true
	case "v":
		if m.painter.Painting() {
			m.painter.Release()
			m.keyPaint = false
			return m, nil, true
		}
		m.painter.Press(m.cursorSeat())
		m.keyPaint = m.painter.Painting()
		return m, nil, true
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
		return m, nil, true
	case "enter":
		if m.painter.Painting() {
			m.painter.Release()
			m.keyPaint = false
		}
		if !m.selection.Full() {
			next, cmd := m.withFlash(flashWarning,
				fmt.Sprintf("Please select all %d seat(s) before proceeding!", m.selection.Limit()))
			return next, cmd, true
		}
		m.state = stateSummary
		return m, nil, true
	}
	return m, nil, false
}

func (m *appModel) moveCursor(dr, dc int) {
	row := m.cursor.row + dr
	if row < 0 {
		row = 0
	}
	if row >= len(m.seatRows) {
		row = len(m.seatRows) - 1
	}
	col := m.cursor.col + dc
	if col < 1 {
		col = 1
	}
	if col > m.seatRows[row].cols {
		col = m.seatRows[row].cols
	}
	m.cursor = seatCursor{row: row, col: col}
	if m.keyPaint && m.painter.Painting() {
		m.painter.Enter(m.cursorSeat())
	}
}

func (m appModel) renderSeats() string {
	if m.layout == nil || len(m.seatRows) == 0 {
		return "No seat layout data."
	}

	prefixWidth := m.rowLabelWidth()
	cellWidth := m.seatCellWidth()

	styleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleBooked := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	styleSection := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))

	widest := 0
	for _, row := range m.seatRows {
		if row.cols > widest {
			widest = row.cols
		}
	}
	gridWidth := widest*(cellWidth+1) - 1

	var b strings.Builder

	// Keep this structure in sync with seatBodyLines.
	screen := " SCREEN "
	pad := gridWidth - len(screen)
	if pad < 0 {
		pad = 0
	}
	bar := strings.Repeat("─", pad/2) + screen + strings.Repeat("─", pad-pad/2)
	b.WriteString(strings.Repeat(" ", prefixWidth+1))
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Render(bar))
	b.WriteString("\n\n")

	lastSection := -1
	for i, row := range m.seatRows {
		if row.section != lastSection {
			if lastSection != -1 {
				b.WriteString("\n")
			}
			section := m.layout.Sections[row.section]
			header := fmt.Sprintf("%s — ₹%.0f", strings.ToUpper(section.Type), m.layout.PriceFor(section.Type))
			b.WriteString(strings.Repeat(" ", prefixWidth+1))
			b.WriteString(styleSection.Render(header))
			b.WriteString("\n")
			lastSection = row.section
		}

		if gap := prefixWidth - lipgloss.Width(row.label); gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		b.WriteString(row.label)
		b.WriteString(" ")
		for col := 1; col <= row.cols; col++ {
			seat := booking.SeatID{Row: row.label, Column: col}
			text := "[]"
			if m.showSeatNumbers {
				text = seat.String()
			}
			booked := m.layout.IsBooked(seat)
			selected := m.selection.Has(seat)
			if booked && !m.showSeatNumbers {
				text = "XX"
			}
			if selected && !m.showSeatNumbers {
				text = "<>"
			}
			style := styleAvailable
			switch {
			case booked:
				style = styleBooked
			case selected:
				style = styleSelected
			}
			// The cursor inverts the cell but keeps its category color.
			if i == m.cursor.row && col == m.cursor.col {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(padCell(text, cellWidth)))
			if col < row.cols {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	legend := "Legend: [] available • XX booked • <> selected"
	if m.showSeatNumbers {
		legend = "Legend: green available • red booked • cyan selected"
	}
	status := fmt.Sprintf("Picked: %d/%d • Subtotal: ₹%.2f • Already booked: %d",
		m.selection.Count(), m.selection.Limit(), m.selection.TotalPrice(), m.layout.BookedCount())
	if m.painter.Painting() && m.keyPaint {
		status += " • painting (v to stop)"
	}
	return b.String() + "\n" + hint(legend) + "\n" + hint(status)
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(text) > width {
		runes := []rune(text)
		for len(runes) > 0 && lipgloss.Width(string(runes)) > width {
			runes = runes[:len(runes)-1]
		}
		text = string(runes)
	}
	padding := width - lipgloss.Width(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
