package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TIrth999999/Cinemas/booking"
	"github.com/TIrth999999/Cinemas/model"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("5")).
	Padding(1, 2)

func (m appModel) renderSummary() string {
	if m.selection == nil || m.show.Id == "" {
		return "Booking details missing."
	}
	subtotal := m.selection.TotalPrice()
	percent := m.deps.Config.ServiceChargePercent
	charge := booking.ServiceCharge(subtotal, percent)
	total := booking.FinalTotal(subtotal, percent)

	var seats []string
	for _, picked := range m.selection.Seats() {
		seats = append(seats, picked.Seat.String())
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Booking Summary") + "\n\n")
	b.WriteString(fmt.Sprintf("Movie    %s\n", m.show.Movie.Name))
	b.WriteString(fmt.Sprintf("Theater  %s\n", m.show.Screen.TheaterName))
	b.WriteString(fmt.Sprintf("Time     %s\n", m.show.StartTime.Local().Format("Mon, 02 Jan 2006 15:04")))
	b.WriteString(fmt.Sprintf("Seats    %s\n\n", strings.Join(seats, ", ")))
	b.WriteString(fmt.Sprintf("Subtotal        ₹%.2f\n", subtotal))
	b.WriteString(fmt.Sprintf("Service charge  ₹%.2f (%d%%)\n", charge, percent))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Total           ₹%.2f", total)))

	return cardStyle.Render(b.String()) + "\n\n" + hint("Press enter to proceed to payment.")
}

func (m appModel) renderPaymentPending() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Complete your payment") + "\n\n")
	b.WriteString("A checkout page was opened in your browser.\n")
	b.WriteString("Finish the payment there, then come back here.\n\n")
	b.WriteString(hint("Payment link: "+m.paymentURL) + "\n\n")
	b.WriteString("If the success page shows a session_id, paste it below for an\n")
	b.WriteString("exact verification. Leaving it empty checks your recent orders\n")
	b.WriteString("instead.\n\n")
	b.WriteString(m.sessionInput.View())
	return b.String()
}

func (m appModel) renderPaymentDone() string {
	if m.resolveErr != nil {
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")).Render("Payment not confirmed") + "\n\n")
		b.WriteString("We could not confirm your payment yet. If you did pay, the\n")
		b.WriteString("order may still be processing; check your tickets shortly.\n\n")
		b.WriteString(hint(m.resolveErr.Error()) + "\n\n")
		b.WriteString(hint("r retry verification • enter/esc home"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("Payment confirmed!") + "\n\n")
	b.WriteString(fmt.Sprintf("Order %s was confirmed via %s.\n\n", shortID(m.resolvedOrder), m.resolvedVia))
	b.WriteString(hint("Press enter to view your ticket."))
	return b.String()
}

func renderTicket(order model.Order) string {
	var seats []string
	for _, seat := range order.SeatData.Seats {
		seats = append(seats, fmt.Sprintf("%s%d", seat.Row, seat.Column))
	}

	var b strings.Builder
	if order.Status == model.OrderStatusPending {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")).Render("PENDING — payment processing") + "\n\n")
	} else {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("🎟  Your Ticket") + "\n\n")
	}
	b.WriteString(fmt.Sprintf("Movie    %s\n", order.Showtime.Movie.Name))
	if order.Showtime.Screen.TheaterName != "" {
		b.WriteString(fmt.Sprintf("Theater  %s\n", order.Showtime.Screen.TheaterName))
	}
	b.WriteString(fmt.Sprintf("Time     %s\n", order.Showtime.StartTime.Local().Format("Mon, 02 Jan 2006 15:04")))
	b.WriteString(fmt.Sprintf("Seats    %s\n", strings.Join(seats, ", ")))
	b.WriteString(fmt.Sprintf("Paid     ₹%.2f\n", order.TotalPrice))
	b.WriteString(fmt.Sprintf("Status   %s\n", order.Status))
	b.WriteString(fmt.Sprintf("Order    %s", shortID(order.Id)))

	note := ""
	if order.Status == model.OrderStatusPending {
		note = "\n\n" + hint("This order is awaiting payment confirmation. Refresh tickets later.")
	}
	return cardStyle.Render(b.String()) + note
}

func (m appModel) handleTicketKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if msg.String() != "s" {
		return m, nil, false
	}
	path, err := saveTicket(m.ticket)
	if err != nil {
		next, cmd := m.withFlash(flashError, "Could not save the ticket: "+err.Error())
		return next, cmd, true
	}
	next, cmd := m.withFlash(flashSuccess, "Ticket saved to "+path)
	return next, cmd, true
}

// saveTicket writes a plain-text copy of the ticket into the working
// directory and returns the file name.
func saveTicket(order model.Order) (string, error) {
	var seats []string
	for _, seat := range order.SeatData.Seats {
		seats = append(seats, fmt.Sprintf("%s%d", seat.Row, seat.Column))
	}

	var b strings.Builder
	b.WriteString("CinemaS Ticket\n")
	b.WriteString("==============\n\n")
	b.WriteString(fmt.Sprintf("Movie:   %s\n", order.Showtime.Movie.Name))
	if order.Showtime.Screen.TheaterName != "" {
		b.WriteString(fmt.Sprintf("Theater: %s\n", order.Showtime.Screen.TheaterName))
	}
	b.WriteString(fmt.Sprintf("Time:    %s\n", order.Showtime.StartTime.Local().Format("Mon, 02 Jan 2006 15:04")))
	b.WriteString(fmt.Sprintf("Seats:   %s\n", strings.Join(seats, ", ")))
	b.WriteString(fmt.Sprintf("Paid:    ₹%.2f\n", order.TotalPrice))
	b.WriteString(fmt.Sprintf("Status:  %s\n", order.Status))
	b.WriteString(fmt.Sprintf("Order:   %s\n", order.Id))

	name := fmt.Sprintf("CinemaS-Ticket-%s.txt", shortID(order.Id))
	if err := os.WriteFile(name, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
