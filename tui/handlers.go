package tui

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TIrth999999/Cinemas/booking"
	"github.com/TIrth999999/Cinemas/model"
	"github.com/TIrth999999/Cinemas/service"
)

func (m appModel) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loginForm.submitting = false
		if service.IsUnauthorized(msg.err) {
			return m.withFlash(flashError, "Invalid email or password.")
		}
		return m.withFlash(flashError, loginFailureText(msg.err))
	}

	var expiry time.Time
	if msg.result.ExpireAt > 0 {
		expiry = time.Unix(msg.result.ExpireAt, 0)
	}
	m.deps.Session.Login(msg.result.AccessToken, expiry, msg.email)
	m.loginForm = newLoginForm()
	m.state = stateLoadingCatalog
	return m.withFlash(flashSuccess, "Login successful!",
		m.fetchCatalogCmd(), m.spinner.Tick)
}

func (m appModel) handleSignup(msg signupMsg) (tea.Model, tea.Cmd) {
	m.signupForm.submitting = false
	if msg.err != nil {
		return m.withFlash(flashError, apiFailureText(msg.err, "Signup failed. Please try again."))
	}
	m.signupForm = newSignupForm()
	m.loginForm = newLoginForm()
	m.loginForm.email.SetValue(msg.email)
	m.state = stateLogin
	return m.withFlash(flashSuccess, "Account created! Please login.", m.loginForm.focusCmd())
}

func (m appModel) handleCatalog(msg catalogMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if service.IsUnauthorized(msg.err) {
			// The session manager fires the unauthorized hook; a
			// SessionEndedMsg is already on its way.
			return m, nil
		}
		return m, errWithReturnCmd(msg.err, stateLogin)
	}
	m.movies = msg.movies
	m.theaters = msg.theaters
	m.movieList.SetItems(buildMovieItems(msg.movies))
	m.theaterList.SetItems(buildTheaterItems(msg.theaters))
	m.movieDetail = model.MovieDetail{}
	m.state = stateHome
	m.resizeLists()
	return m, nil
}

func (m appModel) handleMovieDetail(msg movieDetailMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if service.IsUnauthorized(msg.err) {
			return m, nil
		}
		return m, errWithReturnCmd(msg.err, stateHome)
	}
	m.movieDetail = msg.detail
	if len(msg.detail.Theaters) == 0 {
		m.state = stateHome
		return m.withFlash(flashWarning, "No theaters are playing this movie right now.")
	}
	m.movieTheaterList.Title = fmt.Sprintf("Theaters playing %s", msg.detail.Name)
	m.movieTheaterList.SetItems(buildTheaterItems(msg.detail.Theaters))
	m.movieTheaterList.Select(0)
	m.state = stateMovieTheaters
	m.resizeLists()
	return m, nil
}

func (m appModel) handleSchedule(msg scheduleMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if service.IsUnauthorized(msg.err) {
			return m, nil
		}
		return m, errWithReturnCmd(msg.err, stateHome)
	}
	if len(msg.dates) == 0 {
		if m.movieDetail.Id != "" {
			m.state = stateMovieTheaters
		} else {
			m.state = stateHome
		}
		return m.withFlash(flashWarning, "No upcoming showtimes at this theater.")
	}
	m.schedule = msg.slots
	m.dates = msg.dates
	m.activeDate = msg.dates[0]
	slots := msg.slots[m.activeDate]
	if m.movieDetail.Id != "" {
		slots = filterSlotsByMovie(slots, m.movieDetail.Id)
		// The chosen date may only have other movies; fall through to the
		// first date that has this one.
		if len(slots) == 0 {
			for _, d := range msg.dates {
				if filtered := filterSlotsByMovie(msg.slots[d], m.movieDetail.Id); len(filtered) > 0 {
					m.activeDate = d
					slots = filtered
					break
				}
			}
		}
		if len(slots) == 0 {
			m.state = stateMovieTheaters
			return m.withFlash(flashWarning, "No upcoming showtimes for this movie here.")
		}
	}
	m.showList.SetItems(buildShowItems(slots))
	m.showList.Select(0)
	m.state = stateSchedule
	m.resizeLists()
	return m, nil
}

func filterSlotsByMovie(slots []showSlot, movieID string) []showSlot {
	var out []showSlot
	for _, s := range slots {
		if s.MovieId == movieID {
			out = append(out, s)
		}
	}
	return out
}

func (m appModel) handleShowDetail(msg showDetailMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if service.IsUnauthorized(msg.err) {
			return m, nil
		}
		return m, errWithReturnCmd(msg.err, stateSchedule)
	}
	layout, err := booking.NewLayout(msg.show)
	if err != nil {
		return m, errWithReturnCmd(fmt.Errorf("seat layout: %w", err), stateSchedule)
	}
	m.show = msg.show
	m.layout = layout
	m.selection = booking.NewSelection(layout, m.partySize)
	m.painter = booking.NewPainter(m.selection)
	m.seatRows = buildSeatRows(layout)
	m.cursor = firstCursor(m.seatRows)
	m.keyPaint = false
	m.state = stateSeats
	return m, nil
}

func (m appModel) handleOrderCreated(msg orderCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if service.IsUnauthorized(msg.err) {
			return m, nil
		}
		m.state = stateSummary
		return m.withFlash(flashError, apiFailureText(msg.err, "Unable to initiate payment. Please try again."))
	}
	if msg.res.PaymentUrl == "" {
		m.state = stateSummary
		return m.withFlash(flashError, "Payment link missing from server response.")
	}
	m.createdOrderID = msg.res.OrderId
	m.paymentURL = msg.res.PaymentUrl
	m.sessionInput = newSessionInput()
	m.state = statePaymentPending
	if err := openURL(msg.res.PaymentUrl); err != nil {
		m.deps.Logger.Warn().Err(err).Msg("browser open failed")
		return m.withFlash(flashWarning, "Could not open your browser. Copy the payment link shown below.",
			m.sessionInput.Focus())
	}
	return m, m.sessionInput.Focus()
}

func (m appModel) handlePaymentPendingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateHome
		return m.withFlash(flashInfo, "You can check your order anytime under tickets (ctrl+t).")
	case "enter":
		sessionID := m.sessionInput.Value()
		m.state = stateResolving
		return m, tea.Batch(m.resolveOrderCmd(sessionID), m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.sessionInput, cmd = m.sessionInput.Update(msg)
	return m, cmd
}

func (m appModel) handlePaymentResolved(msg paymentResolvedMsg) (tea.Model, tea.Cmd) {
	if service.IsUnauthorized(msg.err) {
		return m, nil
	}
	m.state = statePaymentDone
	if msg.err != nil {
		m.resolvedOrder = ""
		m.resolveErr = msg.err
		return m, nil
	}
	m.resolvedOrder = msg.orderID
	m.resolveErr = nil
	if msg.verified {
		m.resolvedVia = "payment verification"
	} else {
		m.resolvedVia = "your recent orders"
	}
	return m.withFlash(flashSuccess, "Ticket booked successfully!")
}

func (m appModel) handlePaymentDoneKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		if m.resolveErr != nil || m.resolvedOrder == "" {
			m.state = stateHome
			return m, nil, true
		}
		m.state = stateLoadingTickets
		return m, tea.Batch(m.fetchOrdersCmd(), m.spinner.Tick), true
	case "r":
		if m.resolveErr != nil {
			m.state = statePaymentPending
			return m, m.sessionInput.Focus(), true
		}
	}
	return m, nil, false
}

func (m appModel) handleOrders(msg ordersMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if service.IsUnauthorized(msg.err) {
			return m, nil
		}
		return m, errWithReturnCmd(msg.err, stateHome)
	}
	m.orders = msg.orders

	// Landing here after a successful payment jumps straight to that ticket.
	if m.resolvedOrder != "" {
		if order, ok := booking.FindOrder(msg.orders, m.resolvedOrder); ok {
			m.ticket = order
			m.resolvedOrder = ""
			m.state = stateTicket
			return m, nil
		}
		m.resolvedOrder = ""
	}

	sorted := append([]model.Order(nil), msg.orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) == 0 {
		m.state = stateHome
		return m.withFlash(flashInfo, "No tickets yet. Book a show first!")
	}
	m.ticketList.SetItems(buildTicketItems(sorted))
	m.ticketList.Select(0)
	m.state = stateTickets
	m.resizeLists()
	return m, nil
}

func (m appModel) handleSummaryKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	if msg.Type != tea.KeyEnter {
		return m, nil, false
	}
	if m.selection == nil || m.show.Id == "" || !m.selection.Full() {
		m.state = stateHome
		next, cmd := m.withFlash(flashWarning, "Booking details missing. Start again from a showtime.")
		return next, cmd, true
	}
	m.state = statePaying
	return m, tea.Batch(m.createOrderCmd(), m.spinner.Tick), true
}

func loginFailureText(err error) string {
	return apiFailureText(err, "Login failed. Please try again.")
}

func apiFailureText(err error, fallback string) string {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
		return fallback
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return "Cannot reach the server. Check your connection."
	}
	return fallback
}
