package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/TIrth999999/Cinemas/booking"
	"github.com/TIrth999999/Cinemas/config"
	"github.com/TIrth999999/Cinemas/model"
	"github.com/TIrth999999/Cinemas/service"
	"github.com/TIrth999999/Cinemas/session"
)

type appState int

const (
	stateLogin appState = iota
	stateSignup
	stateLoadingCatalog
	stateHome
	stateLoadingMovie
	stateMovieTheaters
	stateLoadingSchedule
	stateSchedule
	stateSelectDate
	statePartySize
	stateLoadingSeats
	stateSeats
	stateSummary
	statePaying
	statePaymentPending
	stateResolving
	statePaymentDone
	stateLoadingTickets
	stateTickets
	stateTicket
	stateError
)

type homeTab int

const (
	tabMovies homeTab = iota
	tabTheaters
)

// Deps are the collaborators the TUI is wired with.
type Deps struct {
	Config  config.Config
	Client  *service.Client
	Session *session.Manager
	Logger  zerolog.Logger
}

type appModel struct {
	deps Deps

	state     appState
	lastState appState
	err       error

	width  int
	height int

	flash     string
	flashKind flashKind
	flashSeq  int

	loginForm  loginForm
	signupForm signupForm

	homeTab     homeTab
	movies      []model.Movie
	theaters    []model.Theater
	movieDetail model.MovieDetail

	theater    model.Theater
	schedule   map[string][]showSlot
	dates      []string
	activeDate string

	selectedShow showSlot
	partySize    int

	show      model.ShowDetail
	layout          *booking.Layout
	selection       *booking.Selection
	painter         *booking.Painter
	seatRows        []seatRow
	cursor          seatCursor
	keyPaint        bool
	showSeatNumbers bool

	createdOrderID string
	paymentURL     string
	sessionInput   textinput.Model
	resolvedOrder  string
	resolvedVia    string
	resolveErr     error

	orders []model.Order
	ticket model.Order

	movieList        list.Model
	theaterList      list.Model
	movieTheaterList list.Model
	showList         list.Model
	dateList         list.Model
	partyList        list.Model
	ticketList       list.Model

	spinner spinner.Model
}

// SessionEndedMsg is delivered by the session manager whenever a session
// ends for any reason; the TUI returns to the login screen.
type SessionEndedMsg struct {
	Reason session.LogoutReason
}

// New builds the TUI model. The session manager decides the initial state:
// a restored session goes straight to the catalog.
func New(deps Deps) tea.Model {
	m := appModel{
		deps:            deps,
		partySize:       1,
		showSeatNumbers: true,
	}

	m.movieList = newList("Movies")
	m.theaterList = newList("Theaters")
	m.movieTheaterList = newList("Theaters")
	m.showList = newList("Showtimes")
	m.dateList = newList("Select Date")
	m.partyList = newList("How many seats?")
	m.ticketList = newList("My Tickets")

	m.loginForm = newLoginForm()
	m.signupForm = newSignupForm()
	m.sessionInput = newSessionInput()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	if deps.Session.Authenticated() {
		m.state = stateLoadingCatalog
	} else {
		m.state = stateLogin
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.state == stateLoadingCatalog {
		return tea.Batch(m.fetchCatalogCmd(), m.spinner.Tick)
	}
	return m.loginForm.focusCmd()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.MouseMsg:
		if m.state == stateSeats {
			return m.handleSeatMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.stateUsesForm() {
			return m.handleFormKey(msg)
		}
		if m.state == statePaymentPending {
			return m.handlePaymentPendingKey(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case clearFlashMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case SessionEndedMsg:
		return m.handleSessionEnded(msg)

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case loginMsg:
		return m.handleLogin(msg)
	case signupMsg:
		return m.handleSignup(msg)
	case catalogMsg:
		return m.handleCatalog(msg)
	case movieDetailMsg:
		return m.handleMovieDetail(msg)
	case scheduleMsg:
		return m.handleSchedule(msg)
	case showDetailMsg:
		return m.handleShowDetail(msg)
	case orderCreatedMsg:
		return m.handleOrderCreated(msg)
	case paymentResolvedMsg:
		return m.handlePaymentResolved(msg)
	case ordersMsg:
		return m.handleOrders(msg)
	}

	var cmd tea.Cmd
	if listPtr := m.activeList(); listPtr != nil {
		*listPtr, cmd = listPtr.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleSessionEnded(msg SessionEndedMsg) (tea.Model, tea.Cmd) {
	m.resetFlowState()
	m.loginForm = newLoginForm()
	m.state = stateLogin

	switch msg.Reason {
	case session.ReasonExpired, session.ReasonUnauthorized:
		return m.withFlash(flashError, "Session expired. Please login again.", m.loginForm.focusCmd())
	default:
		return m.withFlash(flashInfo, "Logged out.", m.loginForm.focusCmd())
	}
}

func (m *appModel) resetFlowState() {
	m.movies = nil
	m.theaters = nil
	m.movieDetail = model.MovieDetail{}
	m.theater = model.Theater{}
	m.schedule = nil
	m.dates = nil
	m.activeDate = ""
	m.selectedShow = showSlot{}
	m.partySize = 1
	m.show = model.ShowDetail{}
	m.layout = nil
	m.selection = nil
	m.painter = nil
	m.seatRows = nil
	m.keyPaint = false
	m.createdOrderID = ""
	m.paymentURL = ""
	m.resolvedOrder = ""
	m.resolveErr = nil
	m.orders = nil
	m.ticket = model.Order{}
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		return m.goBack()
	case "tab":
		if m.state == stateHome {
			if m.homeTab == tabMovies {
				m.homeTab = tabTheaters
			} else {
				m.homeTab = tabMovies
			}
			return m, nil, true
		}
	case "ctrl+t":
		if m.state == stateHome {
			m.state = stateLoadingTickets
			return m, tea.Batch(m.fetchOrdersCmd(), m.spinner.Tick), true
		}
	case "ctrl+d":
		if m.state == stateSchedule {
			m.dateList.SetItems(buildDateItems(m.dates, m.activeDate))
			m.state = stateSelectDate
			return m, nil, true
		}
	case "ctrl+q":
		if m.state == stateHome {
			m.deps.Session.Logout()
			return m, nil, true
		}
	}

	if m.state == stateSeats {
		return m.handleSeatKey(msg)
	}
	if m.state == stateSummary {
		return m.handleSummaryKey(msg)
	}
	if m.state == statePaymentDone {
		return m.handlePaymentDoneKey(msg)
	}
	if m.state == stateTicket {
		return m.handleTicketKey(msg)
	}
	if m.state == stateError && msg.Type == tea.KeyEnter {
		m.state = m.lastState
		return m, nil, true
	}

	if msg.Type == tea.KeyEnter {
		return m.handleEnter()
	}
	return m, nil, false
}

func (m appModel) handleEnter() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateHome:
		if m.homeTab == tabMovies {
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			m.state = stateLoadingMovie
			return m, tea.Batch(m.fetchMovieCmd(item.movie.Id), m.spinner.Tick), true
		}
		item, ok := m.theaterList.SelectedItem().(theaterItem)
		if !ok {
			return m, nil, true
		}
		// Theater-first browsing shows the full schedule, not one movie's.
		m.movieDetail = model.MovieDetail{}
		m.theater = item.theater
		m.state = stateLoadingSchedule
		return m, tea.Batch(m.fetchScheduleCmd(item.theater), m.spinner.Tick), true

	case stateMovieTheaters:
		item, ok := m.movieTheaterList.SelectedItem().(theaterItem)
		if !ok {
			return m, nil, true
		}
		m.theater = item.theater
		m.state = stateLoadingSchedule
		return m, tea.Batch(m.fetchScheduleCmd(item.theater), m.spinner.Tick), true

	case stateSchedule:
		item, ok := m.showList.SelectedItem().(showItem)
		if !ok {
			return m, nil, true
		}
		m.selectedShow = item.slot
		m.partyList.SetItems(buildPartyItems())
		m.partyList.Select(0)
		m.state = statePartySize
		return m, nil, true

	case stateSelectDate:
		item, ok := m.dateList.SelectedItem().(dateItem)
		if !ok {
			return m, nil, true
		}
		m.activeDate = item.date
		slots := m.schedule[m.activeDate]
		if m.movieDetail.Id != "" {
			slots = filterSlotsByMovie(slots, m.movieDetail.Id)
		}
		m.showList.SetItems(buildShowItems(slots))
		m.showList.Select(0)
		m.state = stateSchedule
		return m, nil, true

	case statePartySize:
		item, ok := m.partyList.SelectedItem().(partyItem)
		if !ok {
			return m, nil, true
		}
		m.partySize = item.size
		m.state = stateLoadingSeats
		return m, tea.Batch(m.fetchShowDetailCmd(m.selectedShow.ShowId), m.spinner.Tick), true

	case stateTickets:
		item, ok := m.ticketList.SelectedItem().(ticketItem)
		if !ok {
			return m, nil, true
		}
		m.ticket = item.order
		m.state = stateTicket
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateSignup:
		m.state = stateLogin
		return m, m.loginForm.focusCmd(), true
	case stateHome:
		return m, nil, true
	case stateMovieTheaters:
		m.state = stateHome
	case stateSchedule:
		if m.movieDetail.Id != "" {
			m.state = stateMovieTheaters
		} else {
			m.state = stateHome
		}
	case stateSelectDate:
		m.state = stateSchedule
	case statePartySize:
		m.state = stateSchedule
	case stateSeats:
		m.state = stateSchedule
	case stateSummary:
		m.state = stateSeats
	case statePaymentPending:
		// Payment may still complete server-side; the order stays PENDING
		// until then and shows up under tickets.
		m.state = stateHome
	case statePaymentDone:
		m.state = stateHome
	case stateTickets:
		m.state = stateHome
	case stateTicket:
		if len(m.orders) > 0 {
			m.state = stateTickets
		} else {
			m.state = stateHome
		}
	case stateError:
		m.state = m.lastState
	default:
		return m, nil, true
	}
	return m, nil, true
}

func (m appModel) stateUsesForm() bool {
	return m.state == stateLogin || m.state == stateSignup
}

func (m appModel) isLoadingState() bool {
	switch m.state {
	case stateLoadingCatalog, stateLoadingMovie, stateLoadingSchedule,
		stateLoadingSeats, statePaying, stateResolving, stateLoadingTickets:
		return true
	}
	return false
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateHome:
		if m.homeTab == tabMovies {
			return &m.movieList
		}
		return &m.theaterList
	case stateMovieTheaters:
		return &m.movieTheaterList
	case stateSchedule:
		return &m.showList
	case stateSelectDate:
		return &m.dateList
	case statePartySize:
		return &m.partyList
	case stateTickets:
		return &m.ticketList
	default:
		return nil
	}
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil || !listPtr.FilteringEnabled() {
		return false
	}
	// Party sizes and dates are short fixed lists; filtering them only
	// steals the number keys.
	if m.state == statePartySize || m.state == stateSelectDate {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		popFilter(listPtr)
		return true
	default:
		return false
	}
}

func appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	listPtr.SetFilterText(listPtr.FilterValue() + value)
}

func popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	runes := []rune(value)
	if len(runes) <= 1 {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(string(runes[:len(runes)-1]))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.theaterList.SetSize(m.width, h)
	m.movieTheaterList.SetSize(m.width, h)
	m.showList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
	m.partyList.SetSize(m.width, h)
	m.ticketList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoadingCatalog:
		return stateLogin
	case stateLoadingMovie, stateLoadingSchedule, stateLoadingTickets:
		return stateHome
	case stateLoadingSeats:
		return stateSchedule
	case statePaying:
		return stateSummary
	case stateResolving:
		return statePaymentPending
	default:
		return state
	}
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errWithReturnCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState, returnStateSet: true}
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("CinemaS")
	var sub []string
	if email := m.deps.Session.Email(); email != "" && m.state != stateLogin && m.state != stateSignup {
		sub = append(sub, email)
	}
	if m.theater.Name != "" {
		switch m.state {
		case stateSchedule, stateSelectDate, statePartySize, stateLoadingSeats, stateSeats, stateSummary:
			sub = append(sub, fmt.Sprintf("Theater: %s", m.theater.Name))
		}
	}
	if m.activeDate != "" && (m.state == stateSchedule || m.state == statePartySize) {
		sub = append(sub, fmt.Sprintf("Date: %s", m.activeDate))
	}
	if m.selectedShow.ShowId != "" {
		switch m.state {
		case statePartySize, stateLoadingSeats, stateSeats, stateSummary:
			sub = append(sub, fmt.Sprintf("%s • %s", m.selectedShow.MovieName, m.selectedShow.StartTime.Format("15:04")))
		}
	}
	if m.state == stateSeats && m.selection != nil {
		if left := m.selection.SeatsLeft(); left > 0 {
			sub = append(sub, fmt.Sprintf("Seats left: %d", left))
		} else {
			sub = append(sub, "All seats picked")
		}
	}

	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := m.hintsForState()
	flashLine := ""
	if m.flash != "" {
		flashLine = "\n" + m.flashKind.style().Render(m.flash)
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + flashLine + filterLine + "\n" + hint(hints)
}

func (m appModel) hintsForState() string {
	switch m.state {
	case stateLogin:
		return "enter login • ctrl+s signup • tab next field • ctrl+c quit"
	case stateSignup:
		return "enter create account • esc back to login • tab next field • ctrl+c quit"
	case stateHome:
		return "tab switch movies/theaters • enter select • type to filter • ctrl+t tickets • ctrl+q logout • ctrl+c quit"
	case stateSchedule:
		return "enter choose showtime • ctrl+d pick date • esc back • ctrl+c quit"
	case stateSeats:
		return "arrows move • space toggle • v paint • mouse drag to paint • n numbers • enter continue • esc back"
	case stateSummary:
		return "enter pay • esc back to seats • ctrl+c quit"
	case statePaymentPending:
		return "enter verify payment • esc later (check tickets) • ctrl+c quit"
	case statePaymentDone:
		return "enter view ticket • esc home • ctrl+c quit"
	case stateTickets:
		return "enter open ticket • esc back • ctrl+c quit"
	case stateTicket:
		return "s save ticket to file • esc back • ctrl+c quit"
	case stateError:
		return "enter/esc go back • ctrl+c quit"
	default:
		return "esc back • ctrl+c quit"
	}
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLogin:
		return header + "\n\n" + m.loginForm.view()
	case stateSignup:
		return header + "\n\n" + m.signupForm.view()
	case stateLoadingCatalog, stateLoadingMovie, stateLoadingSchedule,
		stateLoadingSeats, statePaying, stateResolving, stateLoadingTickets:
		return header + "\n\n" + m.loadingView()
	case stateHome:
		if m.homeTab == tabMovies {
			return header + "\n\n" + m.movieList.View()
		}
		return header + "\n\n" + m.theaterList.View()
	case stateMovieTheaters:
		return header + "\n\n" + m.movieTheaterList.View()
	case stateSchedule:
		return header + "\n\n" + m.showList.View()
	case stateSelectDate:
		return header + "\n\n" + m.dateList.View()
	case statePartySize:
		return header + "\n\n" + m.partyList.View()
	case stateSeats:
		return header + "\n\n" + m.renderSeats()
	case stateSummary:
		return header + "\n\n" + m.renderSummary()
	case statePaymentPending:
		return header + "\n\n" + m.renderPaymentPending()
	case statePaymentDone:
		return header + "\n\n" + m.renderPaymentDone()
	case stateTickets:
		return header + "\n\n" + m.ticketList.View()
	case stateTicket:
		return header + "\n\n" + renderTicket(m.ticket)
	case stateError:
		msg := "something went wrong"
		if m.err != nil {
			msg = m.err.Error()
		}
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(msg) +
			"\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateLoadingCatalog:
		title = "Loading movies and theaters"
	case stateLoadingMovie:
		title = "Loading movie"
	case stateLoadingSchedule:
		title = "Loading showtimes"
	case stateLoadingSeats:
		title = "Loading seat layout"
	case statePaying:
		title = "Creating order"
	case stateResolving:
		title = "Verifying payment"
	case stateLoadingTickets:
		title = "Loading tickets"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}
