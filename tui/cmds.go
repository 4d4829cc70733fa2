package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TIrth999999/Cinemas/booking"
	"github.com/TIrth999999/Cinemas/model"
	"github.com/TIrth999999/Cinemas/store"
)

const dateKeyFormat = "2006-01-02"

// showSlot is one bookable showtime flattened out of the screen tree.
type showSlot struct {
	ShowId     string
	MovieId    string
	MovieName  string
	Languages  []string
	ScreenName string
	StartTime  time.Time
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type loginMsg struct {
	email  string
	result model.LoginResult
	err    error
}

type signupMsg struct {
	email string
	err   error
}

type catalogMsg struct {
	movies   []model.Movie
	theaters []model.Theater
	err      error
}

type movieDetailMsg struct {
	detail model.MovieDetail
	err    error
}

type scheduleMsg struct {
	slots map[string][]showSlot
	dates []string
	err   error
}

type showDetailMsg struct {
	show model.ShowDetail
	err  error
}

type orderCreatedMsg struct {
	res model.CreateOrderResponse
	err error
}

type paymentResolvedMsg struct {
	orderID  string
	verified bool
	err      error
}

type ordersMsg struct {
	orders []model.Order
	err    error
}

func (m appModel) loginCmd(email, password string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		result, err := client.Login(context.Background(), email, password)
		return loginMsg{email: email, result: result, err: err}
	}
}

func (m appModel) signupCmd(req model.SignupRequest) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		err := client.Signup(context.Background(), req)
		return signupMsg{email: req.Email, err: err}
	}
}

// fetchCatalogCmd loads movies and theaters, serving from the local cache
// when it is still fresh and refilling it otherwise.
func (m appModel) fetchCatalogCmd() tea.Cmd {
	client := m.deps.Client
	log := m.deps.Logger
	return func() tea.Msg {
		ctx := context.Background()

		movies, fresh, err := store.LoadMovieCache()
		if err != nil || !fresh {
			movies, err = client.GetMovies(ctx)
			if err != nil {
				return catalogMsg{err: err}
			}
			if err := store.SaveMovieCache(movies); err != nil {
				log.Warn().Err(err).Msg("movie cache write failed")
			}
		}

		theaters, fresh, err := store.LoadTheaterCache()
		if err != nil || !fresh {
			theaters, err = client.GetTheaters(ctx)
			if err != nil {
				return catalogMsg{err: err}
			}
			if err := store.SaveTheaterCache(theaters); err != nil {
				log.Warn().Err(err).Msg("theater cache write failed")
			}
		}

		return catalogMsg{movies: movies, theaters: theaters}
	}
}

func (m appModel) fetchMovieCmd(movieID string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		detail, err := client.GetMovie(context.Background(), movieID)
		return movieDetailMsg{detail: detail, err: err}
	}
}

// fetchScheduleCmd walks the theater's screens concurrently and flattens
// every upcoming showtime into per-date slots.
func (m appModel) fetchScheduleCmd(theater model.Theater) tea.Cmd {
	client := m.deps.Client
	log := m.deps.Logger
	return func() tea.Msg {
		ctx := context.Background()

		movies, err := client.GetTheaterMovies(ctx, theater.Id)
		if err != nil {
			return scheduleMsg{err: err}
		}
		movieByID := make(map[string]model.Movie, len(movies))
		for _, mv := range movies {
			movieByID[mv.Id] = mv
		}

		screens, err := client.GetTheaterScreens(ctx, theater.Id)
		if err != nil {
			return scheduleMsg{err: err}
		}

		var (
			mu       sync.Mutex
			wg       sync.WaitGroup
			sem      = make(chan struct{}, 4)
			detailed = make([]model.Screen, 0, len(screens))
		)
		for _, screen := range screens {
			wg.Add(1)
			sem <- struct{}{}
			go func(id string) {
				defer wg.Done()
				defer func() { <-sem }()
				full, err := client.GetScreen(ctx, id)
				if err != nil {
					log.Warn().Err(err).Str("screen", id).Msg("screen fetch failed")
					return
				}
				mu.Lock()
				detailed = append(detailed, full)
				mu.Unlock()
			}(screen.Id)
		}
		wg.Wait()

		now := time.Now()
		slots := make(map[string][]showSlot)
		for _, screen := range detailed {
			for _, st := range screen.ShowTimes {
				start := st.StartTime.Local()
				if start.Before(now) {
					continue
				}
				mv, ok := movieByID[st.MovieId]
				if !ok {
					continue
				}
				key := start.Format(dateKeyFormat)
				slots[key] = append(slots[key], showSlot{
					ShowId:     st.Id,
					MovieId:    st.MovieId,
					MovieName:  mv.Name,
					Languages:  mv.Languages,
					ScreenName: screen.Name,
					StartTime:  start,
				})
			}
		}

		dates := make([]string, 0, len(slots))
		for key, daySlots := range slots {
			sort.SliceStable(daySlots, func(i, j int) bool {
				if !daySlots[i].StartTime.Equal(daySlots[j].StartTime) {
					return daySlots[i].StartTime.Before(daySlots[j].StartTime)
				}
				return daySlots[i].MovieName < daySlots[j].MovieName
			})
			slots[key] = daySlots
			dates = append(dates, key)
		}
		sort.Strings(dates)

		return scheduleMsg{slots: slots, dates: dates}
	}
}

func (m appModel) fetchShowDetailCmd(showID string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		show, err := client.GetShowTime(context.Background(), showID)
		return showDetailMsg{show: show, err: err}
	}
}

func (m appModel) createOrderCmd() tea.Cmd {
	client := m.deps.Client
	req := model.CreateOrderRequest{
		ShowtimeId: m.show.Id,
		SeatData:   m.selection.OrderSeats(),
	}
	return func() tea.Msg {
		res, err := client.CreateOrder(context.Background(), req)
		return orderCreatedMsg{res: res, err: err}
	}
}

func (m appModel) resolveOrderCmd(sessionID string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		orderID, verified, err := booking.ResolveOrder(context.Background(), client, strings.TrimSpace(sessionID), time.Now())
		return paymentResolvedMsg{orderID: orderID, verified: verified, err: err}
	}
}

func (m appModel) fetchOrdersCmd() tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		orders, err := client.GetOrders(context.Background())
		return ordersMsg{orders: orders, err: err}
	}
}

// openURL hands the payment link to the OS default browser.
func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	default:
		return fmt.Errorf("unsupported platform %q", runtime.GOOS)
	}
}
