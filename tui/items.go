package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"github.com/TIrth999999/Cinemas/model"
)

type movieItem struct {
	movie model.Movie
}

func (i movieItem) Title() string { return i.movie.Name }
func (i movieItem) Description() string {
	parts := make([]string, 0, 3)
	if len(i.movie.Category) > 0 {
		parts = append(parts, strings.Join(i.movie.Category, ", "))
	}
	if i.movie.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d min", i.movie.Duration))
	}
	if len(i.movie.Languages) > 0 {
		parts = append(parts, strings.Join(i.movie.Languages, "/"))
	}
	if len(parts) == 0 {
		return "No details available"
	}
	return strings.Join(parts, " • ")
}
func (i movieItem) FilterValue() string {
	return i.movie.Name + " " + strings.Join(i.movie.Category, " ") + " " + strings.Join(i.movie.Languages, " ")
}

type theaterItem struct {
	theater model.Theater
}

func (i theaterItem) Title() string { return i.theater.Name }
func (i theaterItem) Description() string {
	if i.theater.Location == "" {
		return "Location unknown"
	}
	return i.theater.Location
}
func (i theaterItem) FilterValue() string {
	return i.theater.Name + " " + i.theater.Location
}

type showItem struct {
	slot showSlot
}

func (i showItem) Title() string {
	return fmt.Sprintf("%s  %s", i.slot.StartTime.Format("15:04"), i.slot.MovieName)
}
func (i showItem) Description() string {
	parts := make([]string, 0, 2)
	if i.slot.ScreenName != "" {
		parts = append(parts, i.slot.ScreenName)
	}
	if len(i.slot.Languages) > 0 {
		parts = append(parts, strings.Join(i.slot.Languages, "/"))
	}
	if len(parts) == 0 {
		return "Showtime"
	}
	return strings.Join(parts, " • ")
}
func (i showItem) FilterValue() string {
	return i.slot.MovieName + " " + i.slot.ScreenName
}

type dateItem struct {
	date   string
	active bool
}

func (i dateItem) Title() string {
	t, err := time.ParseInLocation(dateKeyFormat, i.date, time.Local)
	if err != nil {
		return i.date
	}
	return t.Format("Mon, 02 Jan 2006")
}
func (i dateItem) Description() string {
	if i.active {
		return "Currently selected"
	}
	return "Press enter to switch"
}
func (i dateItem) FilterValue() string { return i.date }

type partyItem struct {
	size int
}

func (i partyItem) Title() string {
	if i.size == 1 {
		return "1 seat"
	}
	return fmt.Sprintf("%d seats", i.size)
}
func (i partyItem) Description() string {
	if i.size == 1 {
		return "Just me"
	}
	return fmt.Sprintf("Book for %d people", i.size)
}
func (i partyItem) FilterValue() string { return i.Title() }

type ticketItem struct {
	order model.Order
}

func (i ticketItem) Title() string {
	name := i.order.Showtime.Movie.Name
	if name == "" {
		name = "Unknown movie"
	}
	return fmt.Sprintf("%s  %s", name, i.order.Showtime.StartTime.Local().Format("02 Jan 15:04"))
}
func (i ticketItem) Description() string {
	return fmt.Sprintf("%s • %d seat(s) • ₹%.2f", i.order.Status, len(i.order.SeatData.Seats), i.order.TotalPrice)
}
func (i ticketItem) FilterValue() string {
	return i.order.Showtime.Movie.Name + " " + i.order.Status
}

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, mv := range movies {
		items = append(items, movieItem{movie: mv})
	}
	return items
}

func buildTheaterItems(theaters []model.Theater) []list.Item {
	items := make([]list.Item, 0, len(theaters))
	for _, th := range theaters {
		items = append(items, theaterItem{theater: th})
	}
	return items
}

func buildShowItems(slots []showSlot) []list.Item {
	items := make([]list.Item, 0, len(slots))
	for _, slot := range slots {
		items = append(items, showItem{slot: slot})
	}
	return items
}

func buildDateItems(dates []string, active string) []list.Item {
	items := make([]list.Item, 0, len(dates))
	for _, d := range dates {
		items = append(items, dateItem{date: d, active: d == active})
	}
	return items
}

const maxPartySize = 10

func buildPartyItems() []list.Item {
	items := make([]list.Item, 0, maxPartySize)
	for size := 1; size <= maxPartySize; size++ {
		items = append(items, partyItem{size: size})
	}
	return items
}

func buildTicketItems(orders []model.Order) []list.Item {
	items := make([]list.Item, 0, len(orders))
	for _, o := range orders {
		items = append(items, ticketItem{order: o})
	}
	return items
}
