package model

import (
	"encoding/json"
	"time"
)

// ShowDetail is the /show-times/{id} response: everything the seat-selection
// flow needs for one screening. Orders carries every order already placed
// against this show so the client can mask out booked seats.
type ShowDetail struct {
	Id        string       `json:"id"`
	StartTime time.Time    `json:"startTime"`
	Movie     ShowMovie    `json:"movie"`
	Price     []PriceEntry `json:"price"`
	Screen    ShowScreen   `json:"screen"`
	Orders    []Order      `json:"orders"`
}

type ShowMovie struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// ShowScreen wraps the seat layout. Layout is kept raw because the server
// sometimes sends it pre-serialized as a JSON string and sometimes as a
// structure; booking.ParseLayout accepts both.
type ShowScreen struct {
	Id          string          `json:"id"`
	TheaterName string          `json:"theaterName"`
	Layout      json.RawMessage `json:"layout"`
}

// PriceEntry maps a layout category to its unit price.
type PriceEntry struct {
	LayoutType string  `json:"layoutType"`
	Price      float64 `json:"price"`
}
