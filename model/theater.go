package model

import "time"

type Theater struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Image    string `json:"image"`
}

// Screen as listed by /theaters/{id}/screens. The detail endpoint
// /screens/{id} fills ShowTimes.
type Screen struct {
	Id        string     `json:"id"`
	Name      string     `json:"name"`
	ShowTimes []ShowTime `json:"showTimes"`
}

// ShowTime is a single scheduled screening of a movie on a screen.
type ShowTime struct {
	Id        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	MovieId   string    `json:"movieId"`
}
