package model

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type SeatData struct {
	Row        string `json:"row"`
	Column     int    `json:"column"`
	LayoutType string `json:"layoutType"`
}

type OrderSeats struct {
	Seats []SeatData `json:"seats"`
}

// Order is server-owned; the client only renders what it receives.
type Order struct {
	Id         string        `json:"id"`
	Status     string        `json:"status"`
	TotalPrice float64       `json:"totalPrice"`
	SeatData   OrderSeats    `json:"seatData"`
	CreatedAt  time.Time     `json:"createdAt"`
	Showtime   OrderShowtime `json:"showtime"`
}

type OrderShowtime struct {
	Id        string      `json:"id"`
	StartTime time.Time   `json:"startTime"`
	Movie     ShowMovie   `json:"movie"`
	Screen    OrderScreen `json:"screen"`
}

type OrderScreen struct {
	Id          string `json:"id"`
	TheaterName string `json:"theaterName"`
}

type CreateOrderRequest struct {
	ShowtimeId string     `json:"showtimeId"`
	SeatData   OrderSeats `json:"seatData"`
}

type CreateOrderResponse struct {
	OrderId    string `json:"orderId"`
	PaymentUrl string `json:"paymentUrl"`
	Message    string `json:"message"`
}
