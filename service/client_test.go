package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TIrth999999/Cinemas/model"
)

func testClient(t *testing.T, handler http.Handler, opts Options) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL
	opts.Logger = zerolog.Nop()
	c := NewClient(opts)
	c.retryBase = time.Millisecond
	c.retryCap = 5 * time.Millisecond
	return c, srv
}

func TestGetMoviesSendsAuthHeader(t *testing.T) {
	var gotAuth, gotAccept string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[{"id":"m1","name":"Inception"}]`))
	})
	c, _ := testClient(t, handler, Options{Token: func() string { return "tok123" }})

	movies, err := c.GetMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Name)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestEnvelopeDecoding(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/theaters":
			w.Write([]byte(`{"data":[{"id":"t1","name":"PVR"}]}`))
		case "/theaters/t1":
			w.Write([]byte(`{"data":{"id":"t1","name":"PVR","location":"Pune"}}`))
		case "/theaters/t1/movies":
			w.Write([]byte(`{"data":{"movies":[{"id":"m1","name":"Dune"}]}}`))
		case "/screens/s1":
			w.Write([]byte(`{"data":{"screen":{"id":"s1","name":"Audi 1","showTimes":[]}}}`))
		default:
			http.NotFound(w, r)
		}
	})
	c, _ := testClient(t, handler, Options{})
	ctx := context.Background()

	theaters, err := c.GetTheaters(ctx)
	require.NoError(t, err)
	require.Len(t, theaters, 1)
	assert.Equal(t, "PVR", theaters[0].Name)

	theater, err := c.GetTheater(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Pune", theater.Location)

	movies, err := c.GetTheaterMovies(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Dune", movies[0].Name)

	screen, err := c.GetScreen(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Audi 1", screen.Name)
}

func TestAuthedUnauthorizedFiresHook(t *testing.T) {
	var hookCalls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
	})
	c, _ := testClient(t, handler, Options{
		Token:        func() string { return "stale" },
		Unauthorized: func() { hookCalls++ },
	})

	_, err := c.GetMovies(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, hookCalls)
}

func TestAnonymousUnauthorizedSkipsHook(t *testing.T) {
	// A 401 on login means bad credentials, not an expired session.
	var hookCalls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Invalid credentials"}`, http.StatusUnauthorized)
	})
	c, _ := testClient(t, handler, Options{
		Unauthorized: func() { hookCalls++ },
	})

	_, err := c.Login(context.Background(), "user@example.com", "wrong")
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 0, hookCalls)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message())
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "boom", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	})
	c, _ := testClient(t, handler, Options{})

	_, err := c.GetMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c, _ := testClient(t, handler, Options{})

	_, err := c.GetMovies(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(defaultMaxAttempts), calls.Load())
}

func TestPostNeverRetries(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c, _ := testClient(t, handler, Options{Token: func() string { return "tok" }})

	_, err := c.CreateOrder(context.Background(), model.CreateOrderRequest{
		ShowtimeId: "show-1",
		SeatData:   model.OrderSeats{Seats: []model.SeatData{{Row: "A", Column: 1, LayoutType: "premium"}}},
	})
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	})
	c, _ := testClient(t, handler, Options{})

	_, err := c.GetMovie(context.Background(), "nope")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreateOrderSetsRequestID(t *testing.T) {
	var requestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"orderId":"o1","paymentUrl":"https://pay.example/session"}`))
	})
	c, _ := testClient(t, handler, Options{Token: func() string { return "tok" }})

	res, err := c.CreateOrder(context.Background(), model.CreateOrderRequest{
		ShowtimeId: "show-1",
		SeatData:   model.OrderSeats{Seats: []model.SeatData{{Row: "A", Column: 1, LayoutType: "premium"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", res.OrderId)
	assert.NotEmpty(t, requestID)
}

func TestLoginUnwrapsEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"data":{"message":"ok","accessToken":"tok","expireAt":1767225600}}`))
	})
	c, _ := testClient(t, handler, Options{})

	result, err := c.Login(context.Background(), "user@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, "tok", result.AccessToken)
	assert.Equal(t, int64(1767225600), result.ExpireAt)
}

func TestLoginRejectsMissingToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"message":"weird"}}`))
	})
	c, _ := testClient(t, handler, Options{})

	_, err := c.Login(context.Background(), "user@example.com", "Passw0rd!")
	assert.Error(t, err)
}

func TestVerifyPaymentEscapesSessionID(t *testing.T) {
	var query string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"orderId":"o1"}`))
	})
	c, _ := testClient(t, handler, Options{Token: func() string { return "tok" }})

	res, err := c.VerifyPayment(context.Background(), "cs a+b&c")
	require.NoError(t, err)
	assert.Equal(t, "o1", res.OrderId)
	assert.NotContains(t, query, " ")
	assert.NotContains(t, query, "&c")
}
