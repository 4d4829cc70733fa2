package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/TIrth999999/Cinemas/model"
)

// GetMovies returns the full movie catalog.
func (c *Client) GetMovies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := c.getJSON(ctx, c.baseURL+"/movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie fetches one movie with the theaters carrying it.
func (c *Client) GetMovie(ctx context.Context, movieID string) (model.MovieDetail, error) {
	if movieID == "" {
		return model.MovieDetail{}, errors.New("movie id is required")
	}
	endpoint := fmt.Sprintf("%s/movies/%s", c.baseURL, url.PathEscape(movieID))

	var detail model.MovieDetail
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return model.MovieDetail{}, err
	}
	return detail, nil
}

// GetTheaters returns all theaters.
func (c *Client) GetTheaters(ctx context.Context) ([]model.Theater, error) {
	var env dataEnvelope[[]model.Theater]
	if err := c.getJSON(ctx, c.baseURL+"/theaters", &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetTheater fetches one theater's details.
func (c *Client) GetTheater(ctx context.Context, theaterID string) (model.Theater, error) {
	if theaterID == "" {
		return model.Theater{}, errors.New("theater id is required")
	}
	endpoint := fmt.Sprintf("%s/theaters/%s", c.baseURL, url.PathEscape(theaterID))

	var env dataEnvelope[model.Theater]
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return model.Theater{}, err
	}
	return env.Data, nil
}

// GetTheaterMovies returns the movies scheduled in a theater.
func (c *Client) GetTheaterMovies(ctx context.Context, theaterID string) ([]model.Movie, error) {
	if theaterID == "" {
		return nil, errors.New("theater id is required")
	}
	endpoint := fmt.Sprintf("%s/theaters/%s/movies", c.baseURL, url.PathEscape(theaterID))

	var env dataEnvelope[struct {
		Movies []model.Movie `json:"movies"`
	}]
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return nil, err
	}
	return env.Data.Movies, nil
}

// GetTheaterScreens lists a theater's screens without their showtimes.
func (c *Client) GetTheaterScreens(ctx context.Context, theaterID string) ([]model.Screen, error) {
	if theaterID == "" {
		return nil, errors.New("theater id is required")
	}
	endpoint := fmt.Sprintf("%s/theaters/%s/screens", c.baseURL, url.PathEscape(theaterID))

	var screens []model.Screen
	if err := c.getJSON(ctx, endpoint, &screens); err != nil {
		return nil, err
	}
	return screens, nil
}

// GetScreen fetches one screen including its showtimes.
func (c *Client) GetScreen(ctx context.Context, screenID string) (model.Screen, error) {
	if screenID == "" {
		return model.Screen{}, errors.New("screen id is required")
	}
	endpoint := fmt.Sprintf("%s/screens/%s", c.baseURL, url.PathEscape(screenID))

	var env dataEnvelope[struct {
		Screen model.Screen `json:"screen"`
	}]
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return model.Screen{}, err
	}
	return env.Data.Screen, nil
}

// GetShowTime fetches the show detail used by seat selection: price table,
// seat layout and the orders already placed against the show.
func (c *Client) GetShowTime(ctx context.Context, showID string) (model.ShowDetail, error) {
	if showID == "" {
		return model.ShowDetail{}, errors.New("show id is required")
	}
	endpoint := fmt.Sprintf("%s/show-times/%s", c.baseURL, url.PathEscape(showID))

	var env dataEnvelope[model.ShowDetail]
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return model.ShowDetail{}, err
	}
	if env.Data.Id == "" {
		return model.ShowDetail{}, errors.New("show not found")
	}
	return env.Data, nil
}
