package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/TIrth999999/Cinemas/model"
)

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email string, password string) (model.LoginResult, error) {
	if email == "" || password == "" {
		return model.LoginResult{}, errors.New("email and password are required")
	}
	endpoint := c.baseURL + "/auth/login"

	var env dataEnvelope[model.LoginResult]
	if err := c.postJSON(ctx, endpoint, model.LoginRequest{Email: email, Password: password}, &env, nil); err != nil {
		return model.LoginResult{}, err
	}
	if env.Data.AccessToken == "" {
		return model.LoginResult{}, errors.New("login response missing access token")
	}
	return env.Data, nil
}

// Signup registers a new account. The server replies with a message only;
// the user logs in afterwards.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) error {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return errors.New("all signup fields are required")
	}
	endpoint := fmt.Sprintf("%s/auth/signup", c.baseURL)
	return c.postJSON(ctx, endpoint, req, nil, nil)
}
