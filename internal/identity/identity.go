// Package identity talks to the account/profile provider: sign-in
// and single-document profile reads and writes keyed by user id.
//
// Unlike the staffing workflow, this collaborator retries transient
// failures with exponential backoff. The two policies are deliberate
// and must not be mixed: staffing calls are user-confirmed actions
// where a silent retry could double-submit, profile reads are not.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultAPIURL = "http://127.0.0.1:9099"

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
	Retry      RetryPolicy
}

// Profile is the user profile document. Reads and writes are
// whole-document; the provider offers no cross-document
// transactions.
type Profile struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Session is an authenticated identity session.
type Session struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

func New(logger *zap.Logger) *Client {
	return &Client{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIURL: defaultAPIURL,
		Retry:  DefaultRetryPolicy(),
	}
}

// SignIn exchanges email+password credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}

	var session *Session
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/v1/sessions", c.APIURL), payload, &session)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if session == nil || strings.TrimSpace(session.AccessToken) == "" {
		return nil, fmt.Errorf("identity provider returned no access token")
	}

	return session, nil
}

// GetProfile reads the profile document for the user id.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var profile *Profile
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/v1/profiles/%s", c.APIURL, userID), nil, &profile)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}

	return profile, nil
}

// PutProfile replaces the profile document for profile.UserID.
func (c *Client) PutProfile(ctx context.Context, profile *Profile) error {
	if profile == nil || strings.TrimSpace(profile.UserID) == "" {
		return fmt.Errorf("profile user id is required")
	}

	url := fmt.Sprintf("%s/v1/profiles/%s", c.APIURL, profile.UserID)
	if err := c.do(ctx, http.MethodPut, url, profile, nil); err != nil {
		return fmt.Errorf("put profile %s: %w", profile.UserID, err)
	}

	return nil
}

// do runs one request under the retry policy, decoding a JSON
// response into target when given.
func (c *Client) do(ctx context.Context, method, url string, payload, target interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
	}

	data, err := c.Retry.run(ctx, c.logger, func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, &transientError{err: err}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &transientError{err: err}
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return data, nil
		}

		message := strings.TrimSpace(string(data))
		if message == "" {
			message = fmt.Sprintf("bad status: %s", resp.Status)
		}

		if retryableStatus(resp.StatusCode) {
			return nil, &transientError{err: fmt.Errorf("%s", message)}
		}

		return nil, fmt.Errorf("%s", message)
	})
	if err != nil {
		return err
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

// retryableStatus marks server-side and throttling failures as
// transient. Other client errors are permanent and never retried.
func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}
