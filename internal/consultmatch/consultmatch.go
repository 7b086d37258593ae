// Package consultmatch is a client for the ConsultMatch REST backend:
// projects, consultant profiles, ranked recommendations and the
// staffing commit action.
package consultmatch

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://127.0.0.1:8002"
	userAgent     = "consultmatch-cli"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) GetProject(id int) (*Project, error) {
	return c.getProject(id)
}

func (c *Client) GetProjects() (*Projects, error) {
	return c.getProjects()
}

func (c *Client) GetConsultants() (*Consultants, error) {
	return c.getConsultants()
}

func (c *Client) RecommendConsultants(projectID int) (*Recommendations, error) {
	return c.recommendConsultants(projectID)
}

func (c *Client) StaffProject(projectID int, consultantIDs []int) error {
	return c.staffProject(projectID, consultantIDs)
}
