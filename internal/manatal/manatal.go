package manatal

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL         = "https://api.manatal.com/open/v3"
	userAgent      = "spigell/ats-questionnaire"
	defaultTimeout = 30 * time.Second
)

// Client talks to the Manatal open API with a static API token.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
