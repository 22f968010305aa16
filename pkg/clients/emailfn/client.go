package emailfn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/buildtrack/sitereport/internal/config"
	"github.com/buildtrack/sitereport/internal/domain/models"
)

// Client exposes the report-email function operations used by the application.
type Client interface {
	SendReportEmail(ctx context.Context, req models.EmailRequest) (*models.EmailData, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a report-email function client using the provided
// configuration values.
func NewClient(cfg config.EmailFnConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// apiError represents the function's error payload.
type apiError struct {
	Error string `json:"error"`
}

// SendReportEmail posts the record to the function and returns the
// prepared email. The function does not deliver the message itself.
func (c *APIClient) SendReportEmail(ctx context.Context, req models.EmailRequest) (*models.EmailData, error) {
	result := new(models.EmailResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(apiErr).
		Post("/send-report-email")
	if err != nil {
		return nil, fmt.Errorf("send report email: %w", err)
	}

	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("report-email function returned %d: %s", resp.StatusCode(), msg)
	}

	if !result.Success {
		return nil, fmt.Errorf("report-email function rejected the request: %s", result.Message)
	}

	return &result.EmailData, nil
}
