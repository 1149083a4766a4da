// Package refdata calls the reference-data peer service for CPS
// notification configuration.
package refdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/httpclient"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Client queries the reference-data service
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  ectologger.Logger
}

func NewClient(http *httpclient.Client, baseURL string, logger ectologger.Logger) *Client {
	return &Client{http: http, baseURL: baseURL, logger: logger}
}

type notificationResponse struct {
	CPSNotification bool `json:"cpsNotification"`
}

// HasCPSNotification reports whether a send-to-CPS notification is
// configured for the application, which makes application-level documents
// prosecutor-visible. Missing configuration means not visible.
func (c *Client) HasCPSNotification(ctx context.Context, applicationID string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "refdata.Client.HasCPSNotification")
	defer span.End()

	url := fmt.Sprintf("%s/api/v1/applications/%s/notifications", c.baseURL, applicationID)
	var resp notificationResponse
	if err := c.http.GetJSON(ctx, url, &resp); err != nil {
		if errors.Is(err, httpclient.ErrNotFound) {
			return false, nil
		}
		c.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"application_id": applicationID}).Error("Failed to get CPS notification config")
		return false, err
	}
	return resp.CPSNotification, nil
}
