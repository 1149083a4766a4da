// Package defenceassociation calls the defence-association peer service to
// decide whether the caller acts for the defence only.
package defenceassociation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/httpclient"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Client queries the defence-association service
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  ectologger.Logger
}

func NewClient(http *httpclient.Client, baseURL string, logger ectologger.Logger) *Client {
	return &Client{http: http, baseURL: baseURL, logger: logger}
}

type associationResponse struct {
	DefenceOnly bool `json:"defenceOnly"`
}

// IsDefendingOnly reports whether the user is associated with the
// application's parties purely as a defence representative, which triggers
// redaction of respondent personal details. No association means no
// redaction.
func (c *Client) IsDefendingOnly(ctx context.Context, userID, applicationID string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "defenceassociation.Client.IsDefendingOnly")
	defer span.End()

	url := fmt.Sprintf("%s/api/v1/associations/%s/applications/%s", c.baseURL, userID, applicationID)
	var resp associationResponse
	if err := c.http.GetJSON(ctx, url, &resp); err != nil {
		if errors.Is(err, httpclient.ErrNotFound) {
			return false, nil
		}
		c.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"user_id": userID, "application_id": applicationID}).Error("Failed to get defence association")
		return false, err
	}
	return resp.DefenceOnly, nil
}
