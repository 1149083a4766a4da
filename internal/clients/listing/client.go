// Package listing calls the hearing-listing peer service for next-hearing
// summaries.
package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/httpclient"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Client queries the listing service
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  ectologger.Logger
}

func NewClient(http *httpclient.Client, baseURL string, logger ectologger.Logger) *Client {
	return &Client{http: http, baseURL: baseURL, logger: logger}
}

type nextHearingsResponse struct {
	NextHearings []struct {
		DefendantID string             `json:"defendantId"`
		Hearing     models.NextHearing `json:"nextHearing"`
	} `json:"nextHearings"`
}

// GetNextHearings returns the next listed hearing per defendant on a case,
// keyed by defendant id. An empty map means nothing is listed.
func (c *Client) GetNextHearings(ctx context.Context, caseID string) (map[string]models.NextHearing, error) {
	ctx, span := tracing.StartSpan(ctx, "listing.Client.GetNextHearings")
	defer span.End()

	url := fmt.Sprintf("%s/api/v1/cases/%s/next-hearings", c.baseURL, caseID)
	var resp nextHearingsResponse
	if err := c.http.GetJSON(ctx, url, &resp); err != nil {
		if errors.Is(err, httpclient.ErrNotFound) {
			return map[string]models.NextHearing{}, nil
		}
		c.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"case_id": caseID}).Error("Failed to get next hearings")
		return nil, err
	}

	byDefendant := make(map[string]models.NextHearing, len(resp.NextHearings))
	for _, nh := range resp.NextHearings {
		byDefendant[nh.DefendantID] = nh.Hearing
	}
	return byDefendant, nil
}
