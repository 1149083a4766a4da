// Package usersgroups calls the users-and-groups peer service for group
// membership checks.
package usersgroups

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/httpclient"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Client queries the users-and-groups service
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  ectologger.Logger
}

func NewClient(http *httpclient.Client, baseURL string, logger ectologger.Logger) *Client {
	return &Client{http: http, baseURL: baseURL, logger: logger}
}

type userGroupsResponse struct {
	Groups []string `json:"groups"`
}

// GetGroups returns the group names the user belongs to. An unknown user
// has no groups.
func (c *Client) GetGroups(ctx context.Context, userID string) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "usersgroups.Client.GetGroups")
	defer span.End()

	url := fmt.Sprintf("%s/api/v1/users/%s/groups", c.baseURL, userID)
	var resp userGroupsResponse
	if err := c.http.GetJSON(ctx, url, &resp); err != nil {
		if errors.Is(err, httpclient.ErrNotFound) {
			return []string{}, nil
		}
		c.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"user_id": userID}).Error("Failed to get user groups")
		return nil, err
	}
	return resp.Groups, nil
}

// IsMemberOfAnyGroup reports whether the user belongs to at least one of
// the allowed groups. An empty allowed list denies access.
func (c *Client) IsMemberOfAnyGroup(ctx context.Context, userID string, allowedGroups []string) (bool, error) {
	if len(allowedGroups) == 0 {
		return false, nil
	}

	groups, err := c.GetGroups(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, g := range groups {
		if ectolinq.Contains(allowedGroups, g) {
			return true, nil
		}
	}
	return false, nil
}
