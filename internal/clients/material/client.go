// Package material calls the material-store peer service for material
// access metadata.
package material

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/juniper/pkg/httpclient"
	"github.com/Ramsey-B/juniper/pkg/models"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Client queries the material store
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  ectologger.Logger
}

func NewClient(http *httpclient.Client, baseURL string, logger ectologger.Logger) *Client {
	return &Client{http: http, baseURL: baseURL, logger: logger}
}

// GetMaterial returns the material metadata, or nil, nil when the store no
// longer holds it. Used to refresh allowed-group lists when the persisted
// document payload predates a sharing change.
func (c *Client) GetMaterial(ctx context.Context, materialID string) (*models.Material, error) {
	ctx, span := tracing.StartSpan(ctx, "material.Client.GetMaterial")
	defer span.End()

	url := fmt.Sprintf("%s/api/v1/materials/%s", c.baseURL, materialID)
	var m models.Material
	if err := c.http.GetJSON(ctx, url, &m); err != nil {
		if errors.Is(err, httpclient.ErrNotFound) {
			return nil, nil
		}
		c.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"material_id": materialID}).Error("Failed to get material")
		return nil, err
	}
	return &m, nil
}
