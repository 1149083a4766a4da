// Package query exposes the synchronous query dispatch endpoint.
package query

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/queries"
)

// Register registers query routes
func Register(g *echo.Group) {
	g.POST("/queries", PostQuery)
	g.GET("/queries", ListQueryNames)
}

// PostQuery dispatches a query envelope and returns the correlated response
func PostQuery(c echo.Context) error {
	ctx := c.Request().Context()

	var q envelope.Query
	if err := c.Bind(&q); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid query envelope")
	}
	if q.Name == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "query name is required")
	}

	ctx, registry, err := ectoinject.GetContext[*queries.Registry](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	resp, err := registry.Dispatch(ctx, q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// ListQueryNames returns the registered query names
func ListQueryNames(c echo.Context) error {
	ctx := c.Request().Context()

	_, registry, err := ectoinject.GetContext[*queries.Registry](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "service unavailable")
	}

	return c.JSON(http.StatusOK, map[string]any{"queries": registry.Names()})
}
