package httpserver

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// bindJSON decodes a JSON request body into v. A body sent with any other
// content type is ignored and v keeps its zero value.
func bindJSON(c echo.Context, v any) error {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(strings.ToLower(ctype), echo.MIMEApplicationJSON) {
		return nil
	}
	return (&echo.DefaultBinder{}).BindBody(c, v)
}
