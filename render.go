package sketchfolio

import (
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// renderHTML writes cmp with the given status. The home URL serves both the
// full page and the gallery fragment, so every HTML response varies on the
// htmx request header.
func renderHTML(c echo.Context, code int, cmp templ.Component) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	res.Header().Add(echo.HeaderVary, headerHXRequest)
	res.WriteHeader(code)
	return cmp.Render(c.Request().Context(), res.Writer)
}
