package http

import "github.com/labstack/echo/v4"

// Handler registers application routes on the shared Echo instance.
// The server owns middleware and the metrics endpoint; handlers only
// attach their route groups.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
