package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorPage struct {
	Code    int
	Message string
}

// ErrorHandler replaces echo's JSON error responses with the 404 and 500
// pages.  Other HTTP errors keep their status and message.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		page := errorPage{Code: http.StatusInternalServerError, Message: "Something went wrong on our side. Please try again later."}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			page.Code = he.Code
			switch {
			case he.Code == http.StatusNotFound:
				page.Message = "We couldn't find the page you were looking for."
			case he.Code < http.StatusInternalServerError:
				if msg, ok := he.Message.(string); ok {
					page.Message = msg
				} else {
					page.Message = http.StatusText(he.Code)
				}
			}
		}
		if page.Code >= http.StatusInternalServerError {
			logger.Error("request failed", "method", c.Request().Method, "path", c.Request().URL.Path, "err", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(page.Code)
		} else {
			err = c.Render(page.Code, "error", page)
		}
		if err != nil {
			logger.Error("render error page", "err", err)
		}
	}
}
