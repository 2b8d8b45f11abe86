// Package router assembles the echo instance: global middleware, the page
// renderer, the error pages and every directory route.
package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/booking-directory/internal/config"
	"github.com/iliyamo/booking-directory/internal/handler"
	"github.com/iliyamo/booking-directory/internal/middleware"
)

// Options carries the collaborators New wires together.  Redis may be nil,
// which turns rate limiting off.
type Options struct {
	Handler   *handler.Handler
	Flasher   *middleware.Flasher
	Renderer  echo.Renderer
	RateLimit config.RateLimitConfig
	Redis     redis.Scripter
	Logger    *slog.Logger
}

// New returns a configured echo instance with all routes registered.
func New(o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = o.Renderer
	e.HTTPErrorHandler = handler.ErrorHandler(o.Logger)

	// HTML forms can only POST, so deletes arrive as POST with _method=DELETE.
	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(o.Logger))
	e.Use(echomw.Recover())
	e.Use(o.Flasher.Middleware())
	e.Use(middleware.RateLimit(o.RateLimit, o.Redis, o.Logger))

	RegisterRoutes(e, o.Handler)
	return e
}

// RegisterRoutes maps every page and form of the directory.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/healthz", h.Health)
	e.GET("/", h.Home)

	e.GET("/venues", h.ListVenues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.CreateVenueForm)
	e.POST("/venues/create", h.CreateVenue)
	e.GET("/venues/:id", h.ShowVenue)
	e.DELETE("/venues/:id", h.DeleteVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.EditVenue)

	e.GET("/artists", h.ListArtists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.CreateArtistForm)
	e.POST("/artists/create", h.CreateArtist)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.EditArtist)

	e.GET("/shows", h.ListShows)
	e.GET("/shows/create", h.CreateShowForm)
	e.POST("/shows/create", h.CreateShow)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= 500 {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency.Round(time.Microsecond)),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
