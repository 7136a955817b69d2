package router

import (
	"errors"
	"net/http"
	"notekeeper/cmd/internal/http/handler"
	"notekeeper/cmd/internal/http/middleware"
	"notekeeper/cmd/internal/utils/apierror"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const defaultBodyLimit = "1M"

type Config struct {
	BodyLimit    string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New builds the echo instance with every route of the service registered.
func New(noteRoutes *handler.DefaultNoteRoute, cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.JSONSerializer = strictJSONSerializer{}
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	e.Use(middleware.NewRequestID())
	e.Use(middleware.NewRequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit(bodyLimit))

	// Notes
	e.GET("/api/notes", noteRoutes.GetNotes)
	e.POST("/api/notes", noteRoutes.CreateNote)
	e.PUT("/api/notes/:id", noteRoutes.UpdateNote)
	e.DELETE("/api/notes/:id", noteRoutes.DeleteNote)

	// Liveness probe
	e.GET("/health", handler.HealthCheck)

	// Frontend page, optional
	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			e.Static("/", cfg.StaticDir)
		} else {
			log.Warnf("static directory %q not found, frontend disabled", cfg.StaticDir)
		}
	}

	return e
}

// errorHandler renders framework errors (unknown route, wrong method, body too large...)
// with the same {"error": "..."} shape the handlers use.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apierr := apierror.InternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, _ := he.Message.(string)
		apierr = apierror.FromStatus(he.Code, msg)
	} else {
		log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(apierr.Code())
	} else {
		err = c.JSON(apierr.Code(), apierr)
	}

	if err != nil {
		log.Errorf("failed to write error response: %v", err)
	}
}
