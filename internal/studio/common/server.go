package common

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/sirupsen/logrus"
)

//go:embed static/*
var CommonStaticFS embed.FS

const shutdownGrace = 5 * time.Second

// NewApp builds the fiber app: html views from templatesFS, panic recovery,
// request logging at debug and JSON errors under /api.
func NewApp(templatesFS fs.FS, log logrus.FieldLogger) *fiber.App {
	engine := html.NewFileSystem(http.FS(templatesFS), ".html")
	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestLogger(log))
	return app
}

func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		if status >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("request failed")
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return JSONError(c, status, err.Error())
		}
		return c.Status(status).SendString(err.Error())
	}
}

func requestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start).String(),
		}).Debug("studio request")
		return err
	}
}

// SetupStaticFS mounts the studio's own assets on /static and the shared
// ones on /common/static.
func SetupStaticFS(app *fiber.App, studioStaticFS embed.FS) {
	mount(app, "/static", studioStaticFS)
	mount(app, "/common/static", CommonStaticFS)
}

func mount(app *fiber.App, prefix string, fsys embed.FS) {
	sub, err := fs.Sub(fsys, "static")
	if err != nil {
		panic(fmt.Sprintf("static assets for %s: %v", prefix, err))
	}
	app.Use(prefix, filesystem.New(filesystem.Config{
		Root: http.FS(sub),
	}))
}

// StartServer listens on the first free port from *port, optionally opens a
// browser, and shuts down gracefully on SIGINT/SIGTERM.
func StartServer(app *fiber.App, port *int, name string, openBrowser bool) error {
	available := FindAvailablePort(*port)
	if available != *port {
		fmt.Printf("⚠️  Port %d is in use, using port %d instead\n", *port, available)
		*port = available
	}

	url := fmt.Sprintf("http://localhost:%d", *port)
	fmt.Printf("🚀 StockPanel %s starting on %s\n", name, url)

	if openBrowser {
		go OpenBrowser(url)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Listen(fmt.Sprintf(":%d", *port)) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		fmt.Printf("\n👋 Stopping StockPanel %s\n", name)
		return app.ShutdownWithTimeout(shutdownGrace)
	}
}
