package studio

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/config"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/studio/common"
)

// DefaultPollTimeout bounds one long-poll on a view.
const DefaultPollTimeout = 25 * time.Second

type Server struct {
	app         *fiber.App
	service     *Service
	sessions    *SessionStore
	port        int
	pollTimeout time.Duration
	log         logrus.FieldLogger
}

func NewServer(cfg *config.Config, backend Backend, log logrus.FieldLogger, port int) *Server {
	if port <= 0 {
		port = cfg.Studio.Port
	}
	service := NewService(backend, log)
	vc := viewConfig{
		pageSize: cfg.List.PageSize,
		debounce: cfg.List.Debounce,
		log:      log,
	}

	server := &Server{
		app:         common.NewApp(TemplatesFS, log),
		service:     service,
		sessions:    NewSessionStore(service, vc, cfg.Reports.PageSize, cfg.Studio.SessionTTL, log),
		port:        port,
		pollTimeout: DefaultPollTimeout,
		log:         log,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	common.SetupStaticFS(s.app, StaticFS)

	// UI routes
	s.app.Get("/", s.page("dashboard", "Dashboard"))
	s.app.Get("/products", s.page("products", "Produtos"))
	s.app.Get("/categories", s.page("categories", "Categorias"))
	s.app.Get("/movements", s.page("movements", "Movimentações"))
	s.app.Get("/reports", s.page("reports", "Relatórios"))

	// API routes
	api := s.app.Group("/api", s.withSession)
	api.Get("/dashboard", s.handleDashboard)
	api.Get("/reports/:kind", s.handleReport)

	api.Get("/views/:entity", s.withView, s.handleViewState)
	api.Post("/views/:entity/page", s.withView, s.handleViewPage)
	api.Post("/views/:entity/filter", s.withView, s.handleViewFilter)
	api.Post("/views/:entity/sort", s.withView, s.handleViewSort)
	api.Post("/views/:entity/size", s.withView, s.handleViewSize)
	api.Post("/views/:entity/reload", s.withView, s.handleViewReload)

	api.Post("/:entity", s.withEntity, s.handleCreate)
	api.Put("/:entity/:id", s.withEntity, s.handleUpdate)
	api.Delete("/:entity/:id", s.withEntity, s.handleDelete)
}

func (s *Server) page(tmpl, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("templates/"+tmpl, fiber.Map{
			"Title":  title + " - StockPanel",
			"Active": tmpl,
		})
	}
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Start(openBrowser bool) error {
	go s.sessions.Run()
	defer s.sessions.Close()
	return common.StartServer(s.app, &s.port, "Studio", openBrowser)
}

// Shutdown stops the listener and closes every view session.
func (s *Server) Shutdown() error {
	s.sessions.Close()
	return s.app.Shutdown()
}
