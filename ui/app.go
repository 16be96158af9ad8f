package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"

	"github.com/gin-gonic/gin"

	"visitdedupe/app"
	"visitdedupe/internal/config"
	"visitdedupe/internal/jobstore"
)

//go:embed templates/* help.md
var embeddedFiles embed.FS

// Server is the upload/download web shell around the dedupe service
type Server struct {
	router    *gin.Engine
	service   *app.DedupeService
	store     *jobstore.Store
	cfg       *config.Config
	templates *template.Template
}

// NewServer creates the web server with its routes and templates wired
func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := template.New("").Funcs(template.FuncMap{
		"pct": func(part, total int) string {
			if total == 0 {
				return "0.0"
			}
			return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
		},
	}).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	store := jobstore.NewStore(cfg.Jobs.TTL)
	store.StartJanitor(cfg.Jobs.TTL)

	s := &Server{
		router:    gin.Default(),
		service:   app.NewDedupeService(cfg.Dedupe.DatePolicy),
		store:     store,
		cfg:       cfg,
		templates: templates,
	}
	s.router.MaxMultipartMemory = cfg.Upload.MaxSizeBytes
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/help", s.handleHelp)

	s.router.POST("/api/jobs", s.handleCreateJob)
	s.router.GET("/api/jobs/:id", s.handleJobSummary)

	s.router.GET("/downloads/:id/:kind", s.handleDownload)
}

// Router exposes the underlying engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the web server
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("Starting house-visit dedupe UI on http://localhost%s", addr)
	return s.router.Run(addr)
}

// renderTemplate writes an HTML template response
func (s *Server) renderTemplate(c *gin.Context, name string, data interface{}) {
	c.Header("Content-Type", "text/html")
	if err := s.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		log.Printf("Template error: %v", err)
		c.AbortWithStatus(500)
	}
}

// isHTMX reports whether the request came from an HTMX-driven page element
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
