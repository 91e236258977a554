// Package server presents a rendered catalog over HTTP: the full HTML
// reference at the root, plus JSON views of individual controls and the
// compliance summary. It is a read-only presentation of the loaded snapshot.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/castlegate/oscalcat/pkg/catalog"
	"github.com/castlegate/oscalcat/pkg/render"
)

// Server serves one catalog snapshot.
type Server struct {
	cat    *catalog.Catalog
	engine *gin.Engine
}

// New creates a server for the given catalog.
func New(cat *catalog.Catalog) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{cat: cat, engine: engine}

	engine.GET("/", s.handleIndex)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/api/summary", s.handleSummary)
	engine.GET("/api/controls/:id", s.handleControl)
	return s
}

// Handler exposes the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	logrus.WithField("addr", addr).Info("serving catalog")
	return s.engine.Run(addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(render.HTML(s.cat)))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSummary(c *gin.Context) {
	summary := render.Summarize(s.cat)
	c.JSON(http.StatusOK, gin.H{
		"title":           s.cat.Metadata.Title,
		"total":           summary.Total,
		"implemented":     summary.Implemented,
		"in_progress":     summary.InProgress,
		"not_applicable":  summary.NotApplicable,
		"not_implemented": summary.NotImplemented,
	})
}

func (s *Server) handleControl(c *gin.Context) {
	id := c.Param("id")
	ctrl := s.cat.FindControl(id)
	if ctrl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "control not found", "id": id})
		return
	}
	c.JSON(http.StatusOK, render.NewControlView(ctrl, s.cat))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Debug("request served")
	}
}
