package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	chartv1 "github.com/c9s/chartdesk/pkg/chart/v1"
	"github.com/c9s/chartdesk/pkg/config"
	"github.com/c9s/chartdesk/pkg/metrics"
	"github.com/c9s/chartdesk/pkg/session"
	"github.com/c9s/chartdesk/pkg/util"
)

var log = logrus.WithField("component", "server")

// maxUploadSize limits the multipart memory of a file upload
const maxUploadSize = 32 << 20

type Server struct {
	Config   config.ServerConfig
	Registry *session.Registry

	srv *http.Server
}

func New(cfg config.ServerConfig, registry *session.Registry) *Server {
	return &Server{Config: cfg, Registry: registry}
}

func (s *Server) newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestMetrics())

	allowOrigins := s.Config.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:    allowOrigins,
		AllowHeaders:    []string{"Origin", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		AllowMethods:    []string{"GET", "POST", "DELETE"},
		AllowWebSockets: true,
		MaxAge:          12 * time.Hour,
	}))
	r.MaxMultipartMemory = maxUploadSize

	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/api/sessions", s.createSession)

	sessions := r.Group("/api/sessions/:id", s.withSession)
	{
		sessions.GET("", s.getSession)
		sessions.DELETE("", s.deleteSession)
		sessions.POST("/load", s.loadFile)
		sessions.POST("/view", s.updateView)
		sessions.GET("/bars", s.getBars)
		sessions.GET("/model", s.getModel)
		sessions.GET("/chart.png", s.renderChart(chartv1.FormatPNG))
		sessions.GET("/chart.svg", s.renderChart(chartv1.FormatSVG))
		sessions.GET("/volume.png", s.renderVolume(chartv1.FormatPNG))
		sessions.GET("/volume.svg", s.renderVolume(chartv1.FormatSVG))
		sessions.GET("/tooltip/:index", s.getTooltip)
		sessions.GET("/shapes", s.getShapes)
		sessions.DELETE("/shapes", s.deleteShapes)
		sessions.GET("/annotations.png", s.renderAnnotations(chartv1.FormatPNG))
		sessions.GET("/annotations.svg", s.renderAnnotations(chartv1.FormatSVG))
		sessions.GET("/ws", s.serveAnnotationEvents)
	}

	return r
}

// Handler returns the http handler of the api.
func (s *Server) Handler() http.Handler {
	return s.newEngine()
}

// Run serves the api until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	bind := s.Config.Bind
	if bind == "" {
		bind = ":8080"
	}

	s.srv = &http.Server{
		Addr:    bind,
		Handler: s.newEngine(),
	}

	go func() {
		<-ctx.Done()

		log.Info("shutting down web server...")

		// The context is used to inform the server it has 5 seconds to finish
		// the request it is currently handling
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		util.LogErr(log, s.srv.Shutdown(shutdownCtx), "server forced to shutdown")

		log.Info("server shutdown completed")
	}()

	log.Infof("listening on %s", bind)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestsMetrics.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDurationMetrics.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
