package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	chartv1 "github.com/c9s/chartdesk/pkg/chart/v1"
	"github.com/c9s/chartdesk/pkg/datasource/csvsource"
	"github.com/c9s/chartdesk/pkg/session"
	"github.com/c9s/chartdesk/pkg/types"
)

const sessionKey = "session"

type skippedRow struct {
	Line  int    `json:"line"`
	Raw   string `json:"raw"`
	Error string `json:"error"`
}

type loadResponse struct {
	Name      string          `json:"name"`
	Bars      int             `json:"bars"`
	Rows      int             `json:"rows"`
	Skipped   []skippedRow    `json:"skipped"`
	TimeRange types.TimeRange `json:"timeRange"`
}

func (s *Server) withSession(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.Registry.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("session %s not found", id)})
		return
	}

	c.Set(sessionKey, sess)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// errorStatus maps the domain errors to the response status.
func errorStatus(err error) int {
	var fileTypeErr *csvsource.InvalidFileTypeError
	var structuralErr *csvsource.StructuralError

	switch {
	case errors.As(err, &fileTypeErr), errors.As(err, &structuralErr):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotLoaded):
		return http.StatusConflict
	case errors.Is(err, chartv1.ErrNoBars):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Errorf("%s %s failed", c.Request.Method, c.FullPath())
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) createSession(c *gin.Context) {
	sess := s.Registry.Create()
	c.JSON(http.StatusCreated, gin.H{"id": sess.ID})
}

func (s *Server) getSession(c *gin.Context) {
	sess := currentSession(c)

	response := gin.H{
		"id":         sess.ID,
		"timeRange":  sess.TimeRange(),
		"mode":       sess.Mode(),
		"indicators": sess.Selection(),
	}

	if stats, err := sess.Stats(); err == nil {
		response["stats"] = stats
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) deleteSession(c *gin.Context) {
	s.Registry.Delete(currentSession(c).ID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) loadFile(c *gin.Context) {
	sess := currentSession(c)

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	if err := csvsource.ValidateFileName(fh.Filename); err != nil {
		abortWithError(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		abortWithError(c, errors.Wrap(err, "unable to open upload"))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		abortWithError(c, errors.Wrap(err, "unable to read upload"))
		return
	}

	report, err := sess.Load(fh.Filename, string(content))
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := loadResponse{
		Name:      fh.Filename,
		Bars:      len(report.Bars),
		Rows:      report.Rows,
		Skipped:   []skippedRow{},
		TimeRange: sess.TimeRange(),
	}
	for _, row := range report.Skipped {
		response.Skipped = append(response.Skipped, skippedRow{Line: row.Line, Raw: row.Raw, Error: row.Err.Error()})
	}

	c.JSON(http.StatusOK, response)
}

// parseView reads the range, mode and indicators query parameters.
func parseView(c *gin.Context) (session.View, error) {
	var view session.View

	if r, ok := c.GetQuery("range"); ok && r != "" {
		view.TimeRange = types.ParseTimeRange(r)
	}

	if m, ok := c.GetQuery("mode"); ok && m != "" {
		mode, err := types.ParseChartMode(m)
		if err != nil {
			return view, err
		}
		view.Mode = mode
	}

	if list, ok := c.GetQuery("indicators"); ok {
		selection, err := types.ParseIndicatorSelection(list)
		if err != nil {
			return view, err
		}
		view.Selection = selection
		view.Indicators = true
	}

	return view, nil
}

func parseSize(c *gin.Context) (width, height int, err error) {
	if w := c.Query("width"); w != "" {
		if width, err = strconv.Atoi(w); err != nil || width < 0 {
			return 0, 0, fmt.Errorf("invalid width %q", w)
		}
	}

	if h := c.Query("height"); h != "" {
		if height, err = strconv.Atoi(h); err != nil || height < 0 {
			return 0, 0, fmt.Errorf("invalid height %q", h)
		}
	}

	return width, height, nil
}

// updateView stores the query view as the session's view settings.
func (s *Server) updateView(c *gin.Context) {
	sess := currentSession(c)

	view, err := parseView(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if view.TimeRange != "" {
		sess.SetTimeRange(view.TimeRange)
	}
	if view.Mode != "" {
		sess.SetMode(view.Mode)
	}
	if view.Indicators {
		sess.SetSelection(view.Selection)
	}

	c.JSON(http.StatusOK, gin.H{
		"timeRange":  sess.TimeRange(),
		"mode":       sess.Mode(),
		"indicators": sess.Selection(),
	})
}

func (s *Server) getBars(c *gin.Context) {
	sess := currentSession(c)

	bars := sess.Bars()
	if r := c.Query("range"); r != "" {
		bars = sess.AllBars().Window(types.ParseTimeRange(r))
	}

	if bars == nil {
		bars = types.BarSlice{}
	}

	c.JSON(http.StatusOK, gin.H{"bars": bars})
}

func (s *Server) getModel(c *gin.Context) {
	view, err := parseView(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := currentSession(c).RenderModelWith(view)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

func (s *Server) getTooltip(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	tooltip, ok, err := currentSession(c).Tooltip(index)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("index %d is out of range", index)})
		return
	}

	c.JSON(http.StatusOK, tooltip)
}

func (s *Server) getShapes(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Snapshot())
}

func (s *Server) deleteShapes(c *gin.Context) {
	sess := currentSession(c)
	sess.ResetAnnotations()
	c.JSON(http.StatusOK, sess.Snapshot())
}

// renderImage buffers the image so that a render error can still produce a json error.
func renderImage(c *gin.Context, format chartv1.Format, render func(w io.Writer, width, height int) error) {
	width, height, err := parseSize(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, width, height); err != nil {
		abortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) renderChart(format chartv1.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := parseView(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sess := currentSession(c)
		renderImage(c, format, func(w io.Writer, width, height int) error {
			return sess.RenderChart(w, view, format, width, height)
		})
	}
}

func (s *Server) renderVolume(format chartv1.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		renderImage(c, format, func(w io.Writer, width, height int) error {
			if width == 0 || height == 0 {
				width, height = 1200, 96
			}
			return sess.RenderVolume(w, format, width, height)
		})
	}
}

func (s *Server) renderAnnotations(format chartv1.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		renderImage(c, format, func(w io.Writer, width, height int) error {
			return sess.RenderAnnotations(w, format, width, height)
		})
	}
}
