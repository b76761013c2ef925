package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockpulse/internal/logger"
	"github.com/guttosm/stockpulse/internal/middleware"
	"github.com/guttosm/stockpulse/internal/tracker"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl"))
}

// Handler serves the tracker pages.
//
// Routes:
//   - GET  /                    new view: default symbol, no data, no error
//   - GET  /views/:id           current state of a view
//   - POST /views/:id/symbol    input change; stores the upper-cased symbol
//   - POST /views/:id/submit    form submit; fetches and renders
//   - GET  /views/:id/chart     line chart of the view's visible series
type Handler struct {
	store *ViewStore
}

// NewHandler constructs a Handler over store.
func NewHandler(store *ViewStore) *Handler {
	return &Handler{store: store}
}

// Register installs the templates and mounts the page routes.
func (h *Handler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())

	r.GET("/", h.NewView)
	views := r.Group("/views/:id")
	{
		views.GET("", h.ShowView)
		views.POST("/symbol", h.ChangeSymbol)
		views.POST("/submit", h.Submit)
		views.GET("/chart", h.Chart)
	}
}

// NewView opens a fresh view and renders it.
func (h *Handler) NewView(c *gin.Context) {
	id, sess := h.store.Create()
	h.render(c, id, sess.Snapshot())
}

// ShowView renders the current state of a view.
func (h *Handler) ShowView(c *gin.Context) {
	id := c.Param("id")
	sess, ok := h.store.Get(id)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, id, sess.Snapshot())
}

// ChangeSymbol stores the typed symbol, upper-cased, and echoes it back.
func (h *Handler) ChangeSymbol(c *gin.Context) {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		middleware.AbortWithError(c, http.StatusNotFound, "view not found", nil)
		return
	}
	sym := sess.SetSymbol(c.PostForm("symbol"))
	c.JSON(http.StatusOK, gin.H{"symbol": sym})
}

// Submit applies the submitted symbol, fetches its chart and renders the result.
func (h *Handler) Submit(c *gin.Context) {
	id := c.Param("id")
	sess, ok := h.store.Get(id)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if sym, ok := c.GetPostForm("symbol"); ok {
		sess.SetSymbol(sym)
	}
	snap := sess.Submit(c.Request.Context())

	if msg := tracker.ErrorText(snap.State); msg != "" {
		lg := logger.Component("web")
		lg.Info().Str("view_id", id).Str("symbol", snap.Symbol).Str("error", msg).Msg("submit failed")
	}
	h.render(c, id, snap)
}

// Chart renders the chart page embedded by the view.
func (h *Handler) Chart(c *gin.Context) {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		middleware.AbortWithError(c, http.StatusNotFound, "view not found", nil)
		return
	}
	data, _, ok := tracker.Visible(sess.Snapshot().State)
	if !ok {
		middleware.AbortWithError(c, http.StatusNotFound, "no chart data", nil)
		return
	}

	var buf bytes.Buffer
	if err := renderChart(&buf, data); err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "chart render failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) render(c *gin.Context, id string, snap tracker.Snapshot) {
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "page.tmpl", buildPage(id, snap))
}
