package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
	"github.com/yanqian/trafficai/internal/infra/page"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

// PageState is the element state rendered by the browser.
type PageState interface {
	Snapshot() page.Snapshot
	Select(value string)
}

// MapImages serves the image of the most recent map frame.
type MapImages interface {
	Latest() (data []byte, seq int64, ok bool)
}

// NotificationFeed lists recently shown notifications.
type NotificationFeed interface {
	Recent(limit int) []dashboard.Notification
}

// Dependencies groups what the handler forwards requests to.
type Dependencies struct {
	Dashboard     dashboard.Service
	State         PageState
	Images        MapImages
	Notifications NotificationFeed
	Socket        http.Handler
	Layout        *page.Layout
}

// Handler translates browser events into controller calls.
type Handler struct {
	deps   Dependencies
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(deps Dependencies, logger *slog.Logger) *Handler {
	return &Handler{deps: deps, logger: logger.With("component", "http.handler")}
}

type dashboardResponse struct {
	Theme dashboard.ThemeMode `json:"theme"`
	State page.Snapshot       `json:"state"`
	Frame *dashboard.MapFrame `json:"frame"`
}

type alertRequest struct {
	AlertType string `json:"alertType"`
}

type transcriptRequest struct {
	SessionID  string `json:"sessionId"`
	Transcript string `json:"transcript" binding:"required"`
}

type scrollRequest struct {
	Href string `json:"href" binding:"required"`
}

// Index serves the dashboard page.
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.deps.Layout.HTML)
}

// Socket upgrades to the live event stream.
func (h *Handler) Socket(c *gin.Context) {
	h.deps.Socket.ServeHTTP(c.Writer, c.Request)
}

// Dashboard returns everything a freshly loaded page needs to render.
func (h *Handler) Dashboard(c *gin.Context) {
	resp := dashboardResponse{
		Theme: h.deps.Dashboard.CurrentTheme(),
		State: h.deps.State.Snapshot(),
	}
	if frame, ok := h.deps.Dashboard.LastFrame(); ok {
		resp.Frame = &frame
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleTheme flips between light and dark mode.
func (h *Handler) ToggleTheme(c *gin.Context) {
	mode := h.deps.Dashboard.ToggleTheme(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"theme": mode, "state": h.deps.State.Snapshot()})
}

// RefreshTraffic triggers an out of schedule traffic reading.
func (h *Handler) RefreshTraffic(c *gin.Context) {
	if err := h.deps.Dashboard.RefreshTraffic(c.Request.Context()); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "traffic_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.deps.State.Snapshot()})
}

// Map returns the last rendered frame.
func (h *Handler) Map(c *gin.Context) {
	frame, ok := h.deps.Dashboard.LastFrame()
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "map_not_ready", "no map frame rendered yet", nil))
		return
	}
	c.JSON(http.StatusOK, frame)
}

// MapImage returns the last rendered frame as PNG.
func (h *Handler) MapImage(c *gin.Context) {
	data, seq, ok := h.deps.Images.Latest()
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "map_not_ready", "no map frame rendered yet", nil))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("X-Frame-Seq", strconv.FormatInt(seq, 10))
	c.Data(http.StatusOK, "image/png", data)
}

// ConnectVehicle runs the pairing flow.
func (h *Handler) ConnectVehicle(c *gin.Context) {
	device, err := h.deps.Dashboard.ConnectVehicle(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"device": device})
}

// OptimizeRoute picks a route.
func (h *Handler) OptimizeRoute(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"route": h.deps.Dashboard.OptimalRoute(c.Request.Context())})
}

// StartVoice opens a recognition session on the connected page.
func (h *Handler) StartVoice(c *gin.Context) {
	if err := h.deps.Dashboard.StartVoice(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "listening"})
}

// VoiceResult dispatches a recognized transcript.
func (h *Handler) VoiceResult(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	cmd := h.deps.Dashboard.HandleTranscript(c.Request.Context(), req.Transcript)
	c.JSON(http.StatusOK, gin.H{"command": cmd, "sessionId": req.SessionID})
}

// SetAlert records the alert type picked in the selector.
func (h *Handler) SetAlert(c *gin.Context) {
	var req alertRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
	}
	if req.AlertType != "" {
		h.deps.State.Select(req.AlertType)
	}
	c.JSON(http.StatusOK, gin.H{"alertType": h.deps.Dashboard.SetAlert(c.Request.Context())})
}

// Scroll animates connected pages to an in-page anchor.
func (h *Handler) Scroll(c *gin.Context) {
	var req scrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"scrolled": h.deps.Dashboard.ScrollTo(c.Request.Context(), req.Href)})
}

// Login is not implemented yet and only notifies the page.
func (h *Handler) Login(c *gin.Context) {
	h.deps.Dashboard.Login(c.Request.Context())
	c.JSON(http.StatusAccepted, gin.H{"status": "coming_soon"})
}

// Notifications lists the most recent notifications, newest last.
func (h *Handler) Notifications(c *gin.Context) {
	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a positive integer", err))
			return
		}
		limit = min(parsed, maxNotificationLimit)
	}
	c.JSON(http.StatusOK, gin.H{"notifications": h.deps.Notifications.Recent(limit)})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
