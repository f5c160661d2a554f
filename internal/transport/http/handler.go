package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/communiconnect/delivery/internal/application"
	"github.com/communiconnect/delivery/internal/domain"
)

// Handler holds all HTTP handler methods.
type Handler struct {
	svc *application.Service
	hub *Hub
}

// NewHandler creates a new Handler.
func NewHandler(svc *application.Service, hub *Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}

// --- REST Handlers ---

// ListNotifications GET /notifications
func (h *Handler) ListNotifications(c echo.Context) error {
	userID := mustSubject(c)

	filter := domain.NotificationFilter{
		UserID: userID,
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}

	if k := c.QueryParam("kind"); k != "" {
		filter.Kind = domain.Kind(k)
	}
	if r := c.QueryParam("is_read"); r != "" {
		isRead := r == "true"
		filter.IsRead = &isRead
	}

	notifications, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":   notifications,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// GetUnreadCount GET /notifications/unread-count
func (h *Handler) GetUnreadCount(c echo.Context) error {
	userID := mustSubject(c)

	count, err := h.svc.CountUnread(c.Request().Context(), userID)
	if err != nil {
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// MarkRead PATCH /notifications/:id/read
func (h *Handler) MarkRead(c echo.Context) error {
	userID := mustSubject(c)
	id := c.Param("id")

	if err := h.svc.MarkRead(c.Request().Context(), id, userID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead POST /notifications/read-all
func (h *Handler) MarkAllRead(c echo.Context) error {
	userID := mustSubject(c)

	count, err := h.svc.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, map[string]int64{"marked": count})
}

// Delete DELETE /notifications/:id
func (h *Handler) Delete(c echo.Context) error {
	userID := mustSubject(c)
	id := c.Param("id")

	if err := h.svc.Delete(c.Request().Context(), id, userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Device token handlers ---

// RegisterDevice POST /devices
func (h *Handler) RegisterDevice(c echo.Context) error {
	userID := mustSubject(c)

	var req struct {
		Token      string `json:"token"`
		DeviceInfo string `json:"device_info"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.svc.RegisterDevice(c.Request().Context(), userID, req.Token, req.DeviceInfo); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveDevice DELETE /devices/:token
func (h *Handler) RemoveDevice(c echo.Context) error {
	userID := mustSubject(c)
	token := c.Param("token")

	if err := h.svc.RemoveDevice(c.Request().Context(), userID, token); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Websocket handler ---

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced by middleware; the handshake itself accepts any origin.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// Stream GET /ws — realtime delivery channel
func (h *Handler) Stream(c echo.Context) error {
	userID := mustSubject(c)

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	sendCh := make(chan []byte, 32)
	client := h.hub.Register(userID, sendCh)
	defer h.hub.Unregister(client)

	// Initial "connected" frame so clients can confirm the stream is live.
	if err := ws.WriteMessage(websocket.TextMessage, []byte(`{"event":"connected"}`)); err != nil {
		return nil
	}

	log.Info().Str("subject", userID).Str("conn", client.ConnectionID()).Msg("websocket stream opened")

	// Reader goroutine: inbound frames are discarded, but reading is what
	// detects the peer closing the connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request().Context()
	for {
		select {
		case msg := <-sendCh:
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return nil
			}

		case <-done:
			log.Info().Str("subject", userID).Msg("websocket stream closed by client")
			return nil

		case <-ctx.Done():
			return nil
		}
	}
}

// --- Healthcheck ---

// Health GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":     "ok",
		"ws_clients": h.hub.ConnectedCount(),
	})
}

// --- Helpers ---

func mustSubject(c echo.Context) string {
	userID, _ := c.Get("subjectID").(string)
	return userID
}

func parseIntQuery(c echo.Context, key string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(key))
	if err != nil || v < 0 {
		return def
	}
	return v
}
