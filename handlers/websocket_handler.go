package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/services"
	"github.com/gorilla/websocket"
)

const clientSendBuffer = 256

type WebSocketHandler struct {
	hub            *brackets.Hub
	bracketService services.BracketService
	upgrader       websocket.Upgrader
	logger         *slog.Logger
}

// NewWebSocketHandler принимает список разрешенных Origin. "*" или пустой список разрешает любой.
func NewWebSocketHandler(hub *brackets.Hub, bs services.BracketService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketHandler{
		hub:            hub,
		bracketService: bs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.With(slog.String("handler", "websocket")),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(r *http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

var errHubStopped = errors.New("websocket hub is stopped")

// ServeWs подключает зрителя к комнате сетки. Клиент сначала получает
// SNAPSHOT с текущим состоянием, затем все последующие обновления.
// Снимок строится и клиент регистрируется под блокировкой состояния,
// поэтому ни одно сохранение не проскочит между ними.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	client := &brackets.Client{
		Hub:  h.hub,
		Send: make(chan []byte, clientSendBuffer),
		Room: brackets.BracketRoom,
	}

	err := h.bracketService.Subscribe(r.Context(), func(snapshot *services.Snapshot) error {
		message, err := json.Marshal(brackets.WebSocketMessage{
			Type:    brackets.MessageSnapshot,
			Payload: snapshot,
			RoomID:  brackets.BracketRoom,
		})
		if err != nil {
			return err
		}
		client.Send <- message
		if !h.hub.Join(client) {
			return errHubStopped
		}
		return nil
	})
	if errors.Is(err, errHubStopped) {
		errorResponse(w, r, http.StatusServiceUnavailable, "server is shutting down")
		return
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой.
		h.logger.Warn("failed to upgrade connection", slog.Any("error", err))
		h.hub.Leave(client)
		return
	}
	client.Conn = conn

	go client.WritePump()
	go client.ReadPump()
}
