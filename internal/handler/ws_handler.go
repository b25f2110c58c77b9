package handler

import (
	"log"
	"net/http"

	"teamboard-server/internal/domain"
	"teamboard-server/internal/middleware"
	"teamboard-server/internal/policy"
	"teamboard-server/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	manager     *websocket.Manager
	actorSource middleware.ActorSource
	policy      *policy.Policy
	upgrader    ws.Upgrader
}

func NewWebSocketHandler(manager *websocket.Manager, actorSource middleware.ActorSource, pol *policy.Policy) *WebSocketHandler {
	return &WebSocketHandler{
		manager:     manager,
		actorSource: actorSource,
		policy:      pol,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("Authorization")
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
	}

	if token == "" {
		http.Error(w, "missing authorization token", http.StatusUnauthorized)
		return
	}

	actor, err := h.actorSource.ActorFromToken(token)
	if err != nil {
		log.Printf("[WebSocket] Token validation failed: %v", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// The team scope is fixed at connect time. A client that wants a
	// narrower view reconnects with a fresh socket.
	teams, err := h.policy.ResolveAllowedTeams(actor, nil)
	if err != nil {
		http.Error(w, "access denied", http.StatusForbidden)
		return
	}
	if teams == nil {
		teams = domain.Teams
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] Failed to upgrade connection: %v", err)
		return
	}

	clientID := uuid.New().String()
	client := websocket.NewClient(clientID, actor.ID, teams, conn, h.manager)

	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
