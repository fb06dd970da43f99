package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"report-service-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "workflow_updates"

// Hub tracks the live connections per user and fans workflow updates out to
// them. With a Redis client attached, updates also reach connections held by
// other instances; without one the hub is single-instance.
type Hub struct {
	// user id -> open connections (multi-tab)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserId] = append(h.clients[client.UserId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserId]) == 0 {
					delete(h.clients, client.UserId)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser delivers a workflow update to every connection the user has on
// this instance, then relays it over Redis for the others.
func (h *Hub) SendToUser(userId string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "workflow_update",
		"data": payload,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal workflow update", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(userId, data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(clusterMessage{TargetUserId: userId, Message: data})
		h.rdb.Publish(context.Background(), clusterChannel, envelope)
	}
}

func (h *Hub) deliverLocal(userId string, data []byte) {
	h.mu.RLock()
	clients := h.clients[userId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userId})
			h.unregister <- client
		}
	}
}

type clusterMessage struct {
	TargetUserId string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		h.deliverLocal(payload.TargetUserId, payload.Message)
	}
}
