package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"teamboard-server/internal/domain"
)

type ClientMessage struct {
	Client  *Client
	Message []byte
}

// Manager owns the live board feed: it tracks connected clients and fans
// board changes out to every client whose team scope covers the change.
type Manager struct {
	clients         map[string]*Client
	actorIndex      map[string]map[string]bool
	clientsMutex    sync.RWMutex
	Register        chan *Client
	Unregister      chan *Client
	HandleMessage   chan *ClientMessage
	maxConnPerActor int
	writeWait       time.Duration
	pongWait        time.Duration
	pingPeriod      time.Duration
}

func NewManager(maxConnPerActor int, writeWait, pongWait, pingPeriod time.Duration) *Manager {
	return &Manager{
		clients:         make(map[string]*Client),
		actorIndex:      make(map[string]map[string]bool),
		Register:        make(chan *Client),
		Unregister:      make(chan *Client),
		HandleMessage:   make(chan *ClientMessage),
		maxConnPerActor: maxConnPerActor,
		writeWait:       writeWait,
		pongWait:        pongWait,
		pingPeriod:      pingPeriod,
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.Register:
			m.registerClient(client)

		case client := <-m.Unregister:
			m.unregisterClient(client)

		case clientMsg := <-m.HandleMessage:
			m.processMessage(clientMsg)
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	m.clientsMutex.Lock()
	defer m.clientsMutex.Unlock()

	if m.actorIndex[client.ActorID] == nil {
		m.actorIndex[client.ActorID] = make(map[string]bool)
	}

	if len(m.actorIndex[client.ActorID]) >= m.maxConnPerActor {
		log.Printf("max connections reached for actor %s", client.ActorID)
		close(client.Send)
		return
	}

	m.clients[client.ID] = client
	m.actorIndex[client.ActorID][client.ID] = true

	log.Printf("client registered: %s (actor: %s, teams: %v)", client.ID, client.ActorID, client.Teams)
}

func (m *Manager) unregisterClient(client *Client) {
	m.clientsMutex.Lock()
	defer m.clientsMutex.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		delete(m.actorIndex[client.ActorID], client.ID)

		if len(m.actorIndex[client.ActorID]) == 0 {
			delete(m.actorIndex, client.ActorID)
		}

		close(client.Send)
		log.Printf("client unregistered: %s", client.ID)
	}
}

// processMessage handles the little inbound traffic the feed accepts.
// Anything other than a ping is dropped; the feed is one-way.
func (m *Manager) processMessage(clientMsg *ClientMessage) {
	var msg Message
	if err := json.Unmarshal(clientMsg.Message, &msg); err != nil {
		log.Printf("error unmarshaling message: %v", err)
		return
	}

	if msg.Type == TypePing {
		pong, err := NewMessage(TypePong, nil)
		if err != nil {
			return
		}
		data, err := json.Marshal(pong)
		if err != nil {
			return
		}
		select {
		case clientMsg.Client.Send <- data:
		default:
		}
	}
}

// Broadcast implements the service layer's Broadcaster interface. Only
// clients whose visibility includes the change's team receive it.
func (m *Manager) Broadcast(msgType string, team domain.Team, payload interface{}) {
	message, err := NewMessage(MessageType(msgType), payload)
	if err != nil {
		log.Printf("error building broadcast message: %v", err)
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Printf("error marshaling broadcast message: %v", err)
		return
	}

	m.clientsMutex.RLock()
	defer m.clientsMutex.RUnlock()

	for _, client := range m.clients {
		if !client.sees(team) {
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("client %s send buffer full, dropping message", client.ID)
		}
	}
}

func (m *Manager) ActorConnections(actorID string) int {
	m.clientsMutex.RLock()
	defer m.clientsMutex.RUnlock()

	if clients, exists := m.actorIndex[actorID]; exists {
		return len(clients)
	}
	return 0
}
