package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	competitionClients = make(map[string]map[*websocket.Conn]bool) // Map of competition ID to connected clients
	broadcast          = make(chan CompetitionUpdate)              // Broadcast channel for updates
	mutex              sync.Mutex                                  // Mutex to protect competitionClients map
)

// Update types pushed to subscribers
const (
	UpdatePhaseChanged = "phase_changed"
	UpdateVoteCast     = "vote_cast"
	UpdateDishChanged  = "dish_changed"
	UpdateVotesReset   = "votes_reset"
)

// CompetitionUpdate is one event pushed to every subscriber of a competition.
// Delivery is best-effort; clients re-read authoritative state from the API.
type CompetitionUpdate struct {
	CompetitionID string      `json:"competition_id"`
	UpdateType    string      `json:"update_type"`
	Payload       interface{} `json:"payload,omitempty"`
}

// RegisterClient adds a WebSocket client to a specific competition
func RegisterClient(competitionID string, conn *websocket.Conn) {
	mutex.Lock()
	if competitionClients[competitionID] == nil {
		competitionClients[competitionID] = make(map[*websocket.Conn]bool)
	}
	competitionClients[competitionID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific competition
func UnregisterClient(competitionID string, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := competitionClients[competitionID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(competitionClients, competitionID)
		}
	}
	mutex.Unlock()
}

// BroadcastUpdate sends an update to all clients connected to a competition
func BroadcastUpdate(update CompetitionUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := competitionClients[update.CompetitionID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
