package floor

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/cabax/cabax-backend/models"
	"github.com/cabax/cabax-backend/utils"
)

// Event types pushed to connected staff devices.
const (
	EventStaffCall       = "staff_call"
	EventTableUpdate     = "table_update"
	EventSessionUpdate   = "session_update"
	EventSessionCheckout = "session_checkout"
	EventOrderUpdate     = "order_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected floor device (staff tablets, the register) and
// fans events out to all of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastStaffCall notifies the floor that a table is calling for staff.
func BroadcastStaffCall(sessionID uint, tableName string) {
	Broadcast(Message{
		Event: EventStaffCall,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"table_name": tableName,
		},
	})
}

func BroadcastTableUpdate(table models.Table) {
	Broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

func BroadcastSessionUpdate(session models.Session) {
	Broadcast(Message{
		Event: EventSessionUpdate,
		Data:  session,
	})
}

func BroadcastSessionCheckout(session models.Session) {
	Broadcast(Message{
		Event: EventSessionCheckout,
		Data:  session,
	})
}

// Broadcast sends a message to every connected client, dropping connections
// that fail to write.
func Broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteJSON(msg); err != nil {
			utils.ErrorLogger.Printf("floor broadcast failed, dropping client: %v", err)
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
