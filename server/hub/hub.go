package hub

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"momsdigitales/logs"
	"momsdigitales/util/model"
)

type client struct {
	ws   *websocket.Conn
	mu   sync.Mutex
	user string
}

func (c *client) send(e model.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(e)
}

// Authenticate devuelve el id de usuario de la petición de upgrade.
type Authenticate func(req *http.Request) (string, error)

// CanJoin decide si el usuario puede entrar en la sala.
type CanJoin func(userID, room string) bool

// Hub reparte eventos por salas (id de usuario o id de conversación).
// Sin Protect cualquier socket entra en cualquier sala.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]bool
	upgrader websocket.Upgrader

	authenticate Authenticate
	canJoin      CanJoin
}

func New() *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Protect exige un usuario autenticado al conectar y permiso para cada sala.
func (h *Hub) Protect(authenticate Authenticate, canJoin CanJoin) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.authenticate = authenticate
	h.canJoin = canJoin
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.mu.RLock()
	authenticate := h.authenticate
	h.mu.RUnlock()

	var user string
	if authenticate != nil {
		id, err := authenticate(req)
		if err != nil {
			logs.Info("websocket rechazado", "error", err)
			http.Error(w, "No autorizado", http.StatusUnauthorized)
			return
		}
		user = id
	}

	ws, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		logs.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &client{ws: ws, user: user}
	defer h.leaveAll(c)

	for {
		var e model.Envelope
		if err := ws.ReadJSON(&e); err != nil {
			return
		}
		h.handle(c, e)
	}
}

func (h *Hub) handle(c *client, e model.Envelope) {
	switch e.Event {
	case model.EventJoinRoom:
		room, err := model.ParseData[string](e)
		if err != nil || room == "" {
			return
		}
		if !h.allowed(c, room) {
			logs.Warn("join_room denegado", "user", c.user, "room", room)
			return
		}
		h.join(c, room)
	case model.EventSendMessage:
		out, err := model.ParseData[model.OutgoingMessage](e)
		if err != nil || out.ConversationID == "" {
			return
		}
		if !h.allowed(c, out.ConversationID) {
			logs.Warn("send_message denegado", "user", c.user, "room", out.ConversationID)
			return
		}
		msg := out.Message
		msg.ConversationID = out.ConversationID
		h.Emit(out.ConversationID, model.EventReceiveMessage, msg)
	default:
		logs.Debug("unknown realtime event", "event", e.Event)
	}
}

// Emit manda el evento a todos los clientes de la sala.
func (h *Hub) Emit(room, event string, data any) {
	e, err := model.NewEnvelope(event, data)
	if err != nil {
		logs.Error("encoding realtime event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(e); err != nil {
			h.leaveAll(c)
		}
	}
}

func (h *Hub) allowed(c *client, room string) bool {
	h.mu.RLock()
	canJoin := h.canJoin
	h.mu.RUnlock()
	return canJoin == nil || canJoin(c.user, room)
}

func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]bool)
	}
	h.rooms[room][c] = true
}

func (h *Hub) leaveAll(c *client) {
	h.mu.Lock()
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
	c.ws.Close()
}

// Members devuelve cuántos clientes hay en la sala.
func (h *Hub) Members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
