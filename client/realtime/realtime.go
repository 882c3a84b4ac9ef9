package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"momsdigitales/logs"
	"momsdigitales/util/model"
)

var ErrNotConnected = errors.New("canal realtime desconectado")

// Disconnected se entrega cuando el servidor corta la conexión. No se reconecta.
// Close no lo genera.
const Disconnected = "disconnect"

type Event struct {
	Name         string
	Message      *model.Message
	Notification *model.Notification
}

type Client struct {
	url    string
	dialer *websocket.Dialer
	events chan Event
	token  func() string

	dial sync.Mutex
	mu   sync.Mutex
	conn *websocket.Conn
	done chan struct{}
}

func New(url string) *Client {
	return &Client{
		url:    url,
		dialer: websocket.DefaultDialer,
		events: make(chan Event, 64),
	}
}

// SetTokenSource fija de dónde sale el JWT que se manda al abrir la conexión.
func (c *Client) SetTokenSource(token func() string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Connect(ctx context.Context) error {
	header := http.Header{}
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != nil {
		if t := token(); t != "" {
			header.Set("Authorization", "Bearer "+t)
		}
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}

	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		conn.Close()
		return nil
	}
	c.conn = conn
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	logs.Info("realtime conectado", "url", c.url)
	go c.read(conn, done)
	return nil
}

func (c *Client) Events() <-chan Event {
	return c.events
}

func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Client) read(conn *websocket.Conn, done chan struct{}) {
	defer c.drop(conn)

	for {
		var e model.Envelope
		if err := conn.ReadJSON(&e); err != nil {
			logs.Info("realtime desconectado", "error", err)
			return
		}

		var ev Event
		switch e.Event {
		case model.EventReceiveMessage:
			msg, err := model.ParseData[model.Message](e)
			if err != nil {
				logs.Warn("bad receive_message", "error", err)
				continue
			}
			ev = Event{Name: e.Event, Message: &msg}
		case model.EventNewNotification:
			n, err := model.ParseData[model.Notification](e)
			if err != nil {
				logs.Warn("bad new_notification", "error", err)
				continue
			}
			ev = Event{Name: e.Event, Notification: &n}
		default:
			continue
		}

		select {
		case c.events <- ev:
		case <-done:
			return
		}
	}
}

func (c *Client) drop(conn *websocket.Conn) {
	c.mu.Lock()
	current := c.conn == conn
	if current {
		c.conn = nil
		close(c.done)
	}
	c.mu.Unlock()
	conn.Close()

	if !current {
		return
	}
	select {
	case c.events <- Event{Name: Disconnected}:
	default:
	}
}

func (c *Client) emit(event string, data any) error {
	e, err := model.NewEnvelope(event, data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	return c.conn.WriteJSON(e)
}

// Join entra en una sala: el id del usuario para notificaciones, el de la conversación para el chat.
func (c *Client) Join(room string) error {
	return c.emit(model.EventJoinRoom, room)
}

func (c *Client) SendMessage(conversationID string, msg model.Message) error {
	return c.emit(model.EventSendMessage, model.OutgoingMessage{ConversationID: conversationID, Message: msg})
}

// Reconnect cierra la conexión actual y abre otra con el token de ese momento.
// Las llamadas concurrentes se hacen de una en una.
func (c *Client) Reconnect(ctx context.Context) error {
	c.dial.Lock()
	defer c.dial.Unlock()
	if err := c.Close(); err != nil {
		logs.Debug("cerrando conexión anterior", "error", err)
	}
	return c.Connect(ctx)
}

// Close cierra la conexión actual; el servidor saca al socket de todas sus salas.
// Se puede volver a llamar a Connect después.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	if conn != nil {
		c.conn = nil
		close(c.done)
	}
	c.mu.Unlock()
	if conn == nil {
		return nil
	}
	err := conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	conn.Close()
	return err
}
