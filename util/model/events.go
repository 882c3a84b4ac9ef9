package model

import "encoding/json"

// Eventos del canal realtime.
const (
	EventJoinRoom        = "join_room"
	EventSendMessage     = "send_message"
	EventReceiveMessage  = "receive_message"
	EventNewNotification = "new_notification"
)

// Envelope es la trama JSON que viaja por el websocket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewEnvelope(event string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: raw}, nil
}

func ParseData[T any](e Envelope) (T, error) {
	var v T
	err := json.Unmarshal(e.Data, &v)
	return v, err
}

type OutgoingMessage struct {
	ConversationID string  `json:"conversationId"`
	Message        Message `json:"message"`
}
