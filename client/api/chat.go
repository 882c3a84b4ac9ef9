package api

import (
	"context"
	"net/http"
	"net/url"

	"momsdigitales/util/model"
)

func (c *Client) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := c.doJSON(ctx, http.MethodGet, "/chat", nil, &convs)
	return convs, err
}

func (c *Client) ChatCandidates(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.doJSON(ctx, http.MethodGet, "/chat/users", nil, &users)
	return users, err
}

func (c *Client) StartConversation(ctx context.Context, receiverID string) (model.Conversation, error) {
	var conv model.Conversation
	err := c.doJSON(ctx, http.MethodPost, "/chat", model.NewConversation{ReceiverID: receiverID}, &conv)
	return conv, err
}

func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/chat/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SendMessage(ctx context.Context, in model.MessageInput) (model.Message, error) {
	var msg model.Message
	err := c.doJSON(ctx, http.MethodPost, "/chat/message", in, &msg)
	return msg, err
}
