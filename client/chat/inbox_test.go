package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momsdigitales/util/model"
)

var (
	ana = model.User{ID: "ana", Username: "Ana"}
	eva = model.User{ID: "eva", Username: "Eva"}
	lu  = model.User{ID: "lu", Username: "Lucía"}
)

func newInbox() *Inbox {
	return NewInbox(ana, []model.Conversation{
		{ID: "c1", Members: []model.User{ana, eva}, Messages: []model.Message{{ID: "m1", Sender: model.UserRef{ID: "eva"}, Text: "hola"}}},
		{ID: "c2", Members: []model.User{lu, ana}},
	})
}

func TestComposeRequiresOpenConversation(t *testing.T) {
	in := newInbox()
	_, err := in.Compose("hola")
	assert.ErrorIs(t, err, ErrNoConversation)

	require.NoError(t, in.Open("c1"))
	_, err = in.Compose("   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestOptimisticSendReconciledWithEcho(t *testing.T) {
	in := newInbox()
	require.NoError(t, in.Open("c1"))

	msg, err := in.Compose("¿qué tal?")
	require.NoError(t, err)
	require.NotEmpty(t, msg.ClientID)
	require.Len(t, in.Transcript(), 2)
	assert.Equal(t, Sending, in.Transcript()[1].Status)

	// el eco realtime llega antes que la respuesta REST
	echo := msg
	assert.True(t, in.Receive(echo))
	require.Len(t, in.Transcript(), 2)
	assert.Equal(t, Sent, in.Transcript()[1].Status)

	stored := model.Message{ID: "m2", ConversationID: "c1", Sender: model.UserRef{ID: "ana"}, Text: "¿qué tal?", ClientID: msg.ClientID}
	in.Confirm(msg.ClientID, stored)
	require.Len(t, in.Transcript(), 2)
	assert.Equal(t, "m2", in.Transcript()[1].ID)
	assert.True(t, in.Transcript()[1].Mine("ana"))

	// un segundo eco con el id del backend tampoco duplica
	in.Receive(stored)
	assert.Len(t, in.Transcript(), 2)
}

func TestConfirmBeforeEcho(t *testing.T) {
	in := newInbox()
	require.NoError(t, in.Open("c1"))
	msg, err := in.Compose("hola")
	require.NoError(t, err)

	in.Confirm(msg.ClientID, model.Message{ID: "m9", ConversationID: "c1", Sender: model.UserRef{ID: "ana"}, Text: "hola"})
	in.Receive(model.Message{ID: "m9", ConversationID: "c1", Text: "hola", ClientID: msg.ClientID})

	require.Len(t, in.Transcript(), 2)
	assert.Equal(t, Sent, in.Transcript()[1].Status)
	assert.Equal(t, msg.ClientID, in.Transcript()[1].ClientID)
}

func TestFailMarksEntry(t *testing.T) {
	in := newInbox()
	require.NoError(t, in.Open("c1"))
	msg, err := in.Compose("hola")
	require.NoError(t, err)

	in.Fail(msg.ClientID)
	assert.Equal(t, Failed, in.Transcript()[1].Status)
}

func TestReceiveOtherConversation(t *testing.T) {
	in := newInbox()
	require.NoError(t, in.Open("c1"))

	assert.False(t, in.Receive(model.Message{ID: "x", ConversationID: "c2", Text: "psst"}))
	assert.Len(t, in.Transcript(), 1)
	assert.Equal(t, "psst", in.Conversations()[1].LastMessage)

	assert.True(t, in.Receive(model.Message{ID: "y", ConversationID: "c1", Text: "nuevo"}))
	assert.Len(t, in.Transcript(), 2)
}

func TestRemoveInvalidatesOpenConversation(t *testing.T) {
	in := newInbox()
	require.NoError(t, in.Open("c1"))

	in.Remove("c1")
	assert.Len(t, in.Conversations(), 1)
	_, ok := in.Current()
	assert.False(t, ok)

	_, err := in.Compose("¿sigues ahí?")
	assert.ErrorIs(t, err, ErrNoConversation)
	assert.ErrorIs(t, in.Open("c1"), ErrNoConversation)
}

func TestFindWithAndFilter(t *testing.T) {
	in := newInbox()

	c, ok := in.FindWith("lu")
	require.True(t, ok)
	assert.Equal(t, "c2", c.ID)
	_, ok = in.FindWith("nadie")
	assert.False(t, ok)

	got := in.Filter("LUC")
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
	assert.Len(t, in.Filter(""), 2)

	in.Add(model.Conversation{ID: "c3", Members: []model.User{ana, {ID: "x", Username: "Xime"}}})
	in.Add(model.Conversation{ID: "c3"})
	assert.Len(t, in.Conversations(), 3)
	assert.Equal(t, "c3", in.Conversations()[0].ID)
}
