package wall

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"momsdigitales/util/model"
)

func TestValidatePost(t *testing.T) {
	assert.ErrorIs(t, ValidatePost(model.PostDraft{}), ErrEmptyPost)
	assert.ErrorIs(t, ValidatePost(model.PostDraft{Content: "  \n"}), ErrEmptyPost)
	assert.NoError(t, ValidatePost(model.PostDraft{Content: "hola"}))
	assert.NoError(t, ValidatePost(model.PostDraft{Image: &model.Upload{Name: "a.png"}}))
}

func TestApplyLikesRendersServerSet(t *testing.T) {
	f := NewFeed([]model.Post{{ID: "p1"}, {ID: "p2", Likes: []string{"x"}}})

	for _, likes := range [][]string{{"ana"}, {}, {"ana", "eva"}, {"eva"}} {
		f.ApplyLikes("p1", likes)
		p, _ := f.Post("p1")
		assert.Equal(t, likes, p.Likes)
	}
	p, _ := f.Post("p2")
	assert.Equal(t, []string{"x"}, p.Likes)
	assert.True(t, Liked(p, "x"))

	f.ApplyLikes("nope", []string{"ana"})
	assert.Len(t, f.Posts(), 2)
}

func TestApplyCommentsAndRemove(t *testing.T) {
	f := NewFeed([]model.Post{{ID: "p1"}})
	f.Prepend(model.Post{ID: "p0"})
	assert.Equal(t, "p0", f.Posts()[0].ID)

	f.ApplyComments("p1", []model.Comment{{ID: "c1", Text: "¡genial!"}})
	p, ok := f.Post("p1")
	assert.True(t, ok)
	assert.Len(t, p.Comments, 1)

	f.Remove("p1")
	_, ok = f.Post("p1")
	assert.False(t, ok)
}

func TestCanDelete(t *testing.T) {
	author := model.User{ID: "ana"}
	post := model.Post{ID: "p", Author: &author}

	assert.True(t, CanDelete(post, author))
	assert.False(t, CanDelete(post, model.User{ID: "eva", Role: model.NormalUser}))
	assert.True(t, CanDelete(post, model.User{ID: "root", Role: model.Admin}))
	assert.False(t, CanDelete(model.Post{}, model.User{}))
}
