package wall

import (
	"errors"
	"slices"
	"strings"

	"momsdigitales/util/model"
)

var (
	ErrEmptyPost    = errors.New("escribe algo o añade una imagen")
	ErrEmptyComment = errors.New("el comentario está vacío")
)

func ValidatePost(draft model.PostDraft) error {
	if strings.TrimSpace(draft.Content) == "" && draft.Image == nil {
		return ErrEmptyPost
	}
	return nil
}

func ValidateComment(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}
	return nil
}

// CanDelete: la autora o un admin.
func CanDelete(p model.Post, me model.User) bool {
	return me.ID != "" && (p.AuthorID() == me.ID || me.IsAdmin())
}

func Liked(p model.Post, userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// Feed es el muro en memoria. Likes y comentarios se sustituyen por lo que devuelve el backend.
type Feed struct {
	posts []model.Post
}

func NewFeed(posts []model.Post) *Feed {
	return &Feed{posts: posts}
}

func (f *Feed) Posts() []model.Post {
	return f.posts
}

func (f *Feed) Post(id string) (model.Post, bool) {
	if i := f.index(id); i >= 0 {
		return f.posts[i], true
	}
	return model.Post{}, false
}

func (f *Feed) index(id string) int {
	return slices.IndexFunc(f.posts, func(p model.Post) bool { return p.ID == id })
}

func (f *Feed) Prepend(p model.Post) {
	f.posts = append([]model.Post{p}, f.posts...)
}

func (f *Feed) Remove(id string) {
	if i := f.index(id); i >= 0 {
		f.posts = slices.Delete(f.posts, i, i+1)
	}
}

func (f *Feed) ApplyLikes(postID string, likes []string) {
	if i := f.index(postID); i >= 0 {
		f.posts[i].Likes = likes
	}
}

func (f *Feed) ApplyComments(postID string, comments []model.Comment) {
	if i := f.index(postID); i >= 0 {
		f.posts[i].Comments = comments
	}
}
