package api

import (
	"context"
	"net/http"
	"net/url"

	"momsdigitales/util/model"
)

func (c *Client) Posts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := c.doJSON(ctx, http.MethodGet, "/posts", nil, &posts)
	return posts, err
}

func (c *Client) CreatePost(ctx context.Context, draft model.PostDraft) (model.Post, error) {
	var post model.Post
	fields := [][2]string{{"content", draft.Content}}
	err := c.doMultipart(ctx, http.MethodPost, "/posts", fields, multipartFile{field: "image", upload: draft.Image}, &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/posts/"+url.PathEscape(postID), nil, nil)
}

// ToggleLike devuelve la lista de likes que tiene el post tras el cambio.
func (c *Client) ToggleLike(ctx context.Context, postID string) ([]string, error) {
	var likes []string
	err := c.doJSON(ctx, http.MethodPut, "/posts/"+url.PathEscape(postID)+"/like", nil, &likes)
	return likes, err
}

// Comment devuelve la lista completa de comentarios del post.
func (c *Client) Comment(ctx context.Context, postID, text string) ([]model.Comment, error) {
	var comments []model.Comment
	err := c.doJSON(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comment", model.CommentInput{Text: text}, &comments)
	return comments, err
}
