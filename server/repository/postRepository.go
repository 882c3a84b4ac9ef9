package repository

import (
	"encoding/json"
	"slices"

	"momsdigitales/util/model"
)

func clonePost(p *model.Post) model.Post {
	var out model.Post
	b, _ := json.Marshal(p)
	_ = json.Unmarshal(b, &out)
	return out
}

// ListPosts devuelve los posts del más nuevo al más viejo.
func ListPosts(db *Database) []model.Post {
	db.mu.RLock()
	defer db.mu.RUnlock()

	posts := make([]model.Post, 0, len(db.PostIDs))
	for i := len(db.PostIDs) - 1; i >= 0; i-- {
		posts = append(posts, clonePost(db.Posts[db.PostIDs[i]]))
	}
	return posts
}

func CreatePost(db *Database, author model.User, content, image string) model.Post {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := &model.Post{
		ID:        newID(),
		Author:    &author,
		Content:   content,
		Image:     image,
		Likes:     []string{},
		Comments:  []model.Comment{},
		CreatedAt: model.Now(),
	}
	db.Posts[p.ID] = p
	db.PostIDs = append(db.PostIDs, p.ID)
	return clonePost(p)
}

func GetPost(db *Database, id string) (model.Post, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	p, ok := db.Posts[id]
	if !ok {
		return model.Post{}, ErrNotFound
	}
	return clonePost(p), nil
}

func DeletePost(db *Database, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.Posts[id]; !ok {
		return ErrNotFound
	}
	delete(db.Posts, id)
	db.PostIDs = removeID(db.PostIDs, id)
	return nil
}

// ToggleLike añade o quita userID de los likes. Nunca hay duplicados.
func ToggleLike(db *Database, postID, userID string) ([]string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.Posts[postID]
	if !ok {
		return nil, false, ErrNotFound
	}
	liked := false
	if i := slices.Index(p.Likes, userID); i >= 0 {
		p.Likes = slices.Delete(p.Likes, i, i+1)
	} else {
		p.Likes = append(p.Likes, userID)
		liked = true
	}
	return slices.Clone(p.Likes), liked, nil
}

func AddComment(db *Database, postID string, user model.User, text string) ([]model.Comment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.Posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	p.Comments = append(p.Comments, model.Comment{ID: newID(), User: &user, Text: text, CreatedAt: model.Now()})
	return slices.Clone(p.Comments), nil
}
