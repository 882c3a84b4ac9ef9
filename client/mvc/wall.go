package mvc

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/message"
	"momsdigitales/client/wall"
	"momsdigitales/util/model"
)

type postsLoadedMsg struct {
	posts []model.Post
	err   error
}

type postCreatedMsg struct {
	post model.Post
	err  error
}

type postDeletedMsg struct {
	id  string
	err error
}

type likesMsg struct {
	post  string
	likes []string
	err   error
}

type commentsMsg struct {
	post     string
	comments []model.Comment
	err      error
}

type wallMode int

const (
	reading wallMode = iota
	composing
	commenting
)

// WallPage es el muro social.
type WallPage struct {
	deps    *Deps
	feed    *wall.Feed
	cursor  int
	mode    wallMode
	content textarea.Model
	image   textinput.Model
	comment textinput.Model
	loading bool
	posting bool
	confirm confirm
	msg     string
}

func InitialWallModel(deps *Deps) WallPage {
	content := textarea.New()
	content.Placeholder = "¿Qué quieres compartir hoy?"
	content.SetHeight(3)
	content.ShowLineNumbers = false

	image := textinput.New()
	image.Placeholder = "Ruta de una imagen (opcional)"

	comment := textinput.New()
	comment.Placeholder = "Escribe un comentario"

	return WallPage{
		deps:    deps,
		feed:    wall.NewFeed(nil),
		content: content,
		image:   image,
		comment: comment,
		loading: true,
	}
}

func (m WallPage) Init() tea.Cmd {
	return loadPosts(m.deps)
}

func loadPosts(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		posts, err := deps.API.Posts(bg())
		return postsLoadedMsg{posts: posts, err: err}
	}
}

func (m WallPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var handled bool
	if m.confirm, cmd, handled = m.confirm.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case postsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al cargar el muro"))
		}
		m.feed = wall.NewFeed(msg.posts)
		m.cursor = 0
		return m, nil
	case postCreatedMsg:
		m.posting = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al publicar"))
		}
		m.feed.Prepend(msg.post)
		m.content.Reset()
		m.image.Reset()
		m = m.read()
		m.cursor = 0
		return m, info(&m.msg, "Publicado")
	case postDeletedMsg:
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al eliminar la publicación"))
		}
		m.feed.Remove(msg.id)
		if m.cursor >= len(m.feed.Posts()) {
			m.cursor = max(len(m.feed.Posts())-1, 0)
		}
		return m, info(&m.msg, "Publicación eliminada")
	case likesMsg:
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al dar me gusta"))
		}
		m.feed.ApplyLikes(msg.post, msg.likes)
		return m, nil
	case commentsMsg:
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al comentar"))
		}
		m.feed.ApplyComments(msg.post, msg.comments)
		m.comment.Reset()
		m = m.read()
		return m, nil
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case composing:
			return m.updateCompose(msg)
		case commenting:
			return m.updateComment(msg)
		}
		return m.updateRead(msg)
	}
	return m, nil
}

func (m WallPage) read() WallPage {
	m.mode = reading
	m.content.Blur()
	m.image.Blur()
	m.comment.Blur()
	return m
}

func (m WallPage) selected() (model.Post, bool) {
	posts := m.feed.Posts()
	if len(posts) == 0 {
		return model.Post{}, false
	}
	return posts[m.cursor], true
}

func (m WallPage) updateRead(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	me := m.deps.User()
	switch msg.String() {
	case "up", "down":
		m.cursor = moveCursor(m.cursor, len(m.feed.Posts()), msg.String())
	case "n":
		m.mode = composing
		return m, m.content.Focus()
	case "r":
		m.loading = true
		return m, loadPosts(m.deps)
	case "l":
		if p, ok := m.selected(); ok {
			return m, toggleLike(m.deps, p.ID)
		}
	case "c":
		if _, ok := m.selected(); ok {
			m.mode = commenting
			return m, m.comment.Focus()
		}
	case "d":
		p, ok := m.selected()
		if !ok {
			break
		}
		if !wall.CanDelete(p, me) {
			return m, info(&m.msg, "Solo la autora o un admin pueden eliminarla")
		}
		m.confirm = ask("¿Eliminar esta publicación?", deletePost(m.deps, p.ID))
	}
	return m, nil
}

func (m WallPage) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc":
		return m.read(), nil
	case "tab":
		if m.content.Focused() {
			m.content.Blur()
			return m, m.image.Focus()
		}
		m.image.Blur()
		return m, m.content.Focus()
	case "ctrl+s":
		if m.posting {
			return m, nil
		}
		draft := model.PostDraft{Content: strings.TrimSpace(m.content.Value())}
		img, err := readUpload(m.image.Value())
		if err != nil {
			return m, info(&m.msg, err.Error())
		}
		draft.Image = img
		if err := wall.ValidatePost(draft); err != nil {
			return m, info(&m.msg, err.Error())
		}
		m.posting = true
		return m, createPost(m.deps, draft)
	}
	if m.content.Focused() {
		m.content, cmd = m.content.Update(msg)
	} else {
		m.image, cmd = m.image.Update(msg)
	}
	return m, cmd
}

func (m WallPage) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.comment.Reset()
		return m.read(), nil
	case "enter":
		p, ok := m.selected()
		if !ok {
			return m.read(), nil
		}
		text := strings.TrimSpace(m.comment.Value())
		if err := wall.ValidateComment(text); err != nil {
			return m, info(&m.msg, err.Error())
		}
		return m, addComment(m.deps, p.ID, text)
	}
	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func createPost(deps *Deps, draft model.PostDraft) tea.Cmd {
	return func() tea.Msg {
		p, err := deps.API.CreatePost(bg(), draft)
		return postCreatedMsg{post: p, err: err}
	}
}

func deletePost(deps *Deps, id string) tea.Cmd {
	return func() tea.Msg {
		return postDeletedMsg{id: id, err: deps.API.DeletePost(bg(), id)}
	}
}

func toggleLike(deps *Deps, id string) tea.Cmd {
	return func() tea.Msg {
		likes, err := deps.API.ToggleLike(bg(), id)
		return likesMsg{post: id, likes: likes, err: err}
	}
}

func addComment(deps *Deps, id, text string) tea.Cmd {
	return func() tea.Msg {
		comments, err := deps.API.Comment(bg(), id, text)
		return commentsMsg{post: id, comments: comments, err: err}
	}
}

func author(u *model.User) string {
	if u == nil || u.Username == "" {
		return "Anónima"
	}
	return u.Username
}

func (m WallPage) View() string {
	me := m.deps.User()
	s := titleStyle.Render("Muro Social") + "\n\n"

	if m.mode == composing {
		s += m.content.View() + "\n" + m.image.View() + "\n"
		if m.posting {
			s += "Publicando...\n"
		}
		s += mutedStyle.Render("ctrl+s publicar · tab cambiar campo · esc cancelar") + "\n\n"
	}

	posts := m.feed.Posts()
	switch {
	case m.loading:
		s += "Cargando publicaciones...\n\n"
	case len(posts) == 0:
		s += mutedStyle.Render("Todavía no hay publicaciones. ¡Sé la primera!") + "\n\n"
	}

	for i, p := range posts {
		head := author(p.Author) + "  " + mutedStyle.Render(p.CreatedAt.Local().Format("02/01 15:04"))
		if i == m.cursor {
			head = cursorStyle.Render(author(p.Author)) + "  " + mutedStyle.Render(p.CreatedAt.Local().Format("02/01 15:04"))
		}
		s += head + "\n"
		if p.Content != "" {
			s += p.Content + "\n"
		}
		if p.Image != "" {
			s += mutedStyle.Render("[imagen] "+p.Image) + "\n"
		}
		heart := "♡"
		if wall.Liked(p, me.ID) {
			heart = "♥"
		}
		s += fmt.Sprintf("%s %d   💬 %d\n", heart, len(p.Likes), len(p.Comments))
		if i == m.cursor {
			for _, c := range p.Comments {
				s += "   " + otherStyle.Render(author(c.User)) + ": " + c.Text + "\n"
			}
			if m.mode == commenting {
				s += "   " + m.comment.View() + "\n"
			}
		}
		s += "\n"
	}

	s += m.confirm.View()
	s += renderInfo(m.msg)
	if m.mode == reading {
		s += "'n' publicar · 'l' me gusta · 'c' comentar · 'd' eliminar · 'r' recargar\n"
	}
	return s
}
