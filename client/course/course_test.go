package course

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momsdigitales/client/api"
	"momsdigitales/server/handler"
	"momsdigitales/server/hub"
	"momsdigitales/server/middleware"
	"momsdigitales/server/repository"
	"momsdigitales/util/model"
)

func TestEmbedURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://youtu.be/abc123", "https://www.youtube.com/embed/abc123?modestbranding=1&rel=0"},
		{"https://youtu.be/abc123?t=10", "https://www.youtube.com/embed/abc123?modestbranding=1&rel=0"},
		{"https://www.youtube.com/watch?v=xyz789", "https://www.youtube.com/embed/xyz789?modestbranding=1&rel=0"},
		{"https://www.youtube.com/watch?v=xyz789&t=5s", "https://www.youtube.com/embed/xyz789?modestbranding=1&rel=0"},
		{"https://m.youtube.com/watch?v=xyz789?si=compartido", "https://www.youtube.com/embed/xyz789?modestbranding=1&rel=0"},
		{"https://www.youtube.com/embed/already", "https://www.youtube.com/embed/already"},
		{"https://vimeo.com/12345", "https://vimeo.com/12345"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EmbedURL(c.in), c.in)
	}
}

func TestPlayerSelectsFirstLesson(t *testing.T) {
	c := model.Course{Modules: []model.Module{
		{ID: "m1", Title: "Uno", Lessons: []model.Lesson{{ID: "l1", Title: "A"}, {ID: "l2", Title: "B"}}},
		{ID: "m2", Title: "Dos", Lessons: []model.Lesson{{ID: "l3", Title: "C"}}},
	}}
	p := NewPlayer(c)

	l, ok := p.Lesson()
	require.True(t, ok)
	assert.Equal(t, "l1", l.ID)

	require.NoError(t, p.Select(1, 0))
	l, _ = p.Lesson()
	assert.Equal(t, "l3", l.ID)
	assert.ErrorIs(t, p.Select(1, 1), ErrNoLesson)
	assert.ErrorIs(t, p.Select(5, 0), ErrNoLesson)

	outline := p.Outline()
	require.Len(t, outline, 5)
	assert.Equal(t, -1, outline[0].Lesson)
	assert.True(t, outline[4].Selected)

	_, ok = NewPlayer(model.Course{}).Lesson()
	assert.False(t, ok)
}

func TestCatalog(t *testing.T) {
	s := Catalog([]model.Course{{ID: "c", Modules: []model.Module{{Lessons: make([]model.Lesson, 2)}, {Lessons: make([]model.Lesson, 1)}}}})
	require.Len(t, s, 1)
	assert.Equal(t, 2, s[0].Modules)
	assert.Equal(t, 3, s[0].Lessons)
}

func TestEditorModuleThenLesson(t *testing.T) {
	srv := &handler.Server{Tokens: middleware.Tokens{Secret: []byte("test")}, Hub: hub.New()}
	ts := httptest.NewServer(srv.Routes(repository.NewDatabase()))
	defer ts.Close()

	ctx := context.Background()
	var token string
	client := api.New(ts.URL+"/api", ts.Client(), func() string { return token })
	admin, err := client.Register(ctx, model.RegisterCredentials{Username: "admin", Email: "a@test.com", Password: "secreto"})
	require.NoError(t, err)
	token = admin.Token

	_, err = Create(ctx, client, model.CourseDraft{Title: "Sin descripción"})
	assert.ErrorIs(t, err, ErrMissingDetails)

	c, err := Create(ctx, client, model.CourseDraft{Title: "Crianza", Description: "Primeros pasos"})
	require.NoError(t, err)

	ed := NewEditor(client, c)
	_, err = ed.AddModule(ctx, " ")
	assert.ErrorIs(t, err, ErrMissingTitle)

	c, err = ed.AddModule(ctx, "Módulo 1")
	require.NoError(t, err)
	ed.Adopt(c)
	require.Len(t, ed.Course().Modules, 1)
	mod := ed.Course().Modules[0]
	before := len(mod.Lessons)

	c, err = ed.AddLesson(ctx, mod.ID, model.LessonInput{Title: "Bienvenida", VideoURL: "https://youtu.be/x"})
	require.NoError(t, err)
	ed.Adopt(c)
	got, ok := ed.Course().Module(mod.ID)
	require.True(t, ok)
	assert.Equal(t, before+1, len(got.Lessons))

	_, err = ed.AddResource(ctx, mod.ID, got.Lessons[0].ID, model.ResourceInput{Label: "PDF"})
	assert.ErrorIs(t, err, ErrMissingResource)

	c, err = ed.DeleteModule(ctx, mod.ID)
	require.NoError(t, err)
	ed.Adopt(c)
	assert.Empty(t, ed.Course().Modules)
}
