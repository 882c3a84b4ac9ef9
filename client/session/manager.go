package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"momsdigitales/logs"
	"momsdigitales/util/model"
)

var ErrNoSession = errors.New("no hay sesión iniciada")

type Status int

const (
	Pending Status = iota
	Anonymous
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

type State struct {
	Status Status
	User   model.User
	Token  string
}

func (s State) IsAuthenticated() bool {
	return s.Status == Authenticated
}

// Backend son las llamadas de autenticación que usa el Manager.
type Backend interface {
	Register(ctx context.Context, creds model.RegisterCredentials) (model.AuthResponse, error)
	Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error)
	Profile(ctx context.Context) (model.User, error)
}

// Manager es el contenedor del estado de sesión que se pasa a las vistas.
type Manager struct {
	mu      sync.RWMutex
	state   State
	backend Backend
	store   Store

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
}

func New(backend Backend, store Store) *Manager {
	return &Manager{
		state:   State{Status: Pending},
		backend: backend,
		store:   store,
		subs:    make(map[int]func(State)),
	}
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token sirve como api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

// Subscribe registra fn para cada cambio de estado. Devuelve la función para darse de baja.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) set(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()

	m.subMu.Lock()
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func (m *Manager) SignUp(ctx context.Context, creds model.RegisterCredentials) (model.User, error) {
	res, err := m.backend.Register(ctx, creds)
	if err != nil {
		return model.User{}, err
	}
	return res.User, m.authenticate(ctx, res)
}

func (m *Manager) LogIn(ctx context.Context, creds model.Credentials) (model.User, error) {
	res, err := m.backend.Login(ctx, creds)
	if err != nil {
		return model.User{}, err
	}
	return res.User, m.authenticate(ctx, res)
}

func (m *Manager) authenticate(ctx context.Context, res model.AuthResponse) error {
	if err := m.store.Save(ctx, Snapshot{Token: res.Token, User: res.User}); err != nil {
		// la sesión sigue valiendo en memoria aunque no se haya podido cachear
		logs.Warn("saving session", "error", err)
	}
	m.set(State{Status: Authenticated, User: res.User, Token: res.Token})
	logs.Info("sesión iniciada", "user_id", res.User.ID)
	return nil
}

func (m *Manager) LogOut(ctx context.Context) error {
	err := m.store.Clear(ctx)
	m.set(State{Status: Anonymous})
	return err
}

// Restore se llama una vez al arrancar. Un token caducado o rechazado borra la caché.
func (m *Manager) Restore(ctx context.Context) State {
	snap, ok, err := m.store.Load(ctx)
	if err != nil {
		logs.Warn("loading session", "error", err)
	}
	if !ok {
		m.set(State{Status: Anonymous})
		return m.State()
	}

	if exp, ok := expiry(snap.Token); ok && !exp.After(time.Now()) {
		logs.Info("token caducado, cerrando sesión")
		m.clear(ctx)
		return m.State()
	}

	// el token tiene que estar visible para la llamada de perfil
	m.mu.Lock()
	m.state = State{Status: Pending, Token: snap.Token}
	m.mu.Unlock()

	user, err := m.backend.Profile(ctx)
	if err != nil {
		logs.Info("token rechazado, cerrando sesión", "error", err)
		m.clear(ctx)
		return m.State()
	}

	if err := m.store.Save(ctx, Snapshot{Token: snap.Token, User: user}); err != nil {
		logs.Warn("saving session", "error", err)
	}
	m.set(State{Status: Authenticated, User: user, Token: snap.Token})
	return m.State()
}

func (m *Manager) clear(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		logs.Warn("clearing session", "error", err)
	}
	m.set(State{Status: Anonymous})
}

// UpdateUser sustituye el usuario de la sesión tras editar el perfil.
func (m *Manager) UpdateUser(ctx context.Context, u model.User) error {
	s := m.State()
	if !s.IsAuthenticated() {
		return ErrNoSession
	}
	s.User = u
	m.set(s)
	return m.store.Save(ctx, Snapshot{Token: s.Token, User: u})
}

// expiry lee el exp de un JWT sin verificar la firma, que solo conoce el backend.
func expiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
