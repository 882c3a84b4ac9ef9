package repository

import (
	"bytes"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"

	"momsdigitales/util/model"
)

var (
	ErrUserExists   = errors.New("el usuario ya existe")
	ErrNotFound     = errors.New("no encontrado")
	ErrBadPassword  = errors.New("credenciales inválidas")
	ErrInvalidToken = errors.New("el enlace es inválido o ha expirado")
)

func hashPassword(password string, salt []byte) []byte {
	return argon2.Key([]byte(password), salt, 3, 32*1024, 4, 32)
}

func newSalt() []byte {
	salt := make([]byte, 16)
	rand.Read(salt)
	return salt
}

// CreateUser registra un usuario. El primero en registrarse es admin.
func CreateUser(db *Database, username, email, password string) (model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range db.Users {
		if u.Email == email {
			return model.User{}, ErrUserExists
		}
	}

	acc := &Account{
		User: model.User{ID: newID(), Username: username, Email: email, Role: model.NormalUser},
		Salt: newSalt(),
		Seen: time.Now(),
	}
	acc.Hash = hashPassword(password, acc.Salt)
	if len(db.UserIDs) == 0 {
		acc.Role = model.Admin
	}

	db.Users[acc.ID] = acc
	db.UserIDs = append(db.UserIDs, acc.ID)
	return acc.User, nil
}

func Authenticate(db *Database, email, password string) (model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range db.Users {
		if u.Email != email {
			continue
		}
		if !bytes.Equal(u.Hash, hashPassword(password, u.Salt)) {
			return model.User{}, ErrBadPassword
		}
		u.Seen = time.Now()
		return u.User, nil
	}
	return model.User{}, ErrBadPassword
}

func GetUser(db *Database, id string) (model.User, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	u, ok := db.Users[id]
	if !ok {
		return model.User{}, false
	}
	return u.User, true
}

func FindByEmail(db *Database, email string) (model.User, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range db.Users {
		if u.Email == email {
			return u.User, true
		}
	}
	return model.User{}, false
}

// SearchUsers filtra por nombre o email, en orden de registro.
func SearchUsers(db *Database, search string) []model.User {
	db.mu.RLock()
	defer db.mu.RUnlock()

	search = strings.ToLower(search)
	users := make([]model.User, 0, len(db.UserIDs))
	for _, id := range db.UserIDs {
		u := db.Users[id]
		if search == "" || strings.Contains(strings.ToLower(u.Username), search) || strings.Contains(u.Email, search) {
			users = append(users, u.User)
		}
	}
	return users
}

func UpdateProfile(db *Database, id, username, bio, avatar string) (model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.Users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	if username != "" {
		u.Username = username
	}
	u.Bio = bio
	if avatar != "" {
		u.Avatar = avatar
	}
	return u.User, nil
}

func SetRole(db *Database, id string, role model.Role) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.Users[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func DeleteUser(db *Database, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.Users[id]; !ok {
		return ErrNotFound
	}
	delete(db.Users, id)
	for i, uid := range db.UserIDs {
		if uid == id {
			db.UserIDs = append(db.UserIDs[:i], db.UserIDs[i+1:]...)
			break
		}
	}
	return nil
}

func CreateInvite(db *Database, email string) string {
	db.mu.Lock()
	defer db.mu.Unlock()

	token := newID()
	db.Invites[token] = strings.ToLower(strings.TrimSpace(email))
	return token
}

// CompleteInvite crea la cuenta invitada y consume el token.
func CompleteInvite(db *Database, token, username, password, avatar string) (model.User, error) {
	db.mu.Lock()
	email, ok := db.Invites[token]
	if ok {
		delete(db.Invites, token)
	}
	db.mu.Unlock()
	if !ok {
		return model.User{}, ErrInvalidToken
	}

	u, err := CreateUser(db, username, email, password)
	if err != nil {
		return model.User{}, err
	}
	if avatar != "" {
		return UpdateProfile(db, u.ID, "", "", avatar)
	}
	return u, nil
}

func CreateReset(db *Database, userID string) string {
	db.mu.Lock()
	defer db.mu.Unlock()

	token := newID()
	db.Resets[token] = userID
	return token
}

func ResetPassword(db *Database, token, password string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, ok := db.Resets[token]
	if !ok {
		return ErrInvalidToken
	}
	u, ok := db.Users[id]
	if !ok {
		return ErrInvalidToken
	}
	delete(db.Resets, token)
	u.Salt = newSalt()
	u.Hash = hashPassword(password, u.Salt)
	return nil
}
