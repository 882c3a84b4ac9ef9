package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"momsdigitales/util/model"
)

// Database es la BD en memoria del backend de desarrollo.
type Database struct {
	mu sync.RWMutex

	Users         map[string]*Account
	UserIDs       []string
	Courses       map[string]*model.Course
	CourseIDs     []string
	Posts         map[string]*model.Post
	PostIDs       []string
	Conversations map[string]*model.Conversation
	Notifications map[string][]*model.Notification
	Invites       map[string]string // token -> email
	Resets        map[string]string // token -> user id
}

// Account es el usuario con sus credenciales.
type Account struct {
	model.User
	Salt []byte
	Hash []byte
	Seen time.Time
}

func NewDatabase() *Database {
	return &Database{
		Users:         make(map[string]*Account),
		Courses:       make(map[string]*model.Course),
		Posts:         make(map[string]*model.Post),
		Conversations: make(map[string]*model.Conversation),
		Notifications: make(map[string][]*model.Notification),
		Invites:       make(map[string]string),
		Resets:        make(map[string]string),
	}
}

func newID() string {
	return uuid.NewString()
}
