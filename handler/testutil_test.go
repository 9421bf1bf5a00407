package handler

import (
	"context"
	"errors"
	"strings"

	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitValidator()
	utils.JWTSecretKey = "test_secret_key"
	utils.JWTExpirationTime = 3600
}

// In-memory stores backing the handlers under test.

type memNotesStore struct {
	notes []*model.Note
}

func (m *memNotesStore) CreateNote(ctx context.Context, note *model.Note) error {
	copied := *note
	m.notes = append(m.notes, &copied)
	return nil
}

func (m *memNotesStore) GetUserNotes(ctx context.Context, ownerID string) ([]*model.Note, error) {
	result := []*model.Note{}
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			copied := *n
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memNotesStore) GetNote(ctx context.Context, noteID, ownerID string) (*model.Note, error) {
	for _, n := range m.notes {
		if n.ID == noteID && n.OwnerID == ownerID {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memNotesStore) UpdateNote(ctx context.Context, note *model.Note) (bool, error) {
	for _, n := range m.notes {
		if n.ID == note.ID && n.OwnerID == note.OwnerID {
			n.Title = note.Title
			n.Content = note.Content
			n.UpdatedAt = note.UpdatedAt
			return true, nil
		}
	}
	return false, nil
}

func (m *memNotesStore) DeleteNote(ctx context.Context, noteID, ownerID string) (bool, error) {
	for i, n := range m.notes {
		if n.ID == noteID && n.OwnerID == ownerID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memNotesStore) AddSharedUser(ctx context.Context, noteID, ownerID, targetID string) (bool, error) {
	for _, n := range m.notes {
		if n.ID == noteID && n.OwnerID == ownerID {
			for _, existing := range n.SharedWith {
				if existing == targetID {
					return true, nil
				}
			}
			n.SharedWith = append(n.SharedWith, targetID)
			return true, nil
		}
	}
	return false, nil
}

func (m *memNotesStore) FindMatching(ctx context.Context, terms []string) ([]*model.Note, error) {
	result := []*model.Note{}
	for _, n := range m.notes {
		text := strings.ToLower(n.Title + " " + n.Content)
		for _, term := range terms {
			if strings.Contains(text, term) {
				copied := *n
				result = append(result, &copied)
				break
			}
		}
	}
	return result, nil
}

type memUsersStore struct {
	users []*model.User
}

func (m *memUsersStore) AddUser(ctx context.Context, user *model.User) error {
	copied := *user
	m.users = append(m.users, &copied)
	return nil
}

func (m *memUsersStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsersStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsersStore) FindByID(ctx context.Context, userID string) (*model.User, error) {
	for _, u := range m.users {
		if u.UserID == userID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsersStore) SaveToken(ctx context.Context, userID, token string) error {
	for _, u := range m.users {
		if u.UserID == userID {
			u.Token = token
			return nil
		}
	}
	return errors.New("user not found")
}

func (m *memUsersStore) SetTwoFactor(ctx context.Context, userID, secret string, enabled bool) error {
	for _, u := range m.users {
		if u.UserID == userID {
			u.TwoFactorSecret = secret
			u.TwoFactorEnabled = enabled
			return nil
		}
	}
	return errors.New("user not found")
}

type memSessionStore struct {
	sessions []*model.Session
}

func (m *memSessionStore) CreateSession(ctx context.Context, session *model.Session) error {
	copied := *session
	m.sessions = append(m.sessions, &copied)
	return nil
}

func (m *memSessionStore) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	for _, s := range m.sessions {
		if s.SessionID == sessionID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memSessionStore) TouchSession(ctx context.Context, sessionID string) error {
	return nil
}

func (m *memSessionStore) EndSession(ctx context.Context, sessionID string) error {
	for _, s := range m.sessions {
		if s.SessionID == sessionID {
			s.IsActive = false
			return nil
		}
	}
	return errors.New("session not found")
}

func (m *memSessionStore) GetActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	result := []*model.Session{}
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsActive {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

type testEnv struct {
	router       *gin.Engine
	notesStore   *memNotesStore
	usersStore   *memUsersStore
	sessionStore *memSessionStore
}

// newTestEnv assembles the full route table against in-memory stores,
// with the real auth middleware in front of the protected routes.
func newTestEnv() *testEnv {
	notesStore := &memNotesStore{}
	usersStore := &memUsersStore{}
	sessionStore := &memSessionStore{}

	userService := &usecase.UserService{Store: usersStore}
	notesService := &usecase.NotesService{Store: notesStore, Users: usersStore}

	router := gin.New()

	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				LoginHandler(c, userService, sessionStore)
			})
		}
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/logout", func(c *gin.Context) {
			LogoutHandler(c, sessionStore)
		})
		protected.GET("/auth/sessions", func(c *gin.Context) {
			GetActiveSessionsHandler(c, sessionStore)
		})

		notes := protected.Group("/notes")
		{
			notes.GET("", func(c *gin.Context) {
				GetUserNotesHandler(c, notesService)
			})
			notes.POST("", func(c *gin.Context) {
				CreateNoteHandler(c, notesService)
			})
			notes.GET("/:id", func(c *gin.Context) {
				GetNoteHandler(c, notesService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				UpdateNoteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				DeleteNoteHandler(c, notesService)
			})
			notes.POST("/:id/share", func(c *gin.Context) {
				ShareNoteHandler(c, notesService)
			})
		}

		protected.GET("/search", func(c *gin.Context) {
			SearchNotesHandler(c, notesService)
		})
	}

	return &testEnv{
		router:       router,
		notesStore:   notesStore,
		usersStore:   usersStore,
		sessionStore: sessionStore,
	}
}
