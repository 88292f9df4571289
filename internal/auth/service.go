package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrNoActiveSession    = errors.New("no active session")
	ErrInternalError      = errors.New("internal server error")
)

const (
	bcryptCost = 12

	sessionDuration         = 24 * time.Hour
	rememberSessionDuration = 7 * 24 * time.Hour
)

type Service interface {
	Register(username, password, email string) (*domain.User, error)
	Login(username, password string, rememberMe bool) (*domain.Session, error)
	Logout() error
	CurrentSession() (*domain.Session, error)
	ChangePassword(userID, oldPassword, newPassword string) error
	GetUserByID(userID string) (*domain.User, error)
	IssueAccessToken(userID string) (string, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	users      domain.UserRepository
	jwtManager JWTManagerInterface
	now        func() time.Time
}

func NewService(users domain.UserRepository, jwtManager JWTManagerInterface) Service {
	return &service{
		users:      users,
		jwtManager: jwtManager,
		now:        time.Now,
	}
}

// Register creates a local account. Usernames are unique case-insensitively
// so sync merges cannot produce two accounts differing only in case.
func (s *service) Register(username, password, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, ErrUsernameTooShort
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}
	if email != "" {
		if err := checkmail.ValidateFormat(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}
	if _, exists := s.users.FindUserByUsername(username); exists {
		return nil, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	}
	if err := s.users.AddUser(user); err != nil {
		return nil, err
	}
	stored, ok := s.users.GetUser(user.ID)
	if !ok {
		return nil, ErrInternalError
	}
	return stored, nil
}

// Login verifies the password and installs a fresh session. rememberMe
// stretches the expiry from one day to one week.
func (s *service) Login(username, password string, rememberMe bool) (*domain.Session, error) {
	user, ok := s.users.FindUserByUsername(strings.TrimSpace(username))
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}
	duration := sessionDuration
	if rememberMe {
		duration = rememberSessionDuration
	}
	session := domain.Session{
		Token:      token,
		UserID:     user.ID,
		Username:   user.Username,
		ExpiresAt:  s.now().Add(duration).UnixMilli(),
		RememberMe: rememberMe,
	}
	if err := s.users.SetSession(session); err != nil {
		return nil, err
	}

	user.LastLogin = s.now()
	if err := s.users.UpdateUser(*user); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *service) Logout() error {
	return s.users.ClearSession()
}

// CurrentSession returns the active session, clearing it first when it has
// already expired.
func (s *service) CurrentSession() (*domain.Session, error) {
	session, ok := s.users.Session()
	if !ok {
		return nil, ErrNoActiveSession
	}
	if session.Expired(s.now()) {
		if err := s.users.ClearSession(); err != nil {
			return nil, err
		}
		return nil, ErrNoActiveSession
	}
	return session, nil
}

func (s *service) ChangePassword(userID, oldPassword, newPassword string) error {
	user, ok := s.users.GetUser(userID)
	if !ok {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.UpdateUser(*user)
}

// IssueAccessToken mints a short-lived JWT for API calls on behalf of an
// already authenticated user.
func (s *service) IssueAccessToken(userID string) (string, error) {
	if _, ok := s.users.GetUser(userID); !ok {
		return "", ErrUserNotFound
	}
	return s.jwtManager.GenerateAccessJWT(userID, defaultJWTDuration)
}

func (s *service) GetUserByID(userID string) (*domain.User, error) {
	user, ok := s.users.GetUser(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
