// Package session holds the logged-in user of this device and keeps it in
// the local preferences store between launches.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dukerupert/superlista/internal/model"
)

// Preference keys.
const (
	KeyUser     = "user"
	KeyRemember = "rememberUser"
)

// Directory looks up and creates users. remote.Client satisfies it.
type Directory interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	CreateUser(ctx context.Context, name string) (*model.User, error)
	UpdateUserName(ctx context.Context, id, name string) (*model.User, error)
}

// Prefs is the durable key-value store. prefs.Store satisfies it.
type Prefs interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenSource obtains this device's push token. It returns
// model.ErrPermissionDenied when the user refused notifications.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSaver upserts the push token of the logged-in user.
type TokenSaver interface {
	SaveToken(ctx context.Context, token string) error
}

type Config struct {
	Directory Directory
	Prefs     Prefs
	// Tokens and Saver are optional. Push registration is skipped when
	// either is nil.
	Tokens TokenSource
	Saver  TokenSaver
	Logger *slog.Logger
}

type Manager struct {
	dir    Directory
	prefs  Prefs
	tokens TokenSource
	saver  TokenSaver
	logger *slog.Logger

	mu       sync.RWMutex
	user     model.RememberedUser
	remember bool
	loading  bool
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		dir:      cfg.Directory,
		prefs:    cfg.Prefs,
		tokens:   cfg.Tokens,
		saver:    cfg.Saver,
		logger:   cfg.Logger,
		remember: true,
		loading:  true,
	}
}

// User returns the current user. A zero value means nobody is logged in.
func (m *Manager) User() model.RememberedUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Actor returns the current user as a model.User for the list and history.
func (m *Manager) Actor() model.User {
	u := m.User()
	if !u.IsLoggedIn {
		return model.User{}
	}
	return model.User{ID: u.ID, Name: u.Name}
}

// UserID is the acting user id sent to the API.
func (m *Manager) UserID() string {
	return m.User().ID
}

func (m *Manager) Remember() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.remember
}

// Loading is true until Load has finished.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Load restores the remembered user, if any. A stored blob that cannot be
// parsed is deleted. Failures are logged; Load never leaves Loading set.
func (m *Manager) Load(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	remember := true
	if v, ok, err := m.prefs.Get(ctx, KeyRemember); err != nil {
		return fmt.Errorf("load remember flag: %w", err)
	} else if ok {
		remember = v == "true"
	}
	m.mu.Lock()
	m.remember = remember
	m.mu.Unlock()

	if !remember {
		return nil
	}

	raw, ok, err := m.prefs.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !ok {
		return nil
	}

	var saved model.RememberedUser
	if err := json.Unmarshal([]byte(raw), &saved); err != nil || saved.ID == "" || saved.Name == "" {
		m.logger.Warn("invalid remembered user, clearing", "error", err)
		return m.prefs.Delete(ctx, KeyUser)
	}

	id, err := m.ensureUser(ctx, saved.Name, saved.ID)
	if err != nil {
		m.logger.Error("restore remembered user", "name", saved.Name, "error", err)
		return fmt.Errorf("ensure user: %w", err)
	}

	resolved := saved
	resolved.ID = id
	if id != saved.ID {
		m.logger.Info("remembered user id changed", "old_id", saved.ID, "new_id", id)
		if err := m.persist(ctx, resolved); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.user = resolved
	m.mu.Unlock()
	m.logger.Info("user restored", "user_id", id, "name", resolved.Name)

	m.registerPush(ctx)
	return nil
}

// Login looks the user up by trimmed name, creating it when absent.
func (m *Manager) Login(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &model.ValidationError{Field: "name", Message: "el nombre es obligatorio"}
	}

	u, err := m.dir.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		// Two devices logging in with the same new name at once can both
		// reach this insert. GetByName resolves to the oldest afterwards.
		u, err = m.dir.CreateUser(ctx, name)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
	}

	user := model.RememberedUser{ID: u.ID, Name: name, IsLoggedIn: true}
	if m.Remember() {
		if err := m.persist(ctx, user); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	m.logger.Info("user logged in", "user_id", u.ID, "name", name)

	m.registerPush(ctx)
	return nil
}

// Logout resets the session. The stored blob is kept when remembering.
func (m *Manager) Logout(ctx context.Context) error {
	if !m.Remember() {
		if err := m.prefs.Delete(ctx, KeyUser); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	m.mu.Lock()
	m.user = model.RememberedUser{}
	m.mu.Unlock()
	return nil
}

// UpdateProfile renames the user remotely, then locally.
func (m *Manager) UpdateProfile(ctx context.Context, name, image string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &model.ValidationError{Field: "name", Message: "el nombre es obligatorio"}
	}

	current := m.User()
	if current.ID == "" {
		return errors.New("update profile: not logged in")
	}
	if _, err := m.dir.UpdateUserName(ctx, current.ID, name); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	current.Name = name
	current.Image = image
	m.mu.Lock()
	m.user = current
	m.mu.Unlock()

	if m.Remember() {
		return m.persist(ctx, current)
	}
	return nil
}

// SetRemember stores the flag. Turning it off forgets the stored user.
func (m *Manager) SetRemember(ctx context.Context, remember bool) error {
	m.mu.Lock()
	m.remember = remember
	m.mu.Unlock()

	if err := m.prefs.Set(ctx, KeyRemember, strconv.FormatBool(remember)); err != nil {
		return fmt.Errorf("set remember: %w", err)
	}
	if !remember {
		if err := m.prefs.Delete(ctx, KeyUser); err != nil {
			return fmt.Errorf("set remember: %w", err)
		}
	}
	return nil
}

// ensureUser resolves the saved id, then the name, creating the user last.
func (m *Manager) ensureUser(ctx context.Context, name, savedID string) (string, error) {
	if savedID != "" {
		u, err := m.dir.GetByID(ctx, savedID)
		if err == nil && u != nil {
			return u.ID, nil
		}
	}
	u, err := m.dir.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", err
	}
	if u != nil {
		return u.ID, nil
	}
	u, err = m.dir.CreateUser(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

func (m *Manager) persist(ctx context.Context, user model.RememberedUser) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := m.prefs.Set(ctx, KeyUser, string(b)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// registerPush saves the device token for the current user. Every failure
// is logged and swallowed.
func (m *Manager) registerPush(ctx context.Context) {
	if m.tokens == nil || m.saver == nil {
		return
	}
	token, err := m.tokens.Token(ctx)
	if errors.Is(err, model.ErrPermissionDenied) {
		m.logger.Info("push permission denied")
		return
	}
	if err != nil {
		m.logger.Warn("get push token", "error", err)
		return
	}
	if token == "" {
		return
	}
	if err := m.saver.SaveToken(ctx, token); err != nil {
		m.logger.Warn("save push token", "error", err)
		return
	}
	m.logger.Debug("push token saved", "user_id", m.UserID())
}
