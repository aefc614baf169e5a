package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/domain"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/domain/repository"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

// Claves del almacenamiento local.
const (
	KeyCurrentUser = "currentUser"
	KeyUsers       = "users"
)

// persistedSession forma persistida de la sesión: un usuario más id y fecha de sesión.
type persistedSession struct {
	entity.SessionUser
	SessionID string    `json:"sessionId,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// Manager dueño exclusivo de la sesión del proceso (LoggedOut / LoggedIn).
// La copia persistida es una caché; durante la sesión manda el estado en memoria.
type Manager struct {
	mu      sync.Mutex
	store   repository.EntityStore
	storage repository.LocalStorage
	log     *logger.Logger
	now     func() time.Time
	current *persistedSession
}

// NewManager construye el gestor de sesión.
func NewManager(store repository.EntityStore, storage repository.LocalStorage, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{store: store, storage: storage, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Current devuelve la sesión activa; false si no hay sesión.
func (m *Manager) Current() (*dto.SessionResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, false
	}
	return toSessionResponse(m.current), true
}

// CurrentRole rol del usuario autenticado; false si no hay sesión.
func (m *Manager) CurrentRole() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return "", false
	}
	return m.current.Role, true
}

// IsAuthenticated indica si hay sesión activa.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.CurrentRole()
	return ok
}

// Signup registra un usuario, abre su sesión y la persiste.
// Errores: ErrValidationFailed (campos vacíos, confirmación distinta, rol inválido),
// ErrDuplicateEmail (coincidencia exacta con un usuario registrado).
// Si falla la persistencia se revierte el alta en el almacén y la lista de usuarios.
func (m *Manager) Signup(in dto.SignupRequest) (*dto.SessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	verr := domain.NewValidationError()
	for _, f := range []struct{ name, value string }{
		{"name", in.Name}, {"email", in.Email}, {"role", in.Role}, {"password", in.Password},
	} {
		if strings.TrimSpace(f.value) == "" {
			verr.Add(f.name, "requerido")
		}
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		verr.Add("confirmPassword", "las contraseñas no coinciden")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	prevRaw, hadUsers, users, err := m.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == in.Email {
			m.log.Warn().Str("email", in.Email).Msg("registro rechazado: email duplicado")
			return nil, domain.ErrDuplicateEmail
		}
	}

	registered := entity.RegisteredUser{
		Name:       strings.TrimSpace(in.Name),
		Email:      in.Email,
		Role:       strings.TrimSpace(in.Role),
		Department: strings.TrimSpace(in.Department),
		Status:     "active",
		Password:   in.Password,
	}
	rec, err := m.store.Create(entity.TypeUser, registered.Fields())
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	registered.ID = rec.ID

	rollback := func() {
		if err := m.store.Delete(entity.TypeUser, rec.ID); err != nil {
			m.log.Error().Err(err).Str("id", rec.ID).Msg("no se pudo revertir el usuario creado")
		}
	}

	raw, err := json.Marshal(append(users, registered))
	if err != nil {
		rollback()
		return nil, fmt.Errorf("signup: serializar usuarios: %w", err)
	}
	if err := m.storage.SetItem(KeyUsers, string(raw)); err != nil {
		rollback()
		return nil, fmt.Errorf("signup: guardar usuarios: %w", err)
	}

	sess := m.newSession(registered.SessionUser())
	if err := m.persist(sess); err != nil {
		m.restoreUsers(prevRaw, hadUsers)
		rollback()
		return nil, fmt.Errorf("signup: %w", err)
	}
	m.current = sess

	m.log.Info().Str("user_id", rec.ID).Str("role", registered.Role).Msg("usuario registrado")
	return toSessionResponse(sess), nil
}

// Login abre sesión con coincidencia exacta de email y contraseña contra los usuarios registrados.
func (m *Manager) Login(in dto.LoginRequest) (*dto.SessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, _, users, err := m.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == in.Email && u.Password == in.Password {
			sess := m.newSession(u.SessionUser())
			if err := m.persist(sess); err != nil {
				return nil, fmt.Errorf("login: %w", err)
			}
			m.current = sess
			m.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("sesión iniciada")
			return toSessionResponse(sess), nil
		}
	}

	m.log.Warn().Str("email", in.Email).Msg("credenciales inválidas")
	return nil, domain.ErrInvalidCredentials
}

// Logout cierra la sesión y borra la copia persistida. El estado en memoria
// queda LoggedOut aunque falle el almacenamiento.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.log.Info().Str("user_id", m.current.ID).Msg("sesión cerrada")
	}
	m.current = nil
	if err := m.storage.RemoveItem(KeyCurrentUser); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Restore adopta la sesión persistida sin volver a verificar credenciales.
// Un valor mal formado se elimina y el estado sigue LoggedOut.
func (m *Manager) Restore() (*dto.SessionResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok, err := m.storage.GetItem(KeyCurrentUser)
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo leer la sesión persistida")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var sess persistedSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || !sess.IsWellFormed() {
		m.log.Warn().Msg("sesión persistida inválida; se descarta")
		if err := m.storage.RemoveItem(KeyCurrentUser); err != nil {
			m.log.Error().Err(err).Msg("no se pudo borrar la sesión inválida")
		}
		return nil, false
	}
	if sess.SessionID == "" {
		sess.SessionID = uuid.NewString()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = m.now()
	}
	m.current = &sess

	m.log.Info().Str("user_id", sess.ID).Msg("sesión restaurada")
	return toSessionResponse(&sess), true
}

// RegisteredUsers lista persistida de usuarios registrados (con contraseña).
func (m *Manager) RegisteredUsers() ([]entity.RegisteredUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, _, users, err := m.loadUsers()
	return users, err
}

// HydrateUsers importa los usuarios registrados a la colección user del almacén.
// Un id ya presente con el mismo email se omite. Si el id lo ocupa otro usuario
// (p. ej. la semilla), se asigna un id nuevo y se reescriben la lista y la sesión
// persistidas. Devuelve cuántos se importaron.
func (m *Manager) HydrateUsers() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, _, users, err := m.loadUsers()
	if err != nil {
		return 0, err
	}
	imported, reassigned := 0, false
	for i, u := range users {
		if u.ID == "" {
			continue
		}
		err := m.store.Import(entity.Record{ID: u.ID, Type: entity.TypeUser, Fields: u.Fields()})
		if errors.Is(err, domain.ErrDuplicate) {
			if existing, gerr := m.store.Get(entity.TypeUser, u.ID); gerr == nil && existing.Str("email") == u.Email {
				continue
			}
			rec, cerr := m.store.Create(entity.TypeUser, u.Fields())
			if cerr != nil {
				return imported, fmt.Errorf("hidratar usuarios: %w", cerr)
			}
			m.log.Warn().Str("id", u.ID).Str("new_id", rec.ID).Msg("id de usuario registrado ocupado; se reasigna")
			if err := m.reassignSession(u.ID, rec.ID, u.Email); err != nil {
				return imported, fmt.Errorf("hidratar usuarios: %w", err)
			}
			users[i].ID = rec.ID
			reassigned = true
			imported++
			continue
		}
		if err != nil {
			return imported, fmt.Errorf("hidratar usuarios: %w", err)
		}
		imported++
	}
	if reassigned {
		raw, err := json.Marshal(users)
		if err != nil {
			return imported, fmt.Errorf("hidratar usuarios: serializar: %w", err)
		}
		if err := m.storage.SetItem(KeyUsers, string(raw)); err != nil {
			return imported, fmt.Errorf("hidratar usuarios: guardar: %w", err)
		}
	}
	return imported, nil
}

// reassignSession actualiza el id de la sesión activa y de la persistida si pertenecen al usuario.
func (m *Manager) reassignSession(oldID, newID, email string) error {
	if m.current != nil && m.current.ID == oldID && m.current.Email == email {
		m.current.ID = newID
	}
	raw, ok, err := m.storage.GetItem(KeyCurrentUser)
	if err != nil || !ok {
		return err
	}
	var sess persistedSession
	if json.Unmarshal([]byte(raw), &sess) != nil || sess.ID != oldID || sess.Email != email {
		return nil
	}
	sess.ID = newID
	return m.persist(&sess)
}

// loadUsers lee la lista persistida. Una lista mal formada se trata como vacía.
func (m *Manager) loadUsers() (raw string, ok bool, users []entity.RegisteredUser, err error) {
	raw, ok, err = m.storage.GetItem(KeyUsers)
	if err != nil {
		return "", false, nil, fmt.Errorf("leer usuarios registrados: %w", err)
	}
	if !ok || raw == "" {
		return raw, ok, nil, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		m.log.Warn().Err(err).Msg("lista de usuarios persistida inválida; se trata como vacía")
		return raw, ok, nil, nil
	}
	return raw, ok, users, nil
}

func (m *Manager) restoreUsers(prevRaw string, hadUsers bool) {
	var err error
	if hadUsers {
		err = m.storage.SetItem(KeyUsers, prevRaw)
	} else {
		err = m.storage.RemoveItem(KeyUsers)
	}
	if err != nil {
		m.log.Error().Err(err).Msg("no se pudo revertir la lista de usuarios")
	}
}

func (m *Manager) newSession(u entity.SessionUser) *persistedSession {
	return &persistedSession{SessionUser: u, SessionID: uuid.NewString(), StartedAt: m.now()}
}

func (m *Manager) persist(sess *persistedSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := m.storage.SetItem(KeyCurrentUser, string(raw)); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

func toSessionResponse(s *persistedSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionID: s.SessionID,
		User: dto.UserResponse{
			ID:         s.ID,
			Name:       s.Name,
			Email:      s.Email,
			Role:       s.Role,
			Department: s.Department,
		},
		StartedAt: s.StartedAt,
	}
}
