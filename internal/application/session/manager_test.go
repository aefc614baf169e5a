package session_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/application/session"
	"github.com/jhoicas/caresync-hms/internal/domain"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/infrastructure/localstorage"
	"github.com/jhoicas/caresync-hms/internal/infrastructure/memory"
	"github.com/jhoicas/caresync-hms/pkg/config"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

var t0 = time.Date(2024, 1, 21, 8, 0, 0, 0, time.UTC)

type fixture struct {
	store   *memory.EntityStore
	storage *localstorage.MemoryStorage
	mgr     *session.Manager
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewEntityStore(entity.DefaultRegistry(), config.IDPolicyMonotonic, logger.Nop())
	require.NoError(t, memory.Seed(store))
	storage := localstorage.NewMemoryStorage()
	mgr := session.NewManager(store, storage, logger.Nop()).WithClock(func() time.Time { return t0 })
	return fixture{store: store, storage: storage, mgr: mgr}
}

func signupReq(email string) dto.SignupRequest {
	return dto.SignupRequest{Name: "Ana Ruiz", Email: email, Role: entity.RoleDoctor, Password: "secreto"}
}

func registeredCount(t *testing.T, f fixture, email string) int {
	t.Helper()
	users, err := f.mgr.RegisteredUsers()
	require.NoError(t, err)
	n := 0
	for _, u := range users {
		if u.Email == email {
			n++
		}
	}
	return n
}

// ─── Signup ─────────────────────────────────────────────────────────────────

func TestSignup_CreaUsuarioYSesion(t *testing.T) {
	f := newFixture(t)

	sess, err := f.mgr.Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)
	assert.Equal(t, "USR006", sess.User.ID)
	assert.Equal(t, entity.RoleDoctor, sess.User.Role)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, t0, sess.StartedAt)
	assert.True(t, f.mgr.IsAuthenticated())

	rec, err := f.store.Get(entity.TypeUser, "USR006")
	require.NoError(t, err)
	assert.Equal(t, "ana@hospital.com", rec.Str("email"))
	assert.Equal(t, "active", rec.Str("status"))

	raw, ok, err := f.storage.GetItem(session.KeyCurrentUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "secreto")

	var persisted map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, "USR006", persisted["id"])
	assert.Equal(t, "ana@hospital.com", persisted["email"])
	assert.Equal(t, 1, registeredCount(t, f, "ana@hospital.com"))
}

func TestSignup_EmailDuplicado(t *testing.T) {
	f := newFixture(t)

	_, err := f.mgr.Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)
	require.NoError(t, f.mgr.Logout())

	_, err = f.mgr.Signup(signupReq("ana@hospital.com"))
	assert.True(t, errors.Is(err, domain.ErrDuplicateEmail))
	assert.Equal(t, 1, registeredCount(t, f, "ana@hospital.com"))
	assert.False(t, f.mgr.IsAuthenticated())

	n, err := f.store.Count(entity.TypeUser)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestSignup_EmailDistingueMayusculas(t *testing.T) {
	f := newFixture(t)

	_, err := f.mgr.Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)
	_, err = f.mgr.Signup(signupReq("ANA@hospital.com"))
	assert.NoError(t, err)
}

func TestSignup_CamposRequeridos(t *testing.T) {
	f := newFixture(t)

	_, err := f.mgr.Signup(dto.SignupRequest{Name: "Ana", Email: " "})
	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"email", "role", "password"}, verr.FieldNames())
	assert.False(t, f.mgr.IsAuthenticated())
}

func TestSignup_ConfirmacionDistinta(t *testing.T) {
	f := newFixture(t)
	req := signupReq("ana@hospital.com")
	req.ConfirmPassword = "otra"

	_, err := f.mgr.Signup(req)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"confirmPassword"}, verr.FieldNames())
}

func TestSignup_RolInvalido(t *testing.T) {
	f := newFixture(t)
	req := signupReq("ana@hospital.com")
	req.Role = "astronauta"

	_, err := f.mgr.Signup(req)
	assert.True(t, errors.Is(err, domain.ErrValidationFailed))
	assert.Equal(t, 0, registeredCount(t, f, "ana@hospital.com"))
}

func TestSignup_FalloDePersistenciaRevierte(t *testing.T) {
	f := newFixture(t)
	f.storage.FailWrites = errors.New("disco lleno")

	_, err := f.mgr.Signup(signupReq("ana@hospital.com"))
	require.Error(t, err)
	assert.False(t, f.mgr.IsAuthenticated())

	n, err := f.store.Count(entity.TypeUser)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	f.storage.FailWrites = nil
	assert.Equal(t, 0, registeredCount(t, f, "ana@hospital.com"))
}

// ─── Login / Logout ─────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newFixture(t)

	_, err := f.mgr.Login(dto.LoginRequest{Email: "x@y.com", Password: "bad"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.False(t, f.mgr.IsAuthenticated())

	_, ok, err := f.storage.GetItem(session.KeyCurrentUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_ContraseñaIncorrecta(t *testing.T) {
	f := newFixture(t)
	_, err := f.mgr.Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)
	require.NoError(t, f.mgr.Logout())

	_, err = f.mgr.Login(dto.LoginRequest{Email: "ana@hospital.com", Password: "Secreto"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestLogin_Correcto(t *testing.T) {
	f := newFixture(t)
	_, err := f.mgr.Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)
	require.NoError(t, f.mgr.Logout())

	sess, err := f.mgr.Login(dto.LoginRequest{Email: "ana@hospital.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "USR006", sess.User.ID)

	role, ok := f.mgr.CurrentRole()
	assert.True(t, ok)
	assert.Equal(t, entity.RoleDoctor, role)
}

func TestLogout_BorraSesionPersistida(t *testing.T) {
	f := newFixture(t)
	_, err := f.mgr.Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)

	require.NoError(t, f.mgr.Logout())
	assert.False(t, f.mgr.IsAuthenticated())
	_, ok, err := f.storage.GetItem(session.KeyCurrentUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_FalloDeAlmacenamientoIgualCierraSesion(t *testing.T) {
	f := newFixture(t)
	_, err := f.mgr.Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)
	f.storage.FailWrites = errors.New("solo lectura")

	assert.Error(t, f.mgr.Logout())
	assert.False(t, f.mgr.IsAuthenticated())
}

// ─── Restore / Hydrate ──────────────────────────────────────────────────────

func TestRestore_SesionValida(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.storage.SetItem(session.KeyCurrentUser,
		`{"id":"USR003","name":"Admin Mike Wilson","email":"mike@hospital.com","role":"admin"}`))

	sess, ok := f.mgr.Restore()
	require.True(t, ok)
	assert.Equal(t, "USR003", sess.User.ID)
	assert.NotEmpty(t, sess.SessionID)

	role, ok := f.mgr.CurrentRole()
	assert.True(t, ok)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRestore_SinSesion(t *testing.T) {
	f := newFixture(t)

	_, ok := f.mgr.Restore()
	assert.False(t, ok)
	assert.False(t, f.mgr.IsAuthenticated())
}

func TestRestore_MalFormadaSeElimina(t *testing.T) {
	for name, raw := range map[string]string{
		"json roto": `{"id":`,
		"sin rol":   `{"id":"USR001","email":"john@hospital.com"}`,
		"no objeto": `[1,2,3]`,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.storage.SetItem(session.KeyCurrentUser, raw))

			_, ok := f.mgr.Restore()
			assert.False(t, ok)
			assert.False(t, f.mgr.IsAuthenticated())

			_, stored, err := f.storage.GetItem(session.KeyCurrentUser)
			require.NoError(t, err)
			assert.False(t, stored)
		})
	}
}

func TestHydrateUsers_ImportaRegistrados(t *testing.T) {
	storage := localstorage.NewMemoryStorage()
	first := memory.NewEntityStore(entity.DefaultRegistry(), config.IDPolicyMonotonic, logger.Nop())
	require.NoError(t, memory.Seed(first))
	_, err := session.NewManager(first, storage, logger.Nop()).Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)

	// Reinicio: almacén nuevo, mismo almacenamiento local.
	second := memory.NewEntityStore(entity.DefaultRegistry(), config.IDPolicyMonotonic, logger.Nop())
	require.NoError(t, memory.Seed(second))
	mgr := session.NewManager(second, storage, logger.Nop())

	n, err := mgr.HydrateUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := second.Get(entity.TypeUser, "USR006")
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", rec.Str("name"))

	next, err := second.NextID(entity.TypeUser)
	require.NoError(t, err)
	assert.Equal(t, "USR007", next)

	n, err = mgr.HydrateUsers()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestHydrateUsers_IDOcupadoPorLaSemillaSeReasigna(t *testing.T) {
	storage := localstorage.NewMemoryStorage()
	// Primera ejecución sin semilla: el alta recibe USR001.
	first := memory.NewEntityStore(entity.DefaultRegistry(), config.IDPolicyMonotonic, logger.Nop())
	sess, err := session.NewManager(first, storage, logger.Nop()).Signup(signupReq("ana@hospital.com"))
	require.NoError(t, err)
	require.Equal(t, "USR001", sess.User.ID)

	second := memory.NewEntityStore(entity.DefaultRegistry(), config.IDPolicyMonotonic, logger.Nop())
	require.NoError(t, memory.Seed(second))
	mgr := session.NewManager(second, storage, logger.Nop())

	n, err := mgr.HydrateUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	seeded, err := second.Get(entity.TypeUser, "USR001")
	require.NoError(t, err)
	assert.Equal(t, "john@hospital.com", seeded.Str("email"))

	rec, err := second.Get(entity.TypeUser, "USR006")
	require.NoError(t, err)
	assert.Equal(t, "ana@hospital.com", rec.Str("email"))

	users, err := mgr.RegisteredUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "USR006", users[0].ID)

	restored, ok := mgr.Restore()
	require.True(t, ok)
	assert.Equal(t, "USR006", restored.User.ID)

	n, err = mgr.HydrateUsers()
	require.NoError(t, err)
	assert.Zero(t, n)

	logged, err := mgr.Login(dto.LoginRequest{Email: "ana@hospital.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "USR006", logged.User.ID)
}

func TestUsuariosPersistidosMalFormados(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.storage.SetItem(session.KeyUsers, "no-json"))

	_, err := f.mgr.Login(dto.LoginRequest{Email: "a@b.c", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = f.mgr.Signup(signupReq("a@b.c"))
	assert.NoError(t, err)
	assert.Equal(t, 1, registeredCount(t, f, "a@b.c"))
}
