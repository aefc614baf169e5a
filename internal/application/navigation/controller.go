package navigation

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/caresync-hms/internal/domain"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

// PageEntered notificación emitida tras cada transición con la página resuelta.
type PageEntered struct {
	Page Page
	From Page
	At   time.Time
}

// Listener recibe PageEntered de forma síncrona.
type Listener func(PageEntered)

// sessionState contrato mínimo de sesión; lo implementa *session.Manager.
type sessionState interface {
	CurrentRole() (string, bool)
}

// accessChecker contrato mínimo de política de acceso; lo implementa *access.RoleAccessPolicy.
type accessChecker interface {
	IsPermitted(role string, page Page) bool
}

// Controller máquina de estados de páginas con guarda de autenticación.
type Controller struct {
	mu        sync.Mutex
	session   sessionState
	policy    accessChecker
	log       *logger.Logger
	now       func() time.Time
	current   Page
	nextID    int
	listeners map[int]Listener
	order     []int
}

// NewController crea el controlador. La página inicial es dashboard si ya hay
// sesión (restaurada) y login en caso contrario.
func NewController(sess sessionState, policy accessChecker, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	c := &Controller{
		session:   sess,
		policy:    policy,
		log:       log,
		now:       time.Now,
		current:   Login,
		listeners: make(map[int]Listener),
	}
	if _, ok := sess.CurrentRole(); ok {
		c.current = Dashboard
	}
	return c
}

// WithClock reemplaza el reloj de las notificaciones (tests).
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Current página actual.
func (c *Controller) Current() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registra un listener; la función devuelta lo da de baja.
func (c *Controller) Subscribe(l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.order = append(c.order, id)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
		for i, v := range c.order {
			if v == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// Resolve aplica la guarda de autenticación sin transicionar:
// sin sesión todo destino distinto de login va a login; con sesión, login va a dashboard.
func (c *Controller) Resolve(target Page) (Page, error) {
	if !IsKnown(target) {
		return "", fmt.Errorf("página %q: %w", target, domain.ErrNotFound)
	}
	role, loggedIn := c.session.CurrentRole()
	resolved := target
	switch {
	case !loggedIn && target != Login:
		resolved = Login
	case loggedIn && target == Login:
		resolved = Dashboard
	}
	if loggedIn && c.policy != nil && !c.policy.IsPermitted(role, resolved) {
		return "", fmt.Errorf("rol %q a página %q: %w", role, resolved, domain.ErrForbidden)
	}
	return resolved, nil
}

// Navigate transiciona a la página resuelta y notifica a los listeners antes de volver.
// Página desconocida → ErrNotFound; denegada por política → ErrForbidden. En ambos casos
// la página actual no cambia.
func (c *Controller) Navigate(target Page) (Page, error) {
	c.mu.Lock()
	resolved, err := c.Resolve(target)
	if err != nil {
		c.mu.Unlock()
		c.log.Warn().Err(err).Str("target", string(target)).Msg("navegación rechazada")
		return "", err
	}
	ev := PageEntered{Page: resolved, From: c.current, At: c.now()}
	c.current = resolved
	listeners := make([]Listener, 0, len(c.listeners))
	for _, id := range c.order {
		if l, ok := c.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	c.mu.Unlock()

	if resolved != target {
		c.log.Debug().Str("target", string(target)).Str("resolved", string(resolved)).Msg("redirección por guarda de sesión")
	}
	for _, l := range listeners {
		l(ev)
	}
	return resolved, nil
}
