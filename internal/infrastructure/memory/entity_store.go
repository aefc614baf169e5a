package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/caresync-hms/internal/domain"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/domain/repository"
	"github.com/jhoicas/caresync-hms/pkg/config"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

// collection registros de un tipo en orden de inserción.
type collection struct {
	mu      sync.RWMutex
	schema  entity.Schema
	records []entity.Record
	index   map[string]int // id -> posición (primera aparición)
	high    int            // mayor ordinal emitido o importado
}

// EntityStore implementa repository.EntityStore en memoria, un mutex por colección.
type EntityStore struct {
	registry *entity.Registry
	idPolicy string
	log      *logger.Logger
	now      func() time.Time
	cols     map[entity.EntityType]*collection
}

var _ repository.EntityStore = (*EntityStore)(nil)

// NewEntityStore crea el almacén con una colección vacía por tipo registrado.
// idPolicy: config.IDPolicyMonotonic (por defecto) o config.IDPolicyCount.
func NewEntityStore(registry *entity.Registry, idPolicy string, log *logger.Logger) *EntityStore {
	if idPolicy != config.IDPolicyCount {
		idPolicy = config.IDPolicyMonotonic
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &EntityStore{
		registry: registry,
		idPolicy: idPolicy,
		log:      log,
		now:      time.Now,
		cols:     make(map[entity.EntityType]*collection),
	}
	for _, t := range registry.Types() {
		schema, _ := registry.Schema(t)
		s.cols[t] = &collection{schema: schema, index: make(map[string]int)}
	}
	return s
}

// WithClock reemplaza el reloj usado para los campos automáticos (tests).
func (s *EntityStore) WithClock(now func() time.Time) *EntityStore {
	s.now = now
	return s
}

// Registry devuelve el catálogo de esquemas.
func (s *EntityStore) Registry() *entity.Registry { return s.registry }

func (s *EntityStore) collection(t entity.EntityType) (*collection, error) {
	c, ok := s.cols[t]
	if !ok {
		return nil, fmt.Errorf("tipo de entidad %q: %w", t, domain.ErrNotFound)
	}
	return c, nil
}

// nextOrdinal se llama con el lock de escritura (o lectura para la vista previa).
func (s *EntityStore) nextOrdinal(c *collection) int {
	n := len(c.records)
	if s.idPolicy == config.IDPolicyMonotonic && c.high > n {
		n = c.high
	}
	return n + 1
}

func (s *EntityStore) Create(t entity.EntityType, fields map[string]any) (entity.Record, error) {
	c, err := s.collection(t)
	if err != nil {
		return entity.Record{}, err
	}
	normalized, err := c.schema.Normalize(fields, s.now(), nil)
	if err != nil {
		return entity.Record{}, fmt.Errorf("crear %s: %w", t, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ordinal := s.nextOrdinal(c)
	rec := entity.Record{ID: c.schema.FormatID(ordinal), Type: t, Fields: normalized}
	if _, dup := c.index[rec.ID]; dup {
		s.log.Warn().Str("type", string(t)).Str("id", rec.ID).Msg("id duplicado por asignación basada en conteo")
	} else {
		c.index[rec.ID] = len(c.records)
	}
	c.records = append(c.records, rec)
	if ordinal > c.high {
		c.high = ordinal
	}

	s.log.Info().Str("type", string(t)).Str("id", rec.ID).Msg("registro creado")
	return rec.Clone(), nil
}

func (s *EntityStore) Update(t entity.EntityType, id string, fields map[string]any) (entity.Record, error) {
	c, err := s.collection(t)
	if err != nil {
		return entity.Record{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[id]
	if !ok {
		return entity.Record{}, fmt.Errorf("%s %s: %w", t, id, domain.ErrNotFound)
	}
	current := c.records[pos]
	normalized, err := c.schema.Normalize(fields, s.now(), &current)
	if err != nil {
		return entity.Record{}, fmt.Errorf("actualizar %s %s: %w", t, id, err)
	}
	updated := entity.Record{ID: current.ID, Type: current.Type, Fields: normalized}
	c.records[pos] = updated

	s.log.Info().Str("type", string(t)).Str("id", id).Msg("registro actualizado")
	return updated.Clone(), nil
}

func (s *EntityStore) Delete(t entity.EntityType, id string) error {
	c, err := s.collection(t)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[id]
	if !ok {
		return fmt.Errorf("%s %s: %w", t, id, domain.ErrNotFound)
	}
	c.records = append(c.records[:pos], c.records[pos+1:]...)
	c.reindex()

	s.log.Info().Str("type", string(t)).Str("id", id).Msg("registro eliminado")
	return nil
}

// reindex reconstruye el índice; con ids duplicados gana la primera aparición.
func (c *collection) reindex() {
	c.index = make(map[string]int, len(c.records))
	for i, r := range c.records {
		if _, seen := c.index[r.ID]; !seen {
			c.index[r.ID] = i
		}
	}
}

func (s *EntityStore) Get(t entity.EntityType, id string) (entity.Record, error) {
	c, err := s.collection(t)
	if err != nil {
		return entity.Record{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, ok := c.index[id]
	if !ok {
		return entity.Record{}, fmt.Errorf("%s %s: %w", t, id, domain.ErrNotFound)
	}
	return c.records[pos].Clone(), nil
}

func (s *EntityStore) List(t entity.EntityType) ([]entity.Record, error) {
	return s.Search(t, entity.All)
}

func (s *EntityStore) Search(t entity.EntityType, pred entity.Predicate) ([]entity.Record, error) {
	c, err := s.collection(t)
	if err != nil {
		return nil, err
	}
	if pred == nil {
		pred = entity.All
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.Record, 0, len(c.records))
	for _, r := range c.records {
		if pred(r) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *EntityStore) Count(t entity.EntityType) (int, error) {
	c, err := s.collection(t)
	if err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records), nil
}

func (s *EntityStore) NextID(t entity.EntityType) (string, error) {
	c, err := s.collection(t)
	if err != nil {
		return "", err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schema.FormatID(s.nextOrdinal(c)), nil
}

// Import inserta un registro con id prefijado. Solo reduce los valores a escalares;
// no aplica el esquema (datos semilla y usuarios ya registrados).
func (s *EntityStore) Import(rec entity.Record) error {
	c, err := s.collection(rec.Type)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		return domain.NewValidationError(domain.FieldError{Field: "id", Reason: "requerido"})
	}
	fields := make(map[string]any, len(rec.Fields))
	for name, v := range rec.Fields {
		n, ok := entity.NormalizeScalar(v)
		if !ok {
			return domain.NewValidationError(domain.FieldError{Field: name, Reason: "valor no escalar"})
		}
		fields[name] = n
	}
	rec = entity.Record{ID: rec.ID, Type: rec.Type, Fields: fields}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.index[rec.ID]; dup {
		return fmt.Errorf("%s %s: %w", rec.Type, rec.ID, domain.ErrDuplicate)
	}
	c.index[rec.ID] = len(c.records)
	c.records = append(c.records, rec)
	if ordinal, ok := c.schema.ParseOrdinal(rec.ID); ok && ordinal > c.high {
		c.high = ordinal
	}

	s.log.Debug().Str("type", string(rec.Type)).Str("id", rec.ID).Msg("registro importado")
	return nil
}
