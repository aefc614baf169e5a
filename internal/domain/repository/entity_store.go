package repository

import "github.com/jhoicas/caresync-hms/internal/domain/entity"

// EntityStore define el puerto del almacén genérico de registros por tipo (DIP).
// Tipo desconocido o id inexistente devuelven un error que envuelve domain.ErrNotFound.
type EntityStore interface {
	Create(t entity.EntityType, fields map[string]any) (entity.Record, error)
	// Update reemplaza el registro completo; id y tipo se conservan.
	Update(t entity.EntityType, id string, fields map[string]any) (entity.Record, error)
	Delete(t entity.EntityType, id string) error
	Get(t entity.EntityType, id string) (entity.Record, error)
	// List devuelve los registros en orden de inserción.
	List(t entity.EntityType) ([]entity.Record, error)
	Search(t entity.EntityType, pred entity.Predicate) ([]entity.Record, error)
	Count(t entity.EntityType) (int, error)
	// NextID id que asignaría el próximo Create (vista previa del formulario).
	NextID(t entity.EntityType) (string, error)
	// Import inserta un registro con id prefijado (datos semilla, usuarios hidratados).
	Import(rec entity.Record) error
	Registry() *entity.Registry
}
