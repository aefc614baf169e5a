package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/domain"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/domain/repository"
	"github.com/jhoicas/caresync-hms/internal/domain/ward"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

// Rule regla de negocio de un tipo de entidad, evaluada antes de guardar.
// existing es nil en altas. Puede completar campos derivados en fields.
type Rule func(store repository.EntityStore, fields map[string]any, existing *entity.Record) error

// RecordUseCase casos de uso CRUD genéricos sobre las colecciones del almacén,
// con reglas adicionales por tipo (camas de hospitalización, nombre del paciente).
type RecordUseCase struct {
	store repository.EntityStore
	rules map[entity.EntityType][]Rule
	log   *logger.Logger
}

// NewRecordUseCase construye el caso de uso con las reglas por defecto.
func NewRecordUseCase(store repository.EntityStore, log *logger.Logger) *RecordUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordUseCase{
		store: store,
		log:   log,
		rules: map[entity.EntityType][]Rule{
			entity.TypeAdmission:   {BedAvailable, PatientName},
			entity.TypeAppointment: {PatientName},
			entity.TypeLabOrder:    {PatientName},
		},
	}
}

// Schema esquema del tipo; ErrNotFound si no existe.
func (uc *RecordUseCase) Schema(t entity.EntityType) (entity.Schema, error) {
	s, ok := uc.store.Registry().Schema(t)
	if !ok {
		return entity.Schema{}, fmt.Errorf("tipo de entidad %q: %w", t, domain.ErrNotFound)
	}
	return s, nil
}

// Create valida las reglas del tipo y guarda el registro.
func (uc *RecordUseCase) Create(t entity.EntityType, fields map[string]any) (entity.Record, error) {
	in := copyFields(fields)
	if err := uc.apply(t, in, nil); err != nil {
		return entity.Record{}, err
	}
	return uc.store.Create(t, in)
}

// Update reemplaza el registro completo tras validar las reglas del tipo.
func (uc *RecordUseCase) Update(t entity.EntityType, id string, fields map[string]any) (entity.Record, error) {
	existing, err := uc.store.Get(t, id)
	if err != nil {
		return entity.Record{}, err
	}
	in := copyFields(fields)
	if err := uc.apply(t, in, &existing); err != nil {
		return entity.Record{}, err
	}
	return uc.store.Update(t, id, in)
}

// Delete elimina el registro.
func (uc *RecordUseCase) Delete(t entity.EntityType, id string) error {
	return uc.store.Delete(t, id)
}

// Get obtiene un registro por id.
func (uc *RecordUseCase) Get(t entity.EntityType, id string) (entity.Record, error) {
	return uc.store.Get(t, id)
}

// List todos los registros del tipo en orden de inserción.
func (uc *RecordUseCase) List(t entity.EntityType) ([]entity.Record, error) {
	return uc.store.List(t)
}

// Search término libre sobre los campos buscables AND filtros exactos.
func (uc *RecordUseCase) Search(t entity.EntityType, req dto.SearchRequest) ([]entity.Record, error) {
	s, err := uc.Schema(t)
	if err != nil {
		return nil, err
	}
	q := entity.Query{Term: req.Term, Filters: req.Filters}
	return uc.store.Search(t, q.Predicate(s))
}

// NextID id que recibirá el próximo registro del tipo.
func (uc *RecordUseCase) NextID(t entity.EntityType) (string, error) {
	return uc.store.NextID(t)
}

// AvailableBeds camas libres de la sala según las hospitalizaciones registradas.
func (uc *RecordUseCase) AvailableBeds(wardType string) ([]string, error) {
	if ward.Beds(wardType) == nil {
		return nil, fmt.Errorf("sala %q: %w", wardType, domain.ErrNotFound)
	}
	taken, err := takenBeds(uc.store, wardType, "")
	if err != nil {
		return nil, err
	}
	return ward.Free(wardType, taken), nil
}

func (uc *RecordUseCase) apply(t entity.EntityType, fields map[string]any, existing *entity.Record) error {
	for _, rule := range uc.rules[t] {
		if err := rule(uc.store, fields, existing); err != nil {
			uc.log.Warn().Str("type", string(t)).Err(err).Msg("regla de negocio rechazó el registro")
			return err
		}
	}
	return nil
}

// BedAvailable la cama debe pertenecer a la sala elegida y no estar asignada
// a otra hospitalización.
func BedAvailable(store repository.EntityStore, fields map[string]any, existing *entity.Record) error {
	wardType := strings.TrimSpace(entity.FormatScalar(fields["wardType"]))
	bed := strings.TrimSpace(entity.FormatScalar(fields["bedNumber"]))
	if wardType == "" || bed == "" {
		// los requeridos los reporta la validación del esquema
		return nil
	}
	if ward.Beds(wardType) == nil {
		return nil
	}
	if !ward.IsBedOf(wardType, bed) {
		return domain.NewValidationError(domain.FieldError{Field: "bedNumber", Reason: "la cama no pertenece a la sala " + wardType})
	}
	selfID := ""
	if existing != nil {
		selfID = existing.ID
	}
	taken, err := takenBeds(store, wardType, selfID)
	if err != nil {
		return err
	}
	if taken[bed] {
		return domain.NewValidationError(domain.FieldError{Field: "bedNumber", Reason: "cama ocupada"})
	}
	return nil
}

// PatientName completa patientName desde el paciente cuando llega vacío.
func PatientName(store repository.EntityStore, fields map[string]any, _ *entity.Record) error {
	if strings.TrimSpace(entity.FormatScalar(fields["patientName"])) != "" {
		return nil
	}
	id := strings.TrimSpace(entity.FormatScalar(fields["patientId"]))
	if id == "" {
		return nil
	}
	// paciente inexistente: el nombre queda vacío
	if p, err := store.Get(entity.TypePatient, id); err == nil {
		fields["patientName"] = p.Str("name")
	}
	return nil
}

func takenBeds(store repository.EntityStore, wardType, exceptID string) (map[string]bool, error) {
	admissions, err := store.Search(entity.TypeAdmission, func(r entity.Record) bool {
		return r.ID != exceptID && r.Str("wardType") == wardType
	})
	if err != nil {
		return nil, fmt.Errorf("hospitalizaciones: %w", err)
	}
	taken := make(map[string]bool, len(admissions))
	for _, a := range admissions {
		taken[a.Str("bedNumber")] = true
	}
	return taken, nil
}

func copyFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
