package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/application/usecase"
	"github.com/jhoicas/caresync-hms/internal/domain"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/infrastructure/memory"
	"github.com/jhoicas/caresync-hms/pkg/config"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

func newRecordUseCase(t *testing.T) *usecase.RecordUseCase {
	t.Helper()
	store := memory.NewEntityStore(entity.DefaultRegistry(), config.IDPolicyMonotonic, logger.Nop())
	require.NoError(t, memory.Seed(store))
	return usecase.NewRecordUseCase(store, logger.Nop())
}

func admission(ward, bed string) map[string]any {
	return map[string]any{
		"patientId": "PAT002", "doctorId": "STF001", "reason": "Observación",
		"wardType": ward, "bedNumber": bed,
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba *ValidationError, se obtuvo %v", err)
	return verr.FieldNames()
}

// ─── CRUD ───────────────────────────────────────────────────────────────────

func TestCreate_PacienteYBusqueda(t *testing.T) {
	uc := newRecordUseCase(t)

	next, err := uc.NextID(entity.TypePatient)
	require.NoError(t, err)
	assert.Equal(t, "PAT006", next)

	rec, err := uc.Create(entity.TypePatient, map[string]any{
		"name": "Meera Nair", "age": "29", "gender": "female", "phone": "9123456780",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAT006", rec.ID)

	found, err := uc.Search(entity.TypePatient, dto.SearchRequest{Term: "meera"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "PAT006", found[0].ID)
}

func TestSearch_FiltroYTermino(t *testing.T) {
	uc := newRecordUseCase(t)

	found, err := uc.Search(entity.TypeInventoryItem, dto.SearchRequest{
		Term: "s", Filters: map[string]string{"category": "consumable"},
	})
	require.NoError(t, err)
	ids := make([]string, 0, len(found))
	for _, r := range found {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"INV004"}, ids)
}

func TestSearch_TipoDesconocido(t *testing.T) {
	uc := newRecordUseCase(t)

	_, err := uc.Search(entity.EntityType("prescription"), dto.SearchRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateYDelete(t *testing.T) {
	uc := newRecordUseCase(t)

	rec, err := uc.Update(entity.TypeStaff, "STF003", map[string]any{
		"name": "Nurse Emma Davis", "department": "icu", "role": "nurse",
	})
	require.NoError(t, err)
	assert.Equal(t, "icu", rec.Str("department"))

	require.NoError(t, uc.Delete(entity.TypeStaff, "STF003"))
	_, err = uc.Get(entity.TypeStaff, "STF003")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Update(entity.TypeStaff, "STF003", map[string]any{"name": "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ─── Reglas ─────────────────────────────────────────────────────────────────

func TestCita_CompletaNombreDelPaciente(t *testing.T) {
	uc := newRecordUseCase(t)

	in := map[string]any{
		"patientId": "PAT003", "doctorName": "Dr. Mike Wilson", "date": "2024-01-22", "time": "09:00",
	}
	rec, err := uc.Create(entity.TypeAppointment, in)
	require.NoError(t, err)
	assert.Equal(t, "Amit Patel", rec.Str("patientName"))
	assert.Equal(t, "scheduled", rec.Str("status"))
	_, mutated := in["patientName"]
	assert.False(t, mutated, "la entrada del llamador no debe modificarse")
}

func TestHospitalizacion_CamaDeOtraSala(t *testing.T) {
	uc := newRecordUseCase(t)

	_, err := uc.Create(entity.TypeAdmission, admission("icu", "G001"))
	assert.True(t, errors.Is(err, domain.ErrValidationFailed))
	assert.Equal(t, []string{"bedNumber"}, fieldNames(t, err))
}

func TestHospitalizacion_CamaOcupada(t *testing.T) {
	uc := newRecordUseCase(t)

	first, err := uc.Create(entity.TypeAdmission, admission("icu", "ICU03"))
	require.NoError(t, err)
	assert.Equal(t, "ADM001", first.ID)
	assert.Equal(t, "Priya Sharma", first.Str("patientName"))

	_, err = uc.Create(entity.TypeAdmission, admission("icu", "ICU03"))
	assert.Equal(t, []string{"bedNumber"}, fieldNames(t, err))

	n, err := uc.List(entity.TypeAdmission)
	require.NoError(t, err)
	assert.Len(t, n, 1)
}

func TestHospitalizacion_ActualizarConservaSuCama(t *testing.T) {
	uc := newRecordUseCase(t)
	rec, err := uc.Create(entity.TypeAdmission, admission("private", "P002"))
	require.NoError(t, err)

	updated := admission("private", "P002")
	updated["reason"] = "Post operatorio"
	got, err := uc.Update(entity.TypeAdmission, rec.ID, updated)
	require.NoError(t, err)
	assert.Equal(t, "Post operatorio", got.Str("reason"))
}

func TestHospitalizacion_SalaInvalidaLaReportaElEsquema(t *testing.T) {
	uc := newRecordUseCase(t)

	_, err := uc.Create(entity.TypeAdmission, admission("maternity", "M01"))
	assert.Equal(t, []string{"wardType"}, fieldNames(t, err))
}

func TestAvailableBeds(t *testing.T) {
	uc := newRecordUseCase(t)
	_, err := uc.Create(entity.TypeAdmission, admission("icu", "ICU01"))
	require.NoError(t, err)

	free, err := uc.AvailableBeds("icu")
	require.NoError(t, err)
	assert.Len(t, free, 9)
	assert.Equal(t, "ICU02", free[0])

	_, err = uc.AvailableBeds("maternity")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
