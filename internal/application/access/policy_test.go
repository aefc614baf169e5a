package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caresync-hms/internal/application/access"
	"github.com/jhoicas/caresync-hms/internal/application/navigation"
	"github.com/jhoicas/caresync-hms/internal/domain"
)

func TestPermissive_TodosLosRolesTodasLasPaginas(t *testing.T) {
	p := access.Permissive()
	for _, role := range []string{"admin", "doctor", "nurse", "lab", "pharmacy", "receptionist"} {
		for _, info := range navigation.Pages() {
			assert.True(t, p.IsPermitted(role, info.Page), "%s -> %s", role, info.Page)
		}
	}
}

func TestRestricciones_SoloAfectanAlRolListado(t *testing.T) {
	p, err := access.NewRoleAccessPolicy(map[string][]string{
		"pharmacy": {"pharmacy", "inventory"},
	})
	require.NoError(t, err)

	assert.True(t, p.IsPermitted("pharmacy", navigation.Inventory))
	assert.False(t, p.IsPermitted("pharmacy", navigation.Billing))
	assert.True(t, p.IsPermitted("doctor", navigation.Billing))
}

func TestLoginYDashboardSiemprePermitidos(t *testing.T) {
	p, err := access.NewRoleAccessPolicy(map[string][]string{"nurse": {}})
	require.NoError(t, err)

	assert.True(t, p.IsPermitted("nurse", navigation.Login))
	assert.True(t, p.IsPermitted("nurse", navigation.Dashboard))
	assert.False(t, p.IsPermitted("nurse", navigation.Emergency))
}

func TestPaginaDesconocidaEnConfiguracion(t *testing.T) {
	_, err := access.NewRoleAccessPolicy(map[string][]string{"lab": {"radiology"}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPermittedPages(t *testing.T) {
	p, err := access.NewRoleAccessPolicy(map[string][]string{"lab": {"lab-orders", "lab-reports"}})
	require.NoError(t, err)

	var got []navigation.Page
	for _, info := range p.PermittedPages("lab") {
		got = append(got, info.Page)
	}
	assert.Equal(t, []navigation.Page{
		navigation.Dashboard, navigation.Login, navigation.LabOrders, navigation.LabReports,
	}, got)
}
