package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "caresync-hms", cfg.App.Name)
	assert.Equal(t, IDPolicyMonotonic, cfg.Store.IDPolicy)
	assert.True(t, cfg.Store.Seed)
	assert.True(t, cfg.Billing.TaxRate.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, "₹", cfg.Billing.Currency)
	assert.Empty(t, cfg.Access.Restrictions)
}

func TestFromViper_SobrescribeDesdeEnv(t *testing.T) {
	v := viper.New()
	v.Set("STORE_ID_POLICY", "COUNT")
	v.Set("STORE_SEED", "false")
	v.Set("BILLING_TAX_RATE", "0.12")
	v.Set("ACCESS_POLICY", "lab=lab-orders|lab-reports")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, IDPolicyCount, cfg.Store.IDPolicy)
	assert.False(t, cfg.Store.Seed)
	assert.Equal(t, "0.12", cfg.Billing.TaxRate.String())
	assert.Equal(t, []string{"lab-orders", "lab-reports"}, cfg.Access.Restrictions["lab"])
}

func TestFromViper_PoliticaDeIDInvalida(t *testing.T) {
	v := viper.New()
	v.Set("STORE_ID_POLICY", "random")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_TasaNegativa(t *testing.T) {
	v := viper.New()
	v.Set("BILLING_TAX_RATE", "-1")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestParseAccessPolicy(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string][]string
		wantErr bool
	}{
		{name: "vacío", raw: "", want: map[string][]string{}},
		{
			name: "varios roles",
			raw:  "lab=lab-orders|lab-reports; pharmacy=pharmacy|inventory",
			want: map[string][]string{
				"lab":      {"lab-orders", "lab-reports"},
				"pharmacy": {"pharmacy", "inventory"},
			},
		},
		{name: "rol sin páginas", raw: "nurse=", want: map[string][]string{"nurse": {}}},
		{name: "sin separador", raw: "lab", wantErr: true},
		{name: "rol vacío", raw: "=inventory", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAccessPolicy(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
