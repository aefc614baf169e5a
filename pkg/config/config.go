package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Políticas de asignación de IDs del almacén de entidades.
const (
	IDPolicyMonotonic = "monotonic"
	IDPolicyCount     = "count"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	Storage StorageConfig
	Store   StoreConfig
	Billing BillingConfig
	Access  AccessConfig
	UI      UIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig configuración del logger. La terminal es de la UI, por eso los logs van a archivo.
type LogConfig struct {
	Level string
	File  string // vacío = stderr
}

// StorageConfig configuración del almacenamiento local (equivalente a localStorage del navegador).
type StorageConfig struct {
	Path string // archivo JSON clave/valor
}

// StoreConfig configuración del almacén en memoria.
type StoreConfig struct {
	IDPolicy string // monotonic | count
	Seed     bool   // cargar datos de demostración al iniciar
}

// BillingConfig configuración de facturación hospitalaria.
type BillingConfig struct {
	TaxRate  decimal.Decimal // 0.05 = 5%
	Currency string
	PDFDir   string
}

// AccessConfig restricciones de páginas por rol. Un rol ausente puede acceder a todas las páginas.
type AccessConfig struct {
	Restrictions map[string][]string
}

// UIConfig opciones de la consola de terminal.
type UIConfig struct {
	AltScreen bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, LOG_LEVEL, STORAGE_PATH, ACCESS_POLICY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	taxRate, err := decimal.NewFromString(getString(v, "BILLING_TAX_RATE", "0.05"))
	if err != nil {
		return nil, fmt.Errorf("config: BILLING_TAX_RATE inválido: %w", err)
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("config: BILLING_TAX_RATE no puede ser negativo")
	}

	policy := strings.ToLower(getString(v, "STORE_ID_POLICY", IDPolicyMonotonic))
	if policy != IDPolicyMonotonic && policy != IDPolicyCount {
		return nil, fmt.Errorf("config: STORE_ID_POLICY debe ser %q o %q, recibido %q", IDPolicyMonotonic, IDPolicyCount, policy)
	}

	restrictions, err := ParseAccessPolicy(getString(v, "ACCESS_POLICY", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "caresync-hms"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
			File:  getString(v, "LOG_FILE", "caresync.log"),
		},
		Storage: StorageConfig{
			Path: getString(v, "STORAGE_PATH", ".caresync/localstorage.json"),
		},
		Store: StoreConfig{
			IDPolicy: policy,
			Seed:     getBool(v, "STORE_SEED", true),
		},
		Billing: BillingConfig{
			TaxRate:  taxRate,
			Currency: getString(v, "BILLING_CURRENCY", "₹"),
			PDFDir:   getString(v, "BILLING_PDF_DIR", "bills"),
		},
		Access: AccessConfig{
			Restrictions: restrictions,
		},
		UI: UIConfig{
			AltScreen: getBool(v, "UI_ALT_SCREEN", true),
		},
	}
	return cfg, nil
}

// ParseAccessPolicy interpreta el formato "rol=pagina|pagina;rol=pagina".
// Ej: "lab=lab-orders|lab-reports;pharmacy=pharmacy|inventory".
func ParseAccessPolicy(raw string) (map[string][]string, error) {
	out := make(map[string][]string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		role, pages, ok := strings.Cut(entry, "=")
		role = strings.TrimSpace(role)
		if !ok || role == "" {
			return nil, fmt.Errorf("config: ACCESS_POLICY entrada inválida %q (formato rol=pagina|pagina)", entry)
		}
		list := make([]string, 0)
		for _, p := range strings.Split(pages, "|") {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		out[role] = append(out[role], list...)
	}
	return out, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case bool:
			return v.GetBool(key)
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return b
		default:
			return v.GetBool(key)
		}
	}
	return def
}
