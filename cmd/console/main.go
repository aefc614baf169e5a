package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jhoicas/caresync-hms/internal/application/access"
	"github.com/jhoicas/caresync-hms/internal/application/analytics"
	"github.com/jhoicas/caresync-hms/internal/application/billing"
	"github.com/jhoicas/caresync-hms/internal/application/console"
	"github.com/jhoicas/caresync-hms/internal/application/inventory"
	"github.com/jhoicas/caresync-hms/internal/application/navigation"
	"github.com/jhoicas/caresync-hms/internal/application/session"
	"github.com/jhoicas/caresync-hms/internal/application/usecase"
	"github.com/jhoicas/caresync-hms/internal/domain/entity"
	"github.com/jhoicas/caresync-hms/internal/infrastructure/localstorage"
	"github.com/jhoicas/caresync-hms/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/caresync-hms/internal/infrastructure/pdf"
	"github.com/jhoicas/caresync-hms/internal/interfaces/tui"
	"github.com/jhoicas/caresync-hms/pkg/config"
	"github.com/jhoicas/caresync-hms/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "caresync",
		Short:        "Consola de gestión hospitalaria",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runConsole(cfg)
		},
	}
	rootCmd.Flags().Bool("seed", true, "Cargar datos de demostración")
	rootCmd.Flags().Bool("alt-screen", true, "Usar la pantalla alternativa de la terminal")
	rootCmd.Flags().String("log-file", "", "Archivo de log (por defecto LOG_FILE)")
	rootCmd.AddCommand(usersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// usersCmd lista los usuarios registrados en el almacenamiento local.
func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Listar usuarios registrados",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})
			store := memory.NewEntityStore(entity.DefaultRegistry(), cfg.Store.IDPolicy, log.Named("store"))
			storage := localstorage.NewFileStorage(afero.NewOsFs(), cfg.Storage.Path)
			users, err := session.NewManager(store, storage, log.Named("session")).RegisteredUsers()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range users {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, u.Name)
			}
			if len(users) == 0 {
				fmt.Fprintln(out, "sin usuarios registrados")
			}
			return nil
		},
	}
}

// loadConfig aplica los flags explícitos sobre la configuración cargada.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Store.Seed, _ = flags.GetBool("seed")
	}
	if flags.Changed("alt-screen") {
		cfg.UI.AltScreen, _ = flags.GetBool("alt-screen")
	}
	if flags.Changed("log-file") {
		cfg.Log.File, _ = flags.GetString("log-file")
	}
	return cfg, nil
}

func runConsole(cfg *config.Config) error {
	fs := afero.NewOsFs()

	// La terminal pertenece a la UI: los logs van a archivo.
	var logOut io.Writer = os.Stderr
	if cfg.Log.File != "" {
		if dir := filepath.Dir(cfg.Log.File); dir != "." {
			_ = fs.MkdirAll(dir, 0o755)
		}
		f, err := fs.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("abrir archivo de log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.Log.Level,
		Output: logOut,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("id_policy", cfg.Store.IDPolicy).
		Msg("iniciando consola")

	store := memory.NewEntityStore(entity.DefaultRegistry(), cfg.Store.IDPolicy, log.Named("store"))
	if cfg.Store.Seed {
		if err := memory.Seed(store); err != nil {
			return fmt.Errorf("cargar datos de demostración: %w", err)
		}
	}

	storage := localstorage.NewFileStorage(fs, cfg.Storage.Path)
	sessions := session.NewManager(store, storage, log.Named("session"))
	if n, err := sessions.HydrateUsers(); err != nil {
		log.Warn().Err(err).Msg("no se pudieron cargar los usuarios registrados")
	} else {
		log.Info().Int("users", n).Msg("usuarios registrados cargados")
	}
	if sess, ok := sessions.Restore(); ok {
		log.Info().Str("user_id", sess.User.ID).Msg("sesión restaurada")
	}

	policy, err := access.NewRoleAccessPolicy(cfg.Access.Restrictions)
	if err != nil {
		return fmt.Errorf("política de acceso inválida: %w", err)
	}

	bills := billing.NewBillUseCase(store, cfg.Billing.TaxRate, cfg.Billing.Currency, log.Named("billing"))
	con := console.New(console.Deps{
		Session:   sessions,
		Navigator: navigation.NewController(sessions, policy, log.Named("navigation")),
		Policy:    policy,
		Records:   usecase.NewRecordUseCase(store, log.Named("records")),
		Bills:     bills,
		PDF: billing.NewPDFUseCase(
			bills, infrapdf.NewMarotoBillGenerator(), fs,
			cfg.Billing.PDFDir, cfg.App.Name, log.Named("pdf"),
		),
		Dashboard: analytics.NewDashboardUseCase(store),
		Stock:     inventory.NewStockUseCase(store, log.Named("stock")),
		Log:       log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	model := tui.New(con, tui.Options{Hospital: cfg.App.Name, Context: ctx})
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error().Err(err).Msg("consola finalizada con error")
		return err
	}

	log.Info().Msg("consola detenida")
	return nil
}
