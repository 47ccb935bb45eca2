package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vvai/classdesk/internal/app"
	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/llm"
	"github.com/vvai/classdesk/internal/logging"
	"github.com/vvai/classdesk/internal/navigator"
	"github.com/vvai/classdesk/internal/notify"
	"github.com/vvai/classdesk/internal/store"
	"github.com/vvai/classdesk/internal/tutoring"
)

// deps are the services shared by the TUI and the one-shot commands.
type deps struct {
	catalog *catalog.Catalog
	store   *store.Store
	logger  *zap.Logger
	oracle  tutoring.Oracle
	tutor   tutoring.Config
}

func (d *deps) Close() {
	d.logger.Sync()
	if d.store != nil {
		d.store.Close()
	}
}

// session builds a tutoring session reporting to notifier.
func (d *deps) session(notifier notify.Notifier) *tutoring.Session {
	return tutoring.New(d.tutor, tutoring.Deps{
		Catalog:  d.catalog,
		Oracle:   d.oracle,
		Notifier: notifier,
		Journal:  d.store.EventRepo(),
		Logger:   d.logger,
	})
}

// loadDeps resolves flags and environment into services. console routes
// logs to stderr as well, for commands that do not own the terminal.
func loadDeps(cmd *cobra.Command, console bool) (*deps, error) {
	logCfg := logging.ConfigFromEnv()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
	}
	logCfg.Console = console
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{
		catalog: cat,
		store:   st,
		logger:  logger,
		oracle:  tutoring.StaticOracle{},
		tutor:   tutoring.ConfigFromEnv(),
	}
	d.tutor.DefaultLessonID = cat.DefaultLessonID()
	if delay, _ := cmd.Flags().GetDuration("reply-delay"); delay > 0 {
		d.tutor.ReplyDelay = delay
	}

	mode, _ := cmd.Flags().GetString("oracle")
	switch mode {
	case "static", "":
	case "llm":
		d.oracle = d.llmOracle(cmd)
	default:
		d.Close()
		return nil, fmt.Errorf("unknown oracle %q: want static or llm", mode)
	}
	return d, nil
}

// llmOracle builds the LLM-backed oracle. Without a configured provider
// the static table answers instead.
func (d *deps) llmOracle(cmd *cobra.Command) tutoring.Oracle {
	cfg, err := llm.ResolveConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Falling back to built-in replies.")
		return tutoring.StaticOracle{}
	}
	if err := llm.Compile(tutoring.ReplySchema); err != nil {
		fmt.Fprintln(os.Stderr, "Tutor reply schema rejected:", err)
		return tutoring.StaticOracle{}
	}
	provider, err := llm.NewProvider(cmd.Context(), cfg, d.store.EventRepo(), d.logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
		return tutoring.StaticOracle{}
	}
	d.tutor.ReplyTimeout = cfg.Timeout
	d.logger.Info("llm oracle enabled", zap.String("provider", cfg.Provider), zap.String("model", provider.ModelID()))
	return tutoring.FallbackOracle{
		Primary: tutoring.NewLLMOracle(provider, cfg.MaxTokens),
		Logger:  d.logger,
	}
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// runApp builds dependencies and launches the TUI, optionally straight
// into a materials view.
func runApp(cmd *cobra.Command, initial *navigator.View, splash bool) error {
	d, err := loadDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	notifier := notify.NewCacheNotifier(notify.DefaultTTL)
	return app.Run(app.Options{
		Catalog:  d.catalog,
		Session:  d.session(notifier),
		Notifier: notifier,
		Logger:   d.logger,
		Initial:  initial,
		Splash:   splash,
	})
}
