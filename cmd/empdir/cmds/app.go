package cmds

import (
	"context"
	"empdir/internal/backends"
	"empdir/internal/backends/rest"
	"empdir/internal/config"
	"empdir/internal/flow"
	"empdir/internal/ports"
	"empdir/internal/pub"
	"empdir/internal/types"
	"empdir/internal/ui"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
)

// App is everything a command needs, wired from the resolved configuration.
type App struct {
	Cfg       types.Config
	PrefsPath string

	Ctrl     *flow.Controller
	Renderer *ui.Renderer
	Toaster  *ui.Toaster
	Prompt   *ui.Prompt
	Out      io.Writer

	// History is set when the remote notifier keeps past notifications (redis).
	History ports.NotificationHistory
}

type options struct {
	configPath string
	apiURL     string
	timeout    string
	logLevel   string
	theme      string
	notify     string
	prefsPath  string
	assumeYes  bool
	// quiet sends notifications to the log instead of printing toasts.
	quiet bool
}

// newApp resolves config (file, env, then flags), sets up logging and builds the controller.
func newApp(ctx context.Context, o options, in io.Reader, out, errOut io.Writer) (*App, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	override(&cfg.APIURL, o.apiURL)
	override(&cfg.Timeout, o.timeout)
	override(&cfg.LogLevel, o.logLevel)
	override(&cfg.Theme, o.theme)
	override(&cfg.Notify.Backend, o.notify)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := setupLogging(cfg.LogLevel, errOut); err != nil {
		return nil, err
	}

	prefsPath := o.prefsPath
	if prefsPath == "" {
		prefsPath = config.PrefsPath()
	}
	if cfg.Theme == "" {
		prefs, err := config.LoadPrefs(prefsPath)
		if err != nil {
			log.WithError(err).Warn("ignoring unreadable preferences")
		} else {
			cfg.Theme = prefs.Theme
		}
	}
	styles := ui.NewStyles(ui.ThemeNamed(cfg.Theme))

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	app := &App{
		Cfg:       cfg,
		PrefsPath: prefsPath,
		Renderer:  ui.NewRenderer(out, styles),
		Toaster:   ui.NewToaster(out, styles),
		Prompt:    ui.NewPrompt(in, out),
		Out:       out,
	}
	app.Prompt.AssumeYes = o.assumeYes

	var local ports.Notifier = app.Toaster
	if o.quiet {
		local = pub.NewLog(nil)
	}
	remote, err := backends.RemoteNotifier(ctx, cfg.Notify)
	if err != nil {
		return nil, err
	}
	notifier := pub.Fanout{local}
	if remote != nil {
		notifier = append(notifier, remote)
		if h, ok := remote.(ports.NotificationHistory); ok {
			app.History = h
		}
	}

	app.Ctrl = flow.New(rest.New(cfg.APIURL, timeout), notifier, app.Renderer, app.Prompt)

	log.WithFields(log.Fields{
		"api":    cfg.APIURL,
		"notify": cfg.Notify.Backend,
		"theme":  cfg.Theme,
	}).Debug("empdir ready")
	return app, nil
}

// SetTheme switches the terminal styles and persists the choice.
func (a *App) SetTheme(name string) error {
	styles := ui.NewStyles(ui.ThemeNamed(name))
	a.Renderer.SetStyles(styles)
	a.Toaster.SetStyles(styles)
	a.Cfg.Theme = name
	return config.SavePrefs(a.PrefsPath, config.Prefs{Theme: name})
}

// Fail shows err as an error toast. It is for failures that happen outside the
// controller, which reports its own.
func (a *App) Fail(ctx context.Context, err error) error {
	_ = a.Toaster.Notify(ctx, types.Failure(err.Error()))
	return reportedError{err}
}

// reportedError has already been shown to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Reported tells whether err was already shown, as a toast from Fail or from the
// controller, or by the pre-run. Anything else (usage errors) still needs printing.
func Reported(err error) bool {
	var r reportedError
	if errors.As(err, &r) {
		return true
	}
	for _, target := range []error{types.ErrValidation, types.ErrNetwork, types.ErrBackend, types.ErrNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func setupLogging(level string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return types.Err(types.ErrInvalidConfig, err, "log level")
	}
	log.SetLevel(lvl)
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
