package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-mediaui/components/mediaapi"
	"github.com/goliatone/go-mediaui/internal/config"
	"github.com/goliatone/go-mediaui/internal/logging"
	"github.com/goliatone/go-mediaui/pkg/apiclient"
	"github.com/goliatone/go-mediaui/pkg/edit"
	"github.com/goliatone/go-mediaui/pkg/flash"
	"github.com/goliatone/go-mediaui/pkg/ownership"
	"github.com/goliatone/go-mediaui/pkg/pages"
	"github.com/goliatone/go-mediaui/pkg/render"
	"github.com/goliatone/go-mediaui/pkg/renderers/tui"
)

const readHeaderTimeout = 10 * time.Second

// Edit menu entries, in display order.
const (
	choiceEdit = iota
	choiceSave
	choiceCancel
)

var editChoices = []string{"Edit fields", "Save", "Cancel"}

// RunnerConfig holds the runner's collaborators. Zero values use the
// process defaults.
type RunnerConfig struct {
	Out    io.Writer
	ErrOut io.Writer
	Getenv func(string) string
	Driver tui.PromptDriver
}

// Runner executes the commands.
type Runner struct {
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
	driver tui.PromptDriver

	cfg    *config.Config
	logger *log.Logger
}

// NewRunner creates a runner.
func NewRunner(rc RunnerConfig) *Runner {
	r := &Runner{out: rc.Out, errOut: rc.ErrOut, getenv: rc.Getenv, driver: rc.Driver}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.errOut == nil {
		r.errOut = os.Stderr
	}
	if r.getenv == nil {
		r.getenv = os.Getenv
	}
	if r.driver == nil {
		r.driver = tui.NewSurveyDriver(r.out)
	}
	return r
}

// Before loads configuration and builds the logger shared by every command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	cfg.ApplyEnv(r.getenv)
	if level := strings.TrimSpace(cmd.String("log-level")); level != "" {
		cfg.Log.Level = level
	}

	logger, err := logging.New(r.errOut, cfg.Log)
	if err != nil {
		return ctx, err
	}
	r.cfg = cfg
	r.logger = logger
	return ctx, nil
}

// Serve runs the page server until interrupted. With api.mock set the
// in-memory media API is mounted under /api and the pages talk to it over
// the same listener.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.cfg
	if addr := strings.TrimSpace(cmd.String("addr")); addr != "" {
		cfg.Server.Addr = addr
	}
	if apiURL := strings.TrimSpace(cmd.String("api-url")); apiURL != "" {
		cfg.API.BaseURL = apiURL
		cfg.API.Mock = false
	}
	if dir := strings.TrimSpace(cmd.String("templates")); dir != "" {
		cfg.Server.TemplatesDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}

	options := []pages.Option{
		pages.WithLogger(logging.Component(r.logger, "pages")),
		pages.WithSite(pages.Site{Title: cfg.Site.Title, GtagID: cfg.Site.GtagID}),
		pages.WithSessions(r.sessions()),
		pages.WithTemplatesDir(cfg.Server.TemplatesDir, cfg.Server.Debug),
	}
	baseURL := cfg.API.BaseURL
	if cfg.API.Mock {
		api, root, err := r.mediaAPI()
		if err != nil {
			_ = ln.Close()
			return err
		}
		options = append(options, pages.WithMount(root+"/", api))
		baseURL = loopbackURL(ln.Addr()) + root
	}

	client, err := r.client(baseURL)
	if err != nil {
		_ = ln.Close()
		return err
	}
	server, err := pages.New(client, options...)
	if err != nil {
		_ = ln.Close()
		return err
	}

	r.logger.Info("listening", "addr", ln.Addr().String(), "api", baseURL, "mock", cfg.API.Mock)
	return r.serve(ctx, ln, server.Handler())
}

// API runs the in-memory media API on its own.
func (r *Runner) API(ctx context.Context, cmd *cli.Command) error {
	mux, root, err := r.mediaAPI(mediaapi.WithValidation(!cmd.Bool("no-validate")))
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cmd.String("addr"))
	if err != nil {
		return fmt.Errorf("listen %s: %w", cmd.String("addr"), err)
	}
	r.logger.Info("media api listening", "url", loopbackURL(ln.Addr())+root)
	return r.serve(ctx, ln, pages.Chain(mux, pages.RequestLogger(logging.Component(r.logger, "http"))))
}

// Edit walks the user through editing one media item with terminal
// prompts. The same controller as the web edit page decides what may be
// edited, saved and shown.
func (r *Runner) Edit(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return errors.New("edit: a media id is required")
	}
	subset, err := render.ParseFieldSubset(cmd.String("fields"))
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	cfg := r.cfg
	if apiURL := strings.TrimSpace(cmd.String("api-url")); apiURL != "" {
		cfg.API.BaseURL = apiURL
		cfg.API.Mock = false
	}
	baseURL := cfg.API.BaseURL
	if cfg.API.Mock {
		url, stop, err := r.startMockAPI()
		if err != nil {
			return err
		}
		defer stop()
		baseURL = url
	}

	client, err := r.client(baseURL)
	if err != nil {
		return err
	}

	queue := &flash.Queue{}
	var target string
	ctrl, err := edit.New(edit.Dependencies{
		Loader:    client.Media(),
		Navigator: edit.NavigatorFunc(func(path string) { target = path }),
		Messages:  queue,
		Ownership: ownership.ProfileChecker{Profiles: client},
	}, edit.WithLogger(logging.Component(r.logger, "edit")))
	if err != nil {
		return err
	}
	if err := ctrl.Load(ctx, id); err != nil {
		return err
	}

	renderer, err := tui.New(tui.WithPromptDriver(r.driver))
	if err != nil {
		return err
	}

	for {
		view := ctrl.View()
		if !view.ShowForm() {
			return r.driver.Info(ctx, view.Message)
		}
		opts := render.RenderOptions{Fields: subset, FormErrors: view.FormErrors}
		if err := renderer.Summary(ctx, view.Form, opts); err != nil {
			return err
		}

		choice, err := r.driver.Select(ctx, tui.SelectConfig{
			Message: "What next?",
			Options: editChoices,
		})
		if err != nil {
			return err
		}

		switch choice {
		case choiceEdit:
			if _, err := renderer.Prompt(ctx, ctrl.Props(), opts); err != nil {
				return err
			}
		case choiceSave:
			err := ctrl.Save(ctx)
			var failed *edit.SaveError
			if errors.As(err, &failed) {
				continue
			}
			if err != nil {
				return err
			}
			for _, message := range queue.Drain() {
				if err := r.driver.Info(ctx, message); err != nil {
					return err
				}
			}
			return r.driver.Info(ctx, "View it at "+target)
		case choiceCancel:
			return ctrl.Cancel()
		default:
			return fmt.Errorf("edit: unknown choice %d", choice)
		}
	}
}

// ConfigInit writes the example configuration.
func (r *Runner) ConfigInit(_ context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if err := config.WriteExample(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.out, "Configuration written to %s\n", path)
	return err
}

// ConfigShow prints the example configuration.
func (r *Runner) ConfigShow(context.Context, *cli.Command) error {
	_, err := r.out.Write(config.Example())
	return err
}

func (r *Runner) client(baseURL string) (*apiclient.Client, error) {
	return apiclient.New(baseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: r.cfg.API.Timeout}),
		apiclient.WithLogger(logging.Component(r.logger, "apiclient")),
	)
}

func (r *Runner) sessions() *flash.Sessions {
	sessions := flash.NewSessions(flash.NewStore(flash.WithTTL(r.cfg.Flash.TTL)), r.cfg.Flash.CookieName)
	sessions.Secure = r.cfg.Flash.Secure
	return sessions
}

// startMockAPI serves the in-memory API on a loopback port for the length
// of one command.
func (r *Runner) startMockAPI() (string, func(), error) {
	mux, root, err := r.mediaAPI()
	if err != nil {
		return "", nil, err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("listen for in-memory api: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.logger.Error("in-memory api", "err", err)
		}
	}()
	return loopbackURL(ln.Addr()) + root, func() { _ = srv.Close() }, nil
}

// mediaAPI builds a mux serving a fresh copy of the in-memory API and
// returns it with the API root path.
func (r *Runner) mediaAPI(fns ...mediaapi.OptionFn) (*http.ServeMux, string, error) {
	fns = append([]mediaapi.OptionFn{mediaapi.WithLogger(logging.Component(r.logger, "mediaapi"))}, fns...)
	component, err := mediaapi.New(fns...)
	if err != nil {
		return nil, "", err
	}
	mux := http.NewServeMux()
	root, err := component.RegisterRoutes(mux, "")
	if err != nil {
		return nil, "", err
	}
	return mux, root, nil
}

// serve runs handler on ln until ctx is done or the process is interrupted,
// then shuts down within the configured grace period.
func (r *Runner) serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	r.logger.Info("shutting down", "grace", r.cfg.Server.ShutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.cfg.Server.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loopbackURL turns a listener address into a URL reachable from this
// process. Wildcard hosts become 127.0.0.1.
func loopbackURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}
