package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/class"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/inspect"
	"github.com/km-arc/go-beans/framework/logging"
	"github.com/km-arc/go-beans/framework/providers"
	"github.com/km-arc/go-beans/framework/routing"
)

// Application is the top-level application context. It embeds the
// Container so user code can call app.Get and container.Resolve directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
	Config    *config.Config
	Logger    *zap.Logger
}

// Option configures an Application.
type Option func(*options)

type options struct {
	logger      *zap.Logger
	classes     []*class.Class
	definitions fs.FS
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClasses registers classes before any definitions are read.
func WithClasses(classes ...*class.Class) Option {
	return func(o *options) { o.classes = append(o.classes, classes...) }
}

// WithDefinitionFS resolves cfg.Beans.Definitions as glob patterns inside
// fsys instead of on disk.
func WithDefinitionFS(fsys fs.FS) Option {
	return func(o *options) { o.definitions = fsys }
}

// New creates the application and registers the providers the
// configuration asks for: classes, definition files, component scanning and,
// with BEANS_EAGER, eager singletons. Call Boot before serving.
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		if logger, err = logging.New(cfg); err != nil {
			return nil, err
		}
	}

	policy, err := container.ParseSingletonPolicy(cfg.Beans.SingletonPolicy)
	if err != nil {
		return nil, err
	}

	c := container.New(beans.NewRegistry(), class.NewTable(),
		container.WithLogger(logger),
		container.WithSingletonPolicy(policy))
	c.AddPostProcessor(container.NewAutowiredProcessor(c))

	a := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		Config:    cfg,
		Logger:    logger,
	}

	// Classes first, then descriptor sources, eager creation last.
	if err := a.Register(&providers.ClassProvider{Classes: o.classes}); err != nil {
		return nil, err
	}
	if len(cfg.Beans.Definitions) > 0 {
		if err := a.Register(&providers.DefinitionFileProvider{
			Files:  cfg.Beans.Definitions,
			FS:     o.definitions,
			Logger: logger,
		}); err != nil {
			return nil, err
		}
	}
	if len(cfg.Beans.ScanPackages) > 0 {
		if err := a.Register(&providers.ComponentScanProvider{
			Packages: cfg.Beans.ScanPackages,
			Logger:   logger,
		}); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers. With BEANS_EAGER every
// singleton is built here. Later calls return the first call's error.
func (a *Application) Boot() error {
	if a.Providers.Booted() {
		return a.Providers.Err()
	}
	if a.Config.Beans.Eager {
		if err := a.Register(&providers.EagerSingletonProvider{}); err != nil {
			return err
		}
	}
	if err := a.Providers.Boot(); err != nil {
		return err
	}
	a.Logger.Info("application booted",
		zap.String("app", a.Config.App.Name),
		zap.String("env", a.Config.App.Env),
		zap.String("container", a.ID()),
		zap.Int("beans", a.Registry().Len()),
		zap.Stringer("singleton_policy", a.Policy()))
	return nil
}

// GetBean boots the application if needed and returns the bean.
func (a *Application) GetBean(ctx context.Context, id string) (any, error) {
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a.GetContext(ctx, id)
}

// Router returns a router serving the inspection endpoints.
func (a *Application) Router() *routing.Router {
	r := routing.New(a.Logger)
	inspect.New(a.Container, a.Logger).Routes(r)
	return r
}

// Serve boots the application (if needed) and runs the inspection server on
// INSPECT_ADDR until ctx is done.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.Boot(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.Config.Inspect.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.Logger.Info("inspection server listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("inspection server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		a.Logger.Info("inspection server stopped")
		return nil
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsProduction() bool  { return a.Config.IsProduction() }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
