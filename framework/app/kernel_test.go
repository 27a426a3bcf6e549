package app_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/reader"
	"github.com/km-arc/go-beans/internal/petstore"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "petstore", Env: "testing"},
		Log:     config.LogConfig{Level: "error"},
		Beans:   config.BeansConfig{Definitions: []string{"*.yaml"}, SingletonPolicy: "serialize"},
		Inspect: config.InspectConfig{Addr: "127.0.0.1:0"},
	}
}

func newApp(t *testing.T, cfg *config.Config) *app.Application {
	t.Helper()
	a, err := app.New(cfg,
		app.WithLogger(zap.NewNop()),
		app.WithClasses(petstore.Classes()...),
		app.WithDefinitionFS(petstore.Definitions))
	require.NoError(t, err)
	return a
}

func TestNew_RegistersDefinitions(t *testing.T) {
	a := newApp(t, testConfig())

	assert.Equal(t, []string{"accountDao", "itemDao", "petStore", "cart"}, a.Registry().IDs())
	assert.False(t, a.Providers.Booted())
}

func TestGetBean_BootsOnDemand(t *testing.T) {
	a := newApp(t, testConfig())

	inst, err := a.GetBean(context.Background(), "petStore")
	require.NoError(t, err)
	assert.True(t, a.Providers.Booted())

	store, ok := inst.(*petstore.PetStoreService)
	require.True(t, ok)
	assert.Equal(t, "liuxin", store.Owner)

	_, err = a.GetBean(context.Background(), "nope")
	assert.ErrorIs(t, err, beans.ErrNotFound)
}

func TestNew_ComponentScan(t *testing.T) {
	cfg := testConfig()
	cfg.Beans.Definitions = nil
	cfg.Beans.ScanPackages = []string{petstore.ScanPackage}
	a := newApp(t, cfg)

	cart, err := container.Resolve[*petstore.Cart](a.Container, "cart")
	require.NoError(t, err)
	assert.NotNil(t, cart.Store, "autowiring is enabled by default")
}

func TestNew_InvalidPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Beans.SingletonPolicy = "sometimes"
	_, err := app.New(cfg, app.WithLogger(zap.NewNop()))
	assert.Error(t, err)
}

func TestNew_InvalidDefinitions(t *testing.T) {
	cfg := testConfig()
	cfg.Beans.Definitions = []string{"missing/*.yaml"}
	_, err := app.New(cfg, app.WithLogger(zap.NewNop()), app.WithDefinitionFS(petstore.Definitions))
	assert.ErrorIs(t, err, reader.ErrDefinitionStore)
}

func TestBoot_Eager(t *testing.T) {
	cfg := testConfig()
	cfg.Beans.Eager = true
	a := newApp(t, cfg)

	require.NoError(t, a.Boot())
	require.NoError(t, a.Boot())
	assert.True(t, a.Resolved("petStore"))
	assert.False(t, a.Resolved("cart"))
}

func TestBoot_EagerFailureIsKept(t *testing.T) {
	cfg := testConfig()
	cfg.Beans.Eager = true
	defs := fstest.MapFS{"broken.yaml": &fstest.MapFile{Data: []byte(
		"beans:\n  - id: broken\n    class: petstore.Missing\n")}}
	a, err := app.New(cfg, app.WithLogger(zap.NewNop()), app.WithDefinitionFS(defs))
	require.NoError(t, err)

	first := a.Boot()
	require.ErrorIs(t, first, beans.ErrBeanCreation)
	assert.Equal(t, first, a.Boot())

	_, err = a.GetBean(context.Background(), "broken")
	assert.Equal(t, first, err)
}

func TestBoot_RedundantPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Beans.SingletonPolicy = "redundant"
	a := newApp(t, cfg)
	assert.Equal(t, container.AllowRedundantConstruction, a.Policy())
}

func TestServe_StopsWithContext(t *testing.T) {
	a := newApp(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	assert.True(t, a.Providers.Booted())
}

func TestServe_BadAddress(t *testing.T) {
	cfg := testConfig()
	cfg.Inspect.Addr = "256.256.256.256:99999"
	a := newApp(t, cfg)

	err := a.Serve(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}

func TestEnvironment(t *testing.T) {
	a := newApp(t, testConfig())
	assert.Equal(t, "testing", a.Environment())
	assert.False(t, a.IsProduction())
	assert.False(t, a.IsDebug())
}
