package petstore_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/discovery"
	"github.com/km-arc/go-beans/framework/reader"
	"github.com/km-arc/go-beans/internal/petstore"
)

func newContainer(t *testing.T) (*beans.Registry, *container.Container) {
	t.Helper()
	reg := beans.NewRegistry()
	c := container.New(reg, petstore.Table())
	c.AddPostProcessor(container.NewAutowiredProcessor(c))
	return reg, c
}

func TestDefinitions_Wiring(t *testing.T) {
	reg, c := newContainer(t)
	n, err := reader.New(reg).LoadFS(petstore.Definitions, "*.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	store, err := container.Resolve[*petstore.PetStoreService](c, "petStore")
	require.NoError(t, err)
	assert.Equal(t, "pet store v2 owned by liuxin (Liu Xin)", store.Describe())
	assert.Equal(t, "pet_items", store.ItemDao.Table)

	dao, err := c.Get("accountDao")
	require.NoError(t, err)
	assert.Same(t, dao, store.AccountDao)

	again, err := c.Get("petStore")
	require.NoError(t, err)
	assert.Same(t, store, again)
}

func TestDefinitions_PrototypeCart(t *testing.T) {
	reg, c := newContainer(t)
	_, err := reader.New(reg).LoadFS(petstore.Definitions, "*.yaml")
	require.NoError(t, err)

	first := container.MustResolve[*petstore.Cart](c, "cart")
	second := container.MustResolve[*petstore.Cart](c, "cart")
	assert.NotSame(t, first, second)
	assert.Same(t, first.Store, second.Store)

	require.NoError(t, first.Add("1"))
	assert.Equal(t, []string{"goldfish"}, first.Items)
	assert.Empty(t, second.Items)
	assert.Error(t, first.Add("99"))
}

func TestDefinitions_InvalidBean(t *testing.T) {
	reg, c := newContainer(t)
	_, err := reader.New(reg).Load("invalid.yaml", strings.NewReader(
		"beans:\n  - id: invalidBean\n    class: petstore.service.Nope\n"))
	require.NoError(t, err)

	_, err = c.Get("invalidBean")
	assert.ErrorIs(t, err, beans.ErrBeanCreation)
}

func TestComponentScan_Autowiring(t *testing.T) {
	reg, c := newContainer(t)
	found, err := discovery.NewScanner(reg, c.Classes()).Scan(petstore.ScanPackage)
	require.NoError(t, err)
	require.Len(t, found, 4)
	assert.Equal(t, []string{"accountDao", "itemDao", "petStore", "cart"}, reg.IDs())

	store, err := container.Resolve[*petstore.PetStoreService](c, "petStore")
	require.NoError(t, err)
	require.NotNil(t, store.AccountDao)
	require.NotNil(t, store.ItemDao)

	cart := container.MustResolve[*petstore.Cart](c, "cart")
	assert.Same(t, store, cart.Store)
	assert.NotSame(t, cart, container.MustResolve[*petstore.Cart](c, "cart"))
}
