package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/class"
	"github.com/km-arc/go-beans/framework/discovery"
)

type accountDao struct{}
type itemDao struct{}
type petStore struct{}
type helper struct{}

func table() *class.Table {
	return class.NewTable(
		class.Define[accountDao]("petstore.dao.AccountDao").
			Annotate(discovery.ComponentAnnotation, nil).
			Class(),
		class.Define[itemDao]("petstore.dao.ItemDao").
			Annotate(discovery.ComponentAnnotation, map[string]string{"value": "items"}).
			Annotate(discovery.ScopeAnnotation, map[string]string{"value": "prototype"}).
			Class(),
		class.Define[petStore]("petstore.service.PetStoreService").
			Annotate(discovery.ComponentAnnotation, map[string]string{"value": "petStore"}).
			Class(),
		class.Define[helper]("petstore.dao.Helper").Class(),
		class.Define[helper]("petstore.daoextra.URLDao").
			Annotate(discovery.ComponentAnnotation, nil).
			Class(),
	)
}

// ── Scan ──────────────────────────────────────────────────────────────────────

func TestScan_RegistersComponentsUnderPackage(t *testing.T) {
	reg := beans.NewRegistry()
	s := discovery.NewScanner(reg, table())

	found, err := s.Scan("petstore.dao")
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, []string{"accountDao", "items"}, reg.IDs())

	d, err := reg.Get("accountDao")
	require.NoError(t, err)
	assert.Equal(t, "petstore.dao.AccountDao", d.ClassName)
	assert.True(t, d.IsSingleton())
	require.NotNil(t, d.Metadata)
	assert.True(t, d.Metadata.HasAnnotation(discovery.ComponentAnnotation))
}

func TestScan_ScopeAnnotation(t *testing.T) {
	reg := beans.NewRegistry()
	_, err := discovery.NewScanner(reg, table()).Scan("petstore.dao")
	require.NoError(t, err)

	d, err := reg.Get("items")
	require.NoError(t, err)
	assert.Equal(t, beans.ScopePrototype, d.Scope)
}

func TestScan_CommaSeparatedPackagesAndDuplicates(t *testing.T) {
	reg := beans.NewRegistry()
	found, err := discovery.NewScanner(reg, table()).
		Scan("petstore.service, petstore.dao", "petstore.dao")
	require.NoError(t, err)

	assert.Len(t, found, 3)
	assert.Equal(t, []string{"petStore", "accountDao", "items"}, reg.IDs())
}

func TestScan_PackagePrefixMustEndAtSeparator(t *testing.T) {
	reg := beans.NewRegistry()
	_, err := discovery.NewScanner(reg, table()).Scan("petstore.daoextra")
	require.NoError(t, err)

	assert.Equal(t, []string{"URLDao"}, reg.IDs())
}

func TestScan_ScopedComponentKeepsDefaultName(t *testing.T) {
	tbl := class.NewTable(class.Define[helper]("shop.Cart").
		Annotate(discovery.ComponentAnnotation, nil).
		Annotate(discovery.ScopeAnnotation, map[string]string{"value": "prototype"}).
		Class())

	reg := beans.NewRegistry()
	_, err := discovery.NewScanner(reg, tbl).Scan("shop")
	require.NoError(t, err)

	assert.Equal(t, []string{"cart"}, reg.IDs())
	d, err := reg.Get("cart")
	require.NoError(t, err)
	assert.True(t, d.IsPrototype())
}

func TestScan_InvalidScope(t *testing.T) {
	tbl := class.NewTable(class.Define[helper]("bad.Thing").
		Annotate(discovery.ComponentAnnotation, nil).
		Annotate(discovery.ScopeAnnotation, map[string]string{"value": "session"}).
		Class())

	reg := beans.NewRegistry()
	_, err := discovery.NewScanner(reg, tbl).Scan("bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid scope "session"`)
	assert.Zero(t, reg.Len())
}

type fixedNames struct{}

func (fixedNames) GenerateBeanName(d *beans.Descriptor, _ *beans.Registry) string {
	return "x-" + class.ShortName(d.ClassName)
}

func TestScan_CustomNameGenerator(t *testing.T) {
	reg := beans.NewRegistry()
	_, err := discovery.NewScanner(reg, table(), discovery.WithNameGenerator(fixedNames{})).
		Scan("petstore.service")
	require.NoError(t, err)
	assert.True(t, reg.Exists("x-PetStoreService"))
}

func TestScan_NothingMatches(t *testing.T) {
	reg := beans.NewRegistry()
	found, err := discovery.NewScanner(reg, table()).Scan("", "elsewhere")
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Zero(t, reg.Len())
}

// ── Names ─────────────────────────────────────────────────────────────────────

func TestAnnotationBeanNameGenerator(t *testing.T) {
	tests := []struct {
		name string
		md   *beans.AnnotationMetadata
		want string
	}{
		{
			name: "short class name decapitalised",
			md:   &beans.AnnotationMetadata{ClassName: "petstore.dao.AccountDao"},
			want: "accountDao",
		},
		{
			name: "leading acronym kept",
			md:   &beans.AnnotationMetadata{ClassName: "petstore.dao.URLDao"},
			want: "URLDao",
		},
		{
			name: "explicit value",
			md: &beans.AnnotationMetadata{
				ClassName:   "petstore.service.PetStoreService",
				Annotations: []beans.Annotation{{Type: "Component", Attributes: map[string]string{"value": "petStore"}}},
			},
			want: "petStore",
		},
		{
			name: "only the component value names the bean",
			md: &beans.AnnotationMetadata{
				ClassName: "a.B",
				Annotations: []beans.Annotation{
					{Type: "Component", Attributes: map[string]string{"value": ""}},
					{Type: "Named", Attributes: map[string]string{"value": "second"}},
				},
			},
			want: "b",
		},
		{
			name: "scope value is not an id",
			md: &beans.AnnotationMetadata{
				ClassName: "petstore.service.Cart",
				Annotations: []beans.Annotation{
					{Type: "Component"},
					{Type: "Scope", Attributes: map[string]string{"value": "prototype"}},
				},
			},
			want: "cart",
		},
		{
			name: "explicit value with scope",
			md: &beans.AnnotationMetadata{
				ClassName: "petstore.dao.ItemDao",
				Annotations: []beans.Annotation{
					{Type: "Component", Attributes: map[string]string{"value": "items"}},
					{Type: "Scope", Attributes: map[string]string{"value": "prototype"}},
				},
			},
			want: "items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := beans.NewScannedDescriptor(tt.md)
			got := discovery.AnnotationBeanNameGenerator{}.GenerateBeanName(d, beans.NewRegistry())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecapitalize(t *testing.T) {
	for in, want := range map[string]string{
		"":          "",
		"A":         "a",
		"Ab":        "ab",
		"AB":        "AB",
		"FooBar":    "fooBar",
		"fooBar":    "fooBar",
		"Éclair":    "éclair",
		"X1":        "x1",
		"ItemDao":   "itemDao",
		"HTTPProxy": "HTTPProxy",
	} {
		assert.Equal(t, want, discovery.Decapitalize(in), in)
	}
}

func TestDecapitalize_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[A-Za-z][A-Za-z0-9]{0,12}`).Draw(rt, "name")
		once := discovery.Decapitalize(s)
		if twice := discovery.Decapitalize(once); twice != once {
			rt.Fatalf("Decapitalize(%q) = %q, again = %q", s, once, twice)
		}
	})
}

func TestSplitPackages(t *testing.T) {
	assert.Equal(t, []string{"a.b", "c", "d"}, discovery.SplitPackages(" a.b ,c", "", "d,"))
	assert.Nil(t, discovery.SplitPackages())
}
