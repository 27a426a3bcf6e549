package beans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/beans"
)

func TestDescriptor_DefaultScopeIsSingleton(t *testing.T) {
	d := beans.NewDescriptor("petStore", "petstore.service.PetStoreService")

	assert.True(t, d.IsSingleton())
	assert.False(t, d.IsPrototype())
	assert.Equal(t, beans.ScopeDefault, d.Scope)
	assert.Equal(t, beans.ScopeSingleton, d.EffectiveScope())
}

func TestDescriptor_PrototypeScope(t *testing.T) {
	d := beans.NewDescriptor("prototype", "petstore.service.Prototype")
	d.Scope = beans.ScopePrototype

	assert.False(t, d.IsSingleton())
	assert.True(t, d.IsPrototype())
	assert.Equal(t, beans.ScopePrototype, d.EffectiveScope())
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    beans.Scope
		wantErr bool
	}{
		{"", beans.ScopeDefault, false},
		{"singleton", beans.ScopeSingleton, false},
		{"Prototype", beans.ScopePrototype, false},
		{" prototype ", beans.ScopePrototype, false},
		{"request", beans.ScopeDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := beans.ParseScope(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptor_SetProperty_KeepsInsertionOrder(t *testing.T) {
	d := beans.NewDescriptor("a", "x.Foo")
	d.SetProperty("b", beans.Literal{Text: "1"})
	d.SetProperty("a", beans.Reference{BeanID: "dep"})
	d.SetProperty("b", beans.Literal{Text: "2"})

	require.Len(t, d.Properties, 2)
	assert.Equal(t, "b", d.Properties[0].Name)
	assert.Equal(t, beans.Literal{Text: "2"}, d.Properties[0].Value)
	assert.Equal(t, "a", d.Properties[1].Name)

	v, ok := d.Property("a")
	assert.True(t, ok)
	assert.Equal(t, beans.Reference{BeanID: "dep"}, v)

	_, ok = d.Property("missing")
	assert.False(t, ok)
}

func TestNewScannedDescriptor(t *testing.T) {
	md := &beans.AnnotationMetadata{
		ClassName: "petstore.dao.ItemDao",
		Annotations: []beans.Annotation{
			{Type: "Component", Attributes: map[string]string{"value": "items"}},
		},
	}
	d := beans.NewScannedDescriptor(md)

	assert.Equal(t, "petstore.dao.ItemDao", d.ClassName)
	assert.Empty(t, d.ID)
	assert.Same(t, md, d.Metadata)
	assert.True(t, md.HasAnnotation("Component"))
	assert.False(t, md.HasAnnotation("Scope"))
	assert.Equal(t, []string{"Component"}, md.AnnotationTypes())
	assert.Equal(t, "items", md.Attributes("Component")["value"])
	assert.Nil(t, md.Attributes("Scope"))
}
