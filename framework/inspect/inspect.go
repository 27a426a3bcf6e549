// Package inspect serves a read-mostly JSON view of a container: its
// descriptors in registration order and which singletons are built.
//
//	GET  /beans                    list (optional ?scope=singleton|prototype)
//	GET  /beans/{id}               one descriptor
//	POST /beans/{id}/instantiate   run Get and report the instance type
package inspect

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/container"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/routing"
	"github.com/km-arc/go-beans/framework/validation"
)

// Handler serves the inspection endpoints of one container.
type Handler struct {
	container *container.Container
	logger    *zap.Logger
}

// New creates a handler for c. A nil logger discards log output.
func New(c *container.Container, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{container: c, logger: logger}
}

// Routes mounts the handlers under /beans.
func (h *Handler) Routes(r *routing.Router) {
	r.Prefix("/beans", func(b *routing.Router) {
		b.Get("/", h.List)
		b.Get("/{id}", h.Show)
		b.Post("/{id}/instantiate", h.Instantiate)
	})
}

// ── Views ─────────────────────────────────────────────────────────────────────

// ValueView is a constructor argument or property. Exactly one of Ref and
// Value is meaningful.
type ValueView struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Ref   string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// BeanView describes one descriptor and whether its singleton is built.
type BeanView struct {
	ID              string      `json:"id" yaml:"id"`
	Class           string      `json:"class" yaml:"class"`
	Scope           string      `json:"scope" yaml:"scope"`
	Instantiated    bool        `json:"instantiated" yaml:"instantiated"`
	Scanned         bool        `json:"scanned" yaml:"scanned"`
	Annotations     []string    `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	ConstructorArgs []ValueView `json:"constructor_args,omitempty" yaml:"constructor_args,omitempty"`
	Properties      []ValueView `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// ListView is the body of GET /beans.
type ListView struct {
	Container string     `json:"container" yaml:"container"`
	Policy    string     `json:"singleton_policy" yaml:"singleton_policy"`
	Beans     []BeanView `json:"beans" yaml:"beans"`
}

// InstanceView is the body of POST /beans/{id}/instantiate.
type InstanceView struct {
	ID           string `json:"id" yaml:"id"`
	Type         string `json:"type" yaml:"type"`
	Instantiated bool   `json:"instantiated" yaml:"instantiated"`
}

// Beans lists the descriptors in registration order, all of them when scope
// is empty.
func (h *Handler) Beans(scope beans.Scope) ListView {
	out := ListView{
		Container: h.container.ID(),
		Policy:    h.container.Policy().String(),
		Beans:     []BeanView{},
	}
	for _, d := range h.container.Registry().Descriptors() {
		if scope != beans.ScopeDefault && d.EffectiveScope() != scope {
			continue
		}
		out.Beans = append(out.Beans, h.view(d))
	}
	return out
}

// Describe returns the view of one descriptor.
func (h *Handler) Describe(id string) (BeanView, error) {
	d, err := h.container.Registry().Get(id)
	if err != nil {
		return BeanView{}, err
	}
	return h.view(d), nil
}

func (h *Handler) view(d *beans.Descriptor) BeanView {
	v := BeanView{
		ID:           d.ID,
		Class:        d.ClassName,
		Scope:        string(d.EffectiveScope()),
		Instantiated: h.container.Resolved(d.ID),
		Scanned:      d.Metadata != nil,
	}
	if d.Metadata != nil {
		v.Annotations = d.Metadata.AnnotationTypes()
	}
	for _, a := range d.ConstructorArgs {
		vv := valueView(a.Value)
		vv.Name, vv.Type = a.Name, a.Type
		v.ConstructorArgs = append(v.ConstructorArgs, vv)
	}
	for _, p := range d.Properties {
		vv := valueView(p.Value)
		vv.Name = p.Name
		v.Properties = append(v.Properties, vv)
	}
	return v
}

func valueView(spec beans.ValueSpec) ValueView {
	switch s := spec.(type) {
	case beans.Literal:
		return ValueView{Value: s.Text}
	case beans.Reference:
		return ValueView{Ref: s.BeanID}
	case nil:
		return ValueView{}
	default:
		return ValueView{Value: s.String()}
	}
}

// ── Handlers ──────────────────────────────────────────────────────────────────

var listRules = validation.Rules{"scope": "sometimes|in:singleton,prototype"}

// List handles GET /beans. An invalid ?scope is answered with 422.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	v := validation.Make(req.QueryMap(), listRules)
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}
	res.Success(h.Beans(beans.Scope(req.Query("scope"))))
}

// Show handles GET /beans/{id}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	v, err := h.Describe(req.RouteParam("id"))
	if err != nil {
		res.FromError(err)
		return
	}
	res.Success(v)
}

// Instantiate handles POST /beans/{id}/instantiate: it runs Get and reports
// the dynamic type of the result.
func (h *Handler) Instantiate(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	id := req.RouteParam("id")

	inst, err := h.container.GetContext(r.Context(), id)
	if err != nil {
		h.logger.Warn("instantiate failed", zap.String("bean", id), zap.Error(err))
		res.FromError(err)
		return
	}
	res.Success(InstanceView{
		ID:           id,
		Type:         fmt.Sprintf("%T", inst),
		Instantiated: h.container.Resolved(id),
	})
}
