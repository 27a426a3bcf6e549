package beans

// Annotation is a marker on a class with its attributes.
type Annotation struct {
	Type       string
	Attributes map[string]string
}

// AnnotationMetadata describes a scanned class.
type AnnotationMetadata struct {
	ClassName   string
	Annotations []Annotation
}

// AnnotationTypes returns the annotation type names in declaration order.
func (m *AnnotationMetadata) AnnotationTypes() []string {
	out := make([]string, 0, len(m.Annotations))
	for _, a := range m.Annotations {
		out = append(out, a.Type)
	}
	return out
}

// HasAnnotation reports whether the class carries an annotation of type t.
func (m *AnnotationMetadata) HasAnnotation(t string) bool {
	for _, a := range m.Annotations {
		if a.Type == t {
			return true
		}
	}
	return false
}

// Attributes returns the attributes of annotation t, or nil.
func (m *AnnotationMetadata) Attributes(t string) map[string]string {
	for _, a := range m.Annotations {
		if a.Type == t {
			return a.Attributes
		}
	}
	return nil
}
