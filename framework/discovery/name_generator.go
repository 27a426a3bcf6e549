package discovery

import (
	"unicode"
	"unicode/utf8"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/class"
)

// NameGenerator derives the bean id for a scanned descriptor.
type NameGenerator interface {
	GenerateBeanName(d *beans.Descriptor, registry *beans.Registry) string
}

// AnnotationBeanNameGenerator takes the id from the "value" attribute of the
// class's Component annotation and falls back to the decapitalised short class name:
// "petstore.dao.AccountDao" → "accountDao", "petstore.dao.URLDao" stays
// "URLDao".
type AnnotationBeanNameGenerator struct{}

// GenerateBeanName implements NameGenerator.
func (AnnotationBeanNameGenerator) GenerateBeanName(d *beans.Descriptor, _ *beans.Registry) string {
	if name := nameFromAnnotations(d.Metadata); name != "" {
		return name
	}
	return Decapitalize(class.ShortName(d.ClassName))
}

// nameFromAnnotations returns the last non-empty "value" of a Component
// annotation. Other annotations use "value" for their own purposes.
func nameFromAnnotations(md *beans.AnnotationMetadata) string {
	if md == nil {
		return ""
	}
	var name string
	for _, a := range md.Annotations {
		if a.Type != ComponentAnnotation {
			continue
		}
		if v := a.Attributes[ValueAttribute]; v != "" {
			name = v
		}
	}
	return name
}

// Decapitalize lower-cases the first letter of s, unless the first two
// letters are both upper case.
func Decapitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	if second, _ := utf8.DecodeRuneInString(s[size:]); unicode.IsUpper(second) && unicode.IsUpper(first) {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}
