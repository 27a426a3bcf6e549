package validation

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation messages per field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the failing fields in sorted order.
func (e *Errors) Fields() []string {
	fields := make([]string, 0, len(e.Bag))
	for f := range e.Bag {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Error joins every message, fields in sorted order.
func (e *Errors) Error() string {
	var msgs []string
	for _, f := range e.Fields() {
		msgs = append(msgs, e.Bag[f]...)
	}
	return strings.Join(msgs, " ")
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"id": "required|identifier", "scope": "sometimes|in:singleton,prototype"}
type Rules map[string]string

// Validator validates a flat map of input values. A key missing from data is
// absent; a key mapped to "" is present but empty.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a new Validator.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	if !v.ran {
		v.validate()
		v.ran = true
	}
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// Validate returns the error bag as an error, or nil.
func (v *Validator) Validate() error {
	if v.Fails() {
		return v.errors
	}
	return nil
}

// ── Core validation loop ─────────────────────────────────────────────────────

type ruleFunc func(v *Validator, field, value, param string) (msg string, ok bool)

// skip stops a field's rule chain without recording an error.
const skip = "\x00skip"

var rules map[string]ruleFunc

func init() {
	rules = map[string]ruleFunc{
		"required":         required,
		"sometimes":        sometimes,
		"in":               in,
		"identifier":       identifier,
		"required_without": requiredWithout,
		"prohibited_with":  prohibitedWith,
	}
}

func (v *Validator) validate() {
	fields := make([]string, 0, len(v.rules))
	for f := range v.rules {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := v.data[field]
		for _, rule := range strings.Split(v.rules[field], "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			// in:a,b → name=in, param=a,b
			name, param, _ := strings.Cut(rule, ":")
			fn, ok := rules[name]
			if !ok {
				v.errors.add(field, fmt.Sprintf("Unknown rule %q on %s.", name, field))
				break
			}
			msg, ok := fn(v, field, value, param)
			if ok {
				continue
			}
			if msg != skip {
				v.errors.add(field, msg)
			}
			break // bail on the first failure
		}
	}
}

func (v *Validator) present(field string) bool {
	_, ok := v.data[field]
	return ok
}

// ── Rules ─────────────────────────────────────────────────────────────────────

func required(_ *Validator, field, value, _ string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("The %s field is required.", field), false
	}
	return "", true
}

// sometimes skips the remaining rules when the field is absent.
func sometimes(v *Validator, field, _, _ string) (string, bool) {
	if !v.present(field) {
		return skip, false
	}
	return "", true
}

func in(_ *Validator, field, value, param string) (string, bool) {
	if !slices.Contains(splitList(param), value) {
		return fmt.Sprintf("The selected %s is invalid.", field), false
	}
	return "", true
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_./$-]*$`)

// identifier accepts bean ids and dotted class names.
func identifier(_ *Validator, field, value, _ string) (string, bool) {
	if !identifierPattern.MatchString(value) {
		return fmt.Sprintf("The %s must be a valid identifier.", field), false
	}
	return "", true
}

// requiredWithout requires the field to be present when param is absent.
func requiredWithout(v *Validator, field, _, param string) (string, bool) {
	if !v.present(field) && !v.present(param) {
		return fmt.Sprintf("The %s field is required when %s is not present.", field, param), false
	}
	return "", true
}

// prohibitedWith rejects the field when param is present too.
func prohibitedWith(v *Validator, field, _, param string) (string, bool) {
	if v.present(field) && v.present(param) {
		return fmt.Sprintf("The %s field is prohibited when %s is present.", field, param), false
	}
	return "", true
}

func splitList(param string) []string {
	parts := strings.Split(param, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
