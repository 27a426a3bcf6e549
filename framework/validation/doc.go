// Package validation checks flat string maps against pipe-separated rules.
// The reader uses it to reject malformed bean definitions before anything
// is registered.
//
// # Basic Usage
//
//	v := validation.Make(map[string]string{
//	    "id":    "petStore",
//	    "class": "petstore.service.PetStoreService",
//	}, validation.Rules{
//	    "id":    "required|identifier",
//	    "class": "required|identifier",
//	    "scope": "sometimes|in:singleton,prototype",
//	})
//
//	if err := v.Validate(); err != nil {
//	    // err is *Errors with Bag map[string][]string
//	}
//
// # Available Rules
//
// Presence rules:
//   - required                 field must be present and non-blank
//   - sometimes                skip the remaining rules if the field is absent
//   - required_without:other   field must be present unless other is
//   - prohibited_with:other    field must be absent if other is present
//
// Value rules:
//   - in:a,b,c
//   - identifier               bean id or dotted class name
//
// Rules for one field run in order and stop at the first failure. Fields are
// checked in sorted order so messages are deterministic.
package validation
