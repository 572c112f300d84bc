// Package validator holds the declarative field rules of the signup form and
// the pure evaluation logic that checks a single value against them.
//
// The package knows nothing about documents, events or HTTP. Cross-field
// constraints (a confirmation that must equal another field) are resolved
// through a caller supplied ValueLookup, so the evaluator can be driven by a
// live document, a decoded request or a plain map in tests.
//
// # Rule table
//
// A Table is an immutable, ordered set of FieldRule values. Default returns
// the built-in table for the six signup fields (username, email, password,
// confirmPassword, phone, terms) in definition order:
//
//	rules := validator.Default()
//	res := rules.Validate(validator.Username, "ab", nil)
//	// res.Valid == false
//	// res.Error == "Username must be 3-20 characters and contain only letters, numbers, and underscores"
//
// # Evaluation order
//
// Validate applies checks in a fixed order and the first failure wins:
//
//  1. blank value (after trimming): required fields fail with a synthesized
//     "<Field Name> is required" message, optional fields pass immediately
//  2. minimum length
//  3. maximum length
//  4. pattern
//  5. equality with the MatchField value returned by the lookup
//
// Every failure after the blank check reports the rule's ErrorMessage
// verbatim. Field names missing from the table always validate.
//
// # Whole-form evaluation
//
// ValidateAll runs every rule against a lookup and aggregates the failures
// into ValidationErrors, which implements error:
//
//	err := rules.ValidateAll(validator.MapLookup(values))
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        fmt.Println(field, verrs.Get(field))
//	    }
//	}
package validator
