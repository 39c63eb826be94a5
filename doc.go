// Package orderform provides:
//
// - The order submission model: a Contact Preference tag and one variant per tag
// - A stable error model via FieldErrors (JSON Pointer, code, message)
// - The Schema interface implemented by the dsl package
// - Raw candidate decoding from JSON and YAML
//
// Design policy:
// - Keep only the shared model in the root package.
// - Place the schema DSL under dsl/, the concrete order schema under order/,
//   form state under form/, the phone list under fieldarray/ and the terminal UI under tui/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	raw, err := orderform.DecodeJSON(data)
//	sub, err := order.NewValidator().Validate(ctx, raw)
//	if fe, ok := orderform.AsFieldErrors(err); ok {
//	    // render fe
//	}
//
//	b, _ := json.Marshal(sub) // only the active variant's keys
package orderform
