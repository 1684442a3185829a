// Package ontic describes object types with schemas and checks both the
// schemas and the objects built from them.
//
// A SchemaType maps property names to PropertySchema values. A PropertySchema
// has ten recognized keys (type, required, default, enum, min, max, regex,
// member_type, member_min, member_max); anything else is dropped on
// construction.
//
//   - PerfectPropertySchema and PerfectSchema fill in the canonical form:
//     every key present, required defaulting to false, the rest to nil.
//   - ValidateSchema checks every property schema against the meta-schema
//     returned by MetaSchema and reports all violations at once.
//   - CreateObjectType, PerfectObject, ValidateObject and ValidateValue do the
//     same for instances.
//
// Validation either fails with a *ValidationError or, with
// ValidateOpt{ReturnErrors: true}, returns the messages. Missing or
// wrong-kind arguments are *ArgumentError values matching ErrArgument.
//
// Schemas and objects load from JSON or YAML documents with key order kept
// (LoadSchema, LoadObject) and encode back with Encode.
//
// Typical usage:
//
//	s, err := ontic.LoadSchemaYAML(data)
//	if err := ontic.PerfectSchema(s); err != nil { ... }
//	if _, err := ontic.ValidateSchema(s); err != nil {
//	    ve, _ := ontic.AsValidationError(err)
//	    for _, msg := range ve.ValidationErrors() { ... }
//	}
package ontic
