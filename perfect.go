package ontic

// PerfectPropertySchema brings candidate into canonical form in place: every
// missing recognized key is inserted with its default and present values are
// normalized again. Running it twice is the same as running it once.
func PerfectPropertySchema(candidate *PropertySchema) error {
	if candidate == nil {
		return argError("candidate_property_schema", `"candidate_property_schema" must be provided.`)
	}
	candidate.fill()
	return nil
}

// PerfectSchema perfects every property schema of candidate in place. Nil
// entries are replaced by canonical empty schemas; property order is kept.
func PerfectSchema(candidate *SchemaType) error {
	if candidate == nil {
		return errSchemaMissing()
	}
	for _, name := range candidate.Keys() {
		ps, _ := candidate.Get(name)
		if ps == nil {
			candidate.Set(name, NewPropertySchema())
			continue
		}
		if err := PerfectPropertySchema(ps); err != nil {
			return err
		}
	}
	return nil
}
