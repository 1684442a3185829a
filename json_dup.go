package ontic

// DetectDuplicateKeys reports every duplicated mapping key of a JSON or YAML
// document without failing on the first one. maxIssues < 0 means unlimited.
// Syntax errors are returned as Issues with CodeParseError.
func DetectDuplicateKeys(data []byte, f Format, maxIssues int) (Issues, error) {
	var iss Issues
	opt := LoadOpt{
		Strictness: Strictness{OnDuplicateKey: Warn},
		OnWarn: func(is Issue) {
			if maxIssues < 0 || len(iss) < maxIssues {
				iss = AppendIssues(iss, is)
			}
		},
	}
	if _, err := decodeDocument(data, f, opt); err != nil {
		return nil, err
	}
	return iss, nil
}
