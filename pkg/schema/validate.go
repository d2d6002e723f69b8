package schema

// Validate checks data against tmpl and reports the first divergence.
//
// On success it returns (true, ""). On failure the message is either
// "mismatched keys: <path>" or "bad type: <path>".
func Validate(data *Record, tmpl *Template) (bool, string) {
	if err := Check(data, tmpl); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// Check is the error-returning form of Validate. It returns nil or a
// *ValidationError.
func Check(data *Record, tmpl *Template) error {
	if verr := walk(data, tmpl, ""); verr != nil {
		return verr
	}
	return nil
}

// walk compares one level. Key sets are compared before any value, so a
// record that is both missing and carrying extra keys only ever reports the
// missing one.
func walk(data *Record, tmpl *Template, path string) *ValidationError {
	if key, ok := firstKeyMismatch(data, tmpl); ok {
		return &ValidationError{Kind: FailureMismatchedKeys, Path: joinPath(path, key)}
	}

	var failure *ValidationError
	tmpl.each(func(key string, f Field) {
		if failure != nil {
			return
		}
		here := joinPath(path, key)
		value, _ := data.Get(key)

		if f.IsNode() {
			sub, ok := value.(*Record)
			if !ok || sub == nil {
				failure = &ValidationError{Kind: FailureBadType, Path: here}
				return
			}
			failure = walk(sub, f.sub, here)
			return
		}

		if !f.kind.Accepts(value) {
			failure = &ValidationError{Kind: FailureBadType, Path: here}
		}
	})
	return failure
}

// firstKeyMismatch returns the first template key missing from data, or
// failing that the first data key the template does not declare.
func firstKeyMismatch(data *Record, tmpl *Template) (string, bool) {
	for _, key := range tmpl.Keys() {
		if !data.Has(key) {
			return key, true
		}
	}
	for _, key := range data.Keys() {
		if !tmpl.Has(key) {
			return key, true
		}
	}
	return "", false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
