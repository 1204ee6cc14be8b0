package archivecrypt

import "maps"

// EncryptFields returns a shallow copy of record with each named field
// encrypted. Only non-empty string-typed fields are touched; anything else
// passes through unchanged. The first encryption failure aborts the call,
// since a half-encrypted record must never reach storage.
func (s *Session) EncryptFields(record map[string]any, fields []string) (map[string]any, error) {
	out := maps.Clone(record)
	for _, name := range fields {
		value, ok := out[name].(string)
		if !ok || value == "" {
			continue
		}
		encrypted, err := s.EncryptField(value)
		if err != nil {
			return nil, err
		}
		out[name] = encrypted
	}
	return out, nil
}

// DecryptFields returns a shallow copy of record with each named field
// decrypted.
//
// Unlike EncryptFields it never fails the whole record: a field that cannot
// be decrypted is logged as a warning and left at its stored value, so one
// corrupted column cannot make an entire record unreadable. Legacy plaintext
// fields pass through untouched via the codec's passthrough policy.
func (s *Session) DecryptFields(record map[string]any, fields []string) map[string]any {
	out := maps.Clone(record)
	for _, name := range fields {
		value, ok := out[name].(string)
		if !ok || value == "" {
			continue
		}
		decrypted, err := s.DecryptField(value)
		if err != nil {
			s.logger.Warn("failed to decrypt field, leaving stored value",
				"field", name,
				"error", err,
			)
			continue
		}
		out[name] = decrypted
	}
	return out
}
