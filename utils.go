package modgate

func hasChar(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}

// IsGovID reports whether keyID looks like a moderator identity address.
func IsGovID(keyID string) bool {
	return len(keyID) == 42 && keyID[:3] == AddrHRPModerator && !hasChar(keyID, '.')
}

// IsContentHash reports whether s is a 64 character lowercase hex digest.
func IsContentHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// IsGSID reports whether keyID looks like a gate service address.
func IsGSID(keyID string) bool {
	return len(keyID) == 42 && keyID[:3] == AddrHRPService && !hasChar(keyID, '.')
}
