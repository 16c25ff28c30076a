package domain

import "strings"

type Address string

func (a Address) Normalize() Address {
	return Address(strings.TrimSpace(string(a)))
}

// Key is the case-insensitive comparison form of a hex address.
func (a Address) Key() string {
	return strings.ToLower(strings.TrimSpace(string(a)))
}

func (a Address) IsZero() bool {
	return a.Key() == ""
}

func (a Address) Short() string {
	trimmed := string(a.Normalize())
	if len(trimmed) <= 12 {
		return trimmed
	}

	return trimmed[:6] + "…" + trimmed[len(trimmed)-4:]
}
