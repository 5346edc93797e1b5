// Package domain contains core concepts of the chat system.
// No runtime, network, or UI logic should be added here.
package domain

import "strings"

// Username is displayed and routed in its original case but compared
// case-insensitively for uniqueness and lookup.
type Username string

// Key returns the canonical lowercase form used for comparisons.
func (u Username) Key() string {
	return strings.ToLower(string(u))
}

// Trim removes surrounding whitespace but keeps internal spaces.
func (u Username) Trim() Username {
	return Username(strings.TrimSpace(string(u)))
}
