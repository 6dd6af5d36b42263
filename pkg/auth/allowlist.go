package auth

import (
	"errors"
	"strings"
)

// ErrAccessDenied is returned when a signed-in email is not on the allow-list.
// It is raised before any account row is written, so a denied sign-in leaves
// no partial state behind.
var ErrAccessDenied = errors.New("access denied: email is not authorized to use this app")

// AllowList is the set of emails permitted to create an account. It is parsed
// once from configuration at process start and passed around as a value; the
// check never reads process environment itself.
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList parses a comma-separated list of emails. Entries are trimmed
// and lower-cased; empty entries are dropped. An empty list means sign-up is
// unrestricted.
func NewAllowList(raw string) AllowList {
	emails := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		emails[entry] = struct{}{}
	}
	return AllowList{emails: emails}
}

// Allows reports whether the given email may create an account.
func (a AllowList) Allows(email string) bool {
	if len(a.emails) == 0 {
		return true
	}
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// IsEmpty reports whether the list places no restriction on sign-up.
func (a AllowList) IsEmpty() bool {
	return len(a.emails) == 0
}
