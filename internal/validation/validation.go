// Package validation holds the pure input validators shared by the auth and
// task services. Every validator returns (ok, message) and never panics.
package validation

import (
	"fmt"
	"strings"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 128
	minNameLen     = 2
	maxNameLen     = 100
	maxTitleLen    = 255
)

// Email checks for a local@domain.tld shape: non-empty local part and domain,
// no whitespace or extra @, and at least one dot in the domain.
func Email(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	// Dot must exist and split the domain into non-empty parts
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return true
}

// Password checks length bounds only; complexity rules are intentionally not
// enforced.
func Password(password string) (bool, string) {
	if len(password) < minPasswordLen {
		return false, fmt.Sprintf("Password must be at least %d characters long", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return false, fmt.Sprintf("Password must be less than %d characters", maxPasswordLen)
	}
	return true, ""
}

// Name checks the trimmed display name length.
func Name(name string) (bool, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, "Name is required"
	}
	if len(trimmed) < minNameLen {
		return false, fmt.Sprintf("Name must be at least %d characters long", minNameLen)
	}
	if len(trimmed) > maxNameLen {
		return false, fmt.Sprintf("Name must be less than %d characters", maxNameLen)
	}
	return true, ""
}

// TaskTitle checks the trimmed task title length.
func TaskTitle(title string) (bool, string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return false, "Task title is required"
	}
	if len(trimmed) > maxTitleLen {
		return false, fmt.Sprintf("Task title must be less than %d characters", maxTitleLen)
	}
	return true, ""
}
