package profile

import (
	"errors"
	"fmt"
	"regexp"
)

// Profile names become directory names under ~/.kitwit/profiles, so the
// charset is deliberately narrow.
const maxNameLen = 64

var nameRegexp = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidateName checks that name is usable as a profile identifier:
// non-empty, at most 64 characters, lowercase letters, digits, '-' and
// '_' only.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("profile name is empty")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("profile name %q exceeds %d characters", name, maxNameLen)
	}
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("profile name %q may only contain lowercase letters, digits, '-' and '_'", name)
	}
	return nil
}
