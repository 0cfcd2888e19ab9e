// Package channel classifies channel names and validates the identifiers that
// end up inside signed messages.
//
// Colons and newlines are the field separators of the authorization
// string-to-sign ("socket_id:channel[:channel_data]"), so neither may appear in
// a socket id or a channel name. Both validators reject them anywhere in the
// input, not just at the edges.
package channel

import (
	"fmt"
	"regexp"
	"strings"
)

// Channel name prefixes with special semantics.
const (
	PrivatePrefix          = "private-"
	PresencePrefix         = "presence-"
	PrivateEncryptedPrefix = "private-encrypted-"
)

const (
	// MaxNameLength is the longest channel name accepted.
	MaxNameLength = 200

	// MaxTriggerChannels is the most channels a single event may target.
	MaxTriggerChannels = 100
)

// Kind is the access class of a channel, derived from its name.
type Kind int

const (
	Public Kind = iota
	Private
	Presence
	PrivateEncrypted
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Private:
		return "private"
	case Presence:
		return "presence"
	case PrivateEncrypted:
		return "private-encrypted"
	default:
		return "public"
	}
}

// Authorizable reports whether sockets need server authorization to join channels of this kind.
func (k Kind) Authorizable() bool {
	return k != Public
}

var (
	nameRe     = regexp.MustCompile(`^[-a-zA-Z0-9_=@,.;]+$`)
	socketIDRe = regexp.MustCompile(`^\d+\.\d+$`)
)

// KindOf classifies a channel name by prefix.
// "private-encrypted-" must be followed by at least one character; a bare
// "private-encrypted" is an ordinary private channel.
func KindOf(name string) Kind {
	switch {
	case IsEncrypted(name):
		return PrivateEncrypted
	case strings.HasPrefix(name, PresencePrefix):
		return Presence
	case strings.HasPrefix(name, PrivatePrefix):
		return Private
	default:
		return Public
	}
}

// IsEncrypted reports whether name denotes an end-to-end encrypted channel.
func IsEncrypted(name string) bool {
	return len(name) > len(PrivateEncryptedPrefix) && strings.HasPrefix(name, PrivateEncryptedPrefix)
}

// ValidateName checks length and character set of a channel name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidName, MaxNameLength)
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ValidateNames checks a list of trigger targets: 1..MaxTriggerChannels valid names.
func ValidateNames(names []string) error {
	if len(names) == 0 {
		return ErrNoChannels
	}
	if len(names) > MaxTriggerChannels {
		return fmt.Errorf("%w: %d given, at most %d allowed", ErrTooManyChannels, len(names), MaxTriggerChannels)
	}
	for _, n := range names {
		if err := ValidateName(n); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSocketID checks that id is two non-negative integers joined by a dot.
func ValidateSocketID(id string) error {
	// Separators of the signed string are rejected regardless of the pattern.
	if strings.ContainsAny(id, ":\r\n") || !socketIDRe.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidSocketID, id)
	}
	return nil
}
