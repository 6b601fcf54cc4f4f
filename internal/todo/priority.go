package todo

import "strings"

// Priority is a single uppercase letter, 'A' being the most urgent.
// The zero value means "no priority".
type Priority byte

const NoPriority Priority = 0

// ParsePriority accepts "" (no priority) or one letter A-Z.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoPriority, nil
	}
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return NoPriority, invalidf("priority %q is not a letter in A..Z", s)
	}
	return Priority(s[0]), nil
}

func (p Priority) IsSet() bool { return p != NoPriority }

func (p Priority) Valid() bool {
	return p == NoPriority || (p >= 'A' && p <= 'Z')
}

func (p Priority) String() string {
	if p == NoPriority {
		return ""
	}
	return string(rune(p))
}

// Raise moves one letter toward A. A task without priority enters at Z.
func (p Priority) Raise() Priority {
	switch p {
	case NoPriority:
		return 'Z'
	case 'A':
		return p
	}
	return p - 1
}

// Lower moves one letter toward Z and stops there.
func (p Priority) Lower() Priority {
	switch p {
	case NoPriority, 'Z':
		return p
	}
	return p + 1
}

// rank orders priorities for sorting: A=0 .. Z=25, none=26.
func (p Priority) rank() int {
	if p == NoPriority {
		return 26
	}
	return int(p - 'A')
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
