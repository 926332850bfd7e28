package nav

import (
	"fmt"
	"strings"
)

// Code identifies a key.
type Code int

const (
	KeyOther Code = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
)

var codeNames = map[Code]string{
	KeyOther: "other",
	KeyUp:    "up",
	KeyDown:  "down",
	KeyLeft:  "left",
	KeyRight: "right",
	KeyTab:   "tab",
}

// Key is a key press.
type Key struct {
	Code  Code
	Shift bool
}

func (k Key) String() string {
	if k.Shift {
		return "shift-" + codeNames[k.Code]
	}
	return codeNames[k.Code]
}

// ParseKey parses names like "down", "tab" and "shift-tab".
func ParseKey(s string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	var k Key
	if rest, ok := strings.CutPrefix(name, "shift-"); ok {
		k.Shift = true
		name = rest
	}
	for code, n := range codeNames {
		if n == name && code != KeyOther {
			k.Code = code
			return k, nil
		}
	}
	return Key{}, fmt.Errorf("unknown key %q", s)
}

// ParseKeys parses a comma separated list of key names.
func ParseKeys(s string) ([]Key, error) {
	var keys []Key
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKey(part)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
