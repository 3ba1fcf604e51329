package commands

import (
	"fmt"
	"strconv"
	"unicode"
)

// ParseID parses the single numeric id argument of task and project commands.
// kind names the object in error messages ("task", "project").
//
// Parsing rules:
// 1. No args → error: <kind> id required
// 2. First arg not all digits, or zero → error: invalid <kind> id: <arg>
// 3. Extra args → error: unexpected argument: <arg>
func ParseID(kind string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s id required", kind)
	}

	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid %s id: %s", kind, arg)
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id: %s", kind, arg)
	}

	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
