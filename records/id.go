package records

import (
	"regexp"
	"strconv"
)

// optional sign, digits, optional fraction; surrounding whitespace allowed
var idPattern = regexp.MustCompile(`^\s*([+-]?\d+)(?:\.\d*)?\s*$`)

// ParseID parses a path identifier loosely: a decimal such as "3.7" is
// truncated to 3, while trailing garbage ("3.7x") or a missing integer part
// (".5", "abc") is rejected.
func ParseID(raw string) (int64, error) {
	m := idPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, &InvalidIdentifierError{Value: raw}
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, &InvalidIdentifierError{Value: raw}
	}
	return id, nil
}
