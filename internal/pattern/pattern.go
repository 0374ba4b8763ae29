// Package pattern holds the date pattern checked on every beat.
package pattern

import (
	"fmt"
	"regexp"
)

const (
	// DateExpr matches a zero-padded YYYY-MM-DD date and nothing else.
	DateExpr = `^\d{4}-\d{2}-\d{2}$`

	// DateLiteral is the string tested on every beat.
	DateLiteral = "2014-01-01"
)

// Date is DateExpr compiled. Only ASCII digits match \d.
var Date = regexp.MustCompile(DateExpr)

// Compile compiles expr, wrapping the error with the offending expression.
func Compile(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	return re, nil
}
