package dates

import (
	"errors"
	"fmt"
)

// Rule error kinds. Use errors.Is against these to classify a *RuleError.
var (
	ErrUnparsableWeekday  = errors.New("weekday not parsable")
	ErrUnparsablePosition = errors.New("date string position not parsable")
	ErrUnparsableDate     = errors.New("date string not parsable")
)

// RuleError reports a date rule that could not be evaluated.
// Input is the offending token or expression.
type RuleError struct {
	Kind  error
	Input string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Input)
}

func (e *RuleError) Unwrap() error {
	return e.Kind
}

func newRuleError(kind error, input string) *RuleError {
	return &RuleError{Kind: kind, Input: input}
}

// IsRuleError reports whether err was caused by a malformed date rule.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
