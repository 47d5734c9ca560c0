// Package rules implements flag conditions and the action resolver.
package rules

import "strings"

// Negation marks a condition (or effect) that refers to an absent flag.
const Negation = "!"

// SplitCondition returns the flag name of a condition and whether it is
// negated.
func SplitCondition(cond string) (flag string, negated bool) {
	if name, ok := strings.CutPrefix(cond, Negation); ok {
		return name, true
	}
	return cond, false
}

// ConditionsMet returns true if every positive condition's flag is set and
// every negated condition's flag is unset. An empty list is vacuously true.
// Unknown flags are simply absent.
func ConditionsMet(conditions []string, flags map[string]bool) bool {
	for _, c := range conditions {
		flag, negated := SplitCondition(c)
		if flags[flag] == negated {
			return false
		}
	}
	return true
}

// References reports whether any condition names one of the changed flags,
// with or without negation.
func References(conditions []string, changed map[string]bool) bool {
	if len(changed) == 0 {
		return false
	}
	for _, c := range conditions {
		flag, _ := SplitCondition(c)
		if changed[flag] {
			return true
		}
	}
	return false
}
