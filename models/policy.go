package models

import "fmt"

// MalformedPolicy controls what a count run does with lines that fail
// extraction.
type MalformedPolicy int

const (
	// PolicySkip drops malformed lines and reports them as a separate count.
	PolicySkip MalformedPolicy = iota
	PolicyAbort // Fail the whole run on the first malformed line
)

func (p MalformedPolicy) String() string {
	if p == PolicyAbort {
		return "abort"
	}
	return "skip"
}

// ResolvePolicy maps a CLI or config value to a MalformedPolicy.
// An empty value defaults to skip.
func ResolvePolicy(value string) (MalformedPolicy, error) {
	switch value {
	case "", "skip":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return PolicySkip, fmt.Errorf("unknown policy %q (want skip or abort)", value)
	}
}
