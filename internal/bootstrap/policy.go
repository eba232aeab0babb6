package bootstrap

import (
	"fmt"
	"strings"
)

// Policy decides what a step does when its target already exists
type Policy string

// set of supported if-exists policies
const (
	PolicySkip    Policy = "skip"
	PolicyError   Policy = "error"
	PolicyReplace Policy = "replace"
)

var allPolicies = []Policy{PolicySkip, PolicyError, PolicyReplace}

func (p Policy) String() string { return string(p) }

// Type returns the Policy type
func (p Policy) Type() string { return "string" }

// Set validates and sets the policy value
func (p *Policy) Set(val string) error {
	policy := Policy(val)
	if !policy.valid() {
		return errUnsupportedPolicy
	}
	*p = policy
	return nil
}

func (p Policy) valid() bool {
	for _, policy := range allPolicies {
		if p == policy {
			return true
		}
	}
	return false
}

// PolicyUsage lists the supported policy values for flag usage text
func PolicyUsage() string {
	values := make([]string, 0, len(allPolicies))
	for _, p := range allPolicies {
		values = append(values, fmt.Sprintf("%q", p))
	}
	return fmt.Sprintf("Allowed values: %s", strings.Join(values, ", "))
}

var errUnsupportedPolicy = fmt.Errorf("unsupported value, use one of [%s, %s, %s] instead", PolicySkip, PolicyError, PolicyReplace)
