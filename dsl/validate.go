package dsl

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	shared   *gpvalidator.Validate
	sharedMu sync.Mutex
)

// validator returns the shared go-playground validator, initializing it on
// first use.
func validator() *gpvalidator.Validate {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		shared = gpvalidator.New()
	}
	return shared
}

// checkVar runs a single validator tag against a string.
func checkVar(s, tag string) bool {
	return validator().Var(s, tag) == nil
}
