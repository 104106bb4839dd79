package model

import "github.com/cockroachdb/errors"

// Triple is one subject-predicate-object statement to load into the graph.
// Literal objects are stored as values, all others as resources.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Literal   bool   `json:"literal,omitempty"`
}

func (t Triple) Validate() error {
	if t.Subject == "" {
		return errors.New("triple subject is empty")
	}
	if t.Predicate == "" {
		return errors.Newf("triple %s has no predicate", t.Subject)
	}
	return nil
}
