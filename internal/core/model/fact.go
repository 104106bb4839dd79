package model

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ErrEmptyFact is returned by NewFact when the verb phrase or object is blank.
var ErrEmptyFact = errors.New("fact needs a verb phrase and an object")

// Fact is a subject, verb phrase and object that render as one sentence.
// Two facts with the same fields are interchangeable.
type Fact struct {
	subject    Subject
	verbPhrase string
	object     string
}

func NewFact(subject Subject, verbPhrase, object string) (Fact, error) {
	if verbPhrase == "" || object == "" {
		return Fact{}, errors.Wrapf(ErrEmptyFact, "verb %q object %q", verbPhrase, object)
	}
	return Fact{subject: subject, verbPhrase: verbPhrase, object: object}, nil
}

func (f Fact) Subject() Subject { return f.subject }
func (f Fact) VerbPhrase() string { return f.verbPhrase }
func (f Fact) Object() string { return f.object }

// Predicate is the verb phrase followed by the object, e.g. "was formed in 1987".
func (f Fact) Predicate() string {
	return f.verbPhrase + " " + f.object
}

// String renders the fact as a sentence without trailing punctuation.
func (f Fact) String() string {
	return f.subject.Display() + " " + f.Predicate()
}

type factJSON struct {
	Subject    string `json:"subject"`
	URI        string `json:"uri"`
	VerbPhrase string `json:"verb_phrase"`
	Object     string `json:"object"`
	Sentence   string `json:"sentence"`
}

func (f Fact) MarshalJSON() ([]byte, error) {
	return json.Marshal(factJSON{
		Subject:    f.subject.Display(),
		URI:        f.subject.URI,
		VerbPhrase: f.verbPhrase,
		Object:     f.object,
		Sentence:   f.String(),
	})
}

// Outcome is what a probe produces: a fact, or nothing.
type Outcome struct {
	fact  Fact
	found bool
}

func Found(f Fact) Outcome { return Outcome{fact: f, found: true} }

func Absent() Outcome { return Outcome{} }

// Fact returns the fact and whether there was one.
func (o Outcome) Fact() (Fact, bool) {
	return o.fact, o.found
}
