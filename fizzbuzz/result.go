package fizzbuzz

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Label is a FizzBuzz classification. The zero value means unclassified.
type Label string

const (
	Fizz     Label = "Fizz"
	Buzz     Label = "Buzz"
	FizzBuzz Label = "FizzBuzz"
)

// Result is the classification of a single integer.
type Result struct {
	N     int
	Label Label
}

// Classify labels i: multiples of 3 contribute Fizz, multiples of 5 contribute
// Buzz (in that order); anything else stays unclassified.
func Classify(i int) Result {
	var label Label
	if i%3 == 0 {
		label += Fizz
	}
	if i%5 == 0 {
		label += Buzz
	}
	return Result{N: i, Label: label}
}

// Classified reports whether r carries a label.
func (r Result) Classified() bool {
	return r.Label != ""
}

// String returns the label, or the integer when unclassified.
func (r Result) String() string {
	if r.Classified() {
		return string(r.Label)
	}
	return strconv.Itoa(r.N)
}

// MarshalJSON encodes a label as a string and an unclassified value as a number.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Classified() {
		return json.Marshal(string(r.Label))
	}
	return []byte(strconv.Itoa(r.N)), nil
}

// Sequence is an ordered run of results; element k is the classification of k+1.
type Sequence []Result

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Strings renders every element with Result.String.
func (s Sequence) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.String()
	}
	return out
}

func (s Sequence) String() string {
	return "[" + strings.Join(s.Strings(), " ") + "]"
}
