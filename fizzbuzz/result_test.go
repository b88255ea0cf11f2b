package fizzbuzz

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{1, "1"},
		{2, "2"},
		{3, "Fizz"},
		{5, "Buzz"},
		{6, "Fizz"},
		{10, "Buzz"},
		{15, "FizzBuzz"},
		{30, "FizzBuzz"},
		{98, "98"},
	}
	for _, tc := range cases {
		r := Classify(tc.in)
		if r.N != tc.in {
			t.Fatalf("classify(%d): expected N=%d, got %d", tc.in, tc.in, r.N)
		}
		if got := r.String(); got != tc.want {
			t.Fatalf("classify(%d): expected %q, got %q", tc.in, tc.want, got)
		}
	}
	if Classify(7).Classified() {
		t.Fatalf("expected 7 to stay unclassified")
	}
	if Classify(15).Label != FizzBuzz {
		t.Fatalf("expected FizzBuzz label for 15")
	}
}

func TestSequenceJSON(t *testing.T) {
	seq := Sequence{Classify(1), Classify(3), Classify(5), Classify(15)}
	body, err := json.Marshal(seq)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if got, want := string(body), `[1,"Fizz","Buzz","FizzBuzz"]`; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	seq := Sequence{Classify(1), Classify(2)}
	cp := seq.Clone()
	cp[0] = Classify(3)
	if seq[0].String() != "1" {
		t.Fatalf("expected original to be untouched, got %s", seq)
	}
	if Sequence(nil).Clone() != nil {
		t.Fatalf("expected nil clone of nil sequence")
	}
	if got := seq.String(); got != "[1 2]" {
		t.Fatalf("unexpected String %q", got)
	}
}
