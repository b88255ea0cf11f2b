// Package fizzbuzz produces FizzBuzz classifications for 1..n as a paced,
// strictly ordered pipeline.
//
// Each element is classified and then followed by a suspension point (a timed
// wait that honours the caller's context) before the next one starts. Generate
// resolves the whole sequence as one value; Stream exposes elements as they are
// produced. Memoize wraps the generator in a memo.Memo so repeated counts are
// answered from memory.
package fizzbuzz
