package memo

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

type userID int

type tenantKey struct {
	org  string
	slot int
}

func (k tenantKey) MemoKey() string { return k.org + "/" + string(rune('a'+k.slot)) }

func TestKeyIsDeterministic(t *testing.T) {
	args := []any{"user", 42, []string{"a", "b"}, map[string]int{"z": 1, "a": 2}}
	first, err := Key(args...)
	if err != nil {
		t.Fatalf("key failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Key(args...)
		if err != nil {
			t.Fatalf("key failed: %v", err)
		}
		if again != first {
			t.Fatalf("expected stable key, got %q then %q", first, again)
		}
	}
	want := `(s"user",i42,[s"a",s"b"],{"a":i2,"z":i1})`
	if first != want {
		t.Fatalf("unexpected key encoding:\n got %s\nwant %s", first, want)
	}
}

func TestKeyDistinguishesArguments(t *testing.T) {
	cases := [][]any{
		{},
		{nil},
		{1},
		{1.0},
		{"1"},
		{true},
		{"true"},
		{[]byte("1")},
		{[]int{1}},
		{[]any{1, 2}},
		{[]any{1}, 2},
		{1, 2},
		{"a,b"},
		{"a", "b"},
		{`a"`, "b"},
		{map[string]any{"a": 1}},
		{map[string]any{"a": "1"}},
		{complex(1, 0)},
		{math.Copysign(0, -1)},
		{0.0},
		{tenantKey{org: "acme", slot: 1}},
		{"acme/b"},
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	seen := make(map[string]int)
	for i, args := range cases {
		key, err := Key(args...)
		if err != nil {
			t.Fatalf("case %d (%v): key failed: %v", i, args, err)
		}
		if prev, ok := seen[key]; ok {
			t.Fatalf("cases %d and %d collide on key %q", prev, i, key)
		}
		seen[key] = i
	}
}

func TestKeyTreatsIntegerKindsAsOneArgument(t *testing.T) {
	base, _ := Key(7)
	for _, v := range []any{int8(7), int16(7), int32(7), int64(7), uint(7), uint8(7), uint64(7), userID(7)} {
		got, err := Key(v)
		if err != nil {
			t.Fatalf("key(%T) failed: %v", v, err)
		}
		if got != base {
			t.Fatalf("expected %T(7) to share key %q, got %q", v, base, got)
		}
	}
}

func TestKeyRejectsUnencodableArguments(t *testing.T) {
	cyclic := []any{nil}
	cyclic[0] = cyclic
	n := 1

	cases := map[string]any{
		"func":       func() {},
		"chan":       make(chan int),
		"pointer":    &n,
		"struct":     struct{ A int }{A: 1},
		"nan":        math.NaN(),
		"inf":        math.Inf(1),
		"int map":    map[int]string{1: "a"},
		"cyclic":     cyclic,
		"nested bad": []any{1, func() {}},
	}
	for name, arg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Key("ok", arg)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestKeyFuncWithDepthBoundsNesting(t *testing.T) {
	keyFn := keyFuncWithDepth(1)
	if _, err := keyFn([]any{1}); err != nil {
		t.Fatalf("expected one level to pass: %v", err)
	}
	if _, err := keyFn([]any{[]any{[]any{1}}}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected depth error, got %v", err)
	}
}

func TestKeyQualifiesTypesByImportPath(t *testing.T) {
	key, err := Key(tenantKey{org: "acme", slot: 0}, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("key failed: %v", err)
	}
	for _, want := range []string{`k"github.com/goforj/memo.tenantKey"`, `m"time.Time"`} {
		if !strings.Contains(key, want) {
			t.Fatalf("expected key %s to contain %s", key, want)
		}
	}
	if got := typeName(reflect.TypeOf(&tenantKey{})); got != "*github.com/goforj/memo.tenantKey" {
		t.Fatalf("unexpected pointer type name %q", got)
	}
	if got := typeName(reflect.TypeOf([]int(nil))); got != "[]int" {
		t.Fatalf("unexpected unnamed type name %q", got)
	}
}

func TestKeyDistinguishesNilFromEmpty(t *testing.T) {
	pairs := []struct {
		name       string
		nilV, empV any
	}{
		{"slice", []int(nil), []int{}},
		{"bytes", []byte(nil), []byte{}},
		{"map", map[string]int(nil), map[string]int{}},
	}
	for _, p := range pairs {
		nilKey, err := Key(p.nilV)
		if err != nil {
			t.Fatalf("%s: key failed: %v", p.name, err)
		}
		emptyKey, _ := Key(p.empV)
		if nilKey == emptyKey {
			t.Fatalf("%s: nil and empty share key %q", p.name, nilKey)
		}
		if untyped, _ := Key(nil); nilKey != untyped {
			t.Fatalf("%s: expected nil to encode like untyped nil, got %q", p.name, nilKey)
		}
	}
}
