// Package memotest provides reusable contract tests for memo.Store
// implementations.
//
// Example pattern (custom store test):
//
//	func TestShardedStoreContract(t *testing.T) {
//		store := newShardedStore(8)
//		memotest.RunStoreContract(t, store, memotest.Options{CaseName: t.Name()})
//	}
package memotest
