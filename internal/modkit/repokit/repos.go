// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"inkarena/internal/platform/store"
)

// KV is the typed key-value surface repos bind against
type KV = store.KV

// Member is a sorted-set member with its score
type Member = store.Member

// Locker is the lease-lock helper over a KV
type Locker = store.Locker

// Limiter is the sliding-window rate limit helper over a KV
type Limiter = store.Limiter

// Cache is the read-through memoization helper over a KV
type Cache = store.Cache

// Scoped returns a key-prefixed view over kv
func Scoped(kv KV, prefix string) KV { return store.Scoped(kv, prefix) }

// NewLocker builds a Locker over kv without importing the store package
func NewLocker(kv KV) Locker { return store.NewLocker(kv) }

// NewLimiter builds a Limiter over kv without importing the store package
func NewLimiter(kv KV) Limiter { return store.NewLimiter(kv) }

// NewCache builds a Cache over kv without importing the store package
func NewCache(kv KV) Cache { return store.NewCache(kv) }
