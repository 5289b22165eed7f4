// Package memory provides the in-process dictionary store for respkv.
//
// The store is a flat key to resp.Value map that lives for the whole
// process. It has no eviction, expiry or persistence.
//
// Thread Safety:
//
// Every connection goroutine shares one Store. All access goes through a
// single sync.RWMutex, and every exported method holds it for its whole
// duration, so multi-key operations (MGet, MSet, Flush) are atomic with
// respect to each other. Read operations use RLock, write operations use
// Lock.
package memory
