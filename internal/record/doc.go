// Package record provides the concurrent in-memory record store.
//
// A Store holds a growing collection of records. Each record gets an opaque
// identifier from the store's IDGenerator and a sequence number from the
// store's logical clock at the moment it is inserted. Records are never
// updated or removed.
//
// # Consistency
//
// Every operation, reads included, runs under a single mutex owned by the
// Store. Create, Get and List are therefore linearizable: each call takes
// effect at the instant it holds the lock, and List always returns a
// snapshot in insertion (seq) order.
//
// Nothing inside a critical section blocks: no I/O, no logging and no calls
// back into caller code. The ID generator is the only collaborator invoked
// under the lock and must return promptly.
//
// # Errors
//
//   - *ValidationError: Create rejected a request; the store is unchanged
//   - *CancelledError: the caller's context was done before the operation
//     could finish; the store is unchanged
//   - ErrDuplicateID: a seed record or generated ID collided with an existing one
//
// A missing record is not an error. Get reports it through its boolean result.
package record
