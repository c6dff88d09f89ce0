package record

import "context"

// Record is a stored item.
//
// Seq is the record's position in insertion order, starting at 1. It comes
// from a logical clock, never from wall time.
type Record struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Seq      int64  `json:"seq" yaml:"seq"`
}

// CreateRequest carries the caller-supplied fields of a new record.
type CreateRequest struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// Service is the contract callers use to reach a record store.
// *Store implements it.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Record, error)
	Get(ctx context.Context, id string) (Record, bool, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
}

var _ Service = (*Store)(nil)
