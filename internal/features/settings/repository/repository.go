package repository

import "context"

// Repository treats a two-column range as a string map. Set is a
// read-modify-write over the whole range and is not atomic with respect to
// concurrent writers.
type Repository interface {
	Read(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}
