package catalog

import (
	"context"
)

// ProductCache holds read-side product projections. Get returns nil, nil on
// a miss. Writers invalidate after their transaction commits.
type ProductCache interface {
	Get(ctx context.Context, itemCode string) (*ProductDetail, error)
	Set(ctx context.Context, detail *ProductDetail) error
	Invalidate(ctx context.Context, itemCode string) error
}
