package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blueselfcheckout/backend/internal/domain/catalog"
)

// DefaultKeyPrefix namespaces product entries in a shared cache.
const DefaultKeyPrefix = "pos:product:"

func productKey(prefix, itemCode string) string {
	return prefix + itemCode
}

func encodeDetail(detail *catalog.ProductDetail) ([]byte, error) {
	data, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product %s: %w", detail.Product.ItemCode, err)
	}
	return data, nil
}

func decodeDetail(data []byte) (*catalog.ProductDetail, error) {
	var detail catalog.ProductDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode cached product: %w", err)
	}
	return &detail, nil
}

// NopProductCache never stores anything. It is used when caching is disabled.
type NopProductCache struct{}

func (NopProductCache) Get(context.Context, string) (*catalog.ProductDetail, error) { return nil, nil }
func (NopProductCache) Set(context.Context, *catalog.ProductDetail) error { return nil }
func (NopProductCache) Invalidate(context.Context, string) error { return nil }

var _ catalog.ProductCache = NopProductCache{}
