package service

import (
	"github.com/plantdoc/backend/internal/domain"
)

// Adapter is re-exported from domain for convenience
type Adapter = domain.Adapter

// CatalogRepository is re-exported from domain for convenience
type CatalogRepository = domain.CatalogRepository

// Filler supplies bounded random values for report fields that have no real
// measurement behind them.
type Filler interface {
	Float64Range(lo, hi float64) float64
	IntRange(lo, hi int) int
}
