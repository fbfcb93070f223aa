package service

import (
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
)

// LookupRepository is re-exported from domain for convenience
type LookupRepository = domain.LookupRepository
