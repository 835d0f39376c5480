// filepath: internal/services/interfaces_test.go
package services

import (
	"mediacatalog/internal/services/mocks"
)

// Conformance checks live here rather than in the mocks package so that
// package does not need to import services.
var (
	_ Uploader = (*mocks.MockUploader)(nil)
	_ Deriver  = (*mocks.MockDeriver)(nil)
)
