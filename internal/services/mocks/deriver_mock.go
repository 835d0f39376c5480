// filepath: internal/services/mocks/deriver_mock.go
package mocks

import (
	"mediacatalog/internal/media"

	"github.com/stretchr/testify/mock"
)

// MockDeriver is a mock implementation of services.Deriver
type MockDeriver struct {
	mock.Mock
}

func (m *MockDeriver) Derive(src media.Source, id string) (string, error) {
	args := m.Called(src, id)
	// Allow tests to compute the preview from the call's arguments.
	if fn, ok := args.Get(0).(func(media.Source, string) string); ok {
		return fn(src, id), args.Error(1)
	}
	return args.String(0), args.Error(1)
}
