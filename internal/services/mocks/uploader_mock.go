// filepath: internal/services/mocks/uploader_mock.go
package mocks

import (
	"mediacatalog/internal/uploader"

	"github.com/stretchr/testify/mock"
)

// MockUploader is a mock implementation of services.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(path string) (*uploader.Result, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.Result), args.Error(1)
}
