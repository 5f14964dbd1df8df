package index

import (
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
)

type mockOsProvider struct {
	mock.Mock
}

func newMockOsProvider(t *testing.T) *mockOsProvider {
	t.Helper()

	m := &mockOsProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockOsProvider) Open(name string) (*os.File, error) {
	args := m.Called(name)
	f, _ := args.Get(0).(*os.File)

	return f, args.Error(1)
}

func (m *mockOsProvider) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	args := m.Called(name, flag, perm)
	f, _ := args.Get(0).(*os.File)

	return f, args.Error(1)
}
