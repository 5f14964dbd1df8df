package vfs

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

func (m *mockOsProvider) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	args := m.Called(name, flag, perm)
	f, _ := args.Get(0).(*os.File)

	return f, args.Error(1)
}

func (m *mockOsProvider) ReadDir(name string) ([]os.DirEntry, error) {
	args := m.Called(name)
	entries, _ := args.Get(0).([]os.DirEntry)

	return entries, args.Error(1)
}

func (m *mockOsProvider) Stat(name string) (os.FileInfo, error) {
	args := m.Called(name)
	fi, _ := args.Get(0).(os.FileInfo)

	return fi, args.Error(1)
}
