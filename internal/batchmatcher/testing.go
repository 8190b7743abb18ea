package batchmatcher

import (
	"github.com/stretchr/testify/mock"
)

const (
	MatchMethod = "Match"
)

// Ensure MockMatcher implements IFace
var _ IFace = (*MockMatcher)(nil)

type MockMatcher struct {
	mock.Mock
}

func (m *MockMatcher) Match(requests []Request) error {
	args := m.Called(requests)
	return args.Error(0)
}
