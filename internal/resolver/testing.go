package resolver

import (
	"github.com/stretchr/testify/mock"

	"game-backend/internal/matchmaking"
)

const (
	GetConnectionInfoMethod = "GetConnectionInfo"
)

// Ensure MockResolver implements IFace
var _ IFace = (*MockResolver)(nil)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) GetConnectionInfo(playerId string) (Result, *matchmaking.ConnectionInfo, error) {
	args := m.Called(playerId)
	var conn *matchmaking.ConnectionInfo
	if v := args.Get(1); v != nil {
		conn = v.(*matchmaking.ConnectionInfo)
	}
	return args.Get(0).(Result), conn, args.Error(2)
}
