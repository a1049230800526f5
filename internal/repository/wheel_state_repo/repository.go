package wheel_state_repo

import (
	"context"
	"sync"
)

// StateRepo - хранение базовых углов в памяти, когда база не настроена
type StateRepo struct {
	mtx       sync.RWMutex
	rotations map[int]float64
}

func NewWheelStateRepository() *StateRepo {
	return &StateRepo{
		rotations: make(map[int]float64),
	}
}

func (r *StateRepo) GetRotation(_ context.Context, userID int) (float64, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.rotations[userID], nil
}

func (r *StateRepo) SaveRotation(_ context.Context, userID int, rotation float64) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.rotations[userID] = rotation
	return nil
}

// Len - сколько игроков уже крутили колесо
func (r *StateRepo) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.rotations)
}
