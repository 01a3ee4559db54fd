package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nivelab/authcore/internal/model"
)

// ActiveTokenIndex keeps each user's live access token set in a
// process-local map. Empty sets are removed to bound memory.
type ActiveTokenIndex struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]map[string]struct{}
}

var _ model.ActiveTokenIndex = (*ActiveTokenIndex)(nil)

func NewActiveTokenIndex() *ActiveTokenIndex {
	return &ActiveTokenIndex{
		tokens: make(map[uuid.UUID]map[string]struct{}),
	}
}

func (i *ActiveTokenIndex) Track(ctx context.Context, userID uuid.UUID, token string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	set, ok := i.tokens[userID]
	if !ok {
		set = make(map[string]struct{})
		i.tokens[userID] = set
	}
	set[token] = struct{}{}
	return nil
}

func (i *ActiveTokenIndex) Untrack(ctx context.Context, userID uuid.UUID, token string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	set, ok := i.tokens[userID]
	if !ok {
		return nil
	}
	delete(set, token)
	if len(set) == 0 {
		delete(i.tokens, userID)
	}
	return nil
}

func (i *ActiveTokenIndex) IsActive(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	set, ok := i.tokens[userID]
	if !ok {
		return false, nil
	}
	_, ok = set[token]
	return ok, nil
}

func (i *ActiveTokenIndex) Clear(ctx context.Context, userID uuid.UUID) ([]string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	set, ok := i.tokens[userID]
	if !ok {
		return nil, nil
	}
	delete(i.tokens, userID)

	drained := make([]string, 0, len(set))
	for token := range set {
		drained = append(drained, token)
	}
	return drained, nil
}
