package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/daytrack/internal/domain"
)

// InitStoreInput contains the parameters for initializing daytrack.
type InitStoreInput struct {
	WriteConfig bool // Also write the global config template
}

// InitStoreOutput contains the result of initialization.
type InitStoreOutput struct {
	ConfigPath    string
	StoreCreated  bool
	ConfigCreated bool
}

// InitStore creates the task store and optionally the config file.
type InitStore struct {
	store  domain.StoreInitializer
	config domain.ConfigManager
}

// NewInitStore creates a new InitStore use case. config may be nil.
func NewInitStore(store domain.StoreInitializer, config domain.ConfigManager) *InitStore {
	return &InitStore{store: store, config: config}
}

// Execute initializes the store. Running it twice is not an error.
func (uc *InitStore) Execute(_ context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	created, err := uc.store.Initialize()
	if err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	out := &InitStoreOutput{StoreCreated: created}

	if in.WriteConfig && uc.config != nil {
		err := uc.config.InitGlobalConfig()
		switch {
		case err == nil:
			out.ConfigCreated = true
		case errors.Is(err, domain.ErrConfigExists):
		default:
			return out, fmt.Errorf("write config: %w", err)
		}
		out.ConfigPath = uc.config.GetGlobalConfigInfo().Path
	}
	return out, nil
}
