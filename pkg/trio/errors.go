package trio

import (
	"errors"

	"github.com/BrandonKowalski/trio/pkg/trio/hotreload"
	"github.com/BrandonKowalski/trio/pkg/trio/registry"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// ErrNoScreensFile indicates Open was called without a declaration file.
var ErrNoScreensFile = errors.New("no screens file configured")

// IsSchemaError checks if an error came from building the schema
// (duplicate names, cycles, missing reserved screens, missing resources...).
// These are fatal until the declarations are fixed.
func IsSchemaError(err error) bool {
	return schema.IsSchemaError(err)
}

// IsStateError checks if an error came from a registry operation that the
// current screen state does not allow.
func IsStateError(err error) bool {
	return registry.IsStateError(err)
}

// IsSchemaChanged checks if a reload request needs a full schema rebuild.
func IsSchemaChanged(err error) bool {
	return errors.Is(err, hotreload.ErrSchemaChanged)
}
