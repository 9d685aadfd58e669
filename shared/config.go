// This file handles engine configuration loaded from environment variables
// (conventionally populated from a .env file via godotenv in cmd/automeshd).
package shared

import (
	"os"
	"time"
)

// DEBUG_MODE controls debug logging throughout the engine. Set once during
// InitConfig and treated as read-only afterward.
var (
	DEBUG_MODE = false
)

const (
	MONGODB_MIN_POOL_SIZE = 2
	MONGODB_MAX_POOL_SIZE = 10

	// BLACKBOARD_BUFFER_SIZE is not read by the blackboard; its ingress and
	// egress maps have no size bound.
	BLACKBOARD_BUFFER_SIZE = 1000

	// RegistrationWaitTimeout is not read by the registry, whose
	// operations are synchronous.
	RegistrationWaitTimeout = 30 * time.Second
)

// InitConfig loads engine configuration from the environment.
//
// Environment Variables:
//   - DEBUG: set to "true" to enable verbose debug logging.
func InitConfig() {
	DEBUG_MODE = os.Getenv("DEBUG") == "true"
}
