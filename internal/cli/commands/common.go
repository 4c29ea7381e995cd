package commands

import (
	"fmt"
	"strconv"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/devexp-dev/devexp/internal/cli/guard"
	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/devexp-dev/devexp/internal/cli/userconfig"
)

// requireCapability evaluates the access guard for a command's target
// view and translates a redirect decision into a user-facing error.
func requireCapability(required guard.Capability, store session.Store) error {
	decision := guard.Evaluate(required, store.Current())
	if decision.Allowed {
		return nil
	}

	switch decision.Redirect {
	case guard.PathLogin:
		return fmt.Errorf("not authenticated. Run 'devexp login' first")
	default:
		return fmt.Errorf("admin access required")
	}
}

// openStoreAndClient wires the default session store and API client.
// Commands call this once; tests inject their own pair instead.
func openStoreAndClient() (session.Store, *client.Client, error) {
	store, err := session.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return store, client.New(userconfig.APIBaseURL(), store), nil
}

// parseID parses a numeric ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID '%s'", arg)
	}
	return id, nil
}
