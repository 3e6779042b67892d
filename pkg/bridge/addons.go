package bridge

import (
	"context"
	"fmt"

	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// AddonAction is a proprietary action executed agent-side.
type AddonAction struct {
	GUID       string         `json:"guid"`
	ClassName  string         `json:"className"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// AddonHelper executes proprietary actions through the session's router so
// they share the bridged identity and reporting pipeline.
type AddonHelper struct {
	router *Router
}

// Execute runs one addon action and returns the agent's response verbatim.
func (h *AddonHelper) Execute(ctx context.Context, action AddonAction) (*webdriver.Response, error) {
	if action.GUID == "" && action.ClassName == "" {
		return nil, fmt.Errorf("addon action requires a guid or class name")
	}
	return h.router.Execute(ctx, webdriver.CommandProprietary, webdriver.Params{
		"guid":       action.GUID,
		"className":  action.ClassName,
		"parameters": action.Parameters,
	})
}
