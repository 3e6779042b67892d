package bridge

import (
	"github.com/odvcencio/agentbridge/pkg/agent"
	"github.com/odvcencio/agentbridge/pkg/webdriver"
)

// IsLegacy reports whether the descriptor negotiated the legacy wire
// dialect. Anything that is not explicitly W3C is treated as legacy.
func IsLegacy(descriptor *agent.SessionDescriptor) bool {
	return descriptor == nil || descriptor.Dialect != webdriver.DialectW3C
}

// dispatchFor selects the dialect-appropriate command table once, at router
// construction. The table is never swapped afterwards.
func dispatchFor(descriptor *agent.SessionDescriptor) webdriver.DispatchTable {
	if IsLegacy(descriptor) {
		return webdriver.CommandsFor(webdriver.DialectLegacy)
	}
	return webdriver.CommandsFor(webdriver.DialectW3C)
}

// rewriteLegacyParams converts parameters the agent's legacy endpoint
// encodes differently from the driver model's default. Send-keys text
// becomes a character array, e.g. {"value":"hi"} -> {"value":["h","i"]}.
func rewriteLegacyParams(name string, params webdriver.Params) webdriver.Params {
	if name != webdriver.CommandSendKeys {
		return params
	}
	text, ok := params["value"].(string)
	if !ok {
		return params
	}
	chars := make([]string, 0, len(text))
	for _, r := range text {
		chars = append(chars, string(r))
	}
	out := make(webdriver.Params, len(params))
	for k, v := range params {
		out[k] = v
	}
	out["value"] = chars
	return out
}
