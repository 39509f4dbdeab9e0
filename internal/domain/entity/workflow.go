package entity

import "strings"

// Values shipped in the sample .env; they count as unset.
const (
	PlaceholderFlowID = "your-flow-id"
	PlaceholderAPIKey = "your-api-key"
)

// WorkflowConfig locates the external workflow. It is built once at startup
// and handed to the generator on every call.
type WorkflowConfig struct {
	BaseURL string
	FlowID  string
	APIKey  string
}

func (c WorkflowConfig) HasFlowID() bool {
	return isSet(c.FlowID, PlaceholderFlowID)
}

func (c WorkflowConfig) HasAPIKey() bool {
	return isSet(c.APIKey, PlaceholderAPIKey)
}

// Endpoint is POST {base_url}/{flow_id}.
func (c WorkflowConfig) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + c.FlowID
}

func isSet(v, placeholder string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != placeholder
}
