package assistant

import "encoding/json"

// TurnContext carries state produced by tool calls across loop iterations of
// a single orchestrator run. It replaces loop-local captures so later tools
// can reference earlier results explicitly: search_influencers falls back to
// the campaign created earlier in the same turn when the model omits the id.
type TurnContext struct {
	CampaignSID  string
	SearchResult json.RawMessage
	SearchQuery  string
}

// HasCampaign reports whether a campaign was created during this turn.
func (tc *TurnContext) HasCampaign() bool {
	return tc.CampaignSID != ""
}
