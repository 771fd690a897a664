package assistant

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"beacon/internal/domain/campaign"
	"beacon/internal/domain/chat"
	"beacon/internal/shared/errors"
	"beacon/internal/shared/logger"
	"beacon/internal/shared/services/markdown"
)

// maxModelTurns bounds the tool-calling loop for one user message.
const maxModelTurns = 6

// Result is the terminal outcome of one orchestrator run.
type Result struct {
	SessionSID    string
	AssistantText string
	AssistantHTML string
	CampaignSID   *string
	Search        json.RawMessage
}

// Orchestrator drives the bounded tool-calling conversation loop: it feeds
// the transcript to the model, executes requested tools in order, and
// persists the exchange once the model produces a terminal reply.
type Orchestrator struct {
	model        ModelClient
	discovery    DiscoveryClient
	campaignRepo campaign.Repository
	sessionRepo  chat.SessionRepository
	searchCache  SearchResultCache
	markdown     markdown.Service
	validate     *validator.Validate
	logger       logger.Interface
}

func NewOrchestrator(
	model ModelClient,
	discovery DiscoveryClient,
	campaignRepo campaign.Repository,
	sessionRepo chat.SessionRepository,
	searchCache SearchResultCache,
	markdownService markdown.Service,
	logger logger.Interface,
) *Orchestrator {
	return &Orchestrator{
		model:        model,
		discovery:    discovery,
		campaignRepo: campaignRepo,
		sessionRepo:  sessionRepo,
		searchCache:  searchCache,
		markdown:     markdownService,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Run executes one conversation turn. Nothing is persisted unless the loop
// reaches a terminal assistant reply; tool side effects (campaign creation)
// are not rolled back on later failures.
func (o *Orchestrator) Run(ctx context.Context, userID, orgSID, sessionSID, userMessage string) (*Result, error) {
	if userMessage == "" {
		return nil, errors.NewValidationError("message is required")
	}

	session, err := o.resolveSession(ctx, userID, orgSID, sessionSID)
	if err != nil {
		return nil, err
	}

	history, err := o.sessionRepo.RecentMessages(ctx, session.ID(), chat.HistoryLimit)
	if err != nil {
		o.logger.Errorw("failed to load transcript", "error", err, "session_sid", session.SID())
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	transcript := make([]ModelMessage, 0, len(history)+2)
	transcript = append(transcript, ModelMessage{Role: "system", Content: intakeSystemPrompt})
	for _, msg := range history {
		transcript = append(transcript, ModelMessage{Role: string(msg.Role()), Content: msg.Content()})
	}
	transcript = append(transcript, ModelMessage{Role: "user", Content: userMessage})

	tc := &TurnContext{}

	for turn := 0; turn < maxModelTurns; turn++ {
		resp, err := o.model.Complete(ctx, CompletionRequest{
			Messages: transcript,
			Tools:    toolCatalog,
		})
		if err != nil {
			if errors.IsAppError(err) {
				return nil, err
			}
			o.logger.Errorw("model completion failed", "error", err, "session_sid", session.SID(), "turn", turn)
			return nil, errors.NewUpstreamError("model endpoint")
		}

		reply := resp.Message
		transcript = append(transcript, reply)

		if len(reply.ToolCalls) == 0 {
			return o.finishTurn(ctx, session, tc, userMessage, reply.Content)
		}

		// Tool calls execute strictly in array order.
		for _, call := range reply.ToolCalls {
			result, err := o.executeTool(ctx, tc, orgSID, call)
			if err != nil {
				return nil, err
			}
			transcript = append(transcript, ModelMessage{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	o.logger.Warnw("orchestration loop exceeded turn bound",
		"session_sid", session.SID(),
		"max_turns", maxModelTurns,
	)
	return nil, errors.NewSafetyLimitExceededError()
}

func (o *Orchestrator) resolveSession(ctx context.Context, userID, orgSID, sessionSID string) (*chat.Session, error) {
	if sessionSID == "" {
		session, err := chat.NewSession(orgSID, userID)
		if err != nil {
			return nil, err
		}
		if err := o.sessionRepo.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		return session, nil
	}

	session, err := o.sessionRepo.GetByOrgAndSID(ctx, orgSID, sessionSID)
	if err != nil {
		if stderrors.Is(err, chat.ErrSessionNotFound) {
			return nil, errors.NewNotFoundError("chat session not found")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

func (o *Orchestrator) executeTool(ctx context.Context, tc *TurnContext, orgSID string, call ModelToolCall) (string, error) {
	switch call.Name {
	case toolCreateCampaign:
		return o.runCreateCampaign(ctx, tc, orgSID, call.Arguments)
	case toolSearchInfluencers:
		return o.runSearchInfluencers(ctx, tc, orgSID, call.Arguments)
	default:
		// Unknown tools are reported back to the model; the loop continues.
		o.logger.Warnw("model requested unknown tool", "tool", call.Name)
		return toolResult(map[string]any{"ok": false, "error": "not implemented"}), nil
	}
}

// runCreateCampaign validates the brief and persists a draft campaign.
// Invalid arguments are fatal for the whole request: nothing from this turn
// is persisted.
func (o *Orchestrator) runCreateCampaign(ctx context.Context, tc *TurnContext, orgSID, rawArgs string) (string, error) {
	var args createCampaignArgs
	if err := decodeToolArgs(o.validate, rawArgs, &args); err != nil {
		return "", errors.NewValidationError("invalid campaign brief", err.Error())
	}

	c, err := campaign.NewCampaign(orgSID, args.Name, args.Objective, args.Platforms, args.Niches)
	if err != nil {
		return "", errors.NewValidationError("invalid campaign brief", err.Error())
	}

	if args.BudgetCents != nil {
		if err := c.SetBudget(*args.BudgetCents, args.Currency); err != nil {
			return "", errors.NewValidationError("invalid campaign budget", err.Error())
		}
	}

	start, err := args.startDate()
	if err != nil {
		return "", errors.NewValidationError("invalid campaign dates", err.Error())
	}
	end, err := args.endDate()
	if err != nil {
		return "", errors.NewValidationError("invalid campaign dates", err.Error())
	}
	if start != nil || end != nil {
		if err := c.SetSchedule(start, end); err != nil {
			return "", errors.NewValidationError("invalid campaign dates", err.Error())
		}
	}

	if err := c.SetAudience(campaign.AudienceFilter{
		MinFollowers:  args.MinFollowers,
		MaxFollowers:  args.MaxFollowers,
		MinEngagement: args.MinEngagement,
		Locations:     args.Locations,
	}); err != nil {
		return "", errors.NewValidationError("invalid audience filter", err.Error())
	}

	if err := o.campaignRepo.Create(ctx, c); err != nil {
		return "", fmt.Errorf("failed to create campaign: %w", err)
	}

	tc.CampaignSID = c.SID()
	o.logger.Infow("campaign created by assistant",
		"campaign_sid", c.SID(),
		"org_sid", orgSID,
	)

	return toolResult(map[string]any{"ok": true, "campaignId": c.SID()}), nil
}

// runSearchInfluencers forwards the query to the discovery collaborator. The
// campaign id falls back to the one created earlier in this turn.
func (o *Orchestrator) runSearchInfluencers(ctx context.Context, tc *TurnContext, orgSID, rawArgs string) (string, error) {
	var args searchInfluencersArgs
	if err := decodeToolArgs(o.validate, rawArgs, &args); err != nil {
		return "", errors.NewValidationError("invalid search arguments", err.Error())
	}

	campaignSID := args.CampaignID
	if campaignSID == "" {
		campaignSID = tc.CampaignSID
	}
	if campaignSID == "" {
		return "", errors.NewValidationError("no campaign to search for", "search_influencers needs a campaign_id or a campaign created this turn")
	}

	// Tenant scoping: the campaign must belong to the caller's organization.
	if _, err := o.campaignRepo.GetByOrgAndSID(ctx, orgSID, campaignSID); err != nil {
		if stderrors.Is(err, campaign.ErrCampaignNotFound) {
			return "", errors.NewValidationError("unknown campaign", campaignSID)
		}
		return "", fmt.Errorf("failed to load campaign: %w", err)
	}

	results, err := o.discovery.Search(ctx, SearchRequest{
		OrgSID:      orgSID,
		CampaignSID: campaignSID,
		Query:       args.Query,
		Filters:     args.Filters,
	})
	if err != nil {
		if errors.IsAppError(err) {
			return "", err
		}
		o.logger.Errorw("discovery search failed", "error", err, "campaign_sid", campaignSID)
		return "", errors.NewUpstreamError("discovery service")
	}

	tc.SearchResult = results
	tc.SearchQuery = args.Query

	if err := o.searchCache.Set(ctx, orgSID, campaignSID, args.Query, results); err != nil {
		// Cache loss is not fatal; the payload still rides the response.
		o.logger.Warnw("failed to cache search results", "error", err, "campaign_sid", campaignSID)
	}

	return toolResult(map[string]any{"ok": true, "results": json.RawMessage(results)}), nil
}

// finishTurn persists the exchange and renders the reply. Messages get
// server-assigned timestamps at persist time.
func (o *Orchestrator) finishTurn(ctx context.Context, session *chat.Session, tc *TurnContext, userMessage, assistantText string) (*Result, error) {
	userMsg, err := chat.NewMessage(session.ID(), chat.RoleUser, userMessage)
	if err != nil {
		return nil, err
	}
	assistantMsg, err := chat.NewMessage(session.ID(), chat.RoleAssistant, assistantText)
	if err != nil {
		return nil, err
	}
	if err := o.sessionRepo.AppendMessages(ctx, userMsg, assistantMsg); err != nil {
		o.logger.Errorw("failed to persist transcript", "error", err, "session_sid", session.SID())
		return nil, fmt.Errorf("failed to persist transcript: %w", err)
	}

	html, err := o.markdown.ToHTMLSanitized(assistantText)
	if err != nil {
		o.logger.Warnw("failed to render assistant reply", "error", err, "session_sid", session.SID())
		html = ""
	}

	result := &Result{
		SessionSID:    session.SID(),
		AssistantText: assistantText,
		AssistantHTML: html,
		Search:        tc.SearchResult,
	}
	if tc.HasCampaign() {
		sid := tc.CampaignSID
		result.CampaignSID = &sid
	}

	return result, nil
}
