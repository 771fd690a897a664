package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"beacon/internal/application/assistant"
	"beacon/internal/shared/biztime"
)

// searchResultEntry is the stored wire form of one discovery search response.
type searchResultEntry struct {
	CampaignSID string          `json:"campaign_sid"`
	Query       string          `json:"query"`
	Results     json.RawMessage `json:"results"`
	CachedAt    time.Time       `json:"cached_at"`
}

// SearchResultStore provides Redis-based TTL storage for discovery search
// results, keyed per organization and campaign.
type SearchResultStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSearchResultStore creates a new SearchResultStore instance
// Parameters:
//   - client: Redis client instance
//   - prefix: Key prefix for namespacing (e.g., "search:result:")
//   - ttl: Time-to-live for cached results (recommended: 15 minutes)
func NewSearchResultStore(client *redis.Client, prefix string, ttl time.Duration) *SearchResultStore {
	return &SearchResultStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Set stores a search result in Redis with TTL. Stale entries expire on
// their own; a newer search for the same campaign overwrites the old entry.
func (s *SearchResultStore) Set(ctx context.Context, orgSID, campaignSID, query string, results json.RawMessage) error {
	if orgSID == "" {
		return errors.New("organization SID cannot be empty")
	}
	if campaignSID == "" {
		return errors.New("campaign SID cannot be empty")
	}

	entry := searchResultEntry{
		CampaignSID: campaignSID,
		Query:       query,
		Results:     results,
		CachedAt:    biztime.NowUTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal search result: %w", err)
	}

	key := s.buildKey(orgSID, campaignSID)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store search result in redis: %w", err)
	}

	return nil
}

// Get retrieves the cached search payload for a campaign, or
// assistant.ErrNoCachedSearch when the entry never existed or its TTL elapsed.
func (s *SearchResultStore) Get(ctx context.Context, orgSID, campaignSID string) (*assistant.CachedSearch, error) {
	if orgSID == "" {
		return nil, errors.New("organization SID cannot be empty")
	}
	if campaignSID == "" {
		return nil, errors.New("campaign SID cannot be empty")
	}

	key := s.buildKey(orgSID, campaignSID)
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, assistant.ErrNoCachedSearch
		}
		return nil, fmt.Errorf("failed to retrieve search result from redis: %w", err)
	}

	var entry searchResultEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search result: %w", err)
	}

	return &assistant.CachedSearch{
		CampaignSID: entry.CampaignSID,
		Query:       entry.Query,
		Results:     entry.Results,
		CachedAt:    entry.CachedAt,
	}, nil
}

// buildKey constructs the full Redis key with prefix
func (s *SearchResultStore) buildKey(orgSID, campaignSID string) string {
	return fmt.Sprintf("%s%s:%s", s.prefix, orgSID, campaignSID)
}
