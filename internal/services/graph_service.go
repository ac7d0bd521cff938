package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// GraphService mirrors classified jobs into the knowledge graph behind the
// main site. Fire-and-forget: a sync failure never affects the classification
// result already committed.
type GraphService struct {
	Enabled bool
	BaseURL string
	Secret  string
	client  *http.Client
}

// NewGraphService creates the mirror client. The 30s timeout bounds the call;
// there is no retry.
func NewGraphService(enabled bool, baseURL, secret string) *GraphService {
	return &GraphService{
		Enabled: enabled,
		BaseURL: baseURL,
		Secret:  secret,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SyncJob posts one job id to the graph endpoint. Returns whether the mirror
// accepted it; callers only log the outcome.
func (s *GraphService) SyncJob(ctx context.Context, jobID uint) bool {
	if !s.Enabled {
		return true // skip but don't fail
	}

	body, err := json.Marshal(map[string]any{
		"action": "sync-one",
		"jobId":  jobID,
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/graph/jobs", s.BaseURL), bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+s.Secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[graph] Sync error for job %d: %v", jobID, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[graph] Sync failed for job %d: status %d", jobID, resp.StatusCode)
		return false
	}
	return true
}
