//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

const stagingPlanUser = "StagingPlanner"

func TestPlanLifecycle(t *testing.T) {
	resp, body := makeRequest(t, "PUT", "/api/v1/plans/"+stagingPlanUser, map[string]interface{}{
		"target_level":     10,
		"daily_challenges": 2,
		"quests":           []interface{}{},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Save: expected status 200, got %d: %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "GET", "/api/v1/plans/"+stagingPlanUser, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Get: expected status 200, got %d: %s", resp.StatusCode, body)
	}
	var plan struct {
		Username    string `json:"username"`
		TargetLevel int    `json:"target_level"`
	}
	if err := json.Unmarshal(body, &plan); err != nil {
		t.Fatalf("Failed to unmarshal plan: %v", err)
	}
	if plan.TargetLevel != 10 {
		t.Errorf("Expected target level 10, got %d", plan.TargetLevel)
	}

	resp, body = makeRequest(t, "DELETE", "/api/v1/plans/"+stagingPlanUser, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Delete: expected status 200, got %d: %s", resp.StatusCode, body)
	}

	resp, _ = makeRequest(t, "GET", "/api/v1/plans/"+stagingPlanUser, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", resp.StatusCode)
	}
}
