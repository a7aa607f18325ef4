package hypixel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/level"
)

type mojangProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type playerResponse struct {
	Success bool `json:"success"`
	Player  *struct {
		NetworkExp float64 `json:"networkExp"`
		Quests     map[string]struct {
			Completions []struct {
				Time int64 `json:"time"`
			} `json:"completions"`
		} `json:"quests"`
	} `json:"player"`
}

// GetPlayer resolves username through Mojang and returns the player's network progress
func (c *Client) GetPlayer(ctx context.Context, username string) (*domain.PlayerProgress, error) {
	profile, err := c.lookupProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	if c.apiKey != "" {
		header.Set(HeaderAPIKey, c.apiKey)
	}

	var resp playerResponse
	endpoint := c.hypixelURL + pathPlayer + "?uuid=" + url.QueryEscape(profile.ID)
	if _, err := c.getJSON(ctx, EndpointPlayer, endpoint, header, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch player %s: %w", profile.Name, err)
	}
	// Hypixel answers null for accounts that never joined the network
	if resp.Player == nil {
		return nil, fmt.Errorf("%w: %s has no network profile", domain.ErrPlayerNotFound, profile.Name)
	}

	completed := 0
	for _, q := range resp.Player.Quests {
		completed += len(q.Completions)
	}

	progress := &domain.PlayerProgress{
		UUID:            profile.ID,
		Username:        profile.Name,
		XP:              resp.Player.NetworkExp,
		QuestsCompleted: completed,
		Level:           level.CalculateLevel(resp.Player.NetworkExp),
	}
	slog.Debug(LogMsgPlayerFetched, "username", progress.Username, "level", progress.Level)
	return progress, nil
}

func (c *Client) lookupProfile(ctx context.Context, username string) (*mojangProfile, error) {
	var profile mojangProfile
	status, err := c.getJSON(ctx, EndpointMojang, c.mojangURL+pathMojangProfile+url.PathEscape(username), nil, &profile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", username, err)
	}
	if status == http.StatusNoContent || profile.ID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, username)
	}

	id, err := uuid.Parse(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: profile id %q: %v", domain.ErrUpstreamUnavailable, profile.ID, err)
	}
	profile.ID = id.String()
	return &profile, nil
}
