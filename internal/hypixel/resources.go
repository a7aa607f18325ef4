package hypixel

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
)

type questsResource struct {
	Success bool                         `json:"success"`
	Quests  map[string][]questDefinition `json:"quests"`
}

type questDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rewards     []struct {
		Type   string  `json:"type"`
		Amount float64 `json:"amount"`
	} `json:"rewards"`
	Requirements []struct {
		Type string `json:"type"`
	} `json:"requirements"`
}

type gamesResource struct {
	Success bool                      `json:"success"`
	Games   map[string]gameDefinition `json:"games"`
}

type gameDefinition struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DatabaseName string `json:"databaseName"`
}

// GetQuests fetches the quest and game resources concurrently and groups quests
// under their game's display name. Games and their quests are sorted by name.
func (c *Client) GetQuests(ctx context.Context) ([]domain.Game, error) {
	var quests questsResource
	var games gamesResource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.getJSON(gctx, EndpointQuests, c.hypixelURL+pathQuestsResource, nil, &quests)
		return err
	})
	g.Go(func() error {
		_, err := c.getJSON(gctx, EndpointGames, c.hypixelURL+pathGamesResource, nil, &games)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch quest resources: %w", err)
	}

	result := buildCatalog(quests, games)
	slog.Debug(LogMsgQuestsFetched, "games", len(result))
	return result, nil
}

func buildCatalog(quests questsResource, games gamesResource) []domain.Game {
	slugToName := make(map[string]string, len(games.Games))
	for _, g := range games.Games {
		if g.DatabaseName == "" {
			continue
		}
		slugToName[strings.ToLower(g.DatabaseName)] = g.Name
	}

	result := make([]domain.Game, 0, len(quests.Quests))
	for slug, defs := range quests.Quests {
		name, ok := slugToName[strings.ToLower(slug)]
		if !ok {
			slog.Debug(LogMsgUnknownGameSlug, "slug", slug)
			name = slug
		}

		qs := make([]domain.Quest, 0, len(defs))
		for _, def := range defs {
			qs = append(qs, domain.NewQuest(name, def.Name, def.Description, def.experience(), def.recurrence()))
		}
		result = append(result, domain.NewGame(name, qs))
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// experience is the amount of the first experience reward, or 0
func (d questDefinition) experience() float64 {
	for _, r := range d.Rewards {
		if r.Type == rewardTypeExperience {
			return r.Amount
		}
	}
	return 0
}

func (d questDefinition) recurrence() domain.Recurrence {
	for _, r := range d.Requirements {
		if r.Type == requirementTypeDailyReset {
			return domain.RecurrenceDaily
		}
	}
	return domain.RecurrenceWeekly
}
