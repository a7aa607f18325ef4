package hypixel

import "time"

// Default upstream locations
const (
	DefaultHypixelBaseURL = "https://api.hypixel.net"
	DefaultMojangBaseURL  = "https://api.mojang.com"
)

// API paths
const (
	pathQuestsResource = "/v2/resources/quests"
	pathGamesResource  = "/v2/resources/games"
	pathPlayer         = "/v2/player"
	pathMojangProfile  = "/users/profiles/minecraft/"
)

// Endpoint labels for metrics and logs
const (
	EndpointQuests = "quests"
	EndpointGames  = "games"
	EndpointPlayer = "player"
	EndpointMojang = "mojang_profile"
)

// HeaderAPIKey carries the Hypixel developer key
const HeaderAPIKey = "API-Key"

// Quest resource discriminators
const (
	rewardTypeExperience      = "MultipliedExperienceReward"
	requirementTypeDailyReset = "DailyResetQuestRequirement"
)

// Retry defaults
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

// Log messages
const (
	LogMsgRetryingRequest = "Retrying upstream request"
	LogMsgRequestFailed   = "Upstream request failed"
	LogMsgServerError     = "Upstream server error, will retry"
	LogMsgUnknownGameSlug = "Quest group has no matching game, using slug as name"
	LogMsgQuestsFetched   = "Fetched quest catalog"
	LogMsgPlayerFetched   = "Fetched player progress"
)
