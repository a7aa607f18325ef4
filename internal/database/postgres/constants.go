package postgres

// Plan queries
const (
	queryGetPlan = `
		SELECT username, target_level, daily_challenges, quests, created_at, updated_at
		FROM plans
		WHERE username_key = $1
	`
	queryUpsertPlan = `
		INSERT INTO plans (username_key, username, target_level, daily_challenges, quests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (username_key) DO UPDATE
		SET username = EXCLUDED.username,
		    target_level = EXCLUDED.target_level,
		    daily_challenges = EXCLUDED.daily_challenges,
		    quests = EXCLUDED.quests,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`
	queryDeletePlan = `DELETE FROM plans WHERE username_key = $1`
	queryCountPlans = `SELECT COUNT(*) FROM plans`
)

// Error Messages - Plan Operations
const (
	ErrMsgFailedToGetPlan      = "failed to get plan"
	ErrMsgFailedToUpsertPlan   = "failed to upsert plan"
	ErrMsgFailedToDeletePlan   = "failed to delete plan"
	ErrMsgFailedToCountPlans   = "failed to count plans"
	ErrMsgFailedToEncodeQuests = "failed to encode plan quests"
	ErrMsgFailedToDecodeQuests = "failed to decode plan quests"
)
