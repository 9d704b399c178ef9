package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	// KeyUserContext holds the UserContext in fiber Locals.
	KeyUserContext = "USER_CONTEXT"
	// KeyDiscordUser is the session key of the JSON-encoded profile.
	KeyDiscordUser = "discord_user"
)
