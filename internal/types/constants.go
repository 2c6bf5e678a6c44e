package types

const ContextUserKey = "user"

// Resource names used in live-update messages and log fields.
const (
	ResourceChild    = "child"
	ResourceToy      = "toy"
	ResourceReindeer = "reindeer"
	ResourceFavorite = "favorite"
)

// Actions reported in live-update messages.
const (
	ActionCreated  = "created"
	ActionReplaced = "replaced"
	ActionDeleted  = "deleted"
)
