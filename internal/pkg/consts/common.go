package consts

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const (
	EntityTypeArticle = "article"
)

const (
	// RoleGlobalAdmin is the token role granting platform-wide moderation.
	RoleGlobalAdmin = "ADMIN"
)
