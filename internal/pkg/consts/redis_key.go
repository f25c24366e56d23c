package consts

const (
	UserMembershipKey = "user:membership:"
	AccountStatsKey   = "account:article:stats:"
	RateLimitKey      = "ratelimit:"
	RollupLockKey     = "lock:rollup:"
	TokenRevokedKey   = "token:revoked:"
)
