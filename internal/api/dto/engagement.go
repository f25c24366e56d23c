package dto

type VoteReq struct {
	VoteType string `json:"voteType" binding:"required,oneof=upvote downvote"`
}

type EventReq struct {
	EventType        string                 `json:"eventType" binding:"required"`
	ReadTimeSeconds  int                    `json:"readTimeSeconds" binding:"gte=0"`
	ScrollPercentage int                    `json:"scrollPercentage" binding:"gte=0,lte=100"`
	Metadata         map[string]interface{} `json:"metadata"`
}

type RejectReq struct {
	Reason string `json:"reason" binding:"max=1024"`
}

type AnalyticsQuery struct {
	Days int `form:"days" binding:"omitempty,oneof=7 30"`
}
