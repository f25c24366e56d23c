package dto

import (
	"time"
)

type ArticleCreateDTO struct {
	AccountID  uint64   `json:"accountId" binding:"required"`
	Title      string   `json:"title" binding:"required,max=255"`
	Subtitle   string   `json:"subtitle" binding:"max=255"`
	Content    string   `json:"content" binding:"required"`
	Category   string   `json:"category" binding:"max=64"`
	Tags       []string `json:"tags" binding:"max=10"`
	Visibility string   `json:"visibility"`
	Status     string   `json:"status"`
}

type ArticleUpdateDTO struct {
	Title      *string `json:"title" binding:"omitempty,max=255"`
	Subtitle   *string `json:"subtitle" binding:"omitempty,max=255"`
	Content    *string `json:"content"`
	Category   *string `json:"category" binding:"omitempty,max=64"`
	Visibility *string `json:"visibility"`
}

type ArticleQueryDTO struct {
	AccountID  uint64 `form:"accountId"`
	Status     string `form:"status"`
	Visibility string `form:"visibility"`
	Category   string `form:"category"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

type ArticleDTO struct {
	ID         uint64 `json:"id"`
	AccountID  uint64 `json:"accountId"`
	CreatedBy  uint64 `json:"createdBy"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	Visibility string `json:"visibility"`

	Upvotes    int     `json:"upvotes"`
	Downvotes  int     `json:"downvotes"`
	VoteScore  int     `json:"voteScore"`
	TrendScore float64 `json:"trendScore"`
	IsTrending bool    `json:"isTrending"`

	TotalViews    int     `json:"totalViews"`
	UniqueViews   int     `json:"uniqueViews"`
	TotalShares   int     `json:"totalShares"`
	TotalSaves    int     `json:"totalSaves"`
	TotalComments int     `json:"totalComments"`
	AvgReadTime   float64 `json:"avgReadTime"`
	BounceRate    float64 `json:"bounceRate"`
	Engagement    float64 `json:"engagement"`

	RejectionReason *string    `json:"rejectionReason,omitempty"`
	PublishDate     *time.Time `json:"publishDate,omitempty"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`

	UserVote string `json:"userVote"`
	IsSaved  bool   `json:"isSaved"`
}

type ArticleListDTO struct {
	List       []*ArticleDTO `json:"list"`
	TotalCount int64         `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	HasMore    bool          `json:"hasMore"`
}
