package api

import "leakerflow/internal/api/handler"

// HandlersGroup bundles all initialized handler instances.
type HandlersGroup struct {
	ArticleHandler   *handler.ArticleHandler
	VoteHandler      *handler.VoteHandler
	EventHandler     *handler.EventHandler
	ApprovalHandler  *handler.ApprovalHandler
	AnalyticsHandler *handler.AnalyticsHandler
	AdminHandler     *handler.AdminHandler
}
