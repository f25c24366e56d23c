package service

import (
	"leakerflow/internal/model"
)

// Actor is the resolved principal a request acts as. UserID 0 means
// anonymous. Memberships maps account id to the actor's role there.
type Actor struct {
	UserID      uint64
	Memberships map[uint64]model.AccountRole
	GlobalAdmin bool
}

func (a *Actor) Anonymous() bool {
	return a == nil || a.UserID == 0
}

// RoleIn returns the actor's role in the given account, if any.
func (a *Actor) RoleIn(accountID uint64) (model.AccountRole, bool) {
	if a == nil || a.Memberships == nil {
		return "", false
	}
	role, ok := a.Memberships[accountID]
	return role, ok
}

type AccessAction string

const (
	ActionRead    AccessAction = "read"
	ActionWrite   AccessAction = "write"
	ActionVote    AccessAction = "vote"
	ActionSave    AccessAction = "save"
	ActionComment AccessAction = "comment"
	ActionApprove AccessAction = "approve"
)

// readRule is one row of the read decision table. Empty visibility or
// status matches anything. The first matching row decides; there is no
// fallthrough to later rows.
type readRule struct {
	visibility model.ArticleVisibility
	status     model.ArticleStatus
	allow      func(actor *Actor, article *model.Article) bool
}

// The table is ordered; policy changes must edit rows here and nowhere else.
var readTable = []readRule{
	{model.VisibilityPublic, model.StatusPublished, allowAnyone},
	{model.VisibilityAccount, model.StatusPublished, allowAuthenticated},
	{model.VisibilityPrivate, "", allowCreatorOrMember},
	{"", model.StatusDraft, allowCreatorOrMember},
	{"", model.StatusPendingApproval, allowCreatorOrGlobalAdmin},
}

func allowAnyone(_ *Actor, _ *model.Article) bool {
	return true
}

func allowAuthenticated(actor *Actor, _ *model.Article) bool {
	return !actor.Anonymous()
}

func allowCreatorOrMember(actor *Actor, article *model.Article) bool {
	if actor.Anonymous() {
		return false
	}
	if actor.UserID == article.CreatedBy {
		return true
	}
	_, member := actor.RoleIn(article.AccountID)
	return member
}

func allowCreatorOrGlobalAdmin(actor *Actor, article *model.Article) bool {
	if actor.Anonymous() {
		return false
	}
	return actor.UserID == article.CreatedBy || actor.GlobalAdmin
}

// CanAccess is the single authorization predicate for the engine. It is
// pure: callers must invoke it before every ledger mutation.
func CanAccess(actor *Actor, article *model.Article, action AccessAction) bool {
	if article == nil {
		return false
	}

	switch action {
	case ActionRead, ActionVote, ActionSave, ActionComment:
		// Anyone who can read an article may also interact with it.
		return canRead(actor, article)
	case ActionWrite:
		return canWrite(actor, article)
	case ActionApprove:
		return !actor.Anonymous() && actor.GlobalAdmin
	}
	return false
}

func canRead(actor *Actor, article *model.Article) bool {
	for _, rule := range readTable {
		if rule.visibility != "" && rule.visibility != article.Visibility {
			continue
		}
		if rule.status != "" && rule.status != article.Status {
			continue
		}
		return rule.allow(actor, article)
	}
	return false
}

func canWrite(actor *Actor, article *model.Article) bool {
	if actor.Anonymous() {
		return false
	}
	role, member := actor.RoleIn(article.AccountID)
	if member && role.CanManage() {
		return true
	}
	return actor.UserID == article.CreatedBy && member
}
