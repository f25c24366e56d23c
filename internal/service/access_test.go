package service

import (
	"testing"

	"leakerflow/internal/model"

	"github.com/stretchr/testify/assert"
)

func publishedPublicArticle() *model.Article {
	return &model.Article{
		ID:         1,
		AccountID:  10,
		CreatedBy:  100,
		Status:     model.StatusPublished,
		Visibility: model.VisibilityPublic,
	}
}

func TestCanAccessRead(t *testing.T) {
	tests := []struct {
		name       string
		actor      *Actor
		status     model.ArticleStatus
		visibility model.ArticleVisibility
		want       bool
	}{
		{"anonymous reads public published", anonymousActor(), model.StatusPublished, model.VisibilityPublic, true},
		{"anonymous denied account published", anonymousActor(), model.StatusPublished, model.VisibilityAccount, false},
		{"outsider reads account published", outsiderActor(999), model.StatusPublished, model.VisibilityAccount, true},
		{"anonymous denied private published", anonymousActor(), model.StatusPublished, model.VisibilityPrivate, false},
		{"outsider denied private published", outsiderActor(999), model.StatusPublished, model.VisibilityPrivate, false},
		{"member reads private published", memberActor(999, 10, model.RoleMember), model.StatusPublished, model.VisibilityPrivate, true},
		{"creator reads private published", outsiderActor(100), model.StatusPublished, model.VisibilityPrivate, true},
		{"anonymous denied public draft", anonymousActor(), model.StatusDraft, model.VisibilityPublic, false},
		{"outsider denied public draft", outsiderActor(999), model.StatusDraft, model.VisibilityPublic, false},
		{"creator reads own draft", outsiderActor(100), model.StatusDraft, model.VisibilityAccount, true},
		{"member reads account draft", memberActor(999, 10, model.RoleMember), model.StatusDraft, model.VisibilityAccount, true},
		{"creator reads own pending", outsiderActor(100), model.StatusPendingApproval, model.VisibilityAccount, true},
		{"member denied other's pending", memberActor(999, 10, model.RoleMember), model.StatusPendingApproval, model.VisibilityAccount, false},
		{"global admin reads pending", adminActor(999), model.StatusPendingApproval, model.VisibilityAccount, true},
		{"anonymous denied pending", anonymousActor(), model.StatusPendingApproval, model.VisibilityAccount, false},
		{"outsider denied archived account", outsiderActor(999), model.StatusArchived, model.VisibilityAccount, false},
		{"member denied archived account", memberActor(999, 10, model.RoleMember), model.StatusArchived, model.VisibilityAccount, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := publishedPublicArticle()
			article.Status = tt.status
			article.Visibility = tt.visibility
			assert.Equal(t, tt.want, CanAccess(tt.actor, article, ActionRead))
		})
	}
}

// The private row precedes the draft row, so a private draft is readable by
// any account member, not just via the draft rule.
func TestCanAccessPrivateDraftUsesPrivateRule(t *testing.T) {
	article := publishedPublicArticle()
	article.Status = model.StatusDraft
	article.Visibility = model.VisibilityPrivate

	assert.True(t, CanAccess(memberActor(999, 10, model.RoleMember), article, ActionRead))
	assert.False(t, CanAccess(outsiderActor(999), article, ActionRead))
}

func TestCanAccessInteractionsFollowRead(t *testing.T) {
	article := publishedPublicArticle()

	for _, action := range []AccessAction{ActionVote, ActionSave, ActionComment} {
		assert.True(t, CanAccess(anonymousActor(), article, action), string(action))
		assert.True(t, CanAccess(outsiderActor(999), article, action), string(action))
	}

	article.Visibility = model.VisibilityPrivate
	for _, action := range []AccessAction{ActionVote, ActionSave, ActionComment} {
		assert.False(t, CanAccess(outsiderActor(999), article, action), string(action))
		assert.True(t, CanAccess(memberActor(999, 10, model.RoleMember), article, action), string(action))
	}
}

func TestCanAccessWrite(t *testing.T) {
	article := publishedPublicArticle()

	assert.False(t, CanAccess(anonymousActor(), article, ActionWrite))
	assert.False(t, CanAccess(outsiderActor(999), article, ActionWrite))

	// Plain members edit only their own articles.
	assert.False(t, CanAccess(memberActor(999, 10, model.RoleMember), article, ActionWrite))
	assert.True(t, CanAccess(memberActor(100, 10, model.RoleMember), article, ActionWrite))

	// Owners and account admins edit anything in the account.
	assert.True(t, CanAccess(memberActor(999, 10, model.RoleOwner), article, ActionWrite))
	assert.True(t, CanAccess(memberActor(999, 10, model.RoleAdmin), article, ActionWrite))

	// The creator loses write access after leaving the account.
	assert.False(t, CanAccess(outsiderActor(100), article, ActionWrite))
}

func TestCanAccessApprove(t *testing.T) {
	article := publishedPublicArticle()
	article.Status = model.StatusPendingApproval

	assert.False(t, CanAccess(anonymousActor(), article, ActionApprove))
	assert.False(t, CanAccess(memberActor(999, 10, model.RoleOwner), article, ActionApprove))
	assert.False(t, CanAccess(outsiderActor(100), article, ActionApprove))
	assert.True(t, CanAccess(adminActor(999), article, ActionApprove))
}

func TestCanAccessNilArticle(t *testing.T) {
	assert.False(t, CanAccess(adminActor(1), nil, ActionRead))
	assert.False(t, CanAccess(adminActor(1), nil, ActionApprove))
}
