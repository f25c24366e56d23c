package service

import (
	"context"
	"testing"
	"time"

	"leakerflow/internal/model"

	"github.com/stretchr/testify/assert"
)

type voteFixture struct {
	articleRepo *fakeArticleRepo
	voteRepo    *fakeVoteRepo
	eventRepo   *fakeEventRepo
	svc         VoteService
	article     *model.Article
}

func newVoteFixture(t *testing.T) *voteFixture {
	t.Helper()
	articleRepo := newFakeArticleRepo()
	voteRepo := newFakeVoteRepo()
	eventRepo := newFakeEventRepo()

	publishDate := time.Now().Add(-time.Hour)
	article := &model.Article{
		AccountID:   10,
		CreatedBy:   100,
		Status:      model.StatusPublished,
		Visibility:  model.VisibilityPublic,
		PublishDate: &publishDate,
	}
	assert.NoError(t, articleRepo.CreateArticle(context.Background(), article))

	return &voteFixture{
		articleRepo: articleRepo,
		voteRepo:    voteRepo,
		eventRepo:   eventRepo,
		svc:         NewVoteService(articleRepo, voteRepo, eventRepo, NewTrendService(articleRepo)),
		article:     article,
	}
}

func TestCastVoteFirstVote(t *testing.T) {
	f := newVoteFixture(t)
	actor := outsiderActor(7)

	result, err := f.svc.CastVote(context.Background(), actor, f.article.ID, model.VoteUp)
	assert.NoError(t, err)

	assert.Equal(t, 1, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)
	assert.Equal(t, 1, result.VoteScore)
	assert.Equal(t, VoteStateUp, result.UserVote)

	stored := f.articleRepo.articles[f.article.ID]
	assert.Equal(t, 1, stored.Upvotes)
	assert.Equal(t, 1, stored.VoteScore)

	// The cast also lands in the event ledger.
	assert.Len(t, f.eventRepo.events, 1)
	assert.Equal(t, model.EventUpvote, f.eventRepo.events[0].EventType)
}

func TestCastVoteToggleOff(t *testing.T) {
	f := newVoteFixture(t)
	actor := outsiderActor(7)

	_, err := f.svc.CastVote(context.Background(), actor, f.article.ID, model.VoteUp)
	assert.NoError(t, err)

	result, err := f.svc.CastVote(context.Background(), actor, f.article.ID, model.VoteUp)
	assert.NoError(t, err)

	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 0, result.VoteScore)
	assert.Equal(t, VoteStateNone, result.UserVote)

	state, err := f.svc.GetUserVote(context.Background(), actor.UserID, f.article.ID)
	assert.NoError(t, err)
	assert.Equal(t, VoteStateNone, state)

	// Toggling off records no second event.
	assert.Len(t, f.eventRepo.events, 1)
}

func TestCastVoteSwitch(t *testing.T) {
	f := newVoteFixture(t)
	actor := outsiderActor(7)

	_, err := f.svc.CastVote(context.Background(), actor, f.article.ID, model.VoteUp)
	assert.NoError(t, err)

	result, err := f.svc.CastVote(context.Background(), actor, f.article.ID, model.VoteDown)
	assert.NoError(t, err)

	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)
	assert.Equal(t, -1, result.VoteScore)
	assert.Equal(t, VoteStateDown, result.UserVote)

	// A switch never leaves two live rows for one voter.
	upvotes, downvotes, _ := f.voteRepo.CountVotes(context.Background(), f.article.ID)
	assert.Equal(t, 0, upvotes)
	assert.Equal(t, 1, downvotes)
}

func TestCastVoteScoreInvariant(t *testing.T) {
	f := newVoteFixture(t)

	_, _ = f.svc.CastVote(context.Background(), outsiderActor(1), f.article.ID, model.VoteUp)
	_, _ = f.svc.CastVote(context.Background(), outsiderActor(2), f.article.ID, model.VoteUp)
	_, _ = f.svc.CastVote(context.Background(), outsiderActor(3), f.article.ID, model.VoteDown)
	result, err := f.svc.CastVote(context.Background(), outsiderActor(2), f.article.ID, model.VoteDown)
	assert.NoError(t, err)

	assert.Equal(t, 1, result.Upvotes)
	assert.Equal(t, 2, result.Downvotes)
	assert.Equal(t, result.Upvotes-result.Downvotes, result.VoteScore)
}

func TestCastVoteRecomputesTrend(t *testing.T) {
	f := newVoteFixture(t)

	_, err := f.svc.CastVote(context.Background(), outsiderActor(7), f.article.ID, model.VoteUp)
	assert.NoError(t, err)

	assert.Greater(t, f.articleRepo.articles[f.article.ID].TrendScore, 0.0)
}

func TestCastVoteRejections(t *testing.T) {
	f := newVoteFixture(t)

	_, err := f.svc.CastVote(context.Background(), outsiderActor(7), f.article.ID, model.VoteType("sideways"))
	assert.ErrorIs(t, err, ErrInvalidVoteType)

	_, err = f.svc.CastVote(context.Background(), anonymousActor(), f.article.ID, model.VoteUp)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.CastVote(context.Background(), outsiderActor(7), 404, model.VoteUp)
	assert.ErrorIs(t, err, ErrArticleNotFound)

	_ = f.articleRepo.UpdateArticle(context.Background(), f.article.ID, map[string]interface{}{
		"visibility": model.VisibilityPrivate,
	})
	_, err = f.svc.CastVote(context.Background(), outsiderActor(7), f.article.ID, model.VoteUp)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetUserVoteAnonymous(t *testing.T) {
	f := newVoteFixture(t)
	state, err := f.svc.GetUserVote(context.Background(), 0, f.article.ID)
	assert.NoError(t, err)
	assert.Equal(t, VoteStateNone, state)
}
