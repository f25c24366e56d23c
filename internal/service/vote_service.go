package service

import (
	"context"
	"errors"
	log "log/slog"
	"sync"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/repository"

	"github.com/go-sql-driver/mysql"
)

// VoteState is the actor's resulting vote on the article.
type VoteState string

const (
	VoteStateUp   VoteState = "upvote"
	VoteStateDown VoteState = "downvote"
	VoteStateNone VoteState = "none"
)

type VoteResult struct {
	ArticleID uint64    `json:"articleId"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	VoteScore int       `json:"voteScore"`
	UserVote  VoteState `json:"userVote"`
}

type VoteService interface {
	CastVote(ctx context.Context, actor *Actor, articleID uint64, voteType model.VoteType) (*VoteResult, error)
	GetUserVote(ctx context.Context, userID, articleID uint64) (VoteState, error)
}

type voteServiceImpl struct {
	articleRepo repository.ArticleRepo
	voteRepo    repository.VoteRepo
	eventRepo   repository.EventRepo
	trendSvc    TrendService

	// Serializes steps 2-3 of a cast per article; votes on different
	// articles proceed fully in parallel.
	locks sync.Map
}

func NewVoteService(
	articleRepo repository.ArticleRepo,
	voteRepo repository.VoteRepo,
	eventRepo repository.EventRepo,
	trendSvc TrendService,
) VoteService {
	return &voteServiceImpl{
		articleRepo: articleRepo,
		voteRepo:    voteRepo,
		eventRepo:   eventRepo,
		trendSvc:    trendSvc,
	}
}

func (s *voteServiceImpl) CastVote(ctx context.Context, actor *Actor, articleID uint64, voteType model.VoteType) (*VoteResult, error) {
	if !voteType.Valid() {
		return nil, ErrInvalidVoteType
	}
	if actor.Anonymous() {
		return nil, ErrUnauthenticated
	}

	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	if !CanAccess(actor, article, ActionVote) {
		return nil, ErrForbidden
	}

	unlock := s.lockArticle(articleID)
	defer unlock()

	state, err := s.applyVote(ctx, actor, article, voteType)
	if err != nil {
		return nil, err
	}

	// Full recount over the vote ledger: self-healing, never drifts.
	upvotes, downvotes, err := s.voteRepo.CountVotes(ctx, articleID)
	if err != nil {
		return nil, err
	}
	voteScore := upvotes - downvotes
	if err := s.articleRepo.UpdateVoteCounts(ctx, articleID, upvotes, downvotes, voteScore); err != nil {
		return nil, err
	}

	if err := s.trendSvc.RecomputeArticle(ctx, articleID); err != nil {
		log.ErrorContext(ctx, "trend recompute after vote error", "articleID", articleID, "err", err)
	}

	return &VoteResult{
		ArticleID: articleID,
		Upvotes:   upvotes,
		Downvotes: downvotes,
		VoteScore: voteScore,
		UserVote:  state,
	}, nil
}

func (s *voteServiceImpl) GetUserVote(ctx context.Context, userID, articleID uint64) (VoteState, error) {
	if userID == 0 {
		return VoteStateNone, nil
	}
	vote, err := s.voteRepo.GetVote(ctx, articleID, userID)
	if err != nil {
		return VoteStateNone, err
	}
	if vote == nil {
		return VoteStateNone, nil
	}
	return VoteState(vote.VoteType), nil
}

// applyVote mutates the vote ledger: first vote inserts, same type toggles
// off, different type switches in place. The interaction event is recorded
// for inserts and switches only.
func (s *voteServiceImpl) applyVote(ctx context.Context, actor *Actor, article *model.Article, voteType model.VoteType) (VoteState, error) {
	existing, err := s.voteRepo.GetVote(ctx, article.ID, actor.UserID)
	if err != nil {
		return VoteStateNone, err
	}

	switch {
	case existing == nil:
		err = s.voteRepo.CreateVote(ctx, &model.ArticleVote{
			ArticleID: article.ID,
			UserID:    actor.UserID,
			VoteType:  voteType,
			CreatedAt: time.Now(),
		})
		if isDuplicateError(err) {
			// Lost a first-vote race; resolve as an update.
			err = s.voteRepo.UpdateVoteType(ctx, article.ID, actor.UserID, voteType)
		}
		if err != nil {
			return VoteStateNone, err
		}

	case existing.VoteType == voteType:
		if err := s.voteRepo.DeleteVote(ctx, article.ID, actor.UserID); err != nil {
			return VoteStateNone, err
		}
		return VoteStateNone, nil

	default:
		if err := s.voteRepo.UpdateVoteType(ctx, article.ID, actor.UserID, voteType); err != nil {
			return VoteStateNone, err
		}
	}

	s.recordVoteEvent(ctx, actor, article, voteType)
	return VoteState(voteType), nil
}

func (s *voteServiceImpl) recordVoteEvent(ctx context.Context, actor *Actor, article *model.Article, voteType model.VoteType) {
	err := s.eventRepo.CreateEvent(ctx, &model.ArticleEvent{
		ArticleID: article.ID,
		AccountID: article.AccountID,
		UserID:    actor.UserID,
		EventType: model.EventType(voteType),
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.ErrorContext(ctx, "record vote event error", "articleID", article.ID, "err", err)
	}
}

func (s *voteServiceImpl) lockArticle(articleID uint64) func() {
	mu, _ := s.locks.LoadOrStore(articleID, &sync.Mutex{})
	lock := mu.(*sync.Mutex)
	lock.Lock()
	return lock.Unlock
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
