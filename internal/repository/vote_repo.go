package repository

import (
	"context"
	"errors"

	"leakerflow/internal/model"

	"gorm.io/gorm"
)

type VoteRepo interface {
	GetVote(ctx context.Context, articleID, userID uint64) (*model.ArticleVote, error)
	CreateVote(ctx context.Context, vote *model.ArticleVote) error
	UpdateVoteType(ctx context.Context, articleID, userID uint64, voteType model.VoteType) error
	DeleteVote(ctx context.Context, articleID, userID uint64) error

	// CountVotes recounts the full ledger for one article; callers rely on it
	// as the single source of truth for the article counters.
	CountVotes(ctx context.Context, articleID uint64) (upvotes, downvotes int, err error)
}

type VoteRepoImpl struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) VoteRepo {
	return &VoteRepoImpl{db}
}

func (s *VoteRepoImpl) GetVote(ctx context.Context, articleID, userID uint64) (*model.ArticleVote, error) {
	var vote model.ArticleVote
	err := s.db.WithContext(ctx).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

func (s *VoteRepoImpl) CreateVote(ctx context.Context, vote *model.ArticleVote) error {
	return s.db.WithContext(ctx).Create(vote).Error
}

func (s *VoteRepoImpl) UpdateVoteType(ctx context.Context, articleID, userID uint64, voteType model.VoteType) error {
	return s.db.WithContext(ctx).Model(&model.ArticleVote{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Update("vote_type", voteType).Error
}

func (s *VoteRepoImpl) DeleteVote(ctx context.Context, articleID, userID uint64) error {
	return s.db.WithContext(ctx).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Delete(&model.ArticleVote{}).Error
}

func (s *VoteRepoImpl) CountVotes(ctx context.Context, articleID uint64) (int, int, error) {
	type voteCount struct {
		VoteType model.VoteType
		Count    int
	}
	var rows []voteCount
	err := s.db.WithContext(ctx).Model(&model.ArticleVote{}).
		Select("vote_type, COUNT(*) AS count").
		Where("article_id = ?", articleID).
		Group("vote_type").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	var up, down int
	for _, r := range rows {
		switch r.VoteType {
		case model.VoteUp:
			up = r.Count
		case model.VoteDown:
			down = r.Count
		}
	}
	return up, down, nil
}
