package repository

import (
	"context"
	"errors"

	"leakerflow/internal/model"

	"gorm.io/gorm"
)

type AccountRepo interface {
	GetAccount(ctx context.Context, id uint64) (*model.Account, error)
	GetMembership(ctx context.Context, accountID, userID uint64) (*model.AccountUser, error)
	GetMemberships(ctx context.Context, userID uint64) ([]*model.AccountUser, error)
}

type AccountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepo {
	return &AccountRepoImpl{db}
}

func (s *AccountRepoImpl) GetAccount(ctx context.Context, id uint64) (*model.Account, error) {
	var account model.Account
	err := s.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (s *AccountRepoImpl) GetMembership(ctx context.Context, accountID, userID uint64) (*model.AccountUser, error) {
	var membership model.AccountUser
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND user_id = ?", accountID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

func (s *AccountRepoImpl) GetMemberships(ctx context.Context, userID uint64) ([]*model.AccountUser, error) {
	var memberships []*model.AccountUser
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&memberships).Error
	return memberships, err
}
