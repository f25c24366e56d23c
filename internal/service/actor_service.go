package service

import (
	"context"
	"strconv"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/pkg/consts"
	"leakerflow/internal/pkg/redis"
	"leakerflow/internal/repository"

	"github.com/goccy/go-json"
)

const membershipCacheExpiration = 10 * time.Minute

// ActorService resolves the authenticated principal into an Actor carrying
// its tenant memberships. GlobalAdmin comes from the token roles, the
// memberships from the account_user table with a short Redis cache.
type ActorService interface {
	ResolveActor(ctx context.Context, userID uint64, globalAdmin bool) (*Actor, error)
}

type actorServiceImpl struct {
	accountRepo repository.AccountRepo
}

func NewActorService(accountRepo repository.AccountRepo) ActorService {
	return &actorServiceImpl{accountRepo: accountRepo}
}

func (s *actorServiceImpl) ResolveActor(ctx context.Context, userID uint64, globalAdmin bool) (*Actor, error) {
	actor := &Actor{UserID: userID, GlobalAdmin: globalAdmin}
	if userID == 0 {
		return actor, nil
	}

	key := consts.UserMembershipKey + strconv.FormatUint(userID, 10)
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var cached map[uint64]model.AccountRole
		if json.Unmarshal([]byte(val), &cached) == nil {
			actor.Memberships = cached
			return actor, nil
		}
	}

	memberships, err := s.accountRepo.GetMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	actor.Memberships = make(map[uint64]model.AccountRole, len(memberships))
	for _, m := range memberships {
		actor.Memberships[m.AccountID] = m.Role
	}

	if data, err := json.Marshal(actor.Memberships); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(data), membershipCacheExpiration)
	}

	return actor, nil
}
