package service

import (
	"context"
	log "log/slog"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/repository"

	"github.com/goccy/go-json"
)

// EventInput is one raw interaction arriving at the boundary.
type EventInput struct {
	EventType        model.EventType
	ReadTimeSeconds  int
	ScrollPercentage int
	Metadata         map[string]interface{}
}

// RecordEventResult distinguishes a stored event from the successful dedup
// no-op; the no-op is not an error.
type RecordEventResult struct {
	Created bool                `json:"created"`
	Event   *model.ArticleEvent `json:"event,omitempty"`
}

type EventService interface {
	RecordEvent(ctx context.Context, actor *Actor, articleID uint64, input *EventInput) (*RecordEventResult, error)

	SaveArticle(ctx context.Context, actor *Actor, articleID uint64) error
	UnsaveArticle(ctx context.Context, actor *Actor, articleID uint64) error
	IsSaved(ctx context.Context, userID, articleID uint64) (bool, error)
	GetSavedArticleIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
}

type eventServiceImpl struct {
	articleRepo repository.ArticleRepo
	eventRepo   repository.EventRepo
	savedRepo   repository.SavedRepo
}

func NewEventService(
	articleRepo repository.ArticleRepo,
	eventRepo repository.EventRepo,
	savedRepo repository.SavedRepo,
) EventService {
	return &eventServiceImpl{
		articleRepo: articleRepo,
		eventRepo:   eventRepo,
		savedRepo:   savedRepo,
	}
}

func (s *eventServiceImpl) RecordEvent(ctx context.Context, actor *Actor, articleID uint64, input *EventInput) (*RecordEventResult, error) {
	if input == nil || !input.EventType.Valid() {
		return nil, ErrInvalidEventType
	}

	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	if !CanAccess(actor, article, accessActionFor(input.EventType)) {
		if actor.Anonymous() {
			return nil, ErrUnauthenticated
		}
		return nil, ErrForbidden
	}

	// At most one counted view and one counted save per identified actor,
	// no matter how often the client reports it. Anonymous actors carry no
	// identity to deduplicate on; their events never count anyway.
	if input.EventType.Deduplicated() && !actor.Anonymous() {
		exists, err := s.eventRepo.ExistsEvent(ctx, articleID, actor.UserID, input.EventType)
		if err != nil {
			return nil, err
		}
		if exists {
			return &RecordEventResult{Created: false}, nil
		}
	}

	event := &model.ArticleEvent{
		ArticleID:        articleID,
		AccountID:        article.AccountID,
		EventType:        input.EventType,
		ReadTimeSeconds:  input.ReadTimeSeconds,
		ScrollPercentage: input.ScrollPercentage,
		CreatedAt:        time.Now(),
	}
	if !actor.Anonymous() {
		event.UserID = actor.UserID
	}
	if len(input.Metadata) > 0 {
		if data, err := json.Marshal(input.Metadata); err == nil {
			event.Metadata = string(data)
		}
	}

	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	if err := s.refreshEngagementCounters(ctx, articleID); err != nil {
		log.ErrorContext(ctx, "refresh engagement counters error", "articleID", articleID, "err", err)
	}

	return &RecordEventResult{Created: true, Event: event}, nil
}

func (s *eventServiceImpl) SaveArticle(ctx context.Context, actor *Actor, articleID uint64) error {
	if actor.Anonymous() {
		return ErrUnauthenticated
	}

	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}
	if !CanAccess(actor, article, ActionSave) {
		return ErrForbidden
	}

	exists, err := s.savedRepo.CheckSavedExists(ctx, actor.UserID, articleID)
	if err != nil {
		return err
	}
	if !exists {
		err = s.savedRepo.CreateSaved(ctx, &model.SavedArticle{
			UserID:    actor.UserID,
			ArticleID: articleID,
			CreatedAt: time.Now(),
		})
		if err != nil && !isDuplicateError(err) {
			return err
		}
	}

	// The save event is deduplicated, so re-saving after an unsave records
	// exactly one ledger row again.
	if _, err := s.RecordEvent(ctx, actor, articleID, &EventInput{EventType: model.EventSave}); err != nil {
		return err
	}

	return s.refreshSaveCount(ctx, articleID)
}

func (s *eventServiceImpl) UnsaveArticle(ctx context.Context, actor *Actor, articleID uint64) error {
	if actor.Anonymous() {
		return ErrUnauthenticated
	}

	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}

	if err := s.savedRepo.DeleteSaved(ctx, actor.UserID, articleID); err != nil {
		return err
	}
	// Remove the save event too, or a later re-save would be suppressed.
	// View events are deliberately permanent; saves are the only reversal.
	if err := s.eventRepo.DeleteEvent(ctx, articleID, actor.UserID, model.EventSave); err != nil {
		return err
	}

	return s.refreshSaveCount(ctx, articleID)
}

func (s *eventServiceImpl) IsSaved(ctx context.Context, userID, articleID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.savedRepo.CheckSavedExists(ctx, userID, articleID)
}

func (s *eventServiceImpl) GetSavedArticleIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	return s.savedRepo.GetSavedArticleIDs(ctx, userID, limit, offset)
}

// refreshEngagementCounters recounts the article's real-time counters from
// the event ledger instead of incrementing, so partial failures heal on the
// next event.
func (s *eventServiceImpl) refreshEngagementCounters(ctx context.Context, articleID uint64) error {
	agg, err := s.eventRepo.AggregateArticle(ctx, articleID)
	if err != nil {
		return err
	}
	return s.articleRepo.UpdateEngagementCounters(ctx, articleID, agg)
}

// refreshSaveCount keeps total_saves sourced from the saved relation, not
// from the event ledger.
func (s *eventServiceImpl) refreshSaveCount(ctx context.Context, articleID uint64) error {
	count, err := s.savedRepo.GetSaveCountByArticleID(ctx, articleID)
	if err != nil {
		return err
	}
	return s.articleRepo.UpdateSaveCount(ctx, articleID, count)
}

func accessActionFor(eventType model.EventType) AccessAction {
	switch eventType {
	case model.EventUpvote, model.EventDownvote:
		return ActionVote
	case model.EventSave:
		return ActionSave
	case model.EventComment:
		return ActionComment
	default:
		return ActionRead
	}
}
