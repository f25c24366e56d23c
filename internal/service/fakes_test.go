package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/repository"
)

// In-memory repo fakes. They mirror the SQL semantics of the real repos
// closely enough for service-level tests, including the "authenticated
// actors only" filter on aggregates.

type fakeArticleRepo struct {
	articles map[uint64]*model.Article
	nextID   uint64
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[uint64]*model.Article), nextID: 1}
}

func (f *fakeArticleRepo) CreateArticle(_ context.Context, article *model.Article) error {
	if article.ID == 0 {
		article.ID = f.nextID
		f.nextID++
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	f.articles[article.ID] = article
	return nil
}

func (f *fakeArticleRepo) GetArticle(_ context.Context, id uint64) (*model.Article, error) {
	article, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	copied := *article
	return &copied, nil
}

func (f *fakeArticleRepo) GetArticleByIDs(_ context.Context, ids []uint64) ([]*model.Article, error) {
	var out []*model.Article
	for _, id := range ids {
		if article, ok := f.articles[id]; ok {
			copied := *article
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeArticleRepo) UpdateArticle(_ context.Context, id uint64, updates map[string]interface{}) error {
	article, ok := f.articles[id]
	if !ok {
		return nil
	}
	for column, value := range updates {
		switch column {
		case "title":
			article.Title = value.(string)
		case "subtitle":
			article.Subtitle = value.(string)
		case "content":
			article.Content = value.(string)
		case "category":
			article.Category = value.(string)
		case "status":
			article.Status = value.(model.ArticleStatus)
		case "visibility":
			article.Visibility = value.(model.ArticleVisibility)
		case "rejection_reason":
			if value == nil {
				article.RejectionReason = nil
			} else {
				reason := value.(string)
				article.RejectionReason = &reason
			}
		case "approved_by":
			if value == nil {
				article.ApprovedBy = nil
			} else {
				by := value.(uint64)
				article.ApprovedBy = &by
			}
		case "approved_at":
			if value == nil {
				article.ApprovedAt = nil
			} else {
				at := value.(time.Time)
				article.ApprovedAt = &at
			}
		case "submitted_for_approval_at":
			if value == nil {
				article.SubmittedForApprovalAt = nil
			} else {
				at := value.(time.Time)
				article.SubmittedForApprovalAt = &at
			}
		case "publish_date":
			if value == nil {
				article.PublishDate = nil
			} else {
				at := value.(time.Time)
				article.PublishDate = &at
			}
		}
	}
	article.UpdatedAt = time.Now()
	return nil
}

func (f *fakeArticleRepo) DeleteArticle(_ context.Context, id uint64) error {
	delete(f.articles, id)
	return nil
}

func (f *fakeArticleRepo) ListArticles(_ context.Context, filter repository.ArticleFilter, limit, offset int) ([]*model.Article, int64, error) {
	var matched []*model.Article
	for _, article := range f.articles {
		if filter.AccountID != 0 && article.AccountID != filter.AccountID {
			continue
		}
		if filter.CreatedBy != 0 && article.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.Status != "" && article.Status != filter.Status {
			continue
		}
		if filter.Visibility != "" && article.Visibility != filter.Visibility {
			continue
		}
		if filter.Category != "" && article.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(article.Title, filter.Search) {
			continue
		}
		copied := *article
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeArticleRepo) GetPublishedArticles(_ context.Context) ([]*model.Article, error) {
	var out []*model.Article
	for _, article := range f.articles {
		if article.Status == model.StatusPublished {
			copied := *article
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeArticleRepo) UpdateVoteCounts(_ context.Context, id uint64, upvotes, downvotes, voteScore int) error {
	if article, ok := f.articles[id]; ok {
		article.Upvotes = upvotes
		article.Downvotes = downvotes
		article.VoteScore = voteScore
	}
	return nil
}

func (f *fakeArticleRepo) UpdateTrendScore(_ context.Context, id uint64, trendScore float64, isTrending bool) error {
	if article, ok := f.articles[id]; ok {
		article.TrendScore = trendScore
		article.IsTrending = isTrending
	}
	return nil
}

func (f *fakeArticleRepo) UpdateEngagementCounters(_ context.Context, id uint64, agg *repository.EngagementAggregate) error {
	if article, ok := f.articles[id]; ok {
		article.TotalViews = int(agg.TotalViews)
		article.UniqueViews = int(agg.UniqueViews)
		article.TotalShares = int(agg.TotalShares)
		article.TotalComments = int(agg.TotalComments)
		article.AvgReadTime = agg.AvgReadTime
		article.BounceRate = agg.BounceRate
	}
	return nil
}

func (f *fakeArticleRepo) UpdateSaveCount(_ context.Context, id uint64, totalSaves int64) error {
	if article, ok := f.articles[id]; ok {
		article.TotalSaves = int(totalSaves)
	}
	return nil
}

func (f *fakeArticleRepo) GetAccountStats(_ context.Context, accountID uint64) (*repository.AccountArticleStats, error) {
	stats := &repository.AccountArticleStats{AccountID: accountID}
	for _, article := range f.articles {
		if article.AccountID != accountID {
			continue
		}
		stats.TotalArticles++
		switch article.Status {
		case model.StatusPublished:
			stats.PublishedArticles++
		case model.StatusDraft:
			stats.DraftArticles++
		}
		stats.TotalViews += int64(article.TotalViews)
		stats.TotalVotes += int64(article.Upvotes + article.Downvotes)
	}
	return stats, nil
}

type voteKey struct {
	articleID uint64
	userID    uint64
}

type fakeVoteRepo struct {
	votes map[voteKey]*model.ArticleVote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[voteKey]*model.ArticleVote)}
}

func (f *fakeVoteRepo) GetVote(_ context.Context, articleID, userID uint64) (*model.ArticleVote, error) {
	vote, ok := f.votes[voteKey{articleID, userID}]
	if !ok {
		return nil, nil
	}
	copied := *vote
	return &copied, nil
}

func (f *fakeVoteRepo) CreateVote(_ context.Context, vote *model.ArticleVote) error {
	f.votes[voteKey{vote.ArticleID, vote.UserID}] = vote
	return nil
}

func (f *fakeVoteRepo) UpdateVoteType(_ context.Context, articleID, userID uint64, voteType model.VoteType) error {
	if vote, ok := f.votes[voteKey{articleID, userID}]; ok {
		vote.VoteType = voteType
	}
	return nil
}

func (f *fakeVoteRepo) DeleteVote(_ context.Context, articleID, userID uint64) error {
	delete(f.votes, voteKey{articleID, userID})
	return nil
}

func (f *fakeVoteRepo) CountVotes(_ context.Context, articleID uint64) (int, int, error) {
	upvotes, downvotes := 0, 0
	for key, vote := range f.votes {
		if key.articleID != articleID {
			continue
		}
		if vote.VoteType == model.VoteUp {
			upvotes++
		} else {
			downvotes++
		}
	}
	return upvotes, downvotes, nil
}

type fakeEventRepo struct {
	events []*model.ArticleEvent
	nextID uint64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{nextID: 1}
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event *model.ArticleEvent) error {
	event.ID = f.nextID
	f.nextID++
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) ExistsEvent(_ context.Context, articleID, userID uint64, eventType model.EventType) (bool, error) {
	for _, event := range f.events {
		if event.ArticleID == articleID && event.UserID == userID && event.EventType == eventType {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, articleID, userID uint64, eventType model.EventType) error {
	kept := f.events[:0]
	for _, event := range f.events {
		if event.ArticleID == articleID && event.UserID == userID && event.EventType == eventType {
			continue
		}
		kept = append(kept, event)
	}
	f.events = kept
	return nil
}

func (f *fakeEventRepo) AggregateArticle(_ context.Context, articleID uint64) (*repository.EngagementAggregate, error) {
	agg := &repository.EngagementAggregate{}
	viewers := make(map[uint64]bool)
	readTimeSum, readTimeCount, bounceViews := 0, 0, int64(0)

	for _, event := range f.events {
		if event.ArticleID != articleID || event.UserID == 0 {
			continue
		}
		switch event.EventType {
		case model.EventView:
			agg.TotalViews++
			viewers[event.UserID] = true
			if event.ReadTimeSeconds < 10 {
				bounceViews++
			}
			if event.ReadTimeSeconds > 0 {
				readTimeSum += event.ReadTimeSeconds
				readTimeCount++
			}
		case model.EventShare:
			agg.TotalShares++
		case model.EventSave:
			agg.TotalSaves++
		case model.EventComment:
			agg.TotalComments++
		case model.EventLike:
			agg.TotalLikes++
		}
	}

	agg.UniqueViews = int64(len(viewers))
	if readTimeCount > 0 {
		agg.AvgReadTime = float64(readTimeSum) / float64(readTimeCount)
	}
	if agg.TotalViews > 0 {
		agg.BounceRate = float64(bounceViews) * 100 / float64(agg.TotalViews)
	}
	return agg, nil
}

func (f *fakeEventRepo) AggregateByDate(_ context.Context, dayStart, dayEnd time.Time) ([]*repository.DailyAggregate, error) {
	byArticle := make(map[uint64]*repository.DailyAggregate)
	readTimeSums := make(map[uint64][2]int)
	scrollSums := make(map[uint64][2]int)

	for _, event := range f.events {
		if event.UserID == 0 {
			continue
		}
		if event.CreatedAt.Before(dayStart) || !event.CreatedAt.Before(dayEnd) {
			continue
		}
		agg, ok := byArticle[event.ArticleID]
		if !ok {
			agg = &repository.DailyAggregate{ArticleID: event.ArticleID, AccountID: event.AccountID}
			byArticle[event.ArticleID] = agg
		}
		switch event.EventType {
		case model.EventView:
			agg.Views++
			if event.ReadTimeSeconds < 10 {
				agg.BounceViews++
			}
			if event.ReadTimeSeconds > 0 {
				sums := readTimeSums[event.ArticleID]
				readTimeSums[event.ArticleID] = [2]int{sums[0] + event.ReadTimeSeconds, sums[1] + 1}
			}
			if event.ScrollPercentage > 0 {
				sums := scrollSums[event.ArticleID]
				scrollSums[event.ArticleID] = [2]int{sums[0] + event.ScrollPercentage, sums[1] + 1}
			}
		case model.EventShare:
			agg.Shares++
		case model.EventSave:
			agg.Saves++
		case model.EventComment:
			agg.Comments++
		case model.EventLike:
			agg.Likes++
		case model.EventUpvote, model.EventDownvote:
			agg.Votes++
		}
	}

	var out []*repository.DailyAggregate
	for articleID, agg := range byArticle {
		if sums := readTimeSums[articleID]; sums[1] > 0 {
			agg.AvgReadTime = float64(sums[0]) / float64(sums[1])
		}
		if sums := scrollSums[articleID]; sums[1] > 0 {
			agg.AvgScrollPercentage = float64(sums[0]) / float64(sums[1])
		}
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArticleID < out[j].ArticleID })
	return out, nil
}

type analyticsKey struct {
	articleID uint64
	date      string
}

type fakeAnalyticsRepo struct {
	rows map[analyticsKey]*model.ArticleDailyAnalytics
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{rows: make(map[analyticsKey]*model.ArticleDailyAnalytics)}
}

func (f *fakeAnalyticsRepo) UpsertDaily(_ context.Context, row *model.ArticleDailyAnalytics) error {
	f.rows[analyticsKey{row.ArticleID, row.MetricDate.Format(time.DateOnly)}] = row
	return nil
}

func (f *fakeAnalyticsRepo) GetDailyRange(_ context.Context, articleID uint64, from, to time.Time) ([]*model.ArticleDailyAnalytics, error) {
	var out []*model.ArticleDailyAnalytics
	for _, row := range f.rows {
		if row.ArticleID != articleID {
			continue
		}
		if row.MetricDate.Before(from) || row.MetricDate.After(to) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MetricDate.Before(out[j].MetricDate) })
	return out, nil
}

type fakeSavedRepo struct {
	saved map[voteKey]time.Time
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{saved: make(map[voteKey]time.Time)}
}

func (f *fakeSavedRepo) CreateSaved(_ context.Context, saved *model.SavedArticle) error {
	f.saved[voteKey{saved.ArticleID, saved.UserID}] = saved.CreatedAt
	return nil
}

func (f *fakeSavedRepo) DeleteSaved(_ context.Context, userID, articleID uint64) error {
	delete(f.saved, voteKey{articleID, userID})
	return nil
}

func (f *fakeSavedRepo) CheckSavedExists(_ context.Context, userID, articleID uint64) (bool, error) {
	_, ok := f.saved[voteKey{articleID, userID}]
	return ok, nil
}

func (f *fakeSavedRepo) GetSavedArticleIDs(_ context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var ids []uint64
	for key := range f.saved {
		if key.userID == userID {
			ids = append(ids, key.articleID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeSavedRepo) GetSaveCountByArticleID(_ context.Context, articleID uint64) (int64, error) {
	var count int64
	for key := range f.saved {
		if key.articleID == articleID {
			count++
		}
	}
	return count, nil
}

type fakeAuditRepo struct {
	logs []*model.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (f *fakeAuditRepo) CreateLog(_ context.Context, log *model.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeAuditRepo) GetLogsByEntity(_ context.Context, entityType string, entityID uint64, limit, offset int) ([]*model.AuditLog, error) {
	var out []*model.AuditLog
	for _, entry := range f.logs {
		if entry.EntityType == entityType && entry.EntityID == entityID {
			out = append(out, entry)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Test actors.

func anonymousActor() *Actor {
	return &Actor{UserID: 0}
}

func memberActor(userID, accountID uint64, role model.AccountRole) *Actor {
	return &Actor{
		UserID:      userID,
		Memberships: map[uint64]model.AccountRole{accountID: role},
	}
}

func outsiderActor(userID uint64) *Actor {
	return &Actor{UserID: userID, Memberships: map[uint64]model.AccountRole{}}
}

func adminActor(userID uint64) *Actor {
	return &Actor{UserID: userID, GlobalAdmin: true, Memberships: map[uint64]model.AccountRole{}}
}
