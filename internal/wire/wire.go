package wire

import (
	"leakerflow/internal/api"
	"leakerflow/internal/api/config"
	"leakerflow/internal/api/handler"
	"leakerflow/internal/job"
	"leakerflow/internal/pkg/cron"
	"leakerflow/internal/pkg/kafka"
	"leakerflow/internal/repository"
	"leakerflow/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer holds all top-level components of the application.
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	articleRepo := repository.NewArticleRepo(db)
	voteRepo := repository.NewVoteRepo(db)
	eventRepo := repository.NewEventRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)
	savedRepo := repository.NewSavedRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	actorService := service.NewActorService(accountRepo)
	auditService := service.NewAuditService(auditRepo)
	trendService := service.NewTrendService(articleRepo)
	voteService := service.NewVoteService(articleRepo, voteRepo, eventRepo, trendService)
	eventService := service.NewEventService(articleRepo, eventRepo, savedRepo)
	analyticsService := service.NewAnalyticsService(articleRepo, eventRepo, analyticsRepo)
	approvalService := service.NewApprovalService(articleRepo, auditService)
	articleService := service.NewArticleService(articleRepo, accountRepo, voteService, eventService, auditService)

	handlers := &api.HandlersGroup{
		ArticleHandler:   handler.NewArticleHandler(actorService, articleService),
		VoteHandler:      handler.NewVoteHandler(actorService, voteService),
		EventHandler:     handler.NewEventHandler(actorService, eventService),
		ApprovalHandler:  handler.NewApprovalHandler(actorService, approvalService),
		AnalyticsHandler: handler.NewAnalyticsHandler(actorService, analyticsService),
		AdminHandler:     handler.NewAdminHandler(actorService, articleService, analyticsService, trendService, auditService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewTrendScoreJob(trendService),
		job.NewDailyRollupJob(analyticsService),
	)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, actorService, eventService)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
