package service

import (
	"context"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/repository"
)

type WorkflowAction string

const (
	WorkflowSubmit  WorkflowAction = "submit"
	WorkflowApprove WorkflowAction = "approve"
	WorkflowReject  WorkflowAction = "reject"
)

type workflowTransition struct {
	From model.ArticleStatus
	To   model.ArticleStatus
}

// The approval sub-machine: draft -> pending_approval -> {published, draft}.
// Rejection goes back to draft, so submit/reject can cycle indefinitely.
var workflowTransitions = map[WorkflowAction]workflowTransition{
	WorkflowSubmit:  {From: model.StatusDraft, To: model.StatusPendingApproval},
	WorkflowApprove: {From: model.StatusPendingApproval, To: model.StatusPublished},
	WorkflowReject:  {From: model.StatusPendingApproval, To: model.StatusDraft},
}

type ApprovalService interface {
	Submit(ctx context.Context, actor *Actor, articleID uint64) (*model.Article, error)
	Approve(ctx context.Context, actor *Actor, articleID uint64) (*model.Article, error)
	Reject(ctx context.Context, actor *Actor, articleID uint64, reason string) (*model.Article, error)
}

type approvalServiceImpl struct {
	articleRepo repository.ArticleRepo
	auditSvc    AuditService
	now         func() time.Time
}

func NewApprovalService(articleRepo repository.ArticleRepo, auditSvc AuditService) ApprovalService {
	return &approvalServiceImpl{
		articleRepo: articleRepo,
		auditSvc:    auditSvc,
		now:         time.Now,
	}
}

func (s *approvalServiceImpl) Submit(ctx context.Context, actor *Actor, articleID uint64) (*model.Article, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthenticated
	}

	article, err := s.getArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != article.CreatedBy {
		return nil, ErrForbidden
	}
	if err := checkTransition(WorkflowSubmit, article.Status); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.articleRepo.UpdateArticle(ctx, articleID, map[string]interface{}{
		"status":                    model.StatusPendingApproval,
		"submitted_for_approval_at": now,
		"approved_by":               nil,
		"approved_at":               nil,
		"rejection_reason":          nil,
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogArticleAction(ctx, actor.UserID, model.AuditArticleSubmitted, articleID, nil)
	return s.getArticle(ctx, articleID)
}

func (s *approvalServiceImpl) Approve(ctx context.Context, actor *Actor, articleID uint64) (*model.Article, error) {
	if !CanAccess(actor, &model.Article{}, ActionApprove) {
		return nil, ErrForbidden
	}

	article, err := s.getArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(WorkflowApprove, article.Status); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.articleRepo.UpdateArticle(ctx, articleID, map[string]interface{}{
		"status":           model.StatusPublished,
		"visibility":       model.VisibilityPublic,
		"publish_date":     now,
		"approved_by":      actor.UserID,
		"approved_at":      now,
		"rejection_reason": nil,
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogArticleAction(ctx, actor.UserID, model.AuditArticleApproved, articleID, nil)
	return s.getArticle(ctx, articleID)
}

func (s *approvalServiceImpl) Reject(ctx context.Context, actor *Actor, articleID uint64, reason string) (*model.Article, error) {
	if !CanAccess(actor, &model.Article{}, ActionApprove) {
		return nil, ErrForbidden
	}

	article, err := s.getArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(WorkflowReject, article.Status); err != nil {
		return nil, err
	}

	err = s.articleRepo.UpdateArticle(ctx, articleID, map[string]interface{}{
		"status":           model.StatusDraft,
		"visibility":       model.VisibilityAccount,
		"rejection_reason": reason,
		"approved_by":      nil,
		"approved_at":      nil,
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogArticleAction(ctx, actor.UserID, model.AuditArticleRejected, articleID, map[string]interface{}{
		"rejection_reason": reason,
	})
	return s.getArticle(ctx, articleID)
}

func (s *approvalServiceImpl) getArticle(ctx context.Context, articleID uint64) (*model.Article, error) {
	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

func checkTransition(action WorkflowAction, current model.ArticleStatus) error {
	transition, ok := workflowTransitions[action]
	if !ok || transition.From != current {
		return ErrInvalidTransition
	}
	return nil
}
