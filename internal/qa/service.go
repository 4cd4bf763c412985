// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package qa

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/platform/ctxutil"
	"github.com/taibuivan/hanqa/internal/platform/validate"
	"github.com/taibuivan/hanqa/internal/ratelimit"
	"github.com/taibuivan/hanqa/internal/trust"
	"github.com/taibuivan/hanqa/internal/ugc"
	"github.com/taibuivan/hanqa/pkg/slug"
	"github.com/taibuivan/hanqa/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates submissions and trending reads.
type Service struct {
	repo       Repository
	screener   *ugc.Screener
	limiter    ratelimit.Limiter
	retryAfter int
	logger     *slog.Logger
	now        func() time.Time
}

/*
NewService constructs a new qa [Service].

Parameters:
  - repo: Repository
  - screener: *ugc.Screener
  - limiter: ratelimit.Limiter (per-author submission budget)
  - retryAfter: int (seconds advertised on 429)
  - logger: *slog.Logger
*/
func NewService(repo Repository, screener *ugc.Screener, limiter ratelimit.Limiter, retryAfter int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		screener:   screener,
		limiter:    limiter,
		retryAfter: retryAfter,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	clone := *service
	clone.now = now
	return &clone
}

// # Submissions

/*
CreatePost screens and stores a new question.

Description: The title is screened as plain text, the body as rich markup.
The slug is derived from the screened title plus the tail of the id.

Parameters:
  - context: context.Context
  - authorID: string
  - input: PostInput

Returns:
  - *Post: The stored post
  - error: RATE_LIMITED, verdict or content-policy errors, or persistence failures
*/
func (service *Service) CreatePost(context context.Context, authorID string, input PostInput) (*Post, error) {
	if err := service.checkBudget(context, authorID); err != nil {
		return nil, err
	}

	title, err := service.screener.ScreenPlain(context, ugc.ContentPostTitle, input.Title)
	if err != nil {
		return nil, withField(err, FieldTitle)
	}

	body, err := service.screener.Screen(context, ugc.ContentPost, input.Body)
	if err != nil {
		return nil, withField(err, FieldBody)
	}

	id := uuidv7.New()
	post := &Post{
		ID:        id,
		AuthorID:  authorID,
		Title:     title.Text,
		Slug:      slug.WithSuffix(slug.From(title.Text), uuidv7.Short(id)),
		Body:      body.HTML,
		BodyText:  body.Text,
		CreatedAt: service.now().UTC(),
	}

	if err := service.repo.CreatePost(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("author_id", authorID),
		slog.Int("length", body.Length),
	)

	return post, nil
}

/*
CreateAnswer screens and stores an answer to a post.

Parameters:
  - context: context.Context
  - authorID: string
  - postID: string
  - input: AnswerInput

Returns:
  - *Answer: The stored answer
  - error: RATE_LIMITED, verdict, content-policy, NotFound or persistence failures
*/
func (service *Service) CreateAnswer(context context.Context, authorID, postID string, input AnswerInput) (*Answer, error) {
	if err := (&validate.Validator{}).UUID(FieldPostID, postID).Err(); err != nil {
		return nil, err
	}

	if err := service.checkBudget(context, authorID); err != nil {
		return nil, err
	}

	body, err := service.screener.Screen(context, ugc.ContentAnswer, input.Body)
	if err != nil {
		return nil, withField(err, FieldBody)
	}

	answer := &Answer{
		ID:        uuidv7.New(),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body.HTML,
		BodyText:  body.Text,
		CreatedAt: service.now().UTC(),
	}

	if err := service.repo.CreateAnswer(context, answer); err != nil {
		return nil, err
	}

	service.logger.Info("answer_created",
		slog.String("answer_id", answer.ID),
		slog.String("post_id", postID),
		slog.String("author_id", authorID),
	)

	return answer, nil
}

/*
CreateComment screens and stores a comment on a post or one of its answers.

Parameters:
  - context: context.Context
  - authorID: string
  - postID: string
  - input: CommentInput

Returns:
  - *Comment: The stored comment
  - error: RATE_LIMITED, verdict, content-policy, NotFound or persistence failures
*/
func (service *Service) CreateComment(context context.Context, authorID, postID string, input CommentInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.UUID(FieldPostID, postID)
	if input.AnswerID != nil {
		validator.UUID(FieldAnswerID, *input.AnswerID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkBudget(context, authorID); err != nil {
		return nil, err
	}

	body, err := service.screener.Screen(context, ugc.ContentComment, input.Body)
	if err != nil {
		return nil, withField(err, FieldBody)
	}

	comment := &Comment{
		ID:        uuidv7.New(),
		PostID:    postID,
		AnswerID:  input.AnswerID,
		AuthorID:  authorID,
		Body:      body.HTML,
		CreatedAt: service.now().UTC(),
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
		slog.String("author_id", authorID),
	)

	return comment, nil
}

// withField tags a screening error with the input field it came from.
func withField(err error, field string) error {
	if appErr := apperr.As(err); appErr != nil {
		return appErr.WithMeta("field", field)
	}
	return err
}

// checkBudget enforces the per-author submission window.
func (service *Service) checkBudget(context context.Context, authorID string) error {
	allowed, err := service.limiter.Allow(context, authorID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !allowed {
		ctxutil.GetLogger(context).Warn("submission_rate_limited", slog.String("author_id", authorID))
		return apperr.RateLimited(service.retryAfter)
	}
	return nil
}

// # Trending

/*
Trending ranks recent posts by likes, views and author trust.

Parameters:
  - context: context.Context
  - limit: int (clamped to [1, 50], default 20)

Returns:
  - []trust.Ranked[TrendingPost]: Highest score first
  - error: Retrieval failures
*/
func (service *Service) Trending(context context.Context, limit int) ([]trust.Ranked[TrendingPost], error) {
	if limit < 1 || limit > maxTrendingLimit {
		limit = defaultTrendingLimit
	}

	posts, err := service.repo.RecentPosts(context, trendingCandidates)
	if err != nil {
		return nil, err
	}

	ranked := trust.Rank(posts, service.now())
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// # Moderation

/*
DeletePost soft-deletes a post on behalf of an admin.

Parameters:
  - context: context.Context
  - id: string
  - admin: string

Returns:
  - error: VALIDATION_ERROR, NOT_FOUND or persistence failures
*/
func (service *Service) DeletePost(context context.Context, id, admin string) error {
	return service.softDelete(context, "post", id, admin, service.repo.SoftDeletePost)
}

// DeleteAnswer soft-deletes an answer on behalf of an admin.
func (service *Service) DeleteAnswer(context context.Context, id, admin string) error {
	return service.softDelete(context, "answer", id, admin, service.repo.SoftDeleteAnswer)
}

// DeleteComment soft-deletes a comment on behalf of an admin.
func (service *Service) DeleteComment(context context.Context, id, admin string) error {
	return service.softDelete(context, "comment", id, admin, service.repo.SoftDeleteComment)
}

func (service *Service) softDelete(context context.Context, kind, id, admin string, remove func(context.Context, string) error) error {
	if err := (&validate.Validator{}).UUID("id", id).Err(); err != nil {
		return err
	}

	if err := remove(context, id); err != nil {
		return err
	}

	service.logger.Info("content_deleted",
		slog.String("kind", kind),
		slog.String("id", id),
		slog.String("admin", admin),
	)
	return nil
}
