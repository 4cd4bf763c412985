// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package qa accepts questions, answers and comments and serves trending posts.

# Submission Flow

Every write goes through the same three steps:

 1. The author's submission budget is checked (rows in the last window).
 2. The text is screened by [ugc.Screener] (sanitize, validate, filter, links).
 3. The sanitized markup and its plain text are persisted.

A rejected submission never reaches the database.

# Trending

Recent posts are read newest first together with their authors' trust
signals, then ordered by [trust.Rank].
*/
package qa

import (
	"time"

	"github.com/taibuivan/hanqa/internal/trust"
)

// # Core Entities

// Post is a question.
type Post struct {
	ID          string    `json:"id"` // UUIDv7
	AuthorID    string    `json:"authorId"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Body        string    `json:"body"`     // Sanitized HTML
	BodyText    string    `json:"bodyText"` // Visible text, for search and excerpts
	LikeCount   int       `json:"likeCount"`
	ViewCount   int       `json:"viewCount"`
	AnswerCount int       `json:"answerCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Answer is a reply to a post.
type Answer struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	BodyText  string    `json:"bodyText"`
	LikeCount int       `json:"likeCount"`
	IsAdopted bool      `json:"isAdopted"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a short remark on a post or on one of its answers.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AnswerID  *string   `json:"answerId,omitempty"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrendingPost is a post with the author fields the ranking needs.
type TrendingPost struct {
	Post
	AuthorUsername string        `json:"authorUsername"`
	AuthorSignals  trust.Signals `json:"authorSignals"`
}

// RankingInput implements [trust.Rankable].
func (p TrendingPost) RankingInput() trust.RankingInput {
	return trust.RankingInput{
		Likes:     p.LikeCount,
		Views:     p.ViewCount,
		CreatedAt: p.CreatedAt,
		Signals:   p.AuthorSignals,
	}
}

// # Inputs

// PostInput is the body of a new post.
type PostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AnswerInput is the body of a new answer.
type AnswerInput struct {
	Body string `json:"body"`
}

// CommentInput is the body of a new comment. AnswerID targets an answer of the post.
type CommentInput struct {
	AnswerID *string `json:"answerId"`
	Body     string  `json:"body"`
}

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldBody     = "body"
	FieldPostID   = "postId"
	FieldAnswerID = "answerId"
)

const (
	// trendingCandidates is how many recent posts are ranked per request.
	trendingCandidates = 200
	// defaultTrendingLimit is the page size of GET /posts/trending.
	defaultTrendingLimit = 20
	// maxTrendingLimit caps ?limit on GET /posts/trending.
	maxTrendingLimit = 50
)
