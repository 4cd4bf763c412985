// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package qa

import (
	"context"
	"time"
)

// # Q&A Data Access

// Repository defines the data access contract for posts, answers and comments.
type Repository interface {

	/*
		CreatePost persists a screened post.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Conflict on a slug collision, or persistence failures
	*/
	CreatePost(context context.Context, post *Post) error

	/*
		CreateAnswer persists a screened answer and bumps the post's answer count.

		Parameters:
		  - context: context.Context
		  - answer: *Answer

		Returns:
		  - error: NotFound if the post is missing or deleted
	*/
	CreateAnswer(context context.Context, answer *Answer) error

	/*
		CreateComment persists a screened comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: NotFound if the post (or the answer within that post) is missing
	*/
	CreateComment(context context.Context, comment *Comment) error

	/*
		RecentPosts returns the newest live posts with their authors' trust signals.

		Parameters:
		  - context: context.Context
		  - limit: int

		Returns:
		  - []TrendingPost: Ordered by createdat DESC
		  - error: Database retrieval failures
	*/
	RecentPosts(context context.Context, limit int) ([]TrendingPost, error)

	/*
		CountSince counts posts, answers and comments written by an author after cutoff.

		Parameters:
		  - context: context.Context
		  - authorID: string
		  - cutoff: time.Time

		Returns:
		  - int: Combined count
		  - error: Database retrieval failures
	*/
	CountSince(context context.Context, authorID string, cutoff time.Time) (int, error)

	// # Moderation

	/*
		SoftDeletePost hides a post.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: NotFound if the post is missing or already deleted
	*/
	SoftDeletePost(context context.Context, id string) error

	/*
		SoftDeleteAnswer hides an answer and decrements the post's answer count.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: NotFound if the answer is missing or already deleted
	*/
	SoftDeleteAnswer(context context.Context, id string) error

	/*
		SoftDeleteComment hides a comment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: NotFound if the comment is missing or already deleted
	*/
	SoftDeleteComment(context context.Context, id string) error
}
