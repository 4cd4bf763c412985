// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package qa

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/platform/database/schema"
	"github.com/taibuivan/hanqa/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed Q&A store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Submissions

/*
CreatePost inserts a post.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Conflict on slug collision, or persistence failures
*/
func (repository *PostgresRepository) CreatePost(context context.Context, post *Post) error {
	const query = `
		INSERT INTO qa.post (id, authorid, title, slug, body, bodytext, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`
	_, err := repository.db.Exec(context, query,
		post.ID, post.AuthorID, post.Title, post.Slug, post.Body, post.BodyText, post.CreatedAt,
	)
	return dberr.Wrap(err, "Post")
}

/*
CreateAnswer inserts an answer and bumps the post's answer count in one transaction.

Parameters:
  - context: context.Context
  - answer: *Answer

Returns:
  - error: NotFound if the post is missing or deleted
*/
func (repository *PostgresRepository) CreateAnswer(context context.Context, answer *Answer) error {
	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context,
			`UPDATE qa.post SET answercount = answercount + 1 WHERE id = $1 AND deletedat IS NULL`,
			answer.PostID,
		)
		if err != nil {
			return dberr.Wrap(err, "Post")
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Post")
		}

		const insert = `
			INSERT INTO qa.answer (id, postid, authorid, body, bodytext, createdat, updatedat)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
		`
		_, err = tx.Exec(context, insert,
			answer.ID, answer.PostID, answer.AuthorID, answer.Body, answer.BodyText, answer.CreatedAt,
		)
		return dberr.Wrap(err, "Answer")
	})
}

/*
CreateComment inserts a comment when the post, and the answer if given, are live.

Description: The existence check and the insert are a single INSERT ... SELECT,
so a concurrently deleted post cannot receive the comment.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: NotFound when nothing was inserted
*/
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO qa.comment (id, postid, answerid, authorid, body, createdat)
		SELECT $1::uuid, p.id, $3::uuid, $4::uuid, $5::text, $6::timestamptz
		FROM qa.post p
		WHERE p.id = $2 AND p.deletedat IS NULL
		  AND ($3::uuid IS NULL OR EXISTS (
			SELECT 1 FROM qa.answer a
			WHERE a.id = $3::uuid AND a.postid = p.id AND a.deletedat IS NULL
		  ))
	`
	tag, err := repository.db.Exec(context, query,
		comment.ID, comment.PostID, comment.AnswerID, comment.AuthorID, comment.Body, comment.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}
	if tag.RowsAffected() == 0 {
		if comment.AnswerID != nil {
			return apperr.NotFound("Answer")
		}
		return apperr.NotFound("Post")
	}
	return nil
}

// # Reads

/*
RecentPosts returns the newest live posts joined with their authors' trust signals.

Parameters:
  - context: context.Context
  - limit: int

Returns:
  - []TrendingPost: Newest first
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) RecentPosts(context context.Context, limit int) ([]TrendingPost, error) {
	account := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT
			p.id, p.authorid, p.title, p.slug, p.body, p.bodytext,
			p.likecount, p.viewcount, p.answercount, p.createdat,
			a.%s, a.%s, a.%s, a.%s
		FROM qa.post p
		JOIN %s a ON a.%s = p.authorid
		WHERE p.deletedat IS NULL AND a.%s IS NULL
		ORDER BY p.createdat DESC, p.id DESC
		LIMIT $1`,
		account.Username, account.IsExpert, account.IsVerified, account.BadgeType,
		account.Table, account.ID, account.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "recent_posts")
	}
	defer rows.Close()

	posts := []TrendingPost{}
	for rows.Next() {
		var post TrendingPost
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Slug, &post.Body, &post.BodyText,
			&post.LikeCount, &post.ViewCount, &post.AnswerCount, &post.CreatedAt,
			&post.AuthorUsername, &post.AuthorSignals.IsExpert, &post.AuthorSignals.IsVerified, &post.AuthorSignals.BadgeType,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	return posts, dberr.Wrap(rows.Err(), "recent_posts")
}

/*
CountSince counts an author's submissions across posts, answers and comments.

Description: Soft-deleted rows still count, so deleting spam does not refill
the budget.

Parameters:
  - context: context.Context
  - authorID: string
  - cutoff: time.Time

Returns:
  - int: Combined count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) CountSince(context context.Context, authorID string, cutoff time.Time) (int, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM qa.post    WHERE authorid = $1 AND createdat > $2) +
			(SELECT COUNT(*) FROM qa.answer  WHERE authorid = $1 AND createdat > $2) +
			(SELECT COUNT(*) FROM qa.comment WHERE authorid = $1 AND createdat > $2)
	`
	var count int
	if err := repository.db.QueryRow(context, query, authorID, cutoff).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_submissions")
	}
	return count, nil
}

// # Moderation

/*
SoftDeletePost marks a post deleted.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound or persistence failures
*/
func (repository *PostgresRepository) SoftDeletePost(context context.Context, id string) error {
	return repository.softDelete(context, `UPDATE qa.post SET deletedat = NOW() WHERE id = $1 AND deletedat IS NULL`, id, "Post")
}

/*
SoftDeleteAnswer marks an answer deleted and decrements the post's answer count.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound or persistence failures
*/
func (repository *PostgresRepository) SoftDeleteAnswer(context context.Context, id string) error {
	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		var postID string
		err := tx.QueryRow(context,
			`UPDATE qa.answer SET deletedat = NOW() WHERE id = $1 AND deletedat IS NULL RETURNING postid`,
			id,
		).Scan(&postID)
		if err != nil {
			return dberr.Wrap(err, "Answer")
		}

		_, err = tx.Exec(context,
			`UPDATE qa.post SET answercount = GREATEST(answercount - 1, 0) WHERE id = $1`,
			postID,
		)
		return dberr.Wrap(err, "Post")
	})
}

/*
SoftDeleteComment marks a comment deleted.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound or persistence failures
*/
func (repository *PostgresRepository) SoftDeleteComment(context context.Context, id string) error {
	return repository.softDelete(context, `UPDATE qa.comment SET deletedat = NOW() WHERE id = $1 AND deletedat IS NULL`, id, "Comment")
}

func (repository *PostgresRepository) softDelete(context context.Context, query, id, resource string) error {
	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
