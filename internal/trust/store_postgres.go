// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package trust

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hanqa/internal/platform/database/schema"
	"github.com/taibuivan/hanqa/internal/platform/dberr"
	"github.com/taibuivan/hanqa/pkg/pointer"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed trust store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Backfill

/*
AuthorStats aggregates the inputs of [Compute] for every active account.

Description: Answers and followers are grouped in subqueries and LEFT JOINed so
accounts without answers still get a (zero) profile.

Parameters:
  - context: context.Context

Returns:
  - []AuthorStats: Ordered by user id
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) AuthorStats(context context.Context) ([]AuthorStats, error) {
	account, follow := schema.UserAccount, schema.UserFollow

	query := fmt.Sprintf(`
		SELECT
			a.%s,
			COALESCE(ans.answers, 0), COALESCE(ans.adopted, 0), COALESCE(ans.likes, 0),
			COALESCE(f.followers, 0)
		FROM %s a
		LEFT JOIN (
			SELECT authorid,
				COUNT(*) AS answers,
				COUNT(*) FILTER (WHERE isadopted) AS adopted,
				SUM(likecount) AS likes
			FROM qa.answer
			WHERE deletedat IS NULL
			GROUP BY authorid
		) ans ON ans.authorid = a.%s
		LEFT JOIN (
			SELECT %s AS userid, COUNT(DISTINCT %s) AS followers
			FROM %s
			GROUP BY %s
		) f ON f.userid = a.%s
		WHERE a.%s IS NULL
		ORDER BY a.%s`,
		account.ID,
		account.Table,
		account.ID,
		follow.FollowingID, follow.FollowerID, follow.Table, follow.FollowingID,
		account.ID,
		account.DeletedAt,
		account.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "author_stats")
	}
	defer rows.Close()

	var stats []AuthorStats
	for rows.Next() {
		var row AuthorStats
		if err := rows.Scan(&row.UserID, &row.AnswersCount, &row.AdoptedCount, &row.LikesSum, &row.Followers); err != nil {
			return nil, dberr.Wrap(err, "scan_author_stats")
		}
		stats = append(stats, row)
	}

	return stats, dberr.Wrap(rows.Err(), "author_stats")
}

/*
SaveProfiles writes every profile in one transaction using a pgx batch.

Parameters:
  - context: context.Context
  - profiles: []Profile
  - at: time.Time

Returns:
  - error: Persistence failures (the transaction is rolled back)
*/
func (repository *PostgresRepository) SaveProfiles(context context.Context, profiles []Profile, at time.Time) error {
	if len(profiles) == 0 {
		return nil
	}

	account := schema.UserAccount
	columns := account.TrustColumns()
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`,
		account.Table, strings.Join(assignments, ", "), account.ID,
	)

	return pgx.BeginFunc(context, repository.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, profile := range profiles {
			batch.Queue(query, profile.UserID, profile.TrustScore, profile.HelpfulAnswers, profile.AdoptionRate, at)
		}
		return dberr.Wrap(tx.SendBatch(context, batch).Close(), "save_trust_profiles")
	})
}

// # Serving Path

/*
FindProfile retrieves the stored profile of one user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Stored profile
  - error: NotFound or database failures
*/
func (repository *PostgresRepository) FindProfile(context context.Context, userID string) (*Profile, error) {
	account := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		account.ID, account.TrustScore, account.HelpfulAnswers, account.AdoptionRate,
		account.BadgeType, account.TrustUpdatedAt,
		account.Table, account.ID, account.DeletedAt,
	)

	profile := &Profile{}
	err := repository.db.QueryRow(context, query, userID).Scan(
		&profile.UserID, &profile.TrustScore, &profile.HelpfulAnswers, &profile.AdoptionRate,
		&profile.BadgeType, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return profile, nil
}

/*
UpdateSignals patches the admin trust flags of a user.

Description: Nil patch fields keep the stored value through COALESCE. The
badge is only touched when the patch carries one; "" stores NULL.

Parameters:
  - context: context.Context
  - userID: string
  - patch: SignalsPatch

Returns:
  - *Signals: Flags after the update
  - error: NotFound or database failures
*/
func (repository *PostgresRepository) UpdateSignals(context context.Context, userID string, patch SignalsPatch) (*Signals, error) {
	account := schema.UserAccount

	query := fmt.Sprintf(`
		UPDATE %[1]s
		SET %[2]s = COALESCE($2, %[2]s),
			%[3]s = COALESCE($3, %[3]s),
			%[4]s = CASE WHEN $4 THEN NULLIF($5, '') ELSE %[4]s END,
			%[5]s = NOW()
		WHERE %[6]s = $1 AND %[7]s IS NULL
		RETURNING %[2]s, %[3]s, %[4]s`,
		account.Table,
		account.IsExpert, account.IsVerified, account.BadgeType,
		account.UpdatedAt, account.ID, account.DeletedAt,
	)

	signals := &Signals{}
	err := repository.db.QueryRow(context, query,
		userID, patch.IsExpert, patch.IsVerified,
		patch.BadgeType != nil, pointer.Val(patch.BadgeType),
	).Scan(&signals.IsExpert, &signals.IsVerified, &signals.BadgeType)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return signals, nil
}
