// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hanqa/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed report store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reportColumns = `id, reporterid, targettype, targetid, reason, status, reviewnote, handledby, handledat, createdat`

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner, extra ...any) (*Report, error) {
	report := &Report{}
	dest := append([]any{
		&report.ID, &report.ReporterID, &report.TargetType, &report.TargetID, &report.Reason,
		&report.Status, &report.ReviewNote, &report.HandledBy, &report.HandledAt, &report.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return report, nil
}

/*
Create inserts a new report.

Parameters:
  - context: context.Context
  - report: *Report

Returns:
  - error: Conflict (uq_report_pending) or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, report *Report) error {
	const query = `
		INSERT INTO moderation.report (id, reporterid, targettype, targetid, reason, status, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := repository.db.Exec(context, query,
		report.ID, report.ReporterID, report.TargetType, report.TargetID, report.Reason, report.Status, report.CreatedAt,
	)
	return dberr.Wrap(err, "Pending report")
}

/*
List returns a page of reports and the total count.

Description: Uses COUNT(*) OVER() so a single round trip yields both.

Parameters:
  - context: context.Context
  - status: Status
  - limit: int
  - offset: int

Returns:
  - []*Report: Page of reports
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, status Status, limit, offset int) ([]*Report, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + reportColumns + `, COUNT(*) OVER() AS total FROM moderation.report WHERE TRUE`)

	args := []any{}
	argID := 1

	if status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, status)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY createdat DESC, id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reports")
	}
	defer rows.Close()

	reports := []*Report{}
	var total int
	for rows.Next() {
		report, err := scanReport(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_report")
		}
		reports = append(reports, report)
	}

	return reports, total, dberr.Wrap(rows.Err(), "list_reports")
}

/*
UpdateStatus writes a decision and returns the updated row.

Parameters:
  - context: context.Context
  - id: string
  - decision: Decision
  - handledBy: *string
  - handledAt: *time.Time

Returns:
  - *Report: Updated report
  - error: NotFound or persistence failures
*/
func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, decision Decision, handledBy *string, handledAt *time.Time) (*Report, error) {
	const query = `
		UPDATE moderation.report
		SET status = $2, reviewnote = $3, handledby = $4, handledat = $5
		WHERE id = $1
		RETURNING ` + reportColumns

	report, err := scanReport(repository.db.QueryRow(context, query, id, decision.Status, decision.ReviewNote, handledBy, handledAt))
	if err != nil {
		return nil, dberr.Wrap(err, "Report")
	}
	return report, nil
}

/*
CountSince counts the reporter's reports newer than cutoff.

Parameters:
  - context: context.Context
  - reporterID: string
  - cutoff: time.Time

Returns:
  - int: Report count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) CountSince(context context.Context, reporterID string, cutoff time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM moderation.report WHERE reporterid = $1 AND createdat > $2`

	var count int
	if err := repository.db.QueryRow(context, query, reporterID, cutoff).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_reports")
	}
	return count, nil
}
