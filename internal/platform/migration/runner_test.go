// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/hanqa/internal/platform/migration"
)

/*
TestPgx5DSN verifies the scheme rewrite for golang-migrate.
*/
func TestPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/hanqa":   "pgx5://u:p@db:5432/hanqa",
		"postgresql://u:p@db:5432/hanqa": "pgx5://u:p@db:5432/hanqa",
		"pgx5://u:p@db:5432/hanqa":       "pgx5://u:p@db:5432/hanqa",
		"host=db dbname=hanqa":           "host=db dbname=hanqa",
	}

	for input, want := range tests {
		assert.Equal(t, want, migration.Pgx5DSN(input), input)
	}
}
