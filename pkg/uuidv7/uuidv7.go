// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// Posts, answers, comments and reports are keyed by UUIDv7 so that the
// primary key index follows insertion order and "newest first" listings can
// page by key.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}
	return id.String()
}

// Short returns the last 8 hex characters of an ID, used to disambiguate slugs.
func Short(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[len(id)-8:]
}
