// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package trust derives author reputation and the ranking weight of content.

It has two halves:

  - Profile: a per-user aggregate ([Profile]) rebuilt by the backfill job from
    answer and follow counts, and the composite [Score] served to clients.
  - Ranking: [ResolveTrust] turns the author's signals and the content age into
    a badge and a multiplier, and [Rank] orders trending content with it.

The formulas are pure functions. Only [Service.Recompute] writes, and it
assumes a single writer to the trust columns.
*/
package trust

import (
	"math"
	"time"
)

// # Profile

// AuthorStats is the raw aggregate the backfill reads for one author.
type AuthorStats struct {
	UserID       string
	AnswersCount int
	AdoptedCount int
	LikesSum     int
	Followers    int
}

// Profile is the derived trust profile persisted on the account row.
type Profile struct {
	UserID         string     `json:"userId"`
	TrustScore     int        `json:"trustScore"`
	HelpfulAnswers int        `json:"helpfulAnswers"`
	AdoptionRate   int        `json:"adoptionRate"`
	BadgeType      *string    `json:"badgeType,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// Score is the composite score and level shown on profile pages.
type Score struct {
	Score          int     `json:"score"`
	Level          int     `json:"level"`
	LevelProgress  float64 `json:"levelProgress"`
	NextLevelScore int     `json:"nextLevelScore"`
}

// levelSize is the number of points per level band.
const levelSize = 100

/*
Compute derives a trust profile from raw author statistics.

adoptionRate is the rounded percentage of adopted answers (0 without
answers). trustScore weighs an adoption at 3, a like at 1 and a follower at
0.5. helpfulAnswers mirrors the like sum.

Compute is pure: the same stats always yield the same profile.
*/
func Compute(stats AuthorStats) Profile {
	adoptionRate := 0
	if stats.AnswersCount > 0 {
		adoptionRate = roundHalfUp(float64(stats.AdoptedCount) * 100 / float64(stats.AnswersCount))
	}

	return Profile{
		UserID:         stats.UserID,
		TrustScore:     roundHalfUp(float64(stats.AdoptedCount)*3 + float64(stats.LikesSum) + float64(stats.Followers)*0.5),
		HelpfulAnswers: stats.LikesSum,
		AdoptionRate:   adoptionRate,
	}
}

// CompositeScore folds a profile into the single number and level band
// shown to users. The score never goes below zero.
func CompositeScore(profile Profile) Score {
	raw := float64(profile.TrustScore) + float64(profile.HelpfulAnswers)*5 + float64(profile.AdoptionRate)
	score := max(0, roundHalfUp(raw))

	level := score/levelSize + 1
	progress := math.Round(float64(score%levelSize)/levelSize*100) / 100

	return Score{
		Score:          score,
		Level:          level,
		LevelProgress:  progress,
		NextLevelScore: level * levelSize,
	}
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
