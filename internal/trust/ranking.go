// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package trust

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// # Ranking Weight

// Badge is the trust label attached to a piece of content when ranked.
type Badge string

const (
	BadgeOutdated  Badge = "outdated"
	BadgeExpert    Badge = "expert"
	BadgeVerified  Badge = "verified"
	BadgeCommunity Badge = "community"
)

const (
	// outdatedAfterMonths is the content age from which every author is down-weighted.
	outdatedAfterMonths = 12
	// daysPerMonth approximates a calendar month for age calculations.
	daysPerMonth = 30

	WeightOutdated  = 0.5
	WeightExpert    = 1.3
	WeightVerified  = 1.0
	WeightCommunity = 0.7
)

// expertBadgePrefix marks account badge types that count as expert ("expert",
// "expert_immigration", ...).
const expertBadgePrefix = "expert"

// Signals are the admin-maintained trust flags of an author.
type Signals struct {
	IsExpert   bool    `json:"isExpert"`
	IsVerified bool    `json:"isVerified"`
	BadgeType  *string `json:"badgeType,omitempty"`
}

// hasBadge reports whether a non-empty badge type is set.
func (s Signals) hasBadge() bool {
	return s.BadgeType != nil && *s.BadgeType != ""
}

/*
ResolveTrust returns the badge and ranking weight of content created at
createdAt by an author with the given signals.

Content 12 or more months old is outdated whatever the author's status.
Otherwise experts (flag or expert badge type) outrank verified authors (flag
or any badge), who outrank everyone else.
*/
func ResolveTrust(signals Signals, createdAt, now time.Time) (Badge, float64) {
	ageMonths := now.Sub(createdAt).Hours() / 24 / daysPerMonth

	switch {
	case ageMonths >= outdatedAfterMonths:
		return BadgeOutdated, WeightOutdated
	case signals.IsExpert || (signals.hasBadge() && strings.HasPrefix(*signals.BadgeType, expertBadgePrefix)):
		return BadgeExpert, WeightExpert
	case signals.IsVerified || signals.hasBadge():
		return BadgeVerified, WeightVerified
	default:
		return BadgeCommunity, WeightCommunity
	}
}

// RankingScore weighs a like twice as much as a view.
func RankingScore(likes, views int, weight float64) float64 {
	return float64(likes*2+views) * weight
}

// # Trending Order

// RankingInput is what [Rank] needs to know about an item.
type RankingInput struct {
	Likes     int
	Views     int
	CreatedAt time.Time
	Signals   Signals
}

// Rankable is implemented by content that can be ranked.
type Rankable interface {
	RankingInput() RankingInput
}

// Ranked pairs an item with its resolved badge and score.
type Ranked[T Rankable] struct {
	Item   T       `json:"item"`
	Badge  Badge   `json:"badge"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}

// Rank orders items by ranking score, highest first. The sort is stable, so
// equal scores keep the order the items came in (recency from the query).
func Rank[T Rankable](items []T, now time.Time) []Ranked[T] {
	ranked := make([]Ranked[T], len(items))
	for i, item := range items {
		input := item.RankingInput()
		badge, weight := ResolveTrust(input.Signals, input.CreatedAt, now)
		ranked[i] = Ranked[T]{
			Item:   item,
			Badge:  badge,
			Weight: weight,
			Score:  RankingScore(input.Likes, input.Views, weight),
		}
	}

	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranked
}
