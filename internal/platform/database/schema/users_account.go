// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the columns of tables shared by several stores.
//
// The users.account row is written by the trust backfill (trust columns) and
// by the admin surface (expert/verified/badge flags), and read by the qa
// trending query. Keeping the identifiers here lets those stores agree.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	DisplayName string
	Role        string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string

	// Trust signals maintained by admins
	IsExpert   string
	IsVerified string
	BadgeType  string

	// Derived trust profile written by the backfill job
	TrustScore     string
	HelpfulAnswers string
	AdoptionRate   string
	TrustUpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:          "users.account",
	ID:             "id",
	Username:       "username",
	DisplayName:    "displayname",
	Role:           "role",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
	IsExpert:       "isexpert",
	IsVerified:     "isverified",
	BadgeType:      "badgetype",
	TrustScore:     "trustscore",
	HelpfulAnswers: "helpfulanswers",
	AdoptionRate:   "adoptionrate",
	TrustUpdatedAt: "trustupdatedat",
}

// TrustColumns returns the columns written by the trust backfill, in the
// order the backfill binds them.
func (t UserAccountTable) TrustColumns() []string {
	return []string{t.TrustScore, t.HelpfulAnswers, t.AdoptionRate, t.TrustUpdatedAt}
}

// SignalColumns returns the admin-maintained trust signals.
func (t UserAccountTable) SignalColumns() []string {
	return []string{t.IsExpert, t.IsVerified, t.BadgeType}
}
