// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserFollowTable describes users.follow. The trust backfill only reads it:
// each row is one follower of FollowingID.
type UserFollowTable struct {
	Table       string
	FollowerID  string
	FollowingID string
	CreatedAt   string
}

// UserFollow is the schema definition for users.follow.
var UserFollow = UserFollowTable{
	Table:       "users.follow",
	FollowerID:  "followerid",
	FollowingID: "followingid",
	CreatedAt:   "createdat",
}
