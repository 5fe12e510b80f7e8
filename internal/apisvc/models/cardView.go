package models

import "time"

// CardView is one (card, user) view counter. Exactly one document exists per
// pair, enforced by a unique compound index; view_count only ever grows.
type CardView struct {
	CardId    string    `bson:"card_id" json:"card_id"`
	UserId    int64     `bson:"user_id" json:"user_id"`
	ViewedAt  time.Time `bson:"viewed_at" json:"viewed_at"`
	ViewCount int64     `bson:"view_count" json:"view_count"`
}

// UserCardsRank is a leaderboard row for users ranked by accepted cards.
type UserCardsRank struct {
	UserId     int64  `bson:"user_id" json:"user_id"`
	Name       string `bson:"name" json:"name"`
	CardsCount int64  `bson:"cards_count" json:"cards_count"`
	TotalViews int64  `bson:"total_views" json:"total_views"`
}

// UserViewsRank is a leaderboard row for users ranked by views they performed.
type UserViewsRank struct {
	UserId     int64  `bson:"user_id" json:"user_id"`
	Name       string `bson:"name" json:"name"`
	TotalViews int64  `bson:"total_views" json:"total_views"`
}
