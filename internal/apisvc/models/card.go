package models

import "time"

// Card statuses. Cards enter moderation and are accepted or rejected by a
// moderator; leaderboards only count accepted cards.
const (
	CardStatusModerate = "moderate"
	CardStatusAccepted = "accepted"
	CardStatusRejected = "rejected"
)

type Card struct {
	ID       string    `bson:"id" json:"id"` // generated uuid, not the mongo _id
	Category string    `bson:"category" json:"category"`
	Title    string    `bson:"title" json:"title"`
	Subtitle string    `bson:"subtitle" json:"subtitle"`
	Text     string    `bson:"text" json:"text"`
	Status   string    `bson:"status" json:"status"`
	Date     time.Time `bson:"date" json:"date"`
	Link     string    `bson:"link,omitempty" json:"link,omitempty"`
	Image    string    `bson:"image,omitempty" json:"image,omitempty"` // base64 data URI
	UserId   int64     `bson:"user_id,omitempty" json:"user_id,omitempty"`
}

// CardInput carries the validated fields of a create-card request.
type CardInput struct {
	Category string
	Title    string
	Subtitle string
	Text     string
	Status   string
	Link     string
	Image    string
	UserId   int64
}

// CardWithViews is a leaderboard row: a card joined to the sum of its
// per-user view counters.
type CardWithViews struct {
	Card      `bson:",inline"`
	ViewCount int64 `bson:"view_count" json:"view_count"`
}
