package models

import (
	"time"
)

// User represents a MAX user in the max_users collection. A user is created
// once, on first bot interaction, and never overwritten by a repeat insert.
// The last* fields are maintained by the motivation notifier.
type User struct {
	UserId                      int64      `bson:"user_id" json:"user_id"`
	Name                        string     `bson:"name" json:"name"`
	AddedAt                     time.Time  `bson:"addedAt" json:"addedAt"`
	LastViewCount               int64      `bson:"lastViewCount" json:"lastViewCount"`
	LastMotivationalMessageId   string     `bson:"lastMotivationalMessageId,omitempty" json:"lastMotivationalMessageId,omitempty"`
	LastMotivationalMessageDate *time.Time `bson:"lastMotivationalMessageDate,omitempty" json:"lastMotivationalMessageDate,omitempty"`
}
