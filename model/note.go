package model

import "time"

// Note is owned by exactly one user. SharedWith holds the IDs of users the
// owner granted read visibility to; it never contains the owner.
type Note struct {
	ID         string    `bson:"_id" json:"id"`
	OwnerID    string    `bson:"owner_id" json:"owner_id"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	SharedWith []string  `bson:"shared_with" json:"shared_with"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
