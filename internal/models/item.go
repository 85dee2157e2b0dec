package models

import "time"

// TimeLayout is the timestamp format used on the wire and in Firestore:
// UTC ISO-8601 with microsecond precision and a trailing Z.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t in the storage timestamp format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Item is a simple named record managed through the CRUD API.
type Item struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description" firestore:"description"`
	CreatedAt   string `json:"created_at" firestore:"created_at"`
	UpdatedAt   string `json:"updated_at" firestore:"updated_at"`
}

// ItemPatch is a partial update for an item. Nil fields are left untouched.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// IsEmpty reports whether the patch carries no updatable field.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// Apply merges the supplied fields into item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
}
