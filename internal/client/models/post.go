package models

import "time"

type PostAuthor struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

type Post struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    PostAuthor `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Profile is a user together with the posts they authored.
type Profile struct {
	User  UserSummary `json:"user"`
	Posts []Post      `json:"posts"`
}
