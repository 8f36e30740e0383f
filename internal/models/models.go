package models

import (
	"time"
)

type User struct {
	UserID        string    `json:"userId" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	EmailVerified bool      `json:"emailVerified" db:"email_verified"`
	Image         string    `json:"image" db:"image"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	PostID      string    `json:"postId" db:"post_id"`
	UserID      string    `json:"userId" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Content     string    `json:"content" db:"content"`
	Photo       string    `json:"photo" db:"photo"`
	SeoKeywords string    `json:"seoKeywords" db:"seo_keywords"`
	Published   bool      `json:"published" db:"published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Author is the public slice of a User shown next to a post.
type Author struct {
	Name  string `json:"name" db:"name"`
	Image string `json:"image" db:"image"`
}

type PostWithAuthor struct {
	Post
	Author Author `json:"author" db:"author"`
}

type Session struct {
	SessionID string    `json:"sessionId" db:"session_id"`
	UserID    string    `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	IPAddress string    `json:"ipAddress" db:"ip_address"`
	UserAgent string    `json:"userAgent" db:"user_agent"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Identity is the authenticated principal resolved from a session token.
type Identity struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	SessionID string `json:"-"`
}

type PostStats struct {
	Total     int `json:"total" db:"total"`
	Published int `json:"published" db:"published"`
	Drafts    int `json:"drafts" db:"drafts"`
}

// Upload records an object written to the media bucket on behalf of a user.
type Upload struct {
	UploadID   string    `json:"uploadId" db:"upload_id"`
	UserID     string    `json:"userId" db:"user_id"`
	Kind       string    `json:"kind" db:"kind"`
	ObjectName string    `json:"objectName" db:"object_name"`
	URL        string    `json:"url" db:"url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
