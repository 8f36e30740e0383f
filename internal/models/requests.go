package models

type PostInput struct {
	Title       string `json:"title" validate:"min=3,max=150"`
	Slug        string `json:"slug" validate:"min=3,max=160,slug"`
	Description string `json:"description" validate:"min=10,max=300"`
	Content     string `json:"content" validate:"min=50"`
	Photo       string `json:"photo" validate:"omitempty,url"`
	SeoKeywords string `json:"seoKeywords" validate:"omitempty,max=300"`
	Published   bool   `json:"published"`
}

// EditPostInput leaves photo, seoKeywords and published unchanged when they
// are absent from the request.
type EditPostInput struct {
	ID          string  `json:"id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"min=3,max=150"`
	Slug        string  `json:"slug" validate:"min=3,max=160,slug"`
	Description string  `json:"description" validate:"min=10,max=300"`
	Content     string  `json:"content" validate:"min=50"`
	Photo       *string `json:"photo" validate:"omitempty,url"`
	SeoKeywords *string `json:"seoKeywords" validate:"omitempty,max=300"`
	Published   *bool   `json:"published"`
}

type SignUpInput struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,bcrypt"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

type ProfileInput struct {
	Name  string `json:"name" validate:"min=2"`
	Email string `json:"email" validate:"required,email"`
	Image string `json:"image" validate:"omitempty,url"`
}

type PasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"min=8"`
	NewPassword     string `json:"newPassword" validate:"min=8,bcrypt"`
}

type SlugParam struct {
	Slug string `json:"slug" validate:"min=3,max=160,slug"`
}
