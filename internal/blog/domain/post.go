package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrSlugTaken        = errors.New("slug already exists")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("admin or editor role required")
	ErrInvalidImageKind = errors.New("image kind must be featured or content")
)

// StringArray stores a list of strings as a JSON text column.
type StringArray []string

// Value implements driver.Valuer
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (a *StringArray) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = StringArray{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for StringArray")
	}
	if len(raw) == 0 {
		*a = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, a)
}

// Post is a blog article. New posts are drafts until published.
type Post struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	Title           string      `json:"title" gorm:"not null"`
	Slug            string      `json:"slug" gorm:"uniqueIndex;not null"`
	Content         string      `json:"content" gorm:"type:text"`
	Excerpt         string      `json:"excerpt"`
	FeaturedImage   string      `json:"featured_image"`
	PublishedAt     *time.Time  `json:"published_at"`
	AuthorID        string      `json:"author_id" gorm:"index;not null"`
	IsPublished     bool        `json:"is_published" gorm:"not null;default:false"`
	MetaTitle       string      `json:"meta_title"`
	MetaDescription string      `json:"meta_description"`
	MetaKeywords    StringArray `json:"meta_keywords" gorm:"type:text"`
	ReadingTime     int         `json:"reading_time"`
	Tags            StringArray `json:"tags" gorm:"type:text"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Post) TableName() string { return "blog_posts" }

// Role is a named permission set such as admin or editor.
type Role struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserRole grants a role to a user.
type UserRole struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	RoleID    string    `json:"role_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CanManage reports whether roles allow publishing and deleting posts.
func CanManage(roles []string) bool {
	for _, r := range roles {
		if r == RoleAdmin || r == RoleEditor {
			return true
		}
	}
	return false
}
