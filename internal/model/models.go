package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bioguide/backend/internal/access"
)

const (
	LangEN  = "en"
	LangCKB = "ckb"
)

const (
	TargetChapter = "chapter"
	TargetSlide   = "slide"
	TargetUser    = "user"
	TargetSystem  = "system"
	TargetData    = "data"
)

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         string     `json:"role" gorm:"size:20;default:chapter_admin"` // super_admin, chapter_admin
	ChapterID    *uint      `json:"chapter_id" gorm:"index"`
	LastLogin    *time.Time `json:"last_login"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == string(access.RoleSuperAdmin)
}

// Identity projects the user into the shape the access rules consume.
func (u *User) Identity() *access.Identity {
	return &access.Identity{
		UserID:    u.ID,
		Role:      access.Role(u.Role),
		ChapterID: u.ChapterID,
	}
}

type Chapter struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	TitleEN        string    `json:"title_en" gorm:"size:200;not null"`
	TitleCKB       string    `json:"title_ckb" gorm:"size:200;not null"`
	DescriptionEN  string    `json:"description_en" gorm:"type:text"`
	DescriptionCKB string    `json:"description_ckb" gorm:"type:text"`
	Icon           string    `json:"icon" gorm:"size:50;default:fas fa-book"`
	Order          int       `json:"order" gorm:"column:sort_order;default:1"`
	ViewCount      int64     `json:"view_count" gorm:"default:0"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Slides         []Slide   `json:"slides,omitempty" gorm:"foreignKey:ChapterID"`
}

func (c *Chapter) Title(lang string) string {
	if lang == LangCKB {
		return c.TitleCKB
	}
	return c.TitleEN
}

func (c *Chapter) Description(lang string) string {
	if lang == LangCKB {
		return c.DescriptionCKB
	}
	return c.DescriptionEN
}

type Slide struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ChapterID  uint      `json:"chapter_id" gorm:"index;not null"`
	TitleEN    string    `json:"title_en" gorm:"size:200;not null"`
	TitleCKB   string    `json:"title_ckb" gorm:"size:200;not null"`
	ContentEN  string    `json:"content_en" gorm:"type:text"`
	ContentCKB string    `json:"content_ckb" gorm:"type:text"`
	ImageFile  string    `json:"image_file" gorm:"size:255"`
	ImageURL   string    `json:"image_url" gorm:"size:500"`
	Components string    `json:"components" gorm:"type:text"`
	Location   string    `json:"location" gorm:"type:text"`
	Functions  string    `json:"functions" gorm:"type:text"`
	Order      int       `json:"order" gorm:"column:sort_order;default:1"`
	ViewCount  int64     `json:"view_count" gorm:"default:0"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Slide) Title(lang string) string {
	if lang == LangCKB {
		return s.TitleCKB
	}
	return s.TitleEN
}

func (s *Slide) Content(lang string) string {
	if lang == LangCKB {
		return s.ContentCKB
	}
	return s.ContentEN
}

// Image returns the reference to render: an uploaded file wins over an
// external URL when both are present.
func (s *Slide) Image() string {
	if s.ImageFile != "" {
		return s.ImageFile
	}
	return s.ImageURL
}

// Activity is an append-only audit row. Never updated after creation.
type Activity struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Action      string    `json:"action" gorm:"size:50;not null"` // login, logout, create, edit, delete, reorder, view, maintenance, export
	TargetType  string    `json:"target_type" gorm:"size:20;not null"`
	TargetID    uint      `json:"target_id"`
	Description string    `json:"description" gorm:"type:text"`
	IPAddress   string    `json:"ip_address" gorm:"size:50"`
	UserAgent   string    `json:"user_agent" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
}

// SystemStats holds one daily rollup row per calendar date.
type SystemStats struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Date         string    `json:"date" gorm:"size:10;uniqueIndex;not null"` // YYYY-MM-DD
	ChapterViews int64     `json:"chapter_views" gorm:"default:0"`
	SlideViews   int64     `json:"slide_views" gorm:"default:0"`
	TotalViews   int64     `json:"total_views" gorm:"default:0"`
	ActiveUsers  int64     `json:"active_users" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
