package models

import (
	"lingua/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type School struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `json:"name,omitempty"`
	Slug        string  `gorm:"uniqueIndex" json:"slug,omitempty"`
	About       *string `json:"about,omitempty"`
	Country     string  `json:"country,omitempty"`
	City        string  `json:"city,omitempty"`
	OwnerID     uint    `json:"owner_id,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"review_count"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	Owner   *User    `gorm:"foreignKey:owner_id" json:"-"`
	Courses []Course `gorm:"foreignKey:school_id" json:"courses,omitempty"`

	types.Timestamps
}

func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.Slug == "" {
		s.Slug = slug.Make(s.Name)
	}
	return nil
}
