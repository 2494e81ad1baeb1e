package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	UserID    uint64         `gorm:"not null" json:"user_id"`
	Color     int16          `gorm:"not null;default:0" json:"color"`
	Title     *string        `gorm:"type:varchar(100)" json:"title"`
	Rank      string         `gorm:"type:varchar(255);not null;default:'0|hzzzzz:'" json:"rank"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Category) OrderID() uint64          { return c.ID }
func (c *Category) OrderGroup() uint64       { return c.UserID }
func (c *Category) OrderRank() string        { return c.Rank }
func (c *Category) SetOrderRank(rank string) { c.Rank = rank }
func (c *Category) IsDeleted() bool          { return c.DeletedAt.Valid }
func (c *Category) MarkDeleted(at time.Time) { c.DeletedAt = gorm.DeletedAt{Time: at, Valid: true} }
