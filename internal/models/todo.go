package models

import (
	"time"

	"gorm.io/gorm"
)

// InitialRank is the rank column default; rows created through the ordering
// store always get an explicit rank.
const InitialRank = "0|hzzzzz:"

type Todo struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Content     string         `gorm:"type:varchar(255);not null" json:"content"`
	CategoryID  uint64         `gorm:"not null;index" json:"category_id"`
	DueTime     *string        `gorm:"type:varchar(8)" json:"due_time"`
	Date        *time.Time     `gorm:"type:date;index" json:"date"`
	UserID      uint64         `gorm:"not null" json:"user_id"`
	IsCompleted bool           `gorm:"not null;default:false" json:"is_completed"`
	Rank        string         `gorm:"type:varchar(255);not null;default:'0|hzzzzz:'" json:"rank"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Category Category  `gorm:"foreignKey:CategoryID" json:"-"`
	SubTodos []SubTodo `gorm:"foreignKey:TodoID" json:"subtodos,omitempty"`
}

func (t *Todo) OrderID() uint64          { return t.ID }
func (t *Todo) OrderGroup() uint64       { return t.UserID }
func (t *Todo) OrderRank() string        { return t.Rank }
func (t *Todo) SetOrderRank(rank string) { t.Rank = rank }
func (t *Todo) IsDeleted() bool          { return t.DeletedAt.Valid }
func (t *Todo) MarkDeleted(at time.Time) { t.DeletedAt = gorm.DeletedAt{Time: at, Valid: true} }
