package models

import (
	"time"

	"gorm.io/gorm"
)

// SubTodo is a step of a Todo. Subtodos are ordered within their parent todo.
type SubTodo struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Content     string         `gorm:"type:varchar(255);not null" json:"content"`
	TodoID      uint64         `gorm:"not null" json:"todo_id"`
	DueTime     *string        `gorm:"type:varchar(8)" json:"due_time"`
	Date        *time.Time     `gorm:"type:date;index" json:"date"`
	IsCompleted bool           `gorm:"not null;default:false" json:"is_completed"`
	Rank        string         `gorm:"type:varchar(255);not null;default:'0|hzzzzz:'" json:"rank"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Todo *Todo `gorm:"foreignKey:TodoID" json:"-"`
}

func (SubTodo) TableName() string {
	return "sub_todos"
}

func (s *SubTodo) OrderID() uint64          { return s.ID }
func (s *SubTodo) OrderGroup() uint64       { return s.TodoID }
func (s *SubTodo) OrderRank() string        { return s.Rank }
func (s *SubTodo) SetOrderRank(rank string) { s.Rank = rank }
func (s *SubTodo) IsDeleted() bool          { return s.DeletedAt.Valid }
func (s *SubTodo) MarkDeleted(at time.Time) { s.DeletedAt = gorm.DeletedAt{Time: at, Valid: true} }
