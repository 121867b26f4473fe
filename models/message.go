package models

import (
	"time"
)

// Message represents a message exchanged between an employer and a candidate
// around a job application.
type Message struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ApplicationID string     `json:"applicationId" gorm:"type:uuid;not null;index"`
	SenderID      string     `json:"senderId" gorm:"column:sender_id;type:uuid;not null"`
	ReceiverID    string     `json:"receiverId" gorm:"column:receiver_id;type:uuid;not null;index"`
	Content       string     `json:"content" gorm:"type:text" binding:"required"`
	Status        string     `json:"status" gorm:"default:UNREAD"` // UNREAD, READ
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

// MessageCreate model for sending a message
// @Description model for sending a message on an application thread
type MessageCreate struct {
	ApplicationID string `json:"applicationId" binding:"required"`
	Content       string `json:"content" binding:"required"`
}

func (Message) TableName() string {
	return "messages"
}
