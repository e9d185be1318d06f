package models

import "time"

// Message is a row of directus_messages.
type Message struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	From            uint       `gorm:"column:from;index" json:"from"`
	Subject         string     `gorm:"type:varchar(255)" json:"subject"`
	Message         string     `gorm:"type:text" json:"message"`
	Datetime        *time.Time `gorm:"column:datetime" json:"datetime,omitempty"`
	Attachment      string     `gorm:"type:varchar(512)" json:"attachment,omitempty"`
	ResponseTo      *uint      `gorm:"column:response_to;index" json:"response_to,omitempty"`
	CommentMetadata string     `gorm:"type:varchar(255)" json:"comment_metadata,omitempty"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "directus_messages"
}

// MessageRecipient is a row of directus_messages_recipients. One row exists
// per user that can read a message; Group records the group the user was
// reached through, when any.
type MessageRecipient struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	MessageID uint  `gorm:"column:message_id;not null;index" json:"message_id"`
	Recipient uint  `gorm:"column:recipient;not null;index" json:"recipient"`
	Read      int   `gorm:"column:read;default:0" json:"read"`
	Group     *uint `gorm:"column:group" json:"group,omitempty"`
}

// TableName specifies the table name for GORM.
func (MessageRecipient) TableName() string {
	return "directus_messages_recipients"
}

// Activity is a row of directus_activity.
type Activity struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Type       string     `gorm:"type:varchar(100)" json:"type"`
	Action     string     `gorm:"type:varchar(100);not null" json:"action"`
	Identifier string     `gorm:"type:varchar(100)" json:"identifier,omitempty"`
	Table      string     `gorm:"column:table_name;type:varchar(100)" json:"table_name"`
	RowID      uint       `gorm:"column:row_id" json:"row_id"`
	User       uint       `gorm:"column:user" json:"user"`
	Data       JSON       `gorm:"type:text" json:"data,omitempty"`
	Delta      JSON       `gorm:"type:text" json:"delta,omitempty"`
	ParentID   *uint      `gorm:"column:parent_id" json:"parent_id,omitempty"`
	Datetime   *time.Time `gorm:"column:datetime" json:"datetime,omitempty"`
}

// TableName specifies the table name for GORM.
func (Activity) TableName() string {
	return "directus_activity"
}

// Activity types and actions recorded by the local client.
const (
	ActivityTypeMessage = "MESSAGE"
	ActivityActionAdd   = "ADD"
)
