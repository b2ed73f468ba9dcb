package models

// Message is one chat message inside a conversation. ReceiverID is derived
// from the conversation at send time, never taken from the client.
type Message struct {
	BaseModel
	ConversationID string `gorm:"type:uuid;not null;index" json:"conversationId"`
	SenderID       string `gorm:"type:uuid;not null" json:"senderId"`
	ReceiverID     string `gorm:"type:uuid;not null;index" json:"receiverId"`
	Content        string `gorm:"type:text;not null" json:"content"`
	IsRead         bool   `gorm:"not null;default:false" json:"isRead"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
