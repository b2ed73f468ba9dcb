package models

import "time"

// Conversation is the thread between a buyer and a seller about one product.
// The composite unique index guarantees at most one thread per triple even
// when two requests race to create it.
type Conversation struct {
	BaseModel
	ProductID     string     `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_triple" json:"productId"`
	BuyerID       string     `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_triple" json:"buyerId"`
	SellerID      string     `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_triple" json:"sellerId"`
	LastMessageAt *time.Time `gorm:"index" json:"lastMessageAt,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Buyer   *User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller  *User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// HasParticipant reports whether the user is a party to the thread.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

// OtherParty returns the counterpart of the given participant.
func (c *Conversation) OtherParty(userID string) string {
	if c.BuyerID == userID {
		return c.SellerID
	}
	return c.BuyerID
}
