package models

import "time"

// Product is a classified listing. LikeCount is denormalized from
// product_likes and recomputed after every like. Promotion is one-way:
// IsPromoted never flips back to false automatically.
type Product struct {
	BaseModel
	SellerID    string     `gorm:"type:uuid;not null;index" json:"sellerId"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	PriceCents  int64      `gorm:"not null;default:0" json:"priceCents"`
	Status      string     `gorm:"not null;default:'active'" json:"status"`
	LikeCount   int        `gorm:"not null;default:0" json:"likeCount"`
	IsPromoted  bool       `gorm:"not null;default:false;index" json:"isPromoted"`
	PromotedAt  *time.Time `json:"promotedAt,omitempty"`

	Seller *User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductLike records one user liking one product. The unique pair index is
// what makes duplicate likes impossible under concurrency.
type ProductLike struct {
	BaseModel
	ProductID string `gorm:"type:uuid;not null;uniqueIndex:idx_product_likes_pair" json:"productId"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_product_likes_pair" json:"userId"`
}

func (ProductLike) TableName() string {
	return "product_likes"
}
