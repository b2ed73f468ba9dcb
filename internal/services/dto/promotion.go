package dto

// LikeResult is the reply to a like request. WasPromoted is true only on the
// request that actually crossed the threshold.
type LikeResult struct {
	Liked        bool  `json:"liked"`
	NewLikeCount int64 `json:"newLikeCount"`
	WasPromoted  bool  `json:"wasPromoted"`
	IsPromoted   bool  `json:"isPromoted"`
}

// LikeStatus tells a client whether it already liked a product.
type LikeStatus struct {
	Liked      bool  `json:"liked"`
	LikeCount  int64 `json:"likeCount"`
	IsPromoted bool  `json:"isPromoted"`
}
