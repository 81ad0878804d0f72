package reels

// ReelGetInput identifies a reel by path.
type ReelGetInput struct {
	ReelID string `path:"reelId" doc:"Reel identifier" example:"reel-1"`
}

// CommentCreateInput adds a comment to a reel's thread.
type CommentCreateInput struct {
	ReelID string `path:"reelId" doc:"Reel identifier" example:"reel-1"`
	Body   struct {
		Text string `json:"text" doc:"Comment text" minLength:"1" maxLength:"2000" example:"Great bowling action"`
	}
}

// CreatorInput identifies a creator by path.
type CreatorInput struct {
	CreatorID string `path:"creatorId" doc:"Creator's user identifier" example:"creator-1"`
}
