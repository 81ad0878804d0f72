package reels

import (
	"github.com/kridana/kridana-api/internal/platform/timeutil"
	reelsvc "github.com/kridana/kridana-api/internal/service/reels"
)

// Reel represents a feed video in API responses. The counters reflect
// marker records and update with each toggle.
type Reel struct {
	ID        string        `json:"id"                doc:"Unique identifier"          example:"reel-1"`
	CreatorID string        `json:"creatorId"         doc:"Creator's user identifier"  example:"creator-1"`
	VideoRef  string        `json:"videoRef"          doc:"Video URL"`
	Caption   string        `json:"caption,omitempty" doc:"Caption text"`
	Likes     int64         `json:"likes"             doc:"Like count"     example:"12"`
	Dislikes  int64         `json:"dislikes"          doc:"Dislike count"  example:"1"`
	Views     int64         `json:"views"             doc:"Unique viewer count" example:"340"`
	CreatedAt timeutil.Time `json:"createdAt"         doc:"Creation timestamp" example:"2024-01-15T10:30:00.000Z"`
}

// Engagement reports the caller's marker state for a reel. Liked and
// disliked are independent flags.
type Engagement struct {
	Liked    bool `json:"liked"    doc:"Whether the caller has liked the reel"`
	Disliked bool `json:"disliked" doc:"Whether the caller has disliked the reel"`
	Viewed   bool `json:"viewed"   doc:"Whether the caller's view has been recorded"`
}

// Reaction is the result of a like or dislike toggle: the caller's new
// marker state plus the reel's updated counters.
type Reaction struct {
	Liked    bool  `json:"liked"    doc:"Caller's like state after the toggle"`
	Disliked bool  `json:"disliked" doc:"Caller's dislike state after the toggle"`
	Likes    int64 `json:"likes"    doc:"Reel like count after the toggle"`
	Dislikes int64 `json:"dislikes" doc:"Reel dislike count after the toggle"`
}

// FollowState is the result of a follow toggle or lookup.
type FollowState struct {
	Following   bool  `json:"following"   doc:"Whether the caller follows the creator"`
	Followers   int64 `json:"followers"   doc:"Creator's follower count"`
	Connections int64 `json:"connections" doc:"Creator's connections count"`
}

// Comment is one thread entry.
type Comment struct {
	ID         string        `json:"id"         doc:"Unique identifier"`
	ReelID     string        `json:"reelId"     doc:"Reel the comment belongs to"`
	AuthorID   string        `json:"authorId"   doc:"Author's user identifier"`
	AuthorName string        `json:"authorName" doc:"Author's display name"`
	Text       string        `json:"text"       doc:"Comment text"`
	CreatedAt  timeutil.Time `json:"createdAt"  doc:"Creation timestamp"`
}

func toReel(r reelsvc.Reel) Reel {
	return Reel{
		ID:        r.ID,
		CreatorID: r.CreatorID,
		VideoRef:  r.VideoRef,
		Caption:   r.Caption,
		Likes:     r.Likes,
		Dislikes:  r.Dislikes,
		Views:     r.Views,
		CreatedAt: timeutil.Time{Time: r.CreatedAt},
	}
}

func toComment(c reelsvc.Comment) Comment {
	return Comment{
		ID:         c.ID,
		ReelID:     c.ReelID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  timeutil.Time{Time: c.CreatedAt},
	}
}
