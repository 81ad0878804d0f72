// Package reels implements the short-video feed and its engagement
// bookkeeping: per-viewer like/dislike/view markers with denormalized
// counters on the reel, creator follows with audience counters, and an
// append-only comment thread with live subscription.
package reels

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound = errors.New("reel not found")
)

// Reel is one feed video with its denormalized engagement counters. The
// counters track the marker records incrementally and are never recomputed
// by scanning.
type Reel struct {
	ID        string
	CreatorID string
	VideoRef  string
	Caption   string
	Likes     int64
	Dislikes  int64
	Views     int64
	CreatedAt time.Time
}

// Engagement is one viewer's marker state for a reel. Liked and Disliked
// are independent reactions; both can be set at once.
type Engagement struct {
	Liked    bool
	Disliked bool
	Viewed   bool
}

// Creator carries a creator's audience counters. Both move together on
// every follow toggle.
type Creator struct {
	ID          string
	Followers   int64
	Connections int64
}

// Comment is one thread entry. Threads are append-only; comments are never
// edited or deleted in this surface.
type Comment struct {
	ID         string
	ReelID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// Service defines reel feed and engagement operations.
//
// Toggle operations are atomic per (subject, viewer): the marker record and
// the subject's counter change together or not at all. Counters clamp at
// zero rather than going negative.
type Service interface {
	ListReels(ctx context.Context) ([]Reel, error)
	GetReel(ctx context.Context, reelID string) (*Reel, error)

	// ToggleLike flips the viewer's like marker and adjusts the reel's
	// like counter by exactly one. Returns the resulting marker state.
	ToggleLike(ctx context.Context, reelID, viewerID string) (bool, error)
	// ToggleDislike behaves like ToggleLike for the dislike marker. Likes
	// and dislikes are independent; toggling one never clears the other.
	ToggleDislike(ctx context.Context, reelID, viewerID string) (bool, error)
	// RecordView marks the reel viewed by the viewer. The first call per
	// (reel, viewer) increments the view counter; later calls are no-ops,
	// so the counter is monotonic per viewer.
	RecordView(ctx context.Context, reelID, viewerID string) error
	// EngagementFor reports the viewer's current marker state for a reel.
	EngagementFor(ctx context.Context, reelID, viewerID string) (Engagement, error)

	// ToggleFollow flips the viewer's follow of a creator and adjusts the
	// creator's follower counter. Returns the resulting follow state.
	ToggleFollow(ctx context.Context, creatorID, viewerID string) (bool, error)
	IsFollowing(ctx context.Context, creatorID, viewerID string) (bool, error)
	GetCreator(ctx context.Context, creatorID string) (*Creator, error)
	// WatchFollowState emits the follow state on subscription and on every
	// change until ctx is cancelled, then closes the channel.
	WatchFollowState(ctx context.Context, creatorID, viewerID string) (<-chan bool, error)

	AddComment(ctx context.Context, reelID, authorID, authorName, text string) (*Comment, error)
	// ListComments returns the thread in ascending creation order.
	ListComments(ctx context.Context, reelID string) ([]Comment, error)
	// WatchComments emits the full thread on subscription and on every
	// change until ctx is cancelled, then closes the channel.
	WatchComments(ctx context.Context, reelID string) (<-chan []Comment, error)
}
