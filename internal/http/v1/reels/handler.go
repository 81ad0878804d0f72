// Package reels exposes the short-video feed: listing, per-viewer
// like/dislike/view toggles, creator follows, and comment threads.
package reels

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kridana/kridana-api/internal/platform/auth"
	reelsvc "github.com/kridana/kridana-api/internal/service/reels"
)

// Register registers reel and creator endpoints. Feed reads are public;
// every engagement write requires an authenticated caller.
func Register(api huma.API, svc reelsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-reels",
		Method:      http.MethodGet,
		Path:        "/reels",
		Summary:     "List the reel feed",
		Tags:        []string{"Reels"},
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body struct {
			Reels []Reel `json:"reels" doc:"Feed entries, newest first"`
		}
	}, error) {
		all, err := svc.ListReels(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		out := &struct {
			Body struct {
				Reels []Reel `json:"reels" doc:"Feed entries, newest first"`
			}
		}{}
		out.Body.Reels = make([]Reel, len(all))
		for i, r := range all {
			out.Body.Reels[i] = toReel(r)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-reel",
		Method:      http.MethodGet,
		Path:        "/reels/{reelId}",
		Summary:     "Get a reel",
		Tags:        []string{"Reels"},
	}, func(ctx context.Context, input *ReelGetInput) (*struct{ Body Reel }, error) {
		r, err := svc.GetReel(ctx, input.ReelID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &struct{ Body Reel }{Body: toReel(*r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-reel-like",
		Method:      http.MethodPost,
		Path:        "/reels/{reelId}/like",
		Summary:     "Toggle the caller's like on a reel",
		Description: "Flips the caller's like marker and moves the reel's like counter by one. Likes and dislikes are independent.",
		Tags:        []string{"Reels"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ReelGetInput) (*struct{ Body Reaction }, error) {
		user := auth.UserFromContext(ctx)
		if _, err := svc.ToggleLike(ctx, input.ReelID, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		return reactionFor(ctx, svc, input.ReelID, user.UID)
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-reel-dislike",
		Method:      http.MethodPost,
		Path:        "/reels/{reelId}/dislike",
		Summary:     "Toggle the caller's dislike on a reel",
		Tags:        []string{"Reels"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ReelGetInput) (*struct{ Body Reaction }, error) {
		user := auth.UserFromContext(ctx)
		if _, err := svc.ToggleDislike(ctx, input.ReelID, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		return reactionFor(ctx, svc, input.ReelID, user.UID)
	})

	huma.Register(api, huma.Operation{
		OperationID:   "record-reel-view",
		Method:        http.MethodPost,
		Path:          "/reels/{reelId}/view",
		Summary:       "Record that the caller viewed a reel",
		Description:   "The first call per caller increments the view counter; repeats are no-ops.",
		Tags:          []string{"Reels"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ReelGetInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)
		if err := svc.RecordView(ctx, input.ReelID, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-reel-engagement",
		Method:      http.MethodGet,
		Path:        "/reels/{reelId}/engagement",
		Summary:     "Get the caller's engagement state for a reel",
		Tags:        []string{"Reels"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ReelGetInput) (*struct{ Body Engagement }, error) {
		user := auth.UserFromContext(ctx)
		e, err := svc.EngagementFor(ctx, input.ReelID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &struct{ Body Engagement }{Body: Engagement{
			Liked:    e.Liked,
			Disliked: e.Disliked,
			Viewed:   e.Viewed,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-creator-follow",
		Method:      http.MethodPost,
		Path:        "/creators/{creatorId}/follow",
		Summary:     "Toggle the caller's follow of a creator",
		Description: "Flips the follow and moves the creator's follower and connections counters together.",
		Tags:        []string{"Creators"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CreatorInput) (*struct{ Body FollowState }, error) {
		user := auth.UserFromContext(ctx)
		following, err := svc.ToggleFollow(ctx, input.CreatorID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		c, err := svc.GetCreator(ctx, input.CreatorID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &struct{ Body FollowState }{Body: FollowState{
			Following:   following,
			Followers:   c.Followers,
			Connections: c.Connections,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-creator-follow",
		Method:      http.MethodGet,
		Path:        "/creators/{creatorId}/follow",
		Summary:     "Get the caller's follow state for a creator",
		Tags:        []string{"Creators"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CreatorInput) (*struct{ Body FollowState }, error) {
		user := auth.UserFromContext(ctx)
		following, err := svc.IsFollowing(ctx, input.CreatorID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		c, err := svc.GetCreator(ctx, input.CreatorID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &struct{ Body FollowState }{Body: FollowState{
			Following:   following,
			Followers:   c.Followers,
			Connections: c.Connections,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-reel-comment",
		Method:        http.MethodPost,
		Path:          "/reels/{reelId}/comments",
		Summary:       "Comment on a reel",
		Tags:          []string{"Reels"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CommentCreateInput) (*struct{ Body Comment }, error) {
		user := auth.UserFromContext(ctx)
		c, err := svc.AddComment(ctx, input.ReelID, user.UID, displayName(user), input.Body.Text)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &struct{ Body Comment }{Body: toComment(*c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-reel-comments",
		Method:      http.MethodGet,
		Path:        "/reels/{reelId}/comments",
		Summary:     "List a reel's comments",
		Description: "Returns the thread in ascending creation order.",
		Tags:        []string{"Reels"},
	}, func(ctx context.Context, input *ReelGetInput) (*struct {
		Body struct {
			Comments []Comment `json:"comments" doc:"Thread entries, oldest first"`
		}
	}, error) {
		comments, err := svc.ListComments(ctx, input.ReelID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		out := &struct {
			Body struct {
				Comments []Comment `json:"comments" doc:"Thread entries, oldest first"`
			}
		}{}
		out.Body.Comments = make([]Comment, len(comments))
		for i, c := range comments {
			out.Body.Comments[i] = toComment(c)
		}
		return out, nil
	})
}

// reactionFor re-reads the reel and the caller's markers after a toggle so
// the response carries coherent counters.
func reactionFor(ctx context.Context, svc reelsvc.Service, reelID, viewerID string) (*struct{ Body Reaction }, error) {
	r, err := svc.GetReel(ctx, reelID)
	if err != nil {
		return nil, mapServiceError(err)
	}
	e, err := svc.EngagementFor(ctx, reelID, viewerID)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return &struct{ Body Reaction }{Body: Reaction{
		Liked:    e.Liked,
		Disliked: e.Disliked,
		Likes:    r.Likes,
		Dislikes: r.Dislikes,
	}}, nil
}

// displayName derives a comment author name from the verified token. The
// local part of the email stands in when no richer profile is attached.
func displayName(user *auth.FirebaseUser) string {
	if user.Email == "" {
		return user.UID
	}
	if at := strings.IndexByte(user.Email, '@'); at > 0 {
		return user.Email[:at]
	}
	return user.Email
}

func mapServiceError(err error) error {
	if errors.Is(err, reelsvc.ErrNotFound) {
		return huma.Error404NotFound("reel not found")
	}
	return huma.Error500InternalServerError("internal error")
}
