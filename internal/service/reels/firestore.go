package reels

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/kridana/kridana-api/internal/platform/logging"
)

const (
	reelsCollection    = "reels"
	creatorsCollection = "creators"
	likesSubcollection = "likes"
	dislikesSub        = "dislikes"
	viewsSubcollection = "views"
	commentsSub        = "comments"
	followersSub       = "followers"
	likesCounterField  = "likes"
	dislikesField      = "dislikes"
	viewsCounterField  = "views"
)

// firestoreReel maps to the Firestore document structure.
type firestoreReel struct {
	CreatorID string    `firestore:"creator_id"`
	VideoRef  string    `firestore:"video_ref"`
	Caption   string    `firestore:"caption"`
	Likes     int64     `firestore:"likes"`
	Dislikes  int64     `firestore:"dislikes"`
	Views     int64     `firestore:"views"`
	CreatedAt time.Time `firestore:"created_at"`
}

// firestoreMarker is a per-viewer engagement record. Its existence is the
// boolean state; the payload only records when it was set.
type firestoreMarker struct {
	CreatedAt time.Time `firestore:"created_at"`
}

type firestoreComment struct {
	AuthorID   string    `firestore:"author_id"`
	AuthorName string    `firestore:"author_name"`
	Text       string    `firestore:"text"`
	CreatedAt  time.Time `firestore:"created_at"`
}

type firestoreCreator struct {
	Followers   int64 `firestore:"followers"`
	Connections int64 `firestore:"connections"`
}

// FirestoreStore implements Service using Firestore. Every toggle runs in a
// transaction so the marker record and the denormalized counter move
// together; counter decrements are clamped at zero inside the transaction.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) reelRef(reelID string) *firestore.DocumentRef {
	return s.client.Collection(reelsCollection).Doc(reelID)
}

// ListReels returns reels newest first.
func (s *FirestoreStore) ListReels(ctx context.Context) ([]Reel, error) {
	q := s.client.Collection(reelsCollection).OrderBy("created_at", firestore.Desc)

	var reels []Reel
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fr firestoreReel
		if err := doc.DataTo(&fr); err != nil {
			return nil, err
		}
		reels = append(reels, toReel(doc.Ref.ID, fr))
	}
	return reels, nil
}

// GetReel retrieves a reel by ID.
func (s *FirestoreStore) GetReel(ctx context.Context, reelID string) (*Reel, error) {
	doc, err := s.reelRef(reelID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fr firestoreReel
	if err := doc.DataTo(&fr); err != nil {
		return nil, err
	}
	r := toReel(doc.Ref.ID, fr)
	return &r, nil
}

// ToggleLike flips the viewer's like marker and moves the like counter by
// exactly one in the same transaction.
func (s *FirestoreStore) ToggleLike(ctx context.Context, reelID, viewerID string) (bool, error) {
	on, err := s.toggleMarker(ctx, reelID, viewerID, likesSubcollection, likesCounterField)
	if err != nil {
		applog.LogAuditEvent(ctx, "toggle_like", viewerID, "reel", reelID, applog.AuditFailure, nil)
		return false, err
	}
	applog.LogAuditEvent(ctx, "toggle_like", viewerID, "reel", reelID, applog.AuditSuccess,
		map[string]any{"liked": on})
	return on, nil
}

// ToggleDislike flips the viewer's dislike marker. It never touches the
// like marker; the two reactions are independent.
func (s *FirestoreStore) ToggleDislike(ctx context.Context, reelID, viewerID string) (bool, error) {
	on, err := s.toggleMarker(ctx, reelID, viewerID, dislikesSub, dislikesField)
	if err != nil {
		applog.LogAuditEvent(ctx, "toggle_dislike", viewerID, "reel", reelID, applog.AuditFailure, nil)
		return false, err
	}
	applog.LogAuditEvent(ctx, "toggle_dislike", viewerID, "reel", reelID, applog.AuditSuccess,
		map[string]any{"disliked": on})
	return on, nil
}

// toggleMarker creates or deletes the viewer's marker document under the
// reel and adjusts the named counter. All reads happen before writes, as
// Firestore transactions require, so the decrement can clamp at zero.
func (s *FirestoreStore) toggleMarker(ctx context.Context, reelID, viewerID, markerColl, counterField string) (bool, error) {
	reelRef := s.reelRef(reelID)
	markerRef := reelRef.Collection(markerColl).Doc(viewerID)

	var on bool
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		reelDoc, err := tx.Get(reelRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		marker, err := tx.Get(markerRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err == nil && marker.Exists() {
			on = false
			raw, derr := reelDoc.DataAt(counterField)
			if derr != nil {
				return derr
			}
			current, cerr := counterValue(raw)
			if cerr != nil {
				return fmt.Errorf("reel %s field %s: %w", reelID, counterField, cerr)
			}
			if terr := tx.Delete(markerRef); terr != nil {
				return terr
			}
			return tx.Update(reelRef, []firestore.Update{{Path: counterField, Value: clamp(current - 1)}})
		}

		on = true
		if terr := tx.Set(markerRef, firestoreMarker{CreatedAt: time.Now().UTC()}); terr != nil {
			return terr
		}
		return tx.Update(reelRef, []firestore.Update{{Path: counterField, Value: firestore.Increment(1)}})
	})
	if err != nil {
		return false, err
	}
	return on, nil
}

// RecordView marks the reel viewed. The view counter moves only on the
// first call per (reel, viewer), so repeat views never inflate it.
func (s *FirestoreStore) RecordView(ctx context.Context, reelID, viewerID string) error {
	reelRef := s.reelRef(reelID)
	markerRef := reelRef.Collection(viewsSubcollection).Doc(viewerID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(reelRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		marker, err := tx.Get(markerRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil && marker.Exists() {
			return nil
		}

		if terr := tx.Set(markerRef, firestoreMarker{CreatedAt: time.Now().UTC()}); terr != nil {
			return terr
		}
		return tx.Update(reelRef, []firestore.Update{{Path: viewsCounterField, Value: firestore.Increment(1)}})
	})
}

// EngagementFor reads the viewer's three markers for a reel.
func (s *FirestoreStore) EngagementFor(ctx context.Context, reelID, viewerID string) (Engagement, error) {
	reelRef := s.reelRef(reelID)
	refs := []*firestore.DocumentRef{
		reelRef.Collection(likesSubcollection).Doc(viewerID),
		reelRef.Collection(dislikesSub).Doc(viewerID),
		reelRef.Collection(viewsSubcollection).Doc(viewerID),
	}
	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return Engagement{}, err
	}
	return Engagement{
		Liked:    docs[0].Exists(),
		Disliked: docs[1].Exists(),
		Viewed:   docs[2].Exists(),
	}, nil
}

// ToggleFollow flips the viewer's follow marker under the creator and
// moves both audience counters on the creator's analytics doc with it:
// follower count and connections count each shift by one per toggle.
func (s *FirestoreStore) ToggleFollow(ctx context.Context, creatorID, viewerID string) (bool, error) {
	creatorRef := s.client.Collection(creatorsCollection).Doc(creatorID)
	markerRef := creatorRef.Collection(followersSub).Doc(viewerID)

	var following bool
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		creatorDoc, err := tx.Get(creatorRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		var fc firestoreCreator
		if err == nil && creatorDoc.Exists() {
			if derr := creatorDoc.DataTo(&fc); derr != nil {
				return derr
			}
		}

		marker, err := tx.Get(markerRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		hasMarker := err == nil && marker.Exists()

		if hasMarker {
			following = false
			fc.Followers = clamp(fc.Followers - 1)
			fc.Connections = clamp(fc.Connections - 1)
			if terr := tx.Delete(markerRef); terr != nil {
				return terr
			}
			return tx.Set(creatorRef, fc)
		}

		following = true
		fc.Followers++
		fc.Connections++
		if terr := tx.Set(markerRef, firestoreMarker{CreatedAt: time.Now().UTC()}); terr != nil {
			return terr
		}
		return tx.Set(creatorRef, fc)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "toggle_follow", viewerID, "creator", creatorID, applog.AuditFailure, nil)
		return false, err
	}
	applog.LogAuditEvent(ctx, "toggle_follow", viewerID, "creator", creatorID, applog.AuditSuccess,
		map[string]any{"following": following})
	return following, nil
}

// IsFollowing reports whether the viewer's follow marker exists.
func (s *FirestoreStore) IsFollowing(ctx context.Context, creatorID, viewerID string) (bool, error) {
	markerRef := s.client.Collection(creatorsCollection).Doc(creatorID).Collection(followersSub).Doc(viewerID)
	doc, err := markerRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return doc.Exists(), nil
}

// GetCreator reads a creator's audience counters. An absent document means
// nobody has engaged yet and reads as zeros.
func (s *FirestoreStore) GetCreator(ctx context.Context, creatorID string) (*Creator, error) {
	doc, err := s.client.Collection(creatorsCollection).Doc(creatorID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &Creator{ID: creatorID}, nil
		}
		return nil, err
	}
	var fc firestoreCreator
	if err := doc.DataTo(&fc); err != nil {
		return nil, err
	}
	return &Creator{ID: creatorID, Followers: fc.Followers, Connections: fc.Connections}, nil
}

// WatchFollowState subscribes to the viewer's follow marker. The channel
// receives the current state immediately and again on every change; it is
// closed when ctx is cancelled.
func (s *FirestoreStore) WatchFollowState(ctx context.Context, creatorID, viewerID string) (<-chan bool, error) {
	markerRef := s.client.Collection(creatorsCollection).Doc(creatorID).Collection(followersSub).Doc(viewerID)
	snapshots := markerRef.Snapshots(ctx)

	out := make(chan bool, 1)
	go func() {
		defer close(out)
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					applog.LogWarn(ctx, "follow state watch ended", zap.Error(err))
				}
				return
			}
			select {
			case out <- snap.Exists():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// AddComment appends to the reel's thread.
func (s *FirestoreStore) AddComment(ctx context.Context, reelID, authorID, authorName, text string) (*Comment, error) {
	if _, err := s.GetReel(ctx, reelID); err != nil {
		return nil, err
	}

	docRef := s.reelRef(reelID).Collection(commentsSub).NewDoc()
	fc := firestoreComment{
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := docRef.Set(ctx, fc); err != nil {
		return nil, err
	}
	return &Comment{
		ID:         docRef.ID,
		ReelID:     reelID,
		AuthorID:   fc.AuthorID,
		AuthorName: fc.AuthorName,
		Text:       fc.Text,
		CreatedAt:  fc.CreatedAt,
	}, nil
}

// ListComments returns the thread oldest first.
func (s *FirestoreStore) ListComments(ctx context.Context, reelID string) ([]Comment, error) {
	q := s.reelRef(reelID).Collection(commentsSub).OrderBy("created_at", firestore.Asc)

	var comments []Comment
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fc firestoreComment
		if err := doc.DataTo(&fc); err != nil {
			return nil, err
		}
		comments = append(comments, toComment(reelID, doc.Ref.ID, fc))
	}
	return comments, nil
}

// WatchComments subscribes to the reel's thread. Each change delivers the
// full thread in ascending creation order; the channel is closed when ctx
// is cancelled.
func (s *FirestoreStore) WatchComments(ctx context.Context, reelID string) (<-chan []Comment, error) {
	q := s.reelRef(reelID).Collection(commentsSub).OrderBy("created_at", firestore.Asc)
	snapshots := q.Snapshots(ctx)

	out := make(chan []Comment, 1)
	go func() {
		defer close(out)
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					applog.LogWarn(ctx, "comment watch ended", zap.Error(err))
				}
				return
			}

			var comments []Comment
			docs, err := snap.Documents.GetAll()
			if err != nil {
				continue
			}
			for _, doc := range docs {
				var fc firestoreComment
				if derr := doc.DataTo(&fc); derr != nil {
					continue
				}
				comments = append(comments, toComment(reelID, doc.Ref.ID, fc))
			}

			select {
			case out <- comments:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// counterValue coerces a counter read back from Firestore. Documents
// seeded by external tooling may carry the number as a float, so both
// numeric representations are accepted instead of panicking on one.
func counterValue(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("counter has non-numeric value %T", v)
	}
}

func toReel(id string, fr firestoreReel) Reel {
	return Reel{
		ID:        id,
		CreatorID: fr.CreatorID,
		VideoRef:  fr.VideoRef,
		Caption:   fr.Caption,
		Likes:     fr.Likes,
		Dislikes:  fr.Dislikes,
		Views:     fr.Views,
		CreatedAt: fr.CreatedAt,
	}
}

func toComment(reelID, id string, fc firestoreComment) Comment {
	return Comment{
		ID:         id,
		ReelID:     reelID,
		AuthorID:   fc.AuthorID,
		AuthorName: fc.AuthorName,
		Text:       fc.Text,
		CreatedAt:  fc.CreatedAt,
	}
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
