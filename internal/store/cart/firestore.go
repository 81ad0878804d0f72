package cart

import (
	"context"
	"fmt"
	"net/url"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	usersCollection     = "users"
	cartLinesCollection = "cartLines"
)

// FirestoreMirror stores cart lines as one document per line under the
// user's cartLines subcollection, keyed by the line's identity key.
type FirestoreMirror struct {
	client *firestore.Client
}

// NewFirestoreMirror creates a Firestore-backed cart mirror.
func NewFirestoreMirror(client *firestore.Client) *FirestoreMirror {
	return &FirestoreMirror{client: client}
}

func (m *FirestoreMirror) linesRef(userID string) *firestore.CollectionRef {
	return m.client.Collection(usersCollection).Doc(userID).Collection(cartLinesCollection)
}

// Fetch returns all remote lines for the user.
func (m *FirestoreMirror) Fetch(ctx context.Context, userID string) ([]Line, error) {
	iter := m.linesRef(userID).Documents(ctx)
	defer iter.Stop()

	var lines []Line
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch cart lines: %w", err)
		}
		var line Line
		if err := doc.DataTo(&line); err != nil {
			return nil, fmt.Errorf("decode cart line %s: %w", doc.Ref.ID, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Replace makes the remote collection equal to lines: stale documents are
// deleted and every current line is written under its identity key. The
// whole set is rewritten from local state on every change; there is no
// incremental diffing of line contents.
func (m *FirestoreMirror) Replace(ctx context.Context, userID string, lines []Line) error {
	ref := m.linesRef(userID)

	keep := make(map[string]bool, len(lines))
	for _, l := range lines {
		keep[docID(l)] = true
	}

	existing, err := ref.DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list cart lines: %w", err)
	}

	bw := m.client.BulkWriter(ctx)
	for _, doc := range existing {
		if !keep[doc.ID] {
			if _, err := bw.Delete(doc); err != nil {
				return fmt.Errorf("queue cart line delete: %w", err)
			}
		}
	}
	for _, l := range lines {
		if _, err := bw.Set(ref.Doc(docID(l)), l); err != nil {
			return fmt.Errorf("queue cart line write: %w", err)
		}
	}
	bw.End()
	return nil
}

// Clear removes every remote line for the user.
func (m *FirestoreMirror) Clear(ctx context.Context, userID string) error {
	existing, err := m.linesRef(userID).DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list cart lines: %w", err)
	}
	bw := m.client.BulkWriter(ctx)
	for _, doc := range existing {
		if _, err := bw.Delete(doc); err != nil {
			return fmt.Errorf("queue cart line delete: %w", err)
		}
	}
	bw.End()
	return nil
}

// docID escapes the identity key into a Firestore-safe document ID.
func docID(l Line) string {
	return url.PathEscape(l.Key())
}

// Compile-time interface check
var _ Mirror = (*FirestoreMirror)(nil)
