package reels

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

type markerKey struct {
	subjectID string
	viewerID  string
}

// MockReelsService implements Service in memory for unit tests. A single
// mutex serializes every toggle, so marker and counter always move together.
type MockReelsService struct {
	mu       sync.Mutex
	reels    map[string]*Reel
	order    []string
	likes    map[markerKey]bool
	dislikes map[markerKey]bool
	views    map[markerKey]bool
	follows  map[markerKey]bool
	creators map[string]*Creator
	comments map[string][]Comment
	seq      int

	followWatchers  map[markerKey][]chan bool
	commentWatchers map[string][]chan []Comment
}

// NewMockReelsService creates an empty mock service.
func NewMockReelsService() *MockReelsService {
	return &MockReelsService{
		reels:           make(map[string]*Reel),
		likes:           make(map[markerKey]bool),
		dislikes:        make(map[markerKey]bool),
		views:           make(map[markerKey]bool),
		follows:         make(map[markerKey]bool),
		creators:        make(map[string]*Creator),
		comments:        make(map[string][]Comment),
		followWatchers:  make(map[markerKey][]chan bool),
		commentWatchers: make(map[string][]chan []Comment),
	}
}

// SeedReel registers a reel fixture.
func (m *MockReelsService) SeedReel(r Reel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := r
	m.reels[r.ID] = &cp
	m.order = append(m.order, r.ID)
}

func (m *MockReelsService) ListReels(_ context.Context) ([]Reel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Reel, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.reels[id])
	}
	return out, nil
}

func (m *MockReelsService) GetReel(_ context.Context, reelID string) (*Reel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reels[reelID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockReelsService) ToggleLike(_ context.Context, reelID, viewerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reels[reelID]
	if !ok {
		return false, ErrNotFound
	}
	key := markerKey{reelID, viewerID}
	if m.likes[key] {
		delete(m.likes, key)
		r.Likes = clamp(r.Likes - 1)
		return false, nil
	}
	m.likes[key] = true
	r.Likes++
	return true, nil
}

func (m *MockReelsService) ToggleDislike(_ context.Context, reelID, viewerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reels[reelID]
	if !ok {
		return false, ErrNotFound
	}
	key := markerKey{reelID, viewerID}
	if m.dislikes[key] {
		delete(m.dislikes, key)
		r.Dislikes = clamp(r.Dislikes - 1)
		return false, nil
	}
	m.dislikes[key] = true
	r.Dislikes++
	return true, nil
}

func (m *MockReelsService) RecordView(_ context.Context, reelID, viewerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reels[reelID]
	if !ok {
		return ErrNotFound
	}
	key := markerKey{reelID, viewerID}
	if m.views[key] {
		return nil
	}
	m.views[key] = true
	r.Views++
	return nil
}

func (m *MockReelsService) EngagementFor(_ context.Context, reelID, viewerID string) (Engagement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := markerKey{reelID, viewerID}
	return Engagement{
		Liked:    m.likes[key],
		Disliked: m.dislikes[key],
		Viewed:   m.views[key],
	}, nil
}

func (m *MockReelsService) ToggleFollow(_ context.Context, creatorID, viewerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := markerKey{creatorID, viewerID}
	creator := m.creator(creatorID)

	var following bool
	if m.follows[key] {
		delete(m.follows, key)
		creator.Followers = clamp(creator.Followers - 1)
		creator.Connections = clamp(creator.Connections - 1)
		following = false
	} else {
		m.follows[key] = true
		creator.Followers++
		creator.Connections++
		following = true
	}

	for _, ch := range m.followWatchers[key] {
		select {
		case ch <- following:
		default:
		}
	}
	return following, nil
}

func (m *MockReelsService) IsFollowing(_ context.Context, creatorID, viewerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.follows[markerKey{creatorID, viewerID}], nil
}

func (m *MockReelsService) GetCreator(_ context.Context, creatorID string) (*Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *m.creator(creatorID)
	return &cp, nil
}

func (m *MockReelsService) WatchFollowState(ctx context.Context, creatorID, viewerID string) (<-chan bool, error) {
	m.mu.Lock()
	key := markerKey{creatorID, viewerID}
	ch := make(chan bool, 8)
	ch <- m.follows[key]
	m.followWatchers[key] = append(m.followWatchers[key], ch)
	m.mu.Unlock()

	out := make(chan bool)
	go func() {
		defer close(out)
		for {
			select {
			case v := <-ch:
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (m *MockReelsService) AddComment(_ context.Context, reelID, authorID, authorName, text string) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reels[reelID]; !ok {
		return nil, ErrNotFound
	}

	m.seq++
	c := Comment{
		ID:         fmt.Sprintf("c%d", m.seq),
		ReelID:     reelID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	m.comments[reelID] = append(m.comments[reelID], c)

	thread := slices.Clone(m.comments[reelID])
	for _, ch := range m.commentWatchers[reelID] {
		select {
		case ch <- thread:
		default:
		}
	}
	return &c, nil
}

func (m *MockReelsService) ListComments(_ context.Context, reelID string) ([]Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.comments[reelID]), nil
}

func (m *MockReelsService) WatchComments(ctx context.Context, reelID string) (<-chan []Comment, error) {
	m.mu.Lock()
	ch := make(chan []Comment, 8)
	ch <- slices.Clone(m.comments[reelID])
	m.commentWatchers[reelID] = append(m.commentWatchers[reelID], ch)
	m.mu.Unlock()

	out := make(chan []Comment)
	go func() {
		defer close(out)
		for {
			select {
			case v := <-ch:
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// creator returns the counter record for a creator, creating it at zero.
// Callers hold m.mu.
func (m *MockReelsService) creator(creatorID string) *Creator {
	c, ok := m.creators[creatorID]
	if !ok {
		c = &Creator{ID: creatorID}
		m.creators[creatorID] = c
	}
	return c
}

// Compile-time interface check
var _ Service = (*MockReelsService)(nil)
