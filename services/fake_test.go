package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
)

var errDown = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore backs the fake repositories with one shared roster and match list.
type memoryStore struct {
	mu      sync.Mutex
	players []models.Player
	matches []models.Match
	nextID  int
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1}
}

func (s *memoryStore) hasPlayer(id int) bool {
	for _, p := range s.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

type fakePlayerRepo struct{ store *memoryStore }

func (r fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.err != nil {
		return r.store.err
	}
	player.ID = r.store.nextID
	player.CreatedAt = time.Now()
	r.store.nextID++
	r.store.players = append(r.store.players, *player)
	return nil
}

func (r fakePlayerRepo) List(context.Context) ([]models.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.err != nil {
		return nil, r.store.err
	}
	return append([]models.Player(nil), r.store.players...), nil
}

func (r fakePlayerRepo) Count(context.Context) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.err != nil {
		return 0, r.store.err
	}
	return len(r.store.players), nil
}

func (r fakePlayerRepo) DeleteAll(context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.err != nil {
		return r.store.err
	}
	r.store.players = nil
	r.store.matches = nil
	return nil
}

type fakeMatchRepo struct{ store *memoryStore }

func (r fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.err != nil {
		return r.store.err
	}
	if !r.store.hasPlayer(match.WinnerID) || (!match.Bye && !r.store.hasPlayer(match.LoserID)) {
		return repositories.ErrMatchPlayerInvalid
	}
	if !match.Bye && match.WinnerID == match.LoserID {
		return repositories.ErrMatchSelfPlay
	}
	match.ID = r.store.nextID
	match.CreatedAt = time.Now()
	r.store.nextID++
	r.store.matches = append(r.store.matches, *match)
	return nil
}

func (r fakeMatchRepo) List(context.Context) ([]models.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.err != nil {
		return nil, r.store.err
	}
	return append([]models.Match(nil), r.store.matches...), nil
}

func (r fakeMatchRepo) DeleteAll(context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.err != nil {
		return r.store.err
	}
	r.store.matches = nil
	return nil
}

type fakeSnapshotRepo struct{ store *memoryStore }

func (r fakeSnapshotRepo) Load(context.Context) (*models.Snapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.err != nil {
		return nil, r.store.err
	}
	return &models.Snapshot{
		Players: append([]models.Player(nil), r.store.players...),
		Matches: append([]models.Match(nil), r.store.matches...),
	}, nil
}

type recordedEvent struct {
	Type    string
	Payload interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) BroadcastEvent(eventType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Type: eventType, Payload: payload})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.Type
	}
	return out
}

type memoryUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: make(map[string][]byte)}
}

func (u *memoryUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(_ context.Context, key string) error {
	if u.err != nil {
		return u.err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://archive.test/" + key
}

func (u *memoryUploader) keys() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.objects))
	for k := range u.objects {
		out = append(out, k)
	}
	return out
}
