package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"main/model"
	"main/utils"
)

const (
	maxTitleLength   = 200
	maxContentLength = 50000
)

// NotesStore is the persistence contract the notes service needs. Owner
// scoping lives in the store queries; everything else lives here.
type NotesStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetUserNotes(ctx context.Context, ownerID string) ([]*model.Note, error)
	GetNote(ctx context.Context, noteID, ownerID string) (*model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) (bool, error)
	DeleteNote(ctx context.Context, noteID, ownerID string) (bool, error)
	AddSharedUser(ctx context.Context, noteID, ownerID, targetID string) (bool, error)
	FindMatching(ctx context.Context, terms []string) ([]*model.Note, error)
}

// UserLookup resolves share targets to known users.
type UserLookup interface {
	FindByID(ctx context.Context, userID string) (*model.User, error)
}

type NotesService struct {
	Store NotesStore
	Users UserLookup
}

// ListNotes returns the caller's own notes. Notes shared with the caller
// are deliberately not included; the sharing relation currently grants no
// read path (see GetNote).
func (svc *NotesService) ListNotes(ctx context.Context, callerID string) ([]*model.Note, error) {
	if callerID == "" {
		return nil, fmt.Errorf("caller ID is required")
	}

	notes, err := svc.Store.GetUserNotes(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (svc *NotesService) CreateNote(ctx context.Context, callerID, title, content string) (*model.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if len(content) > maxContentLength {
		return nil, ErrContentTooLong
	}

	now := time.Now()
	note := &model.Note{
		ID:         utils.NewID(),
		OwnerID:    callerID,
		Title:      title,
		Content:    content,
		SharedWith: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := svc.Store.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	utils.TrackNoteOperation("create")
	return note, nil
}

// GetNote retrieves a note owned by the caller. A note that is shared with
// the caller but owned by someone else is not retrievable here either.
func (svc *NotesService) GetNote(ctx context.Context, callerID, noteID string) (*model.Note, error) {
	note, err := svc.Store.GetNote(ctx, noteID, callerID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// UpdateNote applies a partial update: nil fields keep their current value.
// The resulting title must still be non-empty.
func (svc *NotesService) UpdateNote(ctx context.Context, callerID, noteID string, title, content *string) (*model.Note, error) {
	note, err := svc.Store.GetNote(ctx, noteID, callerID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	if title != nil {
		note.Title = strings.TrimSpace(*title)
	}
	if content != nil {
		note.Content = *content
	}

	if note.Title == "" {
		return nil, ErrTitleRequired
	}
	if len(note.Title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if len(note.Content) > maxContentLength {
		return nil, ErrContentTooLong
	}

	note.UpdatedAt = time.Now()

	matched, err := svc.Store.UpdateNote(ctx, note)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNoteNotFound
	}

	utils.TrackNoteOperation("update")
	return note, nil
}

func (svc *NotesService) DeleteNote(ctx context.Context, callerID, noteID string) error {
	deleted, err := svc.Store.DeleteNote(ctx, noteID, callerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("delete")
	return nil
}

// ShareNote grants the target user read visibility. Sharing is idempotent:
// repeating a share is a no-op success, and sharing a note with its own
// owner never touches shared_with.
func (svc *NotesService) ShareNote(ctx context.Context, callerID, noteID, targetID string) error {
	note, err := svc.Store.GetNote(ctx, noteID, callerID)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}

	target, err := svc.Users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	// shared_with never contains the owner
	if targetID == callerID {
		return nil
	}

	matched, err := svc.Store.AddSharedUser(ctx, noteID, callerID, targetID)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("share")
	return nil
}

// SearchNotes ranks notes by term-frequency relevance over title and
// content. The query is NOT scoped to the caller: every user's notes are
// searched. That reproduces the upstream behavior this service replaces;
// scoping the store query by owner is the recommended hardening.
func (svc *NotesService) SearchNotes(ctx context.Context, callerID, query string) ([]*model.Note, error) {
	if callerID == "" {
		return nil, fmt.Errorf("caller ID is required")
	}

	terms := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(terms) == 0 {
		return nil, ErrQueryRequired
	}

	candidates, err := svc.Store.FindMatching(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	type scored struct {
		note  *model.Note
		score int
	}

	results := make([]scored, 0, len(candidates))
	for _, note := range candidates {
		score := relevanceScore(note, terms)
		if score > 0 {
			results = append(results, scored{note: note, score: score})
		}
	}

	// Descending by score; the stable sort keeps insertion order on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	notes := make([]*model.Note, len(results))
	for i, r := range results {
		notes[i] = r.note
	}

	utils.TrackNoteOperation("search")
	return notes, nil
}

// relevanceScore counts case-insensitive term occurrences across the
// note's title and content. Monotonic in term overlap and deterministic
// for identical inputs.
func relevanceScore(note *model.Note, terms []string) int {
	text := strings.ToLower(note.Title + " " + note.Content)

	score := 0
	for _, term := range terms {
		score += strings.Count(text, term)
	}
	return score
}
