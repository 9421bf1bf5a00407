package repository

import (
	"context"
	"errors"
	"os"
	"regexp"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NoteRepo struct {
	MongoCollection *mongo.Collection
}

func GetNoteRepo(client *mongo.Client) *NoteRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("NOTES_COLLECTION", "notes")
	return &NoteRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateNote inserts a new note
func (r *NoteRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.OwnerID == "" {
		utils.TrackError("database", "missing_owner")
		return errors.New("owner ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, note)
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
	}
	return err
}

// GetUserNotes retrieves all notes owned by the user, newest first.
// Notes merely shared with the user are not included.
func (r *NoteRepo) GetUserNotes(ctx context.Context, ownerID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote retrieves a note by id, scoped to its owner. Returns (nil, nil)
// when no note matches, whether it doesn't exist or belongs to someone else.
func (r *NoteRepo) GetNote(ctx context.Context, noteID, ownerID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": noteID, "owner_id": ownerID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "note_lookup_error")
		return nil, err
	}
	return &note, nil
}

// UpdateNote writes the note's title and content, scoped to its owner.
// Returns false when no owned note matched.
func (r *NoteRepo) UpdateNote(ctx context.Context, note *model.Note) (bool, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":      note.ID,
		"owner_id": note.OwnerID,
	}
	update := bson.M{
		"$set": bson.M{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "note_update_failed")
		return false, err
	}

	return result.MatchedCount > 0, nil
}

// DeleteNote removes a note, scoped to its owner. Returns false when no
// owned note matched.
func (r *NoteRepo) DeleteNote(ctx context.Context, noteID, ownerID string) (bool, error) {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": noteID, "owner_id": ownerID})
	if err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return false, err
	}

	return result.DeletedCount > 0, nil
}

// AddSharedUser adds the target user to the note's shared_with set in a
// single atomic update; concurrent shares cannot lose entries and sharing
// twice leaves exactly one entry. Returns false when no owned note matched.
func (r *NoteRepo) AddSharedUser(ctx context.Context, noteID, ownerID, targetID string) (bool, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":      noteID,
		"owner_id": ownerID,
	}
	update := bson.M{
		"$addToSet": bson.M{"shared_with": targetID},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "note_share_failed")
		return false, err
	}

	return result.MatchedCount > 0, nil
}

// FindMatching returns every note whose title or content contains any of
// the given terms, regardless of owner, in insertion order. Relevance
// ranking happens in the service layer.
func (r *NoteRepo) FindMatching(ctx context.Context, terms []string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	clauses := make([]bson.M, 0, len(terms)*2)
	for _, term := range terms {
		pattern := regexp.QuoteMeta(term)
		clauses = append(clauses,
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"content": bson.M{"$regex": pattern, "$options": "i"}},
		)
	}
	if len(clauses) == 0 {
		return []*model.Note{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"$or": clauses}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
