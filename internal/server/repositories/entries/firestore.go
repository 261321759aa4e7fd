package entries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
)

// Firestore document field names.
const (
	fieldUserID           = "userId"
	fieldEntryText        = "entryText"
	fieldTimestamp        = "timestamp"
	fieldSentimentSummary = "sentimentSummary"
	fieldSentimentScore   = "sentimentScore"
)

type firestoreDoc struct {
	UserID    string    `firestore:"userId"`
	EntryText string    `firestore:"entryText"`
	Timestamp time.Time `firestore:"timestamp,serverTimestamp"`
}

// FirestoreRepository stores entries as documents of one collection,
// written through the server SDK.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreRepository binds the repository to a collection.
func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	return &FirestoreRepository{client: client, collection: collection}
}

func (r *FirestoreRepository) coll() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

func (r *FirestoreRepository) doc(entryID string) (*firestore.DocumentRef, error) {
	if entryID == "" || strings.Contains(entryID, "/") {
		return nil, common.ErrorNotFound
	}
	return r.coll().Doc(entryID), nil
}

func (r *FirestoreRepository) Create(ctx context.Context, userID, text string) (string, error) {
	ref, _, err := r.coll().Add(ctx, firestoreDoc{
		UserID:    userID,
		EntryText: text,
	})
	if err != nil {
		return "", fmt.Errorf("firestore add: %w", err)
	}
	return ref.ID, nil
}

// List returns the user's documents. Order is left to the normalizer so
// that documents with legacy timestamp encodings are not dropped by an
// index-backed OrderBy.
func (r *FirestoreRepository) List(ctx context.Context, userID string) ([]journal.RawRecord, error) {
	it := r.coll().Where(fieldUserID, "==", userID).Documents(ctx)
	defer it.Stop()

	out := []journal.RawRecord{}
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore query: %w", err)
		}
		out = append(out, adminRecord(snap))
	}
	return out, nil
}

func adminRecord(snap *firestore.DocumentSnapshot) journal.AdminRecord {
	data := snap.Data()
	rec := journal.AdminRecord{
		ID:        snap.Ref.ID,
		Timestamp: data[fieldTimestamp],
	}
	rec.UserID, _ = data[fieldUserID].(string)
	rec.EntryText, _ = data[fieldEntryText].(string)
	if s, ok := data[fieldSentimentSummary].(string); ok {
		rec.SentimentSummary = &s
	}
	return rec
}

func (r *FirestoreRepository) Delete(ctx context.Context, entryID, userID string) error {
	ref, err := r.doc(entryID)
	if err != nil {
		return err
	}
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := r.checkOwner(tx, ref, userID); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
}

func (r *FirestoreRepository) SetSentiment(ctx context.Context, entryID, userID string, s Sentiment) error {
	ref, err := r.doc(entryID)
	if err != nil {
		return err
	}
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := r.checkOwner(tx, ref, userID); err != nil {
			return err
		}
		updates := []firestore.Update{{Path: fieldSentimentSummary, Value: s.Summary}}
		if s.Score != nil {
			updates = append(updates, firestore.Update{Path: fieldSentimentScore, Value: *s.Score})
		}
		return tx.Update(ref, updates)
	})
}

func (r *FirestoreRepository) checkOwner(tx *firestore.Transaction, ref *firestore.DocumentRef, userID string) error {
	snap, err := tx.Get(ref)
	if status.Code(err) == codes.NotFound {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("firestore get: %w", err)
	}
	owner, _ := snap.Data()[fieldUserID].(string)
	if owner != userID {
		return common.ErrorUnauthorized
	}
	return nil
}
