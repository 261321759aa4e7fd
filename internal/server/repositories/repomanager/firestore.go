package repomanager

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/dmitrijs2005/echojournal/internal/server/repositories/entries"
)

// FirestoreRepositoryManager serves one Firestore collection.
type FirestoreRepositoryManager struct {
	client     *firestore.Client
	collection string
}

// seam for tests
var firestoreNewClient = firestore.NewClient

// NewFirestoreRepositoryManager connects to project. An empty
// credentialsFile uses application default credentials, or the emulator
// when FIRESTORE_EMULATOR_HOST is set.
func NewFirestoreRepositoryManager(ctx context.Context, project, collection, credentialsFile string) (*FirestoreRepositoryManager, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestoreNewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreRepositoryManager{client: client, collection: collection}, nil
}

// RunMigrations is a no-op: Firestore collections are schemaless.
func (m *FirestoreRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *FirestoreRepositoryManager) Entries() entries.Repository {
	return entries.NewFirestoreRepository(m.client, m.collection)
}

func (m *FirestoreRepositoryManager) Close() error {
	return m.client.Close()
}
