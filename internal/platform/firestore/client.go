package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// CredentialsSource yields service account JSON and a label for where it came from.
type CredentialsSource interface {
	FirebaseCredentialsJSON() ([]byte, string, error)
}

// New creates a Firestore client for projectID using creds.
// It returns the client and a description of which credential source was used.
func New(ctx context.Context, projectID string, creds CredentialsSource) (*firestore.Client, string, error) {
	data, source, err := creds.FirebaseCredentialsJSON()
	if err != nil {
		return nil, "", err
	}

	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsJSON(data))
	if err != nil {
		return nil, "", fmt.Errorf("init firestore client: %w", err)
	}
	return client, source, nil
}

// Ping performs a lightweight check by attempting to iterate collections.
func Ping(ctx context.Context, client *firestore.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	iter := client.Collections(ctx)
	_, err := iter.Next()
	if err == nil || errors.Is(err, iterator.Done) {
		return nil
	}
	return fmt.Errorf("firestore ping: %w", err)
}
