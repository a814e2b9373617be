package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// collect drains a document iterator, decoding every document.
func collect[T any](iter *firestore.DocumentIterator, collection string, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer iter.Stop()
	var out []T
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate %s: %w", collection, err)
		}
		rec, err := decode(doc)
		if err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", collection, doc.Ref.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// findByID returns the first document whose numeric id field equals id.
func findByID[T any](ctx context.Context, col *firestore.CollectionRef, id int64, decode func(*firestore.DocumentSnapshot) (T, error)) (T, bool, error) {
	var zero T
	found, err := collect(col.Where("id", "==", id).Limit(1).Documents(ctx), col.ID, decode)
	if err != nil {
		return zero, false, err
	}
	if len(found) == 0 {
		return zero, false, nil
	}
	return found[0], true, nil
}

// documentID falls back to the document name when a record carries no id field.
func documentID(id int64, doc *firestore.DocumentSnapshot) int64 {
	if id != 0 {
		return id
	}
	parsed, err := strconv.ParseInt(doc.Ref.ID, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
