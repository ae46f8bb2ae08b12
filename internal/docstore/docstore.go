// Package docstore is the remote document database the synchronization stores talk to.
// Documents are schemaless field maps grouped in collections addressed by slash paths
// such as "users/{uid}/goals".
package docstore

import (
	"context"
	"errors"
	"strings"
)

const (
	CollectionGoals      = "goals"
	CollectionActivities = "activities"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrInvalidCollection = errors.New("invalid collection path")
)

// Fields is the JSON-like content of a document.
type Fields map[string]any

type Document struct {
	ID     string
	Fields Fields
}

// Store is the small surface the app needs from a document database.
// List order is unspecified. Update merges the given fields into the document.
type Store interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Add(ctx context.Context, collection string, fields Fields) (string, error)
	Update(ctx context.Context, collection, id string, fields Fields) error
	Delete(ctx context.Context, collection, id string) error
}

// UserCollection returns the path of a per-user sub-collection.
func UserCollection(userID, name string) string {
	return "users/" + userID + "/" + name
}

func validCollection(collection string) error {
	if collection == "" || strings.HasPrefix(collection, "/") || strings.HasSuffix(collection, "/") {
		return ErrInvalidCollection
	}
	for _, part := range strings.Split(collection, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidCollection
		}
	}
	return nil
}

func merge(dst, src Fields) Fields {
	out := make(Fields, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

func clone(f Fields) Fields {
	return merge(f, nil)
}
