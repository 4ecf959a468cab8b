package qdrant

import (
	"context"

	qdrant "github.com/qdrant/go-client/qdrant"
)

//go:generate mockgen -source=interface.go -destination=mock_interface.go -package=qdrant

// CollectionAPI is the part of the Qdrant SDK client a Table reads through.
// *qdrant.Client satisfies it.
type CollectionAPI interface {
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
}

var _ CollectionAPI = (*qdrant.Client)(nil)
