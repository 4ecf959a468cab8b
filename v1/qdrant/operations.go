package qdrant

import (
	"context"
	"fmt"
	"strconv"

	qdrant "github.com/qdrant/go-client/qdrant"
	"golang.org/x/sync/errgroup"
)

const (
	// defaultBatchSize is the chunk size for upserts.
	defaultBatchSize = 200
	// upsertConcurrency bounds the chunks in flight.
	upsertConcurrency = 4
)

// EnsureCollection ──────────────────────────────────────────────────────────────
// EnsureCollection
// ──────────────────────────────────────────────────────────────
//
// EnsureCollection creates the collection with the given vectors unless it
// already exists. An existing collection is left untouched even when its
// vectors differ.
func (c *QdrantClient) EnsureCollection(ctx context.Context, name string, vectors ...VectorConfig) error {
	if name == "" {
		return fmt.Errorf("[Qdrant] collection name cannot be empty")
	}
	if len(vectors) == 0 {
		return fmt.Errorf("[Qdrant] collection '%s' needs at least one vector", name)
	}

	exists, err := c.api.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to check collection '%s': %w", name, err)
	}
	if exists {
		c.logger.Debug("[Qdrant] Collection already exists", nil, map[string]interface{}{"collection": name})
		return nil
	}

	vectorsConfig, err := buildVectorsConfig(vectors)
	if err != nil {
		return err
	}

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig:  vectorsConfig,
	}
	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}

	c.logger.Info("[Qdrant] Created collection", nil, map[string]interface{}{
		"collection": name,
		"vectors":    len(vectors),
	})
	return nil
}

func buildVectorsConfig(vectors []VectorConfig) (*qdrant.VectorsConfig, error) {
	if len(vectors) == 1 && vectors[0].Name == "" {
		params, err := vectorParams(vectors[0])
		if err != nil {
			return nil, err
		}
		return qdrant.NewVectorsConfig(params), nil
	}

	m := make(map[string]*qdrant.VectorParams, len(vectors))
	for _, v := range vectors {
		if v.Name == "" {
			return nil, fmt.Errorf("[Qdrant] an unnamed vector cannot be combined with named vectors")
		}
		params, err := vectorParams(v)
		if err != nil {
			return nil, err
		}
		m[v.Name] = params
	}
	return qdrant.NewVectorsConfigMap(m), nil
}

func vectorParams(v VectorConfig) (*qdrant.VectorParams, error) {
	if v.Size == 0 {
		return nil, fmt.Errorf("[Qdrant] vector '%s' needs a size", v.Name)
	}
	d, err := toQdrantDistance(v.Distance)
	if err != nil {
		return nil, err
	}
	return &qdrant.VectorParams{Size: v.Size, Distance: d}, nil
}

// Upsert ──────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────
//
// Upsert writes points in chunks of defaultBatchSize, at most
// upsertConcurrency chunks at a time, and waits for every chunk to be
// persisted. All points are converted before the first request, so an
// invalid point writes nothing.
func (c *QdrantClient) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	structs := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		ps, err := toPointStruct(p)
		if err != nil {
			return err
		}
		structs = append(structs, ps)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(upsertConcurrency)

	for start := 0; start < len(structs); start += defaultBatchSize {
		end := min(start+defaultBatchSize, len(structs))
		batch := structs[start:end]

		g.Go(func() error {
			if _, err := c.api.Upsert(gctx, &qdrant.UpsertPoints{
				CollectionName: collection,
				Points:         batch,
				Wait:           qdrant.PtrOf(true),
			}); err != nil {
				return fmt.Errorf("[Qdrant] upsert failed at [%d:%d]: %w", start, end, err)
			}
			c.logger.Debug("[Qdrant] Upserted batch", nil, map[string]interface{}{
				"collection": collection,
				"start":      start,
				"end":        end,
			})
			return nil
		})
	}
	return g.Wait()
}

func toPointStruct(p Point) (*qdrant.PointStruct, error) {
	payload, err := qdrant.TryValueMap(p.Payload)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] invalid payload for point '%s': %w", p.ID, err)
	}

	var vectors *qdrant.Vectors
	switch {
	case len(p.Vector) > 0 && len(p.Vectors) > 0:
		return nil, fmt.Errorf("[Qdrant] point '%s' sets both an unnamed and named vectors", p.ID)
	case len(p.Vector) > 0:
		vectors = qdrant.NewVectors(p.Vector...)
	case len(p.Vectors) > 0:
		m := make(map[string]*qdrant.Vector, len(p.Vectors))
		for name, v := range p.Vectors {
			m[name] = qdrant.NewVector(v...)
		}
		vectors = qdrant.NewVectorsMap(m)
	default:
		return nil, fmt.Errorf("[Qdrant] point '%s' has no vector", p.ID)
	}

	return &qdrant.PointStruct{
		Id:      pointID(p.ID),
		Vectors: vectors,
		Payload: payload,
	}, nil
}

// pointID maps numeric ids to integer point ids and everything else to UUIDs.
func pointID(id string) *qdrant.PointId {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return qdrant.NewIDNum(n)
	}
	return qdrant.NewID(id)
}

// Delete removes points by id and waits for completion.
func (c *QdrantClient) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, pointID(id))
	}

	resp, err := c.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points:         qdrant.NewPointsSelector(pointIDs...),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("[Qdrant] delete failed: %w", err)
	}

	c.logger.Debug("[Qdrant] Delete completed", nil, map[string]interface{}{
		"collection": collection,
		"status":     resp.GetStatus().String(),
	})
	return nil
}

// GetCollection ──────────────────────────────────────────────────────────────
// GetCollection
// ──────────────────────────────────────────────────────────────
//
// GetCollection returns a summary of a collection without exposing SDK types.
func (c *QdrantClient) GetCollection(ctx context.Context, name string) (*Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("[Qdrant] collection name cannot be empty")
	}

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", name, err)
	}

	sizes := make(map[string]int)
	for col, params := range extractVectorParams(info) {
		sizes[col] = int(params.GetSize())
	}

	return &Collection{
		Name:        name,
		Status:      info.GetStatus().String(),
		Vectors:     derefUint64(info.IndexedVectorsCount),
		Points:      derefUint64(info.PointsCount),
		VectorSizes: sizes,
	}, nil
}

// ListCollections returns the names of all collections.
func (c *QdrantClient) ListCollections(ctx context.Context) ([]string, error) {
	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}
	return names, nil
}
