package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// UnnamedVectorColumn is the column name of a collection's unnamed vector.
const UnnamedVectorColumn = "vector"

// extractVectorParams ──────────────────────────────────────────────────────────────
// extractVectorParams
// ──────────────────────────────────────────────────────────────
//
// extractVectorParams returns the vector parameters of a collection keyed by
// column name. The unnamed vector is keyed by UnnamedVectorColumn.
//
// Qdrant nests the vector configuration in protobuf "oneof" wrappers; any
// missing level yields an empty map.
func extractVectorParams(info *qdrant.CollectionInfo) map[string]*qdrant.VectorParams {
	out := make(map[string]*qdrant.VectorParams)
	cfg := info.GetConfig().GetParams().GetVectorsConfig()
	if cfg == nil {
		return out
	}

	switch c := cfg.Config.(type) {
	case *qdrant.VectorsConfig_Params:
		if c.Params != nil {
			out[UnnamedVectorColumn] = c.Params
		}
	case *qdrant.VectorsConfig_ParamsMap:
		for name, params := range c.ParamsMap.GetMap() {
			if params != nil {
				out[name] = params
			}
		}
	}
	return out
}

// payloadFieldType maps an indexed payload type to a column type.
func payloadFieldType(t qdrant.PayloadSchemaType) vectordb.FieldType {
	switch t {
	case qdrant.PayloadSchemaType_Keyword, qdrant.PayloadSchemaType_Text,
		qdrant.PayloadSchemaType_Uuid, qdrant.PayloadSchemaType_Datetime:
		return vectordb.FieldTypeString
	case qdrant.PayloadSchemaType_Integer:
		return vectordb.FieldTypeInt
	case qdrant.PayloadSchemaType_Float:
		return vectordb.FieldTypeFloat
	case qdrant.PayloadSchemaType_Bool:
		return vectordb.FieldTypeBool
	case qdrant.PayloadSchemaType_Geo:
		return vectordb.FieldTypeJSON
	default:
		return vectordb.FieldTypeOther
	}
}

func toQdrantDistance(d vectordb.DistanceType) (qdrant.Distance, error) {
	switch d {
	case vectordb.DistanceL2:
		return qdrant.Distance_Euclid, nil
	case vectordb.DistanceCosine:
		return qdrant.Distance_Cosine, nil
	case vectordb.DistanceDot:
		return qdrant.Distance_Dot, nil
	default:
		return qdrant.Distance_UnknownDistance, fmt.Errorf("[Qdrant] distance type %s is not supported", d)
	}
}

// scoreToDistance turns a Qdrant score into a distance where smaller means
// closer, on the same scale as the other tables: squared L2, cosine
// distance and 1 - dot product.
func scoreToDistance(metric qdrant.Distance, score float32) float64 {
	s := float64(score)
	switch metric {
	case qdrant.Distance_Euclid:
		return s * s
	case qdrant.Distance_Cosine, qdrant.Distance_Dot:
		return 1 - s
	default:
		return s
	}
}

// derefUint64 safely dereferences a *uint64 pointer.
func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
