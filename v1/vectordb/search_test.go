package vectordb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type article struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

func TestTopN_DecodesPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := NewMockIndex(ctrl)

	idx.EXPECT().TopNRows(gomock.Any(), "vectors", 2).Return([]RowResult{
		{Score: 0.1, ID: "a", Payload: Row{"id": String("a"), "title": String("First"), "year": Number(2020)}},
		{Score: 0.4, ID: "b", Payload: Row{"id": String("b"), "title": String("Second"), "year": Number(2021)}},
	}, nil)

	got, err := TopN[article](context.Background(), idx, "vectors", 2)
	require.NoError(t, err)
	assert.Equal(t, []Result[article]{
		{Score: 0.1, ID: "a", Payload: article{ID: "a", Title: "First", Year: 2020}},
		{Score: 0.4, ID: "b", Payload: article{ID: "b", Title: "Second", Year: 2021}},
	}, got)
}

func TestTopN_DecodeFailureIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := NewMockIndex(ctrl)

	idx.EXPECT().TopNRows(gomock.Any(), "q", 3).Return([]RowResult{
		{Score: 0.1, ID: "a", Payload: Row{"title": String("ok"), "year": Number(2020)}},
		{Score: 0.2, ID: "b", Payload: Row{"title": String("bad"), "year": String("twenty")}},
		{Score: 0.3, ID: "c", Payload: Row{"title": String("ok"), "year": Number(2022)}},
	}, nil)

	got, err := TopN[article](context.Background(), idx, "q", 3)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 1, decodeErr.Index)
	assert.Equal(t, "b", decodeErr.ID)
}

func TestTopN_PropagatesIndexError(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := NewMockIndex(ctrl)

	cause := &EmbeddingError{Err: errors.New("model offline")}
	idx.EXPECT().TopNRows(gomock.Any(), "q", 1).Return(nil, cause)

	_, err := TopN[article](context.Background(), idx, "q", 1)
	assert.ErrorIs(t, err, ErrEmbedding)
	assert.NotErrorIs(t, err, ErrStore)
}

func TestErrors_KindsAreDistinct(t *testing.T) {
	cause := errors.New("boom")
	errs := []error{
		&EmbeddingError{Err: cause},
		&StoreError{Op: "execute", Err: cause},
		&DecodeError{Index: 0, Err: cause},
	}
	sentinels := []error{ErrEmbedding, ErrStore, ErrDecode}

	for i, err := range errs {
		assert.ErrorIs(t, err, cause)
		for j, s := range sentinels {
			assert.Equal(t, i == j, errors.Is(err, s), "%v vs %v", err, s)
		}
	}
}

// Rows are decoded whole, so payload types can pick up the id and the
// store distance next to the scalar columns.
func TestTopN_PayloadSeesIDAndDistanceColumns(t *testing.T) {
	type scored struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		Distance float64 `json:"_distance"`
	}

	ctrl := gomock.NewController(t)
	idx := NewMockIndex(ctrl)

	idx.EXPECT().TopNRows(gomock.Any(), "q", 1).Return([]RowResult{
		{Score: 0.75, ID: "a", Payload: Row{"id": String("a"), "title": String("First"), DistanceColumn: Number(0.75), "extra": Bool(true)}},
	}, nil)

	got, err := TopN[scored](context.Background(), idx, "q", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, scored{ID: "a", Title: "First", Distance: 0.75}, got[0].Payload)
	assert.Equal(t, got[0].Score, got[0].Payload.Distance)
}
