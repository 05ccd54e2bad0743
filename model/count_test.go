package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleCountUnmarshal(t *testing.T) {
	var m RawMeme

	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","commentsCount":12}`), &m))
	assert.Equal(t, FlexibleCount(12), m.CommentsCount)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","commentsCount":"34"}`), &m))
	assert.Equal(t, FlexibleCount(34), m.CommentsCount)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","commentsCount":" 7 "}`), &m))
	assert.Equal(t, FlexibleCount(7), m.CommentsCount)
}

func TestFlexibleCountUnmarshalUnparsable(t *testing.T) {
	var m RawMeme

	// garbage strings decode to 0 instead of failing the whole meme
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","commentsCount":"lots"}`), &m))
	assert.Equal(t, FlexibleCount(0), m.CommentsCount)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","commentsCount":null}`), &m))
	assert.Equal(t, FlexibleCount(0), m.CommentsCount)
}

func TestFlexibleCountMarshal(t *testing.T) {
	b, err := json.Marshal(FlexibleCount(5))
	require.NoError(t, err)
	assert.Equal(t, "5", string(b))
}
