package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMUS_RoundTrip(t *testing.T) {
	original := Record{
		Id:          NewRecordID(),
		FirstName:   "John",
		LastName:    "Doe",
		Email:       "john.doe@example.com",
		Description: "Long-term consulting client",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	buf := make([]byte, RecordMUS.Size(original))
	n := RecordMUS.Marshal(original, buf)
	require.Equal(t, len(buf), n)

	decoded, n, err := RecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Email, decoded.Email)
	assert.Equal(t, original.Description, decoded.Description)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
}

func TestDocumentMUS_RoundTrip(t *testing.T) {
	original := Document{
		Id:        NewDocumentID(),
		OwnerId:   NewRecordID(),
		Title:     "Tax Return 2023",
		Content:   "Annual tax filing for fiscal year 2023.",
		Summary:   "",
		Embedding: []float32{0.25, -0.5, 0.75},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	buf := make([]byte, DocumentMUS.Size(original))
	n := DocumentMUS.Marshal(original, buf)
	require.Equal(t, len(buf), n)

	decoded, _, err := DocumentMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.OwnerId, decoded.OwnerId)
	assert.Equal(t, original.Title, decoded.Title)
	assert.Equal(t, original.Embedding, decoded.Embedding)
}

func TestDocumentMUS_NilEmbedding(t *testing.T) {
	original := Document{
		Id:      NewDocumentID(),
		OwnerId: NewRecordID(),
		Title:   "Bank Statement",
		Content: "Monthly statement.",
	}

	buf := make([]byte, DocumentMUS.Size(original))
	DocumentMUS.Marshal(original, buf)

	decoded, _, err := DocumentMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.False(t, decoded.HasEmbedding())
}
