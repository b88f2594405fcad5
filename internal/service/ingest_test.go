package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func TestIngestCreatesProduct(t *testing.T) {
	st, mock, mockDB := newMockStore(t)
	defer mockDB.Close()

	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	pub := &stubPublisher{}
	pipeline := NewIngestionPipeline(st, pub)

	res, err := pipeline.Ingest(context.Background(), models.RawPost{
		Text:         "#Jackets #Nike\nWinter Jacket\nЦена: 4 990 ₽",
		SourceChatID: int64p(-100123),
		SourceMsgID:  int64p(42),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), res.ProductID)
	assert.True(t, res.Created)
	assert.Equal(t, "Jackets", res.Category)
	assert.Equal(t, "Nike", res.Brand)
	assert.Equal(t, int64(499000), res.Price)

	require.Len(t, pub.ingested, 1)
	assert.Equal(t, models.EventTypeProductIngested, pub.ingested[0].EventType)
	assert.Equal(t, int64(11), pub.ingested[0].ProductID)
	assert.True(t, pub.ingested[0].Created)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngestDuplicateSourceResolvesExisting(t *testing.T) {
	st, mock, mockDB := newMockStore(t)
	defer mockDB.Close()

	// first delivery inserts, redelivery of the same source message
	// resolves to the existing id
	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM products WHERE source_chat_id").
		WithArgs(int64(-100123), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	pub := &stubPublisher{}
	pipeline := NewIngestionPipeline(st, pub)

	post := models.RawPost{
		Text:         "Plain product\n100 руб",
		SourceChatID: int64p(-100123),
		SourceMsgID:  int64p(42),
	}

	first, err := pipeline.Ingest(context.Background(), post)
	require.NoError(t, err)
	second, err := pipeline.Ingest(context.Background(), post)
	require.NoError(t, err)

	assert.Equal(t, first.ProductID, second.ProductID)
	assert.True(t, first.Created)
	assert.False(t, second.Created)

	require.Len(t, pub.ingested, 2)
	assert.False(t, pub.ingested[1].Created)

	assert.NoError(t, mock.ExpectationsWereMet())
}
