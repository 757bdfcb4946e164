package database

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-quiz/internal/entity"
)

var responseColumns = []string{
	"id", "created_at", "lead_id", "total", "bucket", "answers",
	"id", "created_at", "name", "email", "phone",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestResponseRepositoryListNumericTerm(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(l.phone, '') FROM responses r JOIN leads l ON l.id = r.lead_id")).
		WithArgs("14", "%14%", true, 14, 50).
		WillReturnRows(sqlmock.NewRows(responseColumns).AddRow(
			"resp-1", created, "lead-1", 14, "self-driving", []byte(`{"q1":2,"q2":1}`),
			"lead-1", created.Add(-time.Hour), "Hana", "hana@example.com", "",
		))

	repo := NewResponseRepository(db)
	got, err := repo.List(context.Background(), entity.ListQuery{
		Resource: entity.ResourceResponses, Term: "14", NumericTerm: 14, HasNumericTerm: true, Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	resp := got[0]
	assert.Equal(t, "resp-1", resp.ID)
	assert.Equal(t, 14, resp.Total)
	assert.Equal(t, entity.BucketSelfDriving, resp.Bucket)
	assert.Equal(t, map[string]int{"q1": 2, "q2": 1}, resp.Answers)
	require.NotNil(t, resp.Lead)
	assert.Equal(t, "Hana", resp.Lead.Name)
	assert.Equal(t, "hana@example.com", resp.Lead.Email)
	assert.Empty(t, resp.Lead.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseRepositoryListTextTerm(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY r.created_at DESC LIMIT $5")).
		WithArgs("lack", "%lack%", false, 0, 100).
		WillReturnRows(sqlmock.NewRows(responseColumns))

	got, err := NewResponseRepository(db).List(context.Background(), entity.ListQuery{
		Resource: entity.ResourceResponses, Term: "lack", Limit: 100,
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseRepositoryListBadAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery("FROM responses r").
		WillReturnRows(sqlmock.NewRows(responseColumns).AddRow(
			"resp-9", now, "lead-1", 3, "lacking-right-hand", []byte(`not json`),
			"lead-1", now, "Taro", "taro@example.com", "090",
		))

	_, err := NewResponseRepository(db).List(context.Background(), entity.ListQuery{Limit: 10})
	assert.ErrorContains(t, err, "response resp-9 has unreadable answers")
}

func TestResponseRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO responses (lead_id, total, bucket, answers)")).
		WithArgs("lead-1", 14, "self-driving", `{"q1":2}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("resp-1", created))

	resp := &entity.Response{LeadID: "lead-1", Total: 14, Bucket: entity.BucketSelfDriving, Answers: map[string]int{"q1": 2}}
	require.NoError(t, NewResponseRepository(db).Create(context.Background(), resp))
	assert.Equal(t, "resp-1", resp.ID)
	assert.Equal(t, created, resp.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryList(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM leads WHERE $1 = '' OR name ILIKE $2")).
		WithArgs("090", "%090%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "name", "email", "phone"}).
			AddRow("lead-2", now, "Hana", "hana@example.com", "090-1111-2222").
			AddRow("lead-1", now.Add(-time.Minute), "Taro", "taro@example.com", ""))

	got, err := NewLeadRepository(db).List(context.Background(), entity.ListQuery{
		Resource: entity.ResourceLeads, Term: "090", Limit: 20,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "lead-2", got[0].ID)
	assert.Equal(t, "090-1111-2222", got[0].Phone)
	assert.Empty(t, got[1].Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryCreateStoresEmptyPhoneAsNull(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO leads (name, email, phone)")).
		WithArgs("Taro", "taro@example.com", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("lead-1", created))

	lead := &entity.Lead{Name: "Taro", Email: "taro@example.com"}
	require.NoError(t, NewLeadRepository(db).Create(context.Background(), lead))
	assert.Equal(t, "lead-1", lead.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryFindByID(t *testing.T) {
	leadColumns := []string{"id", "created_at", "name", "email", "phone"}
	findQuery := regexp.QuoteMeta("SELECT id, created_at, name, email, COALESCE(phone, '') FROM leads WHERE id = $1")

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(findQuery).WithArgs("lead-1").
			WillReturnRows(sqlmock.NewRows(leadColumns).AddRow("lead-1", time.Now(), "Taro", "taro@example.com", ""))

		lead, err := NewLeadRepository(db).FindByID(context.Background(), "lead-1")
		require.NoError(t, err)
		assert.Equal(t, "taro@example.com", lead.Email)
		assert.Empty(t, lead.Phone)
	})

	t.Run("no rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(findQuery).WithArgs("11111111-1111-1111-1111-111111111111").
			WillReturnRows(sqlmock.NewRows(leadColumns))

		_, err := NewLeadRepository(db).FindByID(context.Background(), "11111111-1111-1111-1111-111111111111")
		assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	})

	t.Run("malformed uuid", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(findQuery).WithArgs("not-a-uuid").
			WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

		_, err := NewLeadRepository(db).FindByID(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	})

	t.Run("other failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(findQuery).WillReturnError(&pq.Error{Code: "57P01", Message: "terminating connection"})

		_, err := NewLeadRepository(db).FindByID(context.Background(), "lead-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, entity.ErrLeadNotFound)
	})
}
