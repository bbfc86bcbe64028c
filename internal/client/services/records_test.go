package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
	"github.com/dmitrijs2005/vaultview/internal/client/repositories/records"
	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/dmitrijs2005/vaultview/internal/cryptox"
	"github.com/stretchr/testify/require"
)

func seedRecord(t *testing.T, repo records.Repository, key []byte, rec *models.Record) {
	t.Helper()
	ovC, ovN, err := cryptox.EncryptEntry(models.Overview{Type: rec.Type, Name: rec.Name}, key)
	require.NoError(t, err)
	detC, detN, err := cryptox.EncryptEntry(rec, key)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrUpdate(context.Background(), &models.EncryptedRecord{
		ID: rec.ID, Overview: ovC, NonceOverview: ovN,
		Details: detC, NonceDetails: detN, Deleted: rec.Deleted,
	}))
}

func TestRecordService_List(t *testing.T) {
	db := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	key := testBlobKey

	seedRecord(t, repo, key, loginRecord("r1"))
	seedRecord(t, repo, key, &models.Record{ID: "r2", Type: models.RecordTypeCard, Name: "visa"})
	seedRecord(t, repo, key, loginRecord("gone", func(r *models.Record) { r.Deleted = true }))

	svc := NewRecordService(repo, key, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "r1", got[0].ID)
	require.Equal(t, string(models.RecordTypeLogin), got[0].Type)
	require.Equal(t, "r2", got[1].ID)
	require.Equal(t, "visa", got[1].Name)
}

func TestRecordService_List_SkipsUndecryptable(t *testing.T) {
	db := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	key := testBlobKey

	seedRecord(t, repo, key, loginRecord("good"))

	// A row sealed under a different key must not poison the listing.
	otherKey := []byte("ffffffffffffffffffffffffffffffff")
	seedRecord(t, repo, otherKey, loginRecord("bad"))

	svc := NewRecordService(repo, key, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "good", got[0].ID)
}

func TestRecordService_Get(t *testing.T) {
	db := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	key := testBlobKey

	want := loginRecord("r1", func(r *models.Record) {
		r.Reprompt = true
		r.Login.URIs = []string{"https://example.com"}
	})
	seedRecord(t, repo, key, want)

	svc := NewRecordService(repo, key, nil)

	got, err := svc.Get(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "r1", got.ID)
	require.True(t, got.Reprompt)
	require.Equal(t, "hunter2", got.Login.Password)
}

func TestRecordService_Get_NotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewRecordService(records.NewSQLiteRepository(db), testBlobKey, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRecordService_Get_WrongKey(t *testing.T) {
	db := setupDB(t)
	repo := records.NewSQLiteRepository(db)

	seedRecord(t, repo, testBlobKey, loginRecord("r1"))

	svc := NewRecordService(repo, []byte("ffffffffffffffffffffffffffffffff"), nil)

	_, err := svc.Get(context.Background(), "r1")
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestRecordService_AllDecrypted_IncludesDeletedInOrder(t *testing.T) {
	db := setupDB(t)
	repo := records.NewSQLiteRepository(db)
	key := testBlobKey

	seedRecord(t, repo, key, loginRecord("b"))
	seedRecord(t, repo, key, loginRecord("a", func(r *models.Record) { r.Deleted = true }))
	seedRecord(t, repo, key, loginRecord("c"))

	svc := NewRecordService(repo, key, nil)

	got, err := svc.AllDecrypted(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, "a", got[1].ID)
	require.True(t, got[1].Deleted)
	require.Equal(t, "c", got[2].ID)
}
