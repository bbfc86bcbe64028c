package collections

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:collectionsrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS collections (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  read_only INTEGER NULL
);
DELETE FROM collections;
`)
	require.NoError(t, err)
	return db
}

func boolPtr(b bool) *bool { return &b }

func TestReplaceAll_RoundTripsTriState(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	in := []models.Collection{
		{ID: "c1", OrganizationID: "org1", Name: "Eng", ReadOnly: boolPtr(true)},
		{ID: "c2", OrganizationID: "org1", Name: "Ops", ReadOnly: boolPtr(false)},
		{ID: "c3", OrganizationID: "org2", Name: "HR"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, in))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	byID := map[string]models.Collection{}
	for _, c := range got {
		byID[c.ID] = c
	}
	require.NotNil(t, byID["c1"].ReadOnly)
	require.True(t, *byID["c1"].ReadOnly)
	require.NotNil(t, byID["c2"].ReadOnly)
	require.False(t, *byID["c2"].ReadOnly)
	require.Nil(t, byID["c3"].ReadOnly)

	c1, c2, c3 := byID["c1"], byID["c2"], byID["c3"]
	require.False(t, c1.Editable())
	require.True(t, c2.Editable())
	require.True(t, c3.Editable())
}

func TestReplaceAll_Replaces(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []models.Collection{{ID: "old", OrganizationID: "o"}}))
	require.NoError(t, repo.ReplaceAll(ctx, []models.Collection{{ID: "new", OrganizationID: "o"}}))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "new", got[0].ID)
}
