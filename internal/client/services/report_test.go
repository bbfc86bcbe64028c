package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
	"github.com/dmitrijs2005/vaultview/internal/client/repositories/records"
	"github.com/dmitrijs2005/vaultview/internal/cryptox"
	"github.com/stretchr/testify/require"
)

func uriLogin(id string, uris []string, opts ...func(*models.Record)) *models.Record {
	rec := loginRecord(id)
	rec.Login.URIs = uris
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}

func TestHasUnsecuredURI(t *testing.T) {
	tests := []struct {
		name string
		uris []string
		want bool
	}{
		{"plain http", []string{"http://example.com"}, true},
		{"https only", []string{"https://example.com"}, false},
		{"localhost exempt", []string{"http://localhost:8080/admin"}, false},
		{"loopback exempt", []string{"http://127.0.0.1/setup"}, false},
		{"mixed, one offender", []string{"https://a.com", "http://b.com"}, true},
		{"uppercase scheme not matched", []string{"HTTP://example.com"}, false},
		{"scheme embedded mid-string", []string{"myapp://open?http://x"}, false},
		{"no scheme", []string{"example.com"}, false},
		{"empty", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, hasUnsecuredURI(&models.Login{URIs: tc.uris}))
		})
	}
}

func TestUnsecuredEndpoints_Predicates(t *testing.T) {
	readOnly := true
	writable := false
	cols := []models.Collection{
		{ID: "c-ro", OrganizationID: "org1", ReadOnly: &readOnly},
		{ID: "c-rw", OrganizationID: "org1", ReadOnly: &writable},
		{ID: "c-null", OrganizationID: "org1"},
	}

	recs := []*models.Record{
		uriLogin("personal", []string{"http://a.com"}),
		uriLogin("deleted", []string{"http://b.com"}, func(r *models.Record) { r.Deleted = true }),
		uriLogin("secure", []string{"https://c.com"}),
		{ID: "note", Type: models.RecordTypeSecureNote},
		uriLogin("org-rw", []string{"http://d.com"}, func(r *models.Record) {
			r.OrganizationID = "org1"
			r.CollectionIDs = []string{"c-rw"}
		}),
		uriLogin("org-ro", []string{"http://e.com"}, func(r *models.Record) {
			r.OrganizationID = "org1"
			r.CollectionIDs = []string{"c-ro"}
		}),
		uriLogin("org-null", []string{"http://f.com"}, func(r *models.Record) {
			r.OrganizationID = "org1"
			r.CollectionIDs = []string{"c-null"}
		}),
		uriLogin("org-mixed", []string{"http://g.com"}, func(r *models.Record) {
			r.OrganizationID = "org1"
			r.CollectionIDs = []string{"c-ro", "c-rw"}
		}),
		uriLogin("org-unknown-col", []string{"http://h.com"}, func(r *models.Record) {
			r.OrganizationID = "org1"
			r.CollectionIDs = []string{"nope"}
		}),
		uriLogin("no-uris", nil),
	}

	got := UnsecuredEndpoints(recs, cols)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"personal", "org-rw", "org-null", "org-mixed"}, ids)
}

func TestUnsecuredEndpoints_PreservesOrder(t *testing.T) {
	recs := []*models.Record{
		uriLogin("z", []string{"http://z.com"}),
		uriLogin("a", []string{"http://a.com"}),
		uriLogin("m", []string{"http://m.com"}),
	}

	got := UnsecuredEndpoints(recs, nil)
	require.Len(t, got, 3)
	require.Equal(t, "z", got[0].ID)
	require.Equal(t, "a", got[1].ID)
	require.Equal(t, "m", got[2].ID)
}

func TestReportService_UnsecuredEndpoints(t *testing.T) {
	db := setupDB(t)
	key := testBlobKey

	repo := records.NewSQLiteRepository(db)
	ctx := context.Background()

	seed := func(rec *models.Record) {
		ovC, ovN, err := cryptox.EncryptEntry(models.Overview{Type: rec.Type, Name: rec.Name}, key)
		require.NoError(t, err)
		detC, detN, err := cryptox.EncryptEntry(rec, key)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrUpdate(ctx, &models.EncryptedRecord{
			ID: rec.ID, Overview: ovC, NonceOverview: ovN,
			Details: detC, NonceDetails: detN, Deleted: rec.Deleted,
		}))
	}

	seed(uriLogin("unsafe", []string{"http://plain.example"}))
	seed(uriLogin("safe", []string{"https://tls.example"}))

	recSvc := NewRecordService(repo, key, nil)
	colRepo := newFakeCollectionSource()
	svc := NewReportService(recSvc, colRepo)

	got, err := svc.UnsecuredEndpoints(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "unsafe", got[0].ID)
}

type fakeCollectionSource struct {
	cols []models.Collection
	err  error
}

func newFakeCollectionSource() *fakeCollectionSource { return &fakeCollectionSource{} }

func (f *fakeCollectionSource) GetAll(ctx context.Context) ([]models.Collection, error) {
	return f.cols, f.err
}
