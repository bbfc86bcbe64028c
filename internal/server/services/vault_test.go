package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/dmitrijs2005/vaultview/internal/server/models"
)

type fakeRecordsRepo struct {
	records []*models.Record
	err     error
	saved   []*models.Record
}

func (f *fakeRecordsRepo) CreateOrUpdate(ctx context.Context, record *models.Record) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeRecordsRepo) SelectByUser(ctx context.Context, userID string) ([]*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeRecordsRepo) GetByID(ctx context.Context, id string) (*models.Record, error) {
	return nil, nil
}

type fakeCollectionsRepo struct {
	collections []*models.Collection
	err         error
}

func (f *fakeCollectionsRepo) SelectByUser(ctx context.Context, userID string) ([]*models.Collection, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.collections, nil
}

func TestVaultSync_ReturnsRecordsAndCollections(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	ro := true
	rm := &fakeRepoManager{
		rec: &fakeRecordsRepo{records: []*models.Record{{ID: "r1"}, {ID: "r2", Deleted: true}}},
		col: &fakeCollectionsRepo{collections: []*models.Collection{{ID: "c1", ReadOnly: &ro}}},
	}
	s := NewVaultService(db, rm)

	records, collections, err := s.Sync(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if len(records) != 2 || records[1].ID != "r2" || !records[1].Deleted {
		t.Fatalf("unexpected records: %+v", records)
	}
	if len(collections) != 1 || collections[0].ReadOnly == nil || !*collections[0].ReadOnly {
		t.Fatalf("unexpected collections: %+v", collections)
	}
}

func TestVaultSync_RecordsError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{rec: &fakeRecordsRepo{err: errBoom{}}}
	s := NewVaultService(db, rm)

	_, _, err := s.Sync(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`error selecting records: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped records error, got %v", err)
	}
}

func TestVaultSync_CollectionsError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		rec: &fakeRecordsRepo{},
		col: &fakeCollectionsRepo{err: errBoom{}},
	}
	s := NewVaultService(db, rm)

	_, _, err := s.Sync(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`error selecting collections: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped collections error, got %v", err)
	}
}
