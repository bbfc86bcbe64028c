package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
)

// Local addresses are expected to be plain http and are not worth flagging.
var allowedInsecurePrefixes = []string{
	"http://localhost",
	"http://127.0.0.1",
}

// hasUnsecuredURI reports whether any of the login's saved addresses uses
// plain http. The match is a literal, case-sensitive prefix check: schemes
// written in another case or with surrounding whitespace do not count, which
// mirrors how the addresses were captured in the first place.
func hasUnsecuredURI(login *models.Login) bool {
	for _, uri := range login.URIs {
		if !strings.HasPrefix(uri, "http://") {
			continue
		}
		local := false
		for _, allowed := range allowedInsecurePrefixes {
			if strings.HasPrefix(uri, allowed) {
				local = true
				break
			}
		}
		if !local {
			return true
		}
	}
	return false
}

// canViewRecord reports whether the caller may see the record in a report.
// Personal records always qualify; organization records require membership
// in at least one of the record's collections that is not read-only.
func canViewRecord(rec *models.Record, collections map[string]models.Collection) bool {
	if rec.OrganizationID == "" {
		return true
	}
	for _, id := range rec.CollectionIDs {
		c, ok := collections[id]
		if ok && c.Editable() {
			return true
		}
	}
	return false
}

// UnsecuredEndpoints filters records down to logins whose saved addresses
// include a non-local plain-http endpoint and which the caller may view.
// Records come back in the same order they were passed in.
func UnsecuredEndpoints(records []*models.Record, collections []models.Collection) []*models.Record {
	byID := make(map[string]models.Collection, len(collections))
	for _, c := range collections {
		byID[c.ID] = c
	}

	var out []*models.Record
	for _, rec := range records {
		if rec.Deleted || rec.Type != models.RecordTypeLogin {
			continue
		}
		if rec.Login == nil || !rec.Login.HasURIs() {
			continue
		}
		if !hasUnsecuredURI(rec.Login) {
			continue
		}
		if !canViewRecord(rec, byID) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ReportService produces vault health reports from the local store.
type ReportService struct {
	records     *RecordService
	collections CollectionSource
}

// CollectionSource lists the collections known to the local store.
type CollectionSource interface {
	GetAll(ctx context.Context) ([]models.Collection, error)
}

// NewReportService wires a report service over the decrypted record source.
func NewReportService(records *RecordService, collections CollectionSource) *ReportService {
	return &ReportService{records: records, collections: collections}
}

// UnsecuredEndpoints decrypts the vault and returns the logins exposed over
// plain http, in store order.
func (s *ReportService) UnsecuredEndpoints(ctx context.Context) ([]*models.Record, error) {
	records, err := s.records.AllDecrypted(ctx)
	if err != nil {
		return nil, err
	}

	collections, err := s.collections.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return UnsecuredEndpoints(records, collections), nil
}
