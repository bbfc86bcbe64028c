package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/vaultview/internal/client/api"
	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/dmitrijs2005/vaultview/internal/cryptox"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:servicestest?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS records (
  id             TEXT PRIMARY KEY,
  overview       BLOB NOT NULL,
  nonce_overview BLOB NOT NULL,
  details        BLOB NOT NULL,
  nonce_details  BLOB NOT NULL,
  deleted        INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS collections (
  id              TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  name            TEXT NOT NULL DEFAULT '',
  read_only       INTEGER NULL
);
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM records;
DELETE FROM collections;
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	require.NoError(t, err)
	return v
}

// ---- fake client ----

// fakeClient implements api.Client for unit tests of the services package.
type fakeClient struct {
	mu sync.Mutex

	CloseErr    error
	RegisterErr error

	GetSaltRet []byte
	GetSaltErr error

	LoginErr error
	PingErr  error

	SyncRet *api.SyncResponse
	SyncErr error

	AttachmentURLRet   string
	AttachmentURLErr   error
	AttachmentURLCalls int

	CollectEventErr   error
	CollectedKinds    []string
	CollectedRecords  []string
	collectEventBlock chan struct{}

	PremiumRet bool

	LastRegisterUser     string
	LastRegisterSalt     []byte
	LastRegisterVerifier []byte

	LastGetSaltUser string

	LastLoginUser     string
	LastLoginVerifier []byte
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Register(ctx context.Context, username string, salt []byte, verifier []byte) error {
	f.LastRegisterUser = username
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterVerifier = append([]byte(nil), verifier...)
	return f.RegisterErr
}

func (f *fakeClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	f.LastGetSaltUser = username
	return append([]byte(nil), f.GetSaltRet...), f.GetSaltErr
}

func (f *fakeClient) Login(ctx context.Context, username string, verifier []byte) error {
	f.LastLoginUser = username
	f.LastLoginVerifier = append([]byte(nil), verifier...)
	return f.LoginErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Sync(ctx context.Context) (*api.SyncResponse, error) {
	return f.SyncRet, f.SyncErr
}

func (f *fakeClient) AttachmentURL(ctx context.Context, recordID, attachmentID string) (string, error) {
	f.mu.Lock()
	f.AttachmentURLCalls++
	f.mu.Unlock()
	return f.AttachmentURLRet, f.AttachmentURLErr
}

func (f *fakeClient) CollectEvent(ctx context.Context, kind string, recordID string) error {
	if f.collectEventBlock != nil {
		<-f.collectEventBlock
	}
	f.mu.Lock()
	f.CollectedKinds = append(f.CollectedKinds, kind)
	f.CollectedRecords = append(f.CollectedRecords, recordID)
	f.mu.Unlock()
	return f.CollectEventErr
}

func (f *fakeClient) Premium() bool { return f.PremiumRet }

// ---- TESTS ----

func TestOfflineLogin_NoLocalData_NotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeClient{}, db)

	_, err := svc.OfflineLogin(context.Background(), "user@example.com", []byte("pass"))
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestOfflineLogin_UsernameMismatch_Unauthorized(t *testing.T) {
	db := setupDB(t)

	insertMeta(t, db, "username", []byte("other"))
	insertMeta(t, db, "salt", []byte("salt"))
	insertMeta(t, db, "verifier", []byte{1, 2, 3})

	svc := NewAuthService(&fakeClient{}, db)

	_, err := svc.OfflineLogin(context.Background(), "user", []byte("p"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestOfflineLogin_WrongPassword_Unauthorized(t *testing.T) {
	db := setupDB(t)

	salt := []byte("salty")
	mk := cryptox.DeriveMasterKey([]byte("correct"), salt)
	ver := cryptox.MakeVerifier(mk)

	insertMeta(t, db, "username", []byte("user"))
	insertMeta(t, db, "salt", salt)
	insertMeta(t, db, "verifier", ver)

	svc := NewAuthService(&fakeClient{}, db)

	_, err := svc.OfflineLogin(context.Background(), "user", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestOfflineLogin_Success_ReturnsMasterKey(t *testing.T) {
	db := setupDB(t)

	salt := []byte("salty")
	mk := cryptox.DeriveMasterKey([]byte("pass"), salt)
	ver := cryptox.MakeVerifier(mk)

	insertMeta(t, db, "username", []byte("user"))
	insertMeta(t, db, "salt", salt)
	insertMeta(t, db, "verifier", ver)

	svc := NewAuthService(&fakeClient{}, db)

	got, err := svc.OfflineLogin(context.Background(), "user", []byte("pass"))
	require.NoError(t, err)
	require.Equal(t, mk, got)
}

func TestOnlineLogin_GetSaltError_Wrapped(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeClient{GetSaltErr: errors.New("network down")}, db)

	_, err := svc.OnlineLogin(context.Background(), "u", []byte("p"))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "get salt error:"))
}

func TestOnlineLogin_LoginError_Wrapped(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeClient{GetSaltRet: []byte("s"), LoginErr: errors.New("bad creds")}, db)

	_, err := svc.OnlineLogin(context.Background(), "u", []byte("p"))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "login error:"))
}

func TestOnlineLogin_Success_SavesOfflineDataAndReturnsMasterKey(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{GetSaltRet: []byte("salt")}
	svc := NewAuthService(fc, db)

	got, err := svc.OnlineLogin(context.Background(), "user", []byte("pass"))
	require.NoError(t, err)

	require.Equal(t, []byte("user"), getMeta(t, db, "username"))
	require.Equal(t, []byte("salt"), getMeta(t, db, "salt"))
	savedVerifier := getMeta(t, db, "verifier")
	require.NotEmpty(t, savedVerifier)

	expected := cryptox.DeriveMasterKey([]byte("pass"), []byte("salt"))
	require.Equal(t, expected, got)

	require.Equal(t, "user", fc.LastLoginUser)
	require.Equal(t, savedVerifier, fc.LastLoginVerifier)
}

func TestVerifyMasterPassword(t *testing.T) {
	db := setupDB(t)

	salt := []byte("salty")
	ver := cryptox.MakeVerifier(cryptox.DeriveMasterKey([]byte("pass"), salt))
	insertMeta(t, db, "salt", salt)
	insertMeta(t, db, "verifier", ver)

	svc := NewAuthService(&fakeClient{}, db)

	ok, err := svc.VerifyMasterPassword(context.Background(), []byte("pass"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.VerifyMasterPassword(context.Background(), []byte("wrong"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyMasterPassword_NoLocalData(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeClient{}, db)

	_, err := svc.VerifyMasterPassword(context.Background(), []byte("pass"))
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRegister_DelegatesToClient(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, db)

	err := svc.Register(context.Background(), "u", []byte("p"))
	require.NoError(t, err)

	require.Equal(t, "u", fc.LastRegisterUser)
	require.NotEmpty(t, fc.LastRegisterSalt)
	require.NotEmpty(t, fc.LastRegisterVerifier)
}

func TestPing_Close_ClearOfflineData_Delegations(t *testing.T) {
	db := setupDB(t)
	insertMeta(t, db, "x", []byte("y"))

	svc := NewAuthService(&fakeClient{}, db)

	require.NoError(t, svc.Ping(context.Background()))
	require.NoError(t, svc.Close(context.Background()))

	require.NoError(t, svc.ClearOfflineData(context.Background()))
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestRegister_ErrorFromClient(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeClient{RegisterErr: errors.New("dup")}, db)
	require.Error(t, svc.Register(context.Background(), "u", []byte("p")))
}

func TestPing_ErrorPropagates(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(&fakeClient{PingErr: errors.New("down")}, db)
	require.Error(t, svc.Ping(context.Background()))
}
