package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vaultview/internal/client/api"
	"github.com/dmitrijs2005/vaultview/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/dmitrijs2005/vaultview/internal/cryptox"
	"github.com/dmitrijs2005/vaultview/internal/dbx"
)

// AuthService handles account authentication for the client.
//
// Contract:
//   - OnlineLogin: authenticate against the server and cache offline auth data.
//   - OfflineLogin: derive and verify credentials against locally cached data.
//   - VerifyMasterPassword: re-check the master password for gated actions.
//   - Register: create a new account on the server.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//   - ClearOfflineData: wipe locally cached auth metadata.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) ([]byte, error)
	OnlineLogin(ctx context.Context, username string, password []byte) ([]byte, error)
	VerifyMasterPassword(ctx context.Context, password []byte) (bool, error)
	Register(ctx context.Context, username string, password []byte) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

// authService is the concrete AuthService backed by the remote API client
// and the local SQL database for offline metadata.
type authService struct {
	client api.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client api.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) getLocal(ctx context.Context, repo metadata.Repository, key string) ([]byte, error) {
	v, err := repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return v, nil
}

// OfflineLogin derives a master key from (password, salt) cached locally and
// verifies it against the cached verifier. Missing local data yields
// common.ErrorNotFound; a mismatch yields common.ErrorUnauthorized.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) ([]byte, error) {
	repo := a.getMetadataRepo()

	savedUsername, err := a.getLocal(ctx, repo, "username")
	if err != nil {
		return nil, err
	}
	if string(savedUsername) != username {
		return nil, common.ErrorUnauthorized
	}

	savedSalt, err := a.getLocal(ctx, repo, "salt")
	if err != nil {
		return nil, err
	}
	savedVerifier, err := a.getLocal(ctx, repo, "verifier")
	if err != nil {
		return nil, err
	}

	candidate := cryptox.DeriveMasterKey(password, savedSalt)
	verifier := cryptox.MakeVerifier(candidate)

	if subtle.ConstantTimeCompare(savedVerifier, verifier) == 0 {
		return nil, common.ErrorUnauthorized
	}
	return candidate, nil
}

// OnlineLogin authenticates against the server, caches offline metadata
// (username, salt, verifier), and returns the derived master key.
func (a *authService) OnlineLogin(ctx context.Context, username string, password []byte) ([]byte, error) {
	salt, err := a.client.GetSalt(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	candidate := cryptox.DeriveMasterKey(password, salt)
	verifier := cryptox.MakeVerifier(candidate)

	if err := a.client.Login(ctx, username, verifier); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, username, salt, verifier); err != nil {
		return nil, fmt.Errorf("offline data saving error: %w", err)
	}
	return candidate, nil
}

// VerifyMasterPassword re-derives the master key from the given password and
// compares it against the cached verifier. It distinguishes "wrong password"
// (false, nil) from "cannot verify" (error), so interactive gates can
// re-prompt on the former.
func (a *authService) VerifyMasterPassword(ctx context.Context, password []byte) (bool, error) {
	repo := a.getMetadataRepo()

	salt, err := a.getLocal(ctx, repo, "salt")
	if err != nil {
		return false, err
	}
	verifier, err := a.getLocal(ctx, repo, "verifier")
	if err != nil {
		return false, err
	}

	candidate := cryptox.MakeVerifier(cryptox.DeriveMasterKey(password, salt))
	return subtle.ConstantTimeCompare(verifier, candidate) == 1, nil
}

// saveOfflineData persists the metadata required for offline login in a
// single transaction.
func (a *authService) saveOfflineData(ctx context.Context, username string, salt []byte, verifier []byte) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, "username", []byte(username)); err != nil {
			return err
		}
		if err := repo.Set(ctx, "salt", salt); err != nil {
			return err
		}
		return repo.Set(ctx, "verifier", verifier)
	})
}

// Register creates a new account on the server. It generates a random salt,
// derives a master key from the password, computes a verifier, and sends
// salt/verifier upstream. The password itself never leaves the client.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(32)
	key := cryptox.DeriveMasterKey(password, salt)
	verifier := cryptox.MakeVerifier(key)

	return a.client.Register(ctx, username, salt, verifier)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData wipes locally cached auth metadata (e.g., on logout).
func (a *authService) ClearOfflineData(ctx context.Context) error {
	return a.getMetadataRepo().Clear(ctx)
}
