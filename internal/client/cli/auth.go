package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/vaultview/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account via the AuthService.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is wiped before returning. Any I/O or service error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// It first attempts an online login. If the server is unreachable
// (errors.Is(err, common.ErrNetwork)), it falls back to offline login
// against the locally cached verifier. On success it sets a.masterKey,
// opens the key-bound session services, and updates connectivity Mode:
//   - ModeOnline if online login succeeds,
//   - ModeOffline if offline login succeeds,
//   - ModeDisabled if both fail.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var (
		masterKey []byte
		mode      Mode
	)

	masterKey, err = a.authService.OnlineLogin(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrNetwork) {
			log.Printf("Server unavailable, trying offline login...")
			masterKey, err = a.authService.OfflineLogin(ctx, userName, password)
			if err != nil {
				log.Printf("Offline login unsuccessful: %s", err.Error())
				mode = ModeDisabled
			} else {
				log.Printf("Offline login successful")
				mode = ModeOffline
			}
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
	} else {
		log.Printf("Login successful")
		mode = ModeOnline
	}

	a.masterKey = masterKey
	a.userName = userName
	a.setMode(mode)

	if a.isLoggedIn() {
		if err := a.openSession(); err != nil {
			return err
		}
	}
	return nil
}

// Logout clears locally cached offline data, tears down the key-bound
// session, and removes the in-memory master key.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.ClearOfflineData(ctx); err != nil {
		return err
	}
	a.closeSession()
	common.WipeByteArray(a.masterKey)
	a.masterKey = nil
	a.userName = ""
	return nil
}
