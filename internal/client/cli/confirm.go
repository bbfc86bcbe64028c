package cli

import (
	"context"
	"io"
	"log"

	"github.com/dmitrijs2005/vaultview/internal/client/services"
	"github.com/dmitrijs2005/vaultview/internal/common"
)

// passwordConfirmer satisfies services.Confirmer by asking for the master
// password again and checking it against the locally cached verifier. An
// empty entry counts as a decline.
type passwordConfirmer struct {
	auth services.AuthService
	out  io.Writer
}

func (c *passwordConfirmer) Confirm(ctx context.Context) (bool, error) {
	password, err := getPassword(c.out, "Re-enter master password (empty to cancel): ")
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(password)

	if len(password) == 0 {
		return false, nil
	}

	ok, err := c.auth.VerifyMasterPassword(ctx, password)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Println("Master password does not match")
	}
	return ok, nil
}
