package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/vaultview/internal/client/models"
	"github.com/dmitrijs2005/vaultview/internal/client/services"
)

// Show fetches a record by id, makes it the record in view, and prints its
// non-sensitive fields. Sensitive values stay masked until revealed.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter record id", os.Stdout)
	if err != nil {
		return err
	}

	rec, err := a.recordService.Get(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	a.view.Show(rec)
	a.printRecord(rec)
	return nil
}

func (a *App) printRecord(rec *models.Record) {
	fmt.Printf("%s  [%s]  %s\n", rec.ID, rec.Type, rec.Name)
	if rec.Reprompt {
		fmt.Println("  (master password re-prompt protected)")
	}

	switch rec.Type {
	case models.RecordTypeLogin:
		if rec.Login != nil {
			fmt.Printf("  username: %s\n", rec.Login.Username)
			if rec.Login.Password != "" {
				fmt.Println("  password: ******** (use 'reveal')")
			}
			for _, uri := range rec.Login.URIs {
				fmt.Printf("  uri: %s\n", uri)
			}
			if st, ok := a.view.Totp(); ok {
				fmt.Printf("  totp: %s (%ds left)\n", st.CodeFormatted, st.SecondsRemaining)
			}
		}
	case models.RecordTypeCard:
		if rec.Card != nil {
			fmt.Printf("  cardholder: %s\n", rec.Card.CardholderName)
			fmt.Printf("  number: ****%s\n", lastFour(rec.Card.Number))
		}
	case models.RecordTypeSecureNote:
		if rec.SecureNote != nil {
			fmt.Printf("  %s\n", rec.SecureNote.Text)
		}
	}

	for _, att := range rec.Attachments {
		fmt.Printf("  attachment: %s  %s (%d bytes)\n", att.ID, att.FileName, att.Size)
	}
}

func lastFour(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}

// Totp prints the current one-time code and countdown for the record in view.
func (a *App) Totp(ctx context.Context) error {
	st, ok := a.view.Totp()
	if !ok {
		fmt.Println("No one-time code for the current record")
		return nil
	}

	marker := ""
	if st.Low {
		marker = " (expiring)"
	}
	fmt.Printf("%s  %ds left%s\n", st.CodeFormatted, st.SecondsRemaining, marker)
	return nil
}

// Reveal prints the login password of the record in view, passing the
// re-prompt gate first.
func (a *App) Reveal(ctx context.Context) error {
	pw, ok, err := a.view.RevealPassword(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if !ok {
		fmt.Println("Nothing revealed")
		return nil
	}
	fmt.Printf("password: %s\n", pw)
	return nil
}

// Copy hands a field of the record in view to the clipboard, passing the
// re-prompt gate for protected fields first. Delivery here is printing the
// value; a desktop build would hand it to the system clipboard instead.
func (a *App) Copy(ctx context.Context) error {
	rec := a.view.Record()
	if rec == nil || rec.Login == nil {
		fmt.Println("No login record in view")
		return nil
	}

	field, err := getSimpleText(a.reader, "Enter field (username/password)", os.Stdout)
	if err != nil {
		return err
	}

	var (
		value     string
		protected bool
		kind      services.EventKind
	)
	switch field {
	case "username":
		value = rec.Login.Username
	case "password":
		value, protected, kind = rec.Login.Password, true, services.EventPasswordCopied
	default:
		fmt.Println("Unknown field:", field)
		return nil
	}

	ok, err := a.view.CopyValue(ctx, value, protected, kind)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if !ok {
		fmt.Println("Nothing copied")
		return nil
	}
	fmt.Printf("%s: %s\n", field, value)
	return nil
}

// Download retrieves one of the current record's attachments and saves it
// into the download directory.
func (a *App) Download(ctx context.Context) error {
	rec := a.view.Record()
	if rec == nil {
		fmt.Println("No record in view")
		return nil
	}

	attID, err := getSimpleText(a.reader, "Enter attachment id", os.Stdout)
	if err != nil {
		return err
	}

	var fileName string
	for _, att := range rec.Attachments {
		if att.ID == attID {
			fileName = att.FileName
			break
		}
	}
	if fileName == "" {
		fmt.Println("No such attachment")
		return nil
	}

	data, err := a.view.DownloadAttachment(ctx, attID)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if data == nil {
		fmt.Println("Download aborted")
		return nil
	}

	if err := a.deliverer.Deliver(fileName, data); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Saved %s (%d bytes)\n", fileName, len(data))
	return nil
}

// Report lists logins whose saved addresses include non-local plain-http
// endpoints.
func (a *App) Report(ctx context.Context) error {
	recs, err := a.reportService.UnsecuredEndpoints(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(recs) == 0 {
		fmt.Println("No unsecured endpoints found")
		return nil
	}

	for _, rec := range recs {
		fmt.Printf("%s  %s\n", rec.ID, rec.Name)
		for _, uri := range rec.Login.URIs {
			fmt.Printf("  %s\n", uri)
		}
	}
	return nil
}
