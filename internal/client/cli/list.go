package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) List(ctx context.Context) error {
	items, err := a.recordService.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, item := range items {
		fmt.Printf("%s  [%s]  %s\n", item.ID, item.Type, item.Name)
	}
	return nil
}

func (a *App) Sync(ctx context.Context) error {
	n, err := a.syncService.Pull(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Synced %d records\n", n)
	return nil
}
