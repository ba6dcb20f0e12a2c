package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmitrijs2005/itemdesk/internal/models"
)

// List fetches and prints the caller's items. The list is always loaded
// fresh from the backend.
func (a *App) List(ctx context.Context) error {
	items, err := a.items.List(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("No items yet. Use 'add' to create one.")
		return nil
	}

	for _, item := range items {
		printItem(item)
	}
	return nil
}

func printItem(item models.Item) {
	desc := ""
	if item.Description != nil && *item.Description != "" {
		desc = " — " + *item.Description
	}
	fmt.Printf("[%d] %s%s (created %s)\n", item.ID, item.Title, desc, item.CreatedAt.Format("2006-01-02"))
}

// AddItem prompts for a title and optional description, creates the item
// and reloads the list.
func (a *App) AddItem(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	if title == "" {
		log.Printf("Title must not be empty")
		return nil
	}

	description, err := getOptionalText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.items.Create(ctx, models.ItemCreate{Title: title, Description: description}); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	return a.List(ctx)
}

// EditItem prompts for an item id and new field values. Fields left empty
// keep their current value (the update is partial).
func (a *App) EditItem(ctx context.Context) error {
	id, err := a.readItemID("Enter item id to edit")
	if err != nil {
		return err
	}

	title, err := getOptionalText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getOptionalText(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	if title == nil && description == nil {
		fmt.Println("Nothing to change.")
		return nil
	}

	if _, err := a.items.Update(ctx, id, models.ItemUpdate{Title: title, Description: description}); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	return a.List(ctx)
}

// DeleteItem prompts for an item id, deletes it and reloads the list.
func (a *App) DeleteItem(ctx context.Context) error {
	id, err := a.readItemID("Enter item id to delete")
	if err != nil {
		return err
	}

	if err := a.items.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	return a.List(ctx)
}

func (a *App) readItemID(prompt string) (int64, error) {
	raw, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("Invalid id: %q", raw)
		return 0, err
	}
	return id, nil
}
