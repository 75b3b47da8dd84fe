// Package main provides a tool to seed the database with sample data.
//
// This creates a handful of users with recipes, shelves, tags, and
// communities for trying out the API locally.
//
// Usage:
//
//	DB_PATH=~/Plateful/data/plateful.db go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/store/sqlite"
)

var dbPathFlag = flag.String("db-path", "", "Path to the SQLite database file")

type seedUser struct {
	firstName string
	lastName  string
	email     string
	bio       string
	recipes   []seedRecipe
}

type seedRecipe struct {
	title       string
	description string
	visibility  domain.Visibility
	tags        []string
	shelf       string
}

var seedUsers = []seedUser{
	{
		firstName: "Ada", lastName: "Moreau", email: "ada@example.com",
		bio: "Weeknight cook, weekend baker.",
		recipes: []seedRecipe{
			{title: "Coq au Vin", description: "Chicken braised in red wine.", visibility: domain.VisibilityPublic, tags: []string{"french", "braise"}, shelf: "Sunday Dinners"},
			{title: "Ratatouille", description: "Summer vegetables, slow stewed.", visibility: domain.VisibilityPublic, tags: []string{"french", "vegetarian"}},
			{title: "Secret Family Gumbo", description: "Not telling.", visibility: domain.VisibilityPrivate},
		},
	},
	{
		firstName: "Ben", lastName: "Okafor", email: "ben@example.com",
		bio: "All sourdough, all the time.",
		recipes: []seedRecipe{
			{title: "Country Loaf", description: "75% hydration, overnight proof.", visibility: domain.VisibilityPublic, tags: []string{"bread"}, shelf: "Bakes"},
			{title: "Discard Crackers", description: "For the starter overflow.", visibility: domain.VisibilityCommunity, tags: []string{"bread", "snack"}},
		},
	},
}

func main() {
	flag.Parse()

	dbPath := *dbPathFlag
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Plateful/data/plateful.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	st, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	for _, su := range seedUsers {
		user := &domain.User{
			FirstName:  su.firstName,
			LastName:   su.lastName,
			Email:      su.email,
			ExternalID: "seed-" + su.email,
		}
		if err := st.CreateUser(ctx, user); err != nil {
			log.Printf("Skipping user %s: %v", su.email, err)
			continue
		}
		if _, err := st.CreateProfile(ctx, user.ID); err != nil {
			log.Printf("Failed to create profile for %s: %v", su.email, err)
		} else if su.bio != "" {
			if _, err := st.UpdateProfileBio(ctx, user.ID, su.bio); err != nil {
				log.Printf("Failed to set bio for %s: %v", su.email, err)
			}
		}
		fmt.Printf("Created user %s (%d)\n", user.Email, user.ID)

		shelves := map[string]int64{}
		for _, sr := range su.recipes {
			recipe := &domain.Recipe{
				Title:       sr.title,
				Description: sr.description,
				AuthorID:    user.ID,
				Visibility:  sr.visibility,
			}
			if err := st.CreateRecipe(ctx, recipe); err != nil {
				log.Printf("Failed to create recipe %q: %v", sr.title, err)
				continue
			}
			fmt.Printf("  Created recipe %q (%d)\n", recipe.Title, recipe.ID)

			for _, value := range sr.tags {
				tag, err := st.CreateTag(ctx, value)
				if err != nil {
					log.Printf("  Failed to create tag %q: %v", value, err)
					continue
				}
				if _, err := st.AddRecipeTag(ctx, recipe.ID, tag.ID); err != nil {
					log.Printf("  Failed to tag recipe %q: %v", sr.title, err)
				}
			}

			if sr.shelf == "" {
				continue
			}
			shelfID, ok := shelves[sr.shelf]
			if !ok {
				shelf := &domain.Shelf{UserID: user.ID, Label: sr.shelf}
				if err := st.CreateShelf(ctx, shelf); err != nil {
					log.Printf("  Failed to create shelf %q: %v", sr.shelf, err)
					continue
				}
				shelfID = shelf.ID
				shelves[sr.shelf] = shelfID
				fmt.Printf("  Created shelf %q (%d)\n", sr.shelf, shelfID)
			}
			if _, err := st.AddRecipeToShelf(ctx, shelfID, recipe.ID); err != nil {
				log.Printf("  Failed to shelve recipe %q: %v", sr.title, err)
			}
		}
	}

	community := &domain.Community{
		Name:        "Bread Heads",
		Description: "Flour, water, salt, time.",
		AdminID:     1,
	}
	if err := st.CreateCommunity(ctx, community); err != nil {
		log.Printf("Skipping community %q: %v", community.Name, err)
	} else {
		fmt.Printf("Created community %q (%d)\n", community.Name, community.ID)
	}

	fmt.Println("Done.")
}
