package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type projectDef struct {
	name            string
	clientName      string
	referenceNumber string
	status          string
}

var seedProjects = []projectDef{
	{
		name:            "Residence - Plot 14, Green Valley",
		clientName:      "Mehta Family Trust",
		referenceNumber: "GV-2026-014",
		status:          "active",
	},
	{
		name:            "Warehouse Extension - Bhiwandi",
		clientName:      "Shree Logistics Pvt Ltd",
		referenceNumber: "SL-WH-0231",
		status:          "on_hold",
	},
}

// Seed inserts demo projects so the gallery has somewhere to upload. It is
// safe to call on every startup because it returns early if any project
// records already exist.
func Seed(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	for _, p := range seedProjects {
		record := core.NewRecord(projectsCol)
		record.Set("name", p.name)
		record.Set("client_name", p.clientName)
		record.Set("reference_number", p.referenceNumber)
		record.Set("status", p.status)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save project %q: %w", p.name, err)
		}
	}

	log.Printf("seed: inserted %d project(s)\n", len(seedProjects))
	return nil
}
