package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// galleryTypeIDs maps a gallery_media type to its numeric category id.
var galleryTypeIDs = map[string]int{
	"photo":    1,
	"video":    2,
	"document": 3,
}

// MigrateGalleryTypeIDs fills type_id for gallery_media records saved before
// the column existed or without it. Safe to call on every startup -- returns
// early if nothing to migrate.
func MigrateGalleryTypeIDs(app *pocketbase.PocketBase) error {
	mediaCol, err := app.FindCollectionByNameOrId("gallery_media")
	if err != nil {
		return fmt.Errorf("migrate_gallery: could not find gallery_media collection: %w", err)
	}

	missing, err := app.FindRecordsByFilter(mediaCol, "type_id = 0 || type_id = null", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate_gallery: could not query media: %w", err)
	}

	if len(missing) == 0 {
		return nil
	}

	log.Printf("migrate_gallery: backfilling type_id on %d media record(s)\n", len(missing))

	for _, rec := range missing {
		id, ok := galleryTypeIDs[rec.GetString("type")]
		if !ok {
			log.Printf("migrate_gallery: media %s has unknown type %q, skipping\n", rec.Id, rec.GetString("type"))
			continue
		}
		rec.Set("type_id", id)
		if err := app.Save(rec); err != nil {
			log.Printf("migrate_gallery: failed to update media %s: %v\n", rec.Id, err)
		}
	}

	return nil
}
