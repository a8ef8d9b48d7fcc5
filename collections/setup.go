package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// GalleryMaxFileSize is the default per-file limit enforced by the
// gallery_media file field. Content types are not restricted on the field;
// uploads are checked by services.CheckUpload before they reach storage.
const GalleryMaxFileSize int64 = 10 << 20

// Setup programmatically creates/ensures the projects and gallery_media
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "gallery_media", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"photo", "video", "document"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "type_id", Required: false, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.FileField{
			Name:      "file",
			Required:  true,
			MaxSelect: 1,
			MaxSize:   GalleryMaxFileSize,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Indexes = append(c.Indexes,
			"CREATE INDEX idx_gallery_media_project_created ON gallery_media (project, created)")
	})
}

// SetGalleryMaxFileSize updates the gallery_media file field so storage
// accepts files up to maxBytes. A non-positive value restores the default.
func SetGalleryMaxFileSize(app core.App, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = GalleryMaxFileSize
	}

	col, err := app.FindCollectionByNameOrId("gallery_media")
	if err != nil {
		return fmt.Errorf("set gallery max file size: %w", err)
	}
	field, ok := col.Fields.GetByName("file").(*core.FileField)
	if !ok {
		return fmt.Errorf("set gallery max file size: gallery_media has no file field")
	}
	if field.MaxSize == maxBytes {
		return nil
	}

	field.MaxSize = maxBytes
	if err := app.Save(col); err != nil {
		return fmt.Errorf("set gallery max file size: %w", err)
	}
	log.Printf("gallery_media file limit set to %d bytes\n", maxBytes)
	return nil
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
