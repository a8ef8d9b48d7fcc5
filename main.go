package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"estimator/collections"
	"estimator/handlers"
	"estimator/services"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	app := pocketbase.New()

	var calculatorsDir string
	app.RootCmd.PersistentFlags().StringVar(
		&calculatorsDir,
		"calculators",
		os.Getenv("ESTIMATOR_CALCULATORS"),
		"directory of extra calculator YAML definitions",
	)

	var maxUploadMB int64
	app.RootCmd.PersistentFlags().Int64Var(
		&maxUploadMB,
		"maxUploadMB",
		cast.ToInt64(os.Getenv("ESTIMATOR_MAX_UPLOAD_MB")),
		"per-file gallery upload limit in MB",
	)

	app.RootCmd.ParseFlags(os.Args[1:])

	catalog, err := loadCatalog(calculatorsDir)
	if err != nil {
		log.Fatal(err)
	}

	maxUploadBytes := services.DefaultMaxUploadBytes
	if maxUploadMB > 0 {
		maxUploadBytes = maxUploadMB << 20
	}

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.SetGalleryMaxFileSize(app, maxUploadBytes); err != nil {
			log.Printf("Warning: gallery upload limit not applied: %v", err)
		}
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateGalleryTypeIDs(app); err != nil {
			log.Printf("Warning: gallery type_id migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		se.Router.BindFunc(handlers.ActiveProjectMiddleware(app, catalog))

		// ── Calculators ──────────────────────────────────────────
		se.Router.GET("/calculators", handlers.HandleCalculatorIndex(app, catalog))
		se.Router.GET("/calculators/{type}", handlers.HandleCalculatorPage(app, catalog))
		se.Router.POST("/calculators/{type}/calculate", handlers.HandleCalculatorCalculate(app, catalog))
		se.Router.POST("/calculators/{type}/reset", handlers.HandleCalculatorReset(app, catalog))
		se.Router.POST("/calculators/{type}/input", handlers.HandleCalculatorInput(app, catalog))
		se.Router.POST("/calculators/{type}/detail", handlers.HandleCalculatorDetail(app, catalog))
		se.Router.POST("/calculators/{type}/export/pdf", handlers.HandleCalculatorExportPDF(app, catalog))
		se.Router.POST("/calculators/{type}/export/excel", handlers.HandleCalculatorExportExcel(app, catalog))

		// ── Project activation ───────────────────────────────────
		se.Router.POST("/projects/{id}/activate", handlers.HandleProjectActivate(app))
		se.Router.POST("/projects/deactivate", handlers.HandleProjectDeactivate(app))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.GET("/projects/create", handlers.HandleProjectCreate(app))
		se.Router.POST("/projects", handlers.HandleProjectSave(app))
		se.Router.GET("/projects/{id}/edit", handlers.HandleProjectEdit(app))
		se.Router.POST("/projects/{id}/save", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app))

		// ── Gallery ──────────────────────────────────────────────
		se.Router.GET("/projects/{projectId}/gallery", handlers.HandleGalleryPage(app, maxUploadBytes))
		se.Router.GET("/gallery", handlers.HandleGalleryList(app))
		se.Router.PUT("/gallery", handlers.HandleGalleryUpload(app, maxUploadBytes)).
			Bind(apis.BodyLimit(max(apis.DefaultMaxBodySize, maxUploadBytes+1<<20)))
		se.Router.DELETE("/gallery/{id}", handlers.HandleGalleryDelete(app))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/calculators")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// loadCatalog returns the built-in calculators plus any definitions found in
// dir. Extra definitions may not reuse a built-in id.
func loadCatalog(dir string) (*services.Catalog, error) {
	catalog, err := services.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return catalog, nil
	}

	extra, err := services.LoadCalculatorDefs(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	if err := catalog.Merge(extra); err != nil {
		return nil, err
	}
	log.Printf("main: loaded %d extra calculator(s) from %s", len(extra.All()), dir)
	return catalog, nil
}
