package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/rynvlabs/cms/internal/config"
	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *gorm.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// One collection per resource type; the Meta captures everything that
	// differs between them.
	projects := content.New[models.Project, *models.Project](db, content.Meta{
		VisibilityColumn: "is_published",
		SearchColumns:    []string{"title", "description"},
		NaturalKeyColumn: "slug",
	})
	academy := content.New[models.AcademyProject, *models.AcademyProject](db, content.Meta{
		VisibilityColumn: "is_published",
		OrderBy:          []content.Order{{Column: "year", Desc: true}, {Column: "sort_order"}},
		SearchColumns:    []string{"title", "description"},
		NaturalKeyColumn: "slug",
	})
	products := content.New[models.Product, *models.Product](db, content.Meta{
		VisibilityColumn: "is_published",
		SearchColumns:    []string{"title", "description"},
		NaturalKeyColumn: "slug",
	})
	categories := content.New[models.Category, *models.Category](db, content.Meta{
		NaturalKeyColumn: "slug",
	})
	techStacks := content.New[models.TechStack, *models.TechStack](db, content.Meta{
		NaturalKeyColumn: "name",
	})
	landing := content.New[models.LandingSection, *models.LandingSection](db, content.Meta{
		VisibilityColumn: "is_visible",
		NaturalKeyColumn: "section_key",
	})

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(db, cfg.JWTSecret, cfg.TokenDuration)
	projectsHandler := NewProjectsHandler(projects)
	academyHandler := NewAcademyHandler(academy)
	productsHandler := NewProductsHandler(products)
	categoriesHandler := NewCategoriesHandler(categories)
	techStacksHandler := NewTechStacksHandler(techStacks)
	landingHandler := NewLandingHandler(landing)
	settingsHandler := NewSettingsHandler(db)
	mediaHandler := NewMediaHandler(db, cfg.UploadDir, cfg.MaxUploadSize)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods("POST")

	r.HandleFunc("/v1/projects", projectsHandler.List).Methods("GET")
	r.HandleFunc("/v1/projects/{slug}", projectsHandler.GetBySlug).Methods("GET")
	r.HandleFunc("/v1/academy", academyHandler.List).Methods("GET")
	r.HandleFunc("/v1/academy/{slug}", academyHandler.GetBySlug).Methods("GET")
	r.HandleFunc("/v1/products", productsHandler.List).Methods("GET")
	r.HandleFunc("/v1/products/{slug}", productsHandler.GetBySlug).Methods("GET")
	r.HandleFunc("/v1/categories", categoriesHandler.List).Methods("GET")
	r.HandleFunc("/v1/tech-stacks", techStacksHandler.List).Methods("GET")
	r.HandleFunc("/v1/landing-sections", landingHandler.List).Methods("GET")
	r.HandleFunc("/v1/site-settings", settingsHandler.List).Methods("GET")

	// Uploaded files
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Protected admin routes
	admin := r.PathPrefix("/v1/admin").Subrouter()
	admin.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	admin.HandleFunc("/auth/profile", authHandler.Profile).Methods("GET")

	admin.HandleFunc("/projects", projectsHandler.AdminList).Methods("GET")
	admin.HandleFunc("/projects", projectsHandler.Create).Methods("POST")
	admin.HandleFunc("/projects/reorder", projectsHandler.Reorder).Methods("PATCH")
	admin.HandleFunc("/projects/{id:[0-9]+}", projectsHandler.AdminGet).Methods("GET")
	admin.HandleFunc("/projects/{id:[0-9]+}", projectsHandler.Update).Methods("PUT")
	admin.HandleFunc("/projects/{id:[0-9]+}", projectsHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/projects/{id:[0-9]+}/publish", projectsHandler.TogglePublish).Methods("PATCH")

	admin.HandleFunc("/academy", academyHandler.AdminList).Methods("GET")
	admin.HandleFunc("/academy", academyHandler.Create).Methods("POST")
	admin.HandleFunc("/academy/reorder", academyHandler.Reorder).Methods("PATCH")
	admin.HandleFunc("/academy/{id:[0-9]+}", academyHandler.AdminGet).Methods("GET")
	admin.HandleFunc("/academy/{id:[0-9]+}", academyHandler.Update).Methods("PUT")
	admin.HandleFunc("/academy/{id:[0-9]+}", academyHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/academy/{id:[0-9]+}/publish", academyHandler.TogglePublish).Methods("PATCH")

	admin.HandleFunc("/products", productsHandler.AdminList).Methods("GET")
	admin.HandleFunc("/products", productsHandler.Create).Methods("POST")
	admin.HandleFunc("/products/reorder", productsHandler.Reorder).Methods("PATCH")
	admin.HandleFunc("/products/{id:[0-9]+}", productsHandler.AdminGet).Methods("GET")
	admin.HandleFunc("/products/{id:[0-9]+}", productsHandler.Update).Methods("PUT")
	admin.HandleFunc("/products/{id:[0-9]+}", productsHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/products/{id:[0-9]+}/publish", productsHandler.TogglePublish).Methods("PATCH")

	admin.HandleFunc("/categories", categoriesHandler.List).Methods("GET")
	admin.HandleFunc("/categories", categoriesHandler.Create).Methods("POST")
	admin.HandleFunc("/categories/reorder", categoriesHandler.Reorder).Methods("PATCH")
	admin.HandleFunc("/categories/{id:[0-9]+}", categoriesHandler.Update).Methods("PUT")
	admin.HandleFunc("/categories/{id:[0-9]+}", categoriesHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/tech-stacks", techStacksHandler.List).Methods("GET")
	admin.HandleFunc("/tech-stacks", techStacksHandler.Create).Methods("POST")
	admin.HandleFunc("/tech-stacks/reorder", techStacksHandler.Reorder).Methods("PATCH")
	admin.HandleFunc("/tech-stacks/{id:[0-9]+}", techStacksHandler.Update).Methods("PUT")
	admin.HandleFunc("/tech-stacks/{id:[0-9]+}", techStacksHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/landing-sections", landingHandler.AdminList).Methods("GET")
	admin.HandleFunc("/landing-sections/reorder", landingHandler.Reorder).Methods("PATCH")
	admin.HandleFunc("/landing-sections/{sectionKey}", landingHandler.GetByKey).Methods("GET")
	admin.HandleFunc("/landing-sections/{sectionKey}", landingHandler.Update).Methods("PUT")
	admin.HandleFunc("/landing-sections/{sectionKey}/visibility", landingHandler.ToggleVisibility).Methods("PATCH")

	admin.HandleFunc("/site-settings", settingsHandler.AdminList).Methods("GET")
	admin.HandleFunc("/site-settings/{key}", settingsHandler.GetByKey).Methods("GET")
	admin.HandleFunc("/site-settings/{key}", settingsHandler.Update).Methods("PUT")

	admin.HandleFunc("/media", mediaHandler.List).Methods("GET")
	admin.HandleFunc("/media", mediaHandler.Upload).Methods("POST")
	admin.HandleFunc("/media/bulk", mediaHandler.UploadBulk).Methods("POST")
	admin.HandleFunc("/media/{id:[0-9]+}", mediaHandler.Delete).Methods("DELETE")

	return r
}
