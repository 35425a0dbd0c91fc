// Package server provides the HTTP server for the portfolio API.
//
// The server uses gorilla/mux for routing. Requests are access-logged with
// gorilla/handlers and, when cors_allowed_origins is set, answered with CORS
// headers.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, db, log, "0.0.0.0", "8080")
//	srv.ImagesStore = gormstore.NewImagesStore(db)
//	// ... remaining stores and services
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - /api/... - public portfolio, categories, featured image, backgrounds, contact
//   - /media/{name} - stored image files (local storage only)
//   - /status - health check
//   - /admin/login - session token issue
//   - /admin/... - catalog administration, bearer token required
package server
