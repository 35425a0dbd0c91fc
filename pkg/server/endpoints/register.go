package endpoints

import (
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterPublicEndpoints(srv)
	RegisterContactEndpoints(srv)
	RegisterMediaEndpoints(srv)

	RegisterLoginEndpoint(srv)
	RegisterImagesEndpoints(srv)
	RegisterCategoriesEndpoints(srv)
	RegisterFeaturedEndpoints(srv)
	RegisterBackgroundsEndpoints(srv)
	RegisterMessagesEndpoints(srv)
	RegisterBackupsEndpoints(srv)
	RegisterSettingsEndpoints(srv)
}
