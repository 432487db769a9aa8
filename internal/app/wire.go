//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/talent-search/internal/config"
	"github.com/honeycarbs/talent-search/pkg/logging"
	"github.com/honeycarbs/talent-search/pkg/talentapi"
)

// Initialize wires the server. The cleanup function closes external clients.
func Initialize(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Search backend
		provideTalentAPIConfig,
		talentapi.NewClient,
		provideBackendProvider,
		provideControllerFactory,

		// Storage
		provideCandidateRepository,

		// Integrations
		provideNotifier,
		provideDrafter,
		provideSheetsExporter,

		// Services
		provideDefaultPlan,
		provideQuota,
		provideUploadService,
		provideOutreachService,
		provideBackgroundService,

		// Surfaces
		provideMCPServer,
		provideHandler,
		provideWebServer,
		newApp,
	)

	return nil, nil, nil
}
