//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"

	"nest/internal"
	"nest/internal/chatbot"
	"nest/internal/controllers"
	"nest/internal/emotion"
	"nest/internal/meditation"
	"nest/internal/providers"
	"nest/internal/repositories"
	"nest/internal/services"
	"nest/internal/structures"
	"nest/internal/training"
)

var infrastructureSet = wire.NewSet(
	providers.NewConfigProvider,
	provideLogger,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,
	providers.NewDatabaseProvider,
	providers.NewMongoProvider,
	providers.NewRedisProvider,
	wire.Bind(new(repositories.DBTX), new(*pgxpool.Pool)),
)

var repositorySet = wire.NewSet(
	repositories.NewUserRepository,
	wire.Bind(new(repositories.UserRepositoryInterface), new(*repositories.UserRepository)),
	repositories.NewEmotionRepository,
	wire.Bind(new(repositories.EmotionRepositoryInterface), new(*repositories.EmotionRepository)),
	repositories.NewMeditationRepository,
	wire.Bind(new(repositories.MeditationRepositoryInterface), new(*repositories.MeditationRepository)),
	repositories.NewChatRepository,
	wire.Bind(new(repositories.ChatRepositoryInterface), new(*repositories.ChatRepository)),
	repositories.NewTranscriptArchive,
	repositories.NewHistoryCache,
)

var trainingSet = wire.NewSet(
	provideMetricsBuffer,
	wire.Bind(new(training.MetricsBufferInterface), new(*training.MetricsBuffer)),
	wire.Bind(new(providers.BufferStatsInterface), new(*training.MetricsBuffer)),
	provideCompressor,
	training.NewFileManager,
	training.NewScheduler,
	training.NewService,
	wire.Bind(new(training.ServiceInterface), new(*training.Service)),
)

var domainSet = wire.NewSet(
	emotion.NewLexiconAnalyzer,
	provideCatalog,
	meditation.NewManager,
	wire.Bind(new(meditation.ManagerInterface), new(*meditation.Manager)),
	chatbot.NewOpenAICompleter,
	wire.Bind(new(chatbot.Completer), new(*chatbot.OpenAICompleter)),
	provideBot,
)

var serviceSet = wire.NewSet(
	services.NewUserService,
	wire.Bind(new(services.UserServiceInterface), new(*services.UserService)),
	services.NewEmotionService,
	wire.Bind(new(services.EmotionServiceInterface), new(*services.EmotionService)),
	services.NewMeditationService,
	wire.Bind(new(services.MeditationServiceInterface), new(*services.MeditationService)),
	services.NewChatService,
	wire.Bind(new(services.ChatServiceInterface), new(*services.ChatService)),
	services.NewMonitoringService,
	wire.Bind(new(services.MonitoringServiceInterface), new(*services.MonitoringService)),
)

var controllerSet = wire.NewSet(
	controllers.NewUserController,
	controllers.NewEmotionController,
	controllers.NewMeditationController,
	controllers.NewChatController,
	controllers.NewTrainingController,
	controllers.NewMonitoringController,
	controllers.NewDashboardController,
	controllers.NewHealthController,
	internal.NewControllers,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		infrastructureSet,
		repositorySet,
		trainingSet,
		domainSet,
		serviceSet,
		controllerSet,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitTrainer(cfg *structures.CliFlags) (*internal.Trainer, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		provideLogger,
		providers.NewMetricsProvider,
		trainingSet,
		internal.NewTrainer,
	)

	return nil, nil, nil
}
