package internal

import (
	"net/http"

	"nest/internal/controllers"
	"nest/internal/providers"
)

// Controllers groups the HTTP handlers so the injector can hand them to
// InitRoutes as one value.
type Controllers struct {
	Users      *controllers.UserController
	Emotions   *controllers.EmotionController
	Meditation *controllers.MeditationController
	Chat       *controllers.ChatController
	Training   *controllers.TrainingController
	Monitoring *controllers.MonitoringController
	Dashboard  *controllers.DashboardController
}

func NewControllers(
	users *controllers.UserController,
	emotions *controllers.EmotionController,
	meditation *controllers.MeditationController,
	chat *controllers.ChatController,
	training *controllers.TrainingController,
	monitoring *controllers.MonitoringController,
	dashboard *controllers.DashboardController,
) *Controllers {
	return &Controllers{
		Users:      users,
		Emotions:   emotions,
		Meditation: meditation,
		Chat:       chat,
		Training:   training,
		Monitoring: monitoring,
		Dashboard:  dashboard,
	}
}

func InitRoutes(c *Controllers) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/users", http.HandlerFunc(c.Users.Create))
	routers.Get("/users/{id}", http.HandlerFunc(c.Users.Get))

	routers.Post("/emotions", http.HandlerFunc(c.Emotions.Record))
	routers.Get("/emotions", http.HandlerFunc(c.Emotions.List))
	routers.Get("/emotions/report", http.HandlerFunc(c.Emotions.Report))
	routers.Get("/emotions/correlations", http.HandlerFunc(c.Emotions.Correlations))
	routers.Post("/emotions/analyze", http.HandlerFunc(c.Emotions.Analyze))

	routers.Get("/meditation/exercises", http.HandlerFunc(c.Meditation.Exercises))
	routers.Get("/meditation/exercises/{id}", http.HandlerFunc(c.Meditation.Exercise))
	routers.Get("/meditation/recommendations", http.HandlerFunc(c.Meditation.Recommend))
	routers.Post("/meditation/sessions", http.HandlerFunc(c.Meditation.StartSession))
	routers.Post("/meditation/sessions/{id}/complete", http.HandlerFunc(c.Meditation.CompleteSession))

	routers.Post("/chat", http.HandlerFunc(c.Chat.Chat))
	routers.Post("/chat/sessions/{id}/end", http.HandlerFunc(c.Chat.EndSession))

	routers.Post("/training/train", http.HandlerFunc(c.Training.Train))
	routers.Post("/training/evaluate", http.HandlerFunc(c.Training.Evaluate))
	routers.Get("/training/status/{type}", http.HandlerFunc(c.Training.Status))

	routers.Post("/monitoring/logs", http.HandlerFunc(c.Monitoring.ReceiveLogs))
	routers.Post("/monitoring/metrics", http.HandlerFunc(c.Monitoring.ReceiveMetrics))
	routers.Get("/monitoring/logs/{date}", http.HandlerFunc(c.Monitoring.GetLogs))
	routers.Get("/monitoring/metrics/{date}", http.HandlerFunc(c.Monitoring.GetMetrics))

	routers.Get("/dashboard/metrics/{type}", http.HandlerFunc(c.Dashboard.GetMetrics))
	routers.Post("/dashboard/metrics/{type}", http.HandlerFunc(c.Dashboard.UpdateMetrics))
	routers.Get("/dashboard/status/{type}", http.HandlerFunc(c.Dashboard.Status))
	return routers
}
