package worker

import (
	"github.com/spec-kit/music-stream-service/internal/service"
)

// StartAnalyticsWorker subscribes the analytics service to play events.
func StartAnalyticsWorker(analyticsService *service.AnalyticsService) {
	if analyticsService == nil {
		return
	}
	analyticsService.RegisterHandlers()
}
