package server

import (
	"context"
	"net/http"

	"github.com/den-games/denbot/internal/logging"
)

func HandleHealth(ctx context.Context) http.Handler {
	logger := logging.FromContext(ctx)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			logger.Debugf("health handler: context closed")
			http.Error(w, "context closed", http.StatusServiceUnavailable)
			return
		default:
		}

		w.WriteHeader(http.StatusOK)
	})
}
