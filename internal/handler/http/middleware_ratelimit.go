package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-ship-sync/internal/app"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// newRateLimiter limits requests per client IP to formattedRate ("30-M").
// An empty rate disables limiting.
func newRateLimiter(formattedRate string) (func(http.Handler) http.Handler, error) {
	if formattedRate == "" {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRateLimit, err)
	}

	middleware := stdlib.NewMiddleware(
		limiter.New(memory.NewStore(), rate),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.FromRequest(r).Warn().Str("remote_addr", r.RemoteAddr).Msg("sync rate limit reached")
			utils.WriteError(w, app.MsgRateLimitExceeded, http.StatusTooManyRequests)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.FromRequest(r).Err(err).Str("func", "rateLimiter").Msg("rate limiter failed")
			utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		}),
	)
	return middleware.Handler, nil
}
