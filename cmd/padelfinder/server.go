package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"padelfinder/internal/app/bookings"
	"padelfinder/internal/app/clubs"
	"padelfinder/internal/app/courts"
	"padelfinder/internal/app/sessions"
	"padelfinder/internal/config"
	"padelfinder/internal/distance"
	"padelfinder/internal/events"
	"padelfinder/internal/http/middleware"
	"padelfinder/internal/httpapi"
	"padelfinder/internal/maps"
	"padelfinder/internal/search"
	"padelfinder/internal/session"
	"padelfinder/internal/store"
)

type bookingPublisher interface {
	bookings.Publisher
	Close() error
}

// newHTTPHandler wires the services behind the HTTP API. cleanup releases
// the broker and cache connections.
func newHTTPHandler(ctx context.Context, cfg *config.Config, dataStore *store.Store) (http.Handler, func(), error) {
	mapsClient := maps.NewClient(cfg.Maps.BaseURL, cfg.Maps.APIKey, cfg.Maps.Timeout)

	cache, closeCache, err := newDistanceCache(ctx, cfg.Distance)
	if err != nil {
		return nil, nil, err
	}
	resolver := distance.NewResolver(distance.NewEstimator(mapsClient), cache, cfg.Distance.Concurrency)

	publisher, err := newPublisher(cfg.Events)
	if err != nil {
		closeCache()
		return nil, nil, err
	}

	clubSvc := clubs.New(dataStore, resolver)
	courtSvc := courts.New(dataStore)
	bookingSvc := bookings.New(dataStore, publisher)
	sessionSvc := sessions.New(dataStore, session.NewVerifier(cfg.Auth.JWTSecret), cfg.Auth.SessionTTL)

	api := httpapi.New(clubSvc, courtSvc, bookingSvc, sessionSvc, mapsClient, search.NewSupersede())

	handler := withMiddleware(api.Routes(), cfg.CORS.AllowedOrigins)

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("close publisher")
		}
		closeCache()
	}
	return handler, cleanup, nil
}

// withMiddleware wraps h so that every request, panicking ones included, is
// logged with its request id.
func withMiddleware(h http.Handler, allowedOrigins []string) http.Handler {
	return middleware.Chain(h,
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(allowedOrigins),
	)
}

func newDistanceCache(ctx context.Context, cfg config.DistanceConfig) (distance.Cache, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR not set, caching distances in memory")
		return distance.NewMemoryCache(cfg.CacheTTL), func() {}, nil
	}

	cache := distance.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	if err := cache.Ping(ctx); err != nil {
		_ = cache.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return cache, func() { _ = cache.Close() }, nil
}

func newPublisher(cfg config.EventsConfig) (bookingPublisher, error) {
	if cfg.RabbitURL == "" {
		log.Info().Msg("RABBIT_URL not set, booking events disabled")
		return events.Nop{}, nil
	}

	publisher, err := events.NewPublisher(cfg.RabbitURL, cfg.Exchange)
	if err != nil {
		return nil, fmt.Errorf("connect booking broker: %w", err)
	}
	return publisher, nil
}
