package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/djboulia/fantasygolf/external/tourdata"
	"github.com/djboulia/fantasygolf/internal/config"
	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/roster"
	cacherepo "github.com/djboulia/fantasygolf/internal/infrastructure/repository/cache"
	"github.com/djboulia/fantasygolf/internal/infrastructure/repository/memory"
	"github.com/djboulia/fantasygolf/internal/infrastructure/repository/postgres"
	"github.com/djboulia/fantasygolf/internal/interfaces/httpapi"
	basecache "github.com/djboulia/fantasygolf/internal/platform/cache"
	idgen "github.com/djboulia/fantasygolf/internal/platform/id"
	"github.com/djboulia/fantasygolf/internal/platform/logging"
	"github.com/djboulia/fantasygolf/internal/usecase"
)

// tourDataFeeds adapts the tourdata client to the usecase feed port.
type tourDataFeeds struct {
	client *tourdata.Client
}

func (f tourDataFeeds) Season(year int, tour string) usecase.SeasonFeed {
	return f.client.Season(year, tour)
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	games, rosters, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	feeds := tourDataFeeds{client: tourdata.NewClient(tourdata.ClientConfig{
		BaseURL:    cfg.TourDataBaseURL,
		Timeout:    cfg.TourDataTimeout,
		MaxRetries: cfg.TourDataMaxRetries,
		CacheTTL:   cfg.FeedCacheTTL,
		Logger:     logger,
	})}

	ids := idgen.NewRandomGenerator()

	gameSvc := usecase.NewGameService(games, rosters, feeds, ids, logger, nil)
	rosterSvc := usecase.NewRosterService(games, rosters, feeds, ids, logger, nil)
	picksSvc := usecase.NewPicksService(games, feeds, logger, nil)
	scheduleSvc := usecase.NewScheduleService(feeds, logger, nil)

	handler := httpapi.NewHandler(gameSvc, rosterSvc, picksSvc, scheduleSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildRepositories picks the persistence backend from config: postgres when
// DB_URL is set, the in-memory store otherwise. Both variants sit behind the
// same read-through cache when caching is enabled.
func buildRepositories(cfg config.Config, logger *logging.Logger) (game.Repository, roster.Repository, error) {
	var games game.Repository
	var rosters roster.Repository

	if cfg.DBURL != "" {
		db, err := sqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		games = postgres.NewGameRepository(db)
		rosters = postgres.NewRosterRepository(db)
		logger.Info("using postgres repositories", "database", dbNameFromURL(cfg.DBURL))
	} else {
		games = memory.NewGameRepository(nil)
		rosters = memory.NewRosterRepository(nil)
		logger.Info("using in-memory repositories")
	}

	if cfg.CacheEnabled {
		gameStore := basecache.NewStore[game.Game](cfg.RecordCacheTTL, nil)
		rosterStore := basecache.NewStore[roster.Roster](cfg.RecordCacheTTL, nil)
		games = cacherepo.NewGameRepository(games, gameStore)
		rosters = cacherepo.NewRosterRepository(rosters, rosterStore)
		logger.Info("record cache enabled", "ttl", cfg.RecordCacheTTL.String())
	}

	return games, rosters, nil
}
