package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/games/search", handler.SearchGames)
	mux.HandleFunc("GET /api/games/{gameID}", handler.GetGame)
	mux.HandleFunc("POST /api/games", handler.CreateGame)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/games/{gameID}/roster", handler.GetRoster)
	mux.HandleFunc("PUT /api/games/{gameID}/roster/init", handler.InitRoster)
	mux.HandleFunc("PUT /api/games/{gameID}/roster/players", handler.UpdateRosterPlayers)
	mux.HandleFunc("GET /api/games/{gameID}/roster/gamer/{gamerID}", handler.GetRosterGamer)
	mux.HandleFunc("GET /api/games/{gameID}/roster/transactions", handler.ListRosterTransactions)
}

func registerPicksRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/games/{gameID}/event/{eventID}/gamer/{gamerID}/picks", handler.GetPicks)
	mux.HandleFunc("PUT /api/games/{gameID}/event/{eventID}/gamer/{gamerID}/picks", handler.PutPicks)
}

func registerScheduleRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/tour/{tour}/{year}/schedule", handler.GetTourSchedule)
}
