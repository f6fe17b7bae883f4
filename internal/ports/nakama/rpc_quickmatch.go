package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients looking for a table to watch.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	// Find any rummy table that has not started yet.
	query := fmt.Sprintf("+label.open:T +label.game:%s +label.phase:lobby", GameLabel)

	limit := 10
	authoritative := true

	minSize := 0
	maxSize := MaxSpectators - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("MatchList error: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		return quickMatchResponse(matches[0].MatchId, false)
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameRummy, map[string]interface{}{})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}
	return quickMatchResponse(matchID, true)
}

func quickMatchResponse(matchID string, isNew bool) (string, error) {
	b, err := json.Marshal(QuickMatchResponse{MatchID: matchID, IsNew: isNew})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
