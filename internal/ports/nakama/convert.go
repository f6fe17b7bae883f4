package nakama

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"rummy/internal/app"
	"rummy/internal/domain"
)

// eventOpCode maps an app event kind to its wire op code.
func eventOpCode(kind app.EventKind) (int64, bool) {
	switch kind {
	case app.EventGameStarted:
		return OpGameStarted, true
	case app.EventHandDealt:
		return OpHandDealt, true
	case app.EventTileDrawn:
		return OpTileDrawn, true
	case app.EventPublished:
		return OpPublished, true
	case app.EventTileDiscarded:
		return OpTileDiscarded, true
	case app.EventTurnEnded:
		return OpTurnEnded, true
	case app.EventGameEnded:
		return OpGameEnded, true
	default:
		return 0, false
	}
}

// toStruct converts a JSON-tagged payload into a protobuf Struct.
func toStruct(payload any) (*structpb.Struct, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("payload %T is not an object: %w", payload, err)
	}
	return structpb.NewStruct(fields)
}

// encodePayload serializes a payload as a binary protobuf Struct.
func encodePayload(payload any) ([]byte, error) {
	s, err := toStruct(payload)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

// decodePayload is the inverse of encodePayload.
func decodePayload(data []byte) (map[string]any, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}

// MatchLabel is the searchable label of a rummy match.
type MatchLabel struct {
	Open       bool   `json:"open"`
	Game       string `json:"game"`
	Phase      string `json:"phase"`
	Spectators int    `json:"spectators"`
}

func encodeLabel(label MatchLabel) (string, error) {
	s, err := toStruct(label)
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PlayerSnapshot is the public view of one seat.
type PlayerSnapshot struct {
	UserID      string                `json:"user_id"`
	DisplayName string                `json:"display_name"`
	Seat        int                   `json:"seat"`
	HandSize    int                   `json:"hand_size"`
	Status      string                `json:"status"`
	Yard        [][]domain.Descriptor `json:"yard"`
}

// MatchSnapshot is the public view of a table sent to spectators.
type MatchSnapshot struct {
	Phase       string           `json:"phase"`
	GameID      string           `json:"game_id"`
	Turn        int              `json:"turn"`
	CurrentSeat int              `json:"current_seat"`
	PoolLeft    int              `json:"pool_left"`
	OwnerUserID string           `json:"owner_user_id"`
	Players     []PlayerSnapshot `json:"players"`
}

func yardDescriptors(yard []domain.Combination) [][]domain.Descriptor {
	out := make([][]domain.Descriptor, 0, len(yard))
	for _, c := range yard {
		out = append(out, domain.Descriptors(c.Tiles))
	}
	return out
}
