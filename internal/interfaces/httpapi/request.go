package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/footy-tracker/internal/domain/match"
	"github.com/riskibarqy/footy-tracker/internal/usecase"
)

const maxRebuildPayloadBytes = 64 << 10

// recordMatchRequest holds the fields checked before a match reaches the use
// case. Structural rules on the match itself live in the match package.
type recordMatchRequest struct {
	Season int    `validate:"gte=1900,lte=9999"`
	ID     string `validate:"required,max=32"`
	Day    string `validate:"max=32"`
}

func newRecordMatchRequest(year int, m match.Match) recordMatchRequest {
	return recordMatchRequest{
		Season: year,
		ID:     m.ID,
		Day:    m.Day,
	}
}

type rebuildRequest struct {
	Seasons    []int `json:"seasons" validate:"omitempty,max=200,dive,gte=1900,lte=9999"`
	MaxWorkers int   `json:"maxWorkers" validate:"omitempty,gte=1,lte=16"`
}

// decodeRebuildRequest accepts an empty body as "rebuild every season".
func decodeRebuildRequest(r *http.Request) (rebuildRequest, error) {
	if r.Body == nil {
		return rebuildRequest{}, nil
	}
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxRebuildPayloadBytes))
	if err != nil {
		return rebuildRequest{}, fmt.Errorf("%w: read payload: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return rebuildRequest{}, nil
	}

	var req rebuildRequest
	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return rebuildRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}
