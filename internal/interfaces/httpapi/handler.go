package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/footy-tracker/internal/domain/match"
	"github.com/riskibarqy/footy-tracker/internal/platform/logging"
	"github.com/riskibarqy/footy-tracker/internal/usecase"
)

const maxMatchPayloadBytes = 1 << 20

type Handler struct {
	seasonService  *usecase.SeasonService
	rebuildService *usecase.RebuildService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	rebuildService *usecase.RebuildService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:  seasonService,
		rebuildService: rebuildService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetTracker(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTracker")
	defer span.End()

	year, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tracker, err := h.seasonService.GetTracker(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get tracker failed", "season", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tracker)
}

func (h *Handler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatch")
	defer span.End()

	year, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMatchPayloadBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	m, err := match.Decode(payload)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, newRecordMatchRequest(year, m)); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.seasonService.RecordMatch(ctx, year, m)
	if err != nil {
		h.logger.WarnContext(ctx, "record match failed", "season", year, "match_id", m.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusCreated
	if result.Replaced {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, result)
}

func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAttendance")
	defer span.End()

	year, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.seasonService.GetAttendance(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get attendance board failed", "season", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPerformance")
	defer span.End()

	year, err := seasonFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.seasonService.GetPerformance(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get performance board failed", "season", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) RunSeasonRebuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSeasonRebuild")
	defer span.End()

	if h.rebuildService == nil {
		writeError(ctx, w, fmt.Errorf("%w: rebuild service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeRebuildRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rebuildService.RebuildAll(ctx, usecase.RebuildInput{
		Seasons:    req.Seasons,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run season rebuild failed", "seasons", req.Seasons, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func seasonFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("season"))
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: season must be numeric, got %q", usecase.ErrInvalidInput, raw)
	}
	return year, nil
}
