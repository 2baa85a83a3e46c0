package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"anoa.com/freshwash/internal/modules/admin/dto"
	"anoa.com/freshwash/internal/modules/admin/repository"
	"anoa.com/freshwash/pkg/apperror"
	"github.com/google/uuid"
)

// EventRecorder keeps an audit trail of report executions.
type EventRecorder interface {
	RecordEvent(ctx context.Context, memberID uuid.UUID, description string)
}

type ReportService interface {
	Templates() []dto.TemplateResponse
	Run(ctx context.Context, memberID uuid.UUID, req dto.QueryRequest) (*dto.QueryResponse, error)
}

type reportService struct {
	repo     repository.ReportRepository
	recorder EventRecorder
	timeout  time.Duration
}

func NewReportService(repo repository.ReportRepository, recorder EventRecorder, timeout time.Duration) ReportService {
	return &reportService{
		repo:     repo,
		recorder: recorder,
		timeout:  timeout,
	}
}

func (s *reportService) Templates() []dto.TemplateResponse {
	res := make([]dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		params := make([]string, 0, len(t.params))
		for _, p := range t.params {
			params = append(params, p.name)
		}
		res = append(res, dto.TemplateResponse{
			Name:        t.name,
			Description: t.description,
			Params:      params,
		})
	}
	return res
}

// Run executes a named read-only report. Only the allowlisted templates can
// be run; caller input only ever reaches the store as bound parameters.
func (s *reportService) Run(ctx context.Context, memberID uuid.UUID, req dto.QueryRequest) (*dto.QueryResponse, error) {
	t, ok := findTemplate(req.Query)
	if !ok {
		return nil, apperror.New(http.StatusBadRequest, fmt.Sprintf("unknown report %q", req.Query), apperror.ErrInvalidInput)
	}

	args, err := t.bind(req.Params)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, err.Error(), apperror.ErrInvalidInput)
	}

	if s.recorder != nil {
		s.recorder.RecordEvent(ctx, memberID, describe(t.name, req.Params))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.repo.Run(ctx, t.store, t.query, args)
	if err != nil {
		return nil, err
	}

	return &dto.QueryResponse{
		Query:   t.name,
		Count:   len(rows),
		Results: rows,
	}, nil
}

func describe(name string, params map[string]string) string {
	if len(params) == 0 {
		return "report " + name
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return "report " + name + " " + strings.Join(pairs, " ")
}
