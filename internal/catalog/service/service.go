package service

import (
	"context"
	"strings"

	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/internal/catalog/transport"
	"painting_estimator_backend/internal/shared/surface"
	"painting_estimator_backend/platform/apperr"
	"painting_estimator_backend/platform/logger"
	"painting_estimator_backend/platform/sanitize"
)

const taskNotFoundMessage = "catalog task not found"

// Service provides read access to the loaded catalog.
type Service struct {
	index  *index.Index
	mapper *index.Mapper
	log    *logger.Logger
}

// New creates a new catalog service over an already built index.
func New(ix *index.Index, log *logger.Logger) *Service {
	return &Service{index: ix, mapper: index.NewMapper(ix), log: log}
}

// Index returns the shared catalog index.
func (s *Service) Index() *index.Index {
	return s.index
}

// List returns catalog tasks, optionally filtered by surface and a search term.
func (s *Service) List(_ context.Context, req transport.ListTasksRequest) (transport.TaskListResponse, error) {
	var records []index.Record
	if strings.TrimSpace(req.Surface) != "" {
		st := surface.Parse(req.Surface)
		if st == surface.Unknown {
			return transport.TaskListResponse{}, apperr.Validation("unknown surface").WithDetails([]apperr.Violation{{Field: "surface", Reason: "oneof=wall ceiling floor door window trim"}})
		}
		records = s.index.BySurface(st)
	} else {
		records = s.index.Records()
	}

	if term := index.Normalize(req.Search); term != "" {
		filtered := records[:0:0]
		for _, r := range records {
			if matchesSearch(r, term) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	if records == nil {
		records = []index.Record{}
	}
	return transport.TaskListResponse{Items: records, Total: len(records)}, nil
}

func matchesSearch(r index.Record, term string) bool {
	if strings.Contains(strings.ToLower(r.ID), term) || strings.Contains(index.Normalize(r.Name), term) {
		return true
	}
	for _, syn := range r.SynonymList() {
		if strings.Contains(syn, term) {
			return true
		}
	}
	return false
}

// Get returns one task by id.
func (s *Service) Get(_ context.Context, id string) (index.Record, error) {
	rec, ok := s.index.Get(id)
	if !ok {
		return index.Record{}, apperr.NotFound(taskNotFoundMessage)
	}
	return rec, nil
}

// Resolve runs the guarded mapper on a phrase as it would be spoken.
func (s *Service) Resolve(_ context.Context, phrase string) (transport.ResolveResponse, error) {
	normalized := sanitize.Utterance(phrase)
	if normalized == "" {
		return transport.ResolveResponse{}, apperr.Validation("phrase is empty")
	}
	match := s.mapper.Resolve(normalized)
	s.log.Debug("catalog phrase resolved", "phrase", normalized, "method", match.Method, "confidence", match.Confidence)
	return transport.ResolveResponse{Match: match, Found: match.Found()}, nil
}
