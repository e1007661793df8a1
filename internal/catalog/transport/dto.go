package transport

import "painting_estimator_backend/internal/catalog/index"

// ListTasksRequest filters the catalog listing.
type ListTasksRequest struct {
	Surface string `form:"surface" validate:"omitempty,max=20"`
	Search  string `form:"q" validate:"omitempty,max=100"`
}

// TaskListResponse is the catalog listing.
type TaskListResponse struct {
	Items []index.Record `json:"items"`
	Total int            `json:"total"`
}

// ResolveRequest asks the mapper about one spoken phrase.
type ResolveRequest struct {
	Phrase string `form:"phrase" validate:"required,max=500"`
}

// ResolveResponse is the mapper result for a phrase.
type ResolveResponse struct {
	index.Match
	Found bool `json:"found"`
}
