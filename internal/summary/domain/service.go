package domain

import "context"

// Request narrows the rollup by month window and kind. Months use the
// "YYYY-MM" form; zero values mean no constraint.
type Request struct {
	StartMonth string
	EndMonth   string
	Kind       string
}

// Response carries the rollup rows, newest month first.
type Response struct {
	Data []MonthlySummary `json:"data"`
}

type Service interface {
	Monthly(ctx context.Context, req Request) (*Response, error)
}
