package ports

import (
	"context"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// ReportRepository persists issued fairness reports. The engine itself is
// stateless; persistence belongs to the surrounding service layer.
type ReportRepository interface {
	Save(ctx context.Context, report *fairness.Report) error
	GetByID(ctx context.Context, id core.ReportID) (*fairness.Report, error)
	ListRecent(ctx context.Context, limit int) ([]*fairness.Report, error)
}
