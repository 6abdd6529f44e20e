package ports

import (
	"context"

	"fairaudit/domain/fairness"
)

// FairnessAuditor is the single entry point of the metrics engine. One
// invocation is a pure computation over the supplied data: no state is
// held across calls and no I/O is performed.
type FairnessAuditor interface {
	ComputeReport(
		ctx context.Context,
		candidates []fairness.FeatureRecord,
		outcomes []bool,
		protectedAttributes map[string][]string,
		auditContext fairness.Context,
	) (*fairness.Report, error)
}
