package risk

import "errors"

var (
	// ErrInvalidCondition means a requested condition is not one of the
	// known adverse conditions.
	ErrInvalidCondition = errors.New("invalid weather condition")

	// ErrInvalidActivity means the requested activity is not in the
	// sensitivity table.
	ErrInvalidActivity = errors.New("invalid activity")

	// ErrEmptySelection means no conditions were requested. Aggregation
	// over an empty selection is rejected rather than reported as zero.
	ErrEmptySelection = errors.New("no conditions selected")

	// ErrInvalidAggregate means an aggregate score is NaN and cannot be
	// compared against the historical baseline.
	ErrInvalidAggregate = errors.New("invalid aggregate risk")
)
