package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRunID        = "run_id"
	FieldScenario     = "scenario"
	FieldPath         = "path"
	FieldEvents       = "events"
	FieldDays         = "days"
	FieldSamples      = "samples"
	FieldStart        = "start"
	FieldUntil        = "until"
	FieldFinalBalance = "final_balance"
	FieldLowest       = "lowest_balance"
	FieldLowestDate   = "lowest_date"
	FieldDaysNegative = "days_negative"
	FieldDuration     = "duration_ms"
	FieldWorkers      = "workers"
	FieldFormat       = "format"
	FieldError        = "error"
	FieldOperation    = "operation"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentCLI       = "cli"
	ComponentRunner    = "runner"
	ComponentScenario  = "scenario"
	ComponentProjector = "projector"
	ComponentReport    = "report"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpBuild    = "build"
	OpProject  = "project"
	OpRender   = "render"
	OpValidate = "validate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithRunID adds the projection run id
func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithScenario adds scenario identification fields
func (f LogFields) WithScenario(name, path string) LogFields {
	f[FieldScenario] = name
	f[FieldPath] = path
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
