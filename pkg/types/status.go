package types

// VariableStatus is the outcome of resolving one variable in a document.
// Error and Modified are mutually exclusive for the line that last touched
// the entry.
type VariableStatus struct {
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
	Modified bool   `json:"modified" yaml:"modified"`
}

// DocumentStatus aggregates variable statuses for one document.
// Variables never contains an entry for a name that no marker referenced.
type DocumentStatus struct {
	Path      string                     `json:"path" yaml:"path"`
	Modified  bool                       `json:"modified" yaml:"modified"`
	Variables map[string]*VariableStatus `json:"variables" yaml:"variables"`
}

// NewDocumentStatus returns an empty status for path
func NewDocumentStatus(path string) *DocumentStatus {
	return &DocumentStatus{
		Path:      path,
		Variables: make(map[string]*VariableStatus),
	}
}

// Variable returns the entry for name, creating it on first use
func (d *DocumentStatus) Variable(name string) *VariableStatus {
	v, ok := d.Variables[name]
	if !ok {
		v = &VariableStatus{}
		d.Variables[name] = v
	}
	return v
}

// HasVariables reports whether any marker was found in the document
func (d *DocumentStatus) HasVariables() bool {
	return len(d.Variables) > 0
}

// BatchSummary is the aggregate result of a batch run
type BatchSummary struct {
	RunID        string `json:"run_id" yaml:"run_id"`
	UpdatedCount int    `json:"updated_count" yaml:"updated_count"`
	// Processed counts documents the batch attempted, including failures
	Processed int `json:"processed" yaml:"processed"`
	// Documents holds per-document statuses; only populated when verbose
	// diagnostics are enabled, and only for documents with markers
	Documents map[string]*DocumentStatus `json:"documents,omitempty" yaml:"documents,omitempty"`
	// Failed maps document paths to the read/backup/write error that
	// stopped their update
	Failed map[string]string `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// NewBatchSummary returns an empty summary for runID
func NewBatchSummary(runID string) *BatchSummary {
	return &BatchSummary{
		RunID:     runID,
		Documents: make(map[string]*DocumentStatus),
		Failed:    make(map[string]string),
	}
}
