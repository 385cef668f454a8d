package importers_enums

// ImporterStatus moves only forward: pending, processing, then completed or
// failed.
type ImporterStatus string

const (
	ImporterStatusPending    ImporterStatus = "pending"
	ImporterStatusProcessing ImporterStatus = "processing"
	ImporterStatusCompleted  ImporterStatus = "completed"
	ImporterStatusFailed     ImporterStatus = "failed"
)

func (s ImporterStatus) IsFinal() bool {
	return s == ImporterStatusCompleted || s == ImporterStatusFailed
}
