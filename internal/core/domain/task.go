package domain

type TaskStatus string

const (
	TaskStatusScheduled  TaskStatus = "SCHEDULED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusFinished   TaskStatus = "FINISHED"
)

// IsTerminal reports whether polling stops at this status. Any value outside
// the known vocabulary is a terminal failure.
func (s TaskStatus) IsTerminal() bool {
	return s != TaskStatusScheduled && s != TaskStatusInProgress
}

func (s TaskStatus) IsSuccess() bool {
	return s == TaskStatusFinished
}

// TaskStatusInfo is reported by the import service for a scheduled import task.
type TaskStatusInfo struct {
	Type              string     `json:"type"`
	TaskID            string     `json:"taskId"`
	TaskStatus        TaskStatus `json:"taskStatus"`
	TaskType          string     `json:"taskType"`
	ResultDataModelID string     `json:"resultDataModelId,omitempty"`
	SourceDBFileName  string     `json:"sourceDBFileName,omitempty"`
	SourceFileName    string     `json:"sourceFileName,omitempty"`
}

// SourceName returns the uploaded file name as reported by either API generation.
func (t TaskStatusInfo) SourceName() string {
	if t.SourceDBFileName != "" {
		return t.SourceDBFileName
	}
	return t.SourceFileName
}
