package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskScanProcess = "scans.process"

const TaskAuditPrune = "audit.prune"

type ScanProcessPayload struct {
	ScanID    int64  `json:"scanId"`
	PatientID int64  `json:"patientId"`
	FileKey   string `json:"fileKey"`
}

func NewScanProcessTask(payload ScanProcessPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskScanProcess, data), nil
}

func ParseScanProcessPayload(task *asynq.Task) (ScanProcessPayload, error) {
	var payload ScanProcessPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ScanProcessPayload{}, err
	}
	return payload, nil
}

func NewAuditPruneTask() *asynq.Task {
	return asynq.NewTask(TaskAuditPrune, nil)
}
