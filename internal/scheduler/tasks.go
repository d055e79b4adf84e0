package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskNurturingTouchpoint = "leads.nurturing.touchpoint"

const TaskDailyReport = "reports.daily"

// NurturingTouchpointPayload identifies one step of a lead's follow-up
// sequence. Step is the zero-based index within the sequence at the time it
// was scheduled.
type NurturingTouchpointPayload struct {
	LeadID   string `json:"leadId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Template string `json:"template"`
	Step     int    `json:"step"`
}

// DailyReportPayload identifies the day a report covers, formatted 2006-01-02.
type DailyReportPayload struct {
	Date string `json:"date"`
}

func NewNurturingTouchpointTask(payload NurturingTouchpointPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNurturingTouchpoint, data), nil
}

func ParseNurturingTouchpointPayload(task *asynq.Task) (NurturingTouchpointPayload, error) {
	var payload NurturingTouchpointPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NurturingTouchpointPayload{}, err
	}
	return payload, nil
}

func NewDailyReportTask(payload DailyReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailyReport, data), nil
}

func ParseDailyReportPayload(task *asynq.Task) (DailyReportPayload, error) {
	var payload DailyReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DailyReportPayload{}, err
	}
	return payload, nil
}
