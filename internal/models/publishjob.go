package models

import (
	"encoding/json"
	"time"
)

// Publish job statuses: Ready -> Sent | Failed; Failed -> Ready via retry;
// Archived is reachable from any state and terminal for the normal flow.
const (
	JobStatusReady    = "Ready"
	JobStatusSent     = "Sent"
	JobStatusFailed   = "Failed"
	JobStatusArchived = "Archived"
)

// Publish platforms, lowercase keys as persisted.
const (
	PlatformFacebook = "facebook"
	PlatformGoogle   = "google"
)

// JobLogCap bounds the per-job event log.
const JobLogCap = 40

func IsValidJobStatus(status string) bool {
	switch status {
	case JobStatusReady, JobStatusSent, JobStatusFailed, JobStatusArchived:
		return true
	}
	return false
}

// PlatformKey normalizes a platform name to its lowercase key, or "" when the
// platform is not supported.
func PlatformKey(value string) string {
	switch CleanText(value) {
	case "facebook", "Facebook":
		return PlatformFacebook
	case "google", "Google":
		return PlatformGoogle
	}
	return ""
}

// PlatformLabel returns the display name for a platform key.
func PlatformLabel(value string) string {
	switch PlatformKey(value) {
	case PlatformFacebook:
		return "Facebook"
	case PlatformGoogle:
		return "Google"
	}
	return PlatformKey(value)
}

// JobLogEntry is one audit line in a publish job's event log.
type JobLogEntry struct {
	At     time.Time `json:"at"`
	Event  string    `json:"event"`
	Detail string    `json:"detail"`
}

// PublishJob is a queued intent to push one platform's ad pack externally.
// Payload is the sanitized pack snapshot captured at queue time.
type PublishJob struct {
	ID                     string          `json:"id"`
	CustomerID             string          `json:"customerId"`
	RunID                  string          `json:"runId"`
	OptionID               string          `json:"optionId"`
	OptionLabel            string          `json:"optionLabel"`
	CampaignName           string          `json:"campaignName"`
	Platform               string          `json:"platform"`
	Status                 string          `json:"status"`
	IntegrationAccountName string          `json:"integrationAccountName"`
	Attempts               int             `json:"attempts"`
	ExternalID             string          `json:"externalId"`
	LastError              string          `json:"lastError"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
	Payload                json.RawMessage `json:"payload"`
	Log                    []JobLogEntry   `json:"log"`
}

// AppendLog prepends one event to the job log, trimming to JobLogCap, and
// bumps UpdatedAt.
func (j *PublishJob) AppendLog(event, detail string) {
	entry := JobLogEntry{At: time.Now().UTC(), Event: CleanText(event), Detail: CleanText(detail)}
	if entry.Event == "" {
		entry.Event = "Update"
	}
	j.Log = append([]JobLogEntry{entry}, j.Log...)
	if len(j.Log) > JobLogCap {
		j.Log = j.Log[:JobLogCap]
	}
	j.UpdatedAt = entry.At
}

// NormalizeJob rebuilds a job with enum coercion (unknown status -> Ready)
// and a trimmed log. Jobs without a recognized platform are dropped by the
// document normalizer.
func NormalizeJob(j PublishJob) PublishJob {
	j.ID = CleanText(j.ID)
	if j.ID == "" {
		j.ID = NewID("job")
	}
	if !IsValidJobStatus(j.Status) {
		j.Status = JobStatusReady
	}
	j.Platform = PlatformKey(j.Platform)
	if j.Attempts < 0 {
		j.Attempts = 0
	}
	now := time.Now().UTC()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = now
	}
	if len(j.Log) > JobLogCap {
		j.Log = j.Log[:JobLogCap]
	}
	for i := range j.Log {
		if j.Log[i].At.IsZero() {
			j.Log[i].At = now
		}
		if CleanText(j.Log[i].Event) == "" {
			j.Log[i].Event = "Update"
		}
	}
	return j
}
