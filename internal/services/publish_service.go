package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
	"github.com/lead-insights/backend/internal/store"
)

// PublishService turns generated options into queued publish jobs and drives
// the job state machine.
type PublishService struct {
	store *store.Store
	log   *zap.Logger
}

func NewPublishService(store *store.Store, log *zap.Logger) *PublishService {
	return &PublishService{store: store, log: log}
}

// QueueInput selects which option to queue and for which platforms. An empty
// Platforms list means every platform the option carries a pack for.
type QueueInput struct {
	CustomerID string
	RunID      string
	OptionID   string
	Platforms  []string
}

// Queue creates one Ready job per target platform whose integration is
// connected. Disconnected platforms are skipped and named in the message;
// queuing nothing at all is an error.
func (s *PublishService) Queue(in QueueInput) (*models.Document, []models.PublishJob, string, error) {
	runID := models.CleanText(in.RunID)
	optionID := models.CleanText(in.OptionID)

	requested := make([]string, 0, len(in.Platforms))
	seen := map[string]bool{}
	for _, entry := range in.Platforms {
		key := models.PlatformKey(entry)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		requested = append(requested, key)
	}

	var queued []models.PublishJob
	var skipped []string

	doc, err := s.store.Update(func(doc *models.Document) error {
		customerID := models.CleanText(in.CustomerID)
		if customerID == "" {
			customerID = doc.SelectedCustomerID
		}
		if customerID == "" || runID == "" || optionID == "" {
			return invalid("customerId, runId and optionId are required.")
		}
		if doc.CustomerByID(customerID) == nil {
			return notFound("Customer not found.")
		}

		run := doc.RunByID(runID)
		var option *models.AdOption
		if run != nil {
			for i := range run.Options {
				if run.Options[i].ID == optionID {
					option = &run.Options[i]
					break
				}
			}
		}
		if run == nil || option == nil {
			return notFound("Ad option not found for publish queueing.")
		}
		if run.CustomerID != customerID {
			return invalid("Run does not belong to selected customer.")
		}

		available := []string{}
		if option.Facebook != nil {
			available = append(available, models.PlatformFacebook)
		}
		if option.Google != nil {
			available = append(available, models.PlatformGoogle)
		}
		if len(available) == 0 {
			return invalid("Option has no publishable platform payloads.")
		}

		targets := available
		if len(requested) > 0 {
			targets = targets[:0:0]
			for _, key := range requested {
				for _, avail := range available {
					if key == avail {
						targets = append(targets, key)
					}
				}
			}
			if len(targets) == 0 {
				return invalid("Requested platforms are unavailable for this option.")
			}
		}

		for _, platform := range targets {
			integration := doc.Integrations.ByPlatform(platform)
			if !integration.Connected {
				skipped = append(skipped, models.PlatformLabel(platform))
				continue
			}

			payload, err := marshalPayload(option, platform)
			if err != nil {
				continue
			}

			accountName := integration.AccountName
			if accountName == "" {
				accountName = integration.AccountID
			}
			if accountName == "" {
				accountName = models.PlatformLabel(platform)
			}

			now := time.Now().UTC()
			job := models.PublishJob{
				ID:                     models.NewID("job"),
				CustomerID:             customerID,
				RunID:                  runID,
				OptionID:               optionID,
				OptionLabel:            defaultValue(option.Label, "Ad Option"),
				CampaignName:           payloadCampaignName(option, platform),
				Platform:               platform,
				Status:                 models.JobStatusReady,
				IntegrationAccountName: accountName,
				CreatedAt:              now,
				UpdatedAt:              now,
				Payload:                payload,
				Log:                    []models.JobLogEntry{},
			}
			job.AppendLog("Queued", "Payload prepared and ready for API connector.")
			queued = append(queued, job)
		}

		if len(queued) == 0 {
			msg := "No jobs queued."
			if len(skipped) > 0 {
				msg += " Connect: " + strings.Join(skipped, ", ")
			}
			return invalid(msg)
		}

		doc.PublishJobs = append(append([]models.PublishJob{}, queued...), doc.PublishJobs...)
		doc.SelectedCustomerID = customerID
		return nil
	})
	if err != nil {
		return nil, nil, "", err
	}

	message := fmt.Sprintf("Queued %d publish job(s).", len(queued))
	if len(skipped) > 0 {
		message += " Skipped: " + strings.Join(skipped, ", ") + "."
	}
	s.log.Info("publish jobs queued", zap.Int("count", len(queued)), zap.Strings("skipped", skipped))
	return doc, queued, message, nil
}

// Action applies one operator action to a publish job: mark_sent,
// mark_failed, retry, or archive.
func (s *PublishService) Action(jobID, action, externalID, reason string) (*models.Document, string, error) {
	action = strings.ToLower(models.CleanText(action))

	doc, err := s.store.Update(func(doc *models.Document) error {
		job := doc.JobByID(jobID)
		if job == nil {
			return notFound("Publish job not found.")
		}

		switch action {
		case "mark_sent":
			id := models.CleanText(externalID)
			if id == "" {
				id = fmt.Sprintf("%s-%d", job.Platform, time.Now().UnixMilli())
			}
			job.Status = models.JobStatusSent
			job.ExternalID = id
			job.LastError = ""
			job.AppendLog("Marked Sent", "External ID: "+id)
		case "mark_failed":
			why := models.CleanText(reason)
			if why == "" {
				why = "Marked failed by operator."
			}
			job.Status = models.JobStatusFailed
			job.LastError = why
			job.AppendLog("Marked Failed", why)
		case "retry":
			job.Status = models.JobStatusReady
			job.LastError = ""
			job.Attempts++
			job.AppendLog("Retry", fmt.Sprintf("Retry attempt %d", job.Attempts))
		case "archive":
			job.Status = models.JobStatusArchived
			job.AppendLog("Archived", "Moved out of active publish queue.")
		default:
			return invalid("Invalid publish job action.")
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return doc, "Publish job updated.", nil
}

func marshalPayload(option *models.AdOption, platform string) (json.RawMessage, error) {
	switch platform {
	case models.PlatformFacebook:
		return json.Marshal(option.Facebook)
	case models.PlatformGoogle:
		return json.Marshal(option.Google)
	}
	return nil, fmt.Errorf("no payload for platform %q", platform)
}

func payloadCampaignName(option *models.AdOption, platform string) string {
	switch platform {
	case models.PlatformFacebook:
		if option.Facebook != nil {
			return option.Facebook.CampaignName
		}
	case models.PlatformGoogle:
		if option.Google != nil {
			return option.Google.CampaignName
		}
	}
	return ""
}
