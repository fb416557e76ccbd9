package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
)

// publishFixture builds a seeded store with one generated run and connects
// the requested platforms.
func publishFixture(t *testing.T, connect ...string) (*PublishService, *models.AdInputRun) {
	t.Helper()
	s := newSeededStore(t)
	accounts := NewAccountService(s, zap.NewNop())
	for _, platform := range connect {
		if _, _, err := accounts.ConnectIntegration(platform, IntegrationInput{AccountName: platform + " account"}); err != nil {
			t.Fatalf("connect %s: %v", platform, err)
		}
	}

	gen := NewGenerationService(s, fallbackGenerator(), zap.NewNop())
	_, run, _, err := gen.Generate(context.Background(), GenerateInput{
		CustomerID: "cust-1",
		Channels:   []string{models.ChannelFacebook, models.ChannelGoogle},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return NewPublishService(s, zap.NewNop()), run
}

func TestQueueCreatesJobsForConnectedPlatforms(t *testing.T) {
	svc, run := publishFixture(t, "facebook", "google")

	doc, jobs, msg, err := svc.Queue(QueueInput{
		CustomerID: "cust-1",
		RunID:      run.ID,
		OptionID:   run.Options[0].ID,
	})
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}
	if !strings.Contains(msg, "Queued 2 publish job(s).") {
		t.Errorf("message = %q", msg)
	}

	for _, job := range jobs {
		if job.Status != models.JobStatusReady {
			t.Errorf("status = %q, want Ready", job.Status)
		}
		if len(job.Log) != 1 || job.Log[0].Event != "Queued" {
			t.Errorf("log = %+v, want single Queued entry", job.Log)
		}
		if len(job.Payload) == 0 {
			t.Error("payload snapshot missing")
		}
	}

	var fbPayload models.FacebookPack
	if err := json.Unmarshal(doc.PublishJobs[0].Payload, &fbPayload); err != nil {
		t.Fatalf("payload not a pack snapshot: %v", err)
	}
	if fbPayload.CampaignName == "" {
		t.Error("payload snapshot empty")
	}
}

func TestQueueSkipsDisconnectedPlatform(t *testing.T) {
	svc, run := publishFixture(t, "facebook")

	_, jobs, msg, err := svc.Queue(QueueInput{
		CustomerID: "cust-1",
		RunID:      run.ID,
		OptionID:   run.Options[0].ID,
	})
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(jobs))
	}
	if jobs[0].Platform != models.PlatformFacebook {
		t.Errorf("platform = %q, want facebook", jobs[0].Platform)
	}
	if !strings.Contains(msg, "Skipped: Google.") {
		t.Errorf("message = %q, want skipped hint", msg)
	}
}

func TestQueueFailsWhenNothingConnected(t *testing.T) {
	svc, run := publishFixture(t)

	_, _, _, err := svc.Queue(QueueInput{
		CustomerID: "cust-1",
		RunID:      run.ID,
		OptionID:   run.Options[0].ID,
	})
	if err == nil {
		t.Fatal("queue with no connected integrations accepted")
	}
	if !strings.Contains(Message(err), "Connect: Facebook, Google") {
		t.Errorf("message = %q", Message(err))
	}
}

func TestQueueFiltersRequestedPlatforms(t *testing.T) {
	svc, run := publishFixture(t, "facebook", "google")

	_, jobs, _, err := svc.Queue(QueueInput{
		CustomerID: "cust-1",
		RunID:      run.ID,
		OptionID:   run.Options[0].ID,
		Platforms:  []string{"Google", "google", "tiktok"},
	})
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Platform != models.PlatformGoogle {
		t.Errorf("jobs = %+v, want single google job", jobs)
	}
}

func TestQueueValidation(t *testing.T) {
	svc, run := publishFixture(t, "facebook")

	if _, _, _, err := svc.Queue(QueueInput{CustomerID: "cust-1", RunID: run.ID}); err == nil {
		t.Error("missing optionId accepted")
	}
	if _, _, _, err := svc.Queue(QueueInput{CustomerID: "cust-1", RunID: "ghost", OptionID: "x"}); err == nil {
		t.Error("unknown run accepted")
	}
	if _, _, _, err := svc.Queue(QueueInput{CustomerID: "cust-2", RunID: run.ID, OptionID: run.Options[0].ID}); err == nil {
		t.Error("run owned by another customer accepted")
	}
}

func TestPublishJobActions(t *testing.T) {
	svc, run := publishFixture(t, "facebook")
	_, jobs, _, err := svc.Queue(QueueInput{CustomerID: "cust-1", RunID: run.ID, OptionID: run.Options[0].ID})
	if err != nil {
		t.Fatal(err)
	}
	jobID := jobs[0].ID

	doc, _, err := svc.Action(jobID, "mark_sent", "fb-ext-1", "")
	if err != nil {
		t.Fatalf("mark_sent: %v", err)
	}
	job := doc.JobByID(jobID)
	if job.Status != models.JobStatusSent || job.ExternalID != "fb-ext-1" {
		t.Errorf("after mark_sent: status=%q externalId=%q", job.Status, job.ExternalID)
	}
	if job.Log[0].Event != "Marked Sent" {
		t.Errorf("log head = %q", job.Log[0].Event)
	}

	doc, _, err = svc.Action(jobID, "mark_failed", "", "")
	if err != nil {
		t.Fatalf("mark_failed: %v", err)
	}
	job = doc.JobByID(jobID)
	if job.Status != models.JobStatusFailed {
		t.Errorf("status = %q, want Failed", job.Status)
	}
	if job.LastError != "Marked failed by operator." {
		t.Errorf("lastError = %q, want default reason", job.LastError)
	}

	doc, _, err = svc.Action(jobID, "retry", "", "")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	job = doc.JobByID(jobID)
	if job.Status != models.JobStatusReady || job.Attempts != 1 || job.LastError != "" {
		t.Errorf("after retry: status=%q attempts=%d lastError=%q", job.Status, job.Attempts, job.LastError)
	}

	doc, _, err = svc.Action(jobID, "archive", "", "")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if got := doc.JobByID(jobID).Status; got != models.JobStatusArchived {
		t.Errorf("status = %q, want Archived", got)
	}

	if _, _, err := svc.Action(jobID, "teleport", "", ""); err == nil {
		t.Error("invalid action accepted")
	}
	if _, _, err := svc.Action("ghost", "retry", "", ""); err == nil {
		t.Error("unknown job accepted")
	}
}

func TestMarkSentGeneratesExternalID(t *testing.T) {
	svc, run := publishFixture(t, "facebook")
	_, jobs, _, err := svc.Queue(QueueInput{CustomerID: "cust-1", RunID: run.ID, OptionID: run.Options[0].ID})
	if err != nil {
		t.Fatal(err)
	}

	doc, _, err := svc.Action(jobs[0].ID, "mark_sent", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.JobByID(jobs[0].ID).ExternalID; !strings.HasPrefix(got, "facebook-") {
		t.Errorf("externalId = %q, want facebook- prefix", got)
	}
}
