package notify_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"boardhook/internal/board"
	"boardhook/internal/events"
	"boardhook/internal/files"
	"boardhook/internal/links"
	"boardhook/internal/message"
	"boardhook/internal/notify"
)

type fakePrefs struct {
	project map[string]string
	user    map[string]string
	global  map[string]string
	failOn  string
}

func (f *fakePrefs) lookup(scoped map[string]string, key, name, fallback string) (string, error) {
	if name == f.failOn {
		return "", errors.New("metadata store unavailable")
	}
	if value, ok := scoped[key]; ok {
		return value, nil
	}
	if value, ok := f.global[name]; ok {
		return value, nil
	}
	return fallback, nil
}

func (f *fakePrefs) GetProjectMetadata(_ context.Context, projectID int64, name, fallback string) (string, error) {
	return f.lookup(f.project, strconv.FormatInt(projectID, 10)+"/"+name, name, fallback)
}

func (f *fakePrefs) GetUserMetadata(_ context.Context, userID int64, name, fallback string) (string, error) {
	return f.lookup(f.user, strconv.FormatInt(userID, 10)+"/"+name, name, fallback)
}

type fakeSender struct {
	sent    []sentMessage
	failURL string
	failFor string
}

type sentMessage struct {
	url string
	msg message.Message
}

func (f *fakeSender) Send(_ context.Context, webhookURL string, msg message.Message) error {
	if f.failURL != "" && webhookURL == f.failURL {
		return errors.New("webhook rejected")
	}
	if f.failFor != "" && len(msg.Embeds) > 0 && strings.Contains(msg.Embeds[0].Description, f.failFor) {
		return errors.New("webhook rejected")
	}
	f.sent = append(f.sent, sentMessage{url: webhookURL, msg: msg})
	return nil
}

type fakeProjects struct {
	projects map[int64]board.Project
}

func (f *fakeProjects) ProjectByID(_ context.Context, id int64) (board.Project, error) {
	if project, ok := f.projects[id]; ok {
		return project, nil
	}
	return board.Project{}, errors.New("project not found")
}

type fakeActors struct {
	actor *message.Actor
}

func (f *fakeActors) CurrentActor(context.Context) *message.Actor { return f.actor }

func newNotifier(t *testing.T, prefs *fakePrefs, projects *fakeProjects, sender *fakeSender, actors notify.ActorSource) *notify.Notifier {
	t.Helper()
	composer := message.NewComposer(
		files.NewDirStore(t.TempDir()),
		links.NewBuilder("https://board.example.test"),
		nil,
		message.WithClock(func() time.Time {
			return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		}),
	)
	return notify.New(prefs, projects, composer, sender, actors, nil)
}

func taskPayload(projectID int64) board.Payload {
	return board.Payload{
		ProjectName: "Apollo",
		Task:        &board.Task{ID: 42, ProjectID: projectID, Title: "Fix heat shield"},
	}
}

func TestNotifyProjectDelivers(t *testing.T) {
	prefs := &fakePrefs{
		project: map[string]string{
			"7/discord_webhook_url": "https://hooks.example/abc",
			"7/Discord_task_create": "1",
		},
	}
	projects := &fakeProjects{projects: map[int64]board.Project{7: {ID: 7, Name: "Apollo"}}}
	sender := &fakeSender{}
	notifier := newNotifier(t, prefs, projects, sender, nil)

	notifier.NotifyProject(context.Background(), board.Project{ID: 7, Name: "Apollo"}, events.TaskCreate, taskPayload(7))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sender.sent))
	}
	if sender.sent[0].url != "https://hooks.example/abc" {
		t.Fatalf("delivered to wrong webhook: %q", sender.sent[0].url)
	}
	if !strings.HasPrefix(sender.sent[0].msg.Embeds[0].Title, "**[Apollo]** ") {
		t.Fatalf("unexpected embed title: %q", sender.sent[0].msg.Embeds[0].Title)
	}
}

func TestNotifyProjectWithoutWebhookIsNoop(t *testing.T) {
	prefs := &fakePrefs{project: map[string]string{"7/Discord_task_create": "1"}}
	sender := &fakeSender{}
	notifier := newNotifier(t, prefs, &fakeProjects{}, sender, nil)

	notifier.NotifyProject(context.Background(), board.Project{ID: 7, Name: "Apollo"}, events.TaskCreate, taskPayload(7))

	if len(sender.sent) != 0 {
		t.Fatalf("expected no delivery without a webhook, got %d", len(sender.sent))
	}
}

func TestNotifyProjectWithoutSubscriptionIsNoop(t *testing.T) {
	prefs := &fakePrefs{project: map[string]string{"7/discord_webhook_url": "https://hooks.example/abc"}}
	sender := &fakeSender{}
	notifier := newNotifier(t, prefs, &fakeProjects{}, sender, nil)

	notifier.NotifyProject(context.Background(), board.Project{ID: 7, Name: "Apollo"}, events.TaskCreate, taskPayload(7))

	if len(sender.sent) != 0 {
		t.Fatalf("expected no delivery without a subscription, got %d", len(sender.sent))
	}
}

func TestNotifyProjectWebhookLookupFailureIsNoop(t *testing.T) {
	prefs := &fakePrefs{failOn: "discord_webhook_url"}
	sender := &fakeSender{}
	notifier := newNotifier(t, prefs, &fakeProjects{}, sender, nil)

	notifier.NotifyProject(context.Background(), board.Project{ID: 7, Name: "Apollo"}, events.TaskCreate, taskPayload(7))

	if len(sender.sent) != 0 {
		t.Fatalf("lookup failure must suppress delivery, got %d sends", len(sender.sent))
	}
}

func TestNotifyUserTaskEventDelivers(t *testing.T) {
	prefs := &fakePrefs{
		user: map[string]string{
			"3/discord_webhook_url":  "https://hooks.example/user",
			"3/task_assignee_change": "1",
		},
	}
	projects := &fakeProjects{projects: map[int64]board.Project{7: {ID: 7, Name: "Apollo"}}}
	sender := &fakeSender{}
	notifier := newNotifier(t, prefs, projects, sender, nil)

	notifier.NotifyUser(context.Background(), board.User{ID: 3, Name: "Valentina"}, events.TaskAssigneeChange, taskPayload(7))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sender.sent))
	}
}

func TestNotifyUserNonTaskEventIsNoop(t *testing.T) {
	prefs := &fakePrefs{
		user: map[string]string{
			"3/discord_webhook_url": "https://hooks.example/user",
			"3/comment_create":      "1",
		},
	}
	sender := &fakeSender{}
	notifier := newNotifier(t, prefs, &fakeProjects{}, sender, nil)

	payload := taskPayload(7)
	payload.Comment = &board.Comment{TaskID: 42, Comment: "hi"}
	notifier.NotifyUser(context.Background(), board.User{ID: 3, Name: "Valentina"}, events.CommentCreate, payload)

	if len(sender.sent) != 0 {
		t.Fatalf("user recipients only match task events, got %d sends", len(sender.sent))
	}
}

func TestNotifyUserGlobalWebhookFallback(t *testing.T) {
	prefs := &fakePrefs{
		user:   map[string]string{"3/task_create": "1"},
		global: map[string]string{"discord_webhook_url": "https://hooks.example/global"},
	}
	projects := &fakeProjects{projects: map[int64]board.Project{7: {ID: 7, Name: "Apollo"}}}
	sender := &fakeSender{}
	notifier := newNotifier(t, prefs, projects, sender, nil)

	notifier.NotifyUser(context.Background(), board.User{ID: 3, Name: "Valentina"}, events.TaskCreate, taskPayload(7))

	if len(sender.sent) != 1 || sender.sent[0].url != "https://hooks.example/global" {
		t.Fatalf("expected delivery to the global webhook, got %+v", sender.sent)
	}
}

func TestNotifyProjectOverdueBatchFansOut(t *testing.T) {
	prefs := &fakePrefs{
		project: map[string]string{
			"7/discord_webhook_url":  "https://hooks.example/abc",
			"7/Discord_task_overdue": "1",
		},
	}
	projects := &fakeProjects{projects: map[int64]board.Project{
		7: {ID: 7, Name: "Apollo"},
		9: {ID: 9, Name: "Gemini"},
	}}
	sender := &fakeSender{}
	notifier := newNotifier(t, prefs, projects, sender, nil)

	payload := board.Payload{Tasks: []board.Task{
		{ID: 1, ProjectID: 7, Title: "First"},
		{ID: 2, ProjectID: 9, Title: "Second"},
		{ID: 3, ProjectID: 7, Title: "Third"},
	}}
	notifier.NotifyProject(context.Background(), board.Project{ID: 7, Name: "Apollo"}, events.TaskOverdue, payload)

	if len(sender.sent) != 3 {
		t.Fatalf("expected one delivery per overdue task, got %d", len(sender.sent))
	}

	wantProjects := []string{"Apollo", "Gemini", "Apollo"}
	wantTitles := []string{"First", "Second", "Third"}
	for i, sent := range sender.sent {
		title := sent.msg.Embeds[0].Title
		if !strings.HasPrefix(title, "**["+wantProjects[i]+"]** ") {
			t.Errorf("delivery %d: want project %q, got title %q", i, wantProjects[i], title)
		}
		if !strings.Contains(title, "**"+wantTitles[i]+"**") {
			t.Errorf("delivery %d: want task %q, got title %q", i, wantTitles[i], title)
		}
	}
}

func TestNotifyProjectOverdueBatchSurvivesOneFailure(t *testing.T) {
	prefs := &fakePrefs{
		project: map[string]string{
			"7/discord_webhook_url":  "https://hooks.example/abc",
			"7/Discord_task_overdue": "1",
		},
	}
	projects := &fakeProjects{projects: map[int64]board.Project{7: {ID: 7, Name: "Apollo"}}}
	sender := &fakeSender{failFor: "Second"}
	notifier := newNotifier(t, prefs, projects, sender, nil)

	payload := board.Payload{Tasks: []board.Task{
		{ID: 1, ProjectID: 7, Title: "First"},
		{ID: 2, ProjectID: 7, Title: "Second"},
		{ID: 3, ProjectID: 7, Title: "Third"},
	}}
	notifier.NotifyProject(context.Background(), board.Project{ID: 7, Name: "Apollo"}, events.TaskOverdue, payload)

	if len(sender.sent) != 2 {
		t.Fatalf("a failed delivery must not stop the batch, got %d sends", len(sender.sent))
	}
}

func TestNotifyProjectFallsBackToRecipientProject(t *testing.T) {
	prefs := &fakePrefs{
		project: map[string]string{
			"7/discord_webhook_url": "https://hooks.example/abc",
			"7/Discord_task_create": "1",
		},
	}
	sender := &fakeSender{}
	// empty lookup: every ProjectByID call fails
	notifier := newNotifier(t, prefs, &fakeProjects{}, sender, nil)

	notifier.NotifyProject(context.Background(), board.Project{ID: 7, Name: "Apollo"}, events.TaskCreate, taskPayload(7))

	if len(sender.sent) != 1 {
		t.Fatalf("expected fallback delivery, got %d sends", len(sender.sent))
	}
	if !strings.HasPrefix(sender.sent[0].msg.Embeds[0].Title, "**[Apollo]** ") {
		t.Fatalf("unexpected embed title: %q", sender.sent[0].msg.Embeds[0].Title)
	}
}

func TestNotifyProjectAttributesActor(t *testing.T) {
	prefs := &fakePrefs{
		project: map[string]string{
			"7/discord_webhook_url": "https://hooks.example/abc",
			"7/Discord_task_update": "1",
		},
	}
	projects := &fakeProjects{projects: map[int64]board.Project{7: {ID: 7, Name: "Apollo"}}}
	sender := &fakeSender{}
	actors := &fakeActors{actor: &message.Actor{Name: "Valentina"}}
	notifier := newNotifier(t, prefs, projects, sender, actors)

	notifier.NotifyProject(context.Background(), board.Project{ID: 7, Name: "Apollo"}, events.TaskUpdate, taskPayload(7))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(sender.sent))
	}
	embed := sender.sent[0].msg.Embeds[0]
	if embed.Author == nil || embed.Author.Name != "Valentina" {
		t.Fatalf("expected actor attribution, got %+v", embed.Author)
	}
}
