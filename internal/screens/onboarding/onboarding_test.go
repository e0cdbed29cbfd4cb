package onboarding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/profile"
)

// fakeIdentity records identity cache writes.
type fakeIdentity struct {
	userIDs  []string
	profiles []*profile.Profile
}

func (f *fakeIdentity) UserID(ctx context.Context) (string, bool) {
	if len(f.userIDs) == 0 {
		return "", false
	}
	return f.userIDs[len(f.userIDs)-1], true
}

func (f *fakeIdentity) SetUserID(ctx context.Context, id string) error {
	f.userIDs = append(f.userIDs, id)
	return nil
}

func (f *fakeIdentity) Profile(ctx context.Context) (*profile.Profile, bool) {
	if len(f.profiles) == 0 {
		return nil, false
	}
	return f.profiles[len(f.profiles)-1], true
}

func (f *fakeIdentity) SetProfile(ctx context.Context, p *profile.Profile) error {
	f.profiles = append(f.profiles, p)
	return nil
}

func (f *fakeIdentity) Clear(ctx context.Context) error {
	f.userIDs = nil
	f.profiles = nil
	return nil
}

// runSubmit executes the submission command and returns its result
// message, unpacking the batch the command is wrapped in.
func runSubmit(t *testing.T, s *OnboardingScreen) submitDoneMsg {
	t.Helper()
	cmd := s.submit()
	if cmd == nil {
		t.Fatal("submit returned nil command")
	}
	msgs := []tea.Msg{cmd()}
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		switch m := msg.(type) {
		case submitDoneMsg:
			return m
		case tea.BatchMsg:
			for _, c := range m {
				msgs = append(msgs, c())
			}
		}
	}
	t.Fatal("no submission result in command output")
	return submitDoneMsg{}
}

func TestSubmitCreatesProfileForNewUser(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		var req struct {
			Name        string              `json:"name"`
			Preferences profile.Preferences `json:"preferences"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Name != "Nina" {
			t.Errorf("request name = %q", req.Name)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id":          "u-new",
				"name":        "Nina B.",
				"preferences": req.Preferences,
			},
		})
	}))
	defer server.Close()

	repo := &fakeIdentity{}
	s := New(api.New(server.URL, 5*time.Second), repo, nil, "")
	s.wizard.Name = "Nina"
	s.wizard.Prefs.TargetLanguage = "Spanish"

	_, cmd := s.Update(runSubmit(t, s))

	if gotMethod != http.MethodPost || gotPath != "/api/users/profile" {
		t.Errorf("backend saw %s %s, want POST /api/users/profile", gotMethod, gotPath)
	}
	if len(repo.userIDs) != 1 || repo.userIDs[0] != "u-new" {
		t.Errorf("cached user ids = %v, want [u-new]", repo.userIDs)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("cached %d profiles, want 1", len(repo.profiles))
	}
	if got := repo.profiles[0].Name; got != "Nina B." {
		t.Errorf("cached profile name = %q, want the backend-returned name", got)
	}
	if s.errMsg != "" {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if cmd == nil {
		t.Error("expected a navigation command after success")
	}
}

func TestSubmitUpdatesPreferencesForKnownUser(t *testing.T) {
	var gotPath, gotMethod, gotUserID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		var req struct {
			UserID      string              `json:"userId"`
			Preferences profile.Preferences `json:"preferences"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotUserID = req.UserID
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id":          req.UserID,
				"name":        "Nina",
				"preferences": req.Preferences,
			},
			"isGuest": false,
		})
	}))
	defer server.Close()

	existing := &profile.Profile{Name: "Nina", Preferences: profile.DefaultPreferences()}
	repo := &fakeIdentity{}
	s := New(api.New(server.URL, 5*time.Second), repo, existing, "u1")
	s.wizard.Prefs.TargetLanguage = "French"

	s.Update(runSubmit(t, s))

	if gotMethod != http.MethodPut || gotPath != "/api/users/preferences" {
		t.Errorf("backend saw %s %s, want PUT /api/users/preferences", gotMethod, gotPath)
	}
	if gotUserID != "u1" {
		t.Errorf("request userId = %q, want u1", gotUserID)
	}
	if len(repo.userIDs) != 0 {
		t.Errorf("SetUserID called with %v for an already identified user", repo.userIDs)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("cached %d profiles, want 1", len(repo.profiles))
	}
	if got := repo.profiles[0].Preferences.TargetLanguage; got != "French" {
		t.Errorf("cached target language = %q, want French", got)
	}
}

func TestSubmitGuestUpdateCachesDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"isGuest": true})
	}))
	defer server.Close()

	existing := &profile.Profile{Name: "Guest", Preferences: profile.DefaultPreferences()}
	repo := &fakeIdentity{}
	s := New(api.New(server.URL, 5*time.Second), repo, existing, "guest_abc")
	s.wizard.Prefs.TargetLanguage = "German"

	s.Update(runSubmit(t, s))

	if len(repo.userIDs) != 0 {
		t.Errorf("SetUserID called with %v on the guest path", repo.userIDs)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("cached %d profiles, want 1", len(repo.profiles))
	}
	if got := repo.profiles[0].Preferences.TargetLanguage; got != "German" {
		t.Errorf("cached target language = %q, want the local draft value", got)
	}
}

func TestSubmitErrorKeepsScreen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	repo := &fakeIdentity{}
	s := New(api.New(server.URL, 5*time.Second), repo, nil, "")
	s.wizard.Name = "Nina"

	_, cmd := s.Update(runSubmit(t, s))

	if s.errMsg == "" {
		t.Error("expected an error message after a failed submission")
	}
	if cmd != nil {
		t.Error("failed submission should not navigate away")
	}
	if len(repo.userIDs) != 0 || len(repo.profiles) != 0 {
		t.Errorf("identity cache written on failure: ids=%v profiles=%d", repo.userIDs, len(repo.profiles))
	}
}
