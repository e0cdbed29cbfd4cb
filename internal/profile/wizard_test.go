package profile

import (
	"reflect"
	"testing"
)

func completeWizard() *Wizard {
	return &Wizard{
		Step: StepName,
		Name: "Maya",
		Prefs: Preferences{
			TargetLanguage:   "Spanish",
			NativeLanguage:   "English",
			ProficiencyLevel: "beginner",
			LearningStyle:    []string{"conversational"},
			LearningGoals:    []string{"travel"},
			FocusAreas:       []string{"speaking"},
			AvailableDays:    []string{"monday"},
			DailyGoalMinutes: 15,
		},
	}
}

func TestWizardGating(t *testing.T) {
	tests := []struct {
		name  string
		strip func(*Wizard)
		step  int
	}{
		{"empty name", func(w *Wizard) { w.Name = "   " }, StepName},
		{"no target language", func(w *Wizard) { w.Prefs.TargetLanguage = "" }, StepLanguage},
		{"no learning style", func(w *Wizard) { w.Prefs.LearningStyle = nil }, StepLearningStyle},
		{"no goals", func(w *Wizard) { w.Prefs.LearningGoals = nil }, StepGoals},
		{"no focus areas", func(w *Wizard) { w.Prefs.FocusAreas = nil }, StepFocus},
		{"no available days", func(w *Wizard) { w.Prefs.AvailableDays = nil }, StepSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := completeWizard()
			w.Step = tt.step
			if !w.CanProceed() {
				t.Fatal("complete wizard should pass every gate")
			}
			tt.strip(w)
			if w.CanProceed() {
				t.Errorf("step %d should be gated", tt.step)
			}
			if w.Next() {
				t.Error("Next should refuse while gated")
			}
			if w.Step != tt.step {
				t.Errorf("blocked Next moved the step to %d", w.Step)
			}
		})
	}
}

func TestWizardWalksAllSteps(t *testing.T) {
	w := completeWizard()
	for i := StepName; i < StepReview; i++ {
		if !w.Next() {
			t.Fatalf("Next failed at step %d", i)
		}
	}
	if !w.OnFinalStep() {
		t.Fatalf("expected final step, got %d", w.Step)
	}
	if w.Next() {
		t.Error("Next past the review step should refuse")
	}

	for i := StepReview; i > StepName; i-- {
		if !w.Prev() {
			t.Fatalf("Prev failed at step %d", i)
		}
	}
	if w.Prev() {
		t.Error("Prev on the first step should refuse")
	}
}

func TestNewWizardSeedsDefaults(t *testing.T) {
	w := NewWizard(nil)
	if w.Step != StepName {
		t.Errorf("Step = %d, want %d", w.Step, StepName)
	}
	if w.Prefs.NativeLanguage != "English" {
		t.Errorf("NativeLanguage = %q, want English", w.Prefs.NativeLanguage)
	}
	if w.Prefs.DailyGoalMinutes != 15 {
		t.Errorf("DailyGoalMinutes = %d, want 15", w.Prefs.DailyGoalMinutes)
	}
}

func TestNewWizardSeedsFromExisting(t *testing.T) {
	existing := &Profile{
		Name:  "Maya",
		Email: "maya@example.com",
		Preferences: Preferences{
			TargetLanguage: "Japanese",
			LearningGoals:  []string{"work"},
		},
	}
	w := NewWizard(existing)
	if w.Name != "Maya" || w.Email != "maya@example.com" {
		t.Errorf("identity not seeded: %q %q", w.Name, w.Email)
	}
	if w.Prefs.TargetLanguage != "Japanese" {
		t.Errorf("TargetLanguage = %q", w.Prefs.TargetLanguage)
	}
	// Zero-valued scalar fields are filled back in with defaults.
	if w.Prefs.ProficiencyLevel != "beginner" {
		t.Errorf("ProficiencyLevel = %q, want beginner", w.Prefs.ProficiencyLevel)
	}
	if w.Prefs.CorrectionStyle != "gentle" {
		t.Errorf("CorrectionStyle = %q, want gentle", w.Prefs.CorrectionStyle)
	}
}

func TestToggle(t *testing.T) {
	set := []string{}
	set = Toggle(set, "speaking")
	set = Toggle(set, "grammar")
	if !reflect.DeepEqual(set, []string{"speaking", "grammar"}) {
		t.Fatalf("after adds: %v", set)
	}
	set = Toggle(set, "speaking")
	if !reflect.DeepEqual(set, []string{"grammar"}) {
		t.Fatalf("after remove: %v", set)
	}
	if Contains(set, "speaking") {
		t.Error("speaking should be gone")
	}
	if !Contains(set, "grammar") {
		t.Error("grammar should remain")
	}
}

func TestClampDailyGoal(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, MinDailyGoal},
		{4, MinDailyGoal},
		{5, 5},
		{60, 60},
		{120, 120},
		{121, MaxDailyGoal},
		{999, MaxDailyGoal},
	}
	for _, tt := range tests {
		if got := ClampDailyGoal(tt.in); got != tt.want {
			t.Errorf("ClampDailyGoal(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWizardProfileTrims(t *testing.T) {
	w := completeWizard()
	w.Name = "  Maya  "
	w.Email = " maya@example.com "
	p := w.Profile()
	if p.Name != "Maya" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Email != "maya@example.com" {
		t.Errorf("Email = %q", p.Email)
	}
}
