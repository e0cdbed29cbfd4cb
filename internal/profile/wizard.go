package profile

import "strings"

// Wizard step identifiers. The onboarding flow is a fixed linear state
// machine: forward/back transitions only, no skipping.
const (
	StepName = iota + 1
	StepLanguage
	StepLearningStyle
	StepGoals
	StepFocus
	StepSchedule
	StepReview

	TotalSteps = 7
)

// Wizard holds the onboarding state: the current step plus the draft
// profile being assembled. Advancement past a step is gated by that
// step's completeness predicate.
type Wizard struct {
	Step  int
	Name  string
	Email string
	Prefs Preferences
}

// NewWizard starts a wizard at step 1, seeded with existing profile
// data when the user is editing rather than creating.
func NewWizard(existing *Profile) *Wizard {
	w := &Wizard{
		Step:  StepName,
		Prefs: DefaultPreferences(),
	}
	if existing != nil {
		w.Name = existing.Name
		w.Email = existing.Email
		w.Prefs = existing.Preferences
		fillPreferenceDefaults(&w.Prefs)
	}
	return w
}

func fillPreferenceDefaults(p *Preferences) {
	def := DefaultPreferences()
	if p.NativeLanguage == "" {
		p.NativeLanguage = def.NativeLanguage
	}
	if p.ProficiencyLevel == "" {
		p.ProficiencyLevel = def.ProficiencyLevel
	}
	if p.DailyGoalMinutes == 0 {
		p.DailyGoalMinutes = def.DailyGoalMinutes
	}
	if p.PreferredVoiceSpeed == "" {
		p.PreferredVoiceSpeed = def.PreferredVoiceSpeed
	}
	if p.CorrectionStyle == "" {
		p.CorrectionStyle = def.CorrectionStyle
	}
}

// gate is the per-step completeness predicate table. Steps without an
// entry have no gating predicate.
var gate = map[int]func(*Wizard) bool{
	StepName:          func(w *Wizard) bool { return strings.TrimSpace(w.Name) != "" },
	StepLanguage:      func(w *Wizard) bool { return w.Prefs.TargetLanguage != "" },
	StepLearningStyle: func(w *Wizard) bool { return len(w.Prefs.LearningStyle) > 0 },
	StepGoals:         func(w *Wizard) bool { return len(w.Prefs.LearningGoals) > 0 },
	StepFocus:         func(w *Wizard) bool { return len(w.Prefs.FocusAreas) > 0 },
	StepSchedule:      func(w *Wizard) bool { return len(w.Prefs.AvailableDays) > 0 },
}

// CanProceed reports whether the current step's required fields are
// filled. Step 7 always allows proceeding to submit.
func (w *Wizard) CanProceed() bool {
	g, ok := gate[w.Step]
	if !ok {
		return true
	}
	return g(w)
}

// Next advances to the following step if the current step's predicate
// passes. Returns false when blocked or already on the final step.
func (w *Wizard) Next() bool {
	if w.Step >= StepReview || !w.CanProceed() {
		return false
	}
	w.Step++
	return true
}

// Prev moves back one step. Returns false on the first step.
func (w *Wizard) Prev() bool {
	if w.Step <= StepName {
		return false
	}
	w.Step--
	return true
}

// OnFinalStep reports whether the wizard is at the review/submit step.
func (w *Wizard) OnFinalStep() bool {
	return w.Step == StepReview
}

// Toggle flips membership of value in the given set-valued field.
// Ordering carries no significance beyond display.
func Toggle(set []string, value string) []string {
	for i, v := range set {
		if v == value {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, value)
}

// Contains reports set membership.
func Contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// ClampDailyGoal bounds the daily goal to the allowed range.
func ClampDailyGoal(minutes int) int {
	if minutes < MinDailyGoal {
		return MinDailyGoal
	}
	if minutes > MaxDailyGoal {
		return MaxDailyGoal
	}
	return minutes
}

// Profile materializes the wizard draft as a cacheable profile.
func (w *Wizard) Profile() *Profile {
	return &Profile{
		Name:        strings.TrimSpace(w.Name),
		Email:       strings.TrimSpace(w.Email),
		Preferences: w.Prefs,
	}
}
