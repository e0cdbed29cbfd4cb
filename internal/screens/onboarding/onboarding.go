// Package onboarding implements the seven-step profile wizard. The user
// walks a fixed linear flow, each step gated on its required fields, and
// the final step submits the whole preference object to the backend.
package onboarding

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/profile"
	"github.com/nsharma/lingua/internal/router"
	"github.com/nsharma/lingua/internal/screen"
	"github.com/nsharma/lingua/internal/store"
	"github.com/nsharma/lingua/internal/ui/components"
	"github.com/nsharma/lingua/internal/ui/layout"
	"github.com/nsharma/lingua/internal/ui/theme"
)

// submitDoneMsg carries the outcome of the profile submission.
type submitDoneMsg struct {
	user  *api.User
	guest bool
	err   error
}

// OnboardingScreen drives the wizard UI. The draft itself lives in
// profile.Wizard; this screen owns only the input widgets and the
// submission state.
type OnboardingScreen struct {
	client   *api.Client
	identity store.IdentityRepo
	wizard   *profile.Wizard
	userID   string
	editing  bool

	focus int

	nameInput  components.TextInput
	emailInput components.TextInput
	motivation components.TextInput
	topics     components.TextInput
	dailyGoal  components.TextInput

	targetLang  components.SelectList
	nativeLang  components.SelectList
	proficiency components.SelectList
	correction  components.SelectList
	voiceSpeed  components.SelectList

	styles     components.MultiSelect
	goals      components.MultiSelect
	focusAreas components.MultiSelect
	days       components.MultiSelect
	times      components.MultiSelect

	submitting bool
	spin       components.Spinner
	errMsg     string
	blocked    bool
}

var _ screen.Screen = (*OnboardingScreen)(nil)

// New creates the wizard screen. When existing is non-nil the draft is
// seeded from it and the submission becomes a preference update for
// userID instead of a profile creation.
func New(client *api.Client, identity store.IdentityRepo, existing *profile.Profile, userID string) *OnboardingScreen {
	w := profile.NewWizard(existing)

	s := &OnboardingScreen{
		client:   client,
		identity: identity,
		wizard:   w,
		userID:   userID,
		editing:  existing != nil,
	}

	s.nameInput = components.NewTextInput("Your name", false, 60)
	s.nameInput.SetValue(w.Name)
	s.emailInput = components.NewTextInput("Email (optional)", false, 80)
	s.emailInput.SetValue(w.Email)
	s.motivation = components.NewTextInput("What drives you? (optional)", false, 120)
	s.motivation.SetValue(w.Prefs.Motivation)
	s.topics = components.NewTextInput("Topics you enjoy, comma separated (optional)", false, 120)
	s.topics.SetValue(strings.Join(w.Prefs.TopicsOfInterest, ", "))
	s.dailyGoal = components.NewTextInput("15", true, 3)
	s.dailyGoal.SetValue(fmt.Sprintf("%d", w.Prefs.DailyGoalMinutes))

	s.targetLang = components.NewSelectList(languageOptions(), w.Prefs.TargetLanguage)
	s.nativeLang = components.NewSelectList(languageOptions(), w.Prefs.NativeLanguage)
	s.proficiency = components.NewSelectList(profile.ProficiencyLevels, w.Prefs.ProficiencyLevel)
	s.correction = components.NewSelectList(profile.CorrectionStyles, w.Prefs.CorrectionStyle)
	s.voiceSpeed = components.NewSelectList(profile.VoiceSpeeds, w.Prefs.PreferredVoiceSpeed)

	s.styles = components.NewMultiSelect(profile.LearningStyles, w.Prefs.LearningStyle)
	s.goals = components.NewMultiSelect(profile.LearningGoals, w.Prefs.LearningGoals)
	s.focusAreas = components.NewMultiSelect(profile.FocusAreas, w.Prefs.FocusAreas)
	s.days = components.NewMultiSelect(profile.WeekDays, w.Prefs.AvailableDays)
	s.times = components.NewMultiSelect(profile.TimesOfDay, w.Prefs.PreferredTimeOfDay)

	return s
}

func languageOptions() []profile.Option {
	opts := make([]profile.Option, len(profile.Languages))
	for i, l := range profile.Languages {
		opts[i] = profile.Option{Value: l, Label: l}
	}
	return opts
}

func (s *OnboardingScreen) Title() string {
	if s.editing {
		return "Edit Preferences"
	}
	return "Onboarding"
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return nil
}

// controlCount is the number of tab-focusable widgets on each step.
func controlCount(step int) int {
	switch step {
	case profile.StepName:
		return 2
	case profile.StepLanguage:
		return 3
	case profile.StepLearningStyle:
		return 1
	case profile.StepGoals:
		return 3
	case profile.StepFocus:
		return 3
	case profile.StepSchedule:
		return 3
	default:
		return 0
	}
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !s.submitting {
			return s, nil
		}
		s.spin = s.spin.Advance()
		return s, s.spin.Tick()

	case submitDoneMsg:
		return s.handleSubmitDone(msg)

	case tea.KeyMsg:
		if s.submitting {
			return s, nil
		}
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *OnboardingScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.blocked = false
		s.errMsg = ""
		if !s.wizard.Prev() {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.focus = 0
		return s, nil

	case "enter":
		s.syncDraft()
		s.blocked = false
		s.errMsg = ""
		if s.wizard.OnFinalStep() {
			return s, s.submit()
		}
		if !s.wizard.Next() {
			s.blocked = true
			return s, nil
		}
		s.focus = 0
		return s, nil

	case "tab":
		if n := controlCount(s.wizard.Step); n > 0 {
			s.focus = (s.focus + 1) % n
		}
		return s, nil
	}

	s.routeKey(msg)
	s.syncDraft()
	return s, nil
}

// routeKey forwards a key to the focused widget on the current step.
func (s *OnboardingScreen) routeKey(msg tea.KeyMsg) {
	switch s.wizard.Step {
	case profile.StepName:
		if s.focus == 0 {
			s.nameInput, _ = s.nameInput.Update(msg)
		} else {
			s.emailInput, _ = s.emailInput.Update(msg)
		}
	case profile.StepLanguage:
		switch s.focus {
		case 0:
			s.targetLang = updateAndChoose(s.targetLang, msg)
		case 1:
			s.nativeLang = updateAndChoose(s.nativeLang, msg)
		case 2:
			s.proficiency = updateAndChoose(s.proficiency, msg)
		}
	case profile.StepLearningStyle:
		s.styles, _ = s.styles.Update(msg)
	case profile.StepGoals:
		switch s.focus {
		case 0:
			s.goals, _ = s.goals.Update(msg)
		case 1:
			s.motivation, _ = s.motivation.Update(msg)
		case 2:
			s.topics, _ = s.topics.Update(msg)
		}
	case profile.StepFocus:
		switch s.focus {
		case 0:
			s.focusAreas, _ = s.focusAreas.Update(msg)
		case 1:
			s.correction = updateAndChoose(s.correction, msg)
		case 2:
			s.voiceSpeed = updateAndChoose(s.voiceSpeed, msg)
		}
	case profile.StepSchedule:
		switch s.focus {
		case 0:
			s.days, _ = s.days.Update(msg)
		case 1:
			s.times, _ = s.times.Update(msg)
		case 2:
			s.dailyGoal, _ = s.dailyGoal.Update(msg)
		}
	}
}

// updateAndChoose keeps a single-choice list's chosen value pinned to
// the cursor, so moving the cursor is choosing.
func updateAndChoose(sl components.SelectList, msg tea.KeyMsg) components.SelectList {
	sl, _ = sl.Update(msg)
	if len(sl.Options) > 0 {
		sl.Chosen = sl.Options[sl.Cursor].Value
	}
	return sl
}

// syncDraft pulls widget state back into the wizard draft.
func (s *OnboardingScreen) syncDraft() {
	s.wizard.Name = s.nameInput.Value()
	s.wizard.Email = s.emailInput.Value()
	s.wizard.Prefs.TargetLanguage = s.targetLang.Chosen
	s.wizard.Prefs.NativeLanguage = s.nativeLang.Chosen
	s.wizard.Prefs.ProficiencyLevel = s.proficiency.Chosen
	s.wizard.Prefs.LearningStyle = s.styles.Chosen
	s.wizard.Prefs.LearningGoals = s.goals.Chosen
	s.wizard.Prefs.Motivation = strings.TrimSpace(s.motivation.Value())
	s.wizard.Prefs.TopicsOfInterest = splitTopics(s.topics.Value())
	s.wizard.Prefs.FocusAreas = s.focusAreas.Chosen
	s.wizard.Prefs.CorrectionStyle = s.correction.Chosen
	s.wizard.Prefs.PreferredVoiceSpeed = s.voiceSpeed.Chosen
	s.wizard.Prefs.AvailableDays = s.days.Chosen
	s.wizard.Prefs.PreferredTimeOfDay = s.times.Chosen
	if n, err := s.dailyGoal.NumericValue(); err == nil {
		s.wizard.Prefs.DailyGoalMinutes = profile.ClampDailyGoal(n)
	}
}

func splitTopics(raw string) []string {
	var topics []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// submit sends the whole draft to the backend: a preference update when
// a user id is already cached, a profile creation otherwise.
func (s *OnboardingScreen) submit() tea.Cmd {
	s.submitting = true
	draft := s.wizard.Profile()
	client := s.client
	userID := s.userID

	submitCmd := func() tea.Msg {
		ctx := context.Background()
		if userID != "" {
			res, err := client.UpdatePreferences(ctx, userID, draft.Preferences)
			if err != nil {
				return submitDoneMsg{err: err}
			}
			return submitDoneMsg{user: res.User, guest: res.IsGuest}
		}
		user, err := client.CreateProfile(ctx, draft.Name, draft.Email, draft.Preferences)
		if err != nil {
			return submitDoneMsg{err: err}
		}
		return submitDoneMsg{user: user}
	}

	return tea.Batch(submitCmd, s.spin.Tick())
}

func (s *OnboardingScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.err != nil {
		s.errMsg = fmt.Sprintf("Could not save profile: %v", msg.err)
		return s, nil
	}

	ctx := context.Background()
	if msg.user != nil && s.userID == "" {
		if err := s.identity.SetUserID(ctx, msg.user.ID); err != nil {
			s.errMsg = fmt.Sprintf("Saved remotely but could not cache locally: %v", err)
			return s, nil
		}
	}
	// Cache the backend-returned profile, which may differ from the
	// draft after server-side normalization. Guest updates persist
	// nothing remotely, so the local draft is all there is to cache.
	cached := s.wizard.Profile()
	if msg.user != nil {
		cached = &profile.Profile{
			Name:        msg.user.Name,
			Email:       msg.user.Email,
			Preferences: msg.user.Preferences,
		}
	}
	if err := s.identity.SetProfile(ctx, cached); err != nil {
		s.errMsg = fmt.Sprintf("Saved remotely but could not cache locally: %v", err)
		return s, nil
	}

	return s, tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return screen.RefreshMsg{} },
	)
}

func (s *OnboardingScreen) stepTitle() string {
	switch s.wizard.Step {
	case profile.StepName:
		return "Who are you?"
	case profile.StepLanguage:
		return "Which language are you learning?"
	case profile.StepLearningStyle:
		return "How do you learn best?"
	case profile.StepGoals:
		return "Why are you learning?"
	case profile.StepFocus:
		return "What do you want to focus on?"
	case profile.StepSchedule:
		return "When will you practice?"
	default:
		return "Review your profile"
	}
}

func (s *OnboardingScreen) View(width, height int) string {
	var b strings.Builder

	pct := float64(s.wizard.Step) / float64(profile.TotalSteps)
	bar := components.NewProgressBar(
		fmt.Sprintf("Step %d of %d", s.wizard.Step, profile.TotalSteps),
		pct, false, min(40, width-8))
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render(s.stepTitle()))
	b.WriteString("\n\n")
	b.WriteString(s.stepBody())

	if s.submitting {
		b.WriteString("\n" + s.spin.View() + " Saving your profile...")
	}
	if s.blocked {
		b.WriteString("\n" + theme.ErrorText.Render("Complete this step to continue"))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *OnboardingScreen) stepBody() string {
	label := func(i int, text string) string {
		if i == s.focus {
			return theme.Selected.Render("» " + text)
		}
		return theme.Subtitle.Render("  " + text)
	}

	switch s.wizard.Step {
	case profile.StepName:
		return label(0, "Name") + "\n" + s.nameInput.View() + "\n\n" +
			label(1, "Email") + "\n" + s.emailInput.View()
	case profile.StepLanguage:
		return label(0, "Target language") + "\n" + s.targetLang.View() + "\n" +
			label(1, "Native language") + "\n" + s.nativeLang.View() + "\n" +
			label(2, "Current level") + "\n" + s.proficiency.View()
	case profile.StepLearningStyle:
		return s.styles.View()
	case profile.StepGoals:
		return label(0, "Goals") + "\n" + s.goals.View() + "\n" +
			label(1, "Motivation") + "\n" + s.motivation.View() + "\n\n" +
			label(2, "Topics of interest") + "\n" + s.topics.View()
	case profile.StepFocus:
		return label(0, "Focus areas") + "\n" + s.focusAreas.View() + "\n" +
			label(1, "Correction style") + "\n" + s.correction.View() + "\n" +
			label(2, "Voice speed") + "\n" + s.voiceSpeed.View()
	case profile.StepSchedule:
		return label(0, "Available days") + "\n" + s.days.View() + "\n" +
			label(1, "Time of day") + "\n" + s.times.View() + "\n" +
			label(2, "Daily goal (minutes)") + "\n" + s.dailyGoal.View()
	default:
		return s.reviewBody()
	}
}

func (s *OnboardingScreen) reviewBody() string {
	p := s.wizard.Profile()
	row := func(k, v string) string {
		if v == "" {
			v = "-"
		}
		return theme.Subtitle.Render(k+": ") + theme.Body.Render(v) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("Name", p.Name))
	b.WriteString(row("Email", p.Email))
	b.WriteString(row("Learning", p.Preferences.TargetLanguage))
	b.WriteString(row("Native", p.Preferences.NativeLanguage))
	b.WriteString(row("Level", p.Preferences.ProficiencyLevel))
	b.WriteString(row("Styles", strings.Join(p.Preferences.LearningStyle, ", ")))
	b.WriteString(row("Goals", strings.Join(p.Preferences.LearningGoals, ", ")))
	b.WriteString(row("Focus", strings.Join(p.Preferences.FocusAreas, ", ")))
	b.WriteString(row("Days", strings.Join(p.Preferences.AvailableDays, ", ")))
	b.WriteString(row("Daily goal", fmt.Sprintf("%d min", p.Preferences.DailyGoalMinutes)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("enter to save"))
	return b.String()
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "enter", Description: "next"},
		{Key: "esc", Description: "back"},
		{Key: "tab", Description: "field"},
		{Key: "space", Description: "select"},
		{Key: "↑/↓", Description: "move"},
	}
}
