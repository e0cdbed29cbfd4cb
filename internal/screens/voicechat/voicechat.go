// Package voicechat implements the realtime voice conversation screen.
// The backend issues a session descriptor, the room client connects to
// the realtime service, and the screen renders assistant state plus a
// live attributed transcript. Ending the session is reported to the
// backend exactly once no matter how the screen is left.
package voicechat

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
	"github.com/nsharma/lingua/internal/voice"
)

type phase int

const (
	phaseSetup phase = iota
	phaseStarting
	phaseConnecting
	phaseLive
	phaseEnded
)

var difficulties = []profile.Option{
	{Value: "beginner", Label: "Beginner"},
	{Value: "intermediate", Label: "Intermediate"},
	{Value: "advanced", Label: "Advanced"},
}

// startedMsg carries the backend's session descriptor.
type startedMsg struct {
	info *api.VoiceSessionInfo
	err  error
}

// connectedMsg carries the established room connection.
type connectedMsg struct {
	room voice.Room
	err  error
}

// roomEventMsg carries one event from the room stream. ok is false once
// the stream is closed.
type roomEventMsg struct {
	ev voice.Event
	ok bool
}

// transcriptLine is one attributed line of the live transcript.
// Non-final lines are replaced in place as the transcription firms up.
type transcriptLine struct {
	speaker voice.Speaker
	text    string
	final   bool
}

// VoiceScreen drives a voice session from setup through teardown.
type VoiceScreen struct {
	client *api.Client
	rooms  voice.RoomClient
	events store.EventRepo
	userID string

	phase      phase
	difficulty components.SelectList
	topicInput components.TextInput
	setupFocus int

	session    *voice.Session
	room       voice.Room
	attr       *voice.Attributor
	assistant  voice.AssistantState
	transcript []transcriptLine

	spin   components.Spinner
	errMsg string
}

var _ screen.Screen = (*VoiceScreen)(nil)

// New creates the voice screen. The cached profile seeds the difficulty
// default the same way the text chat does.
func New(client *api.Client, rooms voice.RoomClient, events store.EventRepo, userID string, cached *profile.Profile) *VoiceScreen {
	defaultDifficulty := "beginner"
	if cached != nil {
		switch cached.Preferences.ProficiencyLevel {
		case "intermediate", "upper_intermediate":
			defaultDifficulty = "intermediate"
		case "advanced", "proficient":
			defaultDifficulty = "advanced"
		}
	}

	s := &VoiceScreen{
		client:    client,
		rooms:     rooms,
		events:    events,
		userID:    userID,
		attr:      voice.NewAttributor(),
		assistant: voice.StateIdle,
	}
	s.difficulty = components.NewSelectList(difficulties, defaultDifficulty)
	s.topicInput = components.NewTextInput("Topic (optional)", false, 80)
	return s
}

func (s *VoiceScreen) Title() string {
	return "Voice"
}

func (s *VoiceScreen) Init() tea.Cmd {
	return nil
}

// Teardown closes the room and reports the session end. Session.End is
// idempotent, so the explicit-end and teardown paths cannot double
// report.
func (s *VoiceScreen) Teardown() {
	if s.room != nil {
		_ = s.room.Close()
	}
	if s.session != nil {
		s.session.End()
	}
}

func (s *VoiceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if s.phase != phaseStarting && s.phase != phaseConnecting {
			return s, nil
		}
		s.spin = s.spin.Advance()
		return s, s.spin.Tick()

	case startedMsg:
		return s.handleStarted(msg)

	case connectedMsg:
		return s.handleConnected(msg)

	case roomEventMsg:
		return s.handleRoomEvent(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *VoiceScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseSetup:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.setupFocus = (s.setupFocus + 1) % 2
			return s, nil
		case "enter":
			return s, s.start()
		}
		if s.setupFocus == 0 {
			s.difficulty, _ = s.difficulty.Update(msg)
			s.difficulty.Chosen = s.difficulty.Options[s.difficulty.Cursor].Value
		} else {
			s.topicInput, _ = s.topicInput.Update(msg)
		}
		return s, nil

	case phaseLive:
		if msg.String() == "esc" {
			s.endSession()
			s.phase = phaseEnded
			return s, nil
		}
		return s, nil

	default:
		// Starting, connecting and ended phases only accept leaving.
		if msg.String() == "esc" || (s.phase == phaseEnded && msg.String() == "enter") {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}
}

// start asks the backend for a session descriptor.
func (s *VoiceScreen) start() tea.Cmd {
	s.phase = phaseStarting
	s.errMsg = ""

	req := api.StartSessionRequest{
		Type:       "free",
		Difficulty: s.difficulty.Chosen,
		Topic:      strings.TrimSpace(s.topicInput.Value()),
		UserID:     s.userID,
	}
	client := s.client

	call := func() tea.Msg {
		info, err := client.StartVoiceSession(context.Background(), req)
		return startedMsg{info: info, err: err}
	}
	return tea.Batch(call, s.spin.Tick())
}

func (s *VoiceScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		s.phase = phaseSetup
		s.errMsg = fmt.Sprintf("Could not start session: %v", msg.err)
		return s, nil
	}

	s.session = voice.NewSession(*msg.info, s.client, s.events)
	_ = s.events.AppendVoiceSession(context.Background(), store.KindVoiceSessionStart, store.VoiceSessionData{
		SessionID:  msg.info.SessionID,
		RoomName:   msg.info.RoomName,
		Difficulty: s.difficulty.Chosen,
	})

	s.phase = phaseConnecting
	rooms := s.rooms
	info := *msg.info
	connect := func() tea.Msg {
		room, err := rooms.Connect(context.Background(), info)
		return connectedMsg{room: room, err: err}
	}
	return s, connect
}

func (s *VoiceScreen) handleConnected(msg connectedMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		// The backend session was already started; report its end even
		// though the room never came up.
		s.endSession()
		s.phase = phaseEnded
		s.errMsg = fmt.Sprintf("Could not join the room: %v", msg.err)
		return s, nil
	}

	s.room = msg.room
	s.phase = phaseLive
	return s, s.waitForEvent()
}

// waitForEvent blocks on the room stream for the next event.
func (s *VoiceScreen) waitForEvent() tea.Cmd {
	room := s.room
	return func() tea.Msg {
		ev, ok := <-room.Events()
		return roomEventMsg{ev: ev, ok: ok}
	}
}

func (s *VoiceScreen) handleRoomEvent(msg roomEventMsg) (screen.Screen, tea.Cmd) {
	if !msg.ok {
		s.endSession()
		if s.phase == phaseLive {
			s.phase = phaseEnded
		}
		return s, nil
	}

	switch ev := msg.ev.(type) {
	case voice.ConnectedEvent:
		// Already live; nothing to update.

	case voice.StateEvent:
		s.assistant = ev.State

	case voice.LocalTrackEvent:
		s.attr.AddLocalTrack(ev.TrackID)

	case voice.TranscriptionEvent:
		s.applyTranscription(ev)

	case voice.DisconnectedEvent:
		s.endSession()
		s.phase = phaseEnded
		if ev.Err != nil {
			s.errMsg = fmt.Sprintf("Connection lost: %v", ev.Err)
		}
		return s, nil
	}

	return s, s.waitForEvent()
}

// applyTranscription folds a transcription event into the transcript.
// Partial lines from the same speaker replace each other until a final
// one lands.
func (s *VoiceScreen) applyTranscription(ev voice.TranscriptionEvent) {
	speaker := s.attr.Attribute(ev.TrackID)

	for i := len(s.transcript) - 1; i >= 0; i-- {
		line := s.transcript[i]
		if line.final {
			break
		}
		if line.speaker == speaker {
			s.transcript[i] = transcriptLine{speaker: speaker, text: ev.Text, final: ev.Final}
			return
		}
	}

	s.transcript = append(s.transcript, transcriptLine{speaker: speaker, text: ev.Text, final: ev.Final})
}

// endSession closes the room and fires the exactly-once backend end
// notification.
func (s *VoiceScreen) endSession() {
	if s.room != nil {
		_ = s.room.Close()
	}
	if s.session != nil {
		s.session.End()
	}
}

func (s *VoiceScreen) View(width, height int) string {
	switch s.phase {
	case phaseSetup:
		return s.viewSetup(width, height)
	case phaseStarting:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.spin.View()+" Starting session...")
	case phaseConnecting:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.spin.View()+" Joining the room...")
	case phaseEnded:
		return s.viewEnded(width, height)
	default:
		return s.viewLive(width, height)
	}
}

func (s *VoiceScreen) viewSetup(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Voice conversation"))
	b.WriteString("\n\n")

	label := func(i int, text string) string {
		if i == s.setupFocus {
			return theme.Selected.Render("» " + text)
		}
		return theme.Subtitle.Render("  " + text)
	}

	b.WriteString(label(0, "Difficulty") + "\n" + s.difficulty.View() + "\n")
	b.WriteString(label(1, "Topic") + "\n" + s.topicInput.View() + "\n\n")
	b.WriteString(theme.Hint.Render("enter to start talking"))
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *VoiceScreen) viewLive(width, height int) string {
	var b strings.Builder

	b.WriteString(renderAssistantState(s.assistant))
	b.WriteString("\n\n")

	transcriptHeight := height - 6
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	lines := s.transcript
	if len(lines) > transcriptHeight {
		lines = lines[len(lines)-transcriptHeight:]
	}
	for _, line := range lines {
		who := theme.Subtitle.Render("You")
		if line.speaker == voice.SpeakerAssistant {
			who = theme.Selected.Render("Tutor")
		}
		text := line.text
		if !line.final {
			text += " …"
		}
		b.WriteString(who + "  " + theme.Body.Render(text) + "\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *VoiceScreen) viewEnded(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Session ended"))
	b.WriteString("\n\n")
	finals := 0
	for _, line := range s.transcript {
		if line.final {
			finals++
		}
	}
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d transcript lines", finals)))
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}
	b.WriteString("\n\n" + theme.Hint.Render("enter to go back"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderAssistantState shows what the assistant is doing right now.
func renderAssistantState(state voice.AssistantState) string {
	switch state {
	case voice.StateListening:
		return theme.SuccessText.Render("● Listening")
	case voice.StateThinking:
		return theme.Selected.Render("◐ Thinking")
	case voice.StateSpeaking:
		return theme.Selected.Render("▶ Speaking")
	default:
		return theme.Subtitle.Render("○ Idle")
	}
}

func (s *VoiceScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseSetup:
		return []layout.KeyHint{
			{Key: "enter", Description: "start"},
			{Key: "tab", Description: "field"},
			{Key: "esc", Description: "back"},
		}
	case phaseLive:
		return []layout.KeyHint{
			{Key: "esc", Description: "end session"},
		}
	default:
		return []layout.KeyHint{
			{Key: "esc", Description: "back"},
		}
	}
}
