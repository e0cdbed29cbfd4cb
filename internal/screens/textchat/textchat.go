// Package textchat implements the text conversation screen: a setup
// form for difficulty and topic, then a scrolling transcript with an
// input line, optional speech playback of replies, and a telemetry
// footer.
package textchat

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/audio"
	"github.com/nsharma/lingua/internal/chat"
	"github.com/nsharma/lingua/internal/profile"
	"github.com/nsharma/lingua/internal/router"
	"github.com/nsharma/lingua/internal/screen"
	"github.com/nsharma/lingua/internal/store"
	"github.com/nsharma/lingua/internal/ui/components"
	"github.com/nsharma/lingua/internal/ui/layout"
	"github.com/nsharma/lingua/internal/ui/theme"
)

type phase int

const (
	phaseSetup phase = iota
	phaseChat
)

// Difficulties offered on the setup form.
var difficulties = []profile.Option{
	{Value: "beginner", Label: "Beginner", Desc: "Short, simple sentences"},
	{Value: "intermediate", Label: "Intermediate", Desc: "Everyday conversation"},
	{Value: "advanced", Label: "Advanced", Desc: "Nuanced, natural speech"},
}

// replyMsg carries the outcome of one conversation round trip.
type replyMsg struct {
	resp *api.SendMessageResponse
	err  error
}

// audioReadyMsg carries synthesized speech for the last reply.
type audioReadyMsg struct {
	data []byte
	err  error
}

// playbackDoneMsg reports a finished or failed playback.
type playbackDoneMsg struct {
	err error
}

// ChatScreen is the text conversation UI.
type ChatScreen struct {
	client   *api.Client
	events   store.EventRepo
	sounds   *audio.Manager
	userID   string
	userName string
	prefs    *profile.Preferences

	phase      phase
	difficulty components.SelectList
	topicInput components.TextInput
	setupFocus int

	conv    chat.Conversation
	input   components.TextInput
	pending bool
	spin    components.Spinner
	errMsg  string
	scroll  int

	speaking bool
}

var _ screen.Screen = (*ChatScreen)(nil)

// New creates the chat screen. The cached profile, when present, seeds
// the difficulty default and is sent along with every message so the
// backend can personalize replies.
func New(client *api.Client, events store.EventRepo, sounds *audio.Manager, userID string, cached *profile.Profile) *ChatScreen {
	s := &ChatScreen{
		client: client,
		events: events,
		sounds: sounds,
		userID: userID,
	}

	defaultDifficulty := "beginner"
	if cached != nil {
		s.userName = cached.Name
		prefs := cached.Preferences
		s.prefs = &prefs
		defaultDifficulty = difficultyFor(prefs.ProficiencyLevel)
	}

	s.difficulty = components.NewSelectList(difficulties, defaultDifficulty)
	s.topicInput = components.NewTextInput("Topic (optional)", false, 80)
	s.input = components.NewTextInput("Say something...", false, 500)

	return s
}

// difficultyFor maps a proficiency level to a conversation difficulty.
func difficultyFor(level string) string {
	switch level {
	case "intermediate", "upper_intermediate":
		return "intermediate"
	case "advanced", "proficient":
		return "advanced"
	default:
		return "beginner"
	}
}

func (s *ChatScreen) Title() string {
	return "Chat"
}

func (s *ChatScreen) Init() tea.Cmd {
	return nil
}

// Teardown stops any speech still playing when the screen leaves the
// stack.
func (s *ChatScreen) Teardown() {
	s.sounds.Stop()
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !s.pending {
			return s, nil
		}
		s.spin = s.spin.Advance()
		return s, s.spin.Tick()

	case replyMsg:
		return s.handleReply(msg)

	case audioReadyMsg:
		return s.handleAudioReady(msg)

	case playbackDoneMsg:
		s.speaking = false
		if msg.err != nil {
			s.errMsg = fmt.Sprintf("Playback failed: %v", msg.err)
		}
		return s, nil

	case tea.KeyMsg:
		if s.phase == phaseSetup {
			return s.handleSetupKey(msg)
		}
		return s.handleChatKey(msg)
	}

	return s, nil
}

func (s *ChatScreen) handleSetupKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		s.setupFocus = (s.setupFocus + 1) % 2
		return s, nil
	case "enter":
		s.phase = phaseChat
		return s, nil
	}

	if s.setupFocus == 0 {
		s.difficulty, _ = s.difficulty.Update(msg)
		s.difficulty.Chosen = s.difficulty.Options[s.difficulty.Cursor].Value
	} else {
		s.topicInput, _ = s.topicInput.Update(msg)
	}
	return s, nil
}

func (s *ChatScreen) handleChatKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		if s.pending {
			return s, nil
		}
		return s, s.send()
	case "ctrl+l":
		s.conv.Clear()
		s.errMsg = ""
		s.scroll = 0
		return s, nil
	case "ctrl+p":
		return s, s.speakLastReply()
	case "ctrl+o":
		s.sounds.Stop()
		s.speaking = false
		return s, nil
	case "pgup":
		s.scroll++
		return s, nil
	case "pgdown":
		if s.scroll > 0 {
			s.scroll--
		}
		return s, nil
	}

	if !s.pending {
		s.input, _ = s.input.Update(msg)
	}
	return s, nil
}

// send appends the user's message optimistically and fires the backend
// round trip. The message stays in the transcript even when the call
// fails; only the assistant reply is withheld.
func (s *ChatScreen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return nil
	}

	s.conv.AppendUser(text)
	s.input.SetValue("")
	s.pending = true
	s.errMsg = ""
	s.scroll = 0

	req := api.SendMessageRequest{
		Message:         text,
		Difficulty:      s.difficulty.Chosen,
		Topic:           strings.TrimSpace(s.topicInput.Value()),
		History:         s.conv.History,
		UserID:          s.userID,
		UserPreferences: s.prefs,
		UserName:        s.userName,
	}
	client := s.client

	call := func() tea.Msg {
		resp, err := client.SendMessage(context.Background(), req)
		return replyMsg{resp: resp, err: err}
	}

	return tea.Batch(call, s.spin.Tick())
}

func (s *ChatScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.pending = false

	data := store.ChatExchangeData{
		Difficulty: s.difficulty.Chosen,
		Topic:      strings.TrimSpace(s.topicInput.Value()),
		HistoryLen: len(s.conv.History),
	}

	if msg.err != nil {
		s.errMsg = fmt.Sprintf("Message failed: %v", msg.err)
		data.ErrorMessage = msg.err.Error()
		_ = s.events.AppendChatExchange(context.Background(), data)
		return s, nil
	}

	s.conv.ApplyReply(msg.resp)

	data.Success = true
	data.HistoryLen = len(s.conv.History)
	data.Compacted = msg.resp.Compacted
	if msg.resp.TokenUsage != nil {
		data.TotalTokens = msg.resp.TokenUsage.TotalTokens
		data.EstimatedCost = msg.resp.TokenUsage.EstimatedCost
	}
	_ = s.events.AppendChatExchange(context.Background(), data)

	return s, nil
}

// speakLastReply fetches synthesized speech for the most recent
// assistant message and plays it. A second invocation replaces the
// running playback rather than layering over it.
func (s *ChatScreen) speakLastReply() tea.Cmd {
	last, ok := s.conv.LastAssistant()
	if !ok {
		return nil
	}

	client := s.client
	text := last.Content
	return func() tea.Msg {
		data, err := client.Synthesize(context.Background(), text)
		return audioReadyMsg{data: data, err: err}
	}
}

func (s *ChatScreen) handleAudioReady(msg audioReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		s.errMsg = fmt.Sprintf("Speech unavailable: %v", msg.err)
		return s, nil
	}

	pb, err := s.sounds.Play(context.Background(), msg.data)
	if err != nil {
		s.errMsg = fmt.Sprintf("Playback failed: %v", err)
		return s, nil
	}

	s.speaking = true
	return s, func() tea.Msg {
		<-pb.Done()
		return playbackDoneMsg{err: pb.Err()}
	}
}

func (s *ChatScreen) View(width, height int) string {
	if s.phase == phaseSetup {
		return s.viewSetup(width, height)
	}
	return s.viewChat(width, height)
}

func (s *ChatScreen) viewSetup(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Start a conversation"))
	b.WriteString("\n\n")

	label := func(i int, text string) string {
		if i == s.setupFocus {
			return theme.Selected.Render("» " + text)
		}
		return theme.Subtitle.Render("  " + text)
	}

	b.WriteString(label(0, "Difficulty") + "\n" + s.difficulty.View() + "\n")
	b.WriteString(label(1, "Topic") + "\n" + s.topicInput.View() + "\n\n")
	b.WriteString(theme.Hint.Render("enter to start chatting"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *ChatScreen) viewChat(width, height int) string {
	transcriptHeight := height - 5
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	bubbleWidth := width * 2 / 3
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var lines []string
	for _, m := range s.conv.Messages {
		lines = append(lines, strings.Split(renderBubble(m, bubbleWidth, width), "\n")...)
		lines = append(lines, "")
	}
	if s.pending {
		lines = append(lines, s.spin.View()+" "+theme.Hint.Render("thinking..."))
	}

	// Clamp the scroll offset, then show the newest window.
	maxScroll := len(lines) - transcriptHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := len(lines) - s.scroll
	start := end - transcriptHeight
	if start < 0 {
		start = 0
	}
	transcript := strings.Join(lines[start:end], "\n")

	var footer strings.Builder
	footer.WriteString(s.input.View())
	footer.WriteString("\n")
	footer.WriteString(s.telemetryLine())
	if s.errMsg != "" {
		footer.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}

	gap := transcriptHeight - (len(lines) - start - s.scroll)
	var pad string
	if gap > 0 {
		pad = strings.Repeat("\n", gap)
	}

	return pad + transcript + "\n\n" + footer.String()
}

func renderBubble(m chat.Message, bubbleWidth, totalWidth int) string {
	style := theme.AssistantBubble
	if m.Role == chat.RoleUser {
		style = theme.UserBubble
	}
	if lipgloss.Width(m.Content) > bubbleWidth {
		style = style.Width(bubbleWidth)
	}
	rendered := style.Render(m.Content)
	if m.Role == chat.RoleUser {
		return lipgloss.PlaceHorizontal(totalWidth, lipgloss.Right, rendered)
	}
	return rendered
}

// telemetryLine renders the cosmetic usage counters.
func (s *ChatScreen) telemetryLine() string {
	t := s.conv.Telemetry
	parts := []string{
		fmt.Sprintf("%d exchanges", t.Exchanges),
		fmt.Sprintf("%d tokens", t.TotalTokens),
		fmt.Sprintf("$%.4f", t.EstimatedCost),
	}
	if t.CompactedCount > 0 {
		parts = append(parts, fmt.Sprintf("compacted ×%d", t.CompactedCount))
	}
	if s.speaking {
		parts = append(parts, "♪ playing")
	}
	return theme.Hint.Render(strings.Join(parts, "  ·  "))
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	if s.phase == phaseSetup {
		return []layout.KeyHint{
			{Key: "enter", Description: "start"},
			{Key: "tab", Description: "field"},
			{Key: "esc", Description: "back"},
		}
	}
	return []layout.KeyHint{
		{Key: "enter", Description: "send"},
		{Key: "ctrl+p", Description: "play reply"},
		{Key: "ctrl+o", Description: "stop audio"},
		{Key: "ctrl+l", Description: "clear"},
		{Key: "esc", Description: "back"},
	}
}
