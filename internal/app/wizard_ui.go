package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"onboard-project/internal/domain"
)

type wizardKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Advance   key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Back, k.NextField, k.Help, k.Quit}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Advance, k.Back},
		{k.Help, k.Quit},
	}
}

func defaultWizardKeyMap() wizardKeyMap {
	return wizardKeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next/submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

var (
	wizTextColor      = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
	wizMutedTextColor = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#8B949E"}
	wizBorderColor    = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"}
	wizAccentColor    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	wizSuccessColor   = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	wizErrorColor     = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}

	wizPageStyle = lipgloss.NewStyle().Padding(1, 2)

	wizBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("31")).
			Padding(0, 1)

	wizHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(wizTextColor)
	wizLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(wizTextColor)
	wizHintStyle   = lipgloss.NewStyle().Foreground(wizMutedTextColor)
	wizErrorStyle  = lipgloss.NewStyle().Foreground(wizErrorColor)
	wizDoneStyle   = lipgloss.NewStyle().Foreground(wizSuccessColor).Bold(true)

	wizPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(wizBorderColor).
			Padding(0, 2)

	wizAlertStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(wizErrorColor).
			PaddingLeft(1)

	wizFieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(wizBorderColor).
			PaddingLeft(1)

	wizFieldFocusStyle = wizFieldStyle.BorderForeground(wizAccentColor)

	wizInputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(wizBorderColor).
			Padding(0, 1)

	wizInputFocusStyle = wizInputStyle.BorderForeground(wizAccentColor)

	wizChipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(wizBorderColor).
			Foreground(wizMutedTextColor).
			Padding(0, 1)

	wizChipActiveStyle = wizChipStyle.
				BorderForeground(wizAccentColor).
				Foreground(wizTextColor).
				Bold(true)

	wizProgressFill  = lipgloss.NewStyle().Foreground(wizAccentColor)
	wizProgressTrack = lipgloss.NewStyle().Foreground(wizBorderColor)
)

type wizardField struct {
	path  domain.FieldPath
	label string
	hint  string
	input textinput.Model
}

type fetchIntent int

const (
	fetchResolve fetchIntent = iota
	fetchAdvance
)

type configFetchedMsg struct {
	pages     domain.Pages
	err       error
	intent    fetchIntent
	requested int
}

type submitResultMsg struct {
	id  string
	err error
}

type wizardModel struct {
	input WizardInput

	session *domain.Session
	pages   domain.Pages
	loaded  bool

	step   int
	fields []wizardField
	focus  int

	fieldErrs domain.FieldErrors
	errorText string

	saving       bool
	submitted    bool
	submissionID string
	confirmQuit  bool

	width  int
	height int

	help help.Model
	keys wizardKeyMap
}

func runWizardInteractive(input WizardInput) (WizardResult, error) {
	model := newWizardModel(input)
	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return WizardResult{}, err
	}
	m, ok := finalModel.(*wizardModel)
	if !ok {
		return WizardResult{}, fmt.Errorf("unexpected wizard model type %T", finalModel)
	}
	if !m.submitted {
		return WizardResult{Completed: false}, nil
	}
	return WizardResult{Completed: true, SubmissionID: m.submissionID}, nil
}

func newWizardModel(input WizardInput) *wizardModel {
	return &wizardModel{
		input:   input,
		session: domain.NewSession(),
		step:    domain.StepAccount,
		help:    help.New(),
		keys:    defaultWizardKeyMap(),
	}
}

func (m *wizardModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchConfig(fetchResolve, domain.StepAccount))
}

// fetchConfig re-reads the configuration before every navigation check, so
// an admin edit made mid-session is honored at the next transition.
func (m *wizardModel) fetchConfig(intent fetchIntent, requested int) tea.Cmd {
	source := m.input.Source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pages, err := source.FetchConfig(ctx)
		return configFetchedMsg{pages: pages, err: err, intent: intent, requested: requested}
	}
}

func (m *wizardModel) submitCmd() tea.Cmd {
	submit := m.input.Submit
	session := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		id, err := submit(ctx, session)
		return submitResultMsg{id: id, err: err}
	}
}

func (m *wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case configFetchedMsg:
		if msg.err != nil {
			m.errorText = msg.err.Error()
			return m, nil
		}
		m.pages = msg.pages
		m.loaded = true
		switch msg.intent {
		case fetchAdvance:
			m.advance()
		default:
			m.moveToStep(domain.ResolveStep(m.pages, m.session, msg.requested))
		}
		return m, nil

	case submitResultMsg:
		m.saving = false
		if msg.err != nil {
			var verr *domain.ValidationError
			switch {
			case errors.As(msg.err, &verr):
				m.fieldErrs = verr.Fields
				// A field required on an earlier step may have been
				// emptied or newly required; the guard decides where
				// the user actually belongs now.
				m.moveToStep(domain.ResolveStep(m.pages, m.session, m.step))
			case errors.Is(msg.err, ErrSubmissionInFlight):
				// Ignore; the running attempt will report.
			default:
				m.errorText = msg.err.Error()
			}
			return m, nil
		}
		m.submitted = true
		m.submissionID = msg.id
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if !m.dirty() || m.confirmQuit {
				return m, tea.Quit
			}
			m.confirmQuit = true
			m.errorText = "Unsaved answers. Press Ctrl+C again to quit."
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		m.confirmQuit = false

		if m.saving || !m.loaded {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			if m.step > domain.StepAccount {
				return m, m.fetchConfig(fetchResolve, domain.PrevStep(m.step))
			}
			return m, nil
		case key.Matches(msg, m.keys.Advance):
			if m.step < domain.StepCount {
				return m, m.fetchConfig(fetchAdvance, m.step)
			}
			m.saving = true
			m.errorText = ""
			return m, m.submitCmd()
		case key.Matches(msg, m.keys.NextField):
			m.focusField(m.focus + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevField):
			m.focusField(m.focus - 1)
			return m, nil
		}
	}

	return m, m.updateFocusedInput(msg)
}

func (m *wizardModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	var cmd tea.Cmd
	field := &m.fields[m.focus]
	field.input, cmd = field.input.Update(msg)
	m.session.SetValue(field.path, field.input.Value())
	delete(m.fieldErrs, field.path)
	return cmd
}

// advance validates the current step against the just-fetched
// configuration and moves forward on success.
func (m *wizardModel) advance() {
	next, errs := domain.NextStep(m.pages, m.session, m.step)
	if errs != nil {
		m.fieldErrs = errs
		// The configuration may have changed since the fields were built.
		m.rebuildFields()
		return
	}
	m.moveToStep(domain.ResolveStep(m.pages, m.session, next))
}

func (m *wizardModel) moveToStep(step int) {
	if step != m.step {
		m.fieldErrs = nil
	}
	m.step = step
	m.errorText = ""
	m.rebuildFields()
}

func (m *wizardModel) dirty() bool {
	for _, f := range m.fields {
		if f.input.Value() != "" {
			return true
		}
	}
	return domain.Filled(m.session.Value(domain.FieldEmail)) || domain.Filled(m.session.Value(domain.FieldPassword))
}

func (m *wizardModel) rebuildFields() {
	m.fields = nil
	if m.step == domain.StepAccount {
		m.appendField(domain.FieldEmail, "Email", "you@example.com", false)
		m.appendField(domain.FieldPassword, "Password", "at least 6 characters", true)
	} else {
		for _, id := range m.pages.ComponentsOn(m.step) {
			for _, path := range domain.Fields(id) {
				label, hint := fieldLabel(path)
				m.appendField(path, label, hint, false)
			}
		}
	}
	m.focus = 0
	m.focusField(0)
}

func (m *wizardModel) appendField(path domain.FieldPath, label, placeholder string, secret bool) {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 256
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	in.SetValue(m.session.Value(path))
	m.fields = append(m.fields, wizardField{path: path, label: label, hint: placeholder, input: in})
}

func (m *wizardModel) focusField(index int) {
	if len(m.fields) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(m.fields)-1 {
		index = len(m.fields) - 1
	}
	m.focus = index
	for i := range m.fields {
		if i == index {
			m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
}

func fieldLabel(path domain.FieldPath) (string, string) {
	switch path {
	case "about.bio":
		return "Bio", "a few words about yourself (optional)"
	case "address.line1":
		return "Address line 1", ""
	case "address.line2":
		return "Address line 2", "optional"
	case "address.city":
		return "City", ""
	case "address.state":
		return "State", ""
	case "address.zip":
		return "ZIP", ""
	case "birthdate.date":
		return "Birthdate", "YYYY-MM-DD"
	default:
		return string(path), ""
	}
}

func componentTitle(id domain.ComponentID) string {
	switch id {
	case domain.ComponentAbout:
		return "About Me"
	case domain.ComponentAddress:
		return "Address"
	case domain.ComponentBirthdate:
		return "Birthdate"
	default:
		return string(id)
	}
}

func (m *wizardModel) stepTitle(step int) string {
	if step == domain.StepAccount {
		return "Account"
	}
	components := m.pages.ComponentsOn(step)
	if len(components) == 0 {
		return fmt.Sprintf("Step %d", step)
	}
	titles := make([]string, len(components))
	for i, id := range components {
		titles[i] = componentTitle(id)
	}
	return strings.Join(titles, " & ")
}

func (m *wizardModel) stepsHeader() string {
	parts := make([]string, 0, domain.StepCount)
	for step := 1; step <= domain.StepCount; step++ {
		label := fmt.Sprintf("%d %s", step, m.stepTitle(step))
		style := wizChipStyle
		if step == m.step {
			style = wizChipActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
}

func (m *wizardModel) progressBar() string {
	const width = 30
	filled := (m.step - 1) * width / (domain.StepCount - 1)
	bar := wizProgressFill.Render(strings.Repeat("█", filled)) +
		wizProgressTrack.Render(strings.Repeat("░", width-filled))
	return bar + "  " + wizHintStyle.Render(fmt.Sprintf("Step %d of %d", m.step, domain.StepCount))
}

func (m *wizardModel) View() string {
	var b strings.Builder

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		wizBadgeStyle.Render("onboard"),
		" "+wizHeaderStyle.Render("onboarding"),
	)
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(m.stepsHeader())
	b.WriteString("\n")
	b.WriteString(m.progressBar())
	b.WriteString("\n\n")

	switch {
	case !m.loaded && m.errorText == "":
		b.WriteString(wizHintStyle.Render("Loading configuration…"))
	case m.submitted:
		b.WriteString(wizDoneStyle.Render("All done. Welcome aboard!"))
	default:
		b.WriteString(wizPanelStyle.Render(m.viewFields()))
	}
	b.WriteString("\n")

	if m.saving {
		b.WriteString(wizHintStyle.Render("Submitting…"))
		b.WriteString("\n")
	}
	if m.errorText != "" {
		b.WriteString(wizAlertStyle.Render(wizErrorStyle.Render(m.errorText)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return wizPageStyle.Render(b.String()) + "\n"
}

func (m *wizardModel) viewFields() string {
	if len(m.fields) == 0 {
		return wizHintStyle.Render("Nothing to fill in on this step.")
	}
	blocks := make([]string, 0, len(m.fields)+1)
	blocks = append(blocks, wizLabelStyle.Render(m.stepTitle(m.step)))
	for i, f := range m.fields {
		focused := i == m.focus
		blocks = append(blocks, renderWizardField(
			focused,
			f.label,
			f.hint,
			renderWizardInput(f.input.View(), focused),
			m.fieldErrs[f.path],
		))
	}
	return strings.Join(blocks, "\n\n")
}

func renderWizardInput(input string, focused bool) string {
	style := wizInputStyle
	if focused {
		style = wizInputFocusStyle
	}
	return style.Render(input)
}

func renderWizardField(focused bool, title, description, value, errText string) string {
	var b strings.Builder
	b.WriteString(wizLabelStyle.Render(title))
	if description != "" {
		b.WriteString("  ")
		b.WriteString(wizHintStyle.Render(description))
	}
	b.WriteString("\n")
	b.WriteString(value)
	if errText != "" {
		b.WriteString("\n")
		b.WriteString(wizErrorStyle.Render(errText))
	}
	style := wizFieldStyle
	if focused {
		style = wizFieldFocusStyle
	}
	return style.Render(b.String())
}
