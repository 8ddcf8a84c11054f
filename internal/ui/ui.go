package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/insure/internal/formatter"
	"github.com/desertthunder/insure/internal/models"
	"github.com/desertthunder/insure/internal/repositories"
	"github.com/desertthunder/insure/internal/workflow"
)

// field indices for the auth form
const (
	emailField = iota
	passwordField
)

// field indices for the profile form; riskField is a selector, not a textinput
const (
	ageField = iota
	incomeField
	dependentsField
	riskField
)

// Model represents the TUI application state. The screen machine itself
// lives in the [workflow.Controller]; the Model owns the text inputs, key
// routing and rendering around it.
type Model struct {
	ctx        context.Context
	controller *workflow.Controller
	history    *repositories.SubmissionRepository
	logger     *log.Logger

	width  int
	height int

	auth    []textinput.Model
	profile []textinput.Model
	risk    models.RiskTolerance
	focus   int
	formErr string

	spin spinner.Model
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
// The history repository is optional; when nil, recommendations are not
// recorded.
func NewModel(ctx context.Context, controller *workflow.Controller, history *repositories.SubmissionRepository, logger *log.Logger) *Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email      > "
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password   > "
	password.EchoMode = textinput.EchoPassword

	age := textinput.New()
	age.Placeholder = "35"
	age.Prompt = "Age        > "
	age.CharLimit = 3
	age.Focus()

	income := textinput.New()
	income.Placeholder = "80000"
	income.Prompt = "Income     > "
	income.CharLimit = 9

	dependents := textinput.New()
	dependents.Placeholder = "0"
	dependents.Prompt = "Dependents > "
	dependents.CharLimit = 2

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:        ctx,
		controller: controller,
		history:    history,
		logger:     logger,
		auth:       []textinput.Model{email, password},
		profile:    []textinput.Model{age, income, dependents},
		risk:       models.RiskMedium,
		spin:       sp,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the cursor blink and the spinner tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case workflow.Event:
		return m.handleEvent(msg)

	case historySavedMsg:
		if msg.err != nil && m.logger != nil {
			m.logger.Warn("failed to record submission", "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.controller.Screen() {
		case workflow.Login, workflow.Register:
			return m.handleAuthKeys(msg)
		case workflow.CollectingProfile:
			return m.handleProfileKeys(msg)
		case workflow.ShowingRecommendation:
			return m.handleResultKeys(msg)
		}
	}

	return m, nil
}

// handleEvent folds a completed network action into the controller and
// reacts to the resulting transition.
func (m *Model) handleEvent(ev workflow.Event) (tea.Model, tea.Cmd) {
	before := m.controller.Screen()
	m.controller.Apply(ev)
	after := m.controller.Screen()

	if before == after {
		return m, nil
	}

	switch after {
	case workflow.CollectingProfile:
		// A fresh session: wipe the password and move to the profile form.
		m.auth[passwordField].SetValue("")
		m.setProfileFocus(ageField)
		return m, nil

	case workflow.ShowingRecommendation:
		return m, m.saveSubmission()
	}

	return m, nil
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.controller.Busy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.toggle):
		m.controller.ToggleMode()
		return m, nil

	case key.Matches(msg, m.keys.next):
		m.setAuthFocus((m.focus + 1) % len(m.auth))
		return m, nil

	case key.Matches(msg, m.keys.prev):
		m.setAuthFocus((m.focus + len(m.auth) - 1) % len(m.auth))
		return m, nil

	case key.Matches(msg, m.keys.submit):
		if m.focus < passwordField {
			m.setAuthFocus(m.focus + 1)
			return m, nil
		}
		return m, m.submitCredentials()
	}

	var cmd tea.Cmd
	m.auth[m.focus], cmd = m.auth[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.logout) {
		m.logout()
		return m, nil
	}

	if m.controller.Busy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.next):
		m.setProfileFocus((m.focus + 1) % (riskField + 1))
		return m, nil

	case key.Matches(msg, m.keys.prev):
		m.setProfileFocus((m.focus + riskField) % (riskField + 1))
		return m, nil

	case key.Matches(msg, m.keys.cycle):
		if m.focus == riskField {
			m.cycleRisk(msg.String() == "right")
		}
		return m, nil

	case key.Matches(msg, m.keys.submit):
		if m.focus < riskField {
			m.setProfileFocus(m.focus + 1)
			return m, nil
		}
		return m, m.submitProfile()
	}

	if m.focus < riskField {
		var cmd tea.Cmd
		m.profile[m.focus], cmd = m.profile[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "q":
		return m, tea.Quit

	case key.Matches(msg, m.keys.again):
		m.controller.Reset()
		m.clearProfileForm()
		return m, nil

	case key.Matches(msg, m.keys.logout):
		m.logout()
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the controller's active screen.
func (m *Model) View() string {
	switch m.controller.Screen() {
	case workflow.Login:
		return m.renderAuth("Sign In", "No account? ctrl+t to register")
	case workflow.Register:
		return m.renderAuth("Create Account", "Have an account? ctrl+t to sign in")
	case workflow.CollectingProfile:
		return m.renderProfile()
	case workflow.ShowingRecommendation:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) renderAuth(title, hint string) string {
	var b strings.Builder

	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.auth[emailField].View())
	b.WriteString("\n")
	b.WriteString(m.auth[passwordField].View())
	b.WriteString("\n\n")
	b.WriteString(styles.help.Render(hint))
	b.WriteString("\n")

	m.renderStatus(&b)

	helpKeys := []key.Binding{m.keys.submit, m.keys.toggle, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderProfile() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Your Profile"))
	b.WriteString("\n\n")
	for _, input := range m.profile {
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	riskRow := fmt.Sprintf("Risk       > ◀ %s ▶", m.risk)
	if m.focus == riskField {
		riskRow = styles.ok.Render(riskRow)
	}
	b.WriteString(riskRow)
	b.WriteString("\n")

	m.renderStatus(&b)

	helpKeys := []key.Binding{m.keys.next, m.keys.submit, m.keys.logout, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderResult() string {
	rec := m.controller.Recommendation()
	if rec == nil {
		return styles.err.Render("No recommendation available")
	}

	var b strings.Builder

	b.WriteString(styles.title.Render("Our Recommendation"))
	b.WriteString("\n\n")
	b.WriteString(styles.ok.Render(rec.Policy))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Coverage: %s\n", formatter.FormatCurrency(rec.Coverage)))
	b.WriteString(fmt.Sprintf("Term:     %s\n", formatter.FormatTerm(rec.Term)))
	if rec.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(rec.Explanation)
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.again, m.keys.logout, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

// renderStatus appends the busy spinner or the current error line.
func (m *Model) renderStatus(b *strings.Builder) {
	if m.controller.Busy() {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(" Working...\n")
		return
	}

	msg := m.formErr
	if msg == "" {
		msg = m.controller.Err()
	}
	if msg != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(msg))
		b.WriteString("\n")
	}
}

func (m *Model) submitCredentials() tea.Cmd {
	m.formErr = ""
	creds := models.Credentials{
		Email:    strings.TrimSpace(m.auth[emailField].Value()),
		Password: m.auth[passwordField].Value(),
	}

	cmd, ok := m.controller.SubmitCredentials(creds)
	if !ok {
		return nil
	}
	return m.run(cmd)
}

func (m *Model) submitProfile() tea.Cmd {
	input, err := m.parseProfile()
	if err != nil {
		m.formErr = err.Error()
		return nil
	}
	m.formErr = ""

	cmd, ok := m.controller.SubmitProfile(input)
	if !ok {
		return nil
	}
	return m.run(cmd)
}

// parseProfile converts the raw form fields into a ProfileInput. Range
// validation is the controller's job; this only rejects non-numeric input.
func (m *Model) parseProfile() (models.ProfileInput, error) {
	var input models.ProfileInput

	fields := []struct {
		name string
		dst  *int
		raw  string
	}{
		{"age", &input.Age, m.profile[ageField].Value()},
		{"income", &input.Income, m.profile[incomeField].Value()},
		{"dependents", &input.Dependents, m.profile[dependentsField].Value()},
	}

	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return input, fmt.Errorf("%s must be a whole number", f.name)
		}
		*f.dst = n
	}

	input.RiskTolerance = m.risk
	return input, nil
}

// run wraps a workflow Command into a tea.Cmd so its Event flows back
// through Update.
func (m *Model) run(cmd workflow.Command) tea.Cmd {
	return func() tea.Msg {
		return cmd(m.ctx)
	}
}

// saveSubmission records the profile/recommendation pair just shown.
func (m *Model) saveSubmission() tea.Cmd {
	if m.history == nil {
		return nil
	}

	rec := m.controller.Recommendation()
	profile := m.controller.Profile()

	return func() tea.Msg {
		sub := models.NewSubmission(0, profile, *rec)
		return historySavedMsg{err: m.history.Create(sub)}
	}
}

func (m *Model) logout() {
	m.controller.Logout()
	m.clearProfileForm()
	m.auth[passwordField].SetValue("")
	m.formErr = ""
	m.setAuthFocus(emailField)
}

func (m *Model) clearProfileForm() {
	for i := range m.profile {
		m.profile[i].SetValue("")
	}
	m.risk = models.RiskMedium
	m.setProfileFocus(ageField)
}

func (m *Model) setAuthFocus(target int) {
	m.focus = target
	for i := range m.auth {
		if i == target {
			m.auth[i].Focus()
		} else {
			m.auth[i].Blur()
		}
	}
}

func (m *Model) setProfileFocus(target int) {
	m.focus = target
	for i := range m.profile {
		if i == target {
			m.profile[i].Focus()
		} else {
			m.profile[i].Blur()
		}
	}
}

func (m *Model) cycleRisk(forward bool) {
	order := []models.RiskTolerance{models.RiskLow, models.RiskMedium, models.RiskHigh}
	idx := 0
	for i, r := range order {
		if r == m.risk {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(order)
	} else {
		idx = (idx + len(order) - 1) % len(order)
	}
	m.risk = order[idx]
}
