package tui

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TIrth999999/Cinemas/model"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// validPassword requires at least 8 characters with a lowercase letter, an
// uppercase letter and a digit.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

type loginForm struct {
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email    > "
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password > "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	email.Focus()
	return loginForm{email: email, password: password}
}

func (f loginForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f loginForm) view() string {
	title := lipgloss.NewStyle().Bold(true).Render("Login")
	note := ""
	if f.submitting {
		note = "\n\n" + hint("Signing in...")
	}
	return title + "\n\n" + f.email.View() + "\n" + f.password.View() + note +
		"\n\n" + hint("New here? Press ctrl+s to create an account.")
}

func (f *loginForm) setFocus(idx int) tea.Cmd {
	f.focus = idx
	if idx == 0 {
		f.password.Blur()
		return f.email.Focus()
	}
	f.email.Blur()
	return f.password.Focus()
}

func (f loginForm) validate() string {
	email := strings.TrimSpace(f.email.Value())
	if email == "" || f.password.Value() == "" {
		return "Please fill in both email and password."
	}
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email address."
	}
	return ""
}

type signupForm struct {
	inputs     [4]textinput.Model
	focus      int
	submitting bool
}

const (
	signupFirstName = iota
	signupLastName
	signupEmail
	signupPassword
)

func newSignupForm() signupForm {
	var f signupForm
	prompts := [4]string{"First name > ", "Last name  > ", "Email      > ", "Password   > "}
	placeholders := [4]string{"John", "Doe", "you@example.com", "min 8 chars, Aa1"}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = prompts[i]
		in.Placeholder = placeholders[i]
		in.CharLimit = 128
		f.inputs[i] = in
	}
	f.inputs[signupPassword].EchoMode = textinput.EchoPassword
	f.inputs[signupPassword].EchoCharacter = '•'
	f.inputs[0].Focus()
	return f
}

func (f signupForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *signupForm) setFocus(idx int) tea.Cmd {
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == idx {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f signupForm) view() string {
	title := lipgloss.NewStyle().Bold(true).Render("Create account")
	var b strings.Builder
	b.WriteString(title + "\n\n")
	for i := range f.inputs {
		b.WriteString(f.inputs[i].View() + "\n")
	}
	if f.submitting {
		b.WriteString("\n" + hint("Creating account..."))
	}
	return b.String()
}

func (f signupForm) validate() string {
	for i := range f.inputs {
		if i != signupPassword && strings.TrimSpace(f.inputs[i].Value()) == "" {
			return "Please fill in all fields."
		}
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.inputs[signupEmail].Value())) {
		return "Please enter a valid email address."
	}
	if !validPassword(f.inputs[signupPassword].Value()) {
		return "Password needs 8+ characters with upper, lower and a digit."
	}
	return ""
}

func (f signupForm) request() model.SignupRequest {
	return model.SignupRequest{
		FirstName: strings.TrimSpace(f.inputs[signupFirstName].Value()),
		LastName:  strings.TrimSpace(f.inputs[signupLastName].Value()),
		Email:     strings.TrimSpace(f.inputs[signupEmail].Value()),
		Password:  f.inputs[signupPassword].Value(),
	}
}

func newSessionInput() textinput.Model {
	in := textinput.New()
	in.Prompt = "Session ID > "
	in.Placeholder = "cs_... (leave empty to check recent orders)"
	in.CharLimit = 256
	return in
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		if m.state == stateLogin {
			m.state = stateSignup
			m.signupForm = newSignupForm()
			return m, m.signupForm.focusCmd()
		}
	case "esc":
		if m.state == stateSignup {
			m.state = stateLogin
			return m, m.loginForm.focusCmd()
		}
		return m, nil
	case "tab", "down":
		return m, m.cycleFormFocus(1)
	case "shift+tab", "up":
		return m, m.cycleFormFocus(-1)
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	if m.state == stateLogin {
		if m.loginForm.focus == 0 {
			m.loginForm.email, cmd = m.loginForm.email.Update(msg)
		} else {
			m.loginForm.password, cmd = m.loginForm.password.Update(msg)
		}
	} else {
		idx := m.signupForm.focus
		m.signupForm.inputs[idx], cmd = m.signupForm.inputs[idx].Update(msg)
	}
	return m, cmd
}

func (m *appModel) cycleFormFocus(dir int) tea.Cmd {
	if m.state == stateLogin {
		return m.loginForm.setFocus((m.loginForm.focus + dir + 2) % 2)
	}
	n := len(m.signupForm.inputs)
	return m.signupForm.setFocus((m.signupForm.focus + dir + n) % n)
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	if m.state == stateLogin {
		if m.loginForm.submitting {
			return m, nil
		}
		if problem := m.loginForm.validate(); problem != "" {
			return m.withFlash(flashWarning, problem)
		}
		m.loginForm.submitting = true
		return m, tea.Batch(
			m.loginCmd(strings.TrimSpace(m.loginForm.email.Value()), m.loginForm.password.Value()),
			m.spinner.Tick,
		)
	}

	if m.signupForm.submitting {
		return m, nil
	}
	if problem := m.signupForm.validate(); problem != "" {
		return m.withFlash(flashWarning, problem)
	}
	m.signupForm.submitting = true
	return m, tea.Batch(m.signupCmd(m.signupForm.request()), m.spinner.Tick)
}
