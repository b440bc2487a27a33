// internal/tui/app.go
//
// This is the main TUI for the PropSeller client. It uses bubbletea,
// which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// All business rules live in the domain packages (session, verify,
// profile, media, listing); this model only sequences their calls and
// renders their state.

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/propseller/propseller/internal/api"
	"github.com/propseller/propseller/internal/config"
	"github.com/propseller/propseller/internal/identity"
	"github.com/propseller/propseller/internal/listing"
	"github.com/propseller/propseller/internal/logbook"
	"github.com/propseller/propseller/internal/media"
	"github.com/propseller/propseller/internal/profile"
	"github.com/propseller/propseller/internal/session"
	"github.com/propseller/propseller/internal/verify"
)

// appState represents which "screen" we're on
type appState int

const (
	stateSignIn   appState = iota // Email/password entry
	stateMainMenu                 // Seller menu after sign-in
	stateProfile                  // Profile editor and submission
	stateVerify                   // Phone verification flow
	stateListings                 // The seller's property listings
)

// profileField indexes the editor inputs in tab order.
type profileField int

const (
	fieldName profileField = iota
	fieldEmail
	fieldPhone
	fieldBusinessName
	fieldYears
	fieldIDUpload
	fieldCount
)

type bootstrapDoneMsg struct{ err error }

type signInDoneMsg struct {
	token string
	err   error
}

type resolveDoneMsg struct {
	state profile.LifecycleState
	res   profile.FetchResult
	err   error
}

type submitDoneMsg struct {
	decision profile.Decision
	err      error
}

type codeSentMsg struct{ err error }

type codeCheckedMsg struct{ err error }

type uploadDoneMsg struct {
	asset *media.Asset
	err   error
}

type listingsMsg struct {
	page listing.Page
	err  error
}

type countdownTickMsg time.Time

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state  appState
	config *config.Config

	session   *session.Manager
	identity  *identity.Service
	profiles  *profile.Service
	resolver  *profile.Resolver
	assembler *profile.Assembler
	verifier  *verify.Machine
	listings  *listing.Service
	pipeline  *media.Pipeline
	picker    *pathPicker
	drafts    *profile.DraftStore
	logbook   *logbook.Logbook

	// UI components
	mainMenu      list.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	phoneInput    textinput.Model
	codeInput     textinput.Model
	profileInputs []textinput.Model
	profileFocus  profileField

	draft     profile.Draft
	lifecycle profile.LifecycleState
	page      listing.Page

	statusMsg string
	busy      bool

	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp wires the domain services and creates the model in the sign-in
// screen; Init decides whether a persisted credential skips it.
func NewApp(cfg *config.Config) (*App, error) {
	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "activity.log"))
	if err != nil {
		return nil, err
	}

	mgr := session.NewManager(session.NewFileStore(cfg.CredentialPath()))
	timeout := time.Duration(cfg.File.API.TimeoutSeconds) * time.Second
	client := api.NewClient(cfg.File.API.BaseURL, timeout, mgr)

	picker := &pathPicker{}
	profiles := profile.NewService(client)

	app := &App{
		state:     stateSignIn,
		config:    cfg,
		session:   mgr,
		identity:  identity.NewService(client, cfg.File.Device),
		profiles:  profiles,
		resolver:  profile.NewResolver(profiles),
		assembler: profile.NewAssembler(profiles),
		verifier:  verify.NewMachine(verify.NewSMSClient(client)),
		listings:  listing.NewService(client),
		picker:    picker,
		pipeline: media.NewPipeline(picker,
			media.NewCloudinary(cfg.File.Media, timeout),
			media.NewQuota(media.DefaultMaxImages, media.DefaultMaxVideos)),
		drafts:  profile.NewDraftStore(filepath.Join(cfg.StateDir(), "profile-draft.json")),
		logbook: lb,
	}
	app.buildInputs()
	app.mainMenu = buildMainMenu()
	return app, nil
}

func (a *App) buildInputs() {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	phone := textinput.New()
	phone.Placeholder = "mobile number"
	code := textinput.New()
	code.Placeholder = "verification code"
	code.CharLimit = 6

	a.emailInput = email
	a.passwordInput = password
	a.phoneInput = phone
	a.codeInput = code

	labels := []string{"name", "email", "mobile number", "business name", "years of experience", "path to government ID image"}
	a.profileInputs = make([]textinput.Model, fieldCount)
	for i := range a.profileInputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		a.profileInputs[i] = in
	}
	a.profileInputs[fieldName].Focus()
}

func buildMainMenu() list.Model {
	items := []list.Item{
		menuItem{title: "Edit Profile", desc: "Create or update your seller profile"},
		menuItem{title: "Verify Phone", desc: "Confirm ownership of your mobile number"},
		menuItem{title: "My Listings", desc: "Browse your property listings"},
		menuItem{title: "Sign Out", desc: "Clear the stored session"},
		menuItem{title: "Exit", desc: "Quit PropSeller"},
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "⌂ PROPSELLER"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	return menu
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook != nil {
		a.logbook.Info(format, args...)
	}
}

func (a *App) logError(format string, args ...any) {
	if a.logbook != nil {
		a.logbook.Error(format, args...)
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		return bootstrapDoneMsg{err: a.session.Bootstrap()}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case bootstrapDoneMsg:
		if msg.err != nil {
			a.statusMsg = userMessage(msg.err)
			return a, nil
		}
		if a.session.Status() == session.StatusAuthenticated {
			a.logInfo("Session restored for %s", a.session.Claims().Email)
			a.state = stateMainMenu
			a.statusMsg = fmt.Sprintf("Welcome back, %s", a.session.Claims().DisplayName)
		}
		return a, nil

	case signInDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.statusMsg = userMessage(msg.err)
			a.logError("Sign-in failed: %v", msg.err)
			return a, nil
		}
		if err := a.session.SignIn(msg.token); err != nil {
			a.statusMsg = userMessage(err)
			a.logError("Credential rejected: %v", err)
			return a, nil
		}
		a.logInfo("Signed in as %s", a.session.Claims().Email)
		a.state = stateMainMenu
		a.statusMsg = ""
		return a, nil

	case resolveDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.statusMsg = userMessage(msg.err)
			return a, nil
		}
		a.lifecycle = msg.state
		if msg.state == profile.StateComplete || msg.state == profile.StateIncomplete {
			a.draft = profile.DraftFromRecord(msg.res.Record)
		} else {
			a.draft = profile.Draft{}
		}
		a.statusMsg = fmt.Sprintf("Profile is %s; submitting will %s", msg.state, msg.state.Decision())
		// A draft saved by an earlier failed submission wins over the
		// record: it holds the user's newest edits and uploads.
		if saved, savedAt, found, err := a.drafts.Load(); err == nil && found {
			a.draft = saved
			a.statusMsg = fmt.Sprintf("Restored unsaved draft from %s", savedAt.Format("Jan 2 15:04"))
		}
		a.seedProfileInputs()
		a.state = stateProfile
		return a, nil

	case submitDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.statusMsg = userMessage(msg.err)
			a.logError("Profile %s failed: %v", msg.decision, msg.err)
			if err := a.drafts.Save(a.draft); err != nil {
				a.logError("Draft not persisted: %v", err)
			}
			return a, nil
		}
		if err := a.drafts.Clear(); err != nil {
			a.logError("Stale draft not cleared: %v", err)
		}
		a.logInfo("Profile %s succeeded", msg.decision)
		a.statusMsg = "Profile saved"
		// Re-resolve so the next submission routes correctly.
		return a, a.resolveCmd()

	case codeSentMsg:
		a.busy = false
		if msg.err != nil {
			a.statusMsg = userMessage(msg.err)
			return a, nil
		}
		a.codeInput.SetValue("")
		a.codeInput.Focus()
		a.phoneInput.Blur()
		a.statusMsg = fmt.Sprintf("Code sent to %s", a.verifier.Phone())
		return a, a.countdownTick()

	case codeCheckedMsg:
		a.busy = false
		if msg.err != nil {
			a.statusMsg = userMessage(msg.err)
			return a, nil
		}
		a.logInfo("Phone %s verified", a.verifier.Phone())
		a.draft.PhoneNumber = a.verifier.Phone()
		a.statusMsg = "Phone number verified"
		return a, nil

	case uploadDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.statusMsg = userMessage(msg.err)
			return a, nil
		}
		if msg.asset == nil {
			a.statusMsg = "Upload cancelled"
			return a, nil
		}
		a.draft.PassportUploads = append(a.draft.PassportUploads, msg.asset.RemoteURL)
		usage := a.pipeline.Usage()
		a.statusMsg = fmt.Sprintf("Uploaded (%d/%d images used)", usage.ImagesUsed, usage.ImagesMax)
		return a, nil

	case listingsMsg:
		a.busy = false
		if msg.err != nil {
			a.statusMsg = userMessage(msg.err)
			return a, nil
		}
		a.page = msg.page
		a.state = stateListings
		a.statusMsg = ""
		return a, nil

	case countdownTickMsg:
		if a.state == stateVerify && a.verifier.State() == verify.StateCodeSent {
			if a.verifier.Expired() {
				a.statusMsg = "Code expired; press ctrl+r to resend"
				return a, nil
			}
			return a, a.countdownTick()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateFocusedInput(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		if a.state != stateMainMenu && a.state != stateSignIn {
			a.state = stateMainMenu
			a.statusMsg = ""
			// Abandoning the verify screen mid-attempt discards the
			// challenge; a new visit starts over.
			if a.verifier.State() != verify.StateVerified {
				a.verifier.Reset()
			}
			return a, nil
		}
	case "tab":
		switch a.state {
		case stateSignIn:
			if a.emailInput.Focused() {
				a.emailInput.Blur()
				a.passwordInput.Focus()
			} else {
				a.passwordInput.Blur()
				a.emailInput.Focus()
			}
			return a, nil
		case stateProfile:
			a.profileInputs[a.profileFocus].Blur()
			a.profileFocus = (a.profileFocus + 1) % fieldCount
			a.profileInputs[a.profileFocus].Focus()
			return a, nil
		case stateVerify:
			// Going back to edit the number invalidates the sent code.
			if a.verifier.State() == verify.StateCodeSent {
				a.verifier.Reset()
				a.codeInput.SetValue("")
				a.codeInput.Blur()
				a.phoneInput.Focus()
				a.statusMsg = ""
			}
			return a, nil
		}
	case "ctrl+r":
		if a.state == stateVerify {
			return a.sendCode()
		}
	case "ctrl+s":
		if a.state == stateProfile {
			return a.submitProfile()
		}
	case "enter":
		switch a.state {
		case stateSignIn:
			return a.signIn()
		case stateMainMenu:
			return a.handleMenuSelection()
		case stateVerify:
			if a.verifier.State() == verify.StateCodeSent {
				return a.checkCode()
			}
			return a.sendCode()
		case stateProfile:
			if a.profileFocus == fieldIDUpload {
				return a.uploadID()
			}
			a.profileInputs[a.profileFocus].Blur()
			a.profileFocus = (a.profileFocus + 1) % fieldCount
			a.profileInputs[a.profileFocus].Focus()
			return a, nil
		}
	}

	if a.state == stateMainMenu {
		var cmd tea.Cmd
		a.mainMenu, cmd = a.mainMenu.Update(msg)
		return a, cmd
	}
	return a.updateFocusedInput(msg)
}

func (a *App) handleMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	switch item.title {
	case "Edit Profile":
		a.logInfo("Menu · Edit Profile selected")
		return a, a.resolveCmd()
	case "Verify Phone":
		a.logInfo("Menu · Verify Phone selected")
		a.state = stateVerify
		a.phoneInput.Focus()
		a.statusMsg = "Enter your mobile number and press enter"
		return a, nil
	case "My Listings":
		a.logInfo("Menu · My Listings selected")
		a.busy = true
		return a, a.fetchListingsCmd(1)
	case "Sign Out":
		if err := a.session.SignOut(); err != nil {
			a.statusMsg = userMessage(err)
			return a, nil
		}
		a.logInfo("Signed out")
		a.state = stateSignIn
		a.draft = profile.Draft{}
		a.verifier.Reset()
		a.pipeline.Reset()
		a.emailInput.Focus()
		a.statusMsg = ""
		return a, nil
	case "Exit":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) signIn() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(a.emailInput.Value())
	password := a.passwordInput.Value()
	if email == "" || password == "" {
		a.statusMsg = "Email and password are required"
		return a, nil
	}
	a.busy = true
	a.statusMsg = "Signing in..."
	return a, func() tea.Msg {
		token, err := a.identity.SignIn(context.Background(), email, password)
		return signInDoneMsg{token: token, err: err}
	}
}

func (a *App) resolveCmd() tea.Cmd {
	a.busy = true
	return func() tea.Msg {
		state, res, err := a.resolver.Resolve(context.Background())
		return resolveDoneMsg{state: state, res: res, err: err}
	}
}

func (a *App) submitProfile() (tea.Model, tea.Cmd) {
	a.collectDraft()
	a.busy = true
	a.statusMsg = "Submitting profile..."
	draft := &a.draft
	state := a.lifecycle
	return a, func() tea.Msg {
		decision, err := a.assembler.Submit(context.Background(), draft, state)
		return submitDoneMsg{decision: decision, err: err}
	}
}

func (a *App) sendCode() (tea.Model, tea.Cmd) {
	raw := a.phoneInput.Value()
	a.busy = true
	return a, func() tea.Msg {
		return codeSentMsg{err: a.verifier.SendCode(context.Background(), raw)}
	}
}

func (a *App) checkCode() (tea.Model, tea.Cmd) {
	code := strings.TrimSpace(a.codeInput.Value())
	a.busy = true
	return a, func() tea.Msg {
		return codeCheckedMsg{err: a.verifier.SubmitCode(context.Background(), code)}
	}
}

func (a *App) uploadID() (tea.Model, tea.Cmd) {
	a.picker.path = a.profileInputs[fieldIDUpload].Value()
	a.profileInputs[fieldIDUpload].SetValue("")
	a.busy = true
	a.statusMsg = "Uploading..."
	return a, func() tea.Msg {
		asset, err := a.pipeline.RequestUpload(context.Background(), media.CategoryImage)
		return uploadDoneMsg{asset: asset, err: err}
	}
}

func (a *App) fetchListingsCmd(pageNumber int) tea.Cmd {
	return func() tea.Msg {
		page, err := a.listings.List(context.Background(), pageNumber, 10)
		return listingsMsg{page: page, err: err}
	}
}

func (a *App) countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}

func (a *App) seedProfileInputs() {
	a.profileInputs[fieldName].SetValue(a.draft.Name)
	a.profileInputs[fieldEmail].SetValue(a.draft.Email)
	a.profileInputs[fieldPhone].SetValue(a.draft.PhoneNumber)
	a.profileInputs[fieldBusinessName].SetValue(a.draft.BusinessName)
	if a.draft.NumberOfYears > 0 {
		a.profileInputs[fieldYears].SetValue(fmt.Sprintf("%d", a.draft.NumberOfYears))
	} else {
		a.profileInputs[fieldYears].SetValue("")
	}
	for i := range a.profileInputs {
		a.profileInputs[i].Blur()
	}
	a.profileFocus = fieldName
	a.profileInputs[fieldName].Focus()
}

func (a *App) collectDraft() {
	a.draft.Name = strings.TrimSpace(a.profileInputs[fieldName].Value())
	a.draft.Email = strings.TrimSpace(a.profileInputs[fieldEmail].Value())
	a.draft.PhoneNumber = strings.TrimSpace(a.profileInputs[fieldPhone].Value())
	a.draft.BusinessName = strings.TrimSpace(a.profileInputs[fieldBusinessName].Value())
	var years int
	fmt.Sscanf(a.profileInputs[fieldYears].Value(), "%d", &years)
	a.draft.NumberOfYears = years
}

func (a *App) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case stateSignIn:
		if a.emailInput.Focused() {
			a.emailInput, cmd = a.emailInput.Update(msg)
		} else {
			a.passwordInput, cmd = a.passwordInput.Update(msg)
		}
	case stateVerify:
		if a.verifier.State() == verify.StateCodeSent {
			a.codeInput, cmd = a.codeInput.Update(msg)
		} else {
			a.phoneInput, cmd = a.phoneInput.Update(msg)
		}
	case stateProfile:
		a.profileInputs[a.profileFocus], cmd = a.profileInputs[a.profileFocus].Update(msg)
	case stateMainMenu:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	}
	return a, cmd
}

// View renders the current state to a string.
func (a *App) View() string {
	var content string
	switch a.state {
	case stateSignIn:
		content = a.renderSignIn()
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateProfile:
		content = a.renderProfile()
	case stateVerify:
		content = a.renderVerify()
	case stateListings:
		content = a.renderListings()
	}

	sections := []string{headerStyle.Render("⌂ PROPSELLER"), content}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := a.statusMsg
	if a.busy {
		footer = "Working... " + footer
	}
	sections = append(sections, footerStyle.Render(footer))
	return strings.Join(sections, "\n")
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

func (a *App) renderSignIn() string {
	lines := []string{
		labelStyle.Render("Sign in"),
		a.emailInput.View(),
		a.passwordInput.View(),
		"",
		"enter to sign in · tab to switch fields",
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderProfile() string {
	labels := []string{"Name", "Email", "Phone", "Business", "Years", "ID upload"}
	var lines []string
	lines = append(lines, labelStyle.Render(fmt.Sprintf("Profile (%s → %s)", a.lifecycle, a.lifecycle.Decision())))
	for i, in := range a.profileInputs {
		lines = append(lines, fmt.Sprintf("%-10s %s", labels[i], in.View()))
	}
	if n := a.draft.GovernmentIDCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("%d government ID(s) uploaded", n))
	}
	lines = append(lines, "", "tab next field · enter on ID field uploads · ctrl+s submits · esc back")
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderVerify() string {
	var lines []string
	lines = append(lines, labelStyle.Render("Verify phone"))
	switch a.verifier.State() {
	case verify.StateCodeSent, verify.StateVerifying:
		lines = append(lines,
			fmt.Sprintf("Code sent to %s", a.verifier.Phone()),
			a.codeInput.View(),
			fmt.Sprintf("Expires in %ds", int(a.verifier.Remaining().Seconds())),
			"",
			"enter to verify · ctrl+r to resend · tab to edit number · esc back",
		)
	case verify.StateVerified:
		lines = append(lines, fmt.Sprintf("%s is verified ✓", a.verifier.Phone()), "", "esc back")
	default:
		lines = append(lines, a.phoneInput.View(), "", "enter to send code · esc back")
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderListings() string {
	var lines []string
	lines = append(lines, labelStyle.Render(fmt.Sprintf("My listings (%d total)", a.page.TotalCount)))
	if len(a.page.Items) == 0 {
		lines = append(lines, "No listings yet")
	}
	for _, l := range a.page.Items {
		status := l.SoldStatus
		if l.IsExpired {
			status = "Expired"
		}
		lines = append(lines, fmt.Sprintf("#%d %s · $%.0f · %s", l.PropertyListingID, l.PropertyAddress, l.Price, status))
	}
	lines = append(lines, "", "esc back")
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, _ := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := labelStyle.Render("LOG · activity.log")
	body := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Render(strings.Join(lines, "\n"))
	return panelStyle.Render(head + "\n" + body)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
