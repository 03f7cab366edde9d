package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/shieldai/shield/internal/estimator"
)

// EstimateNote is shown under a computed premium.
const EstimateNote = "*This is an estimate. Final premium may vary based on additional factors."

// BMIHint is the healthy range shown next to the BMI field.
const BMIHint = "Normal range: 18.5 - 24.9"

// predictFields holds the values the huh form is bound to. Numeric fields
// are edited as text and parsed back on every update.
type predictFields struct {
	age      string
	bmi      string
	children string
	sex      estimator.Sex
	smoker   estimator.Smoker
	disease  estimator.Disease
	policy   estimator.PolicyType
}

func fieldsFrom(f estimator.FormState) predictFields {
	return predictFields{
		age:      strconv.Itoa(f.Age),
		bmi:      strconv.FormatFloat(f.BMI, 'f', -1, 64),
		children: strconv.Itoa(f.Children),
		sex:      f.Sex,
		smoker:   f.Smoker,
		disease:  f.Disease,
		policy:   f.PolicyType,
	}
}

// apply builds a new FormState from the edited fields. A numeric field that
// does not parse keeps the value it had in prev.
func (p predictFields) apply(prev estimator.FormState) estimator.FormState {
	next := prev.
		WithSex(p.sex).
		WithSmoker(p.smoker).
		WithDisease(p.disease).
		WithPolicyType(p.policy)

	if v, err := strconv.Atoi(strings.TrimSpace(p.age)); err == nil {
		next = next.WithAge(v)
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(p.bmi), 64); err == nil {
		next = next.WithBMI(v)
	}
	if v, err := strconv.Atoi(strings.TrimSpace(p.children)); err == nil {
		next = next.WithChildren(v)
	}
	return next
}

// Predict is the premium calculator panel
type Predict struct {
	form   *huh.Form
	fields *predictFields
	state  estimator.FormState

	width   int
	height  int
	focused bool
	busy    bool

	premium    float64
	hasPremium bool
}

// NewPredict creates the calculator showing initial
func NewPredict(initial estimator.FormState) *Predict {
	p := &Predict{state: initial}
	p.fields = new(predictFields)
	*p.fields = fieldsFrom(initial)
	p.buildForm()
	return p
}

func options[T comparable](values []T, label func(T) string) []huh.Option[T] {
	opts := make([]huh.Option[T], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(label(v), v)
	}
	return opts
}

func (p *Predict) buildForm() {
	f := p.fields

	personal := huh.NewGroup(
		huh.NewInput().
			Title("Age").
			Description("Range: "+estimator.AgeRange.Hint()).
			CharLimit(NumericInputCharLimit).
			Value(&f.age),
		huh.NewSelect[estimator.Sex]().
			Title("Gender").
			Options(options(estimator.SexOptions, estimator.Sex.String)...).
			Inline(true).
			Value(&f.sex),
		huh.NewInput().
			Title("BMI (Body Mass Index)").
			Description(BMIHint).
			CharLimit(NumericInputCharLimit).
			Value(&f.bmi),
		huh.NewInput().
			Title("Number of Children").
			Description("Range: "+estimator.ChildrenRange.Hint()).
			CharLimit(NumericInputCharLimit).
			Value(&f.children),
	).Title("Personal Information")

	health := huh.NewGroup(
		huh.NewSelect[estimator.Smoker]().
			Title("Smoking Status").
			Options(options(estimator.SmokerOptions, estimator.Smoker.String)...).
			Inline(true).
			Value(&f.smoker),
		huh.NewSelect[estimator.Disease]().
			Title("Pre-existing Condition").
			Options(options(estimator.DiseaseOptions, estimator.Disease.String)...).
			Inline(true).
			Value(&f.disease),
	).Title("Health & Lifestyle")

	policy := huh.NewGroup(
		huh.NewSelect[estimator.PolicyType]().
			Title("Policy Type").
			Options(options(estimator.PolicyTypeOptions, estimator.PolicyType.String)...).
			Inline(true).
			Value(&f.policy),
	).Title("Policy Details")

	p.form = huh.NewForm(personal, health, policy).
		WithTheme(FormTheme()).
		WithShowHelp(false).
		WithLayout(huh.LayoutStack)
	if p.width > 0 {
		p.form = p.form.WithWidth(p.formWidth())
	}
	initHuhForm(p.form)
}

// sideBySide reports whether the result fits beside the form.
func (p *Predict) sideBySide() bool {
	_, beside := GetViewContext().CalculatorColumns(p.width)
	return beside
}

func (p *Predict) formWidth() int {
	w, _ := GetViewContext().CalculatorColumns(p.width)
	return w
}

// SetSize sets the panel dimensions
func (p *Predict) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.form = p.form.WithWidth(p.formWidth())
}

// SetFocused sets the focus state
func (p *Predict) SetFocused(focused bool) {
	p.focused = focused
}

// SetBusy switches the calculate button between its ready and busy labels
func (p *Predict) SetBusy(busy bool) {
	p.busy = busy
}

// SetResult records the premium to display
func (p *Predict) SetResult(premium float64, ok bool) {
	p.premium, p.hasPremium = premium, ok
}

// Form returns the FormState built from the latest edits
func (p *Predict) Form() estimator.FormState {
	return p.state
}

// Update forwards input to the form and rebuilds the FormState. Enter and
// Esc are left to the app.
func (p *Predict) Update(msg tea.Msg) (*Predict, tea.Cmd) {
	if _, isKey := msg.(tea.KeyPressMsg); isKey && !p.focused {
		return p, nil
	}

	var cmd tea.Cmd
	p.form, cmd = huhFormUpdate(p.form, msg)

	// Tabbing past the last field completes the form; start it over so
	// editing can continue. The bound values carry across.
	if p.form.State != huh.StateNormal {
		p.buildForm()
	}

	p.state = p.fields.apply(p.state)
	return p, cmd
}

func (p *Predict) renderWarnings() string {
	var lines []string
	for _, field := range p.state.OutOfRange() {
		var hint string
		switch field {
		case "age":
			hint = fmt.Sprintf("Age %d is outside %s", p.state.Age, estimator.AgeRange.Hint())
		case "bmi":
			hint = fmt.Sprintf("BMI %g is outside %s", p.state.BMI, estimator.BMIRange.Hint())
		case "children":
			hint = fmt.Sprintf("Children %d is outside %s", p.state.Children, estimator.ChildrenRange.Hint())
		}
		lines = append(lines, HintWarningStyle.Render("⚠ "+hint+"; it will be sent as entered"))
	}
	return strings.Join(lines, "\n")
}

func (p *Predict) renderButton() string {
	if p.busy {
		return ButtonDisabledStyle.Render("Calculating...")
	}
	return ButtonStyle.Render("Calculate Premium →")
}

func (p *Predict) renderResult(width int) string {
	if !p.hasPremium {
		return ""
	}
	label := PanelSubtitleStyle.Render("Estimated Annual Premium")
	amount := ResultAmountStyle.Render(estimator.FormatRupees(p.premium))
	note := lipgloss.NewStyle().Foreground(ColorTextMuted).Render(wrapText(EstimateNote, width-6))
	return ResultBoxStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, label, amount, note))
}

// View renders the calculator panel. On wide panels the result sits in a
// column to the right of the form, otherwise above it, so it stays visible
// when the form is taller than the panel.
func (p *Predict) View() string {
	panelStyle := PanelStyle
	if p.focused {
		panelStyle = PanelFocusedStyle
	}

	left := []string{p.form.View()}
	if w := p.renderWarnings(); w != "" {
		left = append(left, w)
	}
	left = append(left, "", p.renderButton())
	body := lipgloss.JoinVertical(lipgloss.Left, left...)

	if p.sideBySide() {
		if r := p.renderResult(ResultColumnWidth); r != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top,
				lipgloss.NewStyle().Width(p.formWidth()).Render(body),
				strings.Repeat(" ", ResultColumnGap),
				r)
		}
	} else if r := p.renderResult(GetViewContext().InnerWidth(p.width)); r != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, r, "", body)
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		PanelTitleStyle.Render("Premium Calculator"),
		PanelSubtitleStyle.Render("Get an instant estimate of your insurance premium"),
		"",
	)
	return panelStyle.Width(p.width).Height(p.height).MaxHeight(p.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}
