package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/shieldai/shield/internal/assistant"
	"github.com/shieldai/shield/internal/estimator"
	"github.com/shieldai/shield/internal/keys"
	"github.com/shieldai/shield/internal/lifecycle"
	"github.com/shieldai/shield/internal/ui"
)

func TestNew_StartsOnChatTab(t *testing.T) {
	m := testModel(&fakeService{})

	if m.ActiveTab() != TabChat {
		t.Errorf("ActiveTab() = %v, want %v", m.ActiveTab(), TabChat)
	}
	if !m.chat.IsFocused() {
		t.Error("chat should be focused on start")
	}
	if m.slot.Busy() {
		t.Error("slot should be idle on start")
	}
	if _, ok := m.estimator.Result(); ok {
		t.Error("no premium should be shown on start")
	}
	if got := m.estimator.Form(); got != estimator.DefaultForm() {
		t.Errorf("Form() = %+v, want defaults", got)
	}
}

func TestTab_String(t *testing.T) {
	if TabChat.String() != "AI Assistant" || TabPredict.String() != "Premium Calculator" {
		t.Errorf("tab names = %q, %q", TabChat, TabPredict)
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := testModel(&fakeService{})
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("RenderToString() = %q, want Loading...", got)
	}

	m = testModelWithSize(&fakeService{}, 120, 40)
	view := plainView(m)
	for _, want := range []string{"AI Assistant", "Premium Calculator", "Type your message here..."} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestSubmit_BlankIsNoOp(t *testing.T) {
	svc := &fakeService{answer: "hi"}
	m := testModelWithSize(svc, 120, 40)
	m = typeText(m, "   ")

	if cmd := press(m, keys.Enter); cmd != nil {
		t.Error("blank input should not start a request")
	}
	if m.assistant.Len() != 0 {
		t.Errorf("transcript length = %d, want 0", m.assistant.Len())
	}
	if m.slot.Busy() {
		t.Error("slot should stay idle")
	}
}

func TestSubmit_UserMessageAppearsBeforeSettlement(t *testing.T) {
	svc := &fakeService{answer: "Term life covers a fixed period."}
	m := testModelWithSize(svc, 120, 40)
	m = typeText(m, "what is term life")

	cmd := press(m, keys.Enter)
	if cmd == nil {
		t.Fatal("enter should start a chat request")
	}

	transcript := m.assistant.Transcript()
	if len(transcript) != 1 || transcript[0].Role != assistant.RoleUser || transcript[0].Text != "what is term life" {
		t.Fatalf("transcript = %+v, want the user question only", transcript)
	}
	if m.chat.GetInput() != "" {
		t.Errorf("input = %q, want cleared", m.chat.GetInput())
	}
	if !m.slot.Busy() || !m.chat.IsBusy() {
		t.Error("slot and chat panel should be busy until settlement")
	}
	if !strings.Contains(plainView(m), "what is term life") {
		t.Error("question should be rendered before the answer arrives")
	}

	settle(m, cmd)

	transcript = m.assistant.Transcript()
	if len(transcript) != 2 || transcript[1].Role != assistant.RoleBot || transcript[1].Text != svc.answer {
		t.Fatalf("transcript = %+v, want question then answer", transcript)
	}
	if m.slot.Busy() || m.chat.IsBusy() {
		t.Error("slot should be released after settlement")
	}
	if len(svc.questions) != 1 || svc.questions[0] != "what is term life" {
		t.Errorf("questions sent = %v", svc.questions)
	}
}

func TestSubmit_FailureShowsFallback(t *testing.T) {
	svc := &fakeService{chatErr: errBackend}
	m := testModelWithSize(svc, 120, 40)
	m = typeText(m, "hello")

	settle(m, press(m, keys.Enter))

	answer, ok := m.assistant.LastAnswer()
	if !ok || answer != assistant.FallbackAnswer {
		t.Errorf("LastAnswer() = %q, %v; want fallback", answer, ok)
	}
	if m.modal.IsVisible() {
		t.Error("chat failures should not raise the alert")
	}
	if m.slot.Busy() {
		t.Error("slot should be released after a failure")
	}
}

func TestEnterSubmits_ShiftEnterDoesNot(t *testing.T) {
	svc := &fakeService{answer: "ok"}
	m := testModelWithSize(svc, 120, 40)
	m = typeText(m, "hello")

	if cmd := press(m, keys.ShiftEnter); cmd != nil {
		t.Error("shift+enter should not submit")
	}
	if m.assistant.Len() != 0 {
		t.Error("shift+enter should not append a message")
	}
	if m.chat.GetInput() != "hello" {
		t.Errorf("input = %q, want it untouched by shift+enter", m.chat.GetInput())
	}

	if cmd := press(m, keys.Enter); cmd == nil {
		t.Error("enter should submit")
	}
	if m.assistant.Len() != 1 {
		t.Errorf("transcript length = %d, want 1", m.assistant.Len())
	}
}

func TestCompute_Success(t *testing.T) {
	svc := &fakeService{premium: 18234.5}
	notifier := &fakeNotifier{}
	m := testModel(svc, WithNotifier(notifier))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.cfg.SetNotificationsEnabled(true)

	press(m, keys.CtrlT)
	if m.ActiveTab() != TabPredict {
		t.Fatalf("ActiveTab() = %v, want predict", m.ActiveTab())
	}

	cmd := press(m, keys.Enter)
	if cmd == nil {
		t.Fatal("enter on the calculator should start a request")
	}
	if !m.slot.Busy() {
		t.Error("slot should be busy while calculating")
	}

	notify := m.handleSettled(cmd().(lifecycle.SettledMsg))
	m.sync()

	premium, ok := m.estimator.Result()
	if !ok || premium != 18234.5 {
		t.Errorf("Result() = %v, %v; want 18234.5", premium, ok)
	}
	if len(svc.forms) != 1 || svc.forms[0] != estimator.DefaultForm() {
		t.Errorf("forms sent = %+v", svc.forms)
	}
	if !strings.Contains(plainView(m), estimator.FormatRupees(18234.5)) {
		t.Error("view should show the formatted premium")
	}

	if notify == nil {
		t.Fatal("expected a notification command when notifications are enabled")
	}
	notify()
	if len(notifier.ready) != 1 || notifier.ready[0] != 18234.5 {
		t.Errorf("ready notifications = %v", notifier.ready)
	}
}

func TestCompute_FailureOnlyRaisesAlert(t *testing.T) {
	svc := &fakeService{predErr: errBackend}
	notifier := &fakeNotifier{}
	m := testModel(svc, WithNotifier(notifier))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.cfg.SetNotificationsEnabled(true)

	press(m, keys.CtrlT)
	cmd := press(m, keys.Enter)
	if cmd == nil {
		t.Fatal("enter on the calculator should start a request")
	}

	if notify := m.handleSettled(cmd().(lifecycle.SettledMsg)); notify != nil {
		notify()
	}
	m.sync()

	if !m.modal.IsVisible() {
		t.Fatal("failure should raise the alert")
	}
	if len(notifier.ready) != 0 {
		t.Errorf("desktop notifications = %v, want none on failure", notifier.ready)
	}
	if n := strings.Count(plainView(m), estimator.FailureNotice); n != 1 {
		t.Errorf("failure notice shown %d times, want 1", n)
	}
}

func TestCompute_NotificationsDisabled(t *testing.T) {
	svc := &fakeService{premium: 1000}
	m := testModelWithSize(svc, 120, 40)
	press(m, keys.CtrlT)

	if notify := m.handleSettled(press(m, keys.Enter)().(lifecycle.SettledMsg)); notify != nil {
		t.Error("no notification command expected when notifications are disabled")
	}
}

func TestCompute_FailureKeepsPremiumAndAlertsOnce(t *testing.T) {
	svc := &fakeService{premium: 25000}
	m := testModelWithSize(svc, 120, 40)
	press(m, keys.CtrlT)

	settle(m, press(m, keys.Enter))
	if premium, ok := m.estimator.Result(); !ok || premium != 25000 {
		t.Fatalf("Result() = %v, %v; want 25000", premium, ok)
	}

	svc.predErr = errBackend
	settle(m, press(m, keys.Enter))

	if premium, ok := m.estimator.Result(); !ok || premium != 25000 {
		t.Errorf("Result() after failure = %v, %v; want previous premium kept", premium, ok)
	}
	alert := m.modal.Alert()
	if alert == nil {
		t.Fatal("failure should raise the alert")
	}
	if alert.Message != estimator.FailureNotice {
		t.Errorf("alert message = %q", alert.Message)
	}
	if m.slot.Busy() {
		t.Error("slot should be released before the alert is dismissed")
	}
	view := plainView(m)
	if n := strings.Count(view, estimator.FailureNotice); n != 1 {
		t.Errorf("failure notice rendered %d times, want 1", n)
	}

	// The alert captures keys until dismissed.
	press(m, keys.CtrlT)
	if m.ActiveTab() != TabPredict {
		t.Error("shortcuts should be blocked while the alert is shown")
	}

	dismiss := press(m, keys.Escape)
	if dismiss == nil {
		t.Fatal("esc should dismiss the alert")
	}
	m.Update(dismiss())
	if m.modal.IsVisible() {
		t.Error("alert should be hidden after dismissal")
	}
	if premium, _ := m.estimator.Result(); premium != 25000 {
		t.Errorf("premium after dismissal = %v, want 25000", premium)
	}
}

func TestBusyDisablesBothTriggers(t *testing.T) {
	t.Run("chat in flight", func(t *testing.T) {
		svc := &fakeService{answer: "ok", premium: 1}
		m := testModelWithSize(svc, 120, 40)
		m = typeText(m, "first")
		pending := press(m, keys.Enter)

		m = typeText(m, "second")
		if m.chat.GetInput() != "" {
			t.Errorf("input = %q, want typing disabled while busy", m.chat.GetInput())
		}
		if cmd := press(m, keys.Enter); cmd != nil {
			t.Error("second chat submit should be refused")
		}

		press(m, keys.CtrlT)
		if cmd := press(m, keys.Enter); cmd != nil {
			t.Error("calculate should be refused while chat is in flight")
		}
		if !strings.Contains(plainView(m), "Calculating...") {
			t.Error("calculate button should show the busy label")
		}

		settle(m, pending)
		if len(svc.forms) != 0 {
			t.Errorf("predict should never have been called, got %d", len(svc.forms))
		}
		if cmd := press(m, keys.Enter); cmd == nil {
			t.Error("calculate should be enabled again after settlement")
		}
	})

	t.Run("predict in flight", func(t *testing.T) {
		svc := &fakeService{answer: "ok", premium: 1}
		m := testModelWithSize(svc, 120, 40)
		m = typeText(m, "question")
		press(m, keys.CtrlT)
		pending := press(m, keys.Enter)

		press(m, keys.CtrlT)
		if cmd := press(m, keys.Enter); cmd != nil {
			t.Error("chat submit should be refused while predict is in flight")
		}
		if m.assistant.Len() != 0 {
			t.Error("refused submit should not append a message")
		}
		if !m.chat.IsBusy() {
			t.Error("chat should show the typing indicator for any outstanding request")
		}

		settle(m, pending)
		if m.chat.GetInput() != "question" {
			t.Errorf("input = %q, want the draft kept", m.chat.GetInput())
		}
		if cmd := press(m, keys.Enter); cmd == nil {
			t.Error("chat submit should be enabled again after settlement")
		}
	})
}

func TestTabRoundTripPreservesState(t *testing.T) {
	svc := &fakeService{answer: "Covered.", premium: 9999}
	m := testModelWithSize(svc, 120, 40)

	m = typeText(m, "am I covered")
	settle(m, press(m, keys.Enter))
	m = typeText(m, "draft")

	press(m, keys.Alt2)
	pressForm(m, keys.Backspace)
	pressForm(m, keys.Backspace)
	m = typeText(m, "45")
	pressForm(m, keys.Tab)
	pressForm(m, keys.Right)
	pressForm(m, keys.Tab)

	form := m.predict.Form()
	want := estimator.DefaultForm().WithAge(45).WithSex(estimator.SexFemale)
	if form != want {
		t.Fatalf("edited form = %+v, want %+v", form, want)
	}

	press(m, keys.CtrlT)
	if m.ActiveTab() != TabChat {
		t.Fatalf("ActiveTab() = %v, want chat", m.ActiveTab())
	}
	if m.assistant.Len() != 2 {
		t.Errorf("transcript length = %d, want 2", m.assistant.Len())
	}
	if m.chat.GetInput() != "draft" {
		t.Errorf("input = %q, want draft kept", m.chat.GetInput())
	}

	press(m, keys.Alt2)
	if got := m.predict.Form(); got != form {
		t.Errorf("form = %+v, want %+v", got, form)
	}

	settle(m, press(m, keys.Enter))
	if len(svc.forms) != 1 || svc.forms[0] != want {
		t.Errorf("forms sent = %+v, want [%+v]", svc.forms, want)
	}
	if premium, ok := m.estimator.Result(); !ok || premium != 9999 {
		t.Errorf("Result() = %v, %v; want 9999", premium, ok)
	}

	press(m, keys.Alt1)
	if m.ActiveTab() != TabChat || !m.chat.IsFocused() {
		t.Error("alt+1 should return to a focused chat")
	}
}

func TestCopyAnswer(t *testing.T) {
	var copied []string
	svc := &fakeService{answer: "Deductibles apply."}
	m := testModel(svc, WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	}))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	press(m, keys.CtrlY)
	if len(copied) != 0 {
		t.Error("nothing should be copied before the first answer")
	}
	if !m.footer.HasFlash() {
		t.Error("copy without an answer should flash a warning")
	}

	m = typeText(m, "deductible?")
	settle(m, press(m, keys.Enter))
	press(m, keys.CtrlY)

	if len(copied) != 1 || copied[0] != "Deductibles apply." {
		t.Errorf("copied = %v", copied)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := testModelWithSize(&fakeService{}, 120, 40)
	_, cmd := m.Update(keyPress(keys.CtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestSync_SidebarAndFooterFollowSlot(t *testing.T) {
	m := testModelWithSize(&fakeService{answer: "ok"}, 120, 40)
	m = typeText(m, "hi")
	pending := press(m, keys.Enter)

	bindings := m.footer.Bindings()
	found := false
	for _, b := range bindings {
		if b.Desc == "waiting..." {
			found = true
		}
	}
	if !found {
		t.Errorf("footer bindings = %+v, want the waiting label", bindings)
	}

	settle(m, pending)
	for _, b := range m.footer.Bindings() {
		if b.Desc == "waiting..." {
			t.Error("footer should drop the waiting label after settlement")
		}
	}
}

// screenPos returns the terminal cell where text is first drawn.
func screenPos(t *testing.T, m *Model, text string) (x, y int) {
	t.Helper()
	for i, line := range strings.Split(plainView(m), "\n") {
		if idx := strings.Index(line, text); idx >= 0 {
			return ansi.StringWidth(line[:idx]), i
		}
	}
	t.Fatalf("%q not on screen", text)
	return 0, 0
}

func TestMouseDoubleClickSelectsTranscriptWord(t *testing.T) {
	m := testModelWithSize(&fakeService{answer: "Covered after two years."}, 120, 40)
	m = typeText(m, "maternity cover?")
	settle(m, press(m, keys.Enter))

	x, y := screenPos(t, m, "maternity")
	click := tea.MouseClickMsg{X: x + 2, Y: y, Button: tea.MouseLeft}
	m.Update(click)
	m.Update(click)

	if got := m.chat.GetSelectedText(); got != "maternity" {
		t.Errorf("selected %q, want maternity", got)
	}
}

func TestMouseIgnoredOnCalculatorTab(t *testing.T) {
	m := testModelWithSize(&fakeService{answer: "Covered."}, 120, 40)
	m = typeText(m, "maternity cover?")
	settle(m, press(m, keys.Enter))
	x, y := screenPos(t, m, "maternity")

	press(m, keys.CtrlT)
	click := tea.MouseClickMsg{X: x + 2, Y: y, Button: tea.MouseLeft}
	m.Update(click)
	m.Update(click)

	if m.chat.HasTextSelection() {
		t.Error("clicks on the calculator tab should not select transcript text")
	}
}

func TestSelectionCopy(t *testing.T) {
	var copied []string
	m := testModel(&fakeService{}, WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	}))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Update(ui.SelectionCopyMsg{Text: "cashless"})
	if len(copied) != 1 || copied[0] != "cashless" {
		t.Errorf("copied = %v", copied)
	}
	if !strings.Contains(plainView(m), "Copied selection to clipboard") {
		t.Error("copy should flash a confirmation")
	}
}

func TestSelectionCopy_ClipboardError(t *testing.T) {
	m := testModel(&fakeService{}, WithClipboard(func(string) error { return errBackend }))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Update(ui.SelectionCopyMsg{Text: "cashless"})
	if !strings.Contains(plainView(m), "Could not copy to clipboard") {
		t.Error("clipboard failure should flash an error")
	}
}
