package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cj4mm/encryptest/internal/logging"
	"github.com/cj4mm/encryptest/pkg/chatlog"
	"github.com/cj4mm/encryptest/pkg/msgcrypt"
)

const idDisplayLen = 8

type chatApp struct {
	ui     *tview.Application
	view   *tview.TextView
	input  *tview.InputField
	prompt *tview.InputField
	layout *tview.Flex

	store  chatlog.Store
	sender string
	logger logging.Logger

	// seen messages by id, for /d lookups
	byID  map[string]chatlog.Message
	order []string

	// exactly one of these is set while the password prompt is shown
	pendingText string
	pendingMsg  *chatlog.Message
}

func newChatApp(store chatlog.Store, sender string, logger logging.Logger) *chatApp {
	a := &chatApp{
		ui:     tview.NewApplication(),
		store:  store,
		sender: sender,
		logger: logger,
		byID:   make(map[string]chatlog.Message),
	}

	a.view = tview.NewTextView()
	a.view.SetDynamicColors(true)
	a.view.SetScrollable(true)
	a.view.ScrollToEnd()
	a.view.SetBorder(true)
	a.view.SetTitle(" messages ")
	a.view.SetChangedFunc(func() {
		a.ui.Draw()
	})

	a.input = tview.NewInputField()
	a.input.SetLabel("> ")
	a.input.SetFieldWidth(0)
	a.input.SetDoneFunc(a.onInputDone)

	a.prompt = tview.NewInputField()
	a.prompt.SetLabel("password: ")
	a.prompt.SetFieldWidth(0)
	a.prompt.SetMaskCharacter('*')
	a.prompt.SetDoneFunc(a.onPromptDone)

	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.view, 0, 1, false).
		AddItem(a.input, 1, 0, true)

	return a
}

func (a *chatApp) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, cancelSub, err := a.store.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribing to chat log: %w", err)
	}
	defer cancelSub()

	go func() {
		for msg := range ch {
			msg := msg
			a.ui.QueueUpdateDraw(func() {
				a.renderMessage(msg)
			})
		}
	}()

	return a.ui.SetRoot(a.layout, true).SetFocus(a.input).Run()
}

func (a *chatApp) renderMessage(msg chatlog.Message) {
	if _, ok := a.byID[msg.ID]; !ok {
		a.byID[msg.ID] = msg
		a.order = append(a.order, msg.ID)
	}
	stamp := msg.CreatedAt.Local().Format("15:04")
	switch msg.Mode {
	case chatlog.ModeEncrypt:
		fmt.Fprintf(a.view, "[gray]%s[-] [teal]%s[-] [yellow]%s[-] [gray](encrypted, /d %s)[-]\n",
			stamp, tview.Escape(msg.Sender), tview.Escape(msg.Text), shortID(msg.ID))
	default:
		fmt.Fprintf(a.view, "[gray]%s[-] [teal]%s[-] %s\n",
			stamp, tview.Escape(msg.Sender), tview.Escape(msg.Text))
	}
}

func (a *chatApp) notef(format string, args ...any) {
	fmt.Fprintf(a.view, format+"\n", args...)
}

func (a *chatApp) onInputDone(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	text := strings.TrimSpace(a.input.GetText())
	a.input.SetText("")
	if text == "" {
		return
	}

	switch {
	case text == "/quit":
		a.ui.Stop()
	case strings.HasPrefix(text, "/e "):
		a.pendingText = strings.TrimSpace(strings.TrimPrefix(text, "/e "))
		if a.pendingText == "" {
			a.notef("[red]Nothing to encrypt.[-]")
			return
		}
		a.showPrompt()
	case strings.HasPrefix(text, "/d "):
		id := strings.TrimSpace(strings.TrimPrefix(text, "/d "))
		msg, ok := a.findMessage(id)
		if !ok {
			a.notef("[red]No encrypted message matches id %s.[-]", tview.Escape(id))
			return
		}
		a.pendingMsg = &msg
		a.showPrompt()
	default:
		a.append(chatlog.Message{Sender: a.sender, Text: text, Mode: chatlog.ModeDecrypt})
	}
}

func (a *chatApp) onPromptDone(key tcell.Key) {
	password := a.prompt.GetText()
	a.prompt.SetText("")
	a.hidePrompt()

	pendingText, pendingMsg := a.pendingText, a.pendingMsg
	a.pendingText, a.pendingMsg = "", nil

	if key != tcell.KeyEnter {
		a.notef("[gray]Cancelled.[-]")
		return
	}

	switch {
	case pendingText != "":
		encoded, err := msgcrypt.EncryptMessage(pendingText, password)
		if err != nil {
			// unreachable for the digest scheme, but surfaced anyway
			a.notef("[red]Encryption failed: %v[-]", err)
			return
		}
		a.append(chatlog.Message{Sender: a.sender, Text: encoded, Mode: chatlog.ModeEncrypt})
	case pendingMsg != nil:
		plain, err := msgcrypt.DecryptScheme(pendingMsg.Scheme, pendingMsg.Text, password, pendingMsg.Salt)
		switch {
		case errors.Is(err, msgcrypt.ErrInvalidEncoding):
			a.notef("[red]Entry %s is not valid ciphertext.[-]", shortID(pendingMsg.ID))
		case errors.Is(err, msgcrypt.ErrInvalidText):
			a.notef("[red]Wrong password or corrupted ciphertext for %s.[-]", shortID(pendingMsg.ID))
		case err != nil:
			a.notef("[red]Decryption failed: %v[-]", err)
		default:
			a.notef("[green]%s decrypted:[-] %s", shortID(pendingMsg.ID), tview.Escape(plain))
		}
	}
}

func (a *chatApp) append(msg chatlog.Message) {
	if err := a.store.Append(context.Background(), &msg); err != nil {
		a.logger.Error(context.Background(), "append failed", "error", err)
		a.notef("[red]Failed to append message: %v[-]", err)
	}
}

// findMessage resolves an id prefix to the most recent matching encrypted
// message.
func (a *chatApp) findMessage(idPrefix string) (chatlog.Message, bool) {
	for i := len(a.order) - 1; i >= 0; i-- {
		msg := a.byID[a.order[i]]
		if msg.Mode == chatlog.ModeEncrypt && strings.HasPrefix(msg.ID, idPrefix) {
			return msg, true
		}
	}
	return chatlog.Message{}, false
}

func (a *chatApp) showPrompt() {
	a.layout.RemoveItem(a.input)
	a.layout.AddItem(a.prompt, 1, 0, true)
	a.ui.SetFocus(a.prompt)
}

func (a *chatApp) hidePrompt() {
	a.layout.RemoveItem(a.prompt)
	a.layout.AddItem(a.input, 1, 0, true)
	a.ui.SetFocus(a.input)
}

func shortID(id string) string {
	if len(id) > idDisplayLen {
		return id[:idDisplayLen]
	}
	return id
}
