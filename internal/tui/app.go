package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/bus"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/chat"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/identity"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/sync"
	"github.com/innocencedq/hackathon-mpit-kitwit/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Controller is the slice of the sync engine the TUI drives.
type Controller interface {
	Snapshot() sync.State
	SelectChat(ctx context.Context, c *chat.Summary)
	SendMessage(ctx context.Context, text string)
	SearchChats(ctx context.Context, query string)
	ClearError()
}

// Identity supplies the local user for the status bar.
type Identity interface {
	Current() (identity.User, bool)
}

// App is the main TUI application shell. It renders engine snapshots and
// never mutates conversation state itself; all writes go through the
// controller, and refresh signals arrive over the bus.
type App struct {
	app       *tview.Application
	pages     *tview.Pages
	engine    Controller
	identity  Identity
	bus       *bus.Bus
	logger    *zap.Logger
	flash     Flash
	statusBar *views.StatusBar
	chatList  *views.ChatList
	msgView   *views.MessageView
	composer  *views.Composer
	searchBar *views.SearchBar
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(e Controller, id Identity, b *bus.Bus, logger *zap.Logger, profileName string) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		engine:    e,
		identity:  id,
		bus:       b,
		logger:    logger,
		statusBar: views.NewStatusBar(),
		chatList:  views.NewChatList(),
		msgView:   views.NewMessageView(),
		composer:  views.NewComposer(),
		searchBar: views.NewSearchBar(),
		ctx:       ctx,
		cancel:    cancel,
	}

	a.statusBar.SetProfile(profileName)
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *App) setupCallbacks() {
	a.chatList.SetSelectedFunc(func(row, col int) {
		if c := a.chatList.Selected(); c != nil {
			a.openChat(c)
		}
	})

	a.composer.SetOnSend(func(text string) {
		go func() {
			a.engine.SendMessage(a.ctx, text)
		}()
	})

	a.searchBar.SetOnQuery(func(query string) {
		go func() {
			a.engine.SearchChats(a.ctx, query)
		}()
		a.app.SetFocus(a.chatList)
	})
}

func (a *App) setupLayout() {
	listFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.searchBar, 1, 0, false).
		AddItem(a.chatList, 0, 1, true)

	chatFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.msgView, 0, 1, false).
		AddItem(a.composer, 1, 0, true)

	a.pages.AddPage("chats", listFlex, true, true)
	a.pages.AddPage("chat", chatFlex, true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(root, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		currentPage, _ := a.pages.GetFrontPage()

		if event.Key() == tcell.KeyEscape {
			if currentPage == "chat" {
				a.closeChat()
				return nil
			}
			a.app.SetFocus(a.chatList)
			return nil
		}

		// Let text input widgets handle all keys normally.
		focused := a.app.GetFocus()
		if _, ok := focused.(*tview.InputField); ok {
			return event
		}

		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case 'q':
				a.app.Stop()
				return nil
			case 's':
				if currentPage == "chats" {
					a.app.SetFocus(a.searchBar)
					return nil
				}
			case 'i':
				// 'i' focuses the composer (only when not already in an input field).
				if currentPage == "chat" {
					a.app.SetFocus(a.composer.InputField)
					return nil
				}
			}
		}

		return event
	})
}

func (a *App) openChat(c *chat.Summary) {
	name := c.DisplayName
	a.msgView.SetChatName(name)
	a.msgView.Clear()
	a.pages.SwitchToPage("chat")
	a.app.SetFocus(a.composer.InputField)

	go func() {
		a.engine.SelectChat(a.ctx, c)
	}()
}

func (a *App) closeChat() {
	a.pages.SwitchToPage("chats")
	a.app.SetFocus(a.chatList)
	go func() {
		a.engine.SelectChat(a.ctx, nil)
	}()
}

// Run starts the TUI application. It blocks until the user quits.
func (a *App) Run() error {
	go a.watchEvents()
	return a.app.Run()
}

// watchEvents translates bus signals into redraws. Every signal triggers a
// full snapshot render; the engine coalesces state, so dropped events only
// delay a repaint until the next one.
func (a *App) watchEvents() {
	ch, unsub := a.bus.Subscribe("", 64)
	defer unsub()

	// Periodic repaint keeps the clock and flash expiry honest even when
	// the engine is quiet.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt := <-ch:
			if evt.Kind == "sync.error" {
				st := a.engine.Snapshot()
				if st.Error != "" {
					a.flash.Set(st.Error, 5*time.Second)
					a.engine.ClearError()
				}
			}
			a.app.QueueUpdateDraw(a.refresh)
		case <-ticker.C:
			a.app.QueueUpdateDraw(a.refresh)
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) refresh() {
	st := a.engine.Snapshot()

	if user, ok := a.identity.Current(); ok {
		a.statusBar.SetUser(user.Name)
	}
	a.statusBar.SetLoading(st.Loading)
	a.statusBar.SetFlash(a.flash.Get())

	currentPage, _ := a.pages.GetFrontPage()
	switch currentPage {
	case "chats":
		a.chatList.Update(st.Chats)
	case "chat":
		if st.Selected == nil {
			// Selection vanished underneath the conversation view.
			a.pages.SwitchToPage("chats")
			a.app.SetFocus(a.chatList)
			return
		}
		a.msgView.SetChatName(st.Selected.DisplayName)
		a.msgView.Update(st.Messages)
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
