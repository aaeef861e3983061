package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/killallgit/parley/pkg/events"
	"github.com/killallgit/parley/pkg/logger"
	"github.com/killallgit/parley/pkg/page"
	"github.com/killallgit/parley/pkg/session"
)

// Options configures an App.
type Options struct {
	// Events, when set, is drained into the UI loop until it is closed.
	Events <-chan events.Event
}

// App draws the session onto a tcell screen and feeds it input.
type App struct {
	screen tcell.Screen
	ctrl   *session.Controller
	opts   Options

	ctx      context.Context
	input    InputField
	lastErr  string
	pageArea Rect
	// seen holds each page's entry count when it was last on screen.
	seen map[*page.Page]int

	log *logger.Logger
}

// NewApp creates an App. The screen must already be initialized.
func NewApp(screen tcell.Screen, ctrl *session.Controller, opts Options) *App {
	return &App{
		screen: screen,
		ctrl:   ctrl,
		opts:   opts,
		ctx:    context.Background(),
		input:  NewInputField(0),
		seen:   make(map[*page.Page]int),
		log:    logger.WithComponent("tui"),
	}
}

// Input returns the current editor state.
func (a *App) Input() InputField { return a.input }

// Run processes events until the user quits or ctx is done. It draws once
// per event.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.ctx = ctx

	if a.opts.Events != nil {
		go a.forward(ctx, a.opts.Events)
	}
	go func() {
		<-ctx.Done()
		quitCtx, stop := context.WithTimeout(context.Background(), time.Second)
		defer stop()
		a.post(quitCtx, NewQuitEvent())
	}()

	a.log.Info("Event loop started", "pages", len(a.ctrl.Pages()))
	for {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.HandleEvent(ev) {
			a.log.Info("Event loop stopped")
			if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}
	}
}

// forward copies store events into the tcell queue.
func (a *App) forward(ctx context.Context, ch <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			a.post(ctx, NewBackendEvent(ev))
		}
	}
}

// post retries while the screen's event queue is full.
func (a *App) post(ctx context.Context, ev tcell.Event) {
	for a.screen.PostEvent(ev) != nil {
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// HandleEvent applies one event. It returns false when the app should stop.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	case *BackendEvent:
		a.handleBackend(ev.Event)
	case *SendResultEvent:
		a.handleSendResult(ev)
	case *QuitEvent:
		return false
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	action, index := ActionFor(ev, a.input.IsEmpty())
	cur := a.ctrl.Current()

	switch action {
	case ActionQuit:
		return false
	case ActionNextPage:
		a.ctrl.NextPage()
	case ActionPrevPage:
		a.ctrl.PrevPage()
	case ActionJumpPage:
		a.ctrl.SetActive(index)
	case ActionPageUp:
		cur.PageUpBy(max(1, a.pageArea.Height))
	case ActionPageDown:
		cur.PageDownBy(max(1, a.pageArea.Height))
	case ActionLineUp:
		cur.PageUp()
	case ActionLineDown:
		cur.PageDown()
	case ActionSubmit:
		a.submit()
	case ActionEdit:
		a.input = editInput(a.input, ev)
	}
	return true
}

func (a *App) submit() {
	line := a.input.Content
	a.input = a.input.Clear()
	if strings.TrimSpace(line) == "" {
		return
	}
	a.lastErr = ""

	out, ok := a.ctrl.Submit(line)
	if !ok {
		return
	}

	ctx := a.ctx
	go func() {
		id, err := a.ctrl.Send(ctx, out)
		a.post(ctx, NewSendResultEvent(out.ChatID, id, err))
	}()
}

func (a *App) handleSendResult(ev *SendResultEvent) {
	if ev.Err != nil {
		a.log.Error("Send failed", "chat_id", ev.ChatID, "error", ev.Err)
		a.lastErr = "send failed"
		a.ctrl.AppendStatus(fmt.Sprintf("send failed: %v", ev.Err))
		return
	}
	a.ctrl.RouteAppend(ev.ChatID, ev.MsgID)
}

func (a *App) handleBackend(ev events.Event) {
	a.ctrl.LogEvent(ev.Code, ev.Data1, ev.Data2)

	switch ev.Code {
	case events.IncomingMsg:
		chatID, msgID, ok := eventIDs(ev)
		if !ok {
			a.log.Warn("Malformed incoming message event", "event", ev.String())
			return
		}
		a.ctrl.RouteAppend(chatID, msgID)
	case events.Warning:
		a.ctrl.AppendStatus(fmt.Sprintf("warning: %v", ev.Data2))
	case events.Error:
		a.ctrl.AppendStatus(fmt.Sprintf("error: %v", ev.Data2))
	}
}

// Draw renders the whole screen.
func (a *App) Draw() {
	w, h := a.screen.Size()
	tabArea, pageArea, inputArea, statusArea := NewLayout(w, h).CalculateAreas()
	a.pageArea = pageArea

	cur := a.ctrl.Current()
	a.seen[cur] = cur.Len()

	RenderTabs(a.screen, a.tabBar(w), tabArea)
	RenderPage(a.screen, cur, pageArea)
	RenderInput(a.screen, a.input.WithWidth(inputArea.Width), inputArea)
	RenderStatus(a.screen, a.statusBar(w), statusArea)

	a.screen.Show()
}

func (a *App) tabBar(width int) TabBar {
	pages := a.ctrl.Pages()
	tabs := make([]Tab, len(pages))
	for i, p := range pages {
		tabs[i] = Tab{
			Name:     p.Name(),
			Active:   i == a.ctrl.ActiveIndex(),
			Activity: p.Len() > a.seen[p],
		}
	}
	return NewTabBar(width).WithTabs(tabs)
}

func (a *App) statusBar(width int) StatusBar {
	cur := a.ctrl.Current()
	return NewStatusBar(width).
		WithPage(cur.Name(), a.ctrl.ActiveIndex(), len(a.ctrl.Pages())).
		WithScrollback(cur.Scrollback()).
		WithError(a.lastErr)
}
