package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	cubeclient "github.com/cubeworks/go-cube-client/pkg/client"
)

const helpControls = "[yellow]↑/↓[white] select  [yellow]Tab[white] toggle focus  [yellow]r[white] refresh  [yellow]q[white]/[yellow]Ctrl+C[white] quit"

type TUI struct {
	app       *tview.Application
	cubesList *tview.List
	detail    *tview.TextView
	help      *tview.TextView

	client *cubeclient.Client
	guids  []string

	baseCtx    context.Context
	baseCancel context.CancelFunc
	stopOnce   sync.Once

	manifestMu     sync.Mutex
	manifestCancel context.CancelFunc
}

// configureStyles sets the tview global styles for the TUI.
// Note: This modifies global state in tview.Styles.
func configureStyles() {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.BorderColor = tcell.ColorWhite
	tview.Styles.TitleColor = tcell.ColorWhite
	tview.Styles.PrimaryTextColor = tcell.ColorWhite
	tview.Styles.SecondaryTextColor = tcell.ColorYellow
}

// NewTUI creates a new TUI instance. The provided context controls the
// lifetime of background operations; pass nil to use context.Background().
func NewTUI(ctx context.Context, client *cubeclient.Client) *TUI {
	if ctx == nil {
		ctx = context.Background()
	}
	baseCtx, baseCancel := context.WithCancel(ctx)

	configureStyles()

	t := &TUI{
		app:        tview.NewApplication(),
		client:     client,
		baseCtx:    baseCtx,
		baseCancel: baseCancel,
	}

	t.cubesList = tview.NewList()
	t.cubesList.SetBorder(true).SetTitle(fmt.Sprintf("Cubes (%s)", client.BaseURL()))
	t.cubesList.ShowSecondaryText(false)
	t.cubesList.SetWrapAround(false)
	t.cubesList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index >= 0 && index < len(t.guids) {
			t.loadManifest(t.guids[index])
		}
	})

	t.detail = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true).SetScrollable(true)
	t.detail.SetBorder(true).SetTitle("Manifest")

	t.help = tview.NewTextView().SetDynamicColors(true)
	t.help.SetText(helpControls)
	t.help.SetBorder(true)

	content := tview.NewFlex().
		AddItem(t.cubesList, 0, 1, true).
		AddItem(t.detail, 0, 2, false)
	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(t.help, 3, 0, false)

	t.app.SetRoot(root, true)
	t.app.SetInputCapture(t.onInputCapture)

	t.refresh()
	return t
}

// Run starts the TUI event loop. It blocks until the application exits
// and returns any error that occurred.
func (t *TUI) Run() error {
	return t.app.Run()
}

func (t *TUI) Stop() {
	t.stopOnce.Do(func() {
		if t.baseCancel != nil {
			t.baseCancel()
		}
		t.app.Stop()
	})
}

func (t *TUI) onInputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyTab:
		if t.cubesList.HasFocus() {
			t.app.SetFocus(t.detail)
		} else {
			t.app.SetFocus(t.cubesList)
		}
		return nil
	case event.Rune() == 'r':
		t.refresh()
		return nil
	case event.Rune() == 'q':
		t.Stop()
		return nil
	}
	return event
}

func (t *TUI) refresh() {
	t.detail.SetText("loading…")
	go func() {
		guids, err := t.client.Cubes().ListAll(t.baseCtx)
		t.app.QueueUpdateDraw(func() {
			if err != nil {
				t.detail.SetText(fmt.Sprintf("[red]listing failed:[white] %v", err))
				return
			}
			t.guids = guids
			t.cubesList.Clear()
			for _, guid := range guids {
				t.cubesList.AddItem(guid, "", 0, nil)
			}
			if len(guids) == 0 {
				t.detail.SetText("no cubes")
				return
			}
			t.loadManifest(guids[0])
		})
	}()
}

// loadManifest fetches the manifest for guid in the background,
// cancelling any fetch still in flight for a previous selection.
func (t *TUI) loadManifest(guid string) {
	t.manifestMu.Lock()
	if t.manifestCancel != nil {
		t.manifestCancel()
	}
	ctx, cancel := context.WithCancel(t.baseCtx)
	t.manifestCancel = cancel
	t.manifestMu.Unlock()

	go func() {
		defer cancel()
		manifest, err := t.client.Cubes().Manifest(ctx, guid)
		if ctx.Err() != nil {
			return
		}
		t.app.QueueUpdateDraw(func() {
			if err != nil {
				t.detail.SetText(fmt.Sprintf("[red]manifest failed:[white] %v", err))
				return
			}
			data, err := json.MarshalIndent(manifest, "", "  ")
			if err != nil {
				t.detail.SetText(err.Error())
				return
			}
			t.detail.SetText(string(data))
			t.detail.ScrollToBeginning()
		})
	}()
}
