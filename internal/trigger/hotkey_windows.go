//go:build windows

package trigger

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/lxn/win"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

// RegisterHotKey consommerait la frappe (la copie n'aurait jamais lieu) :
// on observe le clavier avec un hook bas niveau qui laisse passer chaque touche.
var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLL = 13
	wmKeyDown    = 0x0100
	wmSysKeyDown = 0x0104
)

// KBDLLHOOKSTRUCT
type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type hotkeyListener struct {
	combo Combination
	log   *zap.SugaredLogger
}

// hookTarget : ce que le hook actif surveille et où il signale les déclenchements.
type hookTarget struct {
	vk     uint32
	combo  Combination
	events chan<- struct{}
}

// un seul hook à la fois (le verrou d'instance et la boucle de Run l'assurent)
var activeHook atomic.Pointer[hookTarget]

// Le runtime ne libère jamais un callback et leur nombre est limité : il est
// créé une seule fois et partagé par tous les listeners (un par rechargement).
var keyboardCallback = sync.OnceValue(func() uintptr {
	return windows.NewCallback(keyboardProc)
})

func keyboardProc(code, wParam, lParam uintptr) uintptr {
	if int32(code) >= 0 && (wParam == wmKeyDown || wParam == wmSysKeyDown) {
		if t := activeHook.Load(); t != nil {
			// lParam pointe sur un KBDLLHOOKSTRUCT géré par le système ; la lecture
			// via &lParam évite la conversion uintptr -> unsafe.Pointer signalée par vet
			t.handle(*(**kbdllHookStruct)(unsafe.Pointer(&lParam)), keyDown)
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, code, wParam, lParam)
	return r
}

// handle signale un déclenchement si la touche et les modificateurs correspondent.
func (t *hookTarget) handle(kb *kbdllHookStruct, isDown func(vk uint32) bool) bool {
	if kb == nil || kb.VkCode != t.vk || !t.combo.modifiersMatch(isDown) {
		return false
	}
	select {
	case t.events <- struct{}{}:
	default:
		// un déclenchement est déjà en attente
	}
	return true
}

func newHotkeyListener(c Combination, log *zap.SugaredLogger) (Listener, error) {
	if c.Key == "" {
		return nil, fmt.Errorf("%w : aucune touche principale", ErrInvalidCombination)
	}
	if err := procSetWindowsHookExW.Find(); err != nil {
		return nil, fmt.Errorf("%w : %v", ErrUnsupported, err)
	}
	return &hotkeyListener{combo: c, log: log}, nil
}

func (h *hotkeyListener) Name() string {
	return h.combo.String()
}

// Run installe le hook sur un thread système dédié et appelle fire depuis la
// goroutine courante, un déclenchement à la fois.
func (h *hotkeyListener) Run(ctx context.Context, fire func()) error {
	events := make(chan struct{}, 1)
	threadID := make(chan uint32, 1)
	done := make(chan error, 1)

	go func() {
		// le hook et la boucle de messages doivent vivre sur le même thread
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		done <- h.messageLoop(events, threadID)
	}()

	var tid uint32
	select {
	case tid = <-threadID:
	case err := <-done:
		return err
	}
	h.log.Debugw("hook clavier installé", "hotkey", h.combo.String(), "thread", tid)

	for {
		select {
		case <-ctx.Done():
			procPostThreadMessageW.Call(uintptr(tid), uintptr(win.WM_QUIT), 0, 0)
			return <-done
		case err := <-done:
			return err
		case <-events:
			fire()
		}
	}
}

func (h *hotkeyListener) messageLoop(events chan<- struct{}, threadID chan<- uint32) error {
	target := &hookTarget{vk: h.combo.virtualKey(), combo: h.combo, events: events}
	activeHook.Store(target)
	defer activeHook.CompareAndSwap(target, nil)

	hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, keyboardCallback(), 0, 0)
	if hook == 0 {
		return fmt.Errorf("installation du hook clavier : %w", err)
	}
	defer procUnhookWindowsHookEx.Call(hook)

	// force la création de la file de messages avant d'annoncer le thread,
	// sinon PostThreadMessageW peut échouer
	var msg win.MSG
	win.PeekMessage(&msg, 0, win.WM_USER, win.WM_USER, win.PM_NOREMOVE)
	threadID <- windows.GetCurrentThreadId()

	for {
		switch win.GetMessage(&msg, 0, 0, 0) {
		case 0: // WM_QUIT
			return nil
		case -1:
			return errors.New("boucle de messages : GetMessage a échoué")
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func keyDown(vk uint32) bool {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(r)&0x8000 != 0
}
