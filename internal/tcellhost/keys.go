package tcellhost

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

var keyNames = map[tcell.Key]string{
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
}

// keyString names ev the way keybindings spell keys ("tab", "ctrl+c",
// "space", "q").
func keyString(ev *tcell.EventKey) string {
	if name, ok := keyNames[ev.Key()]; ok {
		return name
	}
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			name = "alt+" + name
		}
		return name
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return "ctrl+" + string(rune('a'+k-tcell.KeyCtrlA))
	}
	return strings.ToLower(ev.Name())
}
