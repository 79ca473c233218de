// Package system reads the desktop colour-scheme preference so theme
// sync can follow the OS between dark and light.
package system

import (
	"github.com/godbus/dbus/v5"
	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/tinct/internal/errdef"
)

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

func (s Scheme) String() string {
	switch s {
	case SchemeDark:
		return "dark"
	case SchemeLight:
		return "light"
	default:
		return "unknown"
	}
}

const (
	portalDest     = "org.freedesktop.portal.Desktop"
	portalPath     = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	settingsIface  = "org.freedesktop.portal.Settings"
	appearanceNS   = "org.freedesktop.appearance"
	colorSchemeKey = "color-scheme"
)

// DetectScheme asks the desktop portal for the colour-scheme preference
// and falls back to probing the terminal background. The terminal probe
// writes an OSC query, so call this before the TUI takes over the tty.
func DetectScheme() Scheme {
	if scheme, err := portalScheme(); err == nil && scheme != SchemeUnknown {
		return scheme
	}
	if termenv.HasDarkBackground() {
		return SchemeDark
	}
	return SchemeLight
}

func portalScheme() (Scheme, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return SchemeUnknown, errdef.Wrap(errdef.CodeSystem, err, "connect session bus")
	}
	obj := conn.Object(portalDest, portalPath)

	var value dbus.Variant
	err = obj.Call(settingsIface+".ReadOne", 0, appearanceNS, colorSchemeKey).Store(&value)
	if err != nil {
		// Portals before version 2 only expose Read, which nests the
		// value in an extra variant.
		if err := obj.Call(settingsIface+".Read", 0, appearanceNS, colorSchemeKey).Store(&value); err != nil {
			return SchemeUnknown, errdef.Wrap(errdef.CodeSystem, err, "read colour scheme")
		}
		if inner, ok := value.Value().(dbus.Variant); ok {
			value = inner
		}
	}
	return schemeFromValue(value.Value()), nil
}

func schemeFromValue(value interface{}) Scheme {
	var pref uint32
	switch v := value.(type) {
	case uint32:
		pref = v
	case int32:
		pref = uint32(v)
	case uint64:
		pref = uint32(v)
	default:
		return SchemeUnknown
	}
	switch pref {
	case 1:
		return SchemeDark
	case 2:
		return SchemeLight
	default:
		return SchemeUnknown
	}
}

func schemeFromSignal(sig *dbus.Signal) (Scheme, bool) {
	if sig == nil || sig.Name != settingsIface+".SettingChanged" {
		return SchemeUnknown, false
	}
	if len(sig.Body) < 3 {
		return SchemeUnknown, false
	}
	namespace, ok := sig.Body[0].(string)
	if !ok || namespace != appearanceNS {
		return SchemeUnknown, false
	}
	key, ok := sig.Body[1].(string)
	if !ok || key != colorSchemeKey {
		return SchemeUnknown, false
	}
	variant, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return SchemeUnknown, false
	}
	scheme := schemeFromValue(variant.Value())
	return scheme, scheme != SchemeUnknown
}
