package system

import (
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/unkn0wn-root/tinct/internal/errdef"
)

const pollInterval = 45 * time.Second

// Monitor watches the desktop for colour-scheme flips and reports each
// one through the onChange callback. It prefers portal change signals
// and polls only when the signal subscription is unavailable.
type Monitor struct {
	onChange func(Scheme)

	conn    *dbus.Conn
	signals chan *dbus.Signal
	done    chan struct{}
	stop    sync.Once
}

func NewMonitor(onChange func(Scheme)) *Monitor {
	return &Monitor{
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

func (m *Monitor) Start() error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return errdef.Wrap(errdef.CodeSystem, err, "connect session bus")
	}
	m.conn = conn

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(settingsIface),
		dbus.WithMatchMember("SettingChanged"),
	)
	if err != nil {
		go m.poll()
		return nil
	}

	m.signals = make(chan *dbus.Signal, 16)
	conn.Signal(m.signals)
	go m.processSignals()
	return nil
}

func (m *Monitor) processSignals() {
	for {
		select {
		case sig, ok := <-m.signals:
			if !ok {
				return
			}
			if scheme, ok := schemeFromSignal(sig); ok {
				m.onChange(scheme)
			}
		case <-m.done:
			return
		}
	}
}

func (m *Monitor) poll() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	last := SchemeUnknown
	for {
		select {
		case <-ticker.C:
			scheme, err := portalScheme()
			if err != nil || scheme == SchemeUnknown || scheme == last {
				continue
			}
			last = scheme
			m.onChange(scheme)
		case <-m.done:
			return
		}
	}
}

func (m *Monitor) Stop() {
	m.stop.Do(func() {
		close(m.done)
		if m.conn != nil && m.signals != nil {
			m.conn.RemoveSignal(m.signals)
		}
	})
}
