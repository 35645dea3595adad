//go:build linux

package notify

import (
	"errors"
	"os"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/jamwaves/internal/catalog"
)

// fakeBus records the last call and answers with id or err.
type fakeBus struct {
	calls  []string
	args   []any
	id     uint32
	err    error
	noBody bool
}

func (f *fakeBus) Call(method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.calls = append(f.calls, method)
	f.args = args
	if f.err != nil {
		return &dbus.Call{Err: f.err}
	}
	if f.noBody {
		return &dbus.Call{}
	}
	return &dbus.Call{Body: []any{f.id}}
}

func TestDBusNotify_Arguments(t *testing.T) {
	bus := &fakeBus{id: 42}
	n := &dbusNotifier{obj: bus}

	notif := NowPlaying(catalog.Track{Name: "Night Drive", ArtistName: "Lumen", AlbumName: "Coast"})
	notif.ReplacesID = 41

	id, err := n.Notify(notif)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)

	require.Equal(t, []string{"org.freedesktop.Notifications.Notify"}, bus.calls)
	require.Len(t, bus.args, 8)
	assert.Equal(t, appName, bus.args[0])
	assert.Equal(t, uint32(41), bus.args[1])
	assert.Equal(t, DefaultIcon, bus.args[2])
	assert.Equal(t, "Night Drive", bus.args[3])
	assert.Equal(t, "Lumen · Coast", bus.args[4])
	assert.Equal(t, DefaultTimeout, bus.args[7])

	hints, ok := bus.args[6].(map[string]dbus.Variant)
	require.True(t, ok)
	assert.Equal(t, byte(UrgencyLow), hints["urgency"].Value())
	assert.Equal(t, musicHint, hints["category"].Value())
}

func TestDBusNotify_Error(t *testing.T) {
	n := &dbusNotifier{obj: &fakeBus{err: errors.New("no daemon")}}

	id, err := n.Notify(Notification{Title: "x"})
	require.Error(t, err)
	assert.Zero(t, id)
	assert.Contains(t, err.Error(), "no daemon")
}

func TestDBusNotify_EmptyReply(t *testing.T) {
	n := &dbusNotifier{obj: &fakeBus{noBody: true}}

	id, err := n.Notify(Notification{Title: "x"})
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestDBusClose(t *testing.T) {
	bus := &fakeBus{}
	n := &dbusNotifier{obj: bus}

	require.NoError(t, n.Close(0))
	assert.Empty(t, bus.calls, "zero id never reaches the bus")

	require.NoError(t, n.Close(7))
	assert.Equal(t, []string{"org.freedesktop.Notifications.CloseNotification"}, bus.calls)
	assert.Equal(t, []any{uint32(7)}, bus.args)
}

func TestNew_SessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	n, err := New()
	require.NoError(t, err)
	require.NotNil(t, n)
}
