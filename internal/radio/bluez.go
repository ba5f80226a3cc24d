package radio

import (
	"github.com/godbus/dbus/v5"
	"github.com/juju/errors"
)

const (
	DefaultAdapterName = "hci0"

	bluezBus      = "org.bluez"
	bluezAdapter1 = "org.bluez.Adapter1"
)

// AdapterPowered reads Adapter1.Powered over system D-Bus.
// Unprivileged processes typically get org.freedesktop.DBus.Error.AccessDenied here,
// which Classify reports as ErrorPermissionDenied.
func AdapterPowered(name string) (bool, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return false, errors.Annotate(err, "system bus")
	}
	// shared connection from dbus.SystemBus(), do not close
	obj := conn.Object(bluezBus, dbus.ObjectPath("/org/bluez/"+name))
	v, err := obj.GetProperty(bluezAdapter1 + ".Powered")
	if err != nil {
		return false, err
	}
	powered, ok := v.Value().(bool)
	if !ok {
		return false, errors.Errorf("adapter=%s Powered unexpected type %T", name, v.Value())
	}
	return powered, nil
}
