// Package radio is the boundary to the host Bluetooth LE stack.
// All operations are asynchronous, results arrive via callbacks on arbitrary goroutines.
package radio

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/juju/errors"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

type (
	FoundFunc  func(types.Advertisement)
	ErrorFunc  func(error)
	NotifyFunc func([]byte)
	LostFunc   func(mac.Address, error)
)

// Nordic UART service, used by the Pico firmware.
const (
	NUSService = "6E400001-B5A3-F393-E0A9-E50E24DCCA9E"
	NUSRX      = "6E400002-B5A3-F393-E0A9-E50E24DCCA9E" // host writes
	NUSTX      = "6E400003-B5A3-F393-E0A9-E50E24DCCA9E" // peripheral notifies
)

type Radio interface {
	// onComplete(nil) when scan window ends, onComplete(err) when scan failed.
	// Not called after StopDiscovery.
	StartDiscovery(onFound FoundFunc, onComplete ErrorFunc)
	StopDiscovery()
	Connect(addr mac.Address, onConnected func(), onError ErrorFunc)
	// onResult(nil) once notifications are enabled.
	Subscribe(addr mac.Address, service, char string, onNotify NotifyFunc, onResult ErrorFunc)
	Write(addr mac.Address, service, char string, b []byte) error
	Disconnect(addr mac.Address)
	SetLinkLostHandler(LostFunc)
}

// Error carries failure class chosen by radio implementation.
type Error struct {
	Kind types.ErrorKind
	Op   string
	Err  error
}

func NewError(kind types.ErrorKind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (self *Error) Error() string {
	if self.Err == nil {
		return fmt.Sprintf("radio %s: %s", self.Op, self.Kind)
	}
	return fmt.Sprintf("radio %s: %s: %v", self.Op, self.Kind, self.Err)
}

func (self *Error) Unwrap() error { return self.Err }

// BlueZ and D-Bus error names mapped to failure classes.
var dbusKinds = map[string]types.ErrorKind{
	"org.bluez.Error.NotPermitted":             types.ErrorPermissionDenied,
	"org.bluez.Error.NotAuthorized":            types.ErrorPermissionDenied,
	"org.bluez.Error.AuthenticationFailed":     types.ErrorPermissionDenied,
	"org.freedesktop.DBus.Error.AccessDenied":  types.ErrorPermissionDenied,
	"org.freedesktop.DBus.Error.AuthFailed":    types.ErrorPermissionDenied,
	"org.bluez.Error.NotReady":                 types.ErrorLinkLost,
	"org.bluez.Error.NotConnected":             types.ErrorLinkLost,
	"org.bluez.Error.Failed":                   types.ErrorLinkLost,
	"org.bluez.Error.InProgress":               types.ErrorLinkLost,
	"org.bluez.Error.AlreadyConnected":         types.ErrorLinkLost,
	"org.freedesktop.DBus.Error.NoReply":       types.ErrorLinkLost,
	"org.freedesktop.DBus.Error.UnknownObject": types.ErrorLinkLost,
}

var permissionHints = []string{"not permitted", "notpermitted", "not authorized", "access denied", "permission denied"}

// Classify maps any error from the radio stack to a failure class.
func Classify(err error) types.ErrorKind {
	if err == nil {
		return types.ErrorNone
	}
	switch e := errors.Cause(err).(type) {
	case *Error:
		return e.Kind
	case dbus.Error:
		if k, ok := dbusKinds[e.Name]; ok {
			return k
		}
	case *dbus.Error:
		if k, ok := dbusKinds[e.Name]; ok {
			return k
		}
	}
	s := strings.ToLower(err.Error())
	for _, h := range permissionHints {
		if strings.Contains(s, h) {
			return types.ErrorPermissionDenied
		}
	}
	return types.ErrorUnknown
}
