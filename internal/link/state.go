package link

//go:generate stringer -type=State -trimprefix=State
type State uint32

const (
	StateIdle         State = iota // t=Start ->Scanning
	StateScanning                  // t=Found+Match ->Connecting, ScanComplete +rescan
	StateConnecting                // t=Connected ->Connected, ConnectError ->Disconnected|Error
	StateConnected                 // t=Settled ->Subscribing
	StateSubscribing               // t=Subscribed ->Streaming, SubscribeFailed +retry|Error
	StateStreaming                 // t=Notify ->Streaming, LinkLost ->Disconnected
	StateDisconnected              // t=Rescan ->Scanning
	StateError                     // t=Rescan ->Scanning unless halted, Start ->Scanning
)

// Active states own the single in-flight or established connection.
func (s State) Active() bool {
	switch s {
	case StateConnecting, StateConnected, StateSubscribing, StateStreaming:
		return true
	}
	return false
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
