package types

// ErrorKind classifies failures crossing the radio boundary and the decoder.
type ErrorKind uint8

const (
	ErrorNone ErrorKind = iota
	ErrorInvalidFormat
	ErrorUnrecognizedFormat
	ErrorPermissionDenied
	ErrorLinkLost
	ErrorSubscribeFailed
	ErrorUnknown
)

var errorKindNames = [...]string{
	ErrorNone:               "None",
	ErrorInvalidFormat:      "InvalidFormat",
	ErrorUnrecognizedFormat: "UnrecognizedFormat",
	ErrorPermissionDenied:   "PermissionDenied",
	ErrorLinkLost:           "LinkLost",
	ErrorSubscribeFailed:    "SubscribeFailed",
	ErrorUnknown:            "Unknown",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "ErrorKind(?)"
}

// Recoverable reports whether the pipeline retries on its own after this failure.
func (k ErrorKind) Recoverable() bool {
	switch k {
	case ErrorLinkLost, ErrorSubscribeFailed, ErrorUnknown:
		return true
	}
	return false
}

func (k ErrorKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
