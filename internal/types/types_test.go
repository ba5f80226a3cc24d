package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/imulink/internal/mac"
)

func TestErrorKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PermissionDenied", ErrorPermissionDenied.String())
	assert.Equal(t, "ErrorKind(?)", ErrorKind(200).String())
	assert.False(t, ErrorPermissionDenied.Recoverable())
	assert.False(t, ErrorInvalidFormat.Recoverable())
	assert.True(t, ErrorLinkLost.Recoverable())
	assert.True(t, ErrorUnknown.Recoverable())
}

func TestAdvertisementString(t *testing.T) {
	t.Parallel()

	a := Advertisement{Address: mac.MustParse("28cdc114b83c"), Name: "PICO-IMU", RSSI: -60, HasRSSI: true}
	assert.Equal(t, `28:CD:C1:14:B8:3C name="PICO-IMU" rssi=-60`, a.String())
	a.HasRSSI = false
	assert.Equal(t, `28:CD:C1:14:B8:3C name="PICO-IMU"`, a.String())
}
