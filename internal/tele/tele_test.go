package tele_test

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/protobuf/descriptor"
	proto "github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/imulink/internal/link"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/tele"
	"github.com/temoto/imulink/internal/types"
	"github.com/temoto/imulink/log2"
	"github.com/temoto/spq"
)

type transportMock struct {
	onCommand tele.CommandCallback
	will      []byte
	refuse    int32 // count of SendTelemetry calls to refuse
	closed    int32
	slow      chan struct{} // SendState waits for close when set

	state     chan []byte
	telemetry chan []byte
	response  chan []byte
}

func (self *transportMock) Init(ctx context.Context, log *log2.Log, config tele.Config, onCommand tele.CommandCallback, willPayload []byte) error {
	self.onCommand = onCommand
	self.will = willPayload
	return nil
}

func (self *transportMock) SendState(payload []byte) bool {
	if self.slow != nil {
		<-self.slow
	}
	self.state <- payload
	return true
}

func (self *transportMock) SendTelemetry(payload []byte) bool {
	if atomic.AddInt32(&self.refuse, -1) >= 0 {
		return false
	}
	self.telemetry <- payload
	return true
}

func (self *transportMock) SendCommandResponse(topicSuffix string, payload []byte) bool {
	self.response <- payload
	return true
}

func (self *transportMock) Close() { atomic.AddInt32(&self.closed, 1) }

type tenv struct {
	ctx   context.Context
	trans *transportMock
	tele  *tele.Tele
}

func testSetup(t testing.TB, enabled bool) *tenv {
	env := &tenv{
		ctx: context.Background(),
		trans: &transportMock{
			state:     make(chan []byte, 32),
			telemetry: make(chan []byte, 32),
			response:  make(chan []byte, 32),
		},
	}
	env.tele = tele.NewWithTransporter(env.trans)
	require.NoError(t, env.tele.Init(env.ctx, log2.NewTest(t, log2.LDebug), tele.Config{
		Enabled:     enabled,
		ClientID:    "imu-test",
		LogDebug:    true,
		PersistPath: spq.OnlyForTesting,
	}))
	return env
}

func recv(t testing.TB, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case b := <-ch:
		return b
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timeout")
	}
	return nil
}

func TestTele(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		check func(testing.TB, *tenv)
	}{
		{"samples", func(t testing.TB, env *tenv) {
			require.NoError(t, env.tele.WriteSamples([]types.Sample{
				{Timestamp: 0.5, Accel: types.Vec3{X: 0.1, Z: 1}, Gyro: types.Vec3{Y: -2}},
				{Timestamp: 0.52, Accel: types.Vec3{X: 0.2, Z: 1}},
			}))
			var tm tele.Telemetry
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.telemetry), &tm))
			assert.Equal(t, "imu-test", tm.ClientId)
			assert.Equal(t, uint64(1), tm.Seq)
			require.Len(t, tm.Samples, 2)
			assert.Equal(t, 0.5, tm.Samples[0].T)
			assert.Equal(t, float32(-2), tm.Samples[0].Gy)
			assert.Equal(t, float32(0.2), tm.Samples[1].Ax)
		}},
		{"retry", func(t testing.TB, env *tenv) {
			atomic.StoreInt32(&env.trans.refuse, 2)
			require.NoError(t, env.tele.WriteSamples([]types.Sample{{Timestamp: 1}}))
			var tm tele.Telemetry
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.telemetry), &tm))
			assert.Len(t, tm.Samples, 1)
		}},
		{"report", func(t testing.TB, env *tenv) {
			require.NoError(t, env.tele.Report(link.Stat{Sessions: 3, LinkLost: 2, Samples: 1000}))
			var tm tele.Telemetry
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.telemetry), &tm))
			require.NotNil(t, tm.Stat)
			assert.Equal(t, `sessions:3 link_lost:2 samples:1000 `, proto.CompactTextString(tm.Stat))
		}},
		{"error", func(t testing.TB, env *tenv) {
			env.tele.Error(fmt.Errorf("adapter gone"))
			var tm tele.Telemetry
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.telemetry), &tm))
			require.NotNil(t, tm.Error)
			assert.Equal(t, "adapter gone", tm.Error.Message)
		}},
		{"state", func(t testing.TB, env *tenv) {
			var will tele.State
			require.NoError(t, proto.Unmarshal(env.trans.will, &will))
			assert.Equal(t, uint32(link.StateIdle), will.State)

			addr := mac.MustParse("28:CD:C1:14:B8:3C")
			env.tele.State(link.Status{State: link.StateStreaming, Address: addr, Since: time.Now()})
			var s tele.State
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.state), &s))
			assert.Equal(t, uint32(link.StateStreaming), s.State)
			assert.Equal(t, "28:CD:C1:14:B8:3C", s.Address)
			env.tele.State(link.Status{State: link.StateStreaming, Address: addr, Since: time.Now()})
			env.tele.State(link.Status{State: link.StateError, Reason: types.ErrorPermissionDenied, Since: time.Now()})
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.state), &s))
			assert.Equal(t, uint32(link.StateError), s.State)
			assert.Equal(t, uint32(types.ErrorPermissionDenied), s.Reason)
			assert.Len(t, env.trans.state, 0, "repeated state must not be sent")
		}},
		{"state-slow-transport", func(t testing.TB, env *tenv) {
			slow := make(chan struct{})
			env.trans.slow = slow
			sequence := []link.State{link.StateScanning, link.StateConnecting, link.StateConnected, link.StateSubscribing, link.StateStreaming}
			done := make(chan struct{})
			go func() {
				defer close(done)
				for _, st := range sequence {
					env.tele.State(link.Status{State: st, Since: time.Now()})
				}
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				require.FailNow(t, "State blocked on slow transport")
			}
			close(slow)

			// first state may be in flight, the rest collapse to latest
			var s tele.State
			for s.State != uint32(link.StateStreaming) {
				require.NoError(t, proto.Unmarshal(recv(t, env.trans.state), &s))
			}
			assert.Len(t, env.trans.state, 0)
		}},
		{"command", func(t testing.TB, env *tenv) {
			var called tele.Command_Task
			env.tele.OnCommand(func(ctx context.Context, task tele.Command_Task) error {
				called = task
				return nil
			})
			b, err := proto.Marshal(&tele.Command{Id: 42, Task: tele.Command_FLUSH, ReplyTopic: "t"})
			require.NoError(t, err)
			assert.True(t, env.trans.onCommand(env.ctx, b))
			var r tele.Response
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.response), &r))
			assert.Equal(t, uint32(42), r.CommandId)
			assert.Equal(t, "", r.Error)
			assert.Equal(t, "", r.INTERNALTopic)
			assert.Equal(t, tele.Command_FLUSH, called)
		}},
		{"command-error", func(t testing.TB, env *tenv) {
			b, err := proto.Marshal(&tele.Command{Id: 7, Task: tele.Command_REPORT})
			require.NoError(t, err)
			env.trans.onCommand(env.ctx, b)
			var r tele.Response
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.response), &r))
			assert.Equal(t, uint32(7), r.CommandId)
			assert.Contains(t, r.Error, "handler not set")

			b, err = proto.Marshal(&tele.Command{Id: 8, Task: tele.Command_REPORT, Deadline: 1})
			require.NoError(t, err)
			env.trans.onCommand(env.ctx, b)
			require.NoError(t, proto.Unmarshal(recv(t, env.trans.response), &r))
			assert.Equal(t, uint32(8), r.CommandId)
			assert.Equal(t, "deadline", r.Error)
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			env := testSetup(t, true)
			defer env.tele.Close()
			c.check(t, env)
		})
	}
}

func TestTeleDisabled(t *testing.T) {
	t.Parallel()
	env := testSetup(t, false)
	assert.False(t, env.tele.Enabled())
	assert.NoError(t, env.tele.WriteSamples([]types.Sample{{Timestamp: 1}}))
	env.tele.State(link.Status{State: link.StateScanning})
	assert.NoError(t, env.tele.Close())
	assert.Len(t, env.trans.state, 0)
	assert.Len(t, env.trans.telemetry, 0)
	assert.Nil(t, env.trans.onCommand, "transport must not be initialized when disabled")
}

func TestTeleClose(t *testing.T) {
	t.Parallel()
	env := testSetup(t, true)
	require.NoError(t, env.tele.Close())
	assert.Equal(t, int32(1), atomic.LoadInt32(&env.trans.closed))
	require.NoError(t, env.tele.Close())
	assert.Equal(t, int32(1), atomic.LoadInt32(&env.trans.closed))
}

func TestProtoDescriptor(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, proto.FileDescriptor("tele.proto"))
	assert.Equal(t, reflect.TypeOf(&tele.Telemetry_Error{}), proto.MessageType("tele.Telemetry.Error"))
	assert.Equal(t, int32(tele.Command_FLUSH), proto.EnumValueMap("tele.Command_Task")["FLUSH"])

	fd, md := descriptor.ForMessage(&tele.Command{})
	assert.Equal(t, "tele", fd.GetPackage())
	assert.Equal(t, "github.com/temoto/imulink/internal/tele", fd.GetOptions().GetGoPackage())
	assert.Equal(t, "Command", md.GetName())
	require.Len(t, md.EnumType, 1)
	assert.Equal(t, "Task", md.EnumType[0].GetName())

	_, md = descriptor.ForMessage(&tele.Response{})
	require.Len(t, md.Field, 3)
	assert.Equal(t, "INTERNAL_topic", md.Field[2].GetName())
	assert.Equal(t, int32(2048), md.Field[2].GetNumber())
}
