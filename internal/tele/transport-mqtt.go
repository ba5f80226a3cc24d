package tele

import (
	"context"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"
	"github.com/temoto/imulink/helpers"
	"github.com/temoto/imulink/log2"
)

const defaultStorePath = "/var/lib/imulink/telemessages"

type transportMqtt struct {
	log            *log2.Log
	onCommand      func([]byte) bool
	m              mqtt.Client
	mopt           *mqtt.ClientOptions
	networkTimeout time.Duration

	clientID       string
	topicConnect   string
	topicState     string
	topicTelemetry string
	topicCommand   string
}

func (self *transportMqtt) Init(ctx context.Context, log *log2.Log, config Config, onCommand CommandCallback, willPayload []byte) error {
	self.log = log
	mqttLog := log.Clone(log2.LInfo)
	mqtt.ERROR = mqttLog
	mqtt.CRITICAL = mqttLog
	mqtt.WARN = mqttLog
	if config.MqttLogDebug {
		mqtt.DEBUG = log.Clone(log2.LDebug)
	}

	if _, err := url.ParseRequestURI(config.MqttBroker); err != nil {
		return errors.Annotatef(err, "tele broker=%s", config.MqttBroker)
	}

	self.clientID = config.clientID()
	credFun := func() (string, string) {
		return self.clientID, config.MqttPassword
	}
	self.onCommand = func(payload []byte) bool {
		return onCommand(ctx, payload)
	}
	self.topicConnect = TopicConnect(self.clientID)
	self.topicState = TopicState(self.clientID)
	self.topicTelemetry = TopicTelemetry(self.clientID)
	self.topicCommand = TopicCommand(self.clientID)
	keepAlive := helpers.IntSecondDefault(config.KeepaliveSec, 60*time.Second)
	pingTimeout := helpers.IntSecondDefault(config.PingTimeoutSec, 30*time.Second)
	self.networkTimeout = helpers.IntSecondDefault(config.NetworkTimeoutSec, DefaultNetworkTimeout)
	retryInterval := keepAlive / 2
	storePath := config.StorePath
	if storePath == "" {
		storePath = defaultStorePath
	}
	self.mopt = mqtt.NewClientOptions().
		AddBroker(config.MqttBroker).
		SetBinaryWill(self.topicConnect, willPayload, 1, true).
		SetClientID(self.clientID).
		SetCredentialsProvider(credFun).
		SetDefaultPublishHandler(self.messageHandler).
		SetKeepAlive(keepAlive).
		SetPingTimeout(pingTimeout).
		SetOrderMatters(false).
		SetResumeSubs(true).SetCleanSession(false).
		SetStore(mqtt.NewFileStore(storePath)).
		SetConnectRetryInterval(retryInterval).
		SetOnConnectHandler(self.onConnectHandler).
		SetConnectionLostHandler(self.connectLostHandler).
		SetConnectRetry(true)
	self.m = mqtt.NewClient(self.mopt)
	// with ConnectRetry token completes only on success, do not wait
	if token := self.m.Connect(); token.Error() != nil {
		self.log.Errorf("tele mqtt connect err=%v", token.Error())
	}
	return nil
}

func (self *transportMqtt) Close() {
	if self.m == nil {
		return
	}
	if self.m.IsConnectionOpen() {
		self.m.Publish(self.topicConnect, 1, true, []byte{0x00}).WaitTimeout(self.networkTimeout)
		self.m.Unsubscribe(self.topicCommand).WaitTimeout(self.networkTimeout)
	}
	self.m.Disconnect(uint(self.networkTimeout / time.Millisecond))
}

func (self *transportMqtt) publish(topic string, retain bool, payload []byte) bool {
	if !self.m.IsConnectionOpen() {
		return false
	}
	token := self.m.Publish(topic, 1, retain, payload)
	if !token.WaitTimeout(self.networkTimeout) {
		self.log.Errorf("tele mqtt publish topic=%s timeout", topic)
		return false
	}
	if err := token.Error(); err != nil {
		self.log.Errorf("tele mqtt publish topic=%s err=%v", topic, err)
		return false
	}
	return true
}

func (self *transportMqtt) SendState(payload []byte) bool {
	self.log.Debugf("tele mqtt send state payload=%x", payload)
	return self.publish(self.topicState, true, payload)
}

func (self *transportMqtt) SendTelemetry(payload []byte) bool {
	return self.publish(self.topicTelemetry, false, payload)
}

func (self *transportMqtt) SendCommandResponse(topicSuffix string, payload []byte) bool {
	topic := TopicResponse(self.clientID, topicSuffix)
	self.log.Debugf("tele mqtt publish command response to topic=%s", topic)
	return self.publish(topic, false, payload)
}

func (self *transportMqtt) messageHandler(c mqtt.Client, msg mqtt.Message) {
	if msg.Topic() != self.topicCommand {
		self.log.Errorf("tele mqtt message in unexpected topic=%s payload=%x", msg.Topic(), msg.Payload())
		return
	}
	self.onCommand(msg.Payload())
}

func (self *transportMqtt) connectLostHandler(c mqtt.Client, err error) {
	self.log.Infof("tele mqtt connection lost err=%v", err)
}

func (self *transportMqtt) onConnectHandler(c mqtt.Client) {
	self.log.Infof("tele mqtt connected")
	if token := c.Subscribe(self.topicCommand, 1, nil); token.Wait() && token.Error() != nil {
		self.log.Errorf("tele mqtt subscribe topic=%s err=%v", self.topicCommand, token.Error())
		return
	}
	c.Publish(self.topicConnect, 1, true, []byte{0x01})
}
