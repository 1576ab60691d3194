package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/ALPLab/sensorview-gateway/pkg/osi"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// SensorViewSource provides assembled sensor views, one per simulation
// tick. The gateway implements it.
type SensorViewSource interface {
	SubscribeSensorView() <-chan *osi.SensorView
}

func NewMsgPublisher(src SensorViewSource, p Publisher, topicSensorView string) *MsgPublisher {
	return &MsgPublisher{
		p:               p,
		topicSensorView: topicSensorView,
		src:             src,
		muCancel:        sync.Mutex{},
		cancel:          nil,
	}
}

// MsgPublisher forwards sensor views from a source to the broker.
type MsgPublisher struct {
	p               Publisher
	topicSensorView string

	src SensorViewSource

	muCancel sync.Mutex
	cancel   chan interface{}
}

func (m *MsgPublisher) Start() {
	m.muCancel.Lock()
	defer m.muCancel.Unlock()

	m.cancel = make(chan interface{})

	if m.topicSensorView != "" {
		go m.listenSensorView()
	}
}

func (m *MsgPublisher) Stop() {
	m.muCancel.Lock()
	defer m.muCancel.Unlock()
	close(m.cancel)
	m.cancel = nil
}

func (m *MsgPublisher) listenSensorView() {
	logr := zap.S().With("msg_type", "sensor_view")
	msgChan := m.src.SubscribeSensorView()
	for {
		select {
		case <-m.cancel:
			logr.Debug("exit listen sensor view loop")
			return
		case msg := <-msgChan:
			if msg == nil {
				// channel closed
				return
			}

			payload, err := osi.Marshal(msg)
			if err != nil {
				logr.Errorf("unable to marshal sensor view message: %v", err)
				continue
			}
			err = m.p.Publish(m.topicSensorView, payload)
			if err != nil {
				logr.Errorf("unable to publish sensor view message: %v", err)
			}
		}
	}
}

type Publisher interface {
	Publish(topic string, payload []byte) error
}

func NewMqttPublisher(client mqtt.Client) *MqttPublisher {
	return &MqttPublisher{client: client}
}

type MqttPublisher struct {
	client mqtt.Client
}

func (m *MqttPublisher) Publish(topic string, payload []byte) error {
	token := m.client.Publish(topic, 0, false, payload)
	token.WaitTimeout(10 * time.Millisecond)
	if err := token.Error(); err != nil {
		return fmt.Errorf("unable to publish to topic: %v", err)
	}
	return nil
}

// NewSensorViewSubscriber builds the consumer counterpart: it decodes
// sensor view payloads from a broker topic and hands them to a channel.
func NewSensorViewSubscriber(client mqtt.Client, topic string, qos byte) *SensorViewSubscriber {
	return &SensorViewSubscriber{
		client: client,
		topic:  topic,
		qos:    qos,
	}
}

type SensorViewSubscriber struct {
	client mqtt.Client
	topic  string
	qos    byte

	muViews   sync.Mutex
	viewsChan chan *osi.SensorView
}

// Subscribe registers on the topic and returns the sensor view channel.
func (s *SensorViewSubscriber) Subscribe() (<-chan *osi.SensorView, error) {
	s.muViews.Lock()
	defer s.muViews.Unlock()
	if s.viewsChan != nil {
		return s.viewsChan, nil
	}
	s.viewsChan = make(chan *osi.SensorView)

	token := s.client.Subscribe(s.topic, s.qos, s.onMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("unable to subscribe to topic %v: %v", s.topic, err)
	}
	return s.viewsChan, nil
}

func (s *SensorViewSubscriber) onMessage(_ mqtt.Client, message mqtt.Message) {
	var view osi.SensorView
	if err := osi.Unmarshal(message.Payload(), &view); err != nil {
		zap.S().Errorf("unable to unmarshal sensor view msg: %v", err)
		return
	}
	s.viewsChan <- &view
}

// Stop unsubscribes and closes the sensor view channel.
func (s *SensorViewSubscriber) Stop() {
	s.muViews.Lock()
	defer s.muViews.Unlock()
	if s.viewsChan == nil {
		return
	}
	token := s.client.Unsubscribe(s.topic)
	token.WaitTimeout(10 * time.Millisecond)
	if err := token.Error(); err != nil {
		zap.S().Warnf("unable to unsubscribe from topic %v: %v", s.topic, err)
	}
	close(s.viewsChan)
	s.viewsChan = nil
}
