package gateway

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/ALPLab/sensorview-gateway/pkg/simulator"
	"go.uber.org/zap"
)

// SimMock plays the simulator side of the feed: it emits telemetry lines
// and records the config messages the gateway writes back.
type SimMock struct {
	initOnce sync.Once

	ln            net.Listener
	muConn        sync.Mutex
	conn          net.Conn
	writer        *bufio.Writer
	newConnection chan net.Conn

	notifyCamChan chan *simulator.CamConfigMsg

	logger *zap.SugaredLogger
}

func (c *SimMock) init() {
	c.notifyCamChan = make(chan *simulator.CamConfigMsg, 1)
}

func (c *SimMock) NotifyCamera() <-chan *simulator.CamConfigMsg {
	c.initOnce.Do(c.init)
	return c.notifyCamChan
}

func (c *SimMock) Start() error {
	c.logger = zap.S().With("simulator", "mock")
	c.initOnce.Do(c.init)
	c.newConnection = make(chan net.Conn)
	ln, err := net.Listen("tcp", "127.0.0.1:")
	c.ln = ln
	if err != nil {
		return fmt.Errorf("unable to listen on port: %v", err)
	}
	go func() {
		for {
			conn, err := c.ln.Accept()
			if err != nil {
				c.logger.Debugf("connection close: %v", err)
				break
			}
			if c.newConnection == nil {
				break
			}
			go c.handleInbound(conn)
			c.newConnection <- conn
		}
	}()
	return nil
}

func (c *SimMock) handleInbound(conn net.Conn) {
	reader := bufio.NewReader(conn)
	for {
		rawMsg, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				c.logger.Debug("connection closed")
				break
			}
			c.logger.Errorf("unable to read request: %v", err)
			return
		}
		var msg simulator.Msg
		if err := json.Unmarshal(rawMsg, &msg); err != nil {
			c.logger.Errorf("unable to unmarshal msg \"%v\": %v", string(rawMsg), err)
			continue
		}
		if msg.MsgType != simulator.MsgTypeCameraConfig {
			continue
		}
		var msgCam simulator.CamConfigMsg
		if err := json.Unmarshal(rawMsg, &msgCam); err != nil {
			c.logger.Errorf("unable to unmarshal camera msg \"%v\": %v", string(rawMsg), err)
			continue
		}
		c.notifyCamChan <- &msgCam
	}
}

func (c *SimMock) Addr() string {
	return c.ln.Addr().String()
}

func (c *SimMock) WaitConnection() {
	c.muConn.Lock()
	defer c.muConn.Unlock()
	c.logger.Debug("simulator waiting connection")
	if c.conn != nil {
		return
	}
	conn := <-c.newConnection
	c.logger.Debug("new connection")

	c.conn = conn
	c.writer = bufio.NewWriter(conn)
}

func (c *SimMock) EmitMsg(p string) (err error) {
	c.muConn.Lock()
	defer c.muConn.Unlock()
	_, err = c.writer.WriteString(p + "\n")
	if err != nil {
		c.logger.Errorf("unable to write response: %v", err)
	}
	if err == io.EOF {
		c.logger.Info("connection closed")
		return err
	}
	err = c.writer.Flush()
	return err
}

func (c *SimMock) EmitTelemetry(msg *simulator.TelemetryMsg) error {
	content, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("unable to marshal telemetry msg: %v", err)
	}
	return c.EmitMsg(string(content))
}

func (c *SimMock) Close() error {
	c.logger.Debug("close mock server")

	if c == nil {
		return nil
	}
	close(c.newConnection)
	c.newConnection = nil
	err := c.ln.Close()
	if err != nil {
		return fmt.Errorf("unable to close mock server: %v", err)
	}
	return nil
}
