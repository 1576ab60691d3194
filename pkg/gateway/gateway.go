package gateway

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/ALPLab/sensorview-gateway/pkg/camera"
	"github.com/ALPLab/sensorview-gateway/pkg/osi"
	"github.com/ALPLab/sensorview-gateway/pkg/simulator"
	"github.com/avast/retry-go"
	"go.uber.org/zap"
)

// SensorConfig describes the virtual sensor the gateway exposes and the
// physical detectors reporting through it. A nil detector configuration
// leaves the matching sub-view collection empty.
type SensorConfig struct {
	SensorID      uint64
	HostVehicleID uint64

	// Mounting is the virtual sensor pose in vehicle coordinates,
	// MountingRMSE its root mean squared error.
	Mounting     *osi.MountingPosition
	MountingRMSE *osi.MountingPosition

	Generic    *osi.GenericSensorViewConfiguration
	Radar      *osi.RadarSensorViewConfiguration
	Lidar      *osi.LidarSensorViewConfiguration
	Camera     *osi.CameraSensorViewConfiguration
	Ultrasonic *osi.UltrasonicSensorViewConfiguration
}

func New(addressSimulator string, cfg *SensorConfig) (*Gateway, error) {
	l := zap.S().With("simulator", addressSimulator)
	l.Info("run sensor view gateway from simulator")

	g := &Gateway{
		address: addressSimulator,
		cfg:     cfg,
		metrics: NewMetrics(),
		log:     l,
	}
	if cfg.Camera != nil {
		conv, err := camera.NewConverter(cfg.Camera)
		if err != nil {
			return nil, fmt.Errorf("unable to init camera converter: %v", err)
		}
		g.converter = conv
	}
	return g, nil
}

// Gateway connects to the simulator, assembles one SensorView per
// telemetry tick and fans it out to subscribers.
type Gateway struct {
	cancel chan interface{}

	address string
	conn    io.ReadWriteCloser

	muWriter sync.Mutex
	writer   *bufio.Writer

	cfg       *SensorConfig
	converter *camera.Converter
	metrics   *Metrics

	muSubs      sync.Mutex
	subscribers []chan *osi.SensorView

	log *zap.SugaredLogger
}

// SubscribeSensorView registers a consumer of assembled sensor views.
func (g *Gateway) SubscribeSensorView() <-chan *osi.SensorView {
	g.muSubs.Lock()
	defer g.muSubs.Unlock()
	ch := make(chan *osi.SensorView)
	g.subscribers = append(g.subscribers, ch)
	return ch
}

// Metrics exposes the gateway counters.
func (g *Gateway) Metrics() *Metrics {
	return g.metrics
}

func (g *Gateway) Start() error {
	g.log.Info("connect to simulator")
	g.cancel = make(chan interface{})
	msgChan := make(chan *simulator.TelemetryMsg)

	go g.run(msgChan)

	for {
		select {
		case msg := <-msgChan:
			go g.publishSensorView(msg)
		case <-g.cancel:
			return nil
		}
	}
}

func (g *Gateway) Stop() {
	g.log.Info("close simulator gateway")
	close(g.cancel)

	if err := g.Close(); err != nil {
		g.log.Warnf("unexpected error while simulator connection is closed: %v", err)
	}

	g.muSubs.Lock()
	defer g.muSubs.Unlock()
	for _, ch := range g.subscribers {
		close(ch)
	}
	g.subscribers = nil
}

func (g *Gateway) Close() error {
	if g.conn == nil {
		g.log.Warn("no connection to close")
		return nil
	}
	if err := g.conn.Close(); err != nil {
		return fmt.Errorf("unable to close connection to simulator: %v", err)
	}
	return nil
}

func (g *Gateway) run(msgChan chan<- *simulator.TelemetryMsg) {
	err := retry.Do(func() error {
		g.log.Info("connect to simulator")
		conn, err := connect(g.address)
		if err != nil {
			return fmt.Errorf("unable to connect to simulator at %v", g.address)
		}
		g.conn = conn
		g.muWriter.Lock()
		g.writer = bufio.NewWriter(conn)
		g.muWriter.Unlock()
		g.log.Info("connection success")
		return nil
	},
		retry.Delay(1*time.Second),
	)
	if err != nil {
		g.log.Panicf("unable to connect to simulator: %v", err)
	}

	if g.cfg.Camera != nil {
		if err := g.writeCameraConfig(); err != nil {
			g.log.Errorf("unable to send camera config to simulator: %v", err)
		}
	}

	reader := bufio.NewReader(g.conn)

	err = retry.Do(
		func() error { return g.listen(msgChan, reader) },
	)
	if err != nil {
		g.log.Errorf("unable to connect to server: %v", err)
	}
}

func (g *Gateway) listen(msgChan chan<- *simulator.TelemetryMsg, reader *bufio.Reader) error {
	for {
		rawLine, err := reader.ReadBytes('\n')
		if err == io.EOF {
			g.log.Info("connection closed")
			return err
		}
		if err != nil {
			return fmt.Errorf("unable to read response: %v", err)
		}

		var msg simulator.TelemetryMsg
		err = json.Unmarshal(rawLine, &msg)
		if err != nil {
			g.log.Errorf("unable to unmarshal simulator msg '%v': %v", string(rawLine), err)
			continue
		}
		if simulator.MsgTypeTelemetry != msg.MsgType {
			continue
		}
		g.metrics.IncTelemetryReceived()
		msgChan <- &msg
	}
}

func (g *Gateway) publishSensorView(msgSim *simulator.TelemetryMsg) {
	view := g.buildSensorView(msgSim)
	g.metrics.IncSensorViewsBuilt()

	g.muSubs.Lock()
	subscribers := g.subscribers
	g.muSubs.Unlock()
	for _, ch := range subscribers {
		select {
		case ch <- view:
		case <-g.cancel:
			return
		}
	}
}

// buildSensorView maps one telemetry tick onto the wire message set. All
// raster-ordered sample lists keep the order the simulation emitted.
func (g *Gateway) buildSensorView(msgSim *simulator.TelemetryMsg) *osi.SensorView {
	ts := simulationTimestamp(msgSim.Time)

	view := &osi.SensorView{
		Version:              osi.Version(),
		Timestamp:            ts,
		SensorID:             &osi.Identifier{Value: g.cfg.SensorID},
		MountingPosition:     g.cfg.Mounting,
		MountingPositionRMSE: g.cfg.MountingRMSE,
		HostVehicleData: &osi.HostVehicleData{
			Location: &osi.BaseMoving{
				Position:    &osi.Vector3d{X: msgSim.PosX, Y: msgSim.PosY, Z: msgSim.PosZ},
				Orientation: &osi.Orientation3d{Roll: msgSim.Roll, Pitch: msgSim.Pitch, Yaw: msgSim.Yaw},
				Velocity:    &osi.Vector3d{X: msgSim.VelX, Y: msgSim.VelY, Z: msgSim.VelZ},
			},
		},
		GlobalGroundTruth: g.buildGroundTruth(msgSim, ts),
		HostVehicleID:     &osi.Identifier{Value: g.cfg.HostVehicleID},
	}

	if g.cfg.Generic != nil {
		view.GenericSensorViews = append(view.GenericSensorViews,
			&osi.GenericSensorView{ViewConfiguration: g.cfg.Generic})
	}
	if g.cfg.Radar != nil {
		sub := &osi.RadarSensorView{ViewConfiguration: g.cfg.Radar}
		for _, ret := range msgSim.RadarReturns {
			sub.Reflections = append(sub.Reflections, &osi.RadarReflection{
				SignalStrength:        ret.Strength,
				TimeOfFlight:          ret.TimeOfFlight,
				DopplerShift:          ret.Doppler,
				SourceHorizontalAngle: ret.Azimuth,
				SourceVerticalAngle:   ret.Elevation,
			})
		}
		g.metrics.AddRadarReflections(len(sub.Reflections))
		view.RadarSensorViews = append(view.RadarSensorViews, sub)
	}
	if g.cfg.Lidar != nil {
		sub := &osi.LidarSensorView{ViewConfiguration: g.cfg.Lidar}
		for _, ret := range msgSim.LidarReturns {
			sub.Reflections = append(sub.Reflections, &osi.LidarReflection{
				SignalStrength: ret.Strength,
				TimeOfFlight:   ret.TimeOfFlight,
				DopplerShift:   ret.Doppler,
			})
		}
		g.metrics.AddLidarReflections(len(sub.Reflections))
		view.LidarSensorViews = append(view.LidarSensorViews, sub)
	}
	if g.cfg.Camera != nil {
		sub := &osi.CameraSensorView{ViewConfiguration: g.cfg.Camera, ImageData: []byte{}}
		if len(msgSim.Image) > 0 {
			data, err := g.converter.Convert(msgSim.Image)
			if err != nil {
				g.log.Errorf("unable to convert camera frame: %v", err)
				g.metrics.IncFramesDropped()
			} else {
				sub.ImageData = data
				g.metrics.IncCameraFrames()
			}
		}
		view.CameraSensorViews = append(view.CameraSensorViews, sub)
	}
	if g.cfg.Ultrasonic != nil {
		view.UltrasonicSensorViews = append(view.UltrasonicSensorViews,
			&osi.UltrasonicSensorView{ViewConfiguration: g.cfg.Ultrasonic})
	}
	return view
}

// buildGroundTruth converts the visible object list. The host vehicle is
// always part of the result, whatever the simulation reported.
func (g *Gateway) buildGroundTruth(msgSim *simulator.TelemetryMsg, ts *osi.Timestamp) *osi.GroundTruth {
	gt := &osi.GroundTruth{
		Version:       osi.Version(),
		Timestamp:     ts,
		HostVehicleID: &osi.Identifier{Value: g.cfg.HostVehicleID},
	}
	hostSeen := false
	for _, obj := range msgSim.Objects {
		if obj.ID == g.cfg.HostVehicleID {
			hostSeen = true
		}
		gt.MovingObjects = append(gt.MovingObjects, &osi.MovingObject{
			ID: &osi.Identifier{Value: obj.ID},
			Base: &osi.BaseMoving{
				Position:    &osi.Vector3d{X: obj.PosX, Y: obj.PosY, Z: obj.PosZ},
				Orientation: &osi.Orientation3d{Yaw: obj.Yaw},
				Velocity:    &osi.Vector3d{X: obj.VelX, Y: obj.VelY, Z: obj.VelZ},
			},
			Type: objectTypeOf(obj.Class),
		})
	}
	if !hostSeen {
		gt.MovingObjects = append(gt.MovingObjects, &osi.MovingObject{
			ID: &osi.Identifier{Value: g.cfg.HostVehicleID},
			Base: &osi.BaseMoving{
				Position:    &osi.Vector3d{X: msgSim.PosX, Y: msgSim.PosY, Z: msgSim.PosZ},
				Orientation: &osi.Orientation3d{Roll: msgSim.Roll, Pitch: msgSim.Pitch, Yaw: msgSim.Yaw},
				Velocity:    &osi.Vector3d{X: msgSim.VelX, Y: msgSim.VelY, Z: msgSim.VelZ},
			},
			Type: osi.ObjectTypeCar,
		})
	}
	return gt
}

func objectTypeOf(class string) osi.ObjectType {
	switch class {
	case "car":
		return osi.ObjectTypeCar
	case "truck":
		return osi.ObjectTypeTruck
	case "pedestrian":
		return osi.ObjectTypePedestrian
	case "bicycle":
		return osi.ObjectTypeBicycle
	case "":
		return osi.ObjectTypeUnknown
	default:
		return osi.ObjectTypeOther
	}
}

// simulationTimestamp splits the simulation seconds into the wire form.
// The zero point is scene start, the same for every message of a run.
func simulationTimestamp(seconds float64) *osi.Timestamp {
	sec := int64(seconds)
	nanos := uint32((seconds - float64(sec)) * 1e9)
	return &osi.Timestamp{Seconds: sec, Nanos: nanos}
}

func (g *Gateway) writeCameraConfig() error {
	cfg := g.cfg.Camera
	msg := simulator.CamConfigMsg{
		MsgType: simulator.MsgTypeCameraConfig,
		ImgW:    strconv.Itoa(int(cfg.NumberOfPixelsHorizontal)),
		ImgH:    strconv.Itoa(int(cfg.NumberOfPixelsVertical)),
		ImgEnc:  simulator.CameraImageEncJpeg,
	}
	if mp := cfg.MountingPosition; mp != nil {
		if mp.Position != nil {
			msg.OffsetX = fmt.Sprintf("%.2f", mp.Position.X)
			msg.OffsetY = fmt.Sprintf("%.2f", mp.Position.Y)
			msg.OffsetZ = fmt.Sprintf("%.2f", mp.Position.Z)
		}
		if mp.Orientation != nil {
			msg.RotX = fmt.Sprintf("%.2f", mp.Orientation.Pitch)
		}
	}
	return g.writeMsg(&msg)
}

func (g *Gateway) writeMsg(msg interface{}) error {
	g.muWriter.Lock()
	defer g.muWriter.Unlock()

	content, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("unable to marshal msg \"%#v\": %v", msg, err)
	}
	if _, err = g.writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("unable to write msg \"%#v\" to simulator: %v", msg, err)
	}
	if err = g.writer.Flush(); err != nil {
		return fmt.Errorf("unable to flush msg \"%#v\" to simulator: %v", msg, err)
	}
	return nil
}

var connect = func(address string) (io.ReadWriteCloser, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to %v", address)
	}
	return conn, nil
}
