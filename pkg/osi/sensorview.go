package osi

import "google.golang.org/protobuf/encoding/protowire"

// Tags of the SensorView envelope. 1-8 are the core fields; sub-view
// collections start at 1000 so the core can grow without colliding.
// Renumbering any of these breaks wire compatibility.
const (
	sensorViewFieldVersion              = 1
	sensorViewFieldTimestamp            = 2
	sensorViewFieldSensorID             = 3
	sensorViewFieldMountingPosition     = 4
	sensorViewFieldMountingPositionRMSE = 5
	sensorViewFieldHostVehicleData      = 6
	sensorViewFieldGlobalGroundTruth    = 7
	sensorViewFieldHostVehicleID        = 8
	sensorViewFieldGeneric              = 1000
	sensorViewFieldRadar                = 1001
	sensorViewFieldLidar                = 1002
	sensorViewFieldCamera               = 1003
	sensorViewFieldUltrasonic           = 1004
)

// SensorView is the envelope a virtual sensor receives per simulation
// tick. One virtual sensor can aggregate several physical detectors of the
// same or different technologies; each detector reports through one entry
// of the matching sub-view collection, and a collection stays empty when
// the technology is absent from the modeled sensor.
//
// All data is relative to the virtual sensor's mounting position, with two
// exceptions: the per-technology raw data is relative to each physical
// detector's own mounting position as declared in its view configuration,
// and GlobalGroundTruth is in global coordinates.
type SensorView struct {
	// Version of the message set spoken by the sender.
	Version *InterfaceVersion
	// Timestamp is the simulation time of this sample. The zero point is
	// simulation-defined and consistent across all messages of a run.
	Timestamp *Timestamp
	// SensorID identifies the virtual sensor. Physical detectors carry
	// their own ids inside the sub-view configurations.
	SensorID *Identifier
	// MountingPosition is the virtual sensor's pose in vehicle
	// coordinates, MountingPositionRMSE its root mean squared error.
	MountingPosition     *MountingPosition
	MountingPositionRMSE *MountingPosition
	// HostVehicleData is what the host knows about itself, a model input.
	HostVehicleData *HostVehicleData
	// GlobalGroundTruth is the full or filtered world state in global
	// coordinates. It always contains the host vehicle.
	GlobalGroundTruth *GroundTruth
	// HostVehicleID locates the host vehicle within GlobalGroundTruth.
	HostVehicleID *Identifier

	GenericSensorViews    []*GenericSensorView
	RadarSensorViews      []*RadarSensorView
	LidarSensorViews      []*LidarSensorView
	CameraSensorViews     []*CameraSensorView
	UltrasonicSensorViews []*UltrasonicSensorView
}

func (x *SensorView) appendTo(b []byte) []byte {
	if x.Version != nil {
		b = appendMessage(b, sensorViewFieldVersion, x.Version.appendTo)
	}
	if x.Timestamp != nil {
		b = appendMessage(b, sensorViewFieldTimestamp, x.Timestamp.appendTo)
	}
	if x.SensorID != nil {
		b = appendMessage(b, sensorViewFieldSensorID, x.SensorID.appendTo)
	}
	if x.MountingPosition != nil {
		b = appendMessage(b, sensorViewFieldMountingPosition, x.MountingPosition.appendTo)
	}
	if x.MountingPositionRMSE != nil {
		b = appendMessage(b, sensorViewFieldMountingPositionRMSE, x.MountingPositionRMSE.appendTo)
	}
	if x.HostVehicleData != nil {
		b = appendMessage(b, sensorViewFieldHostVehicleData, x.HostVehicleData.appendTo)
	}
	if x.GlobalGroundTruth != nil {
		b = appendMessage(b, sensorViewFieldGlobalGroundTruth, x.GlobalGroundTruth.appendTo)
	}
	if x.HostVehicleID != nil {
		b = appendMessage(b, sensorViewFieldHostVehicleID, x.HostVehicleID.appendTo)
	}
	for _, v := range x.GenericSensorViews {
		b = appendMessage(b, sensorViewFieldGeneric, v.appendTo)
	}
	for _, v := range x.RadarSensorViews {
		b = appendMessage(b, sensorViewFieldRadar, v.appendTo)
	}
	for _, v := range x.LidarSensorViews {
		b = appendMessage(b, sensorViewFieldLidar, v.appendTo)
	}
	for _, v := range x.CameraSensorViews {
		b = appendMessage(b, sensorViewFieldCamera, v.appendTo)
	}
	for _, v := range x.UltrasonicSensorViews {
		b = appendMessage(b, sensorViewFieldUltrasonic, v.appendTo)
	}
	return b
}

func (x *SensorView) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n, err := skipField(b, num, typ)
			if err != nil {
				return err
			}
			b = b[n:]
			continue
		}
		v, n, err := consumeBytes(b)
		if err != nil {
			return err
		}
		switch num {
		case sensorViewFieldVersion:
			x.Version = &InterfaceVersion{}
			err = x.Version.decode(v)
		case sensorViewFieldTimestamp:
			x.Timestamp = &Timestamp{}
			err = x.Timestamp.decode(v)
		case sensorViewFieldSensorID:
			x.SensorID = &Identifier{}
			err = x.SensorID.decode(v)
		case sensorViewFieldMountingPosition:
			x.MountingPosition = &MountingPosition{}
			err = x.MountingPosition.decode(v)
		case sensorViewFieldMountingPositionRMSE:
			x.MountingPositionRMSE = &MountingPosition{}
			err = x.MountingPositionRMSE.decode(v)
		case sensorViewFieldHostVehicleData:
			x.HostVehicleData = &HostVehicleData{}
			err = x.HostVehicleData.decode(v)
		case sensorViewFieldGlobalGroundTruth:
			x.GlobalGroundTruth = &GroundTruth{}
			err = x.GlobalGroundTruth.decode(v)
		case sensorViewFieldHostVehicleID:
			x.HostVehicleID = &Identifier{}
			err = x.HostVehicleID.decode(v)
		case sensorViewFieldGeneric:
			sub := &GenericSensorView{}
			if err = sub.decode(v); err == nil {
				x.GenericSensorViews = append(x.GenericSensorViews, sub)
			}
		case sensorViewFieldRadar:
			sub := &RadarSensorView{}
			if err = sub.decode(v); err == nil {
				x.RadarSensorViews = append(x.RadarSensorViews, sub)
			}
		case sensorViewFieldLidar:
			sub := &LidarSensorView{}
			if err = sub.decode(v); err == nil {
				x.LidarSensorViews = append(x.LidarSensorViews, sub)
			}
		case sensorViewFieldCamera:
			sub := &CameraSensorView{}
			if err = sub.decode(v); err == nil {
				x.CameraSensorViews = append(x.CameraSensorViews, sub)
			}
		case sensorViewFieldUltrasonic:
			sub := &UltrasonicSensorView{}
			if err = sub.decode(v); err == nil {
				x.UltrasonicSensorViews = append(x.UltrasonicSensorViews, sub)
			}
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// GenericSensorView carries only its configuration snapshot. It is the
// extension point for sensor technologies the message set does not model.
type GenericSensorView struct {
	ViewConfiguration *GenericSensorViewConfiguration
}

func (x *GenericSensorView) appendTo(b []byte) []byte {
	if x.ViewConfiguration != nil {
		b = appendMessage(b, 1, x.ViewConfiguration.appendTo)
	}
	return b
}

func (x *GenericSensorView) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if num == 1 && typ == protowire.BytesType {
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.ViewConfiguration = &GenericSensorViewConfiguration{}
			if err := x.ViewConfiguration.decode(v); err != nil {
				return err
			}
			b = b[n:]
			continue
		}
		n, err := skipField(b, num, typ)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// RadarReflection is one sampled return along a traced radar ray.
//
// It is a different type from LidarReflection on purpose: the two live in
// different sub-views, carry different fields and are not interchangeable.
type RadarReflection struct {
	// SignalStrength of the reflection [dB]. Includes the TX and RX
	// antenna gains and losses and all scattering and absorption losses
	// along the traced path.
	SignalStrength float64
	// TimeOfFlight of the signal [s], proportional to the range.
	TimeOfFlight float64
	// DopplerShift of the reflection [Hz], relative to the emitter
	// frequency of the configuration.
	DopplerShift float64
	// SourceHorizontalAngle is the horizontal emission angle of the ray
	// at the TX antenna [rad].
	SourceHorizontalAngle float64
	// SourceVerticalAngle is the vertical emission angle of the ray at
	// the TX antenna [rad].
	SourceVerticalAngle float64
}

func (x *RadarReflection) appendTo(b []byte) []byte {
	b = appendDouble(b, 1, x.SignalStrength)
	b = appendDouble(b, 2, x.TimeOfFlight)
	b = appendDouble(b, 3, x.DopplerShift)
	b = appendDouble(b, 4, x.SourceHorizontalAngle)
	b = appendDouble(b, 5, x.SourceVerticalAngle)
	return b
}

func (x *RadarReflection) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ == protowire.Fixed64Type && num >= 1 && num <= 5 {
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			switch num {
			case 1:
				x.SignalStrength = v
			case 2:
				x.TimeOfFlight = v
			case 3:
				x.DopplerShift = v
			case 4:
				x.SourceHorizontalAngle = v
			case 5:
				x.SourceVerticalAngle = v
			}
			b = b[n:]
			continue
		}
		n, err := skipField(b, num, typ)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// RadarSensorView is the raw view of one radar detector: its configuration
// snapshot and one reflection per traced ray. Reflections are in raster
// order, left to right then top to bottom over the configured ray grid;
// consumers rely on that order and it must never be changed.
type RadarSensorView struct {
	ViewConfiguration *RadarSensorViewConfiguration
	Reflections       []*RadarReflection
}

func (x *RadarSensorView) appendTo(b []byte) []byte {
	if x.ViewConfiguration != nil {
		b = appendMessage(b, 1, x.ViewConfiguration.appendTo)
	}
	for _, r := range x.Reflections {
		b = appendMessage(b, 2, r.appendTo)
	}
	return b
}

func (x *RadarSensorView) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.ViewConfiguration = &RadarSensorViewConfiguration{}
			if err := x.ViewConfiguration.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			r := &RadarReflection{}
			if err := r.decode(v); err != nil {
				return err
			}
			x.Reflections = append(x.Reflections, r)
			b = b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// LidarReflection is one sampled return along a traced lidar ray. The ray
// direction is implied by the reflection's index in the configured ray
// grid, so no angles are carried per reflection.
type LidarReflection struct {
	// SignalStrength of the reflection [dB], including all losses along
	// the traced path.
	SignalStrength float64
	// TimeOfFlight of the signal [s], proportional to the range.
	TimeOfFlight float64
	// DopplerShift of the reflection [Hz], relative to the beam
	// frequency of the configuration.
	DopplerShift float64
}

func (x *LidarReflection) appendTo(b []byte) []byte {
	b = appendDouble(b, 1, x.SignalStrength)
	b = appendDouble(b, 2, x.TimeOfFlight)
	b = appendDouble(b, 3, x.DopplerShift)
	return b
}

func (x *LidarReflection) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ == protowire.Fixed64Type && num >= 1 && num <= 3 {
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			switch num {
			case 1:
				x.SignalStrength = v
			case 2:
				x.TimeOfFlight = v
			case 3:
				x.DopplerShift = v
			}
			b = b[n:]
			continue
		}
		n, err := skipField(b, num, typ)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// LidarSensorView is the raw view of one lidar detector. Reflections
// follow the same raster-order contract as radar.
type LidarSensorView struct {
	ViewConfiguration *LidarSensorViewConfiguration
	Reflections       []*LidarReflection
}

func (x *LidarSensorView) appendTo(b []byte) []byte {
	if x.ViewConfiguration != nil {
		b = appendMessage(b, 1, x.ViewConfiguration.appendTo)
	}
	for _, r := range x.Reflections {
		b = appendMessage(b, 2, r.appendTo)
	}
	return b
}

func (x *LidarSensorView) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.ViewConfiguration = &LidarSensorViewConfiguration{}
			if err := x.ViewConfiguration.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			r := &LidarReflection{}
			if err := r.decode(v); err != nil {
				return err
			}
			x.Reflections = append(x.Reflections, r)
			b = b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// CameraSensorView is the raw view of one camera detector. ImageData is an
// opaque byte sequence laid out as declared by the configuration; it can
// legitimately be empty.
type CameraSensorView struct {
	ViewConfiguration *CameraSensorViewConfiguration
	ImageData         []byte
}

func (x *CameraSensorView) appendTo(b []byte) []byte {
	if x.ViewConfiguration != nil {
		b = appendMessage(b, 1, x.ViewConfiguration.appendTo)
	}
	b = appendBytes(b, 2, x.ImageData)
	return b
}

func (x *CameraSensorView) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.ViewConfiguration = &CameraSensorViewConfiguration{}
			if err := x.ViewConfiguration.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.ImageData = make([]byte, len(v))
			copy(x.ImageData, v)
			b = b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return err
			}
			b = b[n:]
		}
	}
	return nil
}

// UltrasonicSensorView carries only its configuration snapshot, no
// measurement payload.
type UltrasonicSensorView struct {
	ViewConfiguration *UltrasonicSensorViewConfiguration
}

func (x *UltrasonicSensorView) appendTo(b []byte) []byte {
	if x.ViewConfiguration != nil {
		b = appendMessage(b, 1, x.ViewConfiguration.appendTo)
	}
	return b
}

func (x *UltrasonicSensorView) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if num == 1 && typ == protowire.BytesType {
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.ViewConfiguration = &UltrasonicSensorViewConfiguration{}
			if err := x.ViewConfiguration.decode(v); err != nil {
				return err
			}
			b = b[n:]
			continue
		}
		n, err := skipField(b, num, typ)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
