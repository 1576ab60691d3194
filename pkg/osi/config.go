package osi

import "google.golang.org/protobuf/encoding/protowire"

// The view configuration messages describe how a physical detector was set
// up for the run. They are snapshots: a sub-view carries the configuration
// its data was produced with, so consumers never have to correlate with an
// out-of-band exchange.

// GenericSensorViewConfiguration configures a detector of an otherwise
// unmodeled technology.
type GenericSensorViewConfiguration struct {
	// SensorID identifies the physical detector, distinct from the
	// virtual sensor id of the enclosing SensorView.
	SensorID *Identifier
	// MountingPosition is the detector frame relative to the virtual
	// sensor frame.
	MountingPosition *MountingPosition
	// FieldOfViewHorizontal is the horizontal opening angle [rad].
	FieldOfViewHorizontal float64
	// FieldOfViewVertical is the vertical opening angle [rad].
	FieldOfViewVertical float64
}

func (x *GenericSensorViewConfiguration) appendTo(b []byte) []byte {
	if x.SensorID != nil {
		b = appendMessage(b, 1, x.SensorID.appendTo)
	}
	if x.MountingPosition != nil {
		b = appendMessage(b, 2, x.MountingPosition.appendTo)
	}
	b = appendDouble(b, 3, x.FieldOfViewHorizontal)
	b = appendDouble(b, 4, x.FieldOfViewVertical)
	return b
}

func (x *GenericSensorViewConfiguration) decode(b []byte) error {
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
			x.SensorID = &Identifier{}
			if err := x.SensorID.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.MountingPosition = &MountingPosition{}
			if err := x.MountingPosition.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 3 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewHorizontal = v
			b = b[n:]
		case num == 4 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewVertical = v
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

// RadarSensorViewConfiguration configures one radar detector. The ray grid
// (NumberOfRaysHorizontal x NumberOfRaysVertical) defines the raster order
// of the reflection list in RadarSensorView.
type RadarSensorViewConfiguration struct {
	SensorID               *Identifier
	MountingPosition       *MountingPosition
	FieldOfViewHorizontal  float64
	FieldOfViewVertical    float64
	NumberOfRaysHorizontal uint32
	NumberOfRaysVertical   uint32
	// EmitterFrequency is the TX center frequency [Hz]; doppler shifts of
	// the reflections are relative to it.
	EmitterFrequency float64
}

func (x *RadarSensorViewConfiguration) appendTo(b []byte) []byte {
	if x.SensorID != nil {
		b = appendMessage(b, 1, x.SensorID.appendTo)
	}
	if x.MountingPosition != nil {
		b = appendMessage(b, 2, x.MountingPosition.appendTo)
	}
	b = appendDouble(b, 3, x.FieldOfViewHorizontal)
	b = appendDouble(b, 4, x.FieldOfViewVertical)
	b = appendUint32(b, 5, x.NumberOfRaysHorizontal)
	b = appendUint32(b, 6, x.NumberOfRaysVertical)
	b = appendDouble(b, 7, x.EmitterFrequency)
	return b
}

func (x *RadarSensorViewConfiguration) decode(b []byte) error {
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
			x.SensorID = &Identifier{}
			if err := x.SensorID.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.MountingPosition = &MountingPosition{}
			if err := x.MountingPosition.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 3 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewHorizontal = v
			b = b[n:]
		case num == 4 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewVertical = v
			b = b[n:]
		case num == 5 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.NumberOfRaysHorizontal = uint32(v)
			b = b[n:]
		case num == 6 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.NumberOfRaysVertical = uint32(v)
			b = b[n:]
		case num == 7 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.EmitterFrequency = v
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

// LidarSensorViewConfiguration configures one lidar detector. The ray grid
// defines both the raster order and the direction of every ray, which is
// why lidar reflections carry no angles of their own.
type LidarSensorViewConfiguration struct {
	SensorID               *Identifier
	MountingPosition       *MountingPosition
	FieldOfViewHorizontal  float64
	FieldOfViewVertical    float64
	NumberOfRaysHorizontal uint32
	NumberOfRaysVertical   uint32
	// EmitterFrequency is the beam frequency [Hz].
	EmitterFrequency float64
}

func (x *LidarSensorViewConfiguration) appendTo(b []byte) []byte {
	if x.SensorID != nil {
		b = appendMessage(b, 1, x.SensorID.appendTo)
	}
	if x.MountingPosition != nil {
		b = appendMessage(b, 2, x.MountingPosition.appendTo)
	}
	b = appendDouble(b, 3, x.FieldOfViewHorizontal)
	b = appendDouble(b, 4, x.FieldOfViewVertical)
	b = appendUint32(b, 5, x.NumberOfRaysHorizontal)
	b = appendUint32(b, 6, x.NumberOfRaysVertical)
	b = appendDouble(b, 7, x.EmitterFrequency)
	return b
}

func (x *LidarSensorViewConfiguration) decode(b []byte) error {
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
			x.SensorID = &Identifier{}
			if err := x.SensorID.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.MountingPosition = &MountingPosition{}
			if err := x.MountingPosition.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 3 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewHorizontal = v
			b = b[n:]
		case num == 4 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewVertical = v
			b = b[n:]
		case num == 5 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.NumberOfRaysHorizontal = uint32(v)
			b = b[n:]
		case num == 6 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.NumberOfRaysVertical = uint32(v)
			b = b[n:]
		case num == 7 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.EmitterFrequency = v
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

// ChannelFormat is the pixel layout of camera image data.
type ChannelFormat int32

const (
	ChannelFormatUnknown ChannelFormat = 0
	// ChannelFormatMono8 is one luminance byte per pixel.
	ChannelFormatMono8 ChannelFormat = 1
	// ChannelFormatRGB8 is three bytes per pixel, R first.
	ChannelFormatRGB8 ChannelFormat = 2
	// ChannelFormatBGR8 is three bytes per pixel, B first.
	ChannelFormatBGR8 ChannelFormat = 3
)

// CameraSensorViewConfiguration configures one camera detector. It defines
// the memory layout of the image data of the sub-view: pixels are stored
// row-major, top row first, ChannelFormat bytes per pixel. The image data
// does not describe itself.
type CameraSensorViewConfiguration struct {
	SensorID                 *Identifier
	MountingPosition         *MountingPosition
	FieldOfViewHorizontal    float64
	FieldOfViewVertical      float64
	NumberOfPixelsHorizontal uint32
	NumberOfPixelsVertical   uint32
	ChannelFormat            ChannelFormat
}

func (x *CameraSensorViewConfiguration) appendTo(b []byte) []byte {
	if x.SensorID != nil {
		b = appendMessage(b, 1, x.SensorID.appendTo)
	}
	if x.MountingPosition != nil {
		b = appendMessage(b, 2, x.MountingPosition.appendTo)
	}
	b = appendDouble(b, 3, x.FieldOfViewHorizontal)
	b = appendDouble(b, 4, x.FieldOfViewVertical)
	b = appendUint32(b, 5, x.NumberOfPixelsHorizontal)
	b = appendUint32(b, 6, x.NumberOfPixelsVertical)
	b = appendEnum(b, 7, int32(x.ChannelFormat))
	return b
}

func (x *CameraSensorViewConfiguration) decode(b []byte) error {
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
			x.SensorID = &Identifier{}
			if err := x.SensorID.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.MountingPosition = &MountingPosition{}
			if err := x.MountingPosition.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 3 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewHorizontal = v
			b = b[n:]
		case num == 4 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewVertical = v
			b = b[n:]
		case num == 5 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.NumberOfPixelsHorizontal = uint32(v)
			b = b[n:]
		case num == 6 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.NumberOfPixelsVertical = uint32(v)
			b = b[n:]
		case num == 7 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.ChannelFormat = ChannelFormat(v)
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

// UltrasonicSensorViewConfiguration configures one ultrasonic detector.
type UltrasonicSensorViewConfiguration struct {
	SensorID              *Identifier
	MountingPosition      *MountingPosition
	FieldOfViewHorizontal float64
	FieldOfViewVertical   float64
	// Range is the maximum detection distance [m].
	Range float64
}

func (x *UltrasonicSensorViewConfiguration) appendTo(b []byte) []byte {
	if x.SensorID != nil {
		b = appendMessage(b, 1, x.SensorID.appendTo)
	}
	if x.MountingPosition != nil {
		b = appendMessage(b, 2, x.MountingPosition.appendTo)
	}
	b = appendDouble(b, 3, x.FieldOfViewHorizontal)
	b = appendDouble(b, 4, x.FieldOfViewVertical)
	b = appendDouble(b, 5, x.Range)
	return b
}

func (x *UltrasonicSensorViewConfiguration) decode(b []byte) error {
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
			x.SensorID = &Identifier{}
			if err := x.SensorID.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.MountingPosition = &MountingPosition{}
			if err := x.MountingPosition.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 3 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewHorizontal = v
			b = b[n:]
		case num == 4 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.FieldOfViewVertical = v
			b = b[n:]
		case num == 5 && typ == protowire.Fixed64Type:
			v, n, err := consumeDouble(b)
			if err != nil {
				return err
			}
			x.Range = v
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
