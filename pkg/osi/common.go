package osi

import "google.golang.org/protobuf/encoding/protowire"

// InterfaceVersion is the version of the message set spoken by the sender.
type InterfaceVersion struct {
	VersionMajor uint32
	VersionMinor uint32
	VersionPatch uint32
}

func (x *InterfaceVersion) appendTo(b []byte) []byte {
	b = appendUint32(b, 1, x.VersionMajor)
	b = appendUint32(b, 2, x.VersionMinor)
	b = appendUint32(b, 3, x.VersionPatch)
	return b
}

func (x *InterfaceVersion) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ == protowire.VarintType && num >= 1 && num <= 3 {
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			switch num {
			case 1:
				x.VersionMajor = uint32(v)
			case 2:
				x.VersionMinor = uint32(v)
			case 3:
				x.VersionPatch = uint32(v)
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

// Timestamp is a point in simulation time. The zero point is defined by
// the simulation run; it must be the same for every message of a run.
type Timestamp struct {
	// Seconds since the simulation zero point.
	Seconds int64
	// Nanos is the fractional part, [0, 999999999].
	Nanos uint32
}

func (x *Timestamp) appendTo(b []byte) []byte {
	b = appendInt64(b, 1, x.Seconds)
	b = appendUint32(b, 2, x.Nanos)
	return b
}

func (x *Timestamp) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.Seconds = int64(v)
			b = b[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.Nanos = uint32(v)
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

// Identifier names an entity of the simulation, unique within a run.
type Identifier struct {
	Value uint64
}

func (x *Identifier) appendTo(b []byte) []byte {
	return appendUint64(b, 1, x.Value)
}

func (x *Identifier) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if num == 1 && typ == protowire.VarintType {
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.Value = v
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

// Vector3d is a cartesian vector, unit [m] unless stated otherwise at the
// referencing field.
type Vector3d struct {
	X float64
	Y float64
	Z float64
}

func (x *Vector3d) appendTo(b []byte) []byte {
	b = appendDouble(b, 1, x.X)
	b = appendDouble(b, 2, x.Y)
	b = appendDouble(b, 3, x.Z)
	return b
}

func (x *Vector3d) decode(b []byte) error {
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
				x.X = v
			case 2:
				x.Y = v
			case 3:
				x.Z = v
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

// Orientation3d is a roll/pitch/yaw rotation, unit [rad].
type Orientation3d struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

func (x *Orientation3d) appendTo(b []byte) []byte {
	b = appendDouble(b, 1, x.Roll)
	b = appendDouble(b, 2, x.Pitch)
	b = appendDouble(b, 3, x.Yaw)
	return b
}

func (x *Orientation3d) decode(b []byte) error {
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
				x.Roll = v
			case 2:
				x.Pitch = v
			case 3:
				x.Yaw = v
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

// MountingPosition is the origin and orientation of a sensor coordinate
// frame, expressed in the frame of the carrying vehicle.
type MountingPosition struct {
	Position    *Vector3d
	Orientation *Orientation3d
}

func (x *MountingPosition) appendTo(b []byte) []byte {
	if x.Position != nil {
		b = appendMessage(b, 1, x.Position.appendTo)
	}
	if x.Orientation != nil {
		b = appendMessage(b, 2, x.Orientation.appendTo)
	}
	return b
}

func (x *MountingPosition) decode(b []byte) error {
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
			x.Position = &Vector3d{}
			if err := x.Position.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.Orientation = &Orientation3d{}
			if err := x.Orientation.decode(v); err != nil {
				return err
			}
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

// BaseMoving is the kinematic state of a moving entity: position [m] and
// orientation [rad] in the referencing frame, velocity [m/s] and
// acceleration [m/s^2].
type BaseMoving struct {
	Position     *Vector3d
	Orientation  *Orientation3d
	Velocity     *Vector3d
	Acceleration *Vector3d
}

func (x *BaseMoving) appendTo(b []byte) []byte {
	if x.Position != nil {
		b = appendMessage(b, 1, x.Position.appendTo)
	}
	if x.Orientation != nil {
		b = appendMessage(b, 2, x.Orientation.appendTo)
	}
	if x.Velocity != nil {
		b = appendMessage(b, 3, x.Velocity.appendTo)
	}
	if x.Acceleration != nil {
		b = appendMessage(b, 4, x.Acceleration.appendTo)
	}
	return b
}

func (x *BaseMoving) decode(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ == protowire.BytesType && num >= 1 && num <= 4 {
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			switch num {
			case 1:
				x.Position = &Vector3d{}
				err = x.Position.decode(v)
			case 2:
				x.Orientation = &Orientation3d{}
				err = x.Orientation.decode(v)
			case 3:
				x.Velocity = &Vector3d{}
				err = x.Velocity.decode(v)
			case 4:
				x.Acceleration = &Vector3d{}
				err = x.Acceleration.decode(v)
			}
			if err != nil {
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
