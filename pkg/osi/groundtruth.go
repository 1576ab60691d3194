package osi

import "google.golang.org/protobuf/encoding/protowire"

// HostVehicleData is what the host vehicle knows about itself, as reported
// by its internal sensors and bus. It is an input to sensor models, not a
// ground-truth value.
type HostVehicleData struct {
	// Location is the measured kinematic state of the host.
	Location *BaseMoving
	// LocationRMSE is the root mean squared error of Location.
	LocationRMSE *BaseMoving
}

func (x *HostVehicleData) appendTo(b []byte) []byte {
	if x.Location != nil {
		b = appendMessage(b, 1, x.Location.appendTo)
	}
	if x.LocationRMSE != nil {
		b = appendMessage(b, 2, x.LocationRMSE.appendTo)
	}
	return b
}

func (x *HostVehicleData) decode(b []byte) error {
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
			x.Location = &BaseMoving{}
			if err := x.Location.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.LocationRMSE = &BaseMoving{}
			if err := x.LocationRMSE.decode(v); err != nil {
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

// ObjectType classifies a moving object of the ground truth.
type ObjectType int32

const (
	ObjectTypeUnknown    ObjectType = 0
	ObjectTypeOther      ObjectType = 1
	ObjectTypeCar        ObjectType = 2
	ObjectTypeTruck      ObjectType = 3
	ObjectTypePedestrian ObjectType = 4
	ObjectTypeBicycle    ObjectType = 5
)

// MovingObject is one simulated entity of the ground truth, in global
// coordinates.
type MovingObject struct {
	ID   *Identifier
	Base *BaseMoving
	Type ObjectType
}

func (x *MovingObject) appendTo(b []byte) []byte {
	if x.ID != nil {
		b = appendMessage(b, 1, x.ID.appendTo)
	}
	if x.Base != nil {
		b = appendMessage(b, 2, x.Base.appendTo)
	}
	b = appendEnum(b, 3, int32(x.Type))
	return b
}

func (x *MovingObject) decode(b []byte) error {
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
			x.ID = &Identifier{}
			if err := x.ID.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.Base = &BaseMoving{}
			if err := x.Base.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return err
			}
			x.Type = ObjectType(v)
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

// GroundTruth is the simulation-internal world state in global
// coordinates, possibly filtered to the surroundings of one sensor. The
// host vehicle is always part of MovingObjects, whatever the filtering.
type GroundTruth struct {
	Version       *InterfaceVersion
	Timestamp     *Timestamp
	HostVehicleID *Identifier
	MovingObjects []*MovingObject
}

func (x *GroundTruth) appendTo(b []byte) []byte {
	if x.Version != nil {
		b = appendMessage(b, 1, x.Version.appendTo)
	}
	if x.Timestamp != nil {
		b = appendMessage(b, 2, x.Timestamp.appendTo)
	}
	if x.HostVehicleID != nil {
		b = appendMessage(b, 3, x.HostVehicleID.appendTo)
	}
	for _, obj := range x.MovingObjects {
		b = appendMessage(b, 4, obj.appendTo)
	}
	return b
}

func (x *GroundTruth) decode(b []byte) error {
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
			x.Version = &InterfaceVersion{}
			if err := x.Version.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.Timestamp = &Timestamp{}
			if err := x.Timestamp.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 3 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			x.HostVehicleID = &Identifier{}
			if err := x.HostVehicleID.decode(v); err != nil {
				return err
			}
			b = b[n:]
		case num == 4 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return err
			}
			obj := &MovingObject{}
			if err := obj.decode(v); err != nil {
				return err
			}
			x.MovingObjects = append(x.MovingObjects, obj)
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
