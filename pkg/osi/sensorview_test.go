package osi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func fullSensorView() *SensorView {
	return &SensorView{
		Version:   &InterfaceVersion{VersionMajor: 3, VersionMinor: 5, VersionPatch: 0},
		Timestamp: &Timestamp{Seconds: 42, Nanos: 500000000},
		SensorID:  &Identifier{Value: 17},
		MountingPosition: &MountingPosition{
			Position:    &Vector3d{X: 2.3, Y: 0, Z: 0.8},
			Orientation: &Orientation3d{Yaw: 0.01},
		},
		MountingPositionRMSE: &MountingPosition{
			Position: &Vector3d{X: 0.001, Y: 0.001, Z: 0.002},
		},
		HostVehicleData: &HostVehicleData{
			Location: &BaseMoving{
				Position: &Vector3d{X: 104.2, Y: -3.5, Z: 0.3},
				Velocity: &Vector3d{X: 12.4},
			},
		},
		GlobalGroundTruth: &GroundTruth{
			Timestamp:     &Timestamp{Seconds: 42, Nanos: 500000000},
			HostVehicleID: &Identifier{Value: 1},
			MovingObjects: []*MovingObject{
				{ID: &Identifier{Value: 1}, Base: &BaseMoving{Position: &Vector3d{X: 104.2, Y: -3.5, Z: 0.3}}, Type: ObjectTypeCar},
				{ID: &Identifier{Value: 9}, Base: &BaseMoving{Position: &Vector3d{X: 130.0, Y: -3.1}}, Type: ObjectTypePedestrian},
			},
		},
		HostVehicleID: &Identifier{Value: 1},
		GenericSensorViews: []*GenericSensorView{
			{ViewConfiguration: &GenericSensorViewConfiguration{SensorID: &Identifier{Value: 170}}},
		},
		RadarSensorViews: []*RadarSensorView{
			{
				ViewConfiguration: &RadarSensorViewConfiguration{
					SensorID:               &Identifier{Value: 171},
					NumberOfRaysHorizontal: 32,
					NumberOfRaysVertical:   4,
					EmitterFrequency:       77e9,
				},
				Reflections: []*RadarReflection{
					{SignalStrength: -10.5, TimeOfFlight: 2.1e-7, DopplerShift: 1200, SourceHorizontalAngle: -0.4, SourceVerticalAngle: 0.02},
					{SignalStrength: -33.0, TimeOfFlight: 6.6e-7, DopplerShift: -400, SourceHorizontalAngle: 0.4, SourceVerticalAngle: 0.02},
				},
			},
		},
		LidarSensorViews: []*LidarSensorView{
			{
				ViewConfiguration: &LidarSensorViewConfiguration{
					SensorID:               &Identifier{Value: 172},
					NumberOfRaysHorizontal: 900,
					NumberOfRaysVertical:   16,
				},
				Reflections: []*LidarReflection{
					{SignalStrength: -4.2, TimeOfFlight: 1.3e-7},
					{SignalStrength: -5.0, TimeOfFlight: 1.4e-7, DopplerShift: 30},
				},
			},
		},
		CameraSensorViews: []*CameraSensorView{
			{
				ViewConfiguration: &CameraSensorViewConfiguration{
					SensorID:                 &Identifier{Value: 173},
					NumberOfPixelsHorizontal: 4,
					NumberOfPixelsVertical:   2,
					ChannelFormat:            ChannelFormatRGB8,
				},
				ImageData: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23},
			},
		},
		UltrasonicSensorViews: []*UltrasonicSensorView{
			{ViewConfiguration: &UltrasonicSensorViewConfiguration{SensorID: &Identifier{Value: 174}, Range: 4.5}},
		},
	}
}

func roundTrip(t *testing.T, in *SensorView) *SensorView {
	t.Helper()
	payload, err := Marshal(in)
	require.NoError(t, err)
	var out SensorView
	require.NoError(t, Unmarshal(payload, &out))
	return &out
}

func TestSensorView_RoundTrip(t *testing.T) {
	in := fullSensorView()
	out := roundTrip(t, in)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("sensor view changed across round trip (-in +out):\n%s", diff)
	}
}

func TestSensorView_RoundTripEmpty(t *testing.T) {
	payload, err := Marshal(&SensorView{})
	require.NoError(t, err)
	require.Empty(t, payload)

	var out SensorView
	require.NoError(t, Unmarshal(payload, &out))
	if diff := cmp.Diff(&SensorView{}, &out); diff != "" {
		t.Errorf("empty sensor view changed across round trip (-in +out):\n%s", diff)
	}
}

// A sensor view whose sub-view collections are all empty is a valid sample
// of a sensor with no modeled technology.
func TestSensorView_RoundTripNoSubViews(t *testing.T) {
	in := &SensorView{
		Timestamp: &Timestamp{Seconds: 7},
		SensorID:  &Identifier{Value: 3},
	}
	out := roundTrip(t, in)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("sensor view changed across round trip (-in +out):\n%s", diff)
	}
	require.Empty(t, out.RadarSensorViews)
	require.Empty(t, out.LidarSensorViews)
	require.Empty(t, out.CameraSensorViews)
	require.Empty(t, out.GenericSensorViews)
	require.Empty(t, out.UltrasonicSensorViews)
}

func TestSensorView_RadarReflectionsKeepOrderAndValues(t *testing.T) {
	reflections := []*RadarReflection{
		{SignalStrength: -12.5, TimeOfFlight: 3.2e-7, DopplerShift: 1500.0, SourceHorizontalAngle: 0.1, SourceVerticalAngle: -0.02},
		{SignalStrength: -13.5, TimeOfFlight: 3.3e-7, DopplerShift: 1500.0, SourceHorizontalAngle: 0.2, SourceVerticalAngle: -0.02},
		{SignalStrength: -14.5, TimeOfFlight: 3.4e-7, DopplerShift: 1500.0, SourceHorizontalAngle: 0.3, SourceVerticalAngle: -0.02},
	}
	in := &SensorView{
		RadarSensorViews: []*RadarSensorView{{Reflections: reflections}},
	}

	out := roundTrip(t, in)
	require.Len(t, out.RadarSensorViews, 1)
	got := out.RadarSensorViews[0].Reflections
	require.Len(t, got, len(reflections))
	for i, want := range reflections {
		if diff := cmp.Diff(want, got[i]); diff != "" {
			t.Errorf("reflection %d changed across round trip (-want +got):\n%s", i, diff)
		}
	}
}

func TestCameraSensorView_EmptyImageData(t *testing.T) {
	in := &SensorView{
		CameraSensorViews: []*CameraSensorView{
			{ViewConfiguration: &CameraSensorViewConfiguration{SensorID: &Identifier{Value: 5}}, ImageData: []byte{}},
		},
	}
	out := roundTrip(t, in)
	require.Len(t, out.CameraSensorViews, 1)
	cam := out.CameraSensorViews[0]
	require.NotNil(t, cam.ImageData)
	require.Len(t, cam.ImageData, 0)

	in.CameraSensorViews[0].ImageData = []byte{42}
	out = roundTrip(t, in)
	require.Equal(t, []byte{42}, out.CameraSensorViews[0].ImageData)
}

// Lidar reflections carry no angle fields; decoding a radar reflection
// payload as lidar must keep the shared fields and drop the angles rather
// than mix them up.
func TestReflectionTypes_NotInterchangeable(t *testing.T) {
	radar := &RadarReflection{
		SignalStrength:        -12.5,
		TimeOfFlight:          3.2e-7,
		DopplerShift:          1500.0,
		SourceHorizontalAngle: 0.1,
		SourceVerticalAngle:   -0.02,
	}
	payload, err := Marshal(radar)
	require.NoError(t, err)

	var lidar LidarReflection
	require.NoError(t, Unmarshal(payload, &lidar))
	require.Equal(t, radar.SignalStrength, lidar.SignalStrength)
	require.Equal(t, radar.TimeOfFlight, lidar.TimeOfFlight)
	require.Equal(t, radar.DopplerShift, lidar.DopplerShift)

	lidarPayload, err := Marshal(&lidar)
	require.NoError(t, err)
	require.NotEqual(t, payload, lidarPayload, "angle fields must not survive in a lidar reflection")
}

// Unknown fields from newer senders are skipped, known fields still decode.
func TestSensorView_SkipsUnknownFields(t *testing.T) {
	in := &SensorView{SensorID: &Identifier{Value: 9}}
	payload, err := Marshal(in)
	require.NoError(t, err)

	payload = protowire.AppendTag(payload, 999, protowire.VarintType)
	payload = protowire.AppendVarint(payload, 123)

	var out SensorView
	require.NoError(t, Unmarshal(payload, &out))
	require.NotNil(t, out.SensorID)
	require.Equal(t, uint64(9), out.SensorID.Value)
}

func TestSensorView_TruncatedPayload(t *testing.T) {
	payload, err := Marshal(fullSensorView())
	require.NoError(t, err)

	var out SensorView
	require.Error(t, Unmarshal(payload[:len(payload)-3], &out))
}
