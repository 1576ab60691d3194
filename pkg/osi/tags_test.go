package osi

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// fieldNumbers walks one level of wire data and returns every field number
// in order of appearance.
func fieldNumbers(t *testing.T, b []byte) []protowire.Number {
	t.Helper()
	var nums []protowire.Number
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
		nums = append(nums, num)
		n = protowire.ConsumeFieldValue(num, typ, b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
	}
	return nums
}

// firstField returns the payload of the first occurrence of num, which
// must be length delimited.
func firstField(t *testing.T, b []byte, want protowire.Number) []byte {
	t.Helper()
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
		if num == want {
			require.Equal(t, protowire.BytesType, typ)
			v, n := protowire.ConsumeBytes(b)
			require.GreaterOrEqual(t, n, 0)
			return v
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
	}
	t.Fatalf("field %d not found", want)
	return nil
}

// The wire tags are the compatibility contract with every other
// implementation of the message set. This pins them.
func TestSensorView_WireTags(t *testing.T) {
	payload, err := Marshal(fullSensorView())
	require.NoError(t, err)

	want := []protowire.Number{1, 2, 3, 4, 5, 6, 7, 8, 1000, 1001, 1002, 1003, 1004}
	require.Equal(t, want, fieldNumbers(t, payload))
}

func TestRadarSensorView_WireTags(t *testing.T) {
	view := &RadarSensorView{
		ViewConfiguration: &RadarSensorViewConfiguration{SensorID: &Identifier{Value: 1}},
		Reflections: []*RadarReflection{
			{SignalStrength: -1, TimeOfFlight: 1e-7, DopplerShift: 10, SourceHorizontalAngle: 0.1, SourceVerticalAngle: 0.2},
			{SignalStrength: -2, TimeOfFlight: 2e-7, DopplerShift: 20, SourceHorizontalAngle: 0.3, SourceVerticalAngle: 0.4},
		},
	}
	payload, err := Marshal(view)
	require.NoError(t, err)
	require.Equal(t, []protowire.Number{1, 2, 2}, fieldNumbers(t, payload))

	reflection := firstField(t, payload, 2)
	require.Equal(t, []protowire.Number{1, 2, 3, 4, 5}, fieldNumbers(t, reflection))
}

func TestLidarSensorView_WireTags(t *testing.T) {
	view := &LidarSensorView{
		ViewConfiguration: &LidarSensorViewConfiguration{SensorID: &Identifier{Value: 1}},
		Reflections: []*LidarReflection{
			{SignalStrength: -1, TimeOfFlight: 1e-7, DopplerShift: 10},
		},
	}
	payload, err := Marshal(view)
	require.NoError(t, err)
	require.Equal(t, []protowire.Number{1, 2}, fieldNumbers(t, payload))

	reflection := firstField(t, payload, 2)
	require.Equal(t, []protowire.Number{1, 2, 3}, fieldNumbers(t, reflection))
}

func TestCameraSensorView_WireTags(t *testing.T) {
	view := &CameraSensorView{
		ViewConfiguration: &CameraSensorViewConfiguration{SensorID: &Identifier{Value: 1}},
		ImageData:         []byte{1, 2, 3},
	}
	payload, err := Marshal(view)
	require.NoError(t, err)
	require.Equal(t, []protowire.Number{1, 2}, fieldNumbers(t, payload))
}

// Doubles go on the wire as fixed64; a varint here would be read as a
// different value by every conforming peer.
func TestReflection_DoubleEncoding(t *testing.T) {
	payload, err := Marshal(&RadarReflection{SignalStrength: -12.5})
	require.NoError(t, err)

	num, typ, n := protowire.ConsumeTag(payload)
	require.GreaterOrEqual(t, n, 0)
	require.Equal(t, protowire.Number(1), num)
	require.Equal(t, protowire.Fixed64Type, typ)
}
