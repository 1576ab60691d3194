package simulator

// Json message shapes of the simulation feed: newline-framed json over tcp,
// one message per line.

type MsgType string

const (
	MsgTypeTelemetry    = MsgType("telemetry")
	MsgTypeCameraConfig = MsgType("cam_config")
	MsgTypeConfigLoaded = MsgType("config_loaded")
)

type Msg struct {
	MsgType MsgType `json:"msg_type"`
}

// TelemetryMsg is one simulation tick. Radar and lidar returns are emitted
// by the simulation in raster order over the configured ray grid, left to
// right then top to bottom, and that order is preserved all the way to the
// published sensor view.
type TelemetryMsg struct {
	MsgType MsgType `json:"msg_type"`
	// Time is the simulation time in seconds since scene start.
	Time float64 `json:"time"`

	PosX  float64 `json:"pos_x"`
	PosY  float64 `json:"pos_y"`
	PosZ  float64 `json:"pos_z"`
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	VelX  float64 `json:"vel_x"`
	VelY  float64 `json:"vel_y"`
	VelZ  float64 `json:"vel_z"`

	Image        []byte        `json:"image"`
	RadarReturns []RadarReturn `json:"radar_returns"`
	LidarReturns []LidarReturn `json:"lidar_returns"`
	Objects      []ObjectState `json:"objects"`
}

// RadarReturn is one traced radar ray as reported by the simulation.
type RadarReturn struct {
	Strength     float64 `json:"strength"`       // dB
	TimeOfFlight float64 `json:"time_of_flight"` // s
	Doppler      float64 `json:"doppler"`        // Hz
	Azimuth      float64 `json:"azimuth"`        // rad
	Elevation    float64 `json:"elevation"`      // rad
}

// LidarReturn is one traced lidar ray; the direction follows from the ray
// index, so only signal attributes are reported.
type LidarReturn struct {
	Strength     float64 `json:"strength"`
	TimeOfFlight float64 `json:"time_of_flight"`
	Doppler      float64 `json:"doppler"`
}

// ObjectState is one simulated entity visible this tick, in scene (global)
// coordinates.
type ObjectState struct {
	ID    uint64  `json:"id"`
	Class string  `json:"class"`
	PosX  float64 `json:"pos_x"`
	PosY  float64 `json:"pos_y"`
	PosZ  float64 `json:"pos_z"`
	Yaw   float64 `json:"yaw"`
	VelX  float64 `json:"vel_x"`
	VelY  float64 `json:"vel_y"`
	VelZ  float64 `json:"vel_z"`
}

// CamConfigMsg configures the simulated camera, set any field to Zero to
// get the default camera setting. img_w/img_h select the rendered
// resolution, img_enc can be one of JPG|PNG, offsets move the camera in
// the vehicle frame.
type CamConfigMsg struct {
	MsgType MsgType        `json:"msg_type"`
	Fov     string         `json:"fov"`
	ImgW    string         `json:"img_w"`
	ImgH    string         `json:"img_h"`
	ImgEnc  CameraImageEnc `json:"img_enc"`
	OffsetX string         `json:"offset_x"`
	OffsetY string         `json:"offset_y"`
	OffsetZ string         `json:"offset_z"`
	RotX    string         `json:"rot_x"`
}

type CameraImageEnc string

const (
	CameraImageEncJpeg = CameraImageEnc("JPG")
	CameraImageEncPng  = CameraImageEnc("PNG")
)
