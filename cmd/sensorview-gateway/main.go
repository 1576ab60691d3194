package main

import (
	"flag"
	"log"
	"os"

	"github.com/ALPLab/sensorview-gateway/pkg/events"
	"github.com/ALPLab/sensorview-gateway/pkg/gateway"
	"github.com/ALPLab/sensorview-gateway/pkg/osi"
	"github.com/cyrilix/robocar-base/cli"
	"go.uber.org/zap"
)

const DefaultClientId = "sensorview-gateway"

func main() {
	var mqttBroker, username, password, clientId, topicSensorView string
	var address string
	var debug bool

	mqttQos := cli.InitIntFlag("MQTT_QOS", 0)
	_, mqttRetain := os.LookupEnv("MQTT_RETAIN")

	cli.InitMqttFlags(DefaultClientId, &mqttBroker, &username, &password, &clientId, &mqttQos, &mqttRetain)

	flag.StringVar(&topicSensorView, "events-topic-sensor-view", os.Getenv("MQTT_TOPIC_SENSOR_VIEW"), "Mqtt topic to publish sensor views, use MQTT_TOPIC_SENSOR_VIEW if args not set")
	flag.StringVar(&address, "simulator-address", "127.0.0.1:9091", "Simulator address")
	flag.BoolVar(&debug, "debug", false, "Debug logs")

	var sensorId, hostVehicleId uint64
	flag.Uint64Var(&sensorId, "sensor-id", 1000, "Identifier of the virtual sensor")
	flag.Uint64Var(&hostVehicleId, "host-vehicle-id", 1, "Identifier of the host vehicle in the ground truth")

	var mountX, mountY, mountZ, mountYaw float64
	flag.Float64Var(&mountX, "mounting-x", 0., "Virtual sensor mounting position, x in vehicle coordinates")
	flag.Float64Var(&mountY, "mounting-y", 0., "Virtual sensor mounting position, y in vehicle coordinates")
	flag.Float64Var(&mountZ, "mounting-z", 0., "Virtual sensor mounting position, z in vehicle coordinates")
	flag.Float64Var(&mountYaw, "mounting-yaw", 0., "Virtual sensor mounting orientation, yaw in rad")

	var radarRaysH, radarRaysV int
	var radarFrequency float64
	flag.IntVar(&radarRaysH, "radar-rays-horizontal", 0, "Horizontal ray count of the radar detector, 0 to disable radar")
	flag.IntVar(&radarRaysV, "radar-rays-vertical", 1, "Vertical ray count of the radar detector")
	flag.Float64Var(&radarFrequency, "radar-emitter-frequency", 77e9, "Radar TX frequency in Hz")

	var lidarRaysH, lidarRaysV int
	var lidarFrequency float64
	flag.IntVar(&lidarRaysH, "lidar-rays-horizontal", 0, "Horizontal ray count of the lidar detector, 0 to disable lidar")
	flag.IntVar(&lidarRaysV, "lidar-rays-vertical", 1, "Vertical ray count of the lidar detector")
	flag.Float64Var(&lidarFrequency, "lidar-emitter-frequency", 1.934e14, "Lidar beam frequency in Hz")

	var cameraImgW, cameraImgH int
	var cameraFormat string
	flag.IntVar(&cameraImgW, "camera-img-w", 0, "Camera image width in pixels, 0 to disable camera")
	flag.IntVar(&cameraImgH, "camera-img-h", 128, "Camera image height in pixels")
	flag.StringVar(&cameraFormat, "camera-channel-format", "rgb8", "Camera pixel layout, one of mono8,rgb8,bgr8")

	var ultrasonicRange float64
	flag.Float64Var(&ultrasonicRange, "ultrasonic-range", 0., "Ultrasonic detection range in m, 0 to disable ultrasonic")

	flag.Parse()
	if len(os.Args) <= 1 {
		flag.PrintDefaults()
		os.Exit(1)
	}

	config := zap.NewDevelopmentConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	lgr, err := config.Build()
	if err != nil {
		log.Fatalf("unable to init logger: %v", err)
	}
	defer func() {
		if err := lgr.Sync(); err != nil {
			log.Printf("unable to Sync logger: %v\n", err)
		}
	}()
	zap.ReplaceGlobals(lgr)

	client, err := cli.Connect(mqttBroker, username, password, clientId)
	if err != nil {
		zap.S().Fatalf("unable to connect to events broker: %v", err)
	}
	defer client.Disconnect(10)

	sensorConfig := &gateway.SensorConfig{
		SensorID:      sensorId,
		HostVehicleID: hostVehicleId,
		Mounting: &osi.MountingPosition{
			Position:    &osi.Vector3d{X: mountX, Y: mountY, Z: mountZ},
			Orientation: &osi.Orientation3d{Yaw: mountYaw},
		},
	}
	if radarRaysH > 0 {
		sensorConfig.Radar = &osi.RadarSensorViewConfiguration{
			SensorID:               &osi.Identifier{Value: sensorId*10 + 1},
			NumberOfRaysHorizontal: uint32(radarRaysH),
			NumberOfRaysVertical:   uint32(radarRaysV),
			EmitterFrequency:       radarFrequency,
		}
	}
	if lidarRaysH > 0 {
		sensorConfig.Lidar = &osi.LidarSensorViewConfiguration{
			SensorID:               &osi.Identifier{Value: sensorId*10 + 2},
			NumberOfRaysHorizontal: uint32(lidarRaysH),
			NumberOfRaysVertical:   uint32(lidarRaysV),
			EmitterFrequency:       lidarFrequency,
		}
	}
	if cameraImgW > 0 {
		sensorConfig.Camera = &osi.CameraSensorViewConfiguration{
			SensorID:                 &osi.Identifier{Value: sensorId*10 + 3},
			NumberOfPixelsHorizontal: uint32(cameraImgW),
			NumberOfPixelsVertical:   uint32(cameraImgH),
			ChannelFormat:            channelFormatOf(cameraFormat),
		}
	}
	if ultrasonicRange > 0 {
		sensorConfig.Ultrasonic = &osi.UltrasonicSensorViewConfiguration{
			SensorID: &osi.Identifier{Value: sensorId*10 + 4},
			Range:    ultrasonicRange,
		}
	}

	gtw, err := gateway.New(address, sensorConfig)
	if err != nil {
		zap.S().Fatalf("unable to init gateway: %v", err)
	}
	defer gtw.Stop()

	msgPub := events.NewMsgPublisher(
		gtw,
		events.NewMqttPublisher(client),
		topicSensorView,
	)
	defer msgPub.Stop()
	msgPub.Start()

	cli.HandleExit(gtw)

	err = gtw.Start()
	if err != nil {
		zap.S().Fatalf("unable to start service: %v", err)
	}
}

func channelFormatOf(name string) osi.ChannelFormat {
	switch name {
	case "mono8":
		return osi.ChannelFormatMono8
	case "bgr8":
		return osi.ChannelFormatBGR8
	case "rgb8":
		return osi.ChannelFormatRGB8
	default:
		zap.S().Warnf("unknown channel format '%v', fallback to rgb8", name)
		return osi.ChannelFormatRGB8
	}
}
