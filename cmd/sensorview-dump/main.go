package main

import (
	"flag"
	"log"
	"os"

	"github.com/ALPLab/sensorview-gateway/pkg/events"
	"github.com/ALPLab/sensorview-gateway/pkg/osi"
	"github.com/cyrilix/robocar-base/cli"
	"go.uber.org/zap"
)

const DefaultClientId = "sensorview-dump"

// Small consumer side tool: subscribes to the sensor view topic and logs a
// per-tick summary. Useful to check what a sensor model would receive.
func main() {
	var mqttBroker, username, password, clientId, topicSensorView string
	var debug bool

	mqttQos := cli.InitIntFlag("MQTT_QOS", 0)
	_, mqttRetain := os.LookupEnv("MQTT_RETAIN")

	cli.InitMqttFlags(DefaultClientId, &mqttBroker, &username, &password, &clientId, &mqttQos, &mqttRetain)

	flag.StringVar(&topicSensorView, "events-topic-sensor-view", os.Getenv("MQTT_TOPIC_SENSOR_VIEW"), "Mqtt topic with sensor views, use MQTT_TOPIC_SENSOR_VIEW if args not set")
	flag.BoolVar(&debug, "debug", false, "Debug logs")

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

	subscriber := events.NewSensorViewSubscriber(client, topicSensorView, byte(mqttQos))
	viewChan, err := subscriber.Subscribe()
	if err != nil {
		zap.S().Fatalf("unable to subscribe to sensor views: %v", err)
	}
	defer subscriber.Stop()

	cli.HandleExit(subscriber)

	logr := zap.S()
	for view := range viewChan {
		nbRadarReflections := 0
		for _, sub := range view.RadarSensorViews {
			nbRadarReflections += len(sub.Reflections)
		}
		nbLidarReflections := 0
		for _, sub := range view.LidarSensorViews {
			nbLidarReflections += len(sub.Reflections)
		}
		imageBytes := 0
		for _, sub := range view.CameraSensorViews {
			imageBytes += len(sub.ImageData)
		}

		var seconds int64
		var nanos uint32
		if view.Timestamp != nil {
			seconds = view.Timestamp.Seconds
			nanos = view.Timestamp.Nanos
		}
		logr.Infow("sensor view",
			"time", seconds,
			"nanos", nanos,
			"radar_reflections", nbRadarReflections,
			"lidar_reflections", nbLidarReflections,
			"camera_bytes", imageBytes,
			"ground_truth_objects", groundTruthCount(view.GlobalGroundTruth),
		)
	}
}

func groundTruthCount(gt *osi.GroundTruth) int {
	if gt == nil {
		return 0
	}
	return len(gt.MovingObjects)
}
