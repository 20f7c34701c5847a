package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var maxSensors int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

type createdSensor struct {
	UniqueID string `json:"UniqueID"`
	ID       uint   `json:"ID"`
}

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	deviceID := createDevice()
	fmt.Printf("created benchmark device %v\n", deviceID)

	sensors := make([]createdSensor, maxSensors)
	for i := range maxSensors {
		sensors[i] = createSensor(deviceID, i)
	}
	fmt.Printf("created %v sensors\n", maxSensors)

	setThresholds(sensors)
	fmt.Printf("thresholds set\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxSensors {
		wg.Add(1)
		go func() {
			postWebhook(sensors[i].UniqueID)
			fmt.Printf("\rposted webhook for sensor %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rposted webhooks for %v sensors: used time=%v seconds, throughput=%v readings/second\n",
		maxSensors, usedTime.Seconds(), float64(maxSensors)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func createDevice() uint {
	payload := map[string]string{
		"name":    "benchmark-device",
		"joinEui": fmt.Sprintf("%016X", rnd.Int63()),
		"devEui":  fmt.Sprintf("%016X", rnd.Int63()),
	}
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/api/devices", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var device struct {
		ID uint `json:"ID"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&device); err != nil {
		panic(err)
	}
	return device.ID
}

func createSensor(deviceID uint, index int) createdSensor {
	payload := map[string]any{
		"deviceId": deviceID,
		"name":     fmt.Sprintf("bench-sound-%v", index),
		"kind":     "SOUND",
		"isBinary": false,
	}
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/api/sensors", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var sensor createdSensor
	if err := json.NewDecoder(resp.Body).Decode(&sensor); err != nil {
		panic(err)
	}
	return sensor
}

func setThresholds(sensors []createdSensor) {
	// thresholds sit in the middle of the generated value range so roughly
	// half of the benchmark readings open or close an alert
	wg := sync.WaitGroup{}
	for i := range sensors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload := map[string]float64{"value": 50.0}
			jsonData, _ := json.Marshal(payload)
			resp, err := http.Post(
				fmt.Sprintf("http://%s/api/sensors/%v/threshold", httpHostPort, sensors[i].ID),
				"application/json", bytes.NewBuffer(jsonData))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()
}

func postWebhook(uniqueID string) {
	payload := map[string]any{
		// dev_eui is the rate limiter key, keep it distinct per sensor so the
		// benchmark measures ingest throughput rather than limiter throttling
		"end_device_ids": map[string]string{
			"device_id": "benchmark-device",
			"dev_eui":   uniqueID[:16],
			"join_eui":  "00000000000000B2",
		},
		"received_at": time.Now().Format(time.RFC3339),
		"uplink_message": map[string]any{
			"decoded_payload": map[string]float64{
				uniqueID: rndFloat64(0.0, 100.0, 2),
			},
		},
	}
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s/api/ttn-webhook", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("\nresponse status code != 200: %v\n", resp)
	}
}
