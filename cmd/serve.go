// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package cmd

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var (
	serveListen   string
	serveInterval time.Duration
)

// telemetryReading is the JSON payload broadcast to WebSocket clients.
// Readings are hundredths-scaled integers plus preformatted strings, so
// no floating point is involved anywhere.
type telemetryReading struct {
	Timestamp      int64  `json:"timestamp_ms"`
	Humidity       int32  `json:"humidity_centi_rh"`
	Temperature    int32  `json:"temperature_centi_c"`
	HumidityStr    string `json:"humidity"`
	TemperatureStr string `json:"temperature"`
	Stale          bool   `json:"stale"`
	Error          string `json:"error,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Broadcast measurements over WebSocket",
	Long: `Serve sensor readings to WebSocket clients.

The sensor is sampled once per interval regardless of the number of
connected clients, since the bus handle cannot be shared. Clients connect
to ws://<listen>/ws and receive one JSON reading per sample.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", ":8550", "Listen address")
	serveCmd.Flags().DurationVarP(&serveInterval, "interval", "i", time.Second, "Time between measurements")
}

// telemetryHub tracks connected clients and fans readings out to them
type telemetryHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newTelemetryHub() *telemetryHub {
	return &telemetryHub{clients: make(map[*websocket.Conn]bool)}
}

func (h *telemetryHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *telemetryHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// broadcast sends a reading to every client, dropping the ones that fail
func (h *telemetryHub) broadcast(reading telemetryReading) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(reading); err != nil {
			log.Printf("Dropping client %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

var upgrader = websocket.Upgrader{
	// Local telemetry; any origin may subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func runServe(cmd *cobra.Command, args []string) error {
	sensor, bus, info, err := OpenSensor()
	if err != nil {
		return err
	}
	defer bus.Close()

	hub := newTelemetryHub()

	// Single sampling loop: the sensor handle is not safe for concurrent
	// use, so clients never touch it directly.
	go func() {
		ticker := time.NewTicker(serveInterval)
		defer ticker.Stop()

		for range ticker.C {
			reading := telemetryReading{Timestamp: time.Now().UnixMilli()}

			m, err := takeMeasurement(sensor, serveInterval)
			if err != nil {
				reading.Error = err.Error()
			} else {
				humidity, _ := m.HumidityScaled(100)
				temperature, _ := m.TemperatureScaled(100)
				reading.Humidity = humidity
				reading.Temperature = temperature
				reading.HumidityStr = formatCenti(humidity)
				reading.TemperatureStr = formatCenti(temperature)
				reading.Stale = m.IsStale()
			}

			hub.broadcast(reading)
		}
	}()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Upgrade failed for %s: %v", r.RemoteAddr, err)
			return
		}

		log.Printf("Client connected: %s", conn.RemoteAddr())
		hub.add(conn)

		// Drain (and discard) client messages to notice disconnects.
		go func() {
			defer func() {
				hub.remove(conn)
				conn.Close()
				log.Printf("Client disconnected: %s", conn.RemoteAddr())
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	fmt.Printf("Serving %s on ws://%s/ws every %v\n", info, serveListen, serveInterval)
	return http.ListenAndServe(serveListen, nil)
}
