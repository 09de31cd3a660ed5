package middleware

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/model"
)

var (
	mqttClient mqtt.Client
	brokerURL  = "tcp://0.0.0.0:1883" // Default MQTT broker URL
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// SetBrokerURL allows configuration of the MQTT broker URL
func SetBrokerURL(url string) {
	brokerURL = url
}

// InitMQTT connects the server's publishing client. Screens subscribe to
// their own screens/<device_id>/commands topic.
func InitMQTT(clientName string) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	mqttClient = mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		mqttClient = nil
		return fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT client initialized")
	return nil
}

// NotifyScreenRefresh tells one paired device to re-fetch its playlist.
func NotifyScreenRefresh(deviceID string) error {
	if mqttClient == nil {
		return nil
	}
	payload, _ := json.Marshal(map[string]string{"command": "refresh"})
	topic := fmt.Sprintf("screens/%s/commands", deviceID)
	token := mqttClient.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish refresh to device %s: %v", deviceID, token.Error())
	}
	return nil
}

// NotifyScreens pushes a refresh to every paired screen in the list. Used
// after schedule writes so devices pick up the new resolution immediately
// instead of waiting out their poll interval.
func NotifyScreens(screens []model.Screen) {
	for _, screen := range screens {
		if screen.DeviceID == nil || !screen.Paired {
			continue
		}
		if err := NotifyScreenRefresh(*screen.DeviceID); err != nil {
			log.Error().Err(err).Int("screen_id", screen.ID).Msg("failed to notify screen")
		}
	}
}

// CleanupMQTT disconnects the publishing client.
func CleanupMQTT() {
	if mqttClient != nil {
		mqttClient.Disconnect(250)
		mqttClient = nil
		log.Info().Msg("MQTT client disconnected")
	}
}
