package tools

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/rekabot/rekabot/internal/schema"
)

// weatherConditions is the fixed table the simulation draws from.
var weatherConditions = []string{
	"sunny", "partly cloudy", "cloudy", "light rain", "rain", "thunderstorm", "hazy",
}

// WeatherTool simulates a weather report. No live provider is wired, so the
// report is derived deterministically from the city name: the same city
// always gets the same forecast. Results carry simulated:true so the model
// can caveat its answer.
type WeatherTool struct{}

// NewWeatherTool creates a WeatherTool.
func NewWeatherTool() *WeatherTool { return &WeatherTool{} }

func (t *WeatherTool) Name() string { return string(ToolWeather) }
func (t *WeatherTool) Description() string {
	return "Get a simulated weather report for a city (deterministic, not live data)"
}
func (t *WeatherTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"city": {Type: "string", Description: "City name, e.g. Jakarta"},
		},
		Required: []string{"city"},
	}
}

func (t *WeatherTool) Execute(_ context.Context, args map[string]any) schema.Result {
	city := strings.TrimSpace(stringArg(args, "city"))
	if city == "" {
		return schema.Errorf("city is empty")
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(city)))
	seed := h.Sum32()

	condition := weatherConditions[seed%uint32(len(weatherConditions))]
	// Ranges: 18..34 °C and 40..90 % humidity.
	tempC := 18 + int(seed/7%17)
	humidity := 40 + int(seed/3%51)

	return schema.Result{
		"success":       true,
		"city":          city,
		"condition":     condition,
		"temperature_c": tempC,
		"humidity":      humidity,
		"simulated":     true,
		"formatted":     fmt.Sprintf("%s: %s, %d°C, %d%% humidity (simulated)", city, condition, tempC, humidity),
	}
}
