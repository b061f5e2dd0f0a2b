package tools

import (
	"context"
	"time"

	"github.com/rekabot/rekabot/internal/schema"
)

// exampleTimezones is shown when the caller supplies an invalid identifier.
var exampleTimezones = []string{
	"Asia/Jakarta",
	"Asia/Singapore",
	"America/New_York",
	"Europe/London",
	"UTC",
}

// CurrentTimeTool reports the current time in a given IANA timezone.
// now is injectable for tests; it defaults to time.Now.
type CurrentTimeTool struct {
	now func() time.Time
}

// NewCurrentTimeTool creates a CurrentTimeTool using the wall clock.
func NewCurrentTimeTool() *CurrentTimeTool {
	return &CurrentTimeTool{now: time.Now}
}

func (t *CurrentTimeTool) Name() string { return string(ToolCurrentTime) }
func (t *CurrentTimeTool) Description() string {
	return "Get the current time in a specific timezone"
}
func (t *CurrentTimeTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"timezone": {
				Type:        "string",
				Description: `IANA timezone identifier, e.g. "Asia/Jakarta", "America/New_York", "UTC"`,
			},
		},
		Required: []string{"timezone"},
	}
}

func (t *CurrentTimeTool) Execute(_ context.Context, args map[string]any) schema.Result {
	tz, _ := args["timezone"].(string)

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return schema.Errorf("invalid timezone: %s", tz).
			With("available_timezones_example", exampleTimezones)
	}

	now := t.now().In(loc)
	return schema.Result{
		"success":   true,
		"timezone":  tz,
		"datetime":  now.Format("Monday, 2 January 2006 15:04:05 MST"),
		"timestamp": now.Format(time.RFC3339),
		"unix":      now.Unix(),
	}
}
