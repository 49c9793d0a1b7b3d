// Package workitems adapts the external work-item input system that queues
// search requests for the robot. Items arrive as a JSON file whose path is
// published through the RC_WORKITEM_INPUT_PATH environment variable.
package workitems

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// EnvInputPath names the environment variable pointing at the work items
// input file.
const EnvInputPath = "RC_WORKITEM_INPUT_PATH"

// Item is a single queued work item.
type Item struct {
	ID      uuid.UUID      `json:"id"`
	Payload map[string]any `json:"payload"`
}

// Inputs holds the work items available to the current run.
type Inputs struct {
	items []Item
}

// Load reads work items from the JSON file at path. An empty path yields an
// empty input set; this is a valid configuration, not an error.
func Load(path string) (*Inputs, error) {
	if path == "" {
		return &Inputs{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read work items file: %w", err)
	}

	var raw []struct {
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse work items file: %w", err)
	}

	in := &Inputs{}
	for _, r := range raw {
		in.items = append(in.items, Item{ID: uuid.New(), Payload: r.Payload})
	}
	return in, nil
}

// LoadFromEnv reads work items from the file named by RC_WORKITEM_INPUT_PATH.
// An unset variable yields an empty input set.
func LoadFromEnv() (*Inputs, error) {
	return Load(os.Getenv(EnvInputPath))
}

// Current returns the first queued work item, or an empty item when the
// queue is empty so parameter extraction falls through to defaults.
func (in *Inputs) Current() *Item {
	if len(in.items) == 0 {
		return &Item{ID: uuid.New()}
	}
	return &in.items[0]
}

// Len returns the number of queued work items.
func (in *Inputs) Len() int {
	return len(in.items)
}
