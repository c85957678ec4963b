// Package status maps backend order statuses to display metadata for the
// profile's orders table.
package status

import "strings"

// Info describes how one order status renders and behaves.
type Info struct {
	Key        string
	Label      string
	Tone       string // badge tone: "warning", "success", "danger", "secondary"
	Cancelable bool
	Terminal   bool
}

var known = map[string]Info{
	"processing": {Key: "processing", Label: "Processing", Tone: "warning", Cancelable: true},
	"shipped":    {Key: "shipped", Label: "Shipped", Tone: "info"},
	"delivered":  {Key: "delivered", Label: "Delivered", Tone: "success", Terminal: true},
	"cancelled":  {Key: "cancelled", Label: "Cancelled", Tone: "danger", Terminal: true},
}

// ForOrder resolves status metadata for a backend status string. Unknown
// statuses render as-is with a neutral tone and no actions.
func ForOrder(raw string) Info {
	key := strings.ToLower(strings.TrimSpace(raw))
	if info, ok := known[key]; ok {
		return info
	}
	label := strings.TrimSpace(raw)
	if label == "" {
		label = "Unknown"
	}
	return Info{Key: key, Label: label, Tone: "secondary"}
}
