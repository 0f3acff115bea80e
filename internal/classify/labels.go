// Package classify turns the detection service's raw probability vector into
// ranked, labelled results and an alert tier.
//
// Rule: codes are for machines, words are for humans. Use DisplayName in CLI
// output and reports; keep raw codes for CSV fields and equality comparisons.
package classify

import "fmt"

// NumLabels is the length of the prediction vector the service must return.
// Responses with any other length are a contract violation.
const NumLabels = 17

// labels is the static index-to-code table, aligned with the service's
// output vector. Order is part of the wire contract; never reorder.
var labels = [NumLabels]string{
	"AI_GEN",
	"ANIME_1D",
	"ANIME_2D",
	"VIDEO_GAME",
	"KLING",
	"HIGGSFIELD",
	"WAN",
	"MIDJOURNEY",
	"HAILUO",
	"RAY",
	"VEO",
	"RUNWAY",
	"SORA",
	"CHATGPT",
	"PIKA",
	"HUNYUAN",
	"VIDU",
}

// LabelFor returns the category code for a vector index.
// Out-of-range indices are named UNKNOWN_<idx>.
func LabelFor(idx int) string {
	if idx < 0 || idx >= NumLabels {
		return fmt.Sprintf("UNKNOWN_%d", idx)
	}
	return labels[idx]
}

// Labels returns the full code table in vector order.
func Labels() []string {
	out := make([]string, NumLabels)
	copy(out, labels[:])
	return out
}

var displayNames = map[string]string{
	"AI_GEN":     "Generic AI Content",
	"ANIME_1D":   "Anime (1D)",
	"ANIME_2D":   "Anime (2D)",
	"VIDEO_GAME": "Video Game Footage",
	"KLING":      "Kling",
	"HIGGSFIELD": "Higgsfield",
	"WAN":        "Wan",
	"MIDJOURNEY": "Midjourney",
	"HAILUO":     "Hailuo",
	"RAY":        "Ray",
	"VEO":        "Veo",
	"RUNWAY":     "Runway",
	"SORA":       "Sora",
	"CHATGPT":    "ChatGPT",
	"PIKA":       "Pika",
	"HUNYUAN":    "Hunyuan",
	"VIDU":       "Vidu",
}

// DisplayName returns the human-readable name for a category code.
// Unknown codes are returned as-is.
func DisplayName(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	return code
}

// DisplayNameWithCode returns "Sora (SORA)" format for dual-audience contexts.
func DisplayNameWithCode(code string) string {
	if name, ok := displayNames[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}

// Group is a display grouping of related categories.
type Group struct {
	Name   string
	Labels []string
}

// Groups returns the categories arranged for display. Every code appears in
// exactly one group.
func Groups() []Group {
	return []Group{
		{Name: "AI Art Tools", Labels: []string{"MIDJOURNEY", "CHATGPT", "SORA", "RUNWAY", "PIKA"}},
		{Name: "Video Generation", Labels: []string{"KLING", "HAILUO", "VEO", "HUNYUAN", "VIDU"}},
		{Name: "Animation & Games", Labels: []string{"ANIME_1D", "ANIME_2D", "VIDEO_GAME"}},
		{Name: "Other AI Tools", Labels: []string{"AI_GEN", "HIGGSFIELD", "WAN", "RAY"}},
	}
}
