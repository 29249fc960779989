package advisor

import (
	"fmt"
	"strings"

	"paradecast/internal/models"
)

// Season returns the meteorological season for a month, hemisphere-aware.
// Non-positive latitudes (including the equator) use southern seasons.
func Season(month int, latitude float64) string {
	northern := latitude > 0
	switch month {
	case 12, 1, 2:
		if northern {
			return "Winter"
		}
		return "Summer"
	case 3, 4, 5:
		if northern {
			return "Spring"
		}
		return "Autumn"
	case 6, 7, 8:
		if northern {
			return "Summer"
		}
		return "Winter"
	default:
		if northern {
			return "Autumn"
		}
		return "Spring"
	}
}

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are an expert weather planning assistant. Generate intelligent alternatives compatible with weather conditions when they are unfavorable.\n\n")
	b.WriteString("CONTEXT:\n")
	fmt.Fprintf(&b, "- Weather Condition: %s\n", req.Condition)
	if req.Activity != models.ActivityNone {
		fmt.Fprintf(&b, "- Original Activity: %s\n", req.Activity)
	}
	fmt.Fprintf(&b, "- Location Coordinates: %.2f, %.2f\n", req.Latitude, req.Longitude)
	fmt.Fprintf(&b, "- Season: %s\n", Season(req.Month, req.Latitude))
	fmt.Fprintf(&b, "- Target Month: %d\n", req.Month)
	fmt.Fprintf(&b, "- Risk Level: %s\n", req.Risk.Level)
	fmt.Fprintf(&b, "- Risk Probability: %.1f%%\n", req.Risk.Probability)
	fmt.Fprintf(&b, "- Risk Message: %s\n", req.Risk.StatusMessage)
	b.WriteString(`
REQUIREMENTS:
1. Provide exactly 3-4 specific, actionable activities compatible with the weather conditions
2. Focus on activities that work well despite the adverse condition
3. Consider the season, location and weather context
4. Make suggestions practical, enjoyable and realistic
5. Include both indoor and outdoor options when weather permits
6. Provide specific locations or venues when possible
7. Consider cost, accessibility and time requirements

RESPONSE FORMAT: Return ONLY a valid JSON object with this exact structure:
{
    "alternatives": [
        {
            "title": "Specific activity name",
            "description": "Brief but detailed description of the activity",
            "type": "indoor/outdoor/mixed",
            "reason": "Why this is a good alternative for the weather conditions",
            "tips": "Practical tips for this activity",
            "location": "General description or city name",
            "duration": "Estimated time needed",
            "cost": "Free/Low/Medium/High"
        }
    ]
}
`)
	return b.String()
}
