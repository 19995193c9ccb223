// Package chat implements the keyword-matching farming assistant.
package chat

import (
	"strings"

	"github.com/google/uuid"

	"github.com/farmii/farm-advisory/internal/common"
)

// Reply is one assistant response.
type Reply struct {
	ID      string `json:"id"`
	Message string `json:"reply"`
}

// rule maps trigger keywords to a canned reply. Rules are evaluated in
// order and the first match wins, so earlier topics shadow later ones when
// a message mentions several.
type rule struct {
	keywords []string
	reply    string
}

// Bot answers farming questions from a static keyword rule table.
// Stateless and safe for concurrent use.
type Bot struct {
	rules    []rule
	fallback string
}

// NewBot creates a Bot with the built-in rule table.
func NewBot() *Bot {
	return &Bot{
		rules: []rule{
			{
				keywords: []string{"disease", "pest"},
				reply:    "I can help you identify crop diseases! Please describe the symptoms you're seeing, or better yet, use our Disease Detection feature to upload a photo of the affected crop. What specific symptoms are you noticing?",
			},
			{
				keywords: []string{"weather", "rain"},
				reply:    "Weather is crucial for farming decisions! Based on current forecasts for your area, I recommend checking our Weather Alerts section. Are you planning any specific farming activities that depend on weather conditions?",
			},
			{
				keywords: []string{"crop", "plant"},
				reply:    "Great question about crops! I can provide recommendations based on your location, soil type, and season. Have you tried our Crop Advisory feature? It gives personalized suggestions for your specific farming conditions.",
			},
			{
				keywords: []string{"price", "market"},
				reply:    "Market prices are important for planning! Our Market Price Tracking feature provides real-time prices for various crops. Which crops are you interested in selling, and would you like me to guide you to the market section?",
			},
			{
				keywords: []string{"soil", "fertilizer"},
				reply:    "Soil health is the foundation of good farming! I recommend using our Soil Health feature for detailed analysis. In general, regular soil testing, organic matter addition, and proper pH management are key. What specific soil concerns do you have?",
			},
		},
		fallback: "I'm here to help with all your farming needs! I can assist with crop diseases, weather alerts, soil health, market prices, and crop recommendations. What specific farming challenge are you facing today?",
	}
}

// Respond returns the reply for a user message. Matching is
// case-insensitive substring matching; unmatched messages get the
// fallback reply.
func (b *Bot) Respond(message string) Reply {
	input := strings.ToLower(message)

	for _, r := range b.rules {
		if common.HasAny(input, r.keywords...) {
			return Reply{ID: uuid.NewString(), Message: r.reply}
		}
	}
	return Reply{ID: uuid.NewString(), Message: b.fallback}
}
