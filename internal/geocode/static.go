package geocode

// commonPlaces answers frequent birthplaces without a network call.
var commonPlaces = map[string]Location{
	"new delhi, india": {Latitude: 28.6139, Longitude: 77.2090, Timezone: "Asia/Kolkata", Address: "New Delhi, India"},
	"mumbai, india":    {Latitude: 19.0760, Longitude: 72.8777, Timezone: "Asia/Kolkata", Address: "Mumbai, India"},
	"bangalore, india": {Latitude: 12.9716, Longitude: 77.5946, Timezone: "Asia/Kolkata", Address: "Bangalore, India"},
	"chennai, india":   {Latitude: 13.0827, Longitude: 80.2707, Timezone: "Asia/Kolkata", Address: "Chennai, India"},
	"kolkata, india":   {Latitude: 22.5726, Longitude: 88.3639, Timezone: "Asia/Kolkata", Address: "Kolkata, India"},
	"hyderabad, india": {Latitude: 17.3850, Longitude: 78.4867, Timezone: "Asia/Kolkata", Address: "Hyderabad, India"},
	"new york, usa":    {Latitude: 40.7128, Longitude: -74.0060, Timezone: "America/New_York", Address: "New York, USA"},
	"los angeles, usa": {Latitude: 34.0522, Longitude: -118.2437, Timezone: "America/Los_Angeles", Address: "Los Angeles, USA"},
	"london, uk":       {Latitude: 51.5074, Longitude: -0.1278, Timezone: "Europe/London", Address: "London, UK"},
}

// LookupCommon returns a built-in place by normalized key.
func LookupCommon(place string) (Location, bool) {
	loc, ok := commonPlaces[Key(place)]
	return loc, ok
}
