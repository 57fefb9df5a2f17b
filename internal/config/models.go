package config

// Registry represents the entire user configuration file.
// This stores console connection settings and application preferences.
type Registry struct {
	Version     int          `yaml:"version"`
	Console     *Console     `yaml:"console,omitempty"`
	Map         *MapSettings `yaml:"map,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// Console represents the account-console connection settings.
type Console struct {
	// BaseURL is the console API base URL (e.g., "https://console.example.com/api")
	BaseURL string `yaml:"base_url"`

	// AccessToken is the bearer token used to authenticate API calls.
	// When empty, the panel does not fetch and shows an explanatory
	// empty state instead.
	AccessToken string `yaml:"access_token,omitempty"`
}

// MapSettings represents settings for the map rendering surface.
type MapSettings struct {
	// APIKey is the static-map provider key. When empty, the map section
	// is suppressed entirely; the device table is unaffected.
	APIKey string `yaml:"api_key,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	// LiveRefresh enables refetching the device list when the console
	// pushes a device-change event over the websocket stream.
	LiveRefresh bool `yaml:"live_refresh"`

	// DiscoverTimeout is the mDNS discovery timeout in seconds.
	DiscoverTimeout int `yaml:"discover_timeout"`
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Console: &Console{},
		Map:     &MapSettings{},
		Preferences: &Preferences{
			LiveRefresh:     true,
			DiscoverTimeout: 10,
		},
	}
}

// HasCredential reports whether an access token is configured.
func (r *Registry) HasCredential() bool {
	return r.Console != nil && r.Console.AccessToken != ""
}

// MapKey returns the configured map API key, or empty string when unset.
func (r *Registry) MapKey() string {
	if r.Map == nil {
		return ""
	}
	return r.Map.APIKey
}

// SetConsole updates the console connection settings.
func (r *Registry) SetConsole(baseURL, accessToken string) {
	if r.Console == nil {
		r.Console = &Console{}
	}
	if baseURL != "" {
		r.Console.BaseURL = baseURL
	}
	if accessToken != "" {
		r.Console.AccessToken = accessToken
	}
}

// SetMapKey updates the map API key.
func (r *Registry) SetMapKey(key string) {
	if r.Map == nil {
		r.Map = &MapSettings{}
	}
	r.Map.APIKey = key
}
