package provisioning

import "context"

// Zone is the result of creating a zone with the provisioning API.
type Zone struct {
	ID          string
	Nameservers []string
}

// DNSRecord is the subset of a DNS record the orchestrator creates.
type DNSRecord struct {
	Type    string
	Name    string
	Content string
	Proxied bool
}

// ZoneAPI is the zone-provisioning surface the orchestrator drives. Each call
// either succeeds or returns a human-readable error; transient retry/backoff
// is the implementation's concern.
type ZoneAPI interface {
	CreateZone(ctx context.Context, domain string) (Zone, error)
	CreateDNSRecord(ctx context.Context, zoneID string, rec DNSRecord) error
	PatchZoneSetting(ctx context.Context, zoneID, setting string, value any) error
	CreateWAFRule(ctx context.Context, zoneID, expression, action string) error
}

// RegistrarClient pushes nameservers to whichever registrar holds the domain.
type RegistrarClient interface {
	SetNameservers(ctx context.Context, domain string, nameservers []string) error
}

// ZoneResolver turns a stored provisioning account ID into a zone client.
type ZoneResolver interface {
	Resolve(ctx context.Context, accountID uint) (ZoneAPI, error)
}

// RegistrarResolver turns a stored registrar account ID into a client.
type RegistrarResolver interface {
	Resolve(ctx context.Context, accountID uint) (RegistrarClient, error)
}

// zoneSetting is one entry of the post-creation configuration pass. The
// eleven entries are attempted independently of each other.
type zoneSetting struct {
	Name     string
	Variable string
	Apply    func(ctx context.Context, api ZoneAPI, zoneID string) error
}

func patchSetting(setting string, value any) func(context.Context, ZoneAPI, string) error {
	return func(ctx context.Context, api ZoneAPI, zoneID string) error {
		return api.PatchZoneSetting(ctx, zoneID, setting, value)
	}
}

// zoneSettings returns the canonical, ordered configuration pass. Steps are
// stored and rendered in this order no matter when each call completes.
func zoneSettings() []zoneSetting {
	return []zoneSetting{
		{StepSSLMode, "strict", patchSetting("ssl", "strict")},
		{StepAlwaysUseHTTPS, "on", patchSetting("always_use_https", "on")},
		{StepHSTS, "on", patchSetting("security_header", map[string]any{
			"strict_transport_security": map[string]any{
				"enabled":            true,
				"max_age":            31536000,
				"include_subdomains": true,
				"nosniff":            true,
			},
		})},
		{StepDisableTLS13, "off", patchSetting("tls_1_3", "off")},
		{StepOriginPulls, "on", patchSetting("tls_client_auth", "on")},
		{StepBotFightMode, "on", patchSetting("bot_fight_mode", "on")},
		{StepWAFRule, "managed_challenge", func(ctx context.Context, api ZoneAPI, zoneID string) error {
			return api.CreateWAFRule(ctx, zoneID, `(cf.client.bot) or (cf.threat_score gt 14)`, "managed_challenge")
		}},
		{StepEarlyHints, "on", patchSetting("early_hints", "on")},
		{StepZeroRTT, "on", patchSetting("0rtt", "on")},
		{StepPseudoIPv4, "add_header", patchSetting("pseudo_ipv4", "add_header")},
		{StepEmailObfuscation, "off", patchSetting("email_obfuscation", "off")},
	}
}

func settingByName(name string) (zoneSetting, bool) {
	for _, s := range zoneSettings() {
		if s.Name == name {
			return s, true
		}
	}
	return zoneSetting{}, false
}
