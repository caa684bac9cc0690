package events

// StatsRecord carries the visitor-derived attributes of a single click.
// Built by the redirect handler, consumed by the stats aggregator.
type StatsRecord struct {
	RemoteAddr   string `json:"remote_addr"`
	OS           string `json:"os"`
	Browser      string `json:"browser"`
	Device       string `json:"device"`
	Network      string `json:"network"`
	UV           string `json:"uv"` // visitor fingerprint (uv cookie value)
	UVFirstFlag  bool   `json:"uv_first_flag"`
	UIPFirstFlag bool   `json:"uip_first_flag"`
}

// ClickEvent is the message payload published on every redirect.
// Published by link-api, consumed by stats-consumer.
//
// CorrelationKey is unique per event. It is carried both here and as the
// Kafka message key, and drives consumer-side idempotency.
type ClickEvent struct {
	CorrelationKey string      `json:"correlation_key"`
	FullShortURL   string      `json:"full_short_url"`
	Gid            string      `json:"gid,omitempty"`
	Record         StatsRecord `json:"stats_record"`
}
