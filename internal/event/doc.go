// Package event defines the messages exchanged between the engine and a
// presentation layer.
//
// Inbound events describe a user intent (open a database, search, save).
// Outbound events describe the engine's response. Both are closed sets:
// Inbound and Outbound are sealed interfaces, and only the types in this
// package implement them, so a type switch over either union can be
// checked for completeness by reading this package alone.
//
// Every event has a stable snake_case kind used as the "type" member of its
// JSON form:
//
//	{"type":"start_continent_search","continent_code":"","name":"Asia"}
//
// Encode writes canonical JSON (sorted keys, NFC strings). Decode and
// DecodeOutbound reject unknown kinds and unknown fields.
package event
