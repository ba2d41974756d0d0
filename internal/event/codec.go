package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/airdb/internal/ir"
)

// ErrUnknownKind is returned when the "type" member names no known event.
var ErrUnknownKind = errors.New("unknown event type")

var inboundDecoders = map[string]func([]byte) (Inbound, error){
	KindOpenDatabase:  decodeAs[Inbound, OpenDatabase],
	KindCloseDatabase: decodeAs[Inbound, CloseDatabase],
	KindQuitInitiated: decodeAs[Inbound, QuitInitiated],

	KindStartContinentSearch: decodeAs[Inbound, StartContinentSearch],
	KindLoadContinent:        decodeAs[Inbound, LoadContinent],
	KindSaveNewContinent:     decodeAs[Inbound, SaveNewContinent],
	KindSaveContinent:        decodeAs[Inbound, SaveContinent],

	KindStartCountrySearch: decodeAs[Inbound, StartCountrySearch],
	KindLoadCountry:        decodeAs[Inbound, LoadCountry],
	KindSaveNewCountry:     decodeAs[Inbound, SaveNewCountry],
	KindSaveCountry:        decodeAs[Inbound, SaveCountry],

	KindStartRegionSearch: decodeAs[Inbound, StartRegionSearch],
	KindLoadRegion:        decodeAs[Inbound, LoadRegion],
	KindSaveNewRegion:     decodeAs[Inbound, SaveNewRegion],
	KindSaveRegion:        decodeAs[Inbound, SaveRegion],
}

var outboundDecoders = map[string]func([]byte) (Outbound, error){
	KindDatabaseOpened:     decodeAs[Outbound, DatabaseOpened],
	KindDatabaseOpenFailed: decodeAs[Outbound, DatabaseOpenFailed],
	KindDatabaseClosed:     decodeAs[Outbound, DatabaseClosed],
	KindEndApplication:     decodeAs[Outbound, EndApplication],
	KindError:              decodeAs[Outbound, Error],

	KindContinentSearchResult: decodeAs[Outbound, ContinentSearchResult],
	KindContinentLoaded:       decodeAs[Outbound, ContinentLoaded],
	KindContinentSaved:        decodeAs[Outbound, ContinentSaved],
	KindSaveContinentFailed:   decodeAs[Outbound, SaveContinentFailed],

	KindCountrySearchResult: decodeAs[Outbound, CountrySearchResult],
	KindCountryLoaded:       decodeAs[Outbound, CountryLoaded],
	KindCountrySaved:        decodeAs[Outbound, CountrySaved],
	KindSaveCountryFailed:   decodeAs[Outbound, SaveCountryFailed],

	KindRegionSearchResult: decodeAs[Outbound, RegionSearchResult],
	KindRegionLoaded:       decodeAs[Outbound, RegionLoaded],
	KindRegionSaved:        decodeAs[Outbound, RegionSaved],
	KindSaveRegionFailed:   decodeAs[Outbound, SaveRegionFailed],
}

// Decode parses one inbound event from its JSON form.
func Decode(data []byte) (Inbound, error) {
	return decode(data, inboundDecoders)
}

// DecodeOutbound parses one outbound event from its JSON form.
func DecodeOutbound(data []byte) (Outbound, error) {
	return decode(data, outboundDecoders)
}

func decode[E Event](data []byte, decoders map[string]func([]byte) (E, error)) (E, error) {
	var zero E

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return zero, fmt.Errorf("decode event: %w", err)
	}
	if members == nil {
		return zero, fmt.Errorf("decode event: expected an object")
	}

	rawKind, ok := members["type"]
	if !ok {
		return zero, fmt.Errorf("decode event: missing \"type\"")
	}
	var kind string
	if err := json.Unmarshal(rawKind, &kind); err != nil {
		return zero, fmt.Errorf("decode event: \"type\" must be a string")
	}

	decodeFields, ok := decoders[kind]
	if !ok {
		return zero, fmt.Errorf("decode event: %w %q", ErrUnknownKind, kind)
	}

	delete(members, "type")
	fields, err := json.Marshal(members)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", kind, err)
	}

	e, err := decodeFields(fields)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", kind, err)
	}
	return e, nil
}

// decodeAs strictly decodes data into a T and returns it as an E.
func decodeAs[E Event, T Event](data []byte) (E, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		var zero E
		return zero, err
	}
	// T always satisfies E for the entries in the decoder tables.
	return any(v).(E), nil
}

// Encode returns the canonical JSON form of e with its kind in "type".
func Encode(e Event) ([]byte, error) {
	fields, err := Fields(e)
	if err != nil {
		return nil, err
	}
	fields["type"] = ir.IRString(e.Kind())
	return ir.MarshalCanonical(fields)
}

// Fields returns the members of e's JSON form, without "type".
func Fields(e Event) (ir.IRObject, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}

	var members map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&members); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}

	v, err := ir.FromGo(members)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}
	obj, ok := v.(ir.IRObject)
	if !ok {
		return nil, fmt.Errorf("encode %s: not an object", e.Kind())
	}
	return obj, nil
}
