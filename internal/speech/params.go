// Package speech implements the WebSocket smoke-test probe for the
// third-party live transcription API.
package speech

import (
	"net/url"
	"strconv"
)

// Params are the query parameters carried by the streaming connection
// URL.
type Params struct {
	Model          string
	Encoding       string
	SampleRate     int
	Language       string
	SmartFormat    bool
	InterimResults bool
	Channels       int
	Endpointing    int // milliseconds of trailing silence before an endpoint
	VADEvents      bool
	Punctuate      bool
}

// DefaultParams is the baseline configuration the probe cases vary.
func DefaultParams() Params {
	return Params{
		Model:          "nova-2",
		Encoding:       "linear16",
		SampleRate:     16000,
		Language:       "en-US",
		SmartFormat:    true,
		InterimResults: true,
		Channels:       1,
		Endpointing:    300,
		VADEvents:      true,
		Punctuate:      true,
	}
}

// Query renders the parameters as the connection URL's query string.
func (p Params) Query() url.Values {
	q := url.Values{}
	q.Set("model", p.Model)
	q.Set("encoding", p.Encoding)
	q.Set("sample_rate", strconv.Itoa(p.SampleRate))
	q.Set("language", p.Language)
	q.Set("smart_format", strconv.FormatBool(p.SmartFormat))
	q.Set("interim_results", strconv.FormatBool(p.InterimResults))
	q.Set("channels", strconv.Itoa(p.Channels))
	q.Set("endpointing", strconv.Itoa(p.Endpointing))
	q.Set("vad_events", strconv.FormatBool(p.VADEvents))
	q.Set("punctuate", strconv.FormatBool(p.Punctuate))
	return q
}

// Inbound message types, discriminated on the "type" field.
const (
	EventResults       = "Results"
	EventSpeechStarted = "SpeechStarted"
	EventUtteranceEnd  = "UtteranceEnd"
)

// Event is one inbound JSON message. Fields beyond the discriminator
// are populated only for Results events.
type Event struct {
	Type        string `json:"type"`
	IsFinal     bool   `json:"is_final"`
	SpeechFinal bool   `json:"speech_final"`
	Channel     struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"channel"`
}

// Transcript returns the first alternative's transcript, or "".
func (e Event) Transcript() string {
	if len(e.Channel.Alternatives) == 0 {
		return ""
	}
	return e.Channel.Alternatives[0].Transcript
}
