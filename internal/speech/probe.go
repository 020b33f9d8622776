package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/voyalab/backplane/internal/logging"
	"github.com/voyalab/backplane/internal/util"
)

// defaultCaseTimeout bounds a single test case when none is set. There
// is no other cancellation mechanism and no retry: a case either
// completes, errors, or times out.
const defaultCaseTimeout = 8 * time.Second

// Case is one probe scenario.
type Case struct {
	Name    string
	Params  Params
	Timeout time.Duration
}

// Result is the outcome of one case.
type Result struct {
	Case          string
	OK            bool
	Err           error
	Transcript    string
	Events        int
	SpeechStarted bool
	UtteranceEnd  bool
	Elapsed       time.Duration
}

// Probe runs smoke-test cases against the transcription WebSocket API.
type Probe struct {
	wsURL  string
	apiKey string
	dialer *websocket.Dialer
	pacing time.Duration
}

// NewProbe creates a probe. A missing API key aborts early: every case
// would fail the handshake anyway.
func NewProbe(wsURL, apiKey string) (*Probe, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("speech API key is not set (DEEPGRAM_API_KEY)")
	}
	if _, err := url.Parse(wsURL); err != nil {
		return nil, fmt.Errorf("parse speech URL: %w", err)
	}
	return &Probe{
		wsURL:  wsURL,
		apiKey: apiKey,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		pacing: 50 * time.Millisecond,
	}, nil
}

// Run executes the cases strictly sequentially, one socket per case,
// so results are never conflated.
func (p *Probe) Run(ctx context.Context, cases []Case) []Result {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		logging.Infof("probe case %s: dialing", c.Name)
		res := p.runCase(ctx, c)
		if res.OK {
			logging.Successf("probe case %s: transcript %q after %d events", c.Name, util.TruncateLog(res.Transcript, 80), res.Events)
		} else {
			logging.Warnf("probe case %s failed: %v", c.Name, res.Err)
		}
		results = append(results, res)
	}
	return results
}

func (p *Probe) runCase(ctx context.Context, c Case) Result {
	start := time.Now()
	res := Result{Case: c.Name}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultCaseTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u, err := url.Parse(p.wsURL)
	if err != nil {
		res.Err = err
		return res
	}
	u.RawQuery = c.Params.Query().Encode()

	header := http.Header{}
	header.Set("Authorization", "Token "+p.apiKey)

	conn, resp, err := p.dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			res.Err = fmt.Errorf("dial: %w (status %d)", err, resp.StatusCode)
		} else {
			res.Err = fmt.Errorf("dial: %w", err)
		}
		res.Elapsed = time.Since(start)
		return res
	}
	defer conn.Close()

	// done stops the reader once the case has an outcome; without it a
	// trailing burst of events past the channel buffer would strand the
	// goroutine on the send.
	done := make(chan struct{})
	defer close(done)

	events := make(chan Event, 16)
	readErr := make(chan error, 1)
	go func() {
		for {
			var ev Event
			if err := conn.ReadJSON(&ev); err != nil {
				readErr <- err
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	writeDone := make(chan error, 1)
	go func() {
		writeDone <- p.sendAudio(conn, c.Params)
	}()

	// handle folds one event into the result; true means a final
	// transcript arrived and the case is done.
	handle := func(ev Event) bool {
		res.Events++
		switch ev.Type {
		case EventSpeechStarted:
			res.SpeechStarted = true
		case EventUtteranceEnd:
			res.UtteranceEnd = true
		case EventResults:
			if t := ev.Transcript(); t != "" {
				res.Transcript = t
			}
			if ev.IsFinal || ev.SpeechFinal {
				res.OK = true
				return true
			}
		default:
			logging.Debugf("probe case %s: unhandled event type %q", c.Name, ev.Type)
		}
		return false
	}

	for {
		select {
		case <-ctx.Done():
			res.Err = fmt.Errorf("case timed out after %s", timeout)
			res.Elapsed = time.Since(start)
			return res

		case err := <-writeDone:
			if err != nil {
				res.Err = fmt.Errorf("send audio: %w", err)
				res.Elapsed = time.Since(start)
				return res
			}
			writeDone = nil // keep reading for the final transcript

		case err := <-readErr:
			// The server may close right after the final transcript;
			// consume anything still queued before judging the error.
		drain:
			for {
				select {
				case ev := <-events:
					if handle(ev) {
						res.Elapsed = time.Since(start)
						return res
					}
				default:
					break drain
				}
			}
			// A normal close after a final transcript is success.
			if res.Transcript != "" && (websocket.IsCloseError(err, websocket.CloseNormalClosure) || err == io.EOF) {
				res.OK = true
			} else {
				res.Err = fmt.Errorf("read: %w", err)
			}
			res.Elapsed = time.Since(start)
			return res

		case ev := <-events:
			if handle(ev) {
				res.Elapsed = time.Since(start)
				return res
			}
		}
	}
}

// sendAudio streams one second of synthetic tone in paced binary
// frames, then signals end of stream.
func (p *Probe) sendAudio(conn *websocket.Conn, params Params) error {
	pcm := TonePCM(params.SampleRate, 440, time.Second)
	for _, chunk := range chunkAudio(pcm, 8000) {
		if err := conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
			return err
		}
		time.Sleep(p.pacing)
	}
	return conn.WriteJSON(map[string]string{"type": "CloseStream"})
}

// PrintSummary renders the per-case results as a console table.
func PrintSummary(w io.Writer, results []Result) {
	fmt.Fprintf(w, "\n%-24s | %-6s | %-7s | %-9s | %s\n", "case", "result", "events", "elapsed", "transcript / error")
	fmt.Fprintln(w, strings.Repeat("-", 84))
	for _, r := range results {
		status := "FAIL"
		detail := ""
		if r.OK {
			status = "OK"
			detail = util.TruncateLog(r.Transcript, 40)
		} else if r.Err != nil {
			detail = util.TruncateLog(r.Err.Error(), 40)
		}
		fmt.Fprintf(w, "%-24s | %-6s | %-7d | %-9s | %s\n",
			r.Case, status, r.Events, r.Elapsed.Round(time.Millisecond), detail)
	}
}

// Failed reports whether any case failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return true
		}
	}
	return false
}
