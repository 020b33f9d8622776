package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voyalab/backplane/internal/speech"
)

var (
	probeModel   string
	probeTimeout time.Duration
)

var probeSpeechCmd = &cobra.Command{
	Use:   "probe-speech",
	Short: "Smoke-test the speech recognition WebSocket API",
	Long: "Opens one socket per test case, streams synthetic audio, and waits\n" +
		"for a final transcript, an error, or the per-case timeout. Cases run\n" +
		"strictly sequentially.",
	RunE: func(cmd *cobra.Command, args []string) error {
		probe, err := speech.NewProbe(cfg.SpeechWSURL, cfg.DeepgramAPIKey)
		if err != nil {
			return err
		}

		base := speech.DefaultParams()
		base.Model = probeModel

		noInterim := base
		noInterim.InterimResults = false

		stereo := base
		stereo.Channels = 2

		wideEndpoint := base
		wideEndpoint.Endpointing = 1000

		cases := []speech.Case{
			{Name: "baseline", Params: base, Timeout: probeTimeout},
			{Name: "no-interim", Params: noInterim, Timeout: probeTimeout},
			{Name: "stereo", Params: stereo, Timeout: probeTimeout},
			{Name: "wide-endpointing", Params: wideEndpoint, Timeout: probeTimeout + 2*time.Second},
		}

		results := probe.Run(cmd.Context(), cases)
		speech.PrintSummary(os.Stdout, results)
		if speech.Failed(results) {
			return fmt.Errorf("speech probe: %d case(s) failed", countFailed(results))
		}
		return nil
	},
}

func countFailed(results []speech.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}

func init() {
	probeSpeechCmd.Flags().StringVar(&probeModel, "model", "nova-2", "speech model to request")
	probeSpeechCmd.Flags().DurationVar(&probeTimeout, "timeout", 8*time.Second, "per-case timeout")
}
