package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/schovi/ptyprobe/internal/escape"
	"github.com/schovi/ptyprobe/internal/region"
	"github.com/schovi/ptyprobe/internal/session"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run a program in a PTY, send keys, print its screen",
	Long: `Run a program in a pseudo-terminal and print its screen.

Each --keys value is typed in order. Values support escape sequences
(\n, \e, \x03) and key names (<Enter>, <Esc>, <Up>, <C-c>).

After the keys, --wait blocks until a regex matches the screen and
--settle until the screen stops changing. The program is then shut down.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

var (
	runKeysFlag     []string
	runWaitFlag     string
	runSettleFlag   time.Duration
	runTimeoutFlag  time.Duration
	runRegionFlag   string
	runJsonFlag     bool
	runColsFlag     int
	runRowsFlag     int
	runEmulatorFlag string
	runRecordFlag   string
	runRespondFlag  bool
	runKeyDelayFlag time.Duration
	runQuitFlag     string
)

func init() {
	runCmd.Flags().StringArrayVar(&runKeysFlag, "keys", nil, "Text to type (repeatable, escape sequences interpreted)")
	runCmd.Flags().StringVar(&runWaitFlag, "wait", "", "Wait for regex pattern on screen")
	runCmd.Flags().DurationVar(&runSettleFlag, "settle", 0, "Wait until the screen is unchanged for this long")
	runCmd.Flags().DurationVar(&runTimeoutFlag, "timeout", session.DefaultWaitTimeout, "Max wait time for --wait and --settle")
	runCmd.Flags().StringVar(&runRegionFlag, "region", "", "Print a bordered region instead (largest or index)")
	runCmd.Flags().BoolVar(&runJsonFlag, "json", false, "Output as JSON")
	runCmd.Flags().IntVar(&runColsFlag, "cols", 0, "Terminal columns (default: current terminal or 80)")
	runCmd.Flags().IntVar(&runRowsFlag, "rows", 0, "Terminal rows (default: current terminal or 24)")
	runCmd.Flags().StringVar(&runEmulatorFlag, "emulator", session.EmulatorGrid, "Screen model: grid or vt")
	runCmd.Flags().StringVar(&runRecordFlag, "record", "", "Write raw output to file")
	runCmd.Flags().BoolVar(&runRespondFlag, "respond", false, "Answer terminal queries (cursor position, device attributes)")
	runCmd.Flags().DurationVar(&runKeyDelayFlag, "key-delay", session.DefaultKeyDelay, "Delay between typed characters")
	runCmd.Flags().StringVar(&runQuitFlag, "quit", "", "Keys typed before shutdown (escape sequences interpreted)")
}

type runResult struct {
	Screen   string `json:"screen"`
	Region   string `json:"region,omitempty"`
	Pid      int    `json:"pid"`
	Cursor   [2]int `json:"cursor"`
	Cols     int    `json:"cols"`
	Rows     int    `json:"rows"`
	Exited   bool   `json:"exited"`
	ExitCode int    `json:"exit_code,omitempty"`
}

// screenResult builds the result for a captured screen. The region comes
// from that same capture so it always matches the printed screen.
func screenResult(screen string, cols, rows, which int, withRegion bool) (runResult, error) {
	result := runResult{Screen: screen, Cols: cols, Rows: rows}
	if withRegion {
		var err error
		if result.Region, err = region.Extract(screen, which); err != nil {
			return result, err
		}
	}
	return result, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	which := 0
	if runRegionFlag != "" {
		var err error
		if which, err = parseRegionSelector(runRegionFlag); err != nil {
			return err
		}
	}
	if runWaitFlag != "" && runSettleFlag > 0 {
		return fmt.Errorf("--wait and --settle are mutually exclusive")
	}

	keys := make([]string, 0, len(runKeysFlag))
	for _, k := range runKeysFlag {
		text, err := escape.Interpret(k)
		if err != nil {
			return fmt.Errorf("--keys %q: %w", k, err)
		}
		keys = append(keys, text)
	}
	quit, err := escape.Interpret(runQuitFlag)
	if err != nil {
		return fmt.Errorf("--quit: %w", err)
	}

	cols, rows := terminalSize(runColsFlag, runRowsFlag)
	opts := []session.Option{
		session.WithArgs(args[1:]...),
		session.WithSize(cols, rows),
		session.WithEmulator(runEmulatorFlag),
		session.WithQueryResponses(runRespondFlag),
		session.WithKeyDelay(runKeyDelayFlag),
		session.WithQuitKeys(quit),
	}
	if runRecordFlag != "" {
		opts = append(opts, session.WithTranscript(runRecordFlag))
	}

	s, err := session.Start(args[0], opts...)
	if err != nil {
		return err
	}
	defer s.Shutdown()

	for _, k := range keys {
		if err := s.SendText(k); err != nil {
			return err
		}
	}

	var screen string
	switch {
	case runWaitFlag != "":
		screen, err = s.WaitFor(runWaitFlag, runTimeoutFlag)
	case runSettleFlag > 0:
		screen, err = s.WaitSettle(runSettleFlag, runTimeoutFlag)
	default:
		screen = s.CurrentScreen()
	}
	if err != nil {
		return fmt.Errorf("%w%s", err, session.FormatScreen("Last screen", screen, cols))
	}

	result, err := screenResult(screen, cols, rows, which, runRegionFlag != "")
	if err != nil {
		return err
	}
	result.Pid = s.Pid()
	result.Cursor[0], result.Cursor[1] = s.Cursor()
	select {
	case <-s.Exited():
		result.Exited = true
		result.ExitCode = s.ExitCode()
	default:
	}

	if runJsonFlag {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	if runRegionFlag != "" {
		fmt.Println(result.Region)
		return nil
	}
	fmt.Println(screen)
	return nil
}
