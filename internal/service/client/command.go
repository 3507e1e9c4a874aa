package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/arm-toggle/internal/config"
	"github.com/oshokin/arm-toggle/internal/controller"
	"github.com/oshokin/arm-toggle/internal/logger"
	"github.com/oshokin/arm-toggle/internal/notify"
	"github.com/oshokin/arm-toggle/internal/service/common"
	"github.com/oshokin/arm-toggle/internal/ui"
	"github.com/oshokin/arm-toggle/internal/ui/tui"
)

// Options configures the arm toggle client.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// Endpoint overrides the endpoint base URL from config when specified.
	Endpoint string
	// ControlID overrides the control identifier from config when specified.
	ControlID string
	// Presses, when positive, activates the button that many times without
	// the terminal UI and exits once the notifications are done.
	Presses int
	// Input and Output replace the terminal streams of the UI when set.
	Input  io.Reader
	Output io.Writer
}

// Run binds the toggle and drives it until the operator quits or ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "arm-toggle")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	endpoint := cfg.Endpoint
	if opts.Endpoint != "" {
		endpoint = opts.Endpoint
	}

	controlID := cfg.ControlID
	if opts.ControlID != "" {
		controlID = opts.ControlID
	}

	notifier, err := notify.NewHTTPNotifier(
		endpoint,
		notify.WithTimeout(cfg.Timeout),
		notify.WithUserAgent(common.UserAgent()),
		notify.WithBaseContext(context.WithoutCancel(ctx)),
	)
	if err != nil {
		return fmt.Errorf("create notifier: %w", err)
	}

	button := ui.NewButton(controlID, "")

	// A missing control is a setup error: nothing runs without the binding.
	if _, err = controller.New(ui.NewPage(button), controlID, notifier); err != nil {
		return fmt.Errorf("bind control: %w", err)
	}

	logger.InfoKV(ctx, "Arm toggle ready", "endpoint", endpoint, "control_id", controlID)

	if opts.Presses > 0 {
		for range opts.Presses {
			button.Activate()
		}
	} else if err = runUI(ctx, button, endpoint, opts); err != nil {
		return err
	}

	// In-flight notifications are bounded by the request timeout.
	notifier.Wait()
	logger.InfoKV(ctx, "Arm toggle finished", "label", button.Text())

	return nil
}

// runUI runs the terminal UI until quit or cancellation.
func runUI(ctx context.Context, button *ui.Button, endpoint string, opts *Options) error {
	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}

	if opts.Input != nil {
		programOptions = append(programOptions, tea.WithInput(opts.Input))
	}

	if opts.Output != nil {
		programOptions = append(programOptions, tea.WithOutput(opts.Output))
	}

	_, err := tea.NewProgram(tui.New(button, endpoint), programOptions...).Run()
	if err != nil && ctx.Err() == nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal UI: %w", err)
	}

	return nil
}
