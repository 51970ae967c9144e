package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"teabag/internal/config"
	"teabag/internal/logging"
)

const (
	finishedExpression = `window.Teabag && window.Teabag.finished === true`
	failuresExpression = `window.Teabag.failures`
	pollInterval       = 100 * time.Millisecond
)

// ChromeDriver runs suites in headless Chrome. The suite page sets
// window.Teabag.finished once its reporter is done and window.Teabag.failures
// to the number of failed specs.
type ChromeDriver struct {
	config *config.Config
	out    io.Writer
	logger *logging.Logger
}

// NewChromeDriver creates a new ChromeDriver
func NewChromeDriver(cfg *config.Config, out io.Writer, logger *logging.Logger) *ChromeDriver {
	return &ChromeDriver{config: cfg, out: out, logger: logger}
}

func (d *ChromeDriver) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if d.config.Driver.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(d.config.Driver.ChromePath))
	}
	return opts
}

// RunSpecs opens url in a fresh browser, forwards the page console to out and
// waits for the suite to report completion.
func (d *ChromeDriver) RunSpecs(suite, url string) (int, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), d.allocatorOptions()...)
	defer cancelAlloc()

	ctx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	if d.config.Driver.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Driver.Timeout)
		defer cancel()
	}

	chromedp.ListenTarget(ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			fmt.Fprintln(d.out, consoleLine(e.Args))
		case *runtime.EventExceptionThrown:
			if e.ExceptionDetails != nil {
				d.logger.Printf("driver: %s: page exception: %s", suite, e.ExceptionDetails.Text)
			}
		}
	})

	d.logger.Printf("driver: chrome %s", url)

	var finished bool
	var failures int
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.Poll(finishedExpression, &finished, chromedp.WithPollingInterval(pollInterval)),
		chromedp.Evaluate(failuresExpression, &failures),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s", d.config.Driver.Timeout)
		}
		return 0, &ExecutionError{Suite: suite, URL: url, Err: err}
	}

	d.logger.Printf("driver: suite %s finished with %d failure(s)", suite, failures)
	return failures, nil
}

// consoleLine joins console.log arguments the way a terminal would show them.
func consoleLine(args []*runtime.RemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		if len(arg.Value) == 0 {
			parts = append(parts, arg.Description)
			continue
		}
		raw := string(arg.Value)
		if s, err := strconv.Unquote(raw); err == nil {
			raw = s
		}
		parts = append(parts, raw)
	}
	return strings.Join(parts, " ")
}
